// Package jsonutil holds the loose-JSON helpers shared by the JSON-based
// formats: decoding with positioned syntax errors and accessors for values
// that may be a string, a number, an object or a list.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SyntaxError is a JSON syntax error with its 1-based position.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Position converts a byte offset into a 1-based line and column.
func Position(data []byte, offset int64) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, column = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// TrimBOM drops a UTF-8 byte order mark.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// Decode unmarshals data into v. Syntax errors come back as *SyntaxError.
func Decode(data []byte, v any) error {
	data = TrimBOM(data)
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}

	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		line, col := Position(data, syntax.Offset)
		return &SyntaxError{Line: line, Column: col, Msg: syntax.Error()}
	}
	return err
}

// Validate reports a syntax error in data as a single message, or nothing.
func Validate(data []byte) []string {
	var v any
	err := Decode(data, &v)
	if err == nil {
		return nil
	}
	var syntax *SyntaxError
	if errors.As(err, &syntax) {
		return []string{fmt.Sprintf("%d:%d: ERROR: %s", syntax.Line, syntax.Column, syntax.Msg)}
	}
	return []string{err.Error()}
}

// Documents decodes a single object or an array of objects. Non-object array
// members are skipped.
func Documents(data []byte) ([]map[string]any, error) {
	var v any
	if err := Decode(data, &v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case map[string]any:
		return []map[string]any{x}, nil
	case []any:
		var docs []map[string]any
		for _, item := range x {
			if m, ok := item.(map[string]any); ok {
				docs = append(docs, m)
			}
		}
		return docs, nil
	}
	return nil, fmt.Errorf("expected a JSON object or array")
}

// String returns m[key] as a string. Numbers are formatted; anything else is "".
func String(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	return AsString(m[key])
}

// AsString formats a scalar value as a trimmed string.
func AsString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// List wraps a single value in a slice. nil yields nil.
func List(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		return x
	}
	return []any{v}
}

// Objects returns the objects found in v, which may be one object or a list.
func Objects(v any) []map[string]any {
	var out []map[string]any
	for _, item := range List(v) {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Object returns the first object in v.
func Object(v any) map[string]any {
	objs := Objects(v)
	if len(objs) == 0 {
		return nil
	}
	return objs[0]
}

// Strings returns the scalar members of v as strings. Objects contribute their
// "name", "@value" or "@id", in that order of preference.
func Strings(v any) []string {
	var out []string
	for _, item := range List(v) {
		s := AsString(item)
		if m, ok := item.(map[string]any); ok {
			s = firstOf(m, "name", "@value", "@id")
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// First returns the first string from Strings(v).
func First(v any) string {
	if s := Strings(v); len(s) > 0 {
		return s[0]
	}
	return ""
}

func firstOf(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := String(m, k); s != "" {
			return s
		}
	}
	return ""
}

// Types returns the @type values of m.
func Types(m map[string]any) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, item := range List(m["@type"]) {
		if s := AsString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasType reports whether m carries typ among its @type values.
func HasType(m map[string]any, typ string) bool {
	for _, t := range Types(m) {
		if t == typ {
			return true
		}
	}
	return false
}

// One collapses a single-element list to its element for compact output.
func One[T any](items []T) any {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}
	return items
}

// Marshal encodes v, indenting when pretty is set, with HTML escaping off.
func Marshal(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergeExtra appends the properties of extra to the encoded object base,
// sorted by key. Keys base already holds are left alone.
func MergeExtra(base []byte, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return base, nil
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(base, &present); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := present[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return base, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	if len(present) > 0 {
		buf.WriteByte(',')
	}
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		vb, err := json.Marshal(extra[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
