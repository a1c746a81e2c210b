package bibtex

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/goki/pi/langs/bibtex"
	"golang.org/x/text/unicode/norm"

	"github.com/lehigh-university-libraries/bolognese/helpers"
)

// entry is one @type{key, ...} block. Field names are lower-cased.
type entry struct {
	typ    string
	key    string
	fields map[string]string
}

var (
	blockTypeRegex = regexp.MustCompile(`^@\s*([A-Za-z]+)\s*([{(])`)
	bareValueRegex = regexp.MustCompile(`[=#]\s*([A-Za-z][\w-]*)`)
	numberRegex    = regexp.MustCompile(`(=\s*)(\d+)(\s*[,}]|\s*$)`)
	macroNameRegex = regexp.MustCompile(`(?i)^@\s*string\s*\{\s*([^\s=]+)\s*=`)
)

// entries parses every entry in data. Each @ block is parsed on its own so
// that one malformed entry only loses itself; @string blocks are carried into
// every later entry.
func entries(data []byte) []*entry {
	var (
		macros  []string
		defined = make(map[string]bool)
		out     []*entry
	)
	for _, block := range blocks(data) {
		m := blockTypeRegex.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		block = numberRegex.ReplaceAllString(braced(block, m[2] == "("), "${1}{${2}}${3}")

		switch strings.ToLower(m[1]) {
		case "comment", "preamble":
			continue
		case "string":
			if _, err := parseBlock(block, macros, defined); err != nil {
				continue
			}
			macros = append(macros, block)
			if n := macroNameRegex.FindStringSubmatch(block); n != nil {
				defined[n[1]] = true
			}
			continue
		}

		parsed, err := parseBlock(block, macros, defined)
		if err != nil {
			continue
		}
		for _, be := range parsed.Entries {
			e := &entry{
				typ:    strings.ToLower(be.Type),
				key:    strings.TrimSpace(be.CiteName),
				fields: make(map[string]string, len(be.Fields)),
			}
			for name, value := range be.Fields {
				e.fields[strings.ToLower(strings.TrimSpace(name))] = value.String()
			}
			out = append(out, e)
		}
	}
	return out
}

// parseBlock parses one block behind the macros seen so far. Bare words that
// no macro defines, month names included, stand for themselves.
func parseBlock(block string, macros []string, defined map[string]bool) (*bibtex.BibTex, error) {
	var src strings.Builder
	for _, m := range bareValueRegex.FindAllStringSubmatchIndex(block, -1) {
		word := block[m[2]:m[3]]
		rest := strings.TrimLeft(block[m[3]:], " \t\r\n")
		if defined[word] || rest != "" && strings.IndexByte("#,}", rest[0]) < 0 {
			continue
		}
		fmt.Fprintf(&src, "@string{%s = {%s}}\n", word, word)
	}
	for _, m := range macros {
		src.WriteString(m)
		src.WriteByte('\n')
	}
	src.WriteString(block)
	return bibtex.Parse(strings.NewReader(src.String()))
}

// blocks splits data on every '@' outside braces and quotes, and on any
// '@type{' that opens a line, so an unbalanced entry cannot swallow the next.
// Text before the first block is dropped.
func blocks(data []byte) []string {
	var (
		out    []string
		depth  int
		quoted bool
	)
	start := -1
	for i := 0; i < len(data); i++ {
		switch c := data[i]; {
		case c == '\\':
			i++
		case c == '{':
			depth++
		case c == '}':
			if depth > 0 {
				depth--
			}
		case c == '"' && depth == 0 && start >= 0:
			quoted = !quoted
		case c == '@' && (depth == 0 && !quoted || lineStart(data, i) && blockTypeRegex.Match(data[i:])):
			depth, quoted = 0, false
			if start >= 0 {
				out = append(out, string(bytes.TrimSpace(data[start:i])))
			}
			start = i
		}
	}
	if start >= 0 {
		out = append(out, string(bytes.TrimSpace(data[start:])))
	}
	return out
}

func lineStart(data []byte, i int) bool {
	for i--; i >= 0; i-- {
		switch data[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// braced rewrites an @type( ... ) block as @type{ ... }. A block missing its
// closing parenthesis is returned unchanged and fails to parse.
func braced(block string, paren bool) string {
	if !paren || !strings.HasSuffix(block, ")") {
		return block
	}
	open := strings.IndexByte(block, '(')
	return block[:open] + "{" + block[open+1:len(block)-1] + "}"
}

var accentRegex = regexp.MustCompile(`\{?\\([` + "`" + `'^"~=.])\{?\\?([A-Za-z])\}?\}?`)

var combining = map[string]string{
	"`":  "\u0300",
	"'":  "\u0301",
	"^":  "\u0302",
	"~":  "\u0303",
	"=":  "\u0304",
	".":  "\u0307",
	"\"": "\u0308",
}

// clean turns a raw field value into plain text: LaTeX accents become
// precomposed characters, escapes are undone and grouping braces dropped.
func clean(s string) string {
	s = accentRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := accentRegex.FindStringSubmatch(m)
		return sub[2] + combining[sub[1]]
	})

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			// unknown commands lose their backslash
			if i+1 < len(s) && strings.IndexByte("&%$#_{}", s[i+1]) >= 0 {
				i++
				b.WriteByte(s[i])
			}
		case c == '{', c == '}':
		case c == '~':
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return helpers.NormalizeWhitespace(norm.NFC.String(b.String()))
}
