package jsonutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	data := []byte("{\n  \"a\": 1,\n  \"b\" 2\n}")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{16, 3, 5},
		{999, 4, 2},
	}
	for _, tt := range tests {
		line, col := Position(data, tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	data := []byte("{\n  \"title\": \"x\",\n  \"year\" 2020\n}")
	var v any
	err := Decode(data, &v)

	var syntax *SyntaxError
	require.True(t, errors.As(err, &syntax))
	assert.Equal(t, 3, syntax.Line)
	assert.Contains(t, syntax.Msg, "invalid character '2'")
}

func TestDecodeTrimsBOM(t *testing.T) {
	var v map[string]any
	require.NoError(t, Decode([]byte("\xEF\xBB\xBF{\"a\":\"b\"}"), &v))
	assert.Equal(t, "b", v["a"])
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate([]byte(`{"a": [1, 2]}`)))

	errs := Validate([]byte("[1,\n2,"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "2:3: ERROR: unexpected end of JSON input")
}

func TestDocuments(t *testing.T) {
	docs, err := Documents([]byte(`[{"a": 1}, "skip", {"b": 2}]`))
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = Documents([]byte(`{"a": 1}`))
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = Documents([]byte(`"text"`))
	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	m := map[string]any{
		"name":     " Dataset ",
		"version":  float64(2),
		"keywords": []any{"a", map[string]any{"name": "b"}, map[string]any{"@id": "http://x"}, float64(3)},
		"@type":    []any{"Dataset", "CreativeWork"},
		"author":   map[string]any{"name": "x"},
	}

	assert.Equal(t, "Dataset", String(m, "name"))
	assert.Equal(t, "2", String(m, "version"))
	assert.Equal(t, "", String(m, "missing"))
	assert.Equal(t, []string{"a", "b", "http://x", "3"}, Strings(m["keywords"]))
	assert.Equal(t, "a", First(m["keywords"]))
	assert.Equal(t, []string{"Dataset", "CreativeWork"}, Types(m))
	assert.True(t, HasType(m, "CreativeWork"))
	assert.Len(t, Objects(m["author"]), 1)
	assert.Nil(t, List(nil))
}

func TestOne(t *testing.T) {
	assert.Nil(t, One([]string{}))
	assert.Equal(t, "a", One([]string{"a"}))
	assert.Equal(t, []string{"a", "b"}, One([]string{"a", "b"}))
}

func TestMarshalKeepsHTML(t *testing.T) {
	out, err := Marshal(map[string]string{"a": "<b>&"}, false)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":\"<b>&\"}\n", string(out))
}

func TestMergeExtra(t *testing.T) {
	out, err := MergeExtra([]byte(`{"name":"x"}`), map[string]any{"zeta": 1, "alpha": []any{"a"}, "name": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x","alpha":["a"],"zeta":1}`, string(out))

	out, err = MergeExtra([]byte(`{}`), map[string]any{"a": true})
	require.NoError(t, err)
	assert.Equal(t, `{"a":true}`, string(out))

	out, err = MergeExtra([]byte(`{"name":"x"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x"}`, string(out))
}
