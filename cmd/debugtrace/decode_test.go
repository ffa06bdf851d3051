package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"json":      {input: "json", want: JSON},
		"yaml":      {input: "yaml", want: YAML},
		"yml alias": {input: "yml", want: YAML},
		"jsonl":     {input: "jsonl", want: JSONL},
		"ndjson":    {input: "ndjson", want: JSONL},
		"toml":      {input: "TOML", want: TOML},
		"unknown":   {input: "xml", wantErr: true},
		"empty":     {input: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeAll(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format Format
		input  string
		want   []any
	}{
		"json object": {
			format: JSON,
			input:  `{"name": "x", "tags": ["a", "b"]}`,
			want:   []any{map[string]any{"name": "x", "tags": []any{"a", "b"}}},
		},
		"jsonl stream": {
			format: JSONL,
			input:  "{\"n\": 1}\n{\"n\": 2}\n",
			want:   []any{map[string]any{"n": json.Number("1")}, map[string]any{"n": json.Number("2")}},
		},
		"json large integer": {
			format: JSON,
			input:  `[12345678901234567890, 1.5]`,
			want:   []any{[]any{json.Number("12345678901234567890"), json.Number("1.5")}},
		},
		"yaml mapping": {
			format: YAML,
			input:  "name: x\nport: 8080\n",
			want:   []any{map[string]any{"name": "x", "port": 8080}},
		},
		"yaml documents": {
			format: YAML,
			input:  "a: 1\n---\nb: 2\n",
			want:   []any{map[string]any{"a": 1}, map[string]any{"b": 2}},
		},
		"toml table": {
			format: TOML,
			input:  "name = \"x\"\nport = 8080\n",
			want:   []any{map[string]any{"name": "x", "port": int64(8080)}},
		},
		"empty json": {
			format: JSON,
			input:  "",
			want:   nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := decodeAll(strings.NewReader(tc.input), tc.format)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeAll_Malformed(t *testing.T) {
	t.Parallel()

	_, err := decodeAll(strings.NewReader(`{"a": 1} {`), JSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode json")
}

func TestDocuments_StopsEarly(t *testing.T) {
	t.Parallel()

	var seen int
	for doc, err := range documents(strings.NewReader("1 2 3"), JSON) {
		require.NoError(t, err)
		assert.Equal(t, json.Number("1"), doc)
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestFormats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Format{JSON, JSONL, YAML, TOML}, Formats())
	assert.Equal(t, "toml", TOML.String())
}
