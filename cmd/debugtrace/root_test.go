package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/debugtrace"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "debugtrace "+debugtrace.Version+"\n", out)
}

func TestRenderCmd_Stdin(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format string
		input  string
	}{
		"json": {format: "json", input: `{"a": 1}`},
		"yaml": {format: "yaml", input: "a: 1\n"},
		"toml": {format: "toml", input: "a = 1\n"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := execute(t, tc.input, "render", "--plain", "--format", tc.format)
			require.NoError(t, err)
			assert.Equal(t, "stdin = (map[string]any){'a': 1}\n", out)
		})
	}
}

func TestRenderCmd_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1, "b": [1, 2]}`), 0o600))

	out, err := execute(t, "", "render", "--plain", path)
	require.NoError(t, err)
	assert.Equal(t, path+" = (map[string]any count:2){'a': 1, 'b': ([]any count:2)[1, 2]}\n", out)
}

func TestRenderCmd_Stream(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("\"start\"\n[1, 2]\n"), 0o600))

	out, err := execute(t, "", "render", "--plain", path)
	require.NoError(t, err)
	assert.Equal(t, path+"[0] = (length:5)'start'\n"+path+"[1] = ([]any count:2)[1, 2]\n", out)
}

func TestRenderCmd_LargeIntegers(t *testing.T) {
	t.Parallel()

	out, err := execute(t, `{"id": 12345678901234567890}`, "render", "--plain", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "stdin = (map[string]any){'id': 12345678901234567890}\n", out)
}

func TestRenderCmd_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<a/>`), 0o600))

	_, err := execute(t, "", "render", "--plain", path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "debugtrace.toml")
	require.NoError(t, os.WriteFile(path, []byte("[debugtrace]\nstring_limit = 12\n"), 0o600))

	out, err := execute(t, "", "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[debugtrace]")
	assert.Contains(t, out, "string_limit = 12")
	assert.Contains(t, out, "collection_limit = 256")
}
