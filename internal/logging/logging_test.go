package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupWriterLevels(t *testing.T) {
	tests := map[string]struct {
		verbosity int
		want      zerolog.Level
	}{
		"default warn level":               {verbosity: 0, want: zerolog.WarnLevel},
		"info level":                       {verbosity: 1, want: zerolog.InfoLevel},
		"debug level":                      {verbosity: 2, want: zerolog.DebugLevel},
		"trace level":                      {verbosity: 3, want: zerolog.TraceLevel},
		"high verbosity defaults to trace": {verbosity: 7, want: zerolog.TraceLevel},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupWriter(&buf, tt.verbosity)
			l := Get("test")
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
	SetupWriter(os.Stderr, 0)
}

func TestGetAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, 0)
	defer SetupWriter(os.Stderr, 0)

	log := Get("config")
	log.Warn().Str("key", "string_limit").Msg("bad value")
	out := buf.String()
	assert.Contains(t, out, "bad value")
	assert.Contains(t, out, "component=config")
	assert.Contains(t, out, "key=string_limit")
}

func TestInfoSuppressedAtWarnLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, 0)
	defer SetupWriter(os.Stderr, 0)

	log := Get("config")
	log.Info().Msg("quiet")
	assert.NotContains(t, buf.String(), "quiet")
}

func TestIsTerminalNonFile(t *testing.T) {
	t.Parallel()
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.True(t, ConsoleWriter(&bytes.Buffer{}).NoColor)
}
