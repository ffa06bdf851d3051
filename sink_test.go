package debugtrace_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bjaus/debugtrace"
)

func TestWriterSink(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		layout string
		want   string
	}{
		"timestamped": {layout: "2006-01-02 15:04:05.000000", want: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6} hello\n$`},
		"bare":        {layout: "", want: `^hello\n$`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			s := debugtrace.NewWriterSink("buf", &buf, tc.layout)
			s.Print("hello")
			assert.Regexp(t, tc.want, buf.String())
			assert.Equal(t, "buf", s.String())
		})
	}
}

func TestFileSink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trace.log")
	s := debugtrace.NewFileSink(path, 1, "")
	s.Print("first")
	s.Print("second")
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
	assert.Equal(t, "File("+path+")", s.String())
}

func TestZerologSink(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level string
		want  string
	}{
		"info":     {level: "INFO", want: `"level":"info"`},
		"warning":  {level: "WARNING", want: `"level":"warn"`},
		"critical": {level: "CRITICAL", want: `"level":"error"`},
		"default":  {level: "DEBUG", want: `"level":"debug"`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			s := debugtrace.NewZerologSink(zerolog.New(&buf), tc.level)
			s.Print("hello")
			assert.Contains(t, buf.String(), tc.want)
			assert.Contains(t, buf.String(), `"message":"hello"`)
		})
	}
}

func TestZapSink(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level string
		want  zapcore.Level
	}{
		"info":    {level: "INFO", want: zapcore.InfoLevel},
		"warning": {level: "WARNING", want: zapcore.WarnLevel},
		"error":   {level: "ERROR", want: zapcore.ErrorLevel},
		"notset":  {level: "NOTSET", want: zapcore.DebugLevel},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			core, logs := observer.New(zapcore.DebugLevel)
			s := debugtrace.NewZapSink(zap.New(core), tc.level)
			s.Print("hello")

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tc.want, entries[0].Level)
			assert.Equal(t, "hello", entries[0].Message)
		})
	}
}

func TestNewSink(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		logger  string
		want    string
		wantErr error
	}{
		"stdout":           {logger: "StdOut", want: "StdOut"},
		"stderr":           {logger: "StdErr", want: "StdErr"},
		"case insensitive": {logger: "stderr", want: "StdErr"},
		"zerolog":          {logger: "Zerolog", want: "Zerolog"},
		"zap":              {logger: "Zap", want: "Zap"},
		"unknown":          {logger: "Syslog", wantErr: debugtrace.ErrUnknownLogger},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := debugtrace.DefaultConfig()
			cfg.Logger = tc.logger
			s, err := debugtrace.NewSink(cfg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.String())
		})
	}
}

func TestTracer_ZapSinkEndToEnd(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	tr := debugtrace.NewTracer(debugtrace.DefaultConfig(),
		debugtrace.WithSink(debugtrace.NewZapSink(zap.New(core), "DEBUG")))
	tr.PrintValue("v", map[string]int{"a": 1})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "v = (map[string]int){'a': 1}", logs.All()[0].Message)
}
