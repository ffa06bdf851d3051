package debugtrace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bjaus/debugtrace/internal/logging"
)

// Sink receives finished trace lines. String names the sink in the
// tracer's startup line.
type Sink interface {
	Print(line string)
	fmt.Stringer
}

// Logger names accepted by the logger option.
const (
	LoggerStdOut  = "StdOut"
	LoggerStdErr  = "StdErr"
	LoggerFile    = "File"
	LoggerZerolog = "Zerolog"
	LoggerZap     = "Zap"
)

// NewSink builds the sink selected by cfg.Logger. Names match case
// insensitively.
func NewSink(cfg Config) (Sink, error) {
	switch strings.ToLower(cfg.Logger) {
	case strings.ToLower(LoggerStdOut):
		return NewWriterSink(LoggerStdOut, os.Stdout, cfg.LogDatetimeFormat), nil
	case strings.ToLower(LoggerStdErr):
		return NewWriterSink(LoggerStdErr, os.Stderr, cfg.LogDatetimeFormat), nil
	case strings.ToLower(LoggerFile):
		return NewFileSink(cfg.LogFile, cfg.LogFileMaxSize, cfg.LogDatetimeFormat), nil
	case strings.ToLower(LoggerZerolog):
		l := zerolog.New(logging.ConsoleWriter(os.Stderr)).With().Timestamp().Logger()
		return NewZerologSink(l, cfg.LoggingLevel), nil
	case strings.ToLower(LoggerZap):
		l, err := zap.NewDevelopmentConfig().Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build zap logger: %w", err)
		}
		return NewZapSink(l, cfg.LoggingLevel), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogger, cfg.Logger)
	}
}

// --- Writer ---

// WriterSink writes timestamped lines to an io.Writer.
type WriterSink struct {
	name   string
	layout string
	mu     sync.Mutex
	w      io.Writer
	now    func() time.Time
}

// NewWriterSink returns a sink writing `<timestamp> <line>` to w. An empty
// layout writes bare lines.
func NewWriterSink(name string, w io.Writer, layout string) *WriterSink {
	return &WriterSink{name: name, layout: layout, w: w, now: time.Now}
}

// Print implements [Sink].
func (s *WriterSink) Print(line string) {
	if s.layout != "" {
		line = s.now().Format(s.layout) + " " + line
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, line+"\n")
}

func (s *WriterSink) String() string { return s.name }

// --- File ---

// FileSink is a [WriterSink] over a size-rotated log file.
type FileSink struct {
	*WriterSink
	file *lumberjack.Logger
}

// NewFileSink opens path lazily on the first line and rotates it once it
// reaches maxSizeMB megabytes.
func NewFileSink(path string, maxSizeMB int, layout string) *FileSink {
	f := &lumberjack.Logger{
		Filename: path,
		MaxSize:  maxSizeMB,
	}
	return &FileSink{
		WriterSink: NewWriterSink(LoggerFile+"("+path+")", f, layout),
		file:       f,
	}
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	return s.file.Close()
}

// --- Zerolog ---

// ZerologSink forwards lines to a zerolog logger.
type ZerologSink struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewZerologSink logs every line at level, one of CRITICAL, ERROR,
// WARNING, INFO, DEBUG or NOTSET.
func NewZerologSink(logger zerolog.Logger, level string) *ZerologSink {
	return &ZerologSink{logger: logger, level: zerologLevel(level)}
}

// Print implements [Sink].
func (s *ZerologSink) Print(line string) {
	s.logger.WithLevel(s.level).Msg(line)
}

func (s *ZerologSink) String() string { return LoggerZerolog }

func zerologLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "CRITICAL", "ERROR":
		return zerolog.ErrorLevel
	case "WARNING", "WARN":
		return zerolog.WarnLevel
	case "INFO":
		return zerolog.InfoLevel
	case "NOTSET":
		return zerolog.TraceLevel
	default:
		return zerolog.DebugLevel
	}
}

// --- Zap ---

// ZapSink forwards lines to a zap logger.
type ZapSink struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewZapSink logs every line at level, named as for [NewZerologSink].
func NewZapSink(logger *zap.Logger, level string) *ZapSink {
	return &ZapSink{logger: logger, level: zapLevel(level)}
}

// Print implements [Sink].
func (s *ZapSink) Print(line string) {
	s.logger.Log(s.level, line)
}

func (s *ZapSink) String() string { return LoggerZap }

// Close flushes buffered entries.
func (s *ZapSink) Close() error {
	return s.logger.Sync()
}

func zapLevel(name string) zapcore.Level {
	switch strings.ToUpper(name) {
	case "CRITICAL", "ERROR":
		return zapcore.ErrorLevel
	case "WARNING", "WARN":
		return zapcore.WarnLevel
	case "INFO":
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
