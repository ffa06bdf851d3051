package debugtrace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bjaus/debugtrace/internal/logging"
)

// Tracer writes enter/leave lines and named values to a [Sink], indented
// by the current call depth. A Tracer is safe for concurrent use, though
// interleaved goroutines share one call depth.
type Tracer struct {
	cfg         Config
	renderer    *Renderer
	sink        Sink
	codeIndents []string

	mu       sync.Mutex
	nest     int
	prevNest int
}

// Option configures a [Tracer].
type Option func(*Tracer)

// WithSink sends trace lines to s instead of the sink named by the config.
func WithSink(s Sink) Option {
	return func(t *Tracer) { t.sink = s }
}

// WithRenderer replaces the renderer built from the config.
func WithRenderer(r *Renderer) Option {
	return func(t *Tracer) { t.renderer = r }
}

// NewTracer returns a Tracer for cfg. When the configured sink cannot be
// built, a warning is logged and lines go to standard error.
func NewTracer(cfg Config, opts ...Option) *Tracer {
	t := &Tracer{
		cfg:         cfg,
		codeIndents: indentTable(cfg.CodeIndentString, cfg.MaximumIndents),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.renderer == nil {
		t.renderer = NewRenderer(cfg)
	}
	if t.sink == nil {
		s, err := NewSink(cfg)
		if err != nil {
			log := logging.Get("tracer")
			log.Warn().Err(err).Msg("Falling back to StdErr")
			s = NewWriterSink(LoggerStdErr, os.Stderr, cfg.LogDatetimeFormat)
		}
		t.sink = s
	}
	return t
}

// Renderer returns the renderer used by PrintValue.
func (t *Tracer) Renderer() *Renderer { return t.renderer }

// Sink returns the sink trace lines are written to.
func (t *Tracer) Sink() Sink { return t.sink }

// Enabled reports whether the tracer writes anything.
func (t *Tracer) Enabled() bool { return t.cfg.Enabled }

// Enter logs entry into the calling function and returns the matching
// leave function:
//
//	defer tr.Enter()()
func (t *Tracer) Enter() func() {
	return t.enter(2)
}

// enter logs the function skip frames above it.
func (t *Tracer) enter(skip int) func() {
	if !t.cfg.Enabled {
		return func() {}
	}

	name, file, line := caller(skip)

	t.mu.Lock()
	if t.nest < t.prevNest {
		t.sink.Print("")
	}
	t.sink.Print(t.indent() + t.cfg.EnterString + " " + fmt.Sprintf(t.cfg.EnterFormat, name, file, line))
	t.prevNest = t.nest
	t.nest++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.leave(name) })
	}
}

func (t *Tracer) leave(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prevNest = t.nest
	t.nest--
	t.sink.Print(t.indent() + t.cfg.LeaveString + " " + fmt.Sprintf(t.cfg.LeaveFormat, name))
}

// Print logs message at the current call depth.
func (t *Tracer) Print(message string) {
	if !t.cfg.Enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink.Print(t.indent() + message)
}

// PrintValue renders value and logs it as `name = value`, continuation
// lines at the same call depth.
func (t *Tracer) PrintValue(name string, value any) {
	if !t.cfg.Enabled {
		return
	}
	lines := t.renderer.Render(value)

	t.mu.Lock()
	defer t.mu.Unlock()
	indent := t.indent()
	for i, line := range lines {
		if i == 0 {
			line = name + t.cfg.VarNameValueSeparator + line
		}
		t.sink.Print(indent + line)
	}
}

// Close releases the sink when it holds resources.
func (t *Tracer) Close() error {
	if c, ok := t.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *Tracer) indent() string {
	return clampIndent(t.codeIndents, t.nest)
}

// caller names the function, file base name and line skip frames above
// its own caller.
func caller(skip int) (name, file string, line int) {
	pc, path, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?", "?", 0
	}
	name = "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return name, filepath.Base(path), line
}
