package debugtrace

import (
	"sync"

	"github.com/bjaus/debugtrace/internal/logging"
)

var (
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
	defaultTracer *Tracer
)

// Default returns the package tracer, building it from [LoadConfig] on
// first use. Building it logs the startup line
// `debugtrace <version> logger: <sink>`.
func Default() *Tracer {
	defaultOnce.Do(func() {
		cfg, err := LoadConfig("")
		if err != nil {
			log := logging.Get("tracer")
			log.Warn().Err(err).Msg("Config has invalid values")
		}
		t := NewTracer(cfg)
		t.Print("debugtrace " + Version + " logger: " + t.Sink().String())

		defaultMu.Lock()
		if defaultTracer == nil {
			defaultTracer = t
		}
		defaultMu.Unlock()
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultTracer
}

// SetDefault replaces the package tracer.
func SetDefault(t *Tracer) {
	defaultOnce.Do(func() {})
	defaultMu.Lock()
	defaultTracer = t
	defaultMu.Unlock()
}

// Enter logs entry into the calling function on the package tracer:
//
//	defer debugtrace.Enter()()
func Enter() func() {
	return Default().enter(2)
}

// Print logs message on the package tracer.
func Print(message string) {
	Default().Print(message)
}

// PrintValue logs name and the rendering of value on the package tracer.
func PrintValue(name string, value any) {
	Default().PrintValue(name, value)
}
