// Package debugtrace renders arbitrary values as indented, human-readable
// text and writes them, together with function enter/leave lines, to a
// trace log.
//
// The central entry points are [Enter] and [PrintValue] on the package
// tracer:
//
//	func run(args []string) {
//		defer debugtrace.Enter()()
//		debugtrace.PrintValue("args", args)
//	}
//
// which logs
//
//	Enter main.run (main.go:12)
//	|   args = ([]string count:2)['-v', 'in.toml']
//	Leave main.run
//
// # Rendering
//
// A [Renderer] turns one value into lines of text. Every value first tries
// the one-line layout; a value that does not fit in MaximumDataOutputWidth
// columns, or that contains a multi-line child, is laid out with one entry
// per line:
//
//   - strings are quoted, with a (length:N) prefix from MinimumOutputLength
//   - slices render as [...], arrays as (...), maps and sets as {...}
//   - structs render as (pkg.Type){Field: value, ...}
//   - values implementing fmt.Stringer or error render as their own text
//
// Collections are cut at CollectionLimit and strings at StringLimit with
// LimitString. An object already being rendered on the current path renders
// as CyclicReferenceString, and objects nested deeper than
// ReflectionNestLimit as LimitString.
//
// Implement [Attributer] to choose the attributes a type is shown with, or
// pass [WithAttributeLister] to change how struct fields are enumerated.
// Fields tagged `debugtrace:"-"` are skipped by the default lister.
// Types implementing [Enum] are named with an "enum " prefix in headers.
//
// # Tracing
//
// A [Tracer] prefixes every line with the call-depth indent and writes it
// to a [Sink]: standard output or error, a rotating file, a zerolog logger
// or a zap logger. [Default] builds the package tracer from [LoadConfig].
//
// # Configuration
//
// [LoadConfig] layers built-in defaults, a debugtrace.toml or debugtrace.yaml
// file and DEBUGTRACE_* environment variables. An invalid value is logged
// and the default kept.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidConfig] — a config value was rejected
//   - [ErrUnknownLogger] — the logger option names no sink
package debugtrace
