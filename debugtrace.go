package debugtrace

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Version is the library version reported in the startup line of the
// default tracer.
const Version = "1.0.0"

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidConfig = errors.New("invalid config value")
	ErrUnknownLogger = errors.New("unknown logger")
)

// --- Opt-in Interfaces ---

// Attribute is a single named value shown by the reflective renderer.
type Attribute struct {
	Name  string
	Value any
}

// Attributer lets a type choose the attributes it is rendered with.
// Without it, struct fields are enumerated by the renderer's
// [AttributeLister].
type Attributer interface {
	Attributes() []Attribute
}

// Enum marks a type as an enumeration. Its type name is shown with an
// "enum " prefix.
type Enum interface {
	fmt.Stringer
	Enum()
}

// AttributeLister enumerates the attributes of an object value. It is only
// consulted for values that do not implement [Attributer].
type AttributeLister interface {
	List(v reflect.Value) []Field
}

// Field is one attribute produced by an [AttributeLister].
type Field struct {
	Name  string
	Value reflect.Value
}

var (
	attributerType = reflect.TypeFor[Attributer]()
	stringerType   = reflect.TypeFor[fmt.Stringer]()
	errorType      = reflect.TypeFor[error]()
	enumType       = reflect.TypeFor[Enum]()
)

// --- Package entry points ---

// Render renders v into lines using the default tracer's configuration.
func Render(v any) []string {
	return Default().Renderer().Render(v)
}

// Sprint renders v and joins the lines with newlines.
func Sprint(v any) string {
	return strings.Join(Render(v), "\n")
}

// Fprint writes name and the rendering of v to w, one line per rendered
// line, without timestamps or call-depth indentation.
func Fprint(w io.Writer, name string, v any) error {
	return Default().Renderer().Fprint(w, name, v)
}
