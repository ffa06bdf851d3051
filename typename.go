package debugtrace

import (
	"fmt"
	"reflect"
	"strings"
)

// typeName returns the runtime name of t with the interface {} decoration
// shortened to any.
func typeName(t reflect.Type) string {
	name := strings.ReplaceAll(t.String(), "interface {}", "any")
	if isEnum(t) {
		name = "enum " + name
	}
	return name
}

// isEnum reports whether t is marked with [Enum].
func isEnum(t reflect.Type) bool {
	return t.Implements(enumType)
}

// typeHeader returns the parenthesized type annotation. A negative count
// omits the count; otherwise it is shown once it reaches
// MinimumOutputCount.
func (r *Renderer) typeHeader(t reflect.Type, count int) string {
	if count < 0 || count < r.cfg.MinimumOutputCount {
		return "(" + typeName(t) + ")"
	}
	return "(" + typeName(t) + " " + fmt.Sprintf(r.cfg.CountFormat, count) + ")"
}

// baseTypeName names t after stripping pointers, as matched against
// ReflectionTypes and NonOutputFields.
func baseTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ReplaceAll(t.String(), "interface {}", "any")
}
