package debugtrace

import (
	"reflect"
)

// TagName is the struct tag consulted by [StructFields]. A field tagged
// `debugtrace:"-"` is never listed.
const TagName = "debugtrace"

// StructFields lists the fields of a struct, or of the struct a pointer
// refers to, in declaration order. Func and chan fields are skipped.
type StructFields struct {
	// NonPublic includes unexported fields.
	NonPublic bool
}

var _ AttributeLister = StructFields{}

// List implements [AttributeLister].
func (l StructFields) List(v reflect.Value) []Field {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() && !l.NonPublic {
			continue
		}
		if sf.Tag.Get(TagName) == "-" {
			continue
		}
		switch sf.Type.Kind() {
		case reflect.Func, reflect.Chan:
			continue
		}
		fields = append(fields, Field{Name: sf.Name, Value: v.Field(i)})
	}
	return fields
}
