package debugtrace

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
)

// Renderer turns values into lines of text. A Renderer is immutable and
// safe for concurrent use: every call to [Renderer.Render] runs in its own
// session holding the cycle guard and nest level.
type Renderer struct {
	cfg         Config
	dataIndents []string
	lister      AttributeLister
	reflected   map[string]bool
	hidden      map[string]bool
}

// RendererOption configures a [Renderer].
type RendererOption func(*Renderer)

// WithAttributeLister replaces the default [StructFields] enumeration.
func WithAttributeLister(l AttributeLister) RendererOption {
	return func(r *Renderer) { r.lister = l }
}

// NewRenderer returns a Renderer for cfg.
func NewRenderer(cfg Config, opts ...RendererOption) *Renderer {
	r := &Renderer{
		cfg:         cfg,
		dataIndents: indentTable(cfg.DataIndentString, cfg.MaximumIndents),
		lister:      StructFields{NonPublic: cfg.OutputNonPublicFields},
		reflected:   make(map[string]bool, len(cfg.ReflectionTypes)),
		hidden:      make(map[string]bool, len(cfg.NonOutputFields)),
	}
	for _, name := range cfg.ReflectionTypes {
		r.reflected[name] = true
	}
	for _, name := range cfg.NonOutputFields {
		r.hidden[name] = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the configuration the Renderer was built with.
func (r *Renderer) Config() Config { return r.cfg }

// Render renders v. The result always has at least one line; a multi-line
// result opens a block on the first line and closes it on the last.
func (r *Renderer) Render(v any) []string {
	s := &session{r: r}
	return s.render(reflect.ValueOf(v))
}

// Fprint writes name and the rendering of v to w.
func (r *Renderer) Fprint(w io.Writer, name string, v any) error {
	for i, line := range r.Render(v) {
		if i == 0 {
			line = name + r.cfg.VarNameValueSeparator + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) dataIndent(level int) string {
	return clampIndent(r.dataIndents, level)
}

// forceReflect reports whether t is listed in ReflectionTypes.
func (r *Renderer) forceReflect(t reflect.Type) bool {
	return len(r.reflected) > 0 && (r.reflected[typeName(t)] || r.reflected[baseTypeName(t)])
}

// isHidden reports whether the attribute name of an object of type t is
// listed in NonOutputFields, either bare or as Type.Field.
func (r *Renderer) isHidden(t reflect.Type, name string) bool {
	return len(r.hidden) > 0 && (r.hidden[name] || r.hidden[baseTypeName(t)+"."+name])
}

// identity is the pointer identity of a value on the active render path.
type identity struct {
	ptr uintptr
	typ reflect.Type
	// len tells apart sub-slices sharing a data pointer.
	len int
}

// session is the state of one top-level Render call.
type session struct {
	r *Renderer
	// reflected is the cycle guard: objects being rendered reflectively,
	// innermost last.
	reflected []identity
	// visiting holds the maps, slices and pointers on the active path.
	visiting map[identity]bool
	nest     int
}

func (s *session) one(text string) []string {
	return []string{text}
}

func (s *session) render(v reflect.Value) []string {
	cfg := &s.r.cfg
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if isNil(v) {
		return s.one(cfg.NilString)
	}

	t := v.Type()
	if s.r.forceReflect(t) {
		return s.object(v)
	}
	// time.Time and time.Duration render through their String methods here.
	if text, ok := nativeText(v); ok {
		return s.one(text)
	}
	if _, ok := asAttributer(v); ok {
		return s.object(v)
	}

	switch v.Kind() {
	case reflect.String:
		return s.one(s.r.quote(v.String()))
	case reflect.Bool:
		return s.one(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return s.one(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return s.one(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		return s.one(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		return s.one(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64:
		return s.one(strconv.FormatComplex(v.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		return s.one(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.Slice:
		return s.container(v, sequence)
	case reflect.Array:
		return s.container(v, tuple)
	case reflect.Map:
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			return s.container(v, set)
		}
		return s.container(v, mapping)
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return s.object(v)
		}
		leave, ok := s.visit(v)
		if !ok {
			return s.one(cfg.CyclicReferenceString)
		}
		defer leave()
		return s.render(v.Elem())
	case reflect.Struct:
		return s.object(v)
	default:
		return s.one(fmt.Sprint(v))
	}
}

// object applies the cycle guard and reflection nest limit around the
// reflective renderer.
func (s *session) object(v reflect.Value) []string {
	id := identityOf(v)
	if id.ptr != 0 && slices.Contains(s.reflected, id) {
		return s.one(s.r.cfg.CyclicReferenceString)
	}
	if len(s.reflected) > s.r.cfg.ReflectionNestLimit {
		return s.one(s.r.cfg.LimitString)
	}

	s.reflected = append(s.reflected, id)
	defer func() { s.reflected = s.reflected[:len(s.reflected)-1] }()
	return s.reflective(v)
}

// visit marks a map, slice or pointer as being rendered. It reports false
// when the value is already on the active path.
func (s *session) visit(v reflect.Value) (leave func(), ok bool) {
	id := identityOf(v)
	if id.ptr == 0 {
		return func() {}, true
	}
	if s.visiting[id] {
		return nil, false
	}
	if s.visiting == nil {
		s.visiting = make(map[identity]bool)
	}
	s.visiting[id] = true
	return func() { delete(s.visiting, id) }, true
}

func identityOf(v reflect.Value) identity {
	switch v.Kind() {
	case reflect.Slice:
		return identity{ptr: v.Pointer(), typ: v.Type(), len: v.Len()}
	case reflect.Pointer, reflect.Map:
		return identity{ptr: v.Pointer(), typ: v.Type()}
	default:
		if v.CanAddr() {
			return identity{ptr: v.UnsafeAddr(), typ: reflect.PointerTo(v.Type())}
		}
		return identity{}
	}
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// nativeText returns the value's own textual form when it implements
// fmt.Stringer or error. A panicking method is reported inline the way fmt
// reports it.
func nativeText(v reflect.Value) (text string, ok bool) {
	var fn func() string
	var method string
	recv, found := implementing(v, errorType)
	if found {
		fn, method = recv.Interface().(error).Error, "Error"
	} else if recv, found = implementing(v, stringerType); found {
		fn, method = recv.Interface().(fmt.Stringer).String, "String"
	} else {
		return "", false
	}

	defer func() {
		if p := recover(); p != nil {
			text, ok = fmt.Sprintf("(PANIC=%s method: %v)", method, p), true
		}
	}()
	return fn(), true
}

// implementing returns v, or its address for pointer-receiver methods, when
// it implements iface and can be called.
func implementing(v reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	if !v.CanInterface() {
		return reflect.Value{}, false
	}
	if v.Type().Implements(iface) {
		return v, true
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(iface) {
		return v.Addr(), true
	}
	return reflect.Value{}, false
}

func asAttributer(v reflect.Value) (Attributer, bool) {
	recv, ok := implementing(v, attributerType)
	if !ok {
		return nil, false
	}
	return recv.Interface().(Attributer), true
}
