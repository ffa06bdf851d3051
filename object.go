package debugtrace

import (
	"fmt"
	"reflect"
)

// entry is one attribute ready for layout.
type entry struct {
	name   string
	value  reflect.Value
	hidden bool
	// text replaces the rendered value when set.
	text string
}

// reflective renders v as its type followed by its attributes. An
// Attributer supplies its own attributes; anything else goes through the
// renderer's AttributeLister.
func (s *session) reflective(v reflect.Value) []string {
	entries := s.attributes(v)
	header := s.r.typeHeader(v.Type(), -1) + "{"

	values := make([][]string, len(entries))
	s.deeper(func() {
		for i, e := range entries {
			values[i] = s.entryValue(e)
		}
	})

	if lines, ok := s.objectLine(header, entries, values); ok {
		return lines
	}
	b := s.newBlock(header)
	for i, e := range entries {
		b.add([]string{e.name}, values[i])
	}
	return b.close("}")
}

func (s *session) objectLine(header string, entries []entry, values [][]string) ([]string, bool) {
	l := s.newLine(header)
	for i, e := range entries {
		if i > 0 {
			l.write(", ")
		}
		if len(values[i]) > 1 {
			return nil, false
		}
		if !l.write(e.name + s.r.cfg.KeyValueSeparator + values[i][0]) {
			return nil, false
		}
	}
	return l.close("}"), true
}

func (s *session) entryValue(e entry) []string {
	switch {
	case e.hidden:
		return s.one(s.r.cfg.NonOutputString)
	case e.text != "":
		return s.one(e.text)
	default:
		return s.render(e.value)
	}
}

// attributes collects the entries of v. A panicking Attributes method is
// reported as a single entry instead of failing the render.
func (s *session) attributes(v reflect.Value) (entries []entry) {
	t := v.Type()
	if a, ok := asAttributer(v); ok {
		defer func() {
			if p := recover(); p != nil {
				entries = []entry{{
					name: "Attributes",
					text: fmt.Sprintf("(PANIC=Attributes method: %v)", p),
				}}
			}
		}()
		for _, attr := range a.Attributes() {
			entries = append(entries, entry{
				name:   attr.Name,
				value:  reflect.ValueOf(attr.Value),
				hidden: s.r.isHidden(t, attr.Name),
			})
		}
		return entries
	}

	for _, f := range s.r.lister.List(v) {
		entries = append(entries, entry{
			name:   f.Name,
			value:  f.Value,
			hidden: s.r.isHidden(t, f.Name),
		})
	}
	return entries
}
