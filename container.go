package debugtrace

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// containerKind selects brackets and entry shape.
type containerKind int

const (
	sequence containerKind = iota // slice
	tuple                         // array
	set                           // map[K]struct{}
	mapping                       // map
)

var brackets = map[containerKind][2]string{
	sequence: {"[", "]"},
	tuple:    {"(", ")"},
	set:      {"{", "}"},
	mapping:  {"{", "}"},
}

// item is one container entry. key is only valid for mappings.
type item struct {
	key   reflect.Value
	value reflect.Value
}

func (s *session) container(v reflect.Value, kind containerKind) []string {
	leave, ok := s.visit(v)
	if !ok {
		return s.one(s.r.cfg.CyclicReferenceString)
	}
	defer leave()

	items := containerItems(v, kind)
	limit := max(s.r.cfg.CollectionLimit, 0)
	truncated := len(items) > limit
	if truncated {
		items = items[:limit]
	}

	// Children are rendered once, one level deeper, and shared by both
	// layouts.
	keys := make([][]string, len(items))
	values := make([][]string, len(items))
	s.deeper(func() {
		for i, it := range items {
			if kind == mapping {
				keys[i] = s.render(it.key)
			}
			values[i] = s.render(it.value)
		}
	})

	pair := brackets[kind]
	header := s.r.typeHeader(v.Type(), v.Len()) + pair[0]
	if lines, ok := s.containerLine(header, pair[1], keys, values, truncated); ok {
		return lines
	}

	b := s.newBlock(header)
	for i := range values {
		b.add(keys[i], values[i])
	}
	if truncated {
		b.limit()
	}
	return b.close(pair[1])
}

// containerLine attempts the one-line layout. It fails when an entry
// spans several lines or the line grows past the maximum width.
// Truncation at CollectionLimit still counts as one line.
func (s *session) containerLine(header, closer string, keys, values [][]string, truncated bool) ([]string, bool) {
	l := s.newLine(header)
	for i, value := range values {
		if i > 0 {
			l.write(", ")
		}
		key := keys[i]
		if len(key) > 1 || len(value) > 1 {
			return nil, false
		}
		text := value[0]
		if len(key) == 1 {
			text = key[0] + s.r.cfg.KeyValueSeparator + text
		}
		if !l.write(text) {
			return nil, false
		}
	}
	if truncated {
		if len(values) > 0 {
			l.write(", ")
		}
		l.write(s.r.cfg.LimitString)
	}
	return l.close(closer), true
}

// containerItems lists the entries of v. Map keys are sorted so output is
// stable between runs.
func containerItems(v reflect.Value, kind containerKind) []item {
	switch kind {
	case set, mapping:
		keys := v.MapKeys()
		slices.SortFunc(keys, compareKeys)
		items := make([]item, len(keys))
		for i, k := range keys {
			if kind == set {
				items[i] = item{value: k}
			} else {
				items[i] = item{key: k, value: v.MapIndex(k)}
			}
		}
		return items
	default:
		items := make([]item, v.Len())
		for i := range items {
			items[i] = item{value: v.Index(i)}
		}
		return items
	}
}

// compareKeys orders map keys: numbers and strings by value, anything else
// by its fmt rendering. Keys of different kinds order by kind.
func compareKeys(a, b reflect.Value) int {
	a, b = unwrapInterface(a), unwrapInterface(b)
	switch {
	case !a.IsValid() || !b.IsValid():
		return cmp.Compare(boolRank(a.IsValid()), boolRank(b.IsValid()))
	case a.Kind() != b.Kind():
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func unwrapInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
