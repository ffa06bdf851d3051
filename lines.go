package debugtrace

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// --- One-line layout ---

// oneLine accumulates an optimistic single-line rendering and tracks its
// display width against MaximumDataOutputWidth.
type oneLine struct {
	sb    strings.Builder
	width int
	max   int
}

func (s *session) newLine(header string) *oneLine {
	l := &oneLine{max: s.r.cfg.MaximumDataOutputWidth}
	l.write(header)
	return l
}

// write appends text and reports whether the line still fits.
func (l *oneLine) write(text string) bool {
	l.sb.WriteString(text)
	l.width += runewidth.StringWidth(text)
	return l.width <= l.max
}

func (l *oneLine) close(closer string) []string {
	l.sb.WriteString(closer)
	return []string{l.sb.String()}
}

// --- Multi-line layout ---

// block is a multi-line rendering being assembled: a header line, one
// entry per child one level deeper, and a closing line at the current
// level.
type block struct {
	s      *session
	lines  []string
	indent string
}

func (s *session) newBlock(header string) *block {
	return &block{s: s, lines: []string{header}, indent: s.r.dataIndent(s.nest + 1)}
}

// deeper runs fn one nest level deeper. The level is restored on every
// exit path.
func (s *session) deeper(fn func()) {
	s.nest++
	defer func() { s.nest-- }()
	fn()
}

// add appends one entry. The first key line follows the indent; when a key
// is given, the separator and the first value line follow the last key
// line. Continuation lines are appended verbatim and the entry's last line
// gets a trailing comma.
func (b *block) add(key, value []string) {
	if len(key) > 0 {
		b.lines = append(b.lines, b.indent+key[0])
		b.lines = append(b.lines, key[1:]...)
		b.lines[len(b.lines)-1] += b.s.r.cfg.KeyValueSeparator + value[0]
	} else {
		b.lines = append(b.lines, b.indent+value[0])
	}
	b.lines = append(b.lines, value[1:]...)
	b.lines[len(b.lines)-1] += ","
}

// limit appends the truncation marker line.
func (b *block) limit() {
	b.lines = append(b.lines, b.indent+b.s.r.cfg.LimitString)
}

func (b *block) close(closer string) []string {
	return append(b.lines, b.s.r.dataIndent(b.s.nest)+closer)
}
