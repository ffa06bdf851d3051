package debugtrace

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// quote renders s as a quoted literal. Single quotes are preferred; double
// quotes are used only when s holds a single quote and no double quote.
// Length is counted in runes.
func (r *Renderer) quote(s string) string {
	cfg := &r.cfg
	var sb strings.Builder

	if n := utf8.RuneCountInString(s); n >= cfg.MinimumOutputLength {
		sb.WriteString("(" + fmt.Sprintf(cfg.StringLengthFormat, n) + ")")
	}

	q := quoteFor(s, cfg.StringLimit)
	sb.WriteRune(q)
	count := 0
	for _, c := range s {
		if count >= cfg.StringLimit {
			sb.WriteString(cfg.LimitString)
			break
		}
		switch {
		case c == q, c == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < ' ':
			fmt.Fprintf(&sb, `\x%02X`, c)
		default:
			sb.WriteRune(c)
		}
		count++
	}
	sb.WriteRune(q)
	return sb.String()
}

// quoteFor picks the quote character from the first limit runes of s.
func quoteFor(s string, limit int) rune {
	single, double := false, false
	count := 0
	for _, c := range s {
		if count >= limit {
			break
		}
		switch c {
		case '\'':
			single = true
		case '"':
			double = true
		}
		count++
	}
	if single && !double {
		return '"'
	}
	return '\''
}
