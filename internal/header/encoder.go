package header

import (
	"fmt"
	"io"
	"strings"
)

// Encoder writes header text.
type Encoder struct {
	w   io.Writer
	err error
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Err returns the first write error.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Begin writes the file preamble.
func (e *Encoder) Begin() {
	e.printf("%s %d {\n", Magic, Version)
}

// End closes the root list and writes the delimiter.
func (e *Encoder) End() {
	e.printf("}\n%s", Delimiter)
}

func indent(depth int) string {
	return strings.Repeat("\t", depth)
}

// Scalar writes "name: value" at the given depth. The value is quoted
// when needed.
func (e *Encoder) Scalar(depth int, name, value string) {
	e.printf("%s%s: %s\n", indent(depth), Quote(name), Quote(value))
}

// Open starts a nested list. An empty typeName writes a plain attribute
// list, otherwise a typed bundle.
func (e *Encoder) Open(depth int, name, typeName string) {
	if typeName == "" {
		e.printf("%s%s: {\n", indent(depth), Quote(name))
		return
	}
	e.printf("%s%s: %s {\n", indent(depth), Quote(name), Quote(typeName))
}

// Close ends a nested list opened at depth.
func (e *Encoder) Close(depth int) {
	e.printf("%s}\n", indent(depth))
}

// NeedsQuote reports whether s must be quoted to be read back as one word.
func NeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '+' || c == '-':
		default:
			return true
		}
	}
	return false
}

// Quote returns s, quoted and escaped if necessary.
func Quote(s string) string {
	if !NeedsQuote(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}
