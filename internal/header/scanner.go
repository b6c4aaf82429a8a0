package header

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Magic is the word that opens every Vista data file.
const Magic = "V-data"

// Version is the file format version this package reads and writes.
const Version = 2

// Delimiter separates the textual header from the binary data segment.
const Delimiter = "\f\n"

// ErrSyntax marks malformed header text.
var ErrSyntax = errors.New("header syntax error")

// TokenKind classifies a header token.
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	Word
	String
	Colon
	LBrace
	RBrace
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Word:
		return "word"
	case String:
		return "string"
	case Colon:
		return "':'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	}
	return "unknown token"
}

// Token is one lexical element of a header.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// Scanner tokenizes header text read from a buffered reader.
type Scanner struct {
	r      *bufio.Reader
	offset int64
	line   int
	peeked *Token
}

// NewScanner creates a scanner reading from r. Bytes after the delimiter
// remain unread in r.
func NewScanner(r *bufio.Reader) *Scanner {
	return &Scanner{r: r, line: 1}
}

// Offset returns the number of bytes consumed so far. After
// ReadDelimiter it is the file offset of the binary data segment.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// Line returns the current line number, starting at 1.
func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) readByte() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.offset++
	if c == '\n' {
		s.line++
	}
	return c, nil
}

func (s *Scanner) unreadByte(c byte) {
	// Only called directly after a successful readByte.
	_ = s.r.UnreadByte()
	s.offset--
	if c == '\n' {
		s.line--
	}
}

func (s *Scanner) errorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("line %d: "+format, append([]interface{}{s.line}, args...)...), ErrSyntax)
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (Token, error) {
	if s.peeked != nil {
		return *s.peeked, nil
	}
	tok, err := s.scan()
	if err != nil {
		return Token{}, err
	}
	s.peeked = &tok
	return tok, nil
}

// Next consumes and returns the next token.
func (s *Scanner) Next() (Token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.scan()
}

// Expect consumes the next token and fails unless it has the given kind.
func (s *Scanner) Expect(kind TokenKind) (Token, error) {
	tok, err := s.Next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, s.errorf("expected %s, found %s %q", kind, tok.Kind, tok.Text)
	}
	return tok, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordByte(c byte) bool {
	return !isSpace(c) && c != '"' && c != ':' && c != '{' && c != '}' && c != '\f'
}

func (s *Scanner) scan() (Token, error) {
	var c byte
	var err error
	for {
		c, err = s.readByte()
		if err == io.EOF {
			return Token{Kind: EOF, Line: s.line}, nil
		}
		if err != nil {
			return Token{}, errors.Wrap(err, "reading header")
		}
		if !isSpace(c) {
			break
		}
	}

	line := s.line
	switch c {
	case ':':
		return Token{Kind: Colon, Text: ":", Line: line}, nil
	case '{':
		return Token{Kind: LBrace, Text: "{", Line: line}, nil
	case '}':
		return Token{Kind: RBrace, Text: "}", Line: line}, nil
	case '"':
		return s.scanString(line)
	case '\f':
		return Token{}, s.errorf("unexpected delimiter inside header")
	}

	var sb strings.Builder
	sb.WriteByte(c)
	for {
		c, err = s.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, errors.Wrap(err, "reading header")
		}
		if !isWordByte(c) {
			s.unreadByte(c)
			break
		}
		sb.WriteByte(c)
	}
	return Token{Kind: Word, Text: sb.String(), Line: line}, nil
}

func (s *Scanner) scanString(line int) (Token, error) {
	var sb strings.Builder
	for {
		c, err := s.readByte()
		if err == io.EOF {
			return Token{}, s.errorf("unterminated string")
		}
		if err != nil {
			return Token{}, errors.Wrap(err, "reading header")
		}
		switch c {
		case '"':
			return Token{Kind: String, Text: sb.String(), Line: line}, nil
		case '\\':
			c, err = s.readByte()
			if err != nil {
				return Token{}, s.errorf("unterminated string")
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
}

// ReadMagic consumes the "V-data <version> {" preamble and returns the
// version number.
func (s *Scanner) ReadMagic() (int, error) {
	tok, err := s.Next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != Word || tok.Text != Magic {
		return 0, s.errorf("missing %q file header", Magic)
	}
	tok, err = s.Expect(Word)
	if err != nil {
		return 0, err
	}
	version := 0
	for _, c := range tok.Text {
		if c < '0' || c > '9' {
			return 0, s.errorf("bad file version %q", tok.Text)
		}
		version = version*10 + int(c-'0')
	}
	if _, err := s.Expect(LBrace); err != nil {
		return 0, err
	}
	return version, nil
}

// ReadDelimiter consumes the text between the closing brace of the header
// and the end of the delimiter. Only whitespace may precede the "\f".
func (s *Scanner) ReadDelimiter() error {
	if s.peeked != nil {
		return s.errorf("unexpected %s before delimiter", s.peeked.Kind)
	}
	for {
		c, err := s.readByte()
		if err != nil {
			return s.errorf("missing header delimiter")
		}
		if c == Delimiter[0] {
			break
		}
		if !isSpace(c) {
			return s.errorf("unexpected %q before delimiter", c)
		}
	}
	c, err := s.readByte()
	if err != nil || c != Delimiter[1] {
		return s.errorf("malformed header delimiter")
	}
	return nil
}
