package header

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func newScanner(s string) *Scanner {
	return NewScanner(bufio.NewReader(strings.NewReader(s)))
}

func TestScannerTokens(t *testing.T) {
	s := newScanner("name: \"two words\" {\n\tx: 1.5e3 }")
	var kinds []TokenKind
	var texts []string
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Kind == EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}
	require.Equal(t, []TokenKind{Word, Colon, String, LBrace, Word, Colon, Word, RBrace}, kinds)
	require.Equal(t, []string{"name", ":", "two words", "{", "x", ":", "1.5e3", "}"}, texts)
}

func TestScannerEscapes(t *testing.T) {
	s := newScanner(`"a \"b\" \\c"`)
	tok, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, String, tok.Kind)
	require.Equal(t, `a "b" \c`, tok.Text)
}

func TestScannerUnterminated(t *testing.T) {
	s := newScanner(`"abc`)
	_, err := s.Next()
	require.True(t, errors.Is(err, ErrSyntax))
}

func TestScannerPeek(t *testing.T) {
	s := newScanner("a b")
	tok, err := s.Peek()
	require.NoError(t, err)
	require.Equal(t, "a", tok.Text)
	tok, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, "a", tok.Text)
	tok, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, "b", tok.Text)
}

func TestScannerLines(t *testing.T) {
	s := newScanner("a\n\nb")
	tok, _ := s.Next()
	require.Equal(t, 1, tok.Line)
	tok, _ = s.Next()
	require.Equal(t, 3, tok.Line)
}

func TestReadMagicAndDelimiter(t *testing.T) {
	input := "V-data 2 {\n}\n\f\n\x00\x01binary"
	br := bufio.NewReader(strings.NewReader(input))
	s := NewScanner(br)

	version, err := s.ReadMagic()
	require.NoError(t, err)
	require.Equal(t, 2, version)

	_, err = s.Expect(RBrace)
	require.NoError(t, err)
	require.NoError(t, s.ReadDelimiter())
	require.Equal(t, int64(strings.Index(input, "\x00")), s.Offset())

	rest, err := io.ReadAll(br)
	require.NoError(t, err)
	require.Equal(t, []byte("\x00\x01binary"), rest)
}

func TestReadMagicErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"P5 2 {",
		"V-data two {",
		"V-data 2 x",
	} {
		_, err := newScanner(input).ReadMagic()
		require.Error(t, err, "input %q", input)
	}
}

func TestReadDelimiterErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"x\f\n",
		"\f\r",
		"\n\n",
	} {
		err := newScanner(input).ReadDelimiter()
		require.True(t, errors.Is(err, ErrSyntax), "input %q: %v", input, err)
	}
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.Begin()
	e.Scalar(1, "name", "two words")
	e.Open(1, "image", "image")
	e.Scalar(2, "nrows", "4")
	e.Close(1)
	e.Open(1, "sub", "")
	e.Scalar(2, "empty", "")
	e.Close(1)
	e.End()
	require.NoError(t, e.Err())

	expected := "V-data 2 {\n" +
		"\tname: \"two words\"\n" +
		"\timage: image {\n" +
		"\t\tnrows: 4\n" +
		"\t}\n" +
		"\tsub: {\n" +
		"\t\tempty: \"\"\n" +
		"\t}\n" +
		"}\n\f\n"
	require.Equal(t, expected, buf.String())
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"ubyte", "ubyte"},
		{"-1.5e+3", "-1.5e+3"},
		{"", `""`},
		{"a b", `"a b"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"a:b", `"a:b"`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Quote(tt.in))
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{"plain", "with space", `q"uote`, `x\y`, "{brace}", "1 2 3"} {
		tok, err := newScanner(Quote(s)).Next()
		require.NoError(t, err)
		require.Equal(t, s, tok.Text)
	}
}
