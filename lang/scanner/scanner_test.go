package scanner_test

import (
	"testing"

	"github.com/loxenlang/loxen/lang/scanner"
	"github.com/loxenlang/loxen/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	s := scanner.New([]byte(src))
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){};,.+-*/% ! != = == < <= > >=")
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
		token.COMMA, token.DOT, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.PERCENT, token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ,
		token.LT, token.LT_EQ, token.GT, token.GT_EQ, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "var x = foo and bar")
	want := []token.Kind{token.VAR, token.IDENT, token.EQ, token.IDENT, token.AND, token.IDENT, token.EOF}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
	assert.Equal(t, "x", toks[1].Lexeme)
	assert.Equal(t, "foo", toks[3].Lexeme)
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "123 45.67 8.")
	require.Len(t, toks, 4)
	assert.Equal(t, "123", toks[0].Lexeme)
	assert.Equal(t, "45.67", toks[1].Lexeme)
	// a trailing dot with no following digit is NOT consumed as part of the number
	assert.Equal(t, "8", toks[2].Lexeme)
	assert.Equal(t, token.DOT, toks[3].Kind)
}

func TestScanStrings(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"hello`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
	assert.Equal(t, "Unterminated string", toks[0].Lexeme)
}

func TestScanLineComments(t *testing.T) {
	toks := scanAll(t, "1 // a comment\n2")
	require.Len(t, toks, 3)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanEOFIsIdempotent(t *testing.T) {
	s := scanner.New([]byte("1"))
	require.Equal(t, token.NUMBER, s.Next().Kind)
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.EOF, s.Next().Kind)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
	assert.Equal(t, "Unexpected character.", toks[0].Lexeme)
}

func TestScanEmbeddedNewlineInStringAdvancesLine(t *testing.T) {
	toks := scanAll(t, "\"a\nb\" 2")
	require.Len(t, toks, 3)
	assert.Equal(t, 2, toks[1].Line)
}
