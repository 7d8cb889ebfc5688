package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// spaces
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		// numbers
		{"zero", "0", []Token{{Kind: TokenNum, Text: "0", Pos: 0}}},
		{"digits", "9876543210", []Token{{Kind: TokenNum, Text: "9876543210", Pos: 0}}},
		{"two-nums", "1 0", []Token{{Kind: TokenNum, Text: "1", Pos: 0}, {Kind: TokenNum, Text: "0", Pos: 2}}},
		{"decimal", "12.34", []Token{{Kind: TokenNum, Text: "12.34", Pos: 0}}},
		{"minus", "-1", []Token{{Kind: TokenOp, Text: "-", Pos: 0}, {Kind: TokenNum, Text: "1", Pos: 1}}},
		{"num-ident", "2x", []Token{{Kind: TokenNum, Text: "2", Pos: 0}, {Kind: TokenIdent, Text: "x", Pos: 1}}},
		// identifiers
		{"ident", "Sin", []Token{{Kind: TokenIdent, Text: "Sin", Pos: 0}}},
		{"ident-digits", "a_1b2", []Token{{Kind: TokenIdent, Text: "a_1b2", Pos: 0}}},
		// operators
		{"ops", "+-*/", []Token{
			{Kind: TokenOp, Text: "+", Pos: 0},
			{Kind: TokenOp, Text: "-", Pos: 1},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenOp, Text: "/", Pos: 3},
		}},
		{"binary", "2 + 2", []Token{
			{Kind: TokenNum, Text: "2", Pos: 0},
			{Kind: TokenOp, Text: "+", Pos: 2},
			{Kind: TokenNum, Text: "2", Pos: 4},
		}},
		{"lines", "1\n*\n2", []Token{
			{Kind: TokenNum, Text: "1", Pos: 0},
			{Kind: TokenOp, Text: "*", Pos: 2},
			{Kind: TokenNum, Text: "2", Pos: 4},
		}},
		// punctuation
		{"call", "Sum(1,2.5)", []Token{
			{Kind: TokenIdent, Text: "Sum", Pos: 0},
			{Kind: TokenOpen, Text: "(", Pos: 3},
			{Kind: TokenNum, Text: "1", Pos: 4},
			{Kind: TokenSep, Text: ",", Pos: 5},
			{Kind: TokenNum, Text: "2.5", Pos: 6},
			{Kind: TokenClose, Text: ")", Pos: 9},
		}},
		{"parens", ")(", []Token{{Kind: TokenClose, Text: ")", Pos: 0}, {Kind: TokenOpen, Text: "(", Pos: 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Lex(c.src)
			require.NoError(t, err, "scanning %q", c.src)
			assert.Equal(t, c.tokens, got, "scanning %q", c.src)
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  *LexError
	}{
		{"at", "@", &LexError{Offset: 0, Text: "@"}},
		{"after-num", "1 # 2", &LexError{Offset: 2, Text: "#"}},
		{"after-ident", "a$", &LexError{Offset: 1, Text: "$"}},
		{"trailing-dot", "1.", &LexError{Offset: 1, Text: "."}},
		{"dot-letter", "1.a", &LexError{Offset: 1, Text: "."}},
		{"leading-dot", ".5", &LexError{Offset: 0, Text: "."}},
		{"underscore", "_a", &LexError{Offset: 0, Text: "_"}},
		{"exponent-op", "2^3", &LexError{Offset: 1, Text: "^"}},
		{"unicode", "1 + π", &LexError{Offset: 4, Text: "π"}},
		{"invalid-utf8", "1\xff", &LexError{Offset: 1, Text: "\xff"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Lex(c.src)
			assert.Nil(t, toks)
			var lerr *LexError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, c.err, lerr)
			assert.Equal(t, c.err.Offset, lerr.Pos())
		})
	}
}

func TestTokenKindString(t *testing.T) {
	kinds := []TokenKind{TokenNone, TokenIdent, TokenNum, TokenOpen, TokenClose, TokenSep, TokenOp, TokenEOF}
	seen := make(map[string]TokenKind)
	for _, k := range kinds {
		s := k.String()
		if prev, ok := seen[s]; ok {
			t.Errorf("%d and %d both have name %q", prev, k, s)
		}
		seen[s] = k
	}
	assert.Equal(t, "TokenKind(100)", TokenKind(100).String())
}
