package formula

import (
	"strconv"
	"unicode/utf8"
)

// Token is a lexical unit of a formula.
type Token struct {
	// Kind is the token's category.
	Kind TokenKind
	// Text is the source text the token matched. It is empty for EOF.
	Text string
	// Pos is the byte offset of the token in the source.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the category of a token.
type TokenKind int8

const (
	// TokenNone is the zero TokenKind. The lexer never produces it.
	TokenNone TokenKind = iota
	// TokenIdent is a function name.
	TokenIdent
	// TokenNum is a decimal number without sign or exponent.
	TokenNum
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenSep is a comma separating function arguments.
	TokenSep
	// TokenOp is a binary operator.
	TokenOp
	// TokenEOF indicates the end of the input. Lex does not emit it; the
	// parser synthesizes it when it runs out of tokens.
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "none"
	case TokenIdent:
		return "identifier"
	case TokenNum:
		return "number"
	case TokenOpen:
		return "open paren"
	case TokenClose:
		return "close paren"
	case TokenSep:
		return "comma"
	case TokenOp:
		return "operator"
	case TokenEOF:
		return "end of input"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the bytes which are lexed as operators.
const Operators = "+-*/"

// Lex splits src into tokens. Whitespace, which is space, tab, CR, and LF,
// separates tokens but produces none.
// The first byte that starts no valid token is reported as a *LexError, and
// no tokens are returned in that case.
func Lex(src string) ([]Token, error) {
	var toks []Token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ', c == '\n', c == '\t', c == '\r':
			i++
		case isletter(c):
			j := i + 1
			for j < len(src) && (isletter(src[j]) || isdigit(src[j]) || src[j] == '_') {
				j++
			}
			toks = append(toks, Token{Kind: TokenIdent, Text: src[i:j], Pos: i})
			i = j
		case isdigit(c):
			j := scandigits(src, i)
			// The fractional part needs at least one digit; "1." leaves the
			// dot to fail on its own.
			if j+1 < len(src) && src[j] == '.' && isdigit(src[j+1]) {
				j = scandigits(src, j+1)
			}
			toks = append(toks, Token{Kind: TokenNum, Text: src[i:j], Pos: i})
			i = j
		case c == '(':
			toks = append(toks, Token{Kind: TokenOpen, Text: "(", Pos: i})
			i++
		case c == ')':
			toks = append(toks, Token{Kind: TokenClose, Text: ")", Pos: i})
			i++
		case c == ',':
			toks = append(toks, Token{Kind: TokenSep, Text: ",", Pos: i})
			i++
		case isop(c):
			toks = append(toks, Token{Kind: TokenOp, Text: src[i : i+1], Pos: i})
			i++
		default:
			return nil, &LexError{Offset: i, Text: badchar(src[i:])}
		}
	}
	return toks, nil
}

// scandigits returns the index of the first non-digit at or after i.
func scandigits(src string, i int) int {
	for i < len(src) && isdigit(src[i]) {
		i++
	}
	return i
}

func isletter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isdigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isop(c byte) bool {
	for i := 0; i < len(Operators); i++ {
		if Operators[i] == c {
			return true
		}
	}
	return false
}

// badchar gets the text of the invalid character at the start of s, which is
// the whole rune if s starts with valid UTF-8 and the single byte otherwise.
func badchar(s string) string {
	r, sz := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && sz <= 1 {
		return s[:1]
	}
	return s[:sz]
}

// LexError indicates a character that starts no token. It implements
// InputError.
type LexError struct {
	// Offset is the byte offset of the invalid character.
	Offset int
	// Text is the invalid character.
	Text string
}

func (err *LexError) Error() string {
	return errpos(err.Offset, "invalid character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Offset
}
