package formula

import "strconv"

// UnexpectedError is an error indicating that the parser required one kind of
// token but found another, e.g. a missing close paren or trailing input after
// a complete formula. It implements InputError.
type UnexpectedError struct {
	// Col is the position of the token that was found.
	Col int
	// Expected is the kind of token the parser required.
	Expected TokenKind
	// Found is the kind of token that was found instead.
	Found TokenKind
	// Text is the text of the token that was found.
	Text string
}

func (err *UnexpectedError) Error() string {
	return errpos(err.Col, "expected "+err.Expected.String()+", found "+found(err.Found, err.Text))
}

func (err *UnexpectedError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unsupported operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that cannot begin a term. It
// implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Found is the kind of the token.
	Found TokenKind
	// Text is the token's text.
	Text string
}

func (err *TokenError) Error() string {
	if err.Found == TokenEOF {
		if err.Col == 0 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "unexpected "+found(err.Found, err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a number token with text that is not a
// valid number. It implements InputError.
type NumberError struct {
	// Col is the position of the number.
	Col int
	// Text is the number's text.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// found describes a token for error messages.
func found(kind TokenKind, text string) string {
	if text == "" {
		return kind.String()
	}
	return kind.String() + " " + strconv.Quote(text)
}

// InputError is an error with position information. Every error resulting from
// invalid input to Lex or Parse implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the source of the token or character
	// that caused the error.
	Pos() int
}

var (
	_ InputError = (*UnexpectedError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*LexError)(nil)
)
