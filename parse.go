package formula

import (
	"errors"
	"strconv"
)

// Formula = Expr { Operator Expr } EOF
// Expr = Call | number | '(' Formula ')'
// Call = name '(' [ Formula { ',' Formula } ] ')'
// Operator = '+' | '-' | '*' | '/'
//
// Operators all share one precedence and associate left, so a+b*c is (a+b)*c.

// parser is a cursor over a lexed token sequence.
type parser struct {
	toks []Token
	idx  int
	// end is the position reported for EOF.
	end int
}

// Parse parses a formula. The entire input must be a single formula; trailing
// tokens are an error. Function names are not checked until evaluation.
func Parse(src string) (Expr, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks, end: len(src)}
	e, err := p.binexpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return e, nil
}

// peek returns the token at the cursor, or EOF if there are no more tokens.
func (p *parser) peek() Token {
	if p.idx >= len(p.toks) {
		return Token{Kind: TokenEOF, Pos: p.end}
	}
	return p.toks[p.idx]
}

// consume returns the token at the cursor and advances.
func (p *parser) consume() Token {
	tok := p.peek()
	p.idx++
	return tok
}

// expect consumes a token and checks that it is of the given kind.
func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.consume()
	if tok.Kind != kind {
		return tok, &UnexpectedError{Col: tok.Pos, Expected: kind, Found: tok.Kind, Text: tok.Text}
	}
	return tok, nil
}

// binexpr parses a sequence of terms joined by operators, folding left.
func (p *parser) binexpr() (Expr, error) {
	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenOp {
		tok := p.consume()
		op, ok := binop(tok.Text)
		if !ok {
			return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text}
		}
		rhs, err := p.expr()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Op: op, Left: lhs, Right: rhs}
	}
	return lhs, nil
}

// expr parses a single term.
func (p *parser) expr() (Expr, error) {
	switch tok := p.peek(); tok.Kind {
	case TokenIdent:
		return p.call()
	case TokenNum:
		return p.num()
	case TokenOpen:
		p.consume()
		e, err := p.binexpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenClose); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &TokenError{Col: tok.Pos, Found: tok.Kind, Text: tok.Text}
	}
}

func (p *parser) call() (Expr, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenOpen); err != nil {
		return nil, err
	}
	args, err := p.args()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenClose); err != nil {
		return nil, err
	}
	return &Call{Name: name.Text, Args: args}, nil
}

// args parses a possibly empty argument list up to but not including the
// close paren.
func (p *parser) args() ([]Expr, error) {
	if p.peek().Kind == TokenClose {
		return nil, nil
	}
	var args []Expr
	for {
		arg, err := p.binexpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().Kind != TokenSep {
			return args, nil
		}
		p.consume()
	}
}

func (p *parser) num() (Expr, error) {
	tok, err := p.expect(TokenNum)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	// Out of range means a digit string beyond float64. The result is then
	// ±Inf, which is the IEEE rounding of the literal.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &NumberError{Col: tok.Pos, Text: tok.Text}
	}
	return &Number{Value: v, Text: tok.Text}, nil
}
