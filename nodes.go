package formula

import (
	"strconv"
	"strings"
)

// Expr is a node in the abstract syntax tree of a formula. The concrete types
// are *Number, *BinaryOp, and *Call. A parsed tree is never modified, so it
// is safe to evaluate concurrently.
type Expr interface {
	// String formats the expression with every binary operation
	// parenthesized. Parsing the result produces an identical tree.
	String() string

	fmt(b *strings.Builder)
}

// Number is a numeric literal.
type Number struct {
	// Value is the literal's value.
	Value float64
	// Text is the literal as written in the source. EvalBig reads it at the
	// evaluation precision. If it is empty, Value is used instead.
	Text string
}

// BinaryOp is an operation on two subexpressions.
type BinaryOp struct {
	Op    Operator
	Left  Expr
	Right Expr
}

// Call is a function call. Args is in call-site order.
type Call struct {
	Name string
	Args []Expr
}

var (
	_ Expr = (*Number)(nil)
	_ Expr = (*BinaryOp)(nil)
	_ Expr = (*Call)(nil)
)

// Operator is a binary arithmetic operator.
type Operator int8

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// binop gets the operator for a token's text.
func binop(text string) (Operator, bool) {
	switch text {
	case "+":
		return Add, true
	case "-":
		return Subtract, true
	case "*":
		return Multiply, true
	case "/":
		return Divide, true
	default:
		return 0, false
	}
}

func (n *Number) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *BinaryOp) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Call) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Number) fmt(b *strings.Builder) {
	if n.Text != "" {
		b.WriteString(n.Text)
		return
	}
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (n *BinaryOp) fmt(b *strings.Builder) {
	b.WriteByte('(')
	n.Left.fmt(b)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	n.Right.fmt(b)
	b.WriteByte(')')
}

func (n *Call) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.fmt(b)
	}
	b.WriteByte(')')
}
