package formula

import (
	"math"
	"math/big"
)

// Context is a context for evaluating formulas. It holds the functions that
// formulas may call and the precision for arbitrary-precision evaluation. A
// Context is never modified after creation, so it is safe to use
// concurrently.
type Context struct {
	funcs map[string]Func
	prec  uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt  map[string]Func
	nodefsopt struct{}
	precopt   uint
)

func (funcopt) ctxOption()   {}
func (funcsopt) ctxOption()  {}
func (nodefsopt) ctxOption() {}
func (precopt) ctxOption()   {}

// SetFunc adds or replaces a function in the context. Passing the zero Func
// disables the name.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs adds or replaces any number of functions in the context.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// DisableDefaultFuncs removes the default functions from the context. It
// applies before any other option, regardless of order.
func DisableDefaultFuncs() ContextOption {
	return nodefsopt{}
}

// Prec sets the precision in bits of EvalBig. Zero selects the default of 64.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// DefaultPrec is the precision of EvalBig when no precision is set.
const DefaultPrec = 64

// NewContext creates a new evaluation context. The options are applied in
// order.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec}
	defaults := true
	for _, opt := range opts {
		if _, ok := opt.(nodefsopt); ok {
			defaults = false
		}
	}
	if defaults {
		ctx.funcs = DefaultFuncs()
	} else {
		ctx.funcs = make(map[string]Func)
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case funcopt:
			ctx.funcs[opt.name] = opt.fn
		case funcsopt:
			for k, v := range opt {
				ctx.funcs[k] = v
			}
		case nodefsopt:
			// Already done. Do nothing.
		case precopt:
			ctx.prec = uint(opt)
			if ctx.prec == 0 {
				ctx.prec = DefaultPrec
			}
		default:
			panic("formula: unknown option type")
		}
	}
	return &ctx
}

// Prec returns the precision to which EvalBig computes values.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// lookup finds the function to call for a name with n arguments.
func (ctx *Context) lookup(name string, n int) (Func, error) {
	fn := ctx.funcs[name]
	if !fn.enabled() {
		return Func{}, &UnknownFunctionError{Name: name}
	}
	if !fn.accepts(n) {
		return Func{}, &ArityError{Func: name, Expected: fn.Arity, Found: n}
	}
	return fn, nil
}

// Eval evaluates a formula in float64. Arithmetic follows IEEE 754, so e.g.
// division by zero produces an infinity or NaN rather than an error. Function
// arguments are evaluated left to right before the function is looked up.
func (ctx *Context) Eval(e Expr) (float64, error) {
	switch e := e.(type) {
	case *Number:
		return e.Value, nil
	case *BinaryOp:
		l, err := ctx.Eval(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := ctx.Eval(e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case Add:
			return l + r, nil
		case Subtract:
			return l - r, nil
		case Multiply:
			return l * r, nil
		case Divide:
			return l / r, nil
		default:
			panic("formula: invalid operator " + e.Op.String())
		}
	case *Call:
		args := make([]float64, len(e.Args))
		for i, arg := range e.Args {
			v, err := ctx.Eval(arg)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		fn, err := ctx.lookup(e.Name, len(args))
		if err != nil {
			return 0, err
		}
		return fn.Float(args), nil
	case nil:
		panic("formula: Eval of nil Expr")
	default:
		panic("formula: invalid AST node")
	}
}

// EvalBig evaluates a formula to the context's precision. Number literals are
// read from their source text at that precision. Operations with no defined
// value, such as 0/0 or ∞-∞, produce a *DomainError. Calls to functions with
// no arbitrary-precision implementation produce a *PrecisionError.
func (ctx *Context) EvalBig(e Expr) (*big.Float, error) {
	switch e := e.(type) {
	case *Number:
		r := new(big.Float).SetPrec(ctx.prec)
		if e.Text != "" {
			if _, ok := r.SetString(e.Text); ok {
				return r, nil
			}
		}
		if math.IsNaN(e.Value) {
			return nil, &DomainError{Func: "number"}
		}
		return r.SetFloat64(e.Value), nil
	case *BinaryOp:
		l, err := ctx.EvalBig(e.Left)
		if err != nil {
			return nil, err
		}
		r, err := ctx.EvalBig(e.Right)
		if err != nil {
			return nil, err
		}
		var f func(z, x, y *big.Float) *big.Float
		switch e.Op {
		case Add:
			f = (*big.Float).Add
		case Subtract:
			f = (*big.Float).Sub
		case Multiply:
			f = (*big.Float).Mul
		case Divide:
			f = (*big.Float).Quo
		default:
			panic("formula: invalid operator " + e.Op.String())
		}
		if err := bigcall(e.Op.String(), func() { f(l, l, r) }); err != nil {
			return nil, err
		}
		return l, nil
	case *Call:
		args := make([]*big.Float, len(e.Args))
		for i, arg := range e.Args {
			v, err := ctx.EvalBig(arg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		fn, err := ctx.lookup(e.Name, len(args))
		if err != nil {
			return nil, err
		}
		if fn.Big == nil {
			return nil, &PrecisionError{Func: e.Name}
		}
		r := new(big.Float).SetPrec(ctx.prec)
		if err := bigcall(e.Name, func() { fn.Big(r, args) }); err != nil {
			return nil, err
		}
		return r, nil
	case nil:
		panic("formula: EvalBig of nil Expr")
	default:
		panic("formula: invalid AST node")
	}
}

// bigcall calls f, converting a big.ErrNaN panic into a *DomainError for name.
func bigcall(name string, f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		err = &DomainError{Func: name, Err: nan}
	}()
	f()
	return nil
}

// Eval is a shortcut to evaluate a parsed formula in a new context.
func Eval(e Expr, opts ...ContextOption) (float64, error) {
	return NewContext(opts...).Eval(e)
}

// Run is a shortcut to parse and evaluate a formula. The error, if any, is
// from either parsing or evaluation; its message describes the problem
// either way.
func Run(src string, opts ...ContextOption) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(e)
}

// RunBig is like Run but evaluates to arbitrary precision.
func RunBig(src string, opts ...ContextOption) (*big.Float, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).EvalBig(e)
}
