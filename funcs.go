package formula

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a built-in function of reals.
type Func struct {
	// Arity is the number of arguments the function takes, or Variadic.
	Arity int
	// Float computes the function in float64. A Func with nil Float is
	// disabled.
	Float func(args []float64) float64
	// Big computes the function to the precision of out and sets out to the
	// result. The function may modify the elements of args. If the function
	// is called on arguments outside its domain, it should panic with
	// big.ErrNaN. Big is nil if the function has no arbitrary-precision
	// implementation.
	Big func(out *big.Float, args []*big.Float)
}

// Variadic is the Arity of functions that take any number of arguments.
const Variadic = -1

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. bf may be nil.
func Niladic(f func() float64, bf func(out *big.Float) *big.Float) Func {
	fn := Func{
		Arity: 0,
		Float: func([]float64) float64 { return f() },
	}
	if bf != nil {
		fn.Big = func(out *big.Float, _ []*big.Float) { bf(out) }
	}
	return fn
}

// Monadic wraps a function of one variable into a Func. bf must set out to
// its result; its return value is ignored. bf may be nil.
func Monadic(f func(float64) float64, bf func(out, in *big.Float) *big.Float) Func {
	fn := Func{
		Arity: 1,
		Float: func(args []float64) float64 { return f(args[0]) },
	}
	if bf != nil {
		fn.Big = func(out *big.Float, args []*big.Float) { bf(out, args[0]) }
	}
	return fn
}

// VariadicFunc wraps a function of any number of variables into a Func. bf
// may be nil.
func VariadicFunc(f func(args []float64) float64, bf func(out *big.Float, args []*big.Float)) Func {
	return Func{Arity: Variadic, Float: f, Big: bf}
}

// enabled returns whether the function can be called at all.
func (f Func) enabled() bool {
	return f.Float != nil
}

// accepts returns whether the function can be called with n arguments.
func (f Func) accepts(n int) bool {
	return f.Arity == Variadic || f.Arity == n
}

var globalfuncs = map[string]Func{
	"Pi": Niladic(func() float64 { return math.Pi }, bigfloat.Pi),
	// trig, not implemented in bigfloat
	"Sin": Monadic(math.Sin, nil),
	"Cos": Monadic(math.Cos, nil),
	"Tan": Monadic(math.Tan, nil),
	"Sum": VariadicFunc(sum, bigsum),
}

var extfuncs = map[string]Func{
	"Exp":  Monadic(math.Exp, bigfloat.Exp),
	"Ln":   Monadic(math.Log, bigln),
	"Sqrt": Monadic(math.Sqrt, (*big.Float).Sqrt),
}

// bigln is bigfloat.Log, panicking with big.ErrNaN on negative arguments.
func bigln(out, in *big.Float) *big.Float {
	switch {
	case in.Sign() < 0:
		panic(big.ErrNaN{})
	case in.IsInf():
		return out.SetInf(false)
	}
	return bigfloat.Log(out, in)
}

// DefaultFuncs returns a copy of the functions available to every context
// unless disabled: Pi, Sin, Cos, Tan, and Sum.
func DefaultFuncs() map[string]Func {
	return copyfuncs(globalfuncs)
}

// ExtendedFuncs returns functions which are not enabled by default: Exp, Ln,
// and Sqrt. Pass the result to SetFuncs to enable them.
func ExtendedFuncs() map[string]Func {
	return copyfuncs(extfuncs)
}

func copyfuncs(m map[string]Func) map[string]Func {
	r := make(map[string]Func, len(m))
	for k, v := range m {
		r[k] = v
	}
	return r
}

func sum(args []float64) float64 {
	var s float64
	for _, x := range args {
		s += x
	}
	return s
}

func bigsum(out *big.Float, args []*big.Float) {
	out.SetInt64(0)
	for _, x := range args {
		out.Add(out, x)
	}
}

// UnknownFunctionError is an error indicating a call to a function name that
// the evaluation context does not define.
type UnknownFunctionError struct {
	// Name is the function name that was called.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// ArityError is an error indicating a function call with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function name that was called.
	Func string
	// Expected is the number of arguments the function takes.
	Expected int
	// Found is the number of arguments in the call.
	Found int
}

func (err *ArityError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Found) + " arguments (want " + strconv.Itoa(err.Expected) + ")"
}

// PrecisionError is an error indicating a call during arbitrary-precision
// evaluation to a function that only has a float64 implementation.
type PrecisionError struct {
	// Func is the function name that was called.
	Func string
}

func (err *PrecisionError) Error() string {
	return err.Func + " is not available at arbitrary precision"
}

// DomainError is an error indicating an arbitrary-precision operation with no
// defined value, e.g. 0/0 or a function called outside its domain. DomainError
// unwraps to big.ErrNaN.
type DomainError struct {
	// Func identifies the operator or function.
	Func string
	// Err is the underlying error.
	Err big.ErrNaN
}

func (err *DomainError) Error() string {
	msg := "outside domain of " + err.Func
	if err.Err.Error() != "" {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *DomainError) Unwrap() error {
	return err.Err
}
