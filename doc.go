// Package formula implements a small calculator language.
//
// A formula is numbers and function calls joined by the binary operators
// + - * and /. There is no operator precedence: operators group
// strictly left to right, so "2 + 3 * 4" is "(2 + 3) * 4" and evaluates to 20.
// Parentheses group explicitly. Functions are called with parenthesized,
// comma-separated argument lists, as in "Sum(1, 2, Sin(Pi()))".
//
// Evaluation is in float64 by default. A Context can also evaluate a parsed
// formula to arbitrary precision with EvalBig, for functions that support it.
//
package formula
