// Package ratfunc implements exact rational-function arithmetic on top of
// internal/poly. Values are quotients Num/Den of rational-coefficient
// polynomials. Results are not reduced to lowest terms; common factors
// stay in place and callers filter the spurious poles they introduce.
package ratfunc

import (
	"errors"
	"math/big"

	"github.com/cwbudde/algo-tuning/internal/poly"
)

// ErrZeroDenominator is returned when constructing a rational function
// whose denominator is the zero polynomial.
var ErrZeroDenominator = errors.New("ratfunc: zero denominator")

// R is the quotient Num/Den. The zero value is the zero function 0/1
// after normalization through Zero or New; direct literals must supply
// a non-zero Den.
type R struct {
	Num poly.P
	Den poly.P
}

// Zero returns the rational function 0/1.
func Zero() R {
	return R{Num: poly.P{}, Den: poly.One()}
}

// New builds Num/Den, rejecting a zero denominator.
func New(num, den poly.P) (R, error) {
	if den.IsZero() {
		return R{}, ErrZeroDenominator
	}

	return R{Num: num, Den: den}, nil
}

// FromPoly lifts a polynomial to the rational function p/1.
func FromPoly(p poly.P) R {
	return R{Num: p, Den: poly.One()}
}

// IsZero reports whether the numerator is the zero polynomial.
func (r R) IsZero() bool {
	return r.Num.IsZero()
}

// Add returns r + s. When both share an identical denominator the
// numerators are added directly; otherwise the sum is formed over the
// product denominator.
func (r R) Add(s R) R {
	if r.Den.Equal(s.Den) {
		return R{Num: r.Num.Add(s.Num), Den: r.Den}
	}

	num := r.Num.Mul(s.Den).Add(s.Num.Mul(r.Den))

	return R{Num: num, Den: r.Den.Mul(s.Den)}
}

// Sub returns r - s.
func (r R) Sub(s R) R {
	if r.Den.Equal(s.Den) {
		return R{Num: r.Num.Sub(s.Num), Den: r.Den}
	}

	num := r.Num.Mul(s.Den).Sub(s.Num.Mul(r.Den))

	return R{Num: num, Den: r.Den.Mul(s.Den)}
}

// Mul returns the product r * s.
func (r R) Mul(s R) R {
	return R{Num: r.Num.Mul(s.Num), Den: r.Den.Mul(s.Den)}
}

// Square returns r * r.
func (r R) Square() R {
	return R{Num: r.Num.Mul(r.Num), Den: r.Den.Mul(r.Den)}
}

// Derivative returns dr/dx by the quotient rule,
// (Num'*Den - Num*Den') / Den^2. For a polynomial denominator of degree
// zero the denominator is kept as-is and only the numerator is derived.
func (r R) Derivative() R {
	if r.Den.Degree() == 0 {
		return R{Num: r.Num.Derivative(), Den: r.Den}
	}

	num := r.Num.Derivative().Mul(r.Den).Sub(r.Num.Mul(r.Den.Derivative()))

	return R{Num: num, Den: r.Den.Mul(r.Den)}
}

// EvalRat evaluates r at x exactly. The second return is false when x is
// a root of the denominator.
func (r R) EvalRat(x *big.Rat) (*big.Rat, bool) {
	den := r.Den.EvalRat(x)
	if den.Sign() == 0 {
		return nil, false
	}

	return new(big.Rat).Quo(r.Num.EvalRat(x), den), true
}

// EvalFloat evaluates r at x in float64 arithmetic. Poles surface as
// Inf or NaN in the usual IEEE way.
func (r R) EvalFloat(x float64) float64 {
	return r.Num.EvalFloat(x) / r.Den.EvalFloat(x)
}

// String renders r as "(num) / (den)", or just the numerator when the
// denominator is the constant one.
func (r R) String() string {
	if r.Den.Degree() == 0 && r.Den.Coeff(0).Cmp(big.NewRat(1, 1)) == 0 {
		return r.Num.String()
	}

	return "(" + r.Num.String() + ") / (" + r.Den.String() + ")"
}
