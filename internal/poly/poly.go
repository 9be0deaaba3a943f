// Package poly implements exact univariate polynomial arithmetic with
// rational coefficients. Coefficients are stored in ascending power order
// (p[0] + p[1]*x + p[2]*x^2 + ...) and every operation is carried out in
// math/big.Rat, so no precision is lost until a caller converts to float64.
package poly

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// ErrNotFinite is returned when a float64 coefficient is NaN or infinite.
var ErrNotFinite = errors.New("poly: non-finite coefficient")

// P is a polynomial in one variable. The zero polynomial is the empty slice.
// Coefficient slices are never shared between values; every operation
// allocates its result.
type P []*big.Rat

// New builds a polynomial from ascending coefficients. Trailing zero
// coefficients are trimmed. The input rats are copied.
func New(coeffs ...*big.Rat) P {
	p := make(P, len(coeffs))
	for i, c := range coeffs {
		p[i] = new(big.Rat).Set(c)
	}

	return p.trim()
}

// FromFloats builds a polynomial from ascending float64 coefficients.
// Each finite float64 converts exactly.
func FromFloats(coeffs ...float64) (P, error) {
	p := make(P, len(coeffs))

	for i, c := range coeffs {
		r := new(big.Rat)
		if r.SetFloat64(c) == nil {
			return nil, ErrNotFinite
		}

		p[i] = r
	}

	return p.trim(), nil
}

// Const returns the constant polynomial c.
func Const(c *big.Rat) P {
	return New(c)
}

// Affine returns the monic linear polynomial x + c.
func Affine(c *big.Rat) P {
	return New(c, big.NewRat(1, 1))
}

// One returns the constant polynomial 1.
func One() P {
	return P{big.NewRat(1, 1)}
}

// Degree returns the degree of p; the zero polynomial has degree -1.
func (p P) Degree() int {
	return len(p) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p P) IsZero() bool {
	return len(p) == 0
}

// Coeff returns the coefficient of x^i, zero when i exceeds the degree.
func (p P) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p) {
		return new(big.Rat)
	}

	return new(big.Rat).Set(p[i])
}

// Equal reports whether p and q have identical coefficients.
func (p P) Equal(q P) bool {
	if len(p) != len(q) {
		return false
	}

	for i := range p {
		if p[i].Cmp(q[i]) != 0 {
			return false
		}
	}

	return true
}

// Add returns p + q.
func (p P) Add(q P) P {
	n := max(len(p), len(q))
	out := make(P, n)

	for i := range out {
		c := new(big.Rat)
		if i < len(p) {
			c.Add(c, p[i])
		}

		if i < len(q) {
			c.Add(c, q[i])
		}

		out[i] = c
	}

	return out.trim()
}

// Sub returns p - q.
func (p P) Sub(q P) P {
	n := max(len(p), len(q))
	out := make(P, n)

	for i := range out {
		c := new(big.Rat)
		if i < len(p) {
			c.Add(c, p[i])
		}

		if i < len(q) {
			c.Sub(c, q[i])
		}

		out[i] = c
	}

	return out.trim()
}

// Mul returns the product p * q.
func (p P) Mul(q P) P {
	if p.IsZero() || q.IsZero() {
		return P{}
	}

	out := make(P, len(p)+len(q)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}

	tmp := new(big.Rat)

	for i, a := range p {
		for j, b := range q {
			tmp.Mul(a, b)
			out[i+j].Add(out[i+j], tmp)
		}
	}

	return out.trim()
}

// Scale returns p multiplied by the scalar c.
func (p P) Scale(c *big.Rat) P {
	out := make(P, len(p))
	for i := range p {
		out[i] = new(big.Rat).Mul(p[i], c)
	}

	return out.trim()
}

// Derivative returns dp/dx.
func (p P) Derivative() P {
	if len(p) <= 1 {
		return P{}
	}

	out := make(P, len(p)-1)
	for i := 1; i < len(p); i++ {
		k := big.NewRat(int64(i), 1)
		out[i-1] = k.Mul(k, p[i])
	}

	return out.trim()
}

// EvalRat evaluates p at x exactly using Horner's method.
func (p P) EvalRat(x *big.Rat) *big.Rat {
	v := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		v.Mul(v, x)
		v.Add(v, p[i])
	}

	return v
}

// EvalFloat evaluates p at x in float64 arithmetic.
func (p P) EvalFloat(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + coeffFloat(p[i])
	}

	return v
}

// Float64s returns the coefficients converted to float64, ascending order.
func (p P) Float64s() []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = coeffFloat(c)
	}

	return out
}

// String renders p in descending power order with exact coefficients,
// e.g. "5*x^2 - 5/2*x + 3". The zero polynomial renders as "0".
func (p P) String() string {
	if p.IsZero() {
		return "0"
	}

	var b strings.Builder

	for i := len(p) - 1; i >= 0; i-- {
		c := p[i]
		if c.Sign() == 0 {
			continue
		}

		abs := new(big.Rat).Abs(c)

		if b.Len() == 0 {
			if c.Sign() < 0 {
				b.WriteString("-")
			}
		} else {
			if c.Sign() < 0 {
				b.WriteString(" - ")
			} else {
				b.WriteString(" + ")
			}
		}

		one := abs.Cmp(big.NewRat(1, 1)) == 0
		switch {
		case i == 0:
			b.WriteString(abs.RatString())
		case one:
			b.WriteString(varPower(i))
		default:
			b.WriteString(abs.RatString())
			b.WriteString("*")
			b.WriteString(varPower(i))
		}
	}

	if b.Len() == 0 {
		return "0"
	}

	return b.String()
}

func varPower(i int) string {
	if i == 1 {
		return "x"
	}

	return "x^" + strconv.Itoa(i)
}

func coeffFloat(c *big.Rat) float64 {
	f, _ := c.Float64()
	return f
}

func (p P) trim() P {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}

	return p[:n]
}
