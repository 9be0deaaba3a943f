// Package polyroot finds all complex roots of real-coefficient polynomials.
// Two interchangeable backends implement the Finder interface: a
// Durand-Kerner (Weierstrass) simultaneous iteration and a companion-matrix
// eigenvalue solver built on gonum. Coefficients are given in ascending
// power order (c[0] + c[1]*x + c[2]*x^2 + ...); the full typed root set is
// returned and real/positivity filtering is left to the caller.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (zero polynomial, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// RealTol is the relative imaginary-part tolerance below which a root is
// classified as real.
const RealTol = 1e-8

// Root is a single polynomial root with its real/complex classification.
type Root struct {
	Value complex128
}

// IsReal reports whether the imaginary part is negligible relative to the
// magnitude of the real part.
func (r Root) IsReal() bool {
	return math.Abs(imag(r.Value)) <= RealTol*math.Max(1, math.Abs(real(r.Value)))
}

// RealPart returns the real component of the root.
func (r Root) RealPart() float64 {
	return real(r.Value)
}

// Finder locates every complex root of the polynomial with the given
// ascending coefficients. Root order is implementation-defined.
type Finder interface {
	Roots(coeff []float64) ([]Root, error)
}

// DurandKerner finds roots by Weierstrass simultaneous iteration.
type DurandKerner struct{}

// Roots implements Finder. A polynomial of degree zero has no roots and
// returns an empty slice; the zero polynomial is degenerate.
func (DurandKerner) Roots(coeff []float64) ([]Root, error) {
	c, zeros, err := prepare(coeff)
	if err != nil {
		return nil, err
	}

	n := len(c) - 1
	out := zeroRoots(zeros, n)

	if n == 0 {
		return out, nil
	}

	roots, err := durandKerner(c)
	if err != nil {
		return nil, err
	}

	for _, r := range roots {
		out = append(out, Root{Value: r})
	}

	return out, nil
}

// Companion finds roots as the eigenvalues of the companion matrix of the
// monic normalized polynomial.
type Companion struct{}

// Roots implements Finder.
func (Companion) Roots(coeff []float64) ([]Root, error) {
	c, zeros, err := prepare(coeff)
	if err != nil {
		return nil, err
	}

	n := len(c) - 1
	out := zeroRoots(zeros, n)

	if n == 0 {
		return out, nil
	}

	lead := c[n]
	m := mat.NewDense(n, n, nil)

	for i := range n {
		if i > 0 {
			m.Set(i, i-1, 1)
		}

		m.Set(i, n-1, -c[i]/lead)
	}

	var eig mat.Eigen
	if !eig.Factorize(m, mat.EigenNone) {
		return nil, ErrDegeneratePolynomial
	}

	for _, v := range eig.Values(nil) {
		out = append(out, Root{Value: v})
	}

	return out, nil
}

// prepare trims trailing zero coefficients and deflates roots at the
// origin. It returns the remaining ascending coefficients plus the count
// of deflated zero roots. The zero polynomial is rejected.
func prepare(coeff []float64) ([]float64, int, error) {
	n := len(coeff)
	for n > 0 && coeff[n-1] == 0 {
		n--
	}

	if n == 0 {
		return nil, 0, ErrDegeneratePolynomial
	}

	c := coeff[:n]
	zeros := 0

	for len(c) > 1 && c[0] == 0 {
		c = c[1:]
		zeros++
	}

	return c, zeros, nil
}

func zeroRoots(zeros, remaining int) []Root {
	out := make([]Root, zeros, zeros+remaining)
	return out
}

// durandKerner runs the Weierstrass simultaneous iteration on ascending
// real coefficients of degree >= 1. Roots start on a slightly spiraled
// circle whose radius follows the Cauchy-style coefficient bound.
//
//nolint:cyclop
func durandKerner(c []float64) ([]complex128, error) {
	n := len(c) - 1
	lead := c[n]

	norm := make([]complex128, len(c))
	for i, v := range c {
		norm[n-i] = complex(v/lead, 0)
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := polyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(polyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// polyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func polyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}
