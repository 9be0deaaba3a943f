package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

func almostEqual(valA, valB, tol float64) bool {
	if valA == valB {
		return true
	}

	diff := math.Abs(valA - valB)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(valA), math.Abs(valB))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

// evalAsc evaluates ascending coefficients at a complex point.
func evalAsc(coeff []float64, x complex128) complex128 {
	v := complex(0, 0)
	for i := len(coeff) - 1; i >= 0; i-- {
		v = v*x + complex(coeff[i], 0)
	}

	return v
}

func sortedRealRoots(roots []Root) []float64 {
	out := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r.IsReal() {
			out = append(out, r.RealPart())
		}
	}

	sort.Float64s(out)

	return out
}

func backends() map[string]Finder {
	return map[string]Finder{
		"durand-kerner": DurandKerner{},
		"companion":     Companion{},
	}
}

func TestRoots_Quadratic(t *testing.T) {
	// x^2 - 3x + 2 = (x-1)(x-2), roots at 1 and 2
	coeff := []float64{2, -3, 1}

	for name, f := range backends() {
		t.Run(name, func(t *testing.T) {
			roots, err := f.Roots(coeff)
			if err != nil {
				t.Fatal(err)
			}

			if len(roots) != 2 {
				t.Fatalf("expected 2 roots, got %d", len(roots))
			}

			r := sortedRealRoots(roots)
			if len(r) != 2 || !almostEqual(r[0], 1.0, 1e-8) || !almostEqual(r[1], 2.0, 1e-8) {
				t.Errorf("expected roots {1,2}, got %v", r)
			}
		})
	}
}

func TestRoots_Quartic(t *testing.T) {
	// (x^2 - 1)(x^2 - 4) = x^4 - 5x^2 + 4, roots: -2, -1, 1, 2
	coeff := []float64{4, 0, -5, 0, 1}

	for name, f := range backends() {
		t.Run(name, func(t *testing.T) {
			roots, err := f.Roots(coeff)
			if err != nil {
				t.Fatal(err)
			}

			if len(roots) != 4 {
				t.Fatalf("expected 4 roots, got %d", len(roots))
			}

			for i, r := range roots {
				val := evalAsc(coeff, r.Value)
				if cmplx.Abs(val) > 1e-7 {
					t.Errorf("root %d: p(%v) = %v, expected ~0", i, r.Value, val)
				}
			}
		})
	}
}

func TestRoots_ComplexPairOnly(t *testing.T) {
	// x^2 + 1 has no real roots
	coeff := []float64{1, 0, 1}

	for name, f := range backends() {
		t.Run(name, func(t *testing.T) {
			roots, err := f.Roots(coeff)
			if err != nil {
				t.Fatal(err)
			}

			if len(roots) != 2 {
				t.Fatalf("expected 2 roots, got %d", len(roots))
			}

			for i, r := range roots {
				if r.IsReal() {
					t.Errorf("root %d (%v) classified as real", i, r.Value)
				}

				if !almostEqual(math.Abs(imag(r.Value)), 1.0, 1e-8) {
					t.Errorf("root %d: imag = %v, expected ±1", i, imag(r.Value))
				}
			}
		})
	}
}

func TestRoots_DeflatesOrigin(t *testing.T) {
	// x^3 - x^2 = x^2 (x - 1): double root at exactly 0 plus root at 1
	coeff := []float64{0, 0, -1, 1}

	for name, f := range backends() {
		t.Run(name, func(t *testing.T) {
			roots, err := f.Roots(coeff)
			if err != nil {
				t.Fatal(err)
			}

			if len(roots) != 3 {
				t.Fatalf("expected 3 roots, got %d", len(roots))
			}

			zeros := 0
			for _, r := range roots {
				if r.Value == 0 {
					zeros++
				}
			}

			if zeros != 2 {
				t.Errorf("expected 2 exact zero roots, got %d", zeros)
			}

			r := sortedRealRoots(roots)
			if !almostEqual(r[len(r)-1], 1.0, 1e-8) {
				t.Errorf("largest real root = %v, expected 1", r[len(r)-1])
			}
		})
	}
}

func TestRoots_ZeroPolynomialIsDegenerate(t *testing.T) {
	for name, f := range backends() {
		t.Run(name, func(t *testing.T) {
			for _, coeff := range [][]float64{nil, {}, {0}, {0, 0, 0}} {
				if _, err := f.Roots(coeff); !errors.Is(err, ErrDegeneratePolynomial) {
					t.Errorf("Roots(%v) error = %v, want ErrDegeneratePolynomial", coeff, err)
				}
			}
		})
	}
}

func TestRoots_ConstantHasNoRoots(t *testing.T) {
	for name, f := range backends() {
		t.Run(name, func(t *testing.T) {
			roots, err := f.Roots([]float64{5})
			if err != nil {
				t.Fatal(err)
			}

			if len(roots) != 0 {
				t.Errorf("constant polynomial returned %d roots", len(roots))
			}
		})
	}
}

func TestRoots_BackendsAgree(t *testing.T) {
	// (x-1)(x-2)(x-3)(x-4) = x^4 - 10x^3 + 35x^2 - 50x + 24
	coeff := []float64{24, -50, 35, -10, 1}
	want := []float64{1, 2, 3, 4}

	dk, err := DurandKerner{}.Roots(coeff)
	if err != nil {
		t.Fatal(err)
	}

	cp, err := Companion{}.Roots(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for name, roots := range map[string][]Root{"durand-kerner": dk, "companion": cp} {
		r := sortedRealRoots(roots)
		if len(r) != len(want) {
			t.Fatalf("%s: expected %d real roots, got %d", name, len(want), len(r))
		}

		for i := range want {
			if !almostEqual(r[i], want[i], 1e-6) {
				t.Errorf("%s: root %d = %v, want %v", name, i, r[i], want[i])
			}
		}
	}
}

func TestRoot_IsReal(t *testing.T) {
	tests := []struct {
		name string
		root Root
		want bool
	}{
		{"exact real", Root{Value: complex(2, 0)}, true},
		{"tiny imaginary", Root{Value: complex(2, 1e-12)}, true},
		{"relative tolerance", Root{Value: complex(1e6, 1e-3)}, true},
		{"pure imaginary", Root{Value: complex(0, 1)}, false},
		{"mixed", Root{Value: complex(1, 0.5)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.root.IsReal(); got != tt.want {
				t.Errorf("IsReal(%v) = %v, want %v", tt.root.Value, got, tt.want)
			}
		})
	}
}

// ============================================================
// Durand-Kerner stress tests
// ============================================================

func TestDurandKerner_ClusteredRoots(t *testing.T) {
	// (x - 0.9)^2 * (x - 0.8)^2, two double roots
	r1, r2 := 0.9, 0.8
	coeff := []float64{
		r1 * r1 * r2 * r2,
		-2 * r1 * r2 * (r1 + r2),
		r1*r1 + 4*r1*r2 + r2*r2,
		-2 * (r1 + r2),
		1,
	}

	roots, err := DurandKerner{}.Roots(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		val := evalAsc(coeff, r.Value)
		if cmplx.Abs(val) > 1e-6 {
			t.Errorf("clustered root %d: p(%v) = %v, expected ~0", i, r.Value, val)
		}
	}
}

func TestDurandKerner_LargeCoeffRange(t *testing.T) {
	// Polynomial with very different coefficient magnitudes
	coeff := []float64{1e6, 0, 1e-3, 0, 1e6}

	roots, err := DurandKerner{}.Roots(coeff)
	if err != nil {
		t.Skipf("large coefficient range: %v (known limitation)", err)
		return
	}

	for i, r := range roots {
		val := evalAsc(coeff, r.Value)

		residual := cmplx.Abs(val) / 1e6
		if residual > 1e-4 {
			t.Errorf("root %d: relative residual = %e", i, residual)
		}
	}
}
