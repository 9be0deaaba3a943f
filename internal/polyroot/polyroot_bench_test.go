package polyroot

import "testing"

// (x-1)(x-2)(x-3)(x-4) in ascending coefficients.
var benchCoeff = []float64{24, -50, 35, -10, 1}

func BenchmarkDurandKerner(b *testing.B) {
	b.ReportAllocs()

	for range b.N {
		if _, err := (DurandKerner{}).Roots(benchCoeff); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompanion(b *testing.B) {
	b.ReportAllocs()

	for range b.N {
		if _, err := (Companion{}).Roots(benchCoeff); err != nil {
			b.Fatal(err)
		}
	}
}
