package fit

import "testing"

func BenchmarkSolve(b *testing.B) {
	ratios := []float64{1.26, 1.49, 1.78}
	deltas := []float64{1, 2, 1}

	for _, model := range []Model{ModelRooted, ModelPairwise, ModelAllSteps} {
		b.Run(model.String(), func(b *testing.B) {
			solver := NewSolver()

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := solver.Solve(ratios, deltas, DomainLinear, model); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSolveNumeric(b *testing.B) {
	ratios := []float64{1.26, 1.49, 1.78}
	deltas := []float64{1, 2, 1}

	for _, domain := range []Domain{DomainLinear, DomainLog} {
		b.Run(domain.String(), func(b *testing.B) {
			solver := NewSolver()

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := solver.SolveNumeric(ratios, deltas, domain, ModelRooted); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
