package fit

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tuning/tuning/interval"
)

func solveNumericOrFatal(t *testing.T, ratios, deltas []float64, domain Domain, model Model, opts ...Option) Solution {
	t.Helper()

	sol, err := SolveNumeric(ratios, deltas, domain, model, opts...)
	if err != nil {
		t.Fatalf("SolveNumeric(%v, %v, %v, %v): %v", ratios, deltas, domain, model, err)
	}

	return sol
}

func TestSolveNumeric_LogClosedForm(t *testing.T) {
	// With both degrees at the same offset the log objective minimizes at
	// the geometric mean of the measured ratios:
	// x = 1 / (sqrt(r1*r2) - 1), residual = |ln(r1/r2)| / sqrt(2) cents.
	r1, r2 := 1.3, 1.2

	wantX := 1 / (math.Sqrt(r1*r2) - 1)
	wantResidual := math.Abs(math.Log(r1/r2)) / math.Sqrt2 * interval.NaturalLogToCents

	sol := solveNumericOrFatal(t, []float64{r1, r2}, []float64{1, 0}, DomainLog, ModelRooted)

	if !sol.Found {
		t.Fatal("no solution found")
	}

	if math.Abs(sol.X-wantX) > 1e-6 {
		t.Errorf("X = %.12f, want %.12f", sol.X, wantX)
	}

	if math.Abs(sol.Residual-wantResidual) > 1e-6 {
		t.Errorf("residual = %.9f, want %.9f", sol.Residual, wantResidual)
	}

	ev, err := evaluatorFor([]float64{r1, r2}, []float64{1, 0}, DomainLog, ModelRooted)
	if err != nil {
		t.Fatal(err)
	}

	if d := ev.derivativeAt(sol.X); math.Abs(d) > 1e-9 {
		t.Errorf("derivative at solution = %v, want ~0", d)
	}
}

func TestSolveNumeric_ExactLogFit(t *testing.T) {
	sol := solveNumericOrFatal(t, []float64{1.25, 1.5}, []float64{1, 1}, DomainLog, ModelRooted)

	if !sol.Found {
		t.Fatal("no solution found")
	}

	if math.Abs(sol.X-4) > 1e-9 {
		t.Errorf("X = %.12f, want 4", sol.X)
	}

	if sol.Residual > 1e-6 {
		t.Errorf("residual = %v cents, want ~0", sol.Residual)
	}
}

func TestSolveNumeric_LinearAgreesWithAnalytic(t *testing.T) {
	ratios := []float64{1.26, 1.49}
	deltas := []float64{1, 1}

	analytic := solveOrFatal(t, ratios, deltas, DomainLinear, ModelRooted)
	numeric := solveNumericOrFatal(t, ratios, deltas, DomainLinear, ModelRooted)

	if !analytic.Found || !numeric.Found {
		t.Fatalf("expected solutions from both paths: %+v %+v", analytic, numeric)
	}

	if math.Abs(analytic.X-numeric.X) > 1e-8 {
		t.Errorf("X differs: analytic %.12f, numeric %.12f", analytic.X, numeric.X)
	}

	if math.Abs(analytic.Residual-numeric.Residual) > 1e-9 {
		t.Errorf("residual differs: analytic %v, numeric %v", analytic.Residual, numeric.Residual)
	}
}

func TestSolveNumeric_InfeasibleLogIsEmpty(t *testing.T) {
	// A hugely negative offset keeps every predicted interval negative
	// across the whole search range, so the log objective is nowhere
	// defined.
	sol := solveNumericOrFatal(t, []float64{1.5}, []float64{-1e6}, DomainLog, ModelRooted)

	if sol.Found {
		t.Fatalf("unexpected solution %+v", sol)
	}

	if sol.X != 0 || sol.Residual != 0 {
		t.Errorf("empty solution not zero valued: %+v", sol)
	}
}

func TestSolveNumeric_NarrowRange(t *testing.T) {
	sol := solveNumericOrFatal(t, []float64{1.25, 1.5}, []float64{1, 1}, DomainLog, ModelRooted,
		WithNumericRange(3, 5), WithNumericStarts(4))

	if !sol.Found {
		t.Fatal("no solution found")
	}

	if math.Abs(sol.X-4) > 1e-9 {
		t.Errorf("X = %.12f, want 4", sol.X)
	}
}

func TestPolish_NoBracket(t *testing.T) {
	// A constant objective has no derivative sign change; polish must
	// hand back the input point.
	ev, err := evaluatorFor([]float64{1.1}, []float64{0}, DomainLinear, ModelRooted)
	if err != nil {
		t.Fatal(err)
	}

	if got := polish(ev, 2.5); got != 2.5 {
		t.Errorf("polish moved a flat minimum: %v", got)
	}
}
