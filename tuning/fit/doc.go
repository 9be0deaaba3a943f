// Package fit estimates the divider of an ideal step pattern from
// measured frequency ratios.
//
// Given measured ratios A_1..A_n relative to a root tone (A_0 = 1) and
// the cumulative offsets D_1..D_n of a step pattern (D_0 = 0), the
// pattern predicts the ratio of degree i as T_i(x) = (x + D_i) / x for a
// positive divider x. The solver minimizes the squared disagreement
// between predicted and measured intervals over a model-dependent set of
// degree pairs:
//
//   - Rooted compares every degree against the root.
//   - Pairwise compares every ordered degree pair.
//   - AllSteps compares only adjacent degrees.
//
// In the linear domain each interval T_j/T_i is a rational function of
// x, so the objective is assembled exactly over rational coefficients,
// differentiated symbolically, and minimized by extracting the real
// positive roots of the derivative numerator. Candidates where the
// objective cannot be evaluated are skipped; when no candidate survives
// the filters, the returned Solution reports Found=false. In the log
// domain the objective mixes logarithms of rational functions and has no
// closed-form critical points; Solve fails fast with
// ErrNotAnalyticallySolvable and SolveNumeric minimizes the same
// objective iteratively.
//
// # Usage
//
// Fit a divider to two measured ratios a whole step apart:
//
//	sol, err := fit.Solve(
//	    []float64{1.25, 1.5}, []float64{1, 1},
//	    fit.DomainLinear, fit.ModelRooted,
//	)
//	if err != nil || !sol.Found {
//	    // no usable divider
//	}
//	// sol.X = 4, sol.Residual = 0
//
// Log-domain fits route through the numeric fallback:
//
//	sol, err := fit.Solve(ratios, deltas, fit.DomainLog, fit.ModelPairwise)
//	if errors.Is(err, fit.ErrNotAnalyticallySolvable) {
//	    sol, err = fit.SolveNumeric(ratios, deltas, fit.DomainLog, fit.ModelPairwise)
//	}
//
// Linear-domain residuals are reported in ratio units, log-domain
// residuals in cents.
package fit
