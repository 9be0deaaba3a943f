// Package template describes ideal step patterns for tuning analysis.
//
// A pattern lists per-step deltas in an arbitrary additive unit. Summing
// the deltas places each scale degree at a cumulative offset D_i above the
// root, and a positive divider x turns the offsets into predicted
// frequency ratios T_i(x) = (x + D_i) / x. The root degree carries no
// offset, so T_0 is exactly 1 for every x.
package template

// Pattern is the per-step delta sequence of an ideal tuning layout. A
// pattern with n deltas spans n+1 scale degrees including the root.
type Pattern []float64

// Degrees returns the number of scale degrees the pattern spans,
// including the root.
func (p Pattern) Degrees() int {
	return len(p) + 1
}

// Cumulative returns the offsets D_1..D_n of each non-root degree above
// the root, formed by running sums over the deltas.
func (p Pattern) Cumulative() []float64 {
	out := make([]float64, len(p))

	sum := 0.0
	for i, d := range p {
		sum += d
		out[i] = sum
	}

	return out
}

// Ratios returns the predicted frequency ratios of all degrees for the
// divider x. The result has Degrees() entries and the root entry is the
// exact constant 1. The prediction is meaningful for x > 0.
func (p Pattern) Ratios(x float64) []float64 {
	out := make([]float64, p.Degrees())
	out[0] = 1

	sum := 0.0
	for i, d := range p {
		sum += d
		out[i+1] = (x + sum) / x
	}

	return out
}
