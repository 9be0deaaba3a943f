package fit

import (
	"math"
	"math/big"

	"github.com/cwbudde/algo-tuning/internal/poly"
	"github.com/cwbudde/algo-tuning/internal/ratfunc"
)

// term is one interval comparison: the pattern-predicted interval as an
// exact rational function of the divider, against the measured value.
type term struct {
	target ratfunc.R
	actual float64
}

func validate(ratios, deltas []float64) error {
	if len(ratios) == 0 {
		return ErrEmptyInput
	}

	if len(ratios) != len(deltas) {
		return ErrLengthMismatch
	}

	for _, r := range ratios {
		if !(r > 0) || math.IsInf(r, 1) {
			return ErrNonPositiveRatio
		}
	}

	for _, d := range deltas {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return ErrNonFiniteDelta
		}
	}

	return nil
}

// modelPairs enumerates the (i, j) degree pairs a model compares, with
// i < j over degrees 0..n where degree 0 is the root.
func modelPairs(model Model, n int) ([][2]int, error) {
	switch model {
	case ModelRooted:
		pairs := make([][2]int, 0, n)
		for j := 1; j <= n; j++ {
			pairs = append(pairs, [2]int{0, j})
		}

		return pairs, nil

	case ModelPairwise:
		pairs := make([][2]int, 0, n*(n+1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j <= n; j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}

		return pairs, nil

	case ModelAllSteps:
		pairs := make([][2]int, 0, n)
		for i := 0; i < n; i++ {
			pairs = append(pairs, [2]int{i, i + 1})
		}

		return pairs, nil

	default:
		return nil, ErrUnknownModel
	}
}

// buildTerms turns validated inputs into the model's comparison terms.
// Degree 0 is the root with offset 0 and measured ratio 1; the predicted
// interval between degrees i < j is (x + D_j) / (x + D_i).
func buildTerms(ratios, deltas []float64, model Model) ([]term, error) {
	n := len(ratios)

	pairs, err := modelPairs(model, n)
	if err != nil {
		return nil, err
	}

	offsets := make([]*big.Rat, n+1)
	measured := make([]float64, n+1)
	offsets[0] = new(big.Rat)
	measured[0] = 1

	sum := new(big.Rat)
	for i := range deltas {
		step := new(big.Rat)
		step.SetFloat64(deltas[i])
		sum.Add(sum, step)

		offsets[i+1] = new(big.Rat).Set(sum)
		measured[i+1] = ratios[i]
	}

	terms := make([]term, 0, len(pairs))

	for _, p := range pairs {
		i, j := p[0], p[1]

		actual := measured[j] / measured[i]
		if !(actual > 0) || math.IsInf(actual, 1) {
			return nil, ErrNonPositiveRatio
		}

		terms = append(terms, term{
			target: ratfunc.R{
				Num: poly.Affine(offsets[j]),
				Den: poly.Affine(offsets[i]),
			},
			actual: actual,
		})
	}

	return terms, nil
}

// assemble builds the exact linear-domain objective
// E(x) = sum over terms of (target - actual)^2. Terms sharing a
// denominator are merged before cross-multiplying so repeated offsets do
// not inflate the quotient degree.
func assemble(terms []term) ratfunc.R {
	groups := make([]ratfunc.R, 0, len(terms))

	for _, t := range terms {
		a := new(big.Rat)
		a.SetFloat64(t.actual)

		num := t.target.Num.Sub(t.target.Den.Scale(a))
		sq := ratfunc.R{
			Num: num.Mul(num),
			Den: t.target.Den.Mul(t.target.Den),
		}

		merged := false
		for gi := range groups {
			if groups[gi].Den.Equal(sq.Den) {
				groups[gi].Num = groups[gi].Num.Add(sq.Num)
				merged = true

				break
			}
		}

		if !merged {
			groups = append(groups, sq)
		}
	}

	obj := ratfunc.Zero()
	for _, g := range groups {
		obj = obj.Add(g)
	}

	return obj
}
