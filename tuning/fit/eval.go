package fit

import "math"

// evaluator computes the objective and its derivative pointwise from
// per-term float64 coefficients. The coefficient slices come from the
// exact construction, so the only rounding is the final conversion and
// the Horner evaluation itself.
type evaluator struct {
	domain Domain
	terms  []termEval
}

type termEval struct {
	num, den   []float64
	dnum, dden []float64
	actual     float64
	logActual  float64
}

func newEvaluator(terms []term, domain Domain) *evaluator {
	ev := &evaluator{domain: domain, terms: make([]termEval, len(terms))}

	for i, t := range terms {
		ev.terms[i] = termEval{
			num:       t.target.Num.Float64s(),
			den:       t.target.Den.Float64s(),
			dnum:      t.target.Num.Derivative().Float64s(),
			dden:      t.target.Den.Derivative().Float64s(),
			actual:    t.actual,
			logActual: math.Log(t.actual),
		}
	}

	return ev
}

// objectiveAt returns E(x), or +Inf where the objective is undefined
// (a pole, or a non-positive interval in the log domain).
func (e *evaluator) objectiveAt(x float64) float64 {
	total := 0.0

	for i := range e.terms {
		t := &e.terms[i]

		den := horner(t.den, x)
		if den == 0 {
			return math.Inf(1)
		}

		phi := horner(t.num, x) / den

		switch e.domain {
		case DomainLog:
			if !(phi > 0) {
				return math.Inf(1)
			}

			d := math.Log(phi) - t.logActual
			total += d * d
		default:
			d := phi - t.actual
			total += d * d
		}
	}

	return total
}

// derivativeAt returns dE/dx via the exact per-term quotient rule
// evaluated pointwise, or NaN where the objective is undefined.
func (e *evaluator) derivativeAt(x float64) float64 {
	total := 0.0

	for i := range e.terms {
		t := &e.terms[i]

		den := horner(t.den, x)
		if den == 0 {
			return math.NaN()
		}

		num := horner(t.num, x)
		phi := num / den
		dphi := (horner(t.dnum, x)*den - num*horner(t.dden, x)) / (den * den)

		switch e.domain {
		case DomainLog:
			if !(phi > 0) {
				return math.NaN()
			}

			total += 2 * (math.Log(phi) - t.logActual) * dphi / phi
		default:
			total += 2 * (phi - t.actual) * dphi
		}
	}

	return total
}

func horner(c []float64, x float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}

	return v
}

// evaluatorFor builds the pointwise evaluator used by the numeric path
// and by diagnostic checks of analytic results.
func evaluatorFor(ratios, deltas []float64, domain Domain, model Model) (*evaluator, error) {
	terms, err := buildTerms(ratios, deltas, model)
	if err != nil {
		return nil, err
	}

	return newEvaluator(terms, domain), nil
}
