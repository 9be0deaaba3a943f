package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// SolveNumeric minimizes the interval disagreement iteratively. It
// handles both domains but exists for the log domain, where Solve fails
// fast. Nelder-Mead simplex runs from several starts spread log-evenly
// across the configured divider range, searching over t = ln(x) so the
// positivity constraint holds structurally. The best minimum is then
// polished by bisecting the sign change of the pointwise derivative.
//
// A Solution with Found=false and no error means no start reached a
// point where the objective is defined and finite.
func (s *Solver) SolveNumeric(ratios, deltas []float64, domain Domain, model Model) (Solution, error) {
	if err := validate(ratios, deltas); err != nil {
		return Solution{}, err
	}

	switch domain {
	case DomainLinear, DomainLog:
	default:
		return Solution{}, fmt.Errorf("%w: %d", ErrUnknownDomain, int(domain))
	}

	ev, err := evaluatorFor(ratios, deltas, domain, model)
	if err != nil {
		return Solution{}, err
	}

	logLo := math.Log(s.cfg.NumericMin)
	logHi := math.Log(s.cfg.NumericMax)
	starts := s.cfg.NumericStarts

	bestX := 0.0
	bestE := math.Inf(1)

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			return ev.objectiveAt(math.Exp(p[0]))
		},
	}

	for k := range starts {
		frac := (float64(k) + 0.5) / float64(starts)
		t0 := logLo + frac*(logHi-logLo)

		result, err := optimize.Minimize(problem, []float64{t0}, nil, &optimize.NelderMead{})
		if err != nil || result == nil || !isFinite(result.F) {
			continue
		}

		x := math.Exp(result.X[0])
		s.tracef("start %d at x0=%.6g reached x=%.12g E=%.6g", k, math.Exp(t0), x, result.F)

		if result.F < bestE {
			bestE = result.F
			bestX = x
		}
	}

	if !isFinite(bestE) {
		s.tracef("no start reached a finite objective")
		return Solution{}, nil
	}

	x := polish(ev, bestX)

	e := ev.objectiveAt(x)
	if !isFinite(e) || e > bestE {
		x, e = bestX, bestE
	}

	s.tracef("numeric minimum x=%.12g E=%.6g", x, e)

	return Solution{X: x, Residual: residualFrom(e, domain), Found: true}, nil
}

// polish refines a minimizer by bisecting a derivative sign change
// bracketing it. When no bracket exists within a factor of a few around
// x0 (a flat or boundary minimum), x0 is returned unchanged.
func polish(ev *evaluator, x0 float64) float64 {
	var lo, hi float64

	found := false
	width := 1.01

	for range 8 {
		lo, hi = x0/width, x0*width

		dlo := ev.derivativeAt(lo)
		dhi := ev.derivativeAt(hi)

		if isFinite(dlo) && isFinite(dhi) && dlo < 0 && dhi > 0 {
			found = true
			break
		}

		width *= width
	}

	if !found {
		return x0
	}

	for range 200 {
		mid := 0.5 * (lo + hi)

		d := ev.derivativeAt(mid)
		if !isFinite(d) {
			return x0
		}

		if d == 0 {
			return mid
		}

		if d < 0 {
			lo = mid
		} else {
			hi = mid
		}

		if hi-lo <= 1e-15*hi {
			break
		}
	}

	return 0.5 * (lo + hi)
}
