package fit

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/cwbudde/algo-tuning/internal/polyroot"
	"github.com/cwbudde/algo-tuning/internal/ratfunc"
	"github.com/cwbudde/algo-tuning/tuning/interval"
)

// Domain selects the space in which interval disagreement is measured.
type Domain int

const (
	// DomainLinear measures residuals directly between frequency ratios.
	DomainLinear Domain = iota
	// DomainLog measures residuals between interval logarithms; residuals
	// are reported in cents.
	DomainLog
)

// String returns the canonical lower-case name of the domain.
func (d Domain) String() string {
	switch d {
	case DomainLinear:
		return "linear"
	case DomainLog:
		return "log"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// ParseDomain maps a name to a Domain, ignoring case and surrounding
// whitespace.
func ParseDomain(name string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return DomainLinear, nil
	case "log":
		return DomainLog, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
}

// Model selects which degree pairs contribute residual terms.
type Model int

const (
	// ModelRooted compares every degree against the root.
	ModelRooted Model = iota
	// ModelPairwise compares every ordered pair of degrees.
	ModelPairwise
	// ModelAllSteps compares adjacent degrees only.
	ModelAllSteps
)

// String returns the canonical lower-case name of the model.
func (m Model) String() string {
	switch m {
	case ModelRooted:
		return "rooted"
	case ModelPairwise:
		return "pairwise"
	case ModelAllSteps:
		return "all-steps"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// ParseModel maps a name to a Model, ignoring case and surrounding
// whitespace.
func ParseModel(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rooted":
		return ModelRooted, nil
	case "pairwise":
		return ModelPairwise, nil
	case "all-steps", "allsteps":
		return ModelAllSteps, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}

// RootSolver selects the polynomial root-finding backend used to extract
// critical points of the objective derivative.
type RootSolver int

const (
	// RootSolverDurandKerner uses Weierstrass simultaneous iteration.
	RootSolverDurandKerner RootSolver = iota
	// RootSolverCompanion uses companion-matrix eigenvalues.
	RootSolverCompanion
)

// String returns the canonical lower-case name of the backend.
func (r RootSolver) String() string {
	switch r {
	case RootSolverDurandKerner:
		return "durand-kerner"
	case RootSolverCompanion:
		return "companion"
	default:
		return fmt.Sprintf("rootsolver(%d)", int(r))
	}
}

// ParseRootSolver maps a name to a RootSolver, ignoring case and
// surrounding whitespace.
func ParseRootSolver(name string) (RootSolver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "durand-kerner", "durandkerner":
		return RootSolverDurandKerner, nil
	case "companion":
		return RootSolverCompanion, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRootSolver, name)
	}
}

func (r RootSolver) finder() polyroot.Finder {
	if r == RootSolverCompanion {
		return polyroot.Companion{}
	}

	return polyroot.DurandKerner{}
}

// Solution is the outcome of a divider fit. The zero value reports that
// no usable divider exists; Found distinguishes it from a genuine fit at
// X=0, which cannot occur since dividers are strictly positive.
type Solution struct {
	X        float64
	Residual float64
	Found    bool
}

var (
	// ErrEmptyInput is returned when no measured ratios are supplied.
	ErrEmptyInput = errors.New("fit: empty ratio set")
	// ErrLengthMismatch is returned when ratios and deltas disagree in length.
	ErrLengthMismatch = errors.New("fit: ratios and deltas length mismatch")
	// ErrNonPositiveRatio is returned when a measured ratio is zero,
	// negative, or not finite.
	ErrNonPositiveRatio = errors.New("fit: ratio must be strictly positive and finite")
	// ErrNonFiniteDelta is returned when a pattern delta is NaN or infinite.
	ErrNonFiniteDelta = errors.New("fit: delta must be finite")
	// ErrNotAnalyticallySolvable is returned by Solve for the log domain,
	// whose objective has no closed-form critical points. Callers fall back
	// to SolveNumeric.
	ErrNotAnalyticallySolvable = errors.New("fit: log-domain objective has no closed-form critical points")
	// ErrUnknownDomain is returned for a Domain outside the defined set.
	ErrUnknownDomain = errors.New("fit: unknown domain")
	// ErrUnknownModel is returned for a Model outside the defined set.
	ErrUnknownModel = errors.New("fit: unknown model")
	// ErrUnknownRootSolver is returned for a RootSolver outside the defined set.
	ErrUnknownRootSolver = errors.New("fit: unknown root solver")
)

// Solve fits a divider with default configuration. See Solver.Solve.
func Solve(ratios, deltas []float64, domain Domain, model Model, opts ...Option) (Solution, error) {
	return NewSolver(opts...).Solve(ratios, deltas, domain, model)
}

// SolveNumeric fits a divider iteratively with default configuration.
// See Solver.SolveNumeric.
func SolveNumeric(ratios, deltas []float64, domain Domain, model Model, opts ...Option) (Solution, error) {
	return NewSolver(opts...).SolveNumeric(ratios, deltas, domain, model)
}

// Solver fits dividers with a fixed configuration. A Solver is stateless
// after construction and safe for concurrent use.
type Solver struct {
	cfg    Config
	finder polyroot.Finder
}

// NewSolver builds a Solver from the default configuration and options.
func NewSolver(opts ...Option) *Solver {
	cfg := ApplyOptions(opts...)

	return &Solver{cfg: cfg, finder: cfg.RootSolver.finder()}
}

// Solve minimizes the interval disagreement exactly. Ratios hold the
// measured frequency ratios of the non-root degrees relative to the
// root; deltas hold the per-step pattern offsets, index-aligned with
// ratios. A Solution with Found=false and no error means every critical
// point was filtered out and no usable divider exists.
//
// The log domain has no exact solution path; Solve returns
// ErrNotAnalyticallySolvable without attempting one.
func (s *Solver) Solve(ratios, deltas []float64, domain Domain, model Model) (Solution, error) {
	if err := validate(ratios, deltas); err != nil {
		return Solution{}, err
	}

	switch domain {
	case DomainLinear:
	case DomainLog:
		return Solution{}, ErrNotAnalyticallySolvable
	default:
		return Solution{}, fmt.Errorf("%w: %d", ErrUnknownDomain, int(domain))
	}

	terms, err := buildTerms(ratios, deltas, model)
	if err != nil {
		return Solution{}, err
	}

	obj := assemble(terms)
	deriv := obj.Derivative()

	s.tracef("objective E(x) = %s", obj)
	s.tracef("derivative numerator = %s", deriv.Num)

	if deriv.Num.IsZero() {
		// Constant objective: every divider fits equally badly and no
		// critical point prefers one.
		s.tracef("derivative vanishes identically, no candidates")
		return Solution{}, nil
	}

	roots, err := s.finder.Roots(deriv.Num.Float64s())
	if err != nil {
		return Solution{}, fmt.Errorf("fit: extracting critical points: %w", err)
	}

	return s.selectBest(obj, roots, domain), nil
}

// selectBest evaluates the objective exactly at every real positive
// critical point and keeps the smallest. Candidates that are complex,
// non-positive, or land on a pole are skipped. Ties keep the earliest
// candidate in backend order.
func (s *Solver) selectBest(obj ratfunc.R, roots []polyroot.Root, domain Domain) Solution {
	best := Solution{}
	bestErr := math.Inf(1)

	for i, rt := range roots {
		if !rt.IsReal() {
			s.tracef("candidate %d = %v: complex, skipped", i, rt.Value)
			continue
		}

		v := rt.RealPart()
		if v <= 0 {
			s.tracef("candidate %d = %v: non-positive, skipped", i, v)
			continue
		}

		e, ok := evalObjective(obj, v)
		if !ok {
			s.tracef("candidate %d = %v: objective undefined, skipped", i, v)
			continue
		}

		s.tracef("candidate %d = %v: E = %v", i, v, e)

		if e < bestErr {
			bestErr = e
			best = Solution{X: v, Residual: residualFrom(e, domain), Found: true}
		}
	}

	return best
}

// evalObjective evaluates obj at x in exact rational arithmetic. The
// second return is false when x sits on a pole of the unreduced quotient
// or the value does not fit a finite float64.
func evalObjective(obj ratfunc.R, x float64) (float64, bool) {
	xr := new(big.Rat)
	if xr.SetFloat64(x) == nil {
		return 0, false
	}

	v, ok := obj.EvalRat(xr)
	if !ok {
		return 0, false
	}

	e, _ := v.Float64()
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return 0, false
	}

	return e, true
}

// residualFrom converts a squared-disagreement value to the reported
// residual: root-sum-square in ratio units for the linear domain, cents
// for the log domain.
func residualFrom(e float64, domain Domain) float64 {
	r := math.Sqrt(e)
	if domain == DomainLog {
		r *= interval.NaturalLogToCents
	}

	return r
}

func (s *Solver) tracef(format string, args ...any) {
	if s.cfg.Trace == nil {
		return
	}

	fmt.Fprintf(s.cfg.Trace, format+"\n", args...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
