// Package runner executes every case and mode combination of a catalog
// concurrently and collects the outcomes into a report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-tuning/tuning/catalog"
	"github.com/cwbudde/algo-tuning/tuning/fit"
)

// Config controls catalog execution.
type Config struct {
	// Workers caps the number of concurrent solves. Zero or negative
	// selects the number of CPUs.
	Workers int
	// Options configure the shared solver.
	Options []fit.Option
}

// Entry is the outcome of one case and mode combination.
type Entry struct {
	Case     string
	Mode     string
	Solution fit.Solution
	Err      error
}

// Report holds entries in catalog order, cases outermost.
type Report struct {
	Entries []Entry
}

// Runner executes catalogs against a shared solver.
type Runner struct {
	cfg    Config
	solver *fit.Solver
	log    *logrus.Logger
}

// New builds a Runner. A nil logger discards all log output.
func New(cfg Config, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return &Runner{cfg: cfg, solver: fit.NewSolver(cfg.Options...), log: log}
}

// Run solves every case under every mode. Exact solving is attempted
// first; modes without a closed-form path fall back to the numeric
// solver. Per-combination failures are recorded in their entries, so
// only context cancellation aborts the run early.
func (r *Runner) Run(ctx context.Context, cat catalog.Catalog) (Report, error) {
	entries := make([]Entry, len(cat.Cases)*len(cat.Modes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for ci, c := range cat.Cases {
		for mi, m := range cat.Modes {
			slot := ci*len(cat.Modes) + mi
			ratios := c.ResolvedRatios()

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				sol, err := r.solveOne(ratios, c.Deltas, m)
				entries[slot] = Entry{Case: c.Name, Mode: m.Key, Solution: sol, Err: err}
				r.logEntry(entries[slot])

				return nil
			})
		}
	}

	err := g.Wait()

	return Report{Entries: entries}, err
}

func (r *Runner) solveOne(ratios, deltas []float64, m catalog.Mode) (fit.Solution, error) {
	sol, err := r.solver.Solve(ratios, deltas, m.Domain, m.Model)
	if errors.Is(err, fit.ErrNotAnalyticallySolvable) {
		sol, err = r.solver.SolveNumeric(ratios, deltas, m.Domain, m.Model)
	}

	return sol, err
}

func (r *Runner) logEntry(e Entry) {
	fields := logrus.Fields{"case": e.Case, "mode": e.Mode}

	switch {
	case e.Err != nil:
		r.log.WithFields(fields).WithError(e.Err).Warn("solve failed")
	case !e.Solution.Found:
		r.log.WithFields(fields).Warn("no usable divider")
	default:
		fields["x"] = e.Solution.X
		fields["residual"] = e.Solution.Residual
		r.log.WithFields(fields).Debug("solved")
	}
}

// WriteTable renders the report as an aligned text table. Residuals are
// in ratio units for linear modes and cents for log modes.
func (rep Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Case\tMode\tX\tResidual\tStatus\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "----\t----\t-\t--------\t------\n"); err != nil {
		return err
	}

	for _, e := range rep.Entries {
		var err error

		switch {
		case e.Err != nil:
			_, err = fmt.Fprintf(tw, "%s\t%s\t-\t-\terror: %v\n", e.Case, e.Mode, e.Err)
		case !e.Solution.Found:
			_, err = fmt.Fprintf(tw, "%s\t%s\t-\t-\tno solution\n", e.Case, e.Mode)
		default:
			_, err = fmt.Fprintf(tw, "%s\t%s\t%.6f\t%.6g\tok\n",
				e.Case, e.Mode, e.Solution.X, e.Solution.Residual)
		}

		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
