// Command tunefit fits stretched-octave dividers to measured interval
// sets.
//
// Usage:
//
//	tunefit run [flags]
//	tunefit solve [flags]
//
// The run command solves every case of a catalog (the built-in
// reference cases by default) under every domain and model combination
// and prints a result table. The solve command fits a single interval
// set given on the command line.
//
// Examples:
//
//	tunefit run
//	tunefit run --catalog cases.yaml --workers 8
//	tunefit solve --ratios 1.25,1.5 --deltas 1,1
//	tunefit solve --cents 400,720 --deltas 1,1 --domain log --model pairwise
//	tunefit solve --ratios 1.5 --deltas 1 --root-solver companion --trace
//
// Configuration is layered: defaults, then an optional tunefit.yaml in
// the working directory (or --config), then TUNEFIT_* environment
// variables, then flags.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-tuning/tuning/catalog"
	"github.com/cwbudde/algo-tuning/tuning/fit"
	"github.com/cwbudde/algo-tuning/tuning/interval"
	"github.com/cwbudde/algo-tuning/tuning/runner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "tunefit",
		Short: "Fit stretched-octave dividers to measured interval sets",
		Long: `Tunefit finds the divider x that best reproduces a set of measured
interval ratios through templates of the form (x+d)/x, either exactly
via polynomial critical points or iteratively where no closed form
exists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default tunefit.yaml in the working directory)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	root.PersistentFlags().String("root-solver", "durand-kerner", "polynomial root backend: durand-kerner or companion")

	_ = viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("root-solver", root.PersistentFlags().Lookup("root-solver"))

	root.AddCommand(newRunCmd(), newSolveCmd())

	return root
}

func initConfig(cfgFile string) error {
	viper.SetDefault("log-level", "info")
	viper.SetDefault("root-solver", "durand-kerner")
	viper.SetDefault("workers", 0)
	viper.SetDefault("catalog", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		viper.SetConfigName("tunefit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	viper.SetEnvPrefix("TUNEFIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return nil
}

func setupLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	log.SetLevel(lvl)

	return log, nil
}

func solverOptions() ([]fit.Option, error) {
	backend, err := fit.ParseRootSolver(viper.GetString("root-solver"))
	if err != nil {
		return nil, err
	}

	return []fit.Option{fit.WithRootSolver(backend)}, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Solve every catalog case under every mode and print a table",
		Args:  cobra.NoArgs,
		RunE:  runRun,
	}

	cmd.Flags().String("catalog", "", "catalog file (default: built-in reference cases)")
	cmd.Flags().Int("workers", 0, "concurrent solves (0 = all CPUs)")

	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	log, err := setupLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}

	opts, err := solverOptions()
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if path := viper.GetString("catalog"); path != "" {
		if cat, err = catalog.Load(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r := runner.New(runner.Config{Workers: viper.GetInt("workers"), Options: opts}, log)

	rep, err := r.Run(ctx, cat)
	if err != nil {
		return err
	}

	return rep.WriteTable(cmd.OutOrStdout())
}

func newSolveCmd() *cobra.Command {
	var (
		ratiosArg string
		centsArg  string
		deltasArg string
		domainArg string
		modelArg  string
		trace     bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Fit a single interval set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, ratiosArg, centsArg, deltasArg, domainArg, modelArg, trace)
		},
	}

	cmd.Flags().StringVar(&ratiosArg, "ratios", "", "comma-separated frequency ratios relative to the root")
	cmd.Flags().StringVar(&centsArg, "cents", "", "comma-separated intervals in cents relative to the root")
	cmd.Flags().StringVar(&deltasArg, "deltas", "", "comma-separated pattern deltas, one per interval")
	cmd.Flags().StringVar(&domainArg, "domain", "linear", "residual domain: linear or log")
	cmd.Flags().StringVar(&modelArg, "model", "rooted", "residual model: rooted, pairwise, or all-steps")
	cmd.Flags().BoolVar(&trace, "trace", false, "write solver trace to stderr")

	return cmd
}

func runSolve(cmd *cobra.Command, ratiosArg, centsArg, deltasArg, domainArg, modelArg string, trace bool) error {
	domain, err := fit.ParseDomain(domainArg)
	if err != nil {
		return err
	}

	model, err := fit.ParseModel(modelArg)
	if err != nil {
		return err
	}

	if (ratiosArg == "") == (centsArg == "") {
		return errors.New("exactly one of --ratios or --cents is required")
	}

	var ratios []float64

	if ratiosArg != "" {
		if ratios, err = parseFloats(ratiosArg); err != nil {
			return err
		}
	} else {
		cents, err := parseFloats(centsArg)
		if err != nil {
			return err
		}

		ratios = make([]float64, len(cents))
		for i, c := range cents {
			ratios[i] = interval.CentsToRatio(c)
		}
	}

	deltas, err := parseFloats(deltasArg)
	if err != nil {
		return err
	}

	opts, err := solverOptions()
	if err != nil {
		return err
	}

	if trace {
		opts = append(opts, fit.WithTrace(cmd.ErrOrStderr()))
	}

	sol, err := fit.Solve(ratios, deltas, domain, model, opts...)
	if errors.Is(err, fit.ErrNotAnalyticallySolvable) {
		sol, err = fit.SolveNumeric(ratios, deltas, domain, model, opts...)
	}

	if err != nil {
		return err
	}

	if !sol.Found {
		fmt.Fprintln(cmd.OutOrStdout(), "no valid divider found")
		return nil
	}

	unit := ""
	if domain == fit.DomainLog {
		unit = " cents"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "x = %.9g\nresidual = %.6g%s\n", sol.X, sol.Residual, unit)

	return nil
}

func parseFloats(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	out := make([]float64, 0, len(parts))

	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}

		out = append(out, v)
	}

	return out, nil
}
