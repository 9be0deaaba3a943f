// Package catalog defines named measurement cases and solver modes, with
// YAML loading for user-supplied collections and a built-in default set.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tuning/tuning/fit"
	"github.com/cwbudde/algo-tuning/tuning/interval"
)

var (
	// ErrNoCases is returned when a catalog defines no cases.
	ErrNoCases = errors.New("catalog: no cases defined")
	// ErrCaseSource is returned when a case does not provide exactly one
	// of ratios or cents.
	ErrCaseSource = errors.New("catalog: case must provide exactly one of ratios or cents")
	// ErrCaseLength is returned when deltas and the interval list differ
	// in length.
	ErrCaseLength = errors.New("catalog: deltas must match intervals in length")
	// ErrCaseRatio is returned when a resolved ratio is not strictly
	// positive and finite.
	ErrCaseRatio = errors.New("catalog: case ratio must be positive and finite")
	// ErrDuplicateMode is returned when two modes share a key.
	ErrDuplicateMode = errors.New("catalog: duplicate mode key")
)

// Case is one measured interval set to fit: intervals either as raw
// frequency ratios or in cents, plus the index-aligned pattern deltas.
type Case struct {
	Name   string
	Ratios []float64
	Cents  []float64
	Deltas []float64
}

// ResolvedRatios returns the case intervals as frequency ratios,
// converting from cents when the case is cents-based. The result is a
// fresh slice.
func (c Case) ResolvedRatios() []float64 {
	if len(c.Ratios) > 0 {
		out := make([]float64, len(c.Ratios))
		copy(out, c.Ratios)

		return out
	}

	out := make([]float64, len(c.Cents))
	for i, cents := range c.Cents {
		out[i] = interval.CentsToRatio(cents)
	}

	return out
}

// Mode is one solver configuration to run every case through.
type Mode struct {
	Key    string
	Domain fit.Domain
	Model  fit.Model
}

// Catalog is a validated collection of cases and modes.
type Catalog struct {
	Cases []Case
	Modes []Mode
}

// Default returns the built-in catalog: four reference chord
// measurements run through every domain and model combination.
func Default() Catalog {
	return Catalog{
		Cases: []Case{
			{
				Name:   "4:5:6 with +1+1",
				Ratios: []float64{1.25, 1.5},
				Deltas: []float64{1, 1},
			},
			{
				Name:   "0c-400c-720c with +1+1",
				Cents:  []float64{400, 720},
				Deltas: []float64{1, 1},
			},
			{
				Name:   "0c-276.9c-738.5c-923.1c with +1+2+1",
				Cents:  []float64{276.9, 738.5, 923.1},
				Deltas: []float64{1, 2, 1},
			},
			{
				Name:   "0c-257.1c-771.4c-942.9c with +1+3+1",
				Cents:  []float64{257.1, 771.4, 942.9},
				Deltas: []float64{1, 3, 1},
			},
		},
		Modes: defaultModes(),
	}
}

func defaultModes() []Mode {
	domains := []fit.Domain{fit.DomainLinear, fit.DomainLog}
	models := []fit.Model{fit.ModelRooted, fit.ModelPairwise, fit.ModelAllSteps}

	modes := make([]Mode, 0, len(domains)*len(models))
	for _, d := range domains {
		for _, m := range models {
			modes = append(modes, Mode{Key: modeKey(d, m), Domain: d, Model: m})
		}
	}

	return modes
}

func modeKey(d fit.Domain, m fit.Model) string {
	return d.String() + "-" + m.String()
}

type yamlCatalog struct {
	Cases []yamlCase `yaml:"cases"`
	Modes []yamlMode `yaml:"modes"`
}

type yamlCase struct {
	Name   string    `yaml:"name"`
	Ratios []float64 `yaml:"ratios"`
	Cents  []float64 `yaml:"cents"`
	Deltas []float64 `yaml:"deltas"`
}

type yamlMode struct {
	Key    string `yaml:"key"`
	Domain string `yaml:"domain"`
	Model  string `yaml:"model"`
}

// Load reads and parses a catalog file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: reading %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML catalog. Cases must resolve to
// positive finite ratios; modes default to every domain and model
// combination when omitted.
func Parse(data []byte) (Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parsing yaml: %w", err)
	}

	if len(raw.Cases) == 0 {
		return Catalog{}, ErrNoCases
	}

	cat := Catalog{Cases: make([]Case, 0, len(raw.Cases))}

	for i, rc := range raw.Cases {
		c := Case{Name: rc.Name, Ratios: rc.Ratios, Cents: rc.Cents, Deltas: rc.Deltas}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}

		if err := validateCase(c); err != nil {
			return Catalog{}, fmt.Errorf("%w (case %q)", err, c.Name)
		}

		cat.Cases = append(cat.Cases, c)
	}

	if len(raw.Modes) == 0 {
		cat.Modes = defaultModes()
		return cat, nil
	}

	seen := make(map[string]bool, len(raw.Modes))

	for _, rm := range raw.Modes {
		domain, err := fit.ParseDomain(rm.Domain)
		if err != nil {
			return Catalog{}, err
		}

		model, err := fit.ParseModel(rm.Model)
		if err != nil {
			return Catalog{}, err
		}

		key := rm.Key
		if key == "" {
			key = modeKey(domain, model)
		}

		if seen[key] {
			return Catalog{}, fmt.Errorf("%w: %q", ErrDuplicateMode, key)
		}

		seen[key] = true
		cat.Modes = append(cat.Modes, Mode{Key: key, Domain: domain, Model: model})
	}

	return cat, nil
}

func validateCase(c Case) error {
	hasRatios := len(c.Ratios) > 0
	hasCents := len(c.Cents) > 0

	if hasRatios == hasCents {
		return ErrCaseSource
	}

	intervals := len(c.Ratios)
	if hasCents {
		intervals = len(c.Cents)
	}

	if len(c.Deltas) != intervals {
		return ErrCaseLength
	}

	for _, r := range c.ResolvedRatios() {
		if !(r > 0) || math.IsInf(r, 1) {
			return ErrCaseRatio
		}
	}

	return nil
}
