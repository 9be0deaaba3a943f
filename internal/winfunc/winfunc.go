// Package winfunc generates the analysis windows used by the tone
// detector. Windows come in their periodic (DFT-even) form so that
// bin-centered tones keep symmetric leakage.
package winfunc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
)

// ErrUnknownType is returned when a window name does not match a
// supported type.
var ErrUnknownType = errors.New("winfunc: unknown window type")

// String returns the canonical lower-case name of the window type.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("window(%d)", int(t))
	}
}

// ParseType maps a name to a window Type, ignoring case and surrounding
// whitespace.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect":
		return TypeRectangular, nil
	case "hann":
		return TypeHann, nil
	case "blackman":
		return TypeBlackman, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Generate returns n periodic window coefficients. A non-positive n
// yields an empty slice.
func Generate(t Type, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	w := make([]float64, n)

	switch t {
	case TypeHann:
		for i := range n {
			w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
		}
	case TypeBlackman:
		for i := range n {
			phase := 2 * math.Pi * float64(i) / float64(n)
			w[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
		}
	default:
		for i := range n {
			w[i] = 1
		}
	}

	return w
}

// CoherentGain returns the mean coefficient of the window, the factor by
// which a bin-centered tone's spectral peak is scaled.
func CoherentGain(t Type, n int) float64 {
	if n <= 0 {
		return 0
	}

	sum := 0.0
	for _, v := range Generate(t, n) {
		sum += v
	}

	return sum / float64(n)
}
