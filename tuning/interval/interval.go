// Package interval converts between frequency ratios and the logarithmic
// cent scale used throughout the tuning packages.
package interval

import "math"

// CentsPerOctave is the size of one octave on the cent scale.
const CentsPerOctave = 1200.0

// NaturalLogToCents converts a natural-logarithm interval to cents.
const NaturalLogToCents = CentsPerOctave / math.Ln2

// CentsToRatio returns the frequency ratio spanning the given interval in
// cents. Zero cents maps to a ratio of exactly 1.
func CentsToRatio(cents float64) float64 {
	return math.Exp2(cents / CentsPerOctave)
}

// RatioToCents returns the interval in cents spanned by the given
// frequency ratio. Ratios that are not strictly positive have no
// logarithmic size and yield NaN.
func RatioToCents(ratio float64) float64 {
	if !(ratio > 0) {
		return math.NaN()
	}

	return CentsPerOctave * math.Log2(ratio)
}
