// Package tone detects the prominent spectral peaks of a recorded chord
// and reports them as frequency ratios against the lowest peak.
package tone

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-tuning/internal/winfunc"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultMinFreq   = 20.0
	defaultMaxFreq   = 20000.0
	defaultThreshold = 0.05
	defaultMaxTones  = 12
)

// Config holds tone detection parameters.
type Config struct {
	SampleRate float64
	// FFTSize is the transform length; zero selects the next power of
	// two at or above the signal length.
	FFTSize int
	// MinFreq and MaxFreq bound the analysis band in Hz.
	MinFreq float64
	MaxFreq float64
	// Threshold is the minimum peak magnitude relative to the strongest
	// in-band peak for a tone to be kept.
	Threshold float64
	// MaxTones caps the number of reported tones, keeping the strongest.
	MaxTones int
	// WindowType tapers the signal before the transform; the zero value
	// selects Hann.
	WindowType winfunc.Type
}

// Tone is one detected spectral peak with its parabolic-refined
// frequency and linear magnitude.
type Tone struct {
	Freq  float64
	Level float64
}

var (
	// ErrNoSignal is returned for an empty input signal.
	ErrNoSignal = errors.New("tone: empty signal")
	// ErrInvalidSampleRate is returned when the sample rate is not positive.
	ErrInvalidSampleRate = errors.New("tone: sample rate must be positive")
	// ErrTooFewTones is returned by Ratios when fewer than two tones are
	// detected.
	ErrTooFewTones = errors.New("tone: need at least two tones for ratios")
)

// Detector performs spectral peak detection on time-domain signals.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with normalized configuration.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: normalizeConfig(cfg)}
}

// Detect is a one-shot peak detection for a time-domain signal.
func Detect(signal []float64, cfg Config) ([]Tone, error) {
	return NewDetector(cfg).Detect(signal)
}

// Ratios is a one-shot detection reporting frequency ratios against the
// lowest detected tone.
func Ratios(signal []float64, cfg Config) ([]float64, error) {
	return NewDetector(cfg).Ratios(signal)
}

// Detect windows the signal, transforms it, and returns the in-band
// spectral peaks in ascending frequency order. A silent signal yields an
// empty slice.
func (d *Detector) Detect(signal []float64) ([]Tone, error) {
	if len(signal) == 0 {
		return nil, ErrNoSignal
	}

	if d.cfg.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	fftSize := d.cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	coeffs := winfunc.Generate(d.cfg.WindowType, len(signal))
	windowed := make([]float64, len(signal))
	vecmath.MulBlock(windowed, signal, coeffs)

	inData := make([]complex128, fftSize)
	for i := range min(len(windowed), fftSize) {
		inData[i] = complex(windowed[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tone: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return nil, fmt.Errorf("tone: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return d.pickPeaks(mag, fftSize), nil
}

// Ratios detects tones and divides every frequency by the lowest one.
// The result has one entry per non-root tone.
func (d *Detector) Ratios(signal []float64) ([]float64, error) {
	tones, err := d.Detect(signal)
	if err != nil {
		return nil, err
	}

	if len(tones) < 2 {
		return nil, ErrTooFewTones
	}

	root := tones[0].Freq
	out := make([]float64, len(tones)-1)

	for i, t := range tones[1:] {
		out[i] = t.Freq / root
	}

	return out, nil
}

// pickPeaks scans the in-band magnitude bins for local maxima above the
// relative threshold, refines each by parabolic interpolation, and keeps
// the strongest MaxTones sorted by ascending frequency.
func (d *Detector) pickPeaks(mag []float64, fftSize int) []Tone {
	binHz := d.cfg.SampleRate / float64(fftSize)
	maxBin := len(mag) - 1

	lo := clampInt(int(math.Ceil(d.cfg.MinFreq/binHz)), 1, maxBin-1)
	hi := clampInt(int(math.Floor(d.cfg.MaxFreq/binHz)), lo, maxBin-1)

	peak := 0.0
	for i := lo; i <= hi; i++ {
		if mag[i] > peak {
			peak = mag[i]
		}
	}

	if peak <= 0 {
		return []Tone{}
	}

	floor := peak * d.cfg.Threshold
	tones := make([]Tone, 0, d.cfg.MaxTones)

	for i := lo; i <= hi; i++ {
		if mag[i] < floor {
			continue
		}

		if !(mag[i] > mag[i-1] && mag[i] >= mag[i+1]) {
			continue
		}

		delta, level := refinePeak(mag[i-1], mag[i], mag[i+1])
		tones = append(tones, Tone{
			Freq:  (float64(i) + delta) * binHz,
			Level: level,
		})
	}

	if len(tones) > d.cfg.MaxTones {
		sort.Slice(tones, func(a, b int) bool { return tones[a].Level > tones[b].Level })
		tones = tones[:d.cfg.MaxTones]
	}

	sort.Slice(tones, func(a, b int) bool { return tones[a].Freq < tones[b].Freq })

	return tones
}

// refinePeak fits a parabola through three adjacent magnitude bins and
// returns the fractional bin offset of the vertex and its height. The
// offset is clamped to half a bin.
func refinePeak(left, center, right float64) (float64, float64) {
	den := left - 2*center + right
	if den == 0 {
		return 0, center
	}

	delta := 0.5 * (left - right) / den
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}

	return delta, center - 0.25*(left-right)*delta
}

func normalizeConfig(cfg Config) Config {
	if cfg.MinFreq <= 0 {
		cfg.MinFreq = defaultMinFreq
	}

	if cfg.MaxFreq <= 0 {
		cfg.MaxFreq = defaultMaxFreq
	}

	if cfg.Threshold <= 0 || cfg.Threshold >= 1 {
		cfg.Threshold = defaultThreshold
	}

	if cfg.MaxTones <= 0 {
		cfg.MaxTones = defaultMaxTones
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = winfunc.TypeHann
	}

	return cfg
}

func clampInt(v, lower, upper int) int {
	if v < lower {
		return lower
	}

	if v > upper {
		return upper
	}

	return v
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
