// Package spectrum provides the measurements used to check rendered tones:
// dominant frequency via FFT, largest sample-to-sample step and audible
// duration.
package spectrum

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ErrTooShort is returned when a signal has too few samples to analyze.
var ErrTooShort = errors.New("spectrum: signal too short")

const (
	minAnalysisSamples = 16
	hannScale          = 0.5
)

// DominantFrequency estimates the strongest frequency component of samples
// in Hz. A Hann window is applied before the FFT and the peak bin is refined
// by parabolic interpolation on the log magnitudes.
func DominantFrequency(samples []float64, sampleRate float64) (float64, error) {
	n := len(samples)
	if n < minAnalysisSamples {
		return 0, ErrTooShort
	}

	windowed := make([]float64, n)
	for i, s := range samples {
		w := hannScale * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = s * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	mags[0] = 0 // ignore DC

	k := floats.MaxIdx(mags)
	offset := 0.0
	if k > 0 && k < len(mags)-1 {
		a, b, c := logMag(mags[k-1]), logMag(mags[k]), logMag(mags[k+1])
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	return (float64(k) + offset) * sampleRate / float64(n), nil
}

func logMag(m float64) float64 {
	const floor = 1e-300
	return math.Log(math.Max(m, floor))
}

// MaxStep returns the largest absolute difference between consecutive
// samples and the index of the later sample.
func MaxStep(samples []float64) (step float64, index int) {
	for i := 1; i < len(samples); i++ {
		if d := math.Abs(samples[i] - samples[i-1]); d > step {
			step, index = d, i
		}
	}
	return step, index
}

// MaxSineStep is the largest step a full-scale sine at freq can take between
// two samples at sampleRate.
func MaxSineStep(freq, sampleRate float64) float64 {
	return 2 * math.Sin(math.Min(math.Pi*freq/sampleRate, math.Pi/2))
}

// ActiveDuration returns the time in seconds between the first and last
// sample whose magnitude exceeds threshold.
func ActiveDuration(samples []float64, sampleRate, threshold float64) float64 {
	first, last := -1, -1
	for i, s := range samples {
		if math.Abs(s) > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0
	}
	return float64(last-first+1) / sampleRate
}

// Peak returns the largest absolute sample value.
func Peak(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Max(floats.Max(samples), -floats.Min(samples))
}
