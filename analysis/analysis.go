// Package analysis inspects the spectrum of generated buffers.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/colundi/colundi"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Report summarizes a buffer.
type Report struct {
	// Window is the number of samples analyzed.
	Window int

	// DominantFrequency is the centre of the strongest FFT bin in Hz.
	DominantFrequency float64

	// Resolution is the width of one FFT bin in Hz.
	Resolution float64

	// TotalEnergy is the sum of squared samples.
	TotalEnergy float64

	// Peak is the largest absolute sample value.
	Peak float64

	// SNR is the power of the dominant bin against all other bins, in dB.
	SNR float64
}

// Analyze computes a Report over at most maxWindow samples from the start of b. A maxWindow
// of zero or less analyzes the whole buffer.
func Analyze(b *colundi.SampleBuffer, maxWindow int) Report {
	var s colundi.Streamer = b.Streamer()
	if maxWindow > 0 {
		s = colundi.Take(maxWindow, s)
	}
	x := colundi.Collect(s)
	if len(x) == 0 {
		return Report{}
	}

	abs := make([]float64, len(x))
	for i, v := range x {
		abs[i] = math.Abs(v)
	}

	r := Report{
		Window:      len(x),
		Resolution:  float64(b.SampleRate()) / float64(len(x)),
		TotalEnergy: floats.Dot(x, x),
		Peak:        floats.Max(abs),
	}

	spectrum := fft.FFTReal(x)
	power := make([]float64, len(spectrum)/2+1)
	for i := range power {
		m := cmplx.Abs(spectrum[i])
		power[i] = m * m
	}
	dominant := floats.MaxIdx(power)
	r.DominantFrequency = float64(dominant) * r.Resolution

	signal := power[dominant]
	noise := floats.Sum(power) - signal
	if noise <= 0 {
		r.SNR = math.Inf(1)
	} else {
		r.SNR = 10 * math.Log10(signal/noise)
	}
	return r
}
