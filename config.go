package colundi

import (
	"math"

	"github.com/pkg/errors"
)

// SynthesisConfig holds the parameters shared by every buffer of a batch.
type SynthesisConfig struct {
	// SampleRate is the output sample rate in Hz.
	SampleRate SampleRate

	// Duration is the nominal length of each buffer in seconds. Buffers are extended to the
	// next whole period, so the actual length may be longer.
	Duration float64

	// Amplitude scales the [-1, 1] waveform. Values above 1 clip when encoded.
	Amplitude float64
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() SynthesisConfig {
	return SynthesisConfig{
		SampleRate: 96000,
		Duration:   1,
		Amplitude:  0.5,
	}
}

// Validate reports ErrInvalidParameter if any field is outside its domain.
func (c SynthesisConfig) Validate() error {
	if c.SampleRate <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "sample rate %d must be positive", c.SampleRate)
	}
	if !positive(c.Duration) {
		return errors.Wrapf(ErrInvalidParameter, "duration %v must be a positive number of seconds", c.Duration)
	}
	if !positive(c.Amplitude) {
		return errors.Wrapf(ErrInvalidParameter, "amplitude %v must be positive", c.Amplitude)
	}
	return nil
}

// positive reports whether x is finite and greater than zero.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
