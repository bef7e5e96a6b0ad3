package generators

import (
	"math"

	"github.com/colundi/colundi"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// MaxSamples is the largest buffer Build produces. Longer buffers would not fit the 32-bit
// size fields of a WAVE header.
const MaxSamples = math.MaxInt32 / 4

// Plan describes the buffer Build generates for one frequency.
type Plan struct {
	SampleRate colundi.SampleRate

	// Frequency in Hz.
	Frequency float64

	// Periods is the nominal duration times the frequency, rounded up to a whole number.
	Periods float64

	// Duration is Periods/Frequency seconds, never shorter than the nominal duration.
	Duration float64

	// NumSamples is SampleRate*Duration truncated toward zero.
	NumSamples int
}

// NewPlan computes the period-aligned length of a buffer at frequency hz.
func NewPlan(cfg colundi.SynthesisConfig, hz float64) (Plan, error) {
	if err := cfg.Validate(); err != nil {
		return Plan{}, err
	}
	if !(hz > 0) || math.IsInf(hz, 1) {
		return Plan{}, errors.Wrapf(colundi.ErrInvalidParameter, "frequency %v must be positive", hz)
	}

	periods := math.Ceil(cfg.Duration * hz)
	duration := periods / hz
	n := math.Floor(float64(cfg.SampleRate) * duration)
	if n < 1 {
		return Plan{}, errors.Wrapf(colundi.ErrInvalidParameter,
			"%v Hz at %d samples per second yields no samples", hz, cfg.SampleRate)
	}
	if n > MaxSamples {
		return Plan{}, errors.Wrapf(colundi.ErrInvalidParameter,
			"%v Hz needs %.0f samples, more than %d", hz, n, MaxSamples)
	}

	return Plan{
		SampleRate: cfg.SampleRate,
		Frequency:  hz,
		Periods:    periods,
		Duration:   duration,
		NumSamples: int(n),
	}, nil
}

// Times returns the sample instants in seconds: NumSamples evenly spaced points over
// [0, Duration), excluding Duration itself.
func (p Plan) Times() []float64 {
	t := make([]float64, p.NumSamples+1)
	floats.Span(t, 0, p.Duration)
	return t[:p.NumSamples]
}

// Phases returns the phase in radians at every sample instant.
func (p Plan) Phases() []float64 {
	phases := p.Times()
	floats.Scale(2*math.Pi*p.Frequency, phases)
	return phases
}

// Build generates amplitude*kind(phase) over a whole number of periods of hz. The buffer
// starts at phase 0 and stops one sample short of the phase where the next period would
// begin.
func Build(cfg colundi.SynthesisConfig, hz float64, kind Kind) (*colundi.SampleBuffer, error) {
	plan, err := NewPlan(cfg, hz)
	if err != nil {
		return nil, err
	}
	samples := plan.Phases()
	kind.ShapeAll(samples, samples)
	floats.Scale(cfg.Amplitude, samples)
	return colundi.NewSampleBuffer(cfg.SampleRate, samples), nil
}
