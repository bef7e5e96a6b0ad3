// Package generators synthesizes period-aligned waveform buffers.
package generators

import (
	"fmt"
	"strings"

	"github.com/colundi/colundi"
	"github.com/pkg/errors"
)

// Kind selects one of the waveform shapes.
type Kind int

const (
	SineWave Kind = iota
	TriangleWave
	SquareWave
	SawtoothWave
)

// Kinds lists every waveform in declaration order.
var Kinds = []Kind{SineWave, TriangleWave, SquareWave, SawtoothWave}

var kindNames = [...]string{
	SineWave:     "sine",
	TriangleWave: "triangle",
	SquareWave:   "square",
	SawtoothWave: "sawtooth",
}

// String returns the lowercase name of the waveform.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s, ignoring case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(colundi.ErrInvalidParameter, "unknown waveform %q (want one of %s)", s, strings.Join(kindNames[:], ", "))
}

// Set implements flag.Value.
func (k *Kind) Set(s string) error {
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Shaper returns the shaping function of the waveform.
func (k Kind) Shaper() func(phase float64) float64 {
	switch k {
	case SineWave:
		return Sine
	case TriangleWave:
		return Triangle
	case SquareWave:
		return Square
	case SawtoothWave:
		return Sawtooth
	default:
		panic(fmt.Errorf("generators: invalid waveform: %d", int(k)))
	}
}

// Shape maps a phase in radians to the waveform value in [-1, 1].
func (k Kind) Shape(phase float64) float64 {
	return k.Shaper()(phase)
}

// ShapeAll stores k.Shape(phases[i]) in dst[i]. dst must be at least as long as phases.
// dst and phases may be the same slice.
func (k Kind) ShapeAll(dst, phases []float64) {
	fn := k.Shaper()
	dst = dst[:len(phases)]
	for i, p := range phases {
		dst[i] = fn(p)
	}
}
