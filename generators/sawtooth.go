package generators

import "math"

// Sawtooth returns a sawtooth wave with period 2π. It is 0 at phase 0, ramps up to just
// under +1 as the phase approaches π, jumps to -1 at π and ramps back to 0 at 2π.
func Sawtooth(phase float64) float64 {
	u := phase / (2 * math.Pi)
	return 2 * (u - math.Floor(0.5+u))
}
