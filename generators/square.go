package generators

import "math"

// Square returns +1 for phase in [0, π) modulo 2π and -1 for [π, 2π).
//
// The jump at 0 resolves to +1 and the jump at π to -1.
func Square(phase float64) float64 {
	r := math.Mod(phase, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r < math.Pi {
		return 1
	}
	return -1
}
