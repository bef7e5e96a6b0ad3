package generators

import "math"

// Triangle returns a triangle wave with period 2π. It starts at -1 for phase 0, reaches +1
// half way through the cycle and falls back to -1.
func Triangle(phase float64) float64 {
	u := phase / (2 * math.Pi)
	return 2*math.Abs(2*(u-math.Floor(u+0.5))) - 1
}
