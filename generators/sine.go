package generators

import "math"

// Sine returns sin(phase).
func Sine(phase float64) float64 {
	return math.Sin(phase)
}
