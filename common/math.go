package common

import "math"

// Snap returns 0 when |v| is below eps.
func Snap(v, eps float64) float64 {
	if math.Abs(v) < eps {
		return 0
	}
	return v
}
