package systems

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Clamp functions for common value ranges

// Clamp clamps v between minVal and maxVal.
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Clamp01 clamps v to the [0, 1] range.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Angle functions

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// Direction returns the angle of the vector pointing from `from` to `to`.
func Direction(from, to cp.Vector) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// FromAngle returns a vector of the given length pointing along angle.
func FromAngle(angle, length float64) cp.Vector {
	return cp.ForAngle(angle).Mult(length)
}

// Distance functions

// Distance returns the Euclidean distance between two points.
func Distance(a, b cp.Vector) float64 {
	return a.Distance(b)
}

// SurfaceDistance returns the gap between two circles, floored at 0.
func SurfaceDistance(a, b cp.Vector, ra, rb float64) float64 {
	return math.Max(0, a.Distance(b)-ra-rb)
}

// Magnitude returns the length of v.
func Magnitude(v cp.Vector) float64 {
	return v.Length()
}

// Easing functions map [0, 1] onto [0, 1].

// EaseIn starts slow and ends fast.
func EaseIn(x float64) float64 {
	return 1 - math.Cos(Clamp01(x)*math.Pi/2)
}

// EaseOut starts fast and ends slow.
func EaseOut(x float64) float64 {
	return math.Sin(Clamp01(x) * math.Pi / 2)
}
