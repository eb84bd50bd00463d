package style

import "fmt"

// Easing names an interpolation curve for parameterized rules.
type Easing uint8

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

func (e Easing) String() string {
	switch e {
	case Linear:
		return "linear"
	case EaseIn:
		return "easeIn"
	case EaseOut:
		return "easeOut"
	case EaseInOut:
		return "easeInOut"
	default:
		return fmt.Sprintf("invalid_easing(%d)", uint8(e))
	}
}

// Ease maps t in [0,1] through the curve.
// Values outside the range are clamped.
func (e Easing) Ease(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}

// Interpolate applies the easing curve to t and then blends linearly
// between start and end.
func (e Easing) Interpolate(start, end, t float64) float64 {
	return start + (end-start)*e.Ease(t)
}
