package engine

import (
	"fmt"
	"math"
)

// Easing selects a curve mapping linear progress t ∈ [0,1] to eased progress.
// The set is closed: profile tables reference these constants directly and
// config names are resolved once through ParseEasing, never per tick.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EaseSineIn
	EaseSineOut
	EaseSineInOut
	EaseBackOut
	easingCount
)

// Back-out overshoot constants (easings.net easeOutBack).
const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

var easingFuncs = [easingCount]func(float64) float64{
	EaseLinear:  func(t float64) float64 { return t },
	EaseQuadIn:  func(t float64) float64 { return t * t },
	EaseQuadOut: func(t float64) float64 { return 1 - (1-t)*(1-t) },
	EaseQuadInOut: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	},
	EaseCubicIn:  func(t float64) float64 { return t * t * t },
	EaseCubicOut: func(t float64) float64 { return 1 - math.Pow(1-t, 3) },
	EaseCubicInOut: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	},
	EaseSineIn:    func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	EaseSineOut:   func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	EaseSineInOut: func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 },
	EaseBackOut: func(t float64) float64 {
		return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
	},
}

var easingNames = [easingCount]string{
	EaseLinear:     "linear",
	EaseQuadIn:     "quad-in",
	EaseQuadOut:    "quad-out",
	EaseQuadInOut:  "quad-in-out",
	EaseCubicIn:    "cubic-in",
	EaseCubicOut:   "cubic-out",
	EaseCubicInOut: "cubic-in-out",
	EaseSineIn:     "sine-in",
	EaseSineOut:    "sine-out",
	EaseSineInOut:  "sine-in-out",
	EaseBackOut:    "back-out",
}

// Apply evaluates the easing curve at t, clamped to [0,1] first.
func (e Easing) Apply(t float64) float64 {
	if e >= easingCount {
		e = EaseLinear
	}
	return easingFuncs[e](clampF(t, 0, 1))
}

func (e Easing) String() string {
	if e >= easingCount {
		return "linear"
	}
	return easingNames[e]
}

// ParseEasing resolves a config name to an Easing. Unknown names are a
// configuration error, reported at load time.
func ParseEasing(name string) (Easing, error) {
	for i, n := range easingNames {
		if n == name {
			return Easing(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("unknown easing %q", name)
}
