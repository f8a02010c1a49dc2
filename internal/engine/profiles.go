package engine

import (
	"fmt"
	"math"
)

// Emotion identifies one of the seven visual states of the orb.
type Emotion uint8

const (
	EmotionNeutral Emotion = iota
	EmotionJoy
	EmotionReflective
	EmotionCurious
	EmotionExcited
	EmotionEmpathetic
	EmotionCalm
	emotionCount
)

var emotionNames = [emotionCount]string{
	EmotionNeutral:    "neutral",
	EmotionJoy:        "joy",
	EmotionReflective: "reflective",
	EmotionCurious:    "curious",
	EmotionExcited:    "excited",
	EmotionEmpathetic: "empathetic",
	EmotionCalm:       "calm",
}

func (e Emotion) String() string {
	if e >= emotionCount {
		return "neutral"
	}
	return emotionNames[e]
}

// ParseEmotion resolves a state key. ok is false for unknown keys; the caller
// decides whether that is a fallback (runtime input) or an error (config).
func ParseEmotion(key string) (Emotion, bool) {
	for i, n := range emotionNames {
		if n == key {
			return Emotion(i), true
		}
	}
	return EmotionNeutral, false
}

// ParticleProfile is the per-state particle configuration. Capacity is fixed
// at pool construction.
type ParticleProfile struct {
	Capacity      int
	Shape         EmissionShape
	ShapeParams   ShapeParams
	SizeRange     [2]float64 // world units
	SpeedRange    [2]float64 // world units/s
	LifetimeRange [2]float64 // seconds
	Turbulence    float64    // jitter accel at intensity 1.0, units/s²
	EmissionRate  float64    // particles/s at intensity 1.0
	BaseColor     RGB
	ColorJitter   int // ± per channel at emission
}

// EmotionalProfile is the full static visual configuration of one state.
type EmotionalProfile struct {
	Key        Emotion
	Color      RGB
	PulseSpeed float64 // idle bob pacing multiplier
	SpeedMult  float64 // animation sequence pacing multiplier
	Particles  ParticleProfile
	Sequence   Sequence
}

var (
	ProfileNeutral = EmotionalProfile{
		Key:        EmotionNeutral,
		Color:      RGB{R: 200, G: 205, B: 215},
		PulseSpeed: 1.0,
		SpeedMult:  1.0,
		Particles: ParticleProfile{
			Capacity:      200,
			Shape:         ShapePoint,
			SizeRange:     [2]float64{0.02, 0.05},
			SpeedRange:    [2]float64{0.25, 0.7},
			LifetimeRange: [2]float64{1.6, 3.0},
			Turbulence:    0.35,
			EmissionRate:  14,
			BaseColor:     RGB{R: 205, G: 210, B: 222},
			ColorJitter:   10,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepPulse, Duration: 3.2, Easing: EaseSineInOut, Scale: 1.04, Frequency: 1},
			{Kind: StepFloat, Duration: 4.0, Easing: EaseLinear, Height: 0.06, Frequency: 1},
		}},
	}

	ProfileJoy = EmotionalProfile{
		Key:        EmotionJoy,
		Color:      RGB{R: 255, G: 208, B: 96},
		PulseSpeed: 1.5,
		SpeedMult:  1.4,
		Particles: ParticleProfile{
			Capacity:      500,
			Shape:         ShapeSphere,
			ShapeParams:   ShapeParams{Radius: 1.3},
			SizeRange:     [2]float64{0.03, 0.08},
			SpeedRange:    [2]float64{0.6, 1.6},
			LifetimeRange: [2]float64{1.0, 2.2},
			Turbulence:    0.9,
			EmissionRate:  60,
			BaseColor:     RGB{R: 255, G: 214, B: 110},
			ColorJitter:   18,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepBounce, Duration: 1.4, Easing: EaseSineInOut, Height: 0.22, Frequency: 2},
			{Kind: StepPulse, Duration: 1.1, Easing: EaseQuadInOut, Scale: 1.12, Frequency: 2},
			{Kind: StepRotate, Duration: 1.8, Easing: EaseBackOut, Axis: AxisY, Angle: math.Pi / 3},
		}},
	}

	ProfileReflective = EmotionalProfile{
		Key:        EmotionReflective,
		Color:      RGB{R: 96, G: 132, B: 205},
		PulseSpeed: 0.6,
		SpeedMult:  0.7,
		Particles: ParticleProfile{
			Capacity:      250,
			Shape:         ShapeTorus,
			ShapeParams:   ShapeParams{MajorRadius: 1.5, MinorRadius: 0.2},
			SizeRange:     [2]float64{0.02, 0.05},
			SpeedRange:    [2]float64{0.1, 0.35},
			LifetimeRange: [2]float64{2.5, 4.5},
			Turbulence:    0.25,
			EmissionRate:  22,
			BaseColor:     RGB{R: 120, G: 150, B: 220},
			ColorJitter:   12,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepSway, Duration: 3.6, Easing: EaseSineInOut, Axis: AxisZ, Angle: 0.16, Frequency: 1},
			{Kind: StepFloat, Duration: 4.4, Easing: EaseLinear, Height: 0.1, Frequency: 1},
		}},
	}

	ProfileCurious = EmotionalProfile{
		Key:        EmotionCurious,
		Color:      RGB{R: 84, G: 200, B: 172},
		PulseSpeed: 1.1,
		SpeedMult:  1.1,
		Particles: ParticleProfile{
			Capacity:      300,
			Shape:         ShapeCone,
			ShapeParams:   ShapeParams{Radius: 0.8, ConeAngle: 0.5},
			SizeRange:     [2]float64{0.025, 0.06},
			SpeedRange:    [2]float64{0.4, 1.1},
			LifetimeRange: [2]float64{1.2, 2.6},
			Turbulence:    0.6,
			EmissionRate:  34,
			BaseColor:     RGB{R: 100, G: 210, B: 180},
			ColorJitter:   14,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepTilt, Duration: 1.2, Easing: EaseQuadOut, Axis: AxisZ, Angle: 0.22},
			{Kind: StepRotate, Duration: 1.6, Easing: EaseCubicInOut, Axis: AxisY, Angle: math.Pi / 4},
			{Kind: StepPulse, Duration: 1.0, Easing: EaseSineOut, Scale: 1.07, Frequency: 1},
		}},
	}

	ProfileExcited = EmotionalProfile{
		Key:        EmotionExcited,
		Color:      RGB{R: 255, G: 122, B: 62},
		PulseSpeed: 2.0,
		SpeedMult:  1.8,
		Particles: ParticleProfile{
			Capacity:      600,
			Shape:         ShapeBurst,
			ShapeParams:   ShapeParams{Radius: 1.0},
			SizeRange:     [2]float64{0.03, 0.09},
			SpeedRange:    [2]float64{1.2, 2.6},
			LifetimeRange: [2]float64{0.6, 1.4},
			Turbulence:    1.3,
			EmissionRate:  90,
			BaseColor:     RGB{R: 255, G: 140, B: 80},
			ColorJitter:   22,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepShake, Duration: 0.7, Easing: EaseQuadIn, Intensity: 0.06},
			{Kind: StepPulse, Duration: 0.8, Easing: EaseQuadInOut, Scale: 1.16, Frequency: 3},
			{Kind: StepBounce, Duration: 1.0, Easing: EaseSineInOut, Height: 0.3, Frequency: 3},
		}},
	}

	ProfileEmpathetic = EmotionalProfile{
		Key:        EmotionEmpathetic,
		Color:      RGB{R: 238, G: 132, B: 178},
		PulseSpeed: 0.8,
		SpeedMult:  0.85,
		Particles: ParticleProfile{
			Capacity:      300,
			Shape:         ShapeHemisphere,
			ShapeParams:   ShapeParams{Radius: 1.2},
			SizeRange:     [2]float64{0.025, 0.06},
			SpeedRange:    [2]float64{0.2, 0.6},
			LifetimeRange: [2]float64{1.8, 3.4},
			Turbulence:    0.4,
			EmissionRate:  28,
			BaseColor:     RGB{R: 244, G: 150, B: 190},
			ColorJitter:   12,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepPulse, Duration: 2.6, Easing: EaseSineInOut, Scale: 1.06, Frequency: 1},
			{Kind: StepSway, Duration: 3.0, Easing: EaseSineInOut, Axis: AxisX, Angle: 0.12, Frequency: 1},
		}},
	}

	ProfileCalm = EmotionalProfile{
		Key:        EmotionCalm,
		Color:      RGB{R: 134, G: 202, B: 144},
		PulseSpeed: 0.5,
		SpeedMult:  0.6,
		Particles: ParticleProfile{
			Capacity:      250,
			Shape:         ShapePlane,
			ShapeParams:   ShapeParams{Width: 2.6, Height: 2.6},
			SizeRange:     [2]float64{0.02, 0.05},
			SpeedRange:    [2]float64{0.08, 0.3},
			LifetimeRange: [2]float64{3.0, 5.0},
			Turbulence:    0.2,
			EmissionRate:  16,
			BaseColor:     RGB{R: 150, G: 212, B: 160},
			ColorJitter:   10,
		},
		Sequence: Sequence{Steps: []Step{
			{Kind: StepFloat, Duration: 5.2, Easing: EaseLinear, Height: 0.12, Frequency: 1},
			{Kind: StepPulse, Duration: 4.0, Easing: EaseSineInOut, Scale: 1.03, Frequency: 1},
		}},
	}

	// Profiles is indexed by Emotion.
	Profiles = [emotionCount]*EmotionalProfile{
		EmotionNeutral:    &ProfileNeutral,
		EmotionJoy:        &ProfileJoy,
		EmotionReflective: &ProfileReflective,
		EmotionCurious:    &ProfileCurious,
		EmotionExcited:    &ProfileExcited,
		EmotionEmpathetic: &ProfileEmpathetic,
		EmotionCalm:       &ProfileCalm,
	}
)

// validateProfiles checks the static tables once at engine construction.
// Malformed tables are programming errors, caught here rather than per tick.
func validateProfiles() error {
	for i := range Profiles {
		p := Profiles[i]
		if p == nil {
			return fmt.Errorf("profile %v: missing", Emotion(i))
		}
		pp := &p.Particles
		if pp.Capacity <= 0 {
			return fmt.Errorf("profile %v: capacity %d", p.Key, pp.Capacity)
		}
		if pp.Shape >= shapeCount {
			return fmt.Errorf("profile %v: bad emission shape", p.Key)
		}
		if pp.LifetimeRange[0] <= 0 || pp.LifetimeRange[1] < pp.LifetimeRange[0] {
			return fmt.Errorf("profile %v: lifetime range %v", p.Key, pp.LifetimeRange)
		}
		if pp.SizeRange[1] < pp.SizeRange[0] || pp.SpeedRange[1] < pp.SpeedRange[0] {
			return fmt.Errorf("profile %v: inverted size/speed range", p.Key)
		}
		if pp.EmissionRate < 0 {
			return fmt.Errorf("profile %v: emission rate %v", p.Key, pp.EmissionRate)
		}
		if len(p.Sequence.Steps) == 0 {
			return fmt.Errorf("profile %v: empty sequence", p.Key)
		}
		for si, s := range p.Sequence.Steps {
			if s.Kind >= stepCount {
				return fmt.Errorf("profile %v step %d: bad step kind", p.Key, si)
			}
			if s.Easing >= easingCount {
				return fmt.Errorf("profile %v step %d: bad easing", p.Key, si)
			}
			if s.Duration <= 0 {
				return fmt.Errorf("profile %v step %d: duration %v", p.Key, si, s.Duration)
			}
		}
	}
	return nil
}
