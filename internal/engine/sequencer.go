package engine

import (
	"fmt"
	"math"
)

// StepKind names a procedural animation step. Steps are mutually exclusive
// per tick: exactly one step owns the transform at any sequence time.
type StepKind uint8

const (
	StepPulse StepKind = iota
	StepRotate
	StepSway
	StepTilt
	StepBounce
	StepShake
	StepFloat
	stepCount
)

var stepNames = [stepCount]string{
	StepPulse:  "pulse",
	StepRotate: "rotate",
	StepSway:   "sway",
	StepTilt:   "tilt",
	StepBounce: "bounce",
	StepShake:  "shake",
	StepFloat:  "float",
}

func (k StepKind) String() string {
	if k >= stepCount {
		return "pulse"
	}
	return stepNames[k]
}

func ParseStepKind(name string) (StepKind, error) {
	for i, n := range stepNames {
		if n == name {
			return StepKind(i), nil
		}
	}
	return StepPulse, fmt.Errorf("unknown animation step %q", name)
}

// Axis names a rotation axis for rotate/sway/tilt steps.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Step is one timed transform operation. Only the fields its kind reads are
// meaningful.
type Step struct {
	Kind     StepKind
	Duration float64 // seconds
	Easing   Easing

	Scale     float64 // pulse: peak scale
	Angle     float64 // rotate/sway/tilt: radians
	Axis      Axis    // rotate/sway/tilt
	Height    float64 // bounce/float: world units
	Intensity float64 // shake: jitter amplitude, world units
	Frequency float64 // pulse/sway/bounce/float: cycles per step
}

// Sequence is an ordered looping list of steps.
type Sequence struct {
	Steps []Step
}

// TotalDuration sums the step durations.
func (s *Sequence) TotalDuration() float64 {
	total := 0.0
	for i := range s.Steps {
		total += s.Steps[i].Duration
	}
	return total
}

// Transform is the orb transform produced by the sequencer each tick.
type Transform struct {
	Scale float64
	Rot   [3]float64 // radians, XYZ
	Pos   [3]float64 // world units
}

func identityTransform() Transform {
	return Transform{Scale: 1.0}
}

func lerpTransform(a, b Transform, t float64) Transform {
	out := Transform{Scale: lerpF(a.Scale, b.Scale, t)}
	for i := 0; i < 3; i++ {
		out.Rot[i] = lerpF(a.Rot[i], b.Rot[i], t)
		out.Pos[i] = lerpF(a.Pos[i], b.Pos[i], t)
	}
	return out
}

// Sequencer plays a Sequence in a loop against a fresh identity transform
// each tick. Step lookup is a pure function of sequence time modulo total
// duration; there is no per-step state to drift.
type Sequencer struct {
	seq       Sequence
	speedMult float64
	total     float64
	time      float64
	rng       *Rand
}

func NewSequencer(seed uint64) *Sequencer {
	return &Sequencer{speedMult: 1.0, rng: NewRand(seed)}
}

// SetSequence swaps the playing sequence and restarts it.
func (sq *Sequencer) SetSequence(seq Sequence, speedMult float64) {
	sq.seq = seq
	sq.total = seq.TotalDuration()
	if speedMult <= 0 {
		speedMult = 1.0
	}
	sq.speedMult = speedMult
	sq.time = 0
}

// Adopt copies the playing state of another sequencer, used when a crossfade
// completes and the target sequence becomes current.
func (sq *Sequencer) Adopt(other *Sequencer) {
	sq.seq = other.seq
	sq.total = other.total
	sq.speedMult = other.speedMult
	sq.time = other.time
}

// stepAt resolves the active step and its local progress for a sequence time.
func (sq *Sequencer) stepAt(t float64) (*Step, float64) {
	if sq.total <= 0 || len(sq.seq.Steps) == 0 {
		return nil, 0
	}
	t = math.Mod(t, sq.total)
	if t < 0 {
		t += sq.total
	}
	cursor := 0.0
	for i := range sq.seq.Steps {
		s := &sq.seq.Steps[i]
		if t < cursor+s.Duration {
			return s, (t - cursor) / s.Duration
		}
		cursor += s.Duration
	}
	// Floating point boundary: land on the final step's end.
	last := &sq.seq.Steps[len(sq.seq.Steps)-1]
	return last, 1.0
}

// Update advances sequence time and returns the transform for this tick.
func (sq *Sequencer) Update(dt float64) Transform {
	sq.time += dt * sq.speedMult
	if sq.total > 0 && sq.time >= sq.total {
		sq.time = math.Mod(sq.time, sq.total)
	}
	return sq.transformAt(sq.time)
}

func (sq *Sequencer) transformAt(t float64) Transform {
	out := identityTransform()
	step, progress := sq.stepAt(t)
	if step == nil {
		return out
	}
	eased := step.Easing.Apply(progress)

	switch step.Kind {
	case StepPulse:
		out.Scale = 1 + (step.Scale-1)*math.Sin(eased*2*math.Pi*step.Frequency)

	case StepRotate, StepTilt:
		// Monotonic ramp over the step.
		out.Rot[step.Axis] = step.Angle * eased

	case StepSway:
		out.Rot[step.Axis] = step.Angle * math.Sin(eased*2*math.Pi*step.Frequency)

	case StepBounce:
		out.Pos[1] = step.Height * math.Abs(math.Sin(eased*2*math.Pi*step.Frequency))

	case StepShake:
		// Decaying noise on all axes.
		amp := step.Intensity * (1 - eased)
		out.Pos[0] = sq.rng.RangeF(-amp, amp)
		out.Pos[1] = sq.rng.RangeF(-amp, amp)
		out.Pos[2] = sq.rng.RangeF(-amp, amp)

	case StepFloat:
		out.Pos[1] = step.Height * math.Sin(eased*2*math.Pi*step.Frequency)
	}
	return out
}
