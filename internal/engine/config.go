package engine

// World units: the orb rests at the origin with radius ~1; particles live in
// roughly [-4, 4] on each axis. The renderer maps world units to pixels.
const (
	OrbRadius = 1.0
)

// Window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 600
	DefaultZoom  = 90.0 // pixels per world unit
)

// State crossfade.
const (
	TransitionDuration = 0.9 // seconds per crossfade
)

// Particle physics.
const (
	ParticleGravity  = 0.35 // downward drift, world units/s²
	ParticleDrag     = 0.9  // exponential velocity damping, 1/s
	TurbulenceFreqXY = 2.3  // spatial frequency of the jitter field
	TurbulenceFreqT  = 3.1  // temporal frequency of the jitter field
)

// Alpha envelope, as fractions of particle lifetime.
const (
	FadeInFrac  = 0.1 // 0→1 over the first 10% of life
	FadeOutFrac = 0.7 // 1→0 from 70% of life until expiry
)

// Emission cadence: at most this many catch-up emissions per tick, so one
// long frame cannot flood a pool.
const MaxEmitPerTick = 24

// Interaction.
const (
	HoverPullRadius   = 2.2  // world units
	HoverPullStrength = 6.0  // accel toward cursor, units/s²
	ClickBurstCount   = 28   // particles per click burst
	ClickBurstRadius  = 0.35 // spawn radius of the burst
)

// Idle drift: slow ambient bob layered under the sequencer so the orb never
// reads as frozen between steps. Period is divided by the profile pulse speed.
const (
	IdleBobAmp    = 0.045 // world units
	IdleBobPeriod = 4.2   // seconds at pulse speed 1.0
)

// Quality adaptation. Scales live in [QualityMinScale, 1.0]; a streak of
// out-of-band fps samples must persist before a step, which keeps single
// frame spikes from oscillating the scales.
const (
	QualityMinScale       = 0.3
	QualityLowFPS         = 30.0
	QualityHighFPS        = 50.0
	QualityStepDown       = 0.1
	QualityStepUp         = 0.05
	QualitySustainSamples = 3
)

// Renderer sprite budget (floats: 8 per sprite).
const (
	SpriteFloats    = 8
	MaxSpriteRender = 4096
)
