package engine

import (
	"fmt"
	"math"
	"os"
)

// InteractionKind classifies a user interaction forwarded to the engine.
type InteractionKind uint8

const (
	InteractionClick InteractionKind = iota
	InteractionHover
)

// PoolSnapshot is one visible particle layer: a flat sprite buffer
// ([x,y,z,size,r,g,b,a] per particle) and the layer's crossfade opacity.
type PoolSnapshot struct {
	Key     Emotion
	Opacity float64
	Sprites []float32
}

// RenderSnapshot is the per-frame output consumed by the external renderer.
// All slices alias engine-owned buffers reused every tick; callers must not
// retain a snapshot across ticks.
type RenderSnapshot struct {
	Pools []PoolSnapshot

	Transform Transform
	Color     RGB // blended orb core colour
	Intensity float64

	Transitioning   bool
	Current, Target Emotion
	OutgoingOpacity float64
	IncomingOpacity float64
}

// Engine composes the particle pools, the animation sequencer, the state
// crossfade and quality adaptation behind one handle. Single-threaded,
// cooperative: one driver calls Tick once per frame; SetState and
// HandleInteraction mutate the same state between ticks.
type Engine struct {
	seed uint64

	coord   *Coordinator
	quality *QualityAdapter

	seqCur *Sequencer
	seqTgt *Sequencer

	pools      [emotionCount]*Pool
	emitTimers [emotionCount]float64

	intensity   float64
	bobPhase    float64
	transform   Transform
	hoverTarget *Vec3

	// Reused snapshot storage.
	snapPools  []PoolSnapshot
	spriteBufs [emotionCount][]float32

	closed bool
}

// New builds an engine seeded for deterministic particle runs. The static
// profile tables are validated here, once; a malformed table is a
// programming error, not a runtime condition.
func New(seed uint64) (*Engine, error) {
	if err := validateProfiles(); err != nil {
		return nil, fmt.Errorf("profile tables: %w", err)
	}
	if seed == 0 {
		seed = 1
	}
	e := &Engine{
		seed:      seed,
		coord:     NewCoordinator(EmotionNeutral),
		quality:   NewQualityAdapter(),
		seqCur:    NewSequencer(splitmix64(seed ^ 0x5EC0)),
		seqTgt:    NewSequencer(splitmix64(seed ^ 0x5EC1)),
		intensity: 1.0,
		transform: identityTransform(),
	}
	p := Profiles[EmotionNeutral]
	e.seqCur.SetSequence(p.Sequence, p.SpeedMult)
	return e, nil
}

// pool returns the persistent pool for an emotion, creating it on first use.
// Pools are never destroyed, only left invisible.
func (e *Engine) pool(em Emotion) *Pool {
	if e.pools[em] == nil {
		e.pools[em] = NewPool(&Profiles[em].Particles, hash2D(e.seed, int(em), 0x9E37))
	}
	return e.pools[em]
}

// SetState requests a crossfade to the named emotional state. Unknown keys
// fall back to neutral: a resilience mechanism, logged for diagnostics and
// otherwise silent. intensity is clamped to [0,1].
func (e *Engine) SetState(key string, intensity float64) {
	if e.closed {
		return
	}
	em, ok := ParseEmotion(key)
	if !ok {
		fmt.Fprintf(os.Stderr, "orb: unknown state %q, falling back to neutral\n", key)
	}
	e.intensity = clampF(intensity, 0, 1)

	if !e.coord.SetTarget(em, e.transform) {
		return
	}
	p := Profiles[em]
	e.seqTgt.SetSequence(p.Sequence, p.SpeedMult)
	e.emitTimers[em] = 0 // fresh cadence; emission ramps with the incoming opacity
}

// CurrentState returns the settled state key (the outgoing side while a
// crossfade is in flight).
func (e *Engine) CurrentState() Emotion { return e.coord.Current() }

// HandleInteraction feeds a user interaction. Clicks emit a one-shot radial
// burst from the dominant pool at the given position; hover marks an
// attraction target applied during the next Tick.
func (e *Engine) HandleInteraction(kind InteractionKind, pos Vec3) {
	if e.closed {
		return
	}
	switch kind {
	case InteractionClick:
		pl := e.pool(e.coord.Target())
		pl.EmitShaped(ShapeBurst, ShapeParams{Radius: ClickBurstRadius},
			ClickBurstCount, pos, e.intensity, e.quality.CapScale())
	case InteractionHover:
		p := pos
		e.hoverTarget = &p
	}
}

// ReportFrameMetrics feeds a frame-rate sample to the quality adapter.
func (e *Engine) ReportFrameMetrics(fps float64) {
	if e.closed {
		return
	}
	e.quality.Report(fps)
}

// OnQualityChange registers the quality/telemetry collaborator callback.
func (e *Engine) OnQualityChange(fn func(emissionScale, capScale float64)) {
	e.quality.OnChange(fn)
}

// visibleLayers returns the emotion layers on screen with their crossfade
// opacities: the from/to pair while transitioning (or the current state
// alone), plus any displaced layer still tailing off after a retarget.
func (e *Engine) visibleLayers() (keys [3]Emotion, weights [3]float64, n int) {
	if tr := e.coord.Active(); tr != nil {
		out, in := tr.Opacities()
		keys[0], weights[0] = tr.From, out
		keys[1], weights[1] = tr.To, in
		n = 2
	} else {
		keys[0], weights[0] = e.coord.Current(), 1.0
		n = 1
	}
	if tk, to := e.coord.Tail(); to > 0 {
		keys[n], weights[n] = tk, to
		n++
	}
	return keys, weights, n
}

// Tick advances the whole engine by dt seconds: emission cadence, particle
// simulation, sequencer, then crossfade.
func (e *Engine) Tick(dt float64) {
	if e.closed || dt <= 0 {
		return
	}

	// Emission cadence per visible layer, scaled by the layer's opacity so a
	// crossfade hands emission over gradually.
	keys, weights, n := e.visibleLayers()
	for i := 0; i < n; i++ {
		e.emitFor(keys[i], weights[i], dt)
	}

	// Simulate every pool that still holds live particles, visible or not:
	// shrinking caps and hidden layers never cut a lifetime short.
	for em := range e.pools {
		pl := e.pools[em]
		if pl == nil || pl.ActiveCount() == 0 {
			continue
		}
		if e.hoverTarget != nil {
			pl.Pull(*e.hoverTarget, HoverPullRadius, HoverPullStrength, dt)
		}
		pl.Update(dt, e.intensity)
	}
	e.hoverTarget = nil

	// Sequencers advance even when their output is frozen by a retarget so
	// time stays continuous on adoption.
	curT := e.seqCur.Update(dt)
	var tgtT Transform
	transitioning := e.coord.Transitioning()
	if transitioning {
		tgtT = e.seqTgt.Update(dt)
	}

	if e.coord.Update(dt) {
		// Crossfade finished: the target sequence becomes current and the
		// outgoing pool is hidden (not destroyed) by falling out of
		// visibleLayers.
		e.seqCur.Adopt(e.seqTgt)
		e.transform = tgtT
	} else if tr := e.coord.Active(); tr != nil {
		fromT := curT
		if tr.hasCaptured {
			fromT = tr.captured
		}
		e.transform = lerpTransform(fromT, tgtT, tr.Progress())
	} else {
		e.transform = curT
	}

	// Idle drift: phase accumulates continuously so pulse-speed changes
	// never snap the bob.
	e.bobPhase += dt * 2 * math.Pi * e.blendedPulseSpeed() / IdleBobPeriod
	e.transform.Pos[1] += IdleBobAmp * math.Sin(e.bobPhase)
}

func (e *Engine) blendedPulseSpeed() float64 {
	if tr := e.coord.Active(); tr != nil {
		return lerpF(Profiles[tr.From].PulseSpeed, Profiles[tr.To].PulseSpeed, tr.Progress())
	}
	return Profiles[e.coord.Current()].PulseSpeed
}

func (e *Engine) emitFor(em Emotion, weight, dt float64) {
	rate := Profiles[em].Particles.EmissionRate * e.intensity * e.quality.EmissionScale() * weight
	if rate <= 0 {
		e.emitTimers[em] = 0
		return
	}
	pl := e.pool(em)
	e.emitTimers[em] -= dt
	// Catch-up loop, bounded so one long frame cannot flood the pool.
	for emitted := 0; e.emitTimers[em] <= 0 && emitted < MaxEmitPerTick; emitted++ {
		pl.Emit(1, Vec3{}, e.intensity, e.quality.CapScale())
		e.emitTimers[em] += 1.0 / rate
	}
	if e.emitTimers[em] < 0 {
		e.emitTimers[em] = 0
	}
}

// Snapshot builds the read-only render view for this frame. The returned
// buffers are reused on the next Tick; the external renderer must consume
// them immediately.
func (e *Engine) Snapshot() RenderSnapshot {
	snap := RenderSnapshot{
		Transform: e.transform,
		Intensity: e.intensity,
		Current:   e.coord.Current(),
		Target:    e.coord.Target(),
	}
	if e.closed {
		return snap
	}

	keys, weights, n := e.visibleLayers()
	e.snapPools = e.snapPools[:0]
	for i := 0; i < n; i++ {
		em := keys[i]
		pl := e.pools[em]
		if pl == nil {
			continue
		}
		buf := e.spriteBufs[em][:0]
		buf = pl.RenderData(buf)
		e.spriteBufs[em] = buf
		e.snapPools = append(e.snapPools, PoolSnapshot{Key: em, Opacity: weights[i], Sprites: buf})
	}
	snap.Pools = e.snapPools

	if tr := e.coord.Active(); tr != nil {
		snap.Transitioning = true
		snap.OutgoingOpacity, snap.IncomingOpacity = tr.Opacities()
		snap.Color = lerpRGB(Profiles[tr.From].Color, Profiles[tr.To].Color, snap.IncomingOpacity)
	} else {
		snap.IncomingOpacity = 1.0
		snap.Color = Profiles[e.coord.Current()].Color
	}
	return snap
}

// Close releases the pooled buffers and turns every further call into a
// no-op. There is no asynchronous work to cancel.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for i := range e.pools {
		e.pools[i] = nil
		e.spriteBufs[i] = nil
	}
	e.snapPools = nil
}
