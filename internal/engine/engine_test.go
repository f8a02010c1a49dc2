package engine

import (
	"math"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(12345)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewStartsNeutral(t *testing.T) {
	e := newTestEngine(t)
	if e.CurrentState() != EmotionNeutral {
		t.Fatalf("CurrentState = %v, want neutral", e.CurrentState())
	}
	snap := e.Snapshot()
	if snap.Transitioning {
		t.Error("fresh engine reports a transition")
	}
	if snap.IncomingOpacity != 1.0 {
		t.Errorf("settled opacity = %v, want 1", snap.IncomingOpacity)
	}
}

func TestStateChangeCrossfades(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)

	e.Tick(TransitionDuration / 2)
	snap := e.Snapshot()
	if !snap.Transitioning {
		t.Fatal("no transition halfway through the crossfade")
	}
	if snap.Current != EmotionNeutral || snap.Target != EmotionJoy {
		t.Fatalf("layers %v -> %v, want neutral -> joy", snap.Current, snap.Target)
	}
	if math.Abs(snap.OutgoingOpacity-0.5) > 1e-9 || math.Abs(snap.IncomingOpacity-0.5) > 1e-9 {
		t.Fatalf("midpoint opacities %v/%v, want 0.5/0.5", snap.OutgoingOpacity, snap.IncomingOpacity)
	}

	e.Tick(TransitionDuration / 2)
	snap = e.Snapshot()
	if snap.Transitioning {
		t.Fatal("transition still active after its full duration")
	}
	if e.CurrentState() != EmotionJoy {
		t.Fatalf("CurrentState = %v after crossfade, want joy", e.CurrentState())
	}
}

func TestOpacitiesSumToOneThroughout(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("excited", 1.0)
	for i := 0; i < 10; i++ {
		e.Tick(0.08)
		snap := e.Snapshot()
		if !snap.Transitioning {
			break
		}
		if s := snap.OutgoingOpacity + snap.IncomingOpacity; math.Abs(s-1.0) > 1e-9 {
			t.Fatalf("tick %d: opacities sum to %v", i, s)
		}
	}
}

func TestUnknownStateFallsBackToNeutral(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)
	for i := 0; i < 20; i++ {
		e.Tick(0.1)
	}

	e.SetState("bogus-state", 1.0)
	for i := 0; i < 20; i++ {
		e.Tick(0.1)
	}
	if e.CurrentState() != EmotionNeutral {
		t.Fatalf("CurrentState = %v after unknown key, want neutral", e.CurrentState())
	}
}

func TestIntensityClamped(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 3.0)
	if e.intensity != 1.0 {
		t.Errorf("intensity = %v, want clamped to 1", e.intensity)
	}
	e.SetState("calm", -0.5)
	if e.intensity != 0.0 {
		t.Errorf("intensity = %v, want clamped to 0", e.intensity)
	}
}

func TestEmissionFillsActivePool(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)
	for i := 0; i < 180; i++ {
		e.Tick(1.0 / 60.0)
	}
	pl := e.pools[EmotionJoy]
	if pl == nil || pl.ActiveCount() == 0 {
		t.Fatal("joy pool empty after three seconds of emission")
	}
	if pl.ActiveCount() > Profiles[EmotionJoy].Particles.Capacity {
		t.Fatalf("joy pool holds %d particles, capacity %d",
			pl.ActiveCount(), Profiles[EmotionJoy].Particles.Capacity)
	}
}

func TestClickEmitsBurst(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInteraction(InteractionClick, Vec3{X: 0.4})
	pl := e.pools[EmotionNeutral]
	if pl == nil || pl.ActiveCount() != ClickBurstCount {
		t.Fatalf("burst emitted %d particles, want %d", pl.ActiveCount(), ClickBurstCount)
	}
}

func TestHoverTargetConsumedByTick(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInteraction(InteractionHover, Vec3{X: 1.0})
	if e.hoverTarget == nil {
		t.Fatal("hover target not stored")
	}
	e.Tick(0.016)
	if e.hoverTarget != nil {
		t.Fatal("hover target survived the tick")
	}
}

func TestRetargetSnapshotOpacityContinuous(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)
	for i := 0; i < 5; i++ { // 0.4s in, neutral still dominant
		e.Tick(0.08)
	}
	before := e.Snapshot()

	e.SetState("neutral", 1.0) // back toward the dominant layer
	after := e.Snapshot()
	if !after.Transitioning {
		t.Fatal("crossfade dropped instantly on retargeting the dominant layer")
	}
	// Each side resumes at the opacity it was showing: the incoming neutral
	// at its old outgoing level, the outgoing joy at its old incoming level.
	if math.Abs(after.IncomingOpacity-before.OutgoingOpacity) > 1e-9 {
		t.Fatalf("incoming opacity jumped from %v to %v", before.OutgoingOpacity, after.IncomingOpacity)
	}
	if math.Abs(after.OutgoingOpacity-before.IncomingOpacity) > 1e-9 {
		t.Fatalf("outgoing opacity jumped from %v to %v", before.IncomingOpacity, after.OutgoingOpacity)
	}
}

func TestDisplacedLayerStaysVisible(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)
	for i := 0; i < 9; i++ { // 0.72s in, joy dominant
		e.Tick(0.08)
	}
	e.SetState("calm", 1.0) // neutral displaced, neither endpoint now

	keys, weights, n := e.visibleLayers()
	if n != 3 {
		t.Fatalf("%d visible layers after displacement, want 3", n)
	}
	found := false
	for i := 0; i < n; i++ {
		if keys[i] == EmotionNeutral && weights[i] > 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("displaced neutral layer vanished instead of tailing off")
	}

	for i := 0; i < 30; i++ {
		e.Tick(0.05)
	}
	if _, op := e.coord.Tail(); op != 0 {
		t.Fatalf("tail opacity %v after settling, want 0", op)
	}
}

func TestRetargetMidCrossfadeSettles(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)
	for i := 0; i < 4; i++ { // 0.32s in, neutral still dominant
		e.Tick(0.08)
	}
	e.SetState("calm", 1.0)
	snap := e.Snapshot()
	if snap.Target != EmotionCalm {
		t.Fatalf("Target = %v after retarget, want calm", snap.Target)
	}
	for i := 0; i < 60; i++ {
		e.Tick(0.05)
	}
	if e.CurrentState() != EmotionCalm {
		t.Fatalf("CurrentState = %v after retarget settled, want calm", e.CurrentState())
	}
	if e.coord.Transitioning() {
		t.Error("transition never settled")
	}
}

func TestSnapshotSpriteStride(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("excited", 1.0)
	for i := 0; i < 90; i++ {
		e.Tick(1.0 / 60.0)
	}
	snap := e.Snapshot()
	if len(snap.Pools) == 0 {
		t.Fatal("no visible pools after warm-up")
	}
	for _, p := range snap.Pools {
		if len(p.Sprites)%SpriteFloats != 0 {
			t.Errorf("pool %v: sprite buffer length %d not a multiple of %d",
				p.Key, len(p.Sprites), SpriteFloats)
		}
		if p.Opacity < 0 || p.Opacity > 1 {
			t.Errorf("pool %v: opacity %v", p.Key, p.Opacity)
		}
	}
}

func TestQualityFeedbackThrottlesEmission(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < QualitySustainSamples; i++ {
		e.ReportFrameMetrics(20)
	}
	if e.quality.EmissionScale() >= 1.0 {
		t.Fatal("sustained low frame rate did not reduce emission scale")
	}

	// A throttled pool plateaus lower than a full-quality one.
	full := newTestEngine(t)
	e.SetState("excited", 1.0)
	full.SetState("excited", 1.0)
	for i := 0; i < 30; i++ {
		e.ReportFrameMetrics(20)
	}
	for i := 0; i < 240; i++ {
		e.Tick(1.0 / 60.0)
		full.Tick(1.0 / 60.0)
	}
	if e.pools[EmotionExcited].ActiveCount() >= full.pools[EmotionExcited].ActiveCount() {
		t.Errorf("throttled pool %d >= full-quality pool %d",
			e.pools[EmotionExcited].ActiveCount(), full.pools[EmotionExcited].ActiveCount())
	}
}

func TestDeterministicForSeed(t *testing.T) {
	run := func() (Transform, int) {
		e, err := New(777)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		e.SetState("joy", 0.9)
		for i := 0; i < 120; i++ {
			e.Tick(1.0 / 60.0)
		}
		return e.Snapshot().Transform, e.pools[EmotionJoy].ActiveCount()
	}
	t1, n1 := run()
	t2, n2 := run()
	if n1 != n2 {
		t.Fatalf("particle counts diverged: %d vs %d", n1, n2)
	}
	if !transformsEqual(t1, t2) {
		t.Fatalf("transforms diverged: %+v vs %+v", t1, t2)
	}
}

func TestCloseMakesEngineInert(t *testing.T) {
	e := newTestEngine(t)
	e.SetState("joy", 1.0)
	e.Tick(0.1)
	e.Close()

	e.SetState("calm", 1.0)
	e.Tick(0.1)
	e.HandleInteraction(InteractionClick, Vec3{})
	e.ReportFrameMetrics(20)

	snap := e.Snapshot()
	if len(snap.Pools) != 0 {
		t.Errorf("closed engine snapshot still carries %d pools", len(snap.Pools))
	}
	e.Close() // idempotent
}
