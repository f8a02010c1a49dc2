package engine

import (
	"math"
	"testing"
)

func TestQualityStartsAtFull(t *testing.T) {
	q := NewQualityAdapter()
	if q.EmissionScale() != 1.0 || q.CapScale() != 1.0 {
		t.Fatalf("initial scales %v/%v, want 1/1", q.EmissionScale(), q.CapScale())
	}
}

func TestQualityRequiresSustainedStreak(t *testing.T) {
	q := NewQualityAdapter()
	for i := 0; i < QualitySustainSamples-1; i++ {
		q.Report(20)
	}
	if q.EmissionScale() != 1.0 {
		t.Fatalf("scale moved after %d low samples", QualitySustainSamples-1)
	}
	q.Report(20)
	if q.EmissionScale() >= 1.0 {
		t.Fatal("scale did not move once the streak was sustained")
	}
}

func TestQualityInBandResetsStreak(t *testing.T) {
	q := NewQualityAdapter()
	q.Report(20)
	q.Report(20)
	q.Report(40) // comfortable band, streak resets
	q.Report(20)
	q.Report(20)
	if q.EmissionScale() != 1.0 {
		t.Fatalf("scale = %v after interrupted streak, want 1.0", q.EmissionScale())
	}
	q.Report(20)
	if q.EmissionScale() >= 1.0 {
		t.Fatal("scale did not move after the streak rebuilt")
	}
}

func TestQualityDegradesToFloor(t *testing.T) {
	q := NewQualityAdapter()
	prev := 1.0
	for i := 0; i < 12; i++ {
		q.Report(20)
		if q.EmissionScale() > prev+1e-9 {
			t.Fatalf("sample %d: scale rose to %v under sustained load", i, q.EmissionScale())
		}
		prev = q.EmissionScale()
	}
	if math.Abs(q.EmissionScale()-QualityMinScale) > 1e-9 {
		t.Fatalf("floor scale = %v, want %v", q.EmissionScale(), QualityMinScale)
	}
	if math.Abs(q.CapScale()-QualityMinScale) > 1e-9 {
		t.Fatalf("floor cap scale = %v, want %v", q.CapScale(), QualityMinScale)
	}
	// Further load never pushes below the floor.
	q.Report(5)
	if q.EmissionScale() < QualityMinScale {
		t.Fatalf("scale %v fell below floor", q.EmissionScale())
	}
}

func TestQualityRecovers(t *testing.T) {
	q := NewQualityAdapter()
	for i := 0; i < 12; i++ {
		q.Report(20)
	}
	low := q.EmissionScale()

	for i := 0; i < QualitySustainSamples; i++ {
		q.Report(60)
	}
	if q.EmissionScale() <= low {
		t.Fatalf("scale = %v after sustained headroom, want > %v", q.EmissionScale(), low)
	}

	// Enough headroom samples climb all the way back to 1.0, never beyond.
	for i := 0; i < 30; i++ {
		q.Report(60)
	}
	if math.Abs(q.EmissionScale()-1.0) > 1e-9 {
		t.Fatalf("recovered scale = %v, want 1.0", q.EmissionScale())
	}
}

func TestQualityStepAsymmetry(t *testing.T) {
	// Degradation outpaces recovery: one sustained low step loses more than
	// one sustained high step regains.
	if QualityStepDown <= QualityStepUp {
		t.Fatalf("step down %v should exceed step up %v", QualityStepDown, QualityStepUp)
	}
}

func TestQualityOnChangeFires(t *testing.T) {
	q := NewQualityAdapter()
	var calls int
	var lastEm, lastCap float64
	q.OnChange(func(em, cp float64) {
		calls++
		lastEm, lastCap = em, cp
	})

	for i := 0; i < QualitySustainSamples; i++ {
		q.Report(20)
	}
	if calls != 1 {
		t.Fatalf("onChange fired %d times, want 1", calls)
	}
	if lastEm != q.EmissionScale() || lastCap != q.CapScale() {
		t.Errorf("onChange reported %v/%v, adapter holds %v/%v", lastEm, lastCap, q.EmissionScale(), q.CapScale())
	}

	// Clamped at the floor the callback stays silent.
	for i := 0; i < 20; i++ {
		q.Report(20)
	}
	floorCalls := calls
	q.Report(20)
	if calls != floorCalls {
		t.Error("onChange fired while pinned at the floor")
	}
}
