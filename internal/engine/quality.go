package engine

// QualityAdapter trades visual density for frame-rate stability. Both scales
// live in [QualityMinScale, 1.0]; emission rate reacts immediately, the cap
// only gates new emissions, so particles already alive always finish their
// lifetime.
type QualityAdapter struct {
	emissionScale float64
	capScale      float64

	lowStreak  int
	highStreak int

	onChange func(emissionScale, capScale float64)
}

func NewQualityAdapter() *QualityAdapter {
	return &QualityAdapter{emissionScale: 1.0, capScale: 1.0}
}

func (q *QualityAdapter) EmissionScale() float64 { return q.emissionScale }
func (q *QualityAdapter) CapScale() float64      { return q.capScale }

// OnChange registers a notification callback fired whenever the scales move,
// for UI/debug display. Explicit call, no event bus.
func (q *QualityAdapter) OnChange(fn func(emissionScale, capScale float64)) {
	q.onChange = fn
}

// Report feeds one frame-rate sample. A streak of QualitySustainSamples
// out-of-band samples must build up before the scales move, so a single
// dropped or vsync-fast frame cannot flip quality back and forth. The
// streak is the pacing interval: once armed, each further out-of-band
// sample steps again until the frame rate re-enters the comfortable band.
func (q *QualityAdapter) Report(fps float64) {
	switch {
	case fps < QualityLowFPS:
		q.lowStreak++
		q.highStreak = 0
		if q.lowStreak >= QualitySustainSamples {
			q.step(-QualityStepDown)
		}
	case fps > QualityHighFPS:
		q.highStreak++
		q.lowStreak = 0
		if q.highStreak >= QualitySustainSamples {
			q.step(QualityStepUp)
		}
	default:
		q.lowStreak = 0
		q.highStreak = 0
	}
}

func (q *QualityAdapter) step(delta float64) {
	em := clampF(q.emissionScale+delta, QualityMinScale, 1.0)
	cp := clampF(q.capScale+delta, QualityMinScale, 1.0)
	if em == q.emissionScale && cp == q.capScale {
		return // already at floor/ceiling
	}
	q.emissionScale = em
	q.capScale = cp
	if q.onChange != nil {
		q.onChange(em, cp)
	}
}
