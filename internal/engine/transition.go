package engine

// Transition is a single in-flight crossfade between two emotional states.
// At most one exists; nil means idle.
type Transition struct {
	From     Emotion
	To       Emotion
	Elapsed  float64
	Duration float64

	// fromBlend is the outgoing layer's opacity when this transition began:
	// 1.0 for a fresh crossfade, the captured blend level on a retarget so
	// the dominant layer's opacity stays continuous.
	fromBlend float64

	// captured holds the blended transform at retarget time. While set, the
	// outgoing side of the transform blend is this frozen pose instead of a
	// live sequence, which is what prevents the visual pop.
	captured    Transform
	hasCaptured bool
}

// Progress is linear, not eased: state changes are deliberately paced.
// Monotonic, and reaches exactly 1.0 only once Elapsed >= Duration.
func (t *Transition) Progress() float64 {
	if t.Duration <= 0 {
		return 1.0
	}
	p := t.Elapsed / t.Duration
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// Opacities returns the outgoing and incoming layer opacities. They always
// sum to 1.
func (t *Transition) Opacities() (out, in float64) {
	out = t.fromBlend * (1.0 - t.Progress())
	return out, 1.0 - out
}

// Coordinator owns the current emotional state and the in-flight crossfade.
type Coordinator struct {
	current Emotion
	tr      *Transition

	// A retarget can displace a minority layer that is neither endpoint of
	// the new crossfade. It keeps fading here instead of vanishing.
	tail        Emotion
	tailOpacity float64
}

func NewCoordinator(start Emotion) *Coordinator {
	return &Coordinator{current: start}
}

func (c *Coordinator) Current() Emotion    { return c.current }
func (c *Coordinator) Active() *Transition { return c.tr }
func (c *Coordinator) Transitioning() bool { return c.tr != nil }

// Target returns the state the orb is heading toward: the transition target
// while crossfading, the current state otherwise.
func (c *Coordinator) Target() Emotion {
	if c.tr != nil {
		return c.tr.To
	}
	return c.current
}

// Tail returns the displaced layer still fading out after a retarget, with
// its current opacity. Opacity 0 means no tail.
func (c *Coordinator) Tail() (Emotion, float64) { return c.tail, c.tailOpacity }

// SetTarget requests a crossfade to the given state. blended is the transform
// on screen right now, used as the frozen starting pose on a retarget.
// Returns false when the request is a no-op (already there, or already
// heading there).
func (c *Coordinator) SetTarget(to Emotion, blended Transform) bool {
	if c.tr == nil {
		if to == c.current {
			return false
		}
		c.tr = &Transition{
			From:      c.current,
			To:        to,
			Duration:  TransitionDuration,
			fromBlend: 1.0,
		}
		return true
	}

	if to == c.tr.To {
		return false
	}

	// Retarget mid-flight: the visually dominant layer becomes the new
	// outgoing side at its current opacity, and the blended pose is frozen
	// as the outgoing transform. Every layer keeps the opacity it was
	// showing at the retarget instant.
	out, in := c.tr.Opacities()
	dominant, minority := c.tr.From, c.tr.To
	domOpacity := out
	if in >= out {
		dominant, minority = c.tr.To, c.tr.From
		domOpacity = in
	}
	c.current = dominant

	if dominant == to {
		// Heading back to the dominant layer: reverse the fade, with the
		// minority layer as the outgoing side at its current opacity.
		c.tr = &Transition{
			From:        minority,
			To:          to,
			Duration:    TransitionDuration,
			fromBlend:   1 - domOpacity,
			captured:    blended,
			hasCaptured: true,
		}
		return true
	}

	if minority != to {
		// The displaced minority layer keeps fading on its own. When it is
		// already tailing, the larger of the two opacities wins.
		if minority == c.tail {
			if 1-domOpacity > c.tailOpacity {
				c.tailOpacity = 1 - domOpacity
			}
		} else {
			c.tail = minority
			c.tailOpacity = 1 - domOpacity
		}
	}

	c.tr = &Transition{
		From:        dominant,
		To:          to,
		Duration:    TransitionDuration,
		fromBlend:   domOpacity,
		captured:    blended,
		hasCaptured: true,
	}
	return true
}

// Update advances the crossfade. Returns true on the tick it completes; the
// caller promotes the target sequence and hides the outgoing pool.
func (c *Coordinator) Update(dt float64) bool {
	if c.tailOpacity > 0 {
		c.tailOpacity -= dt / TransitionDuration
		if c.tailOpacity < 0 {
			c.tailOpacity = 0
		}
	}
	if c.tr == nil {
		return false
	}
	c.tr.Elapsed += dt
	if c.tr.Progress() >= 1.0 {
		c.current = c.tr.To
		c.tr = nil
		return true
	}
	return false
}
