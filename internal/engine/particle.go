package engine

import "math"

// Particle is one pool slot. A slot is active while Age < Lifetime; expiry
// makes it eligible for reuse by the next emission, no explicit free step.
// The zero value (Lifetime 0) is inactive.
type Particle struct {
	Pos      Vec3
	Vel      Vec3
	Size     float64
	Col      RGB
	Age      float64
	Lifetime float64
}

func (p *Particle) active() bool {
	return p.Lifetime > 0 && p.Age < p.Lifetime
}

// Pool is a fixed-capacity particle arena for one emotional profile.
// Slots are allocated once and recycled in place; the pool itself is never
// destroyed, only hidden when its state leaves the screen.
type Pool struct {
	Profile *ParticleProfile

	slots  []Particle
	active int
	seed   uint64
	rng    *Rand
}

func NewPool(profile *ParticleProfile, seed uint64) *Pool {
	if seed == 0 {
		seed = 1
	}
	return &Pool{
		Profile: profile,
		slots:   make([]Particle, profile.Capacity),
		seed:    seed,
		rng:     NewRand(seed),
	}
}

func (pl *Pool) ActiveCount() int { return pl.active }

func (pl *Pool) Clear() {
	for i := range pl.slots {
		pl.slots[i] = Particle{}
	}
	pl.active = 0
}

// Emit activates up to count inactive slots around origin. Emission silently
// truncates when the pool is saturated against capacity * capScale: that is
// back-pressure, not an error. Returns the number actually emitted.
//
// The free-slot search is a linear scan from slot 0. A free list would skip
// the scan but the pools are small enough that it has never shown up in a
// profile.
func (pl *Pool) Emit(count int, origin Vec3, intensity, capScale float64) int {
	return pl.EmitShaped(pl.Profile.Shape, pl.Profile.ShapeParams, count, origin, intensity, capScale)
}

// EmitShaped is Emit with an explicit geometry, used for one-shot effects
// (click bursts) that borrow a pool but not its profile shape.
func (pl *Pool) EmitShaped(shape EmissionShape, params ShapeParams, count int, origin Vec3, intensity, capScale float64) int {
	if count <= 0 {
		return 0
	}
	prof := pl.Profile
	limit := int(float64(prof.Capacity) * clampF(capScale, 0, 1))
	if room := limit - pl.active; count > room {
		count = room
	}
	if count <= 0 {
		return 0
	}

	emitted := 0
	for i := range pl.slots {
		if emitted >= count {
			break
		}
		s := &pl.slots[i]
		if s.active() {
			continue
		}

		pos, vel := spawnAt(shape, params, prof.SpeedRange, intensity, pl.rng)
		j := prof.ColorJitter
		*s = Particle{
			Pos:      Vec3{X: origin.X + pos.X, Y: origin.Y + pos.Y, Z: origin.Z + pos.Z},
			Vel:      vel,
			Size:     pl.rng.RangeF(prof.SizeRange[0], prof.SizeRange[1]),
			Col:      prof.BaseColor.Add(jitter(pl.rng, j), jitter(pl.rng, j), jitter(pl.rng, j)),
			Age:      0,
			Lifetime: pl.rng.RangeF(prof.LifetimeRange[0], prof.LifetimeRange[1]),
		}
		emitted++
	}
	pl.active += emitted
	return emitted
}

func jitter(r *Rand, amount int) int {
	if amount <= 0 {
		return 0
	}
	return int(r.RangeF(-float64(amount), float64(amount)))
}

// Pull accelerates live particles within radius toward the target point.
// Used for hover attraction; force falls off linearly with distance.
func (pl *Pool) Pull(target Vec3, radius, strength, dt float64) {
	r2 := radius * radius
	for i := range pl.slots {
		p := &pl.slots[i]
		if !p.active() {
			continue
		}
		dx := target.X - p.Pos.X
		dy := target.Y - p.Pos.Y
		dz := target.Z - p.Pos.Z
		d2 := dx*dx + dy*dy + dz*dz
		if d2 > r2 || d2 < 1e-4 {
			continue
		}
		d := math.Sqrt(d2)
		force := (1.0 - d/radius) * strength * dt
		p.Vel.X += dx / d * force
		p.Vel.Y += dy / d * force
		p.Vel.Z += dz / d * force
	}
}

// RenderData appends active particles to buf as point sprites:
// [x, y, z, size, r, g, b, a] per particle. Alpha follows the life envelope:
// ramp in over the first FadeInFrac of life, ramp out past FadeOutFrac.
func (pl *Pool) RenderData(buf []float32) []float32 {
	for i := range pl.slots {
		p := &pl.slots[i]
		if !p.active() {
			continue
		}
		t := p.Age / p.Lifetime

		a := 1.0
		if t < FadeInFrac {
			a = t / FadeInFrac
		} else if t > FadeOutFrac {
			a = (1.0 - t) / (1.0 - FadeOutFrac)
		}
		if a <= 0 {
			continue
		}

		buf = append(buf,
			float32(p.Pos.X), float32(p.Pos.Y), float32(p.Pos.Z),
			float32(p.Size),
			float32(p.Col.R)/255.0, float32(p.Col.G)/255.0, float32(p.Col.B)/255.0,
			float32(a),
		)
	}
	return buf
}
