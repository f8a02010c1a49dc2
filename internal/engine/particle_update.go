package engine

import "math"

// Update ages and integrates every active particle. Expired slots stay in
// place as free slots for the next emission. intensity scales turbulence.
func (pl *Pool) Update(dt, intensity float64) {
	if dt <= 0 {
		return
	}

	// Exponential drag factor computed once per frame, not per particle.
	drag := math.Exp(-ParticleDrag * dt)
	turb := pl.Profile.Turbulence * intensity * dt

	for i := range pl.slots {
		p := &pl.slots[i]
		if !p.active() {
			continue
		}

		p.Age += dt
		if p.Age >= p.Lifetime {
			pl.active--
			continue
		}

		// Sinusoidal jitter field: phase from position and age so nearby
		// particles drift coherently instead of buzzing.
		if turb != 0 {
			j := math.Sin(p.Pos.X*TurbulenceFreqXY + p.Pos.Z*1.7 + p.Age*TurbulenceFreqT)
			k := math.Cos(p.Pos.Z*TurbulenceFreqXY - p.Pos.X*1.3 + p.Age*TurbulenceFreqT)
			p.Vel.X += j * turb
			p.Vel.Y += k * turb * 0.6
			p.Vel.Z -= j * turb * 0.8
		}

		// Downward bias and air resistance.
		p.Vel.Y -= ParticleGravity * dt
		p.Vel.X *= drag
		p.Vel.Y *= drag
		p.Vel.Z *= drag

		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Pos.Z += p.Vel.Z * dt
	}
}
