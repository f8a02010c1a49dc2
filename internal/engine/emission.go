package engine

import (
	"fmt"
	"math"
)

// EmissionShape selects the spawn-position geometry of a particle profile.
// The set is closed; config names resolve once through ParseEmissionShape.
type EmissionShape uint8

const (
	ShapePoint EmissionShape = iota
	ShapeSphere
	ShapeHemisphere
	ShapeCone
	ShapePlane
	ShapeTorus
	ShapeBurst
	shapeCount
)

var shapeNames = [shapeCount]string{
	ShapePoint:      "point",
	ShapeSphere:     "sphere",
	ShapeHemisphere: "hemisphere",
	ShapeCone:       "cone",
	ShapePlane:      "plane",
	ShapeTorus:      "torus",
	ShapeBurst:      "burst",
}

func (s EmissionShape) String() string {
	if s >= shapeCount {
		return "point"
	}
	return shapeNames[s]
}

func ParseEmissionShape(name string) (EmissionShape, error) {
	for i, n := range shapeNames {
		if n == name {
			return EmissionShape(i), nil
		}
	}
	return ShapePoint, fmt.Errorf("unknown emission shape %q", name)
}

// ShapeParams carries the per-shape dimensions. Unused fields stay zero.
type ShapeParams struct {
	Radius      float64 // sphere, hemisphere, cone, burst
	ConeAngle   float64 // cone half-angle, radians
	Width       float64 // plane extent on X
	Height      float64 // plane extent on Z
	MajorRadius float64 // torus ring radius
	MinorRadius float64 // torus tube radius
}

// Vec3 is a plain 3-component vector. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// randUnit returns a uniformly distributed direction on the unit sphere.
func randUnit(r *Rand) Vec3 {
	// Uniform: z in [-1,1], azimuth in [0,2π).
	z := r.RangeF(-1, 1)
	ang := r.RangeF(0, 2*math.Pi)
	s := math.Sqrt(1 - z*z)
	return Vec3{X: math.Cos(ang) * s, Y: z, Z: math.Sin(ang) * s}
}

// spawnAt computes a spawn position and initial velocity for one particle.
// Pure given r; speed is sampled uniformly from speedRange and scaled by
// intensity. Cone and burst launch radially outward from the origin; all
// other shapes launch along a random unit direction.
func spawnAt(shape EmissionShape, p ShapeParams, speedRange [2]float64, intensity float64, r *Rand) (pos, vel Vec3) {
	switch shape {
	case ShapePoint:
		// Origin.

	case ShapeSphere:
		d := randUnit(r)
		rad := p.Radius * r.Float64()
		pos = Vec3{X: d.X * rad, Y: d.Y * rad, Z: d.Z * rad}

	case ShapeHemisphere:
		// Polar angle restricted to [0, π/2]: upper half only.
		d := randUnit(r)
		if d.Y < 0 {
			d.Y = -d.Y
		}
		rad := p.Radius * r.Float64()
		pos = Vec3{X: d.X * rad, Y: d.Y * rad, Z: d.Z * rad}

	case ShapeCone:
		// Disk sample, lifted onto the cone surface.
		diskR := p.Radius * r.Float64()
		ang := r.RangeF(0, 2*math.Pi)
		pos = Vec3{
			X: math.Cos(ang) * diskR,
			Y: diskR * math.Tan(p.ConeAngle),
			Z: math.Sin(ang) * diskR,
		}

	case ShapePlane:
		pos = Vec3{
			X: r.RangeF(-p.Width/2, p.Width/2),
			Y: 0,
			Z: r.RangeF(-p.Height/2, p.Height/2),
		}

	case ShapeTorus:
		ringAng := r.RangeF(0, 2*math.Pi)
		tubeAng := r.RangeF(0, 2*math.Pi)
		arm := p.MajorRadius + p.MinorRadius*math.Cos(tubeAng)
		pos = Vec3{
			X: math.Cos(ringAng) * arm,
			Y: p.MinorRadius * math.Sin(tubeAng),
			Z: math.Sin(ringAng) * arm,
		}

	case ShapeBurst:
		d := randUnit(r)
		rad := p.Radius * 0.1
		pos = Vec3{X: d.X * rad, Y: d.Y * rad, Z: d.Z * rad}
	}

	speed := r.RangeF(speedRange[0], speedRange[1]) * intensity

	var dir Vec3
	switch shape {
	case ShapeCone, ShapeBurst:
		// Radially outward from the origin.
		l := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
		if l > 1e-9 {
			dir = Vec3{X: pos.X / l, Y: pos.Y / l, Z: pos.Z / l}
		} else {
			dir = randUnit(r)
		}
	default:
		dir = randUnit(r)
	}

	vel = Vec3{X: dir.X * speed, Y: dir.Y * speed, Z: dir.Z * speed}
	return pos, vel
}
