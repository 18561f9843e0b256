package astro

import (
	"math"
	"math/rand/v2"
)

// Star field defaults: a shell of points well outside every orbit.
const (
	DefaultStarCount     = 3000
	DefaultStarMinRadius = 400.0
	DefaultStarMaxRadius = 800.0
)

// Star is a background point with a brightness bucket.
type Star struct {
	Pos Vec3    // Position on the shell
	Mag float64 // Apparent magnitude analogue (lower = brighter), 0..4
}

// StarField holds a collection of stars for rendering.
type StarField struct {
	Stars []Star
}

// GenerateStarField scatters count stars uniformly over directions with
// radii in [rMin, rMax). Nearer stars are brighter.
func GenerateStarField(rng *rand.Rand, count int, rMin, rMax float64) StarField {
	if count < 0 {
		count = 0
	}
	if rMax <= rMin {
		rMax = rMin + 1
	}
	stars := make([]Star, count)
	for i := range stars {
		r := rMin + rng.Float64()*(rMax-rMin)
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		stars[i] = Star{
			Pos: Vec3{
				X: r * math.Sin(phi) * math.Cos(theta),
				Y: r * math.Sin(phi) * math.Sin(theta),
				Z: r * math.Cos(phi),
			},
			Mag: (r - rMin) / (rMax - rMin) * 4,
		}
	}
	return StarField{Stars: stars}
}

// DefaultStarField returns the standard 3000-star shell for a seeded source.
func DefaultStarField(rng *rand.Rand) StarField {
	return GenerateStarField(rng, DefaultStarCount, DefaultStarMinRadius, DefaultStarMaxRadius)
}
