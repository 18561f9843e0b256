// Package orbit holds the orrery's simulation core: the orbit parameter
// table, the body factory, per-body orbit state, comet trail buffers and the
// per-frame update loop.
package orbit

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-orrery/internal/scene"
)

var (
	// ErrEccentricity reports an orbit that is not a closed ellipse.
	ErrEccentricity = errors.New("eccentricity must be in [0, 1)")
	// ErrNonPositive reports a size, distance or length that must be > 0.
	ErrNonPositive = errors.New("value must be positive")
)

// Ellipse holds the semi-axes of a coplanar planet orbit.
type Ellipse struct {
	A float64 `yaml:"a" json:"a"` // Along X
	B float64 `yaml:"b" json:"b"` // Along Z
}

// SunSpec describes the central body.
type SunSpec struct {
	Radius   float64        `yaml:"radius"`
	Material scene.Material `yaml:"material"`
}

// MoonSpec describes a moon orbiting its parent planet's local frame.
type MoonSpec struct {
	Name     string         `yaml:"name"`
	Radius   float64        `yaml:"radius"`
	Distance float64        `yaml:"distance"`
	Speed    float64        `yaml:"speed"` // Radians per frame
	Material scene.Material `yaml:"material"`
}

// PlanetSpec describes a planet on a coplanar orbit around the sun.
type PlanetSpec struct {
	Name     string         `yaml:"name"`
	Radius   float64        `yaml:"radius"`
	Distance float64        `yaml:"distance"`
	Speed    float64        `yaml:"speed"` // Radians per frame, sign sets direction
	Ellipse  Ellipse        `yaml:"ellipse"`
	Material scene.Material `yaml:"material"`
	Moons    []MoonSpec     `yaml:"moons"`
}

// Axes returns the orbit's semi-axes. A planet without an ellipse entry
// follows a circle of radius Distance.
func (p PlanetSpec) Axes() (a, b float64) {
	if p.Ellipse.A == 0 && p.Ellipse.B == 0 {
		return p.Distance, p.Distance
	}
	return p.Ellipse.A, p.Ellipse.B
}

// CometSpec describes a comet on an inclined elliptical orbit.
type CometSpec struct {
	Name          string         `yaml:"name"`
	Radius        float64        `yaml:"radius"`
	SemiMajorAxis float64        `yaml:"semi_major_axis"`
	Eccentricity  float64        `yaml:"eccentricity"`
	Inclination   float64        `yaml:"inclination"` // Radians
	Speed         float64        `yaml:"speed"`       // Radians per frame at multiplier 1
	Material      scene.Material `yaml:"material"`
	TrailLength   int            `yaml:"trail_length"`
	TrailColor    uint32         `yaml:"trail_color"`
}

// Table is the full static configuration of the orrery.
type Table struct {
	Sun     SunSpec      `yaml:"sun"`
	Planets []PlanetSpec `yaml:"planets"`
	Comets  []CometSpec  `yaml:"comets"`
}

// Validate checks every record against the orbit invariants.
func (t Table) Validate() error {
	if t.Sun.Radius <= 0 {
		return fmt.Errorf("sun radius: %w", ErrNonPositive)
	}
	for _, p := range t.Planets {
		if err := positive(p.Name, "radius", p.Radius); err != nil {
			return err
		}
		if err := positive(p.Name, "distance", p.Distance); err != nil {
			return err
		}
		a, b := p.Axes()
		if err := positive(p.Name, "ellipse a", a); err != nil {
			return err
		}
		if err := positive(p.Name, "ellipse b", b); err != nil {
			return err
		}
		for _, m := range p.Moons {
			if err := positive(m.Name, "radius", m.Radius); err != nil {
				return err
			}
			if err := positive(m.Name, "distance", m.Distance); err != nil {
				return err
			}
		}
	}
	for _, c := range t.Comets {
		if err := positive(c.Name, "radius", c.Radius); err != nil {
			return err
		}
		if err := positive(c.Name, "semi-major axis", c.SemiMajorAxis); err != nil {
			return err
		}
		if c.Eccentricity < 0 || c.Eccentricity >= 1 {
			return fmt.Errorf("%s: eccentricity %v: %w", c.Name, c.Eccentricity, ErrEccentricity)
		}
		if c.TrailLength <= 0 {
			return fmt.Errorf("%s: trail length %d: %w", c.Name, c.TrailLength, ErrNonPositive)
		}
	}
	return nil
}

func positive(name, field string, v float64) error {
	if v > 0 {
		return nil
	}
	return fmt.Errorf("%s: %s %v: %w", name, field, v, ErrNonPositive)
}

// moonMaterial is shared by every stock moon.
var moonMaterial = scene.Material{Texture: "2k_moon.jpg"}

// DefaultTable returns the stock solar system: eight planets on elliptical
// orbits, three moons and eight periodic comets.
func DefaultTable() Table {
	return Table{
		Sun: SunSpec{Radius: 5, Material: scene.Material{Texture: "2k_sun.jpg"}},
		Planets: []PlanetSpec{
			{
				Name: "Mercury", Radius: 0.4, Distance: 10, Speed: 0.12,
				Ellipse:  Ellipse{A: 10, B: 8},
				Material: scene.Material{Texture: "2k_mercury.jpg"},
			},
			{
				Name: "Venus", Radius: 0.7, Distance: 14, Speed: 0.08,
				Ellipse:  Ellipse{A: 14, B: 12},
				Material: scene.Material{Texture: "2k_venus_surface.jpg"},
			},
			{
				Name: "Earth", Radius: 0.8, Distance: 18, Speed: 0.05,
				Ellipse:  Ellipse{A: 18, B: 16},
				Material: scene.Material{Texture: "2k_earth_daymap.jpg"},
				Moons: []MoonSpec{
					{Name: "Moon", Radius: 0.2, Distance: 2, Speed: 0.08, Material: moonMaterial},
				},
			},
			{
				Name: "Mars", Radius: 0.6, Distance: 22, Speed: 0.04,
				Ellipse:  Ellipse{A: 22, B: 19},
				Material: scene.Material{Texture: "2k_mars.jpg"},
				Moons: []MoonSpec{
					{Name: "Phobos", Radius: 0.1, Distance: 1, Speed: 0.12, Material: moonMaterial},
					{Name: "Deimos", Radius: 0.1, Distance: 2, Speed: 0.09, Material: moonMaterial},
				},
			},
			{
				Name: "Jupiter", Radius: 1.5, Distance: 28, Speed: 0.02,
				Ellipse:  Ellipse{A: 28, B: 25},
				Material: scene.Material{Color: 0xFFA500},
			},
			{
				Name: "Saturn", Radius: 1.2, Distance: 34, Speed: 0.015,
				Ellipse:  Ellipse{A: 34, B: 30},
				Material: scene.Material{Texture: "2k_saturn.jpg"},
			},
			{
				Name: "Uranus", Radius: 0.9, Distance: 40, Speed: 0.01,
				Ellipse:  Ellipse{A: 40, B: 36},
				Material: scene.Material{Texture: "2k_uranus_texture.jpg"},
			},
			{
				Name: "Neptune", Radius: 0.8, Distance: 46, Speed: 0.005,
				Ellipse:  Ellipse{A: 46, B: 41},
				Material: scene.Material{Texture: "2k_neptune.jpg"},
			},
		},
		Comets: []CometSpec{
			{
				Name: "Halley's Comet", Radius: 0.3, SemiMajorAxis: 35, Eccentricity: 0.967,
				Inclination: 0.2, Speed: 0.008, Material: scene.Material{Color: 0x8B4513},
				TrailLength: 50, TrailColor: 0x87CEEB,
			},
			{
				Name: "Comet Hale-Bopp", Radius: 0.4, SemiMajorAxis: 45, Eccentricity: 0.995,
				Inclination: 0.15, Speed: 0.006, Material: scene.Material{Color: 0x654321},
				TrailLength: 60, TrailColor: 0xFFFFFF,
			},
			{
				Name: "Comet Encke", Radius: 0.2, SemiMajorAxis: 25, Eccentricity: 0.848,
				Inclination: 0.1, Speed: 0.012, Material: scene.Material{Color: 0x2F4F4F},
				TrailLength: 30, TrailColor: 0xFFD700,
			},
			{
				Name: "Comet Tempel-Tuttle", Radius: 0.25, SemiMajorAxis: 40, Eccentricity: 0.906,
				Inclination: 0.3, Speed: 0.009, Material: scene.Material{Color: 0x4B0082},
				TrailLength: 45, TrailColor: 0xFF69B4,
			},
			{
				Name: "Comet Swift-Tuttle", Radius: 0.35, SemiMajorAxis: 50, Eccentricity: 0.963,
				Inclination: 0.25, Speed: 0.007, Material: scene.Material{Color: 0x228B22},
				TrailLength: 70, TrailColor: 0x32CD32,
			},
			{
				Name: "Comet Borrelly", Radius: 0.28, SemiMajorAxis: 30, Eccentricity: 0.623,
				Inclination: 0.18, Speed: 0.011, Material: scene.Material{Color: 0x8B0000},
				TrailLength: 40, TrailColor: 0xFF4500,
			},
			{
				Name: "Comet Wild 2", Radius: 0.22, SemiMajorAxis: 38, Eccentricity: 0.540,
				Inclination: 0.12, Speed: 0.010, Material: scene.Material{Color: 0x4169E1},
				TrailLength: 35, TrailColor: 0x1E90FF,
			},
			{
				Name: "Comet Hartley 2", Radius: 0.26, SemiMajorAxis: 42, Eccentricity: 0.694,
				Inclination: 0.22, Speed: 0.0085, Material: scene.Material{Color: 0xFF6347},
				TrailLength: 55, TrailColor: 0xFFA07A,
			},
		},
	}
}
