package orbit

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Self-rotation added to each body per step, in radians.
const (
	PlanetSpin = 0.03
	MoonSpin   = 0.05
	CometSpin  = 0.05
)

type planet struct {
	spec  PlanetSpec
	state *BodyState
	moons []*moon
}

type moon struct {
	spec  MoonSpec
	state *BodyState
}

type comet struct {
	spec  CometSpec
	minor float64
	state *BodyState
}

// Config holds everything needed to build a System.
type Config struct {
	Table     Table
	Graph     *scene.Graph
	Materials *scene.MaterialLibrary
	Rand      *rand.Rand // Initial phases; nil seeds from the clock
	Controls  *Controls  // Shared with the control panel; nil uses defaults
	Logger    *logging.Logger
}

// System owns the per-body state and advances it one step at a time.
// It is not safe for concurrent use; the caller's frame loop is the only
// writer of the scene graph and body state.
type System struct {
	graph   *scene.Graph
	ctl     *Controls
	log     *logging.Logger
	sun     *BodyState
	planets []*planet
	comets  []*comet
	frames  uint64

	frameLog rate.Sometimes
}

// Build validates the table, creates every body through the factory and
// applies the current visibility controls.
func Build(cfg Config) (*System, error) {
	if err := cfg.Table.Validate(); err != nil {
		return nil, fmt.Errorf("build system: %w", err)
	}
	if cfg.Graph == nil {
		cfg.Graph = scene.NewGraph()
	}
	if cfg.Materials == nil {
		cfg.Materials = scene.DefaultMaterials()
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if cfg.Controls == nil {
		ctl := DefaultControls()
		cfg.Controls = &ctl
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	s := &System{
		graph:    cfg.Graph,
		ctl:      cfg.Controls,
		log:      cfg.Logger,
		frameLog: rate.Sometimes{Interval: 5 * time.Second},
	}
	f := &Factory{
		Graph:     cfg.Graph,
		Materials: cfg.Materials,
		OnMissingTexture: func(body, texture string) {
			s.log.Warn("texture %q for %s not found, using default material", texture, body)
		},
	}
	phase := func() float64 { return cfg.Rand.Float64() * 2 * math.Pi }

	s.sun = &BodyState{Kind: KindSun, Name: "Sun", Mesh: f.CreateSun(cfg.Table.Sun)}

	for _, spec := range cfg.Table.Planets {
		mesh := f.CreatePlanet(spec)
		p := &planet{
			spec: spec,
			state: &BodyState{
				Kind:  KindPlanet,
				Name:  spec.Name,
				Angle: phase(),
				Mesh:  mesh,
				Line:  f.CreatePlanetOrbit(spec),
			},
		}
		for _, ms := range spec.Moons {
			group, mm := f.CreateMoon(ms, mesh)
			st := &BodyState{
				Kind:   KindMoon,
				Name:   ms.Name,
				Angle:  phase(),
				Mesh:   mm,
				Group:  group,
				Parent: mesh,
			}
			group.RotationY = st.Angle
			p.moons = append(p.moons, &moon{spec: ms, state: st})
		}
		s.placePlanet(p)
		s.planets = append(s.planets, p)
	}

	for _, spec := range cfg.Table.Comets {
		mesh, trail, trailNode := f.CreateComet(spec)
		c := &comet{
			spec:  spec,
			minor: astro.MinorAxis(spec.SemiMajorAxis, spec.Eccentricity),
			state: &BodyState{
				Kind:      KindComet,
				Name:      spec.Name,
				Angle:     phase(),
				Mesh:      mesh,
				Line:      f.CreateCometOrbit(spec),
				Trail:     trail,
				TrailNode: trailNode,
			},
		}
		s.placeComet(c)
		s.comets = append(s.comets, c)
	}

	s.ApplyVisibility()
	s.log.Info("built system: %d planets, %d comets, %d scene nodes",
		len(s.planets), len(s.comets), s.graph.Len())
	return s, nil
}

// Graph returns the scene graph the system populates.
func (s *System) Graph() *scene.Graph { return s.graph }

// Controls returns the shared controls record.
func (s *System) Controls() *Controls { return s.ctl }

// Frames returns the number of steps taken.
func (s *System) Frames() uint64 { return s.frames }

// Step advances every body by one frame.
func (s *System) Step() {
	for _, p := range s.planets {
		p.state.Angle += p.spec.Speed
		s.placePlanet(p)
		p.state.Mesh.RotationY += PlanetSpin

		for _, m := range p.moons {
			m.state.Angle += m.spec.Speed
			m.state.Group.RotationY = m.state.Angle
			m.state.Mesh.RotationY += MoonSpin
		}
	}

	speed := s.ctl.CometSpeed
	for _, c := range s.comets {
		c.state.Angle += c.spec.Speed * speed
		s.placeComet(c)
		c.state.Mesh.RotationY += CometSpin

		c.state.Trail.Push(c.state.Mesh.Position)
		c.state.Trail.Fill(c.state.TrailNode.Cloud)
	}

	s.frames++
	s.frameLog.Do(func() {
		s.log.Debug("frame %d: comet speed %.1f", s.frames, speed)
	})
}

func (s *System) placePlanet(p *planet) {
	a, b := p.spec.Axes()
	pos := astro.EllipsePoint(p.state.Angle, a, b)
	p.state.Mesh.Position.X = pos.X
	p.state.Mesh.Position.Z = pos.Z
}

func (s *System) placeComet(c *comet) {
	c.state.Mesh.Position = astro.InclinedEllipsePoint(
		c.state.Angle, c.spec.SemiMajorAxis, c.minor, c.spec.Inclination)
}

// ApplyVisibility pushes every visibility flag of the controls into the
// scene graph.
func (s *System) ApplyVisibility() {
	s.SetCometsVisible(s.ctl.ShowComets)
	s.SetCometOrbitsVisible(s.ctl.ShowCometOrbits)
	s.SetCometTrailsVisible(s.ctl.ShowCometTrails)
	s.SetPlanetOrbitsVisible(s.ctl.ShowPlanetOrbits)
}

// SetCometsVisible shows or hides every comet nucleus. Trails and orbit
// lines keep their own flags.
func (s *System) SetCometsVisible(v bool) {
	s.ctl.ShowComets = v
	for _, c := range s.comets {
		c.state.Mesh.Visible = v
	}
}

// SetCometOrbitsVisible shows or hides every comet orbit line.
func (s *System) SetCometOrbitsVisible(v bool) {
	s.ctl.ShowCometOrbits = v
	for _, c := range s.comets {
		c.state.Line.Visible = v
	}
}

// SetCometTrailsVisible shows or hides every comet trail.
func (s *System) SetCometTrailsVisible(v bool) {
	s.ctl.ShowCometTrails = v
	for _, c := range s.comets {
		c.state.TrailNode.Visible = v
	}
}

// SetPlanetOrbitsVisible shows or hides every planet orbit line.
func (s *System) SetPlanetOrbitsVisible(v bool) {
	s.ctl.ShowPlanetOrbits = v
	for _, p := range s.planets {
		p.state.Line.Visible = v
	}
}

// SetTrailLength overrides every comet's trail capacity. It returns the
// number of trails actually resized.
func (s *System) SetTrailLength(n int) int {
	n = max(MinTrailLength, min(MaxTrailLength, n))
	s.ctl.TrailLength = n
	resized := 0
	for _, c := range s.comets {
		if c.state.Trail.Resize(n) {
			resized++
		}
		c.state.Trail.Fill(c.state.TrailNode.Cloud)
	}
	s.log.Debug("trail length set to %d, %d trails resized", n, resized)
	return resized
}

// SetCometSpeed sets the comet speed multiplier, clamped to its range.
func (s *System) SetCometSpeed(v float64) {
	s.ctl.CometSpeed = max(MinCometSpeed, min(MaxCometSpeed, v))
}

// BodyView is a read-only snapshot of one body.
type BodyView struct {
	Name          string
	Kind          BodyKind
	Parent        string
	Angle         float64
	Position      astro.Vec3 // World coordinates
	Radius        float64
	Color         uint32
	Visible       bool
	TrailLen      int
	TrailCapacity int
}

// Bodies returns a view of every body: the sun, each planet followed by its
// moons, then the comets.
func (s *System) Bodies() []BodyView {
	out := make([]BodyView, 0, 1+len(s.planets)*2+len(s.comets))
	out = append(out, view(s.sun, ""))
	for _, p := range s.planets {
		out = append(out, view(p.state, ""))
		for _, m := range p.moons {
			out = append(out, view(m.state, p.state.Name))
		}
	}
	for _, c := range s.comets {
		out = append(out, view(c.state, ""))
	}
	return out
}

// Body returns the view of the named body.
func (s *System) Body(name string) (BodyView, bool) {
	for _, b := range s.Bodies() {
		if b.Name == name {
			return b, true
		}
	}
	return BodyView{}, false
}

func view(st *BodyState, parent string) BodyView {
	v := BodyView{
		Name:     st.Name,
		Kind:     st.Kind,
		Parent:   parent,
		Angle:    st.Angle,
		Position: st.Mesh.WorldPosition(),
		Radius:   st.Mesh.WorldScale(),
		Color:    st.Mesh.Material.Color,
		Visible:  st.Mesh.WorldVisible(),
	}
	if st.Trail != nil {
		v.TrailLen = st.Trail.Len()
		v.TrailCapacity = st.Trail.Capacity()
	}
	return v
}
