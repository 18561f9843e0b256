package orbit

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Orbit line colors.
const (
	PlanetOrbitColor uint32 = 0x888888
	CometOrbitColor  uint32 = 0x444444
	cometOrbitAlpha         = 0.5
)

// Factory turns table records into scene nodes and registers them with the
// graph.
type Factory struct {
	Graph     *scene.Graph
	Materials *scene.MaterialLibrary

	// OnMissingTexture is called once per body whose texture failed to
	// resolve. The body still renders with the default material.
	OnMissingTexture func(body, texture string)
}

func (f *Factory) material(body string, m scene.Material) scene.Material {
	if f.Materials == nil {
		if m.Opacity == 0 {
			m.Opacity = 1
		}
		return m
	}
	resolved, ok := f.Materials.Resolve(m)
	if !ok && f.OnMissingTexture != nil {
		f.OnMissingTexture(body, m.Texture)
	}
	return resolved
}

func (f *Factory) sphere(name string, radius float64, m scene.Material) *scene.Node {
	n := scene.NewNode(name, scene.KindSphere)
	n.Scale = radius
	n.Material = f.material(name, m)
	return n
}

// CreateSun creates the central body at the origin.
func (f *Factory) CreateSun(spec SunSpec) *scene.Node {
	n := f.sphere("Sun", spec.Radius, spec.Material)
	f.Graph.Add(n)
	return n
}

// CreatePlanet creates a planet mesh at (distance, 0, 0).
func (f *Factory) CreatePlanet(spec PlanetSpec) *scene.Node {
	n := f.sphere(spec.Name, spec.Radius, spec.Material)
	n.Position = astro.Vec3{X: spec.Distance}
	f.Graph.Add(n)
	return n
}

// CreateMoon creates a rotation group parented to the planet and the moon
// mesh inside it at (distance, 0, 0). The moon's world position follows from
// the group's rotation and the planet's transform.
func (f *Factory) CreateMoon(spec MoonSpec, parent *scene.Node) (group, mesh *scene.Node) {
	group = scene.NewGroup(spec.Name + " orbit")
	mesh = f.sphere(spec.Name, spec.Radius, spec.Material)
	mesh.Position = astro.Vec3{X: spec.Distance}
	group.Add(mesh)
	parent.Add(group)
	return group, mesh
}

// CreateComet creates the nucleus, its trail buffer and the trail point
// cloud, pre-populated with zero positions and the fade ramp.
func (f *Factory) CreateComet(spec CometSpec) (mesh *scene.Node, trail *TrailBuffer, trailNode *scene.Node) {
	mesh = f.sphere(spec.Name, spec.Radius, spec.Material)
	f.Graph.Add(mesh)

	trail = NewTrailBuffer(spec.TrailLength, spec.TrailColor)
	trailNode = scene.NewNode(spec.Name+" trail", scene.KindPoints)
	trailNode.Material = scene.Material{Color: spec.TrailColor, Opacity: 0.8}
	trailNode.Cloud = scene.NewPointCloud(trail.Capacity())
	trail.Fill(trailNode.Cloud)
	f.Graph.Add(trailNode)
	return mesh, trail, trailNode
}

// CreateOrbitLine creates a closed orbit polyline in world coordinates.
func (f *Factory) CreateOrbitLine(name string, points []astro.Vec3, color uint32, opacity float64, visible bool) *scene.Node {
	n := scene.NewNode(name, scene.KindLine)
	n.Line = points
	n.Material = scene.Material{Color: color, Opacity: opacity}
	n.Visible = visible
	f.Graph.Add(n)
	return n
}

// CreatePlanetOrbit samples the planet's coplanar ellipse.
func (f *Factory) CreatePlanetOrbit(spec PlanetSpec) *scene.Node {
	a, b := spec.Axes()
	pts := astro.SampleEllipse(a, b, 0, astro.DefaultOrbitSegments)
	return f.CreateOrbitLine(spec.Name+" orbit", pts, PlanetOrbitColor, 1, true)
}

// CreateCometOrbit samples the comet's inclined ellipse. It starts hidden.
func (f *Factory) CreateCometOrbit(spec CometSpec) *scene.Node {
	b := astro.MinorAxis(spec.SemiMajorAxis, spec.Eccentricity)
	pts := astro.SampleEllipse(spec.SemiMajorAxis, b, spec.Inclination, astro.DefaultOrbitSegments)
	return f.CreateOrbitLine(spec.Name+" orbit", pts, CometOrbitColor, cometOrbitAlpha, false)
}
