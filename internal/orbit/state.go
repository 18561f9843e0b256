package orbit

import "github.com/litescript/ls-orrery/internal/scene"

// BodyKind classifies a simulated body.
type BodyKind int

const (
	KindSun BodyKind = iota
	KindPlanet
	KindMoon
	KindComet
)

// String returns the lowercase kind name.
func (k BodyKind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	case KindComet:
		return "comet"
	default:
		return "unknown"
	}
}

// BodyState is the mutable per-body record advanced once per frame.
// The mesh and its helpers are owned by the scene graph; BodyState only
// refers to them.
type BodyState struct {
	Kind  BodyKind
	Name  string
	Angle float64 // Orbital phase in radians, unbounded

	Mesh   *scene.Node
	Group  *scene.Node // Moons: rotating orbit group under the parent
	Line   *scene.Node // Planets and comets: orbit path
	Parent *scene.Node // Moons: the planet mesh the group hangs from

	Trail     *TrailBuffer // Comets only
	TrailNode *scene.Node  // Comets only
}
