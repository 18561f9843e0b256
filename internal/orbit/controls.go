package orbit

// Control ranges exposed by the control panel.
const (
	MinCometSpeed   = 0.1
	MaxCometSpeed   = 3.0
	CometSpeedStep  = 0.1
	MinTrailLength  = 10
	MaxTrailLength  = 100
	TrailLengthStep = 5
)

// Controls is the user-adjustable state shared between the control panel and
// the simulation. The simulation reads it every frame.
type Controls struct {
	ShowComets       bool    `json:"show_comets"`
	ShowCometOrbits  bool    `json:"show_comet_orbits"`
	ShowCometTrails  bool    `json:"show_comet_trails"`
	CometSpeed       float64 `json:"comet_speed"`
	TrailLength      int     `json:"trail_length"`
	ShowPlanetOrbits bool    `json:"show_planet_orbits"`
	ShowStars        bool    `json:"show_stars"`
	ShowLabels       bool    `json:"show_labels"`
	Paused           bool    `json:"paused"`
}

// DefaultControls returns the startup control values.
func DefaultControls() Controls {
	return Controls{
		ShowComets:       true,
		ShowCometOrbits:  false,
		ShowCometTrails:  true,
		CometSpeed:       1.0,
		TrailLength:      50,
		ShowPlanetOrbits: true,
		ShowStars:        true,
		ShowLabels:       true,
	}
}

// Clamp forces the numeric controls into their panel ranges.
func (c *Controls) Clamp() {
	c.CometSpeed = max(MinCometSpeed, min(MaxCometSpeed, c.CometSpeed))
	c.TrailLength = max(MinTrailLength, min(MaxTrailLength, c.TrailLength))
}
