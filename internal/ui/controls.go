package ui

import (
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/panel"
)

// Folder and binding labels of the control panel.
const (
	FolderComets = "Comets"
	FolderView   = "View"

	LabelShowComets      = "Show Comets"
	LabelShowCometOrbits = "Show Comet Orbits"
	LabelShowCometTrails = "Show Comet Trails"
	LabelCometSpeed      = "Comet Speed"
	LabelTrailLength     = "Trail Length"
	LabelPlanetOrbits    = "Planet Orbits"
	LabelStars           = "Stars"
	LabelLabels          = "Labels"
	LabelPaused          = "Paused"
)

// NewControlPane binds the system's controls to a panel. Visibility and trail
// changes are pushed into the scene as they happen; the comet speed is read
// by the system every step. m may be nil.
func NewControlPane(sys *orbit.System, m *metrics.Collector, log *logging.Logger) *panel.Pane {
	if log == nil {
		log = logging.Discard()
	}
	ctl := sys.Controls()
	p := panel.New("Controls")

	comets := p.AddFolder(FolderComets)
	comets.AddBool(LabelShowComets, &ctl.ShowComets).OnChange(func(panel.Event) {
		sys.SetCometsVisible(ctl.ShowComets)
	})
	comets.AddBool(LabelShowCometOrbits, &ctl.ShowCometOrbits).OnChange(func(panel.Event) {
		sys.SetCometOrbitsVisible(ctl.ShowCometOrbits)
	})
	comets.AddBool(LabelShowCometTrails, &ctl.ShowCometTrails).OnChange(func(panel.Event) {
		sys.SetCometTrailsVisible(ctl.ShowCometTrails)
	})
	panel.AddNumber(comets, LabelCometSpeed, &ctl.CometSpeed, panel.Range{
		Min: orbit.MinCometSpeed, Max: orbit.MaxCometSpeed, Step: orbit.CometSpeedStep,
	})
	panel.AddNumber(comets, LabelTrailLength, &ctl.TrailLength, panel.Range{
		Min: orbit.MinTrailLength, Max: orbit.MaxTrailLength, Step: orbit.TrailLengthStep,
	}).OnChange(func(panel.Event) {
		n := sys.SetTrailLength(ctl.TrailLength)
		if m != nil {
			m.RecordTrailResizes(n)
		}
	})

	view := p.AddFolder(FolderView)
	view.AddBool(LabelPlanetOrbits, &ctl.ShowPlanetOrbits).OnChange(func(panel.Event) {
		sys.SetPlanetOrbitsVisible(ctl.ShowPlanetOrbits)
	})
	view.AddBool(LabelStars, &ctl.ShowStars)
	view.AddBool(LabelLabels, &ctl.ShowLabels)
	view.AddBool(LabelPaused, &ctl.Paused)

	p.OnChange(func(ev panel.Event) {
		log.Info("control %s/%s = %v", ev.Folder, ev.Label, ev.Value)
		if m != nil {
			m.RecordControlChange(ev.Label)
		}
	})
	return p
}
