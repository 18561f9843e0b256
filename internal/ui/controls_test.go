package ui

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/panel"
)

func newTestSystem(t *testing.T) *orbit.System {
	t.Helper()
	ctl := orbit.DefaultControls()
	sys, err := orbit.Build(orbit.Config{
		Table:    orbit.DefaultTable(),
		Rand:     rand.New(rand.NewPCG(7, 11)),
		Controls: &ctl,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return sys
}

func bindingOrFail(t *testing.T, p *panel.Pane, folder, label string) *panel.Binding {
	t.Helper()
	b := p.Find(folder, label)
	if b == nil {
		t.Fatalf("binding %s/%s not found", folder, label)
	}
	return b
}

func TestControlPane_Layout(t *testing.T) {
	p := NewControlPane(newTestSystem(t), nil, nil)

	want := []string{
		LabelShowComets, LabelShowCometOrbits, LabelShowCometTrails,
		LabelCometSpeed, LabelTrailLength,
		LabelPlanetOrbits, LabelStars, LabelLabels, LabelPaused,
	}
	all := p.Bindings()
	if len(all) != len(want) {
		t.Fatalf("bindings = %d, want %d", len(all), len(want))
	}
	for i, b := range all {
		if b.Label != want[i] {
			t.Errorf("binding %d = %q, want %q", i, b.Label, want[i])
		}
	}

	speed := bindingOrFail(t, p, FolderComets, LabelCometSpeed)
	if speed.Range != (panel.Range{Min: 0.1, Max: 3.0, Step: 0.1}) {
		t.Errorf("speed range = %+v", speed.Range)
	}
	trail := bindingOrFail(t, p, FolderComets, LabelTrailLength)
	if trail.Range != (panel.Range{Min: 10, Max: 100, Step: 5}) {
		t.Errorf("trail range = %+v", trail.Range)
	}
}

func TestControlPane_VisibilityToggles(t *testing.T) {
	sys := newTestSystem(t)
	p := NewControlPane(sys, nil, nil)
	g := sys.Graph()

	tests := []struct {
		folder, label string
		node          string
		wantAfter     bool
	}{
		{FolderComets, LabelShowComets, "Halley's Comet", false},
		{FolderComets, LabelShowCometOrbits, "Halley's Comet orbit", true},
		{FolderComets, LabelShowCometTrails, "Halley's Comet trail", false},
		{FolderView, LabelPlanetOrbits, "Earth orbit", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			n := g.Find(tt.node)
			if n == nil {
				t.Fatalf("node %q not found", tt.node)
			}
			if n.Visible == tt.wantAfter {
				t.Fatalf("%s already visible=%v before toggling", tt.node, n.Visible)
			}
			bindingOrFail(t, p, tt.folder, tt.label).Toggle()
			if n.Visible != tt.wantAfter {
				t.Errorf("%s visible = %v, want %v", tt.node, n.Visible, tt.wantAfter)
			}
		})
	}
}

func TestControlPane_CometSpeedIsShared(t *testing.T) {
	sys := newTestSystem(t)
	p := NewControlPane(sys, nil, nil)

	b := bindingOrFail(t, p, FolderComets, LabelCometSpeed)
	b.Step(5)
	if got := sys.Controls().CometSpeed; got != 1.5 {
		t.Errorf("CometSpeed = %v, want 1.5", got)
	}
	b.SetNumber(99)
	if got := sys.Controls().CometSpeed; got != 3.0 {
		t.Errorf("CometSpeed = %v, want clamped 3.0", got)
	}
}

func TestControlPane_TrailLengthResizesAndCounts(t *testing.T) {
	sys := newTestSystem(t)
	m := metrics.NewCollector(nil)
	p := NewControlPane(sys, m, nil)

	bindingOrFail(t, p, FolderComets, LabelTrailLength).Step(1)

	if got := sys.Controls().TrailLength; got != 55 {
		t.Fatalf("TrailLength = %d, want 55", got)
	}
	for _, b := range sys.Bodies() {
		if b.Kind == orbit.KindComet && b.TrailCapacity != 55 {
			t.Errorf("%s trail capacity = %d, want 55", b.Name, b.TrailCapacity)
		}
	}

	// Comet Hartley 2 already holds 55 samples.
	expected := `
# HELP orrery_trail_resizes_total Comet trail buffers reallocated after a trail length change
# TYPE orrery_trail_resizes_total counter
orrery_trail_resizes_total 7
# HELP orrery_control_changes_total Control panel changes
# TYPE orrery_control_changes_total counter
orrery_control_changes_total{control="Trail Length"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"orrery_trail_resizes_total", "orrery_control_changes_total"); err != nil {
		t.Error(err)
	}
}
