package state

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/orbit"
)

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
	if m.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", m.Frames())
	}
}

func TestManager_Update(t *testing.T) {
	m := NewManager(DefaultConfig())
	bodies := []orbit.BodyView{
		{Name: "Earth", Kind: orbit.KindPlanet, Visible: true},
		{Name: "Comet Encke", Kind: orbit.KindComet, Visible: false, TrailLen: 12},
		{Name: "Halley's Comet", Kind: orbit.KindComet, Visible: true, TrailLen: 8},
	}

	m.Update(orbit.DefaultControls(), 10, 2*time.Millisecond, bodies)

	if !m.HasData() {
		t.Error("HasData should be true after Update")
	}
	snap := m.Snapshot()
	if snap.Frames != 10 {
		t.Errorf("Frames = %d, want 10", snap.Frames)
	}
	if snap.LastStep != 2*time.Millisecond {
		t.Errorf("LastStep = %v, want 2ms", snap.LastStep)
	}
	if len(snap.Bodies) != 3 {
		t.Errorf("Bodies = %d, want 3", len(snap.Bodies))
	}
	if m.VisibleBodies() != 2 {
		t.Errorf("VisibleBodies = %d, want 2", m.VisibleBodies())
	}
	if m.TrailPoints() != 20 {
		t.Errorf("TrailPoints = %d, want 20", m.TrailPoints())
	}
	if len(snap.Events) != 0 {
		t.Errorf("first update should not emit events, got %v", snap.Events)
	}

	// Snapshot must not alias internal slices.
	snap.Bodies[0].Name = "changed"
	if m.Snapshot().Bodies[0].Name != "Earth" {
		t.Error("Snapshot leaked internal body slice")
	}
}

func TestManager_DetectEvents(t *testing.T) {
	m := NewManager(DefaultConfig())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ctl := orbit.DefaultControls()
	m.update(now, ctl, 1, 0, nil)

	ctl.ShowComets = false
	ctl.CometSpeed = 2.5
	ctl.TrailLength = 80
	m.update(now.Add(time.Second), ctl, 2, 0, nil)

	events := m.Snapshot().Events
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3: %+v", len(events), events)
	}

	tests := []struct {
		typ     EventType
		control string
		old     string
		new     string
	}{
		{EventToggle, "comets", "on", "off"},
		{EventAdjust, "comet speed", "1.0", "2.5"},
		{EventTrailResize, "trail length", "50", "80"},
	}
	for i, tt := range tests {
		e := events[i]
		if e.Type != tt.typ || e.Control != tt.control || e.Old != tt.old || e.New != tt.new {
			t.Errorf("event[%d] = %+v, want %v %s %s→%s", i, e, tt.typ, tt.control, tt.old, tt.new)
		}
	}
	if m.Snapshot().TrailResizes != 1 {
		t.Errorf("TrailResizes = %d, want 1", m.Snapshot().TrailResizes)
	}

	// Unchanged controls emit nothing.
	m.update(now.Add(2*time.Second), ctl, 3, 0, nil)
	if got := len(m.Snapshot().Events); got != 3 {
		t.Errorf("events = %d after no-op update, want 3", got)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 4
	m := NewManager(cfg)

	ctl := orbit.DefaultControls()
	m.Update(ctl, 0, 0, nil)
	for i := 0; i < 6; i++ {
		ctl.ShowStars = !ctl.ShowStars
		m.Update(ctl, uint64(i+1), 0, nil)
	}

	events := m.Snapshot().Events
	if len(events) != 4 {
		t.Fatalf("events = %d, want 4", len(events))
	}
	// Toggles alternate off, on, off, on, off, on; the oldest two dropped.
	want := []string{"off", "on", "off", "on"}
	for i, w := range want {
		if events[i].New != w {
			t.Errorf("events[%d].New = %q, want %q", i, events[i].New, w)
		}
	}

	recent := m.RecentEvents(2)
	if len(recent) != 2 || recent[1].New != "on" {
		t.Errorf("RecentEvents(2) = %+v", recent)
	}
	if got := m.RecentEvents(10); len(got) != 4 {
		t.Errorf("RecentEvents(10) = %d events, want 4", len(got))
	}
}

func TestManager_StepsPerSecond(t *testing.T) {
	m := NewManager(DefaultConfig())
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ctl := orbit.DefaultControls()

	m.update(start, ctl, 0, 0, nil)
	m.update(start.Add(time.Second), ctl, 60, 0, nil)
	if got := m.StepsPerSecond(); got != 60 {
		t.Errorf("StepsPerSecond = %v, want 60", got)
	}

	m.update(start.Add(2*time.Second), ctl, 90, 0, nil)
	if got := m.StepsPerSecond(); got != 0.8*60+0.2*30 {
		t.Errorf("StepsPerSecond = %v, want %v", got, 0.8*60+0.2*30)
	}
}

func TestManager_StepsPerSecondDecaysWhilePaused(t *testing.T) {
	m := NewManager(DefaultConfig())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ctl := orbit.DefaultControls()
	tick := time.Second / 60

	var frames uint64
	m.update(now, ctl, frames, 0, nil)
	for i := 0; i < 60; i++ {
		now = now.Add(tick)
		frames++
		m.update(now, ctl, frames, 0, nil)
	}
	if got := m.StepsPerSecond(); math.Abs(got-60) > 1e-3 {
		t.Fatalf("running StepsPerSecond = %v, want 60", got)
	}

	ctl.Paused = true
	for i := 0; i < 600; i++ {
		now = now.Add(tick)
		m.update(now, ctl, frames, 0, nil)
	}
	if got := m.StepsPerSecond(); got > 0.01 {
		t.Errorf("paused StepsPerSecond = %v, want ~0", got)
	}
}

func TestManager_StepHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistoryLen = 3
	m := NewManager(cfg)

	for i := 1; i <= 5; i++ {
		m.Update(orbit.DefaultControls(), uint64(i), time.Duration(i)*time.Millisecond, nil)
	}

	hist := m.Snapshot().StepHistory
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	if hist[0].Value != 0.003 {
		t.Errorf("oldest step = %v, want 0.003", hist[0].Value)
	}
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager(DefaultConfig())
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		ctl := orbit.DefaultControls()
		for i := 0; i < 200; i++ {
			ctl.ShowLabels = i%2 == 0
			m.Update(ctl, uint64(i), time.Microsecond, nil)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = m.Snapshot()
			_ = m.StepsPerSecond()
			_ = m.TrailPoints()
		}
	}()
	wg.Wait()

	if m.Frames() != 199 {
		t.Errorf("Frames = %d, want 199", m.Frames())
	}
}
