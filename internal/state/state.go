// Package state provides thread-safe run statistics for the orrery.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/orbit"
)

// EventType represents the type of control change event.
type EventType string

const (
	EventToggle      EventType = "TOGGLE"
	EventAdjust      EventType = "ADJUST"
	EventTrailResize EventType = "TRAIL_RESIZE"
)

// Event represents a change to one of the controls.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Control   string    `json:"control"`
	Old       string    `json:"old,omitempty"`
	New       string    `json:"new"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager holds the latest frame statistics with thread-safe access. The
// frame loop writes it; metrics collectors and the HUD read it.
type Manager struct {
	mu sync.RWMutex

	// Current state
	controls    orbit.Controls
	hasControls bool
	bodies      []orbit.BodyView
	frames      uint64
	started     time.Time
	lastUpdate  time.Time
	lastStep    time.Duration
	fps         float64
	resizes     uint64

	// Step duration history
	stepHistory   []TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen int
	MaxEvents     int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen: 120, // Two seconds of steps at 60 Hz
		MaxEvents:     50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHist := cfg.MaxHistoryLen
	if maxHist <= 0 {
		maxHist = 120
	}
	return &Manager{
		maxHistoryLen: maxHist,
		stepHistory:   make([]TimeSeries, 0, maxHist),
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
	}
}

// Update records the state after a frame.
func (m *Manager) Update(ctl orbit.Controls, frames uint64, stepDuration time.Duration, bodies []orbit.BodyView) {
	m.update(time.Now(), ctl, frames, stepDuration, bodies)
}

func (m *Manager) update(now time.Time, ctl orbit.Controls, frames uint64, stepDuration time.Duration, bodies []orbit.BodyView) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started.IsZero() {
		m.started = now
	}

	// Detect events before replacing the controls
	if m.hasControls {
		m.detectEvents(now, ctl)
	}
	m.controls = ctl
	m.hasControls = true

	// Smoothed steps per second. Updates without steps pull it toward zero.
	if !m.lastUpdate.IsZero() && frames >= m.frames {
		if dt := now.Sub(m.lastUpdate).Seconds(); dt > 0 {
			inst := float64(frames-m.frames) / dt
			if m.fps == 0 {
				m.fps = inst
			} else {
				m.fps = 0.8*m.fps + 0.2*inst
			}
		}
	}
	m.lastUpdate = now
	m.frames = frames
	m.lastStep = stepDuration
	m.bodies = bodies

	m.stepHistory = append(m.stepHistory, TimeSeries{Timestamp: now, Value: stepDuration.Seconds()})
	if len(m.stepHistory) > m.maxHistoryLen {
		m.stepHistory = m.stepHistory[1:]
	}
}

// detectEvents compares new controls with the previous ones and logs a
// change event per field.
func (m *Manager) detectEvents(now time.Time, ctl orbit.Controls) {
	prev := m.controls

	toggle := func(name string, old, cur bool) {
		if old != cur {
			m.addEvent(Event{
				Type:      EventToggle,
				Timestamp: now,
				Control:   name,
				Old:       onOff(old),
				New:       onOff(cur),
			})
		}
	}
	toggle("comets", prev.ShowComets, ctl.ShowComets)
	toggle("comet orbits", prev.ShowCometOrbits, ctl.ShowCometOrbits)
	toggle("comet trails", prev.ShowCometTrails, ctl.ShowCometTrails)
	toggle("planet orbits", prev.ShowPlanetOrbits, ctl.ShowPlanetOrbits)
	toggle("stars", prev.ShowStars, ctl.ShowStars)
	toggle("labels", prev.ShowLabels, ctl.ShowLabels)
	toggle("paused", prev.Paused, ctl.Paused)

	if prev.CometSpeed != ctl.CometSpeed {
		m.addEvent(Event{
			Type:      EventAdjust,
			Timestamp: now,
			Control:   "comet speed",
			Old:       fmt.Sprintf("%.1f", prev.CometSpeed),
			New:       fmt.Sprintf("%.1f", ctl.CometSpeed),
		})
	}
	if prev.TrailLength != ctl.TrailLength {
		m.resizes++
		m.addEvent(Event{
			Type:      EventTrailResize,
			Timestamp: now,
			Control:   "trail length",
			Old:       fmt.Sprintf("%d", prev.TrailLength),
			New:       fmt.Sprintf("%d", ctl.TrailLength),
		})
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Controls     orbit.Controls
	Bodies       []orbit.BodyView
	Frames       uint64
	Started      time.Time
	LastUpdate   time.Time
	LastStep     time.Duration
	StepsPerSec  float64
	TrailResizes uint64
	StepHistory  []TimeSeries
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bodies := make([]orbit.BodyView, len(m.bodies))
	copy(bodies, m.bodies)

	hist := make([]TimeSeries, len(m.stepHistory))
	copy(hist, m.stepHistory)

	return Snapshot{
		Controls:     m.controls,
		Bodies:       bodies,
		Frames:       m.frames,
		Started:      m.started,
		LastUpdate:   m.lastUpdate,
		LastStep:     m.lastStep,
		StepsPerSec:  m.fps,
		TrailResizes: m.resizes,
		StepHistory:  hist,
		Events:       m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Frames returns the number of steps recorded so far.
func (m *Manager) Frames() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frames
}

// StepsPerSecond returns the smoothed simulation rate.
func (m *Manager) StepsPerSecond() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fps
}

// VisibleBodies counts bodies whose mesh is currently shown.
func (m *Manager) VisibleBodies() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, b := range m.bodies {
		if b.Visible {
			n++
		}
	}
	return n
}

// TrailPoints returns the total number of recorded trail samples.
func (m *Manager) TrailPoints() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, b := range m.bodies {
		n += b.TrailLen
	}
	return n
}

// HasData returns true once at least one frame has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasControls
}
