// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/panel"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// Layout constants.
const (
	panelWidth   = 34
	headerLines  = 2
	hudLines     = 2
	footerLines  = 1
	styleCache   = 256
	rotateStep   = 0.08 // radians per arrow key press
	zoomInRatio  = 0.9
	zoomOutRatio = 1 / zoomInRatio
	hudEvents    = 3
)

// FrameMsg drives the animation loop.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	System  *orbit.System
	State   *state.Manager
	Metrics *metrics.Collector // optional
	Logger  *logging.Logger    // optional
	Stars   astro.StarField
	FPS     int // Render rate, defaults to 60
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	sys     *orbit.System
	state   *state.Manager
	metrics *metrics.Collector
	log     *logging.Logger

	renderer *Renderer
	pane     *panel.Pane
	clock    *orbit.Clock
	frame    time.Duration

	// UI state
	width     int
	height    int
	ready     bool
	showPanel bool
	follow    bool
	focus     int // Index into sys.Bodies()
}

// New creates the root UI model.
func New(opts Options) (Model, error) {
	if opts.System == nil {
		return Model{}, errors.New("ui: nil system")
	}
	if opts.State == nil {
		opts.State = state.NewManager(state.DefaultConfig())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	r, err := NewRenderer(opts.Stars, styleCache)
	if err != nil {
		return Model{}, fmt.Errorf("ui: renderer: %w", err)
	}
	log := opts.Logger.With("ui")
	return Model{
		sys:       opts.System,
		state:     opts.State,
		metrics:   opts.Metrics,
		log:       log,
		renderer:  r,
		pane:      NewControlPane(opts.System, opts.Metrics, log),
		clock:     orbit.NewClock(orbit.DefaultClockConfig()),
		frame:     time.Second / time.Duration(opts.FPS),
		showPanel: true,
	}, nil
}

// Pane returns the control panel.
func (m Model) Pane() *panel.Pane { return m.pane }

// Camera returns the current camera.
func (m Model) Camera() astro.OrbitCamera { return m.renderer.Camera }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case FrameMsg:
		m.advance(time.Time(msg))
		return m, m.frameCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cam := &m.renderer.Camera
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		cam.Rotate(-rotateStep, 0)
	case "right", "l":
		cam.Rotate(rotateStep, 0)
	case "up", "k":
		cam.Rotate(0, rotateStep)
	case "down", "j":
		cam.Rotate(0, -rotateStep)
	case "+", "=":
		cam.Zoom(zoomInRatio)
	case "-", "_":
		cam.Zoom(zoomOutRatio)
	case "r":
		*cam = astro.NewOrbitCamera()
		m.follow = false

	case "tab":
		m.pane.Next()
	case "shift+tab":
		m.pane.Prev()
	case " ", "enter":
		m.pane.Toggle()
	case "]":
		m.pane.Increment()
	case "[":
		m.pane.Decrement()
	case "p":
		if b := m.pane.Find(FolderView, LabelPaused); b != nil {
			b.Toggle()
		}
	case "P":
		m.showPanel = !m.showPanel

	case "n":
		m.focus = m.cycleFocus(1)
	case "N":
		m.focus = m.cycleFocus(-1)
	case "f":
		m.follow = !m.follow
		if !m.follow {
			cam.Target = astro.Vec3{}
		}
	}
	return m, nil
}

func (m Model) cycleFocus(d int) int {
	n := len(m.sys.Bodies())
	if n == 0 {
		return 0
	}
	return ((m.focus+d)%n + n) % n
}

// advance runs the simulation steps due at now and publishes the frame.
func (m *Model) advance(now time.Time) {
	ctl := m.sys.Controls()
	n := 0
	if ctl.Paused {
		m.clock.Reset()
	} else {
		n = m.clock.Tick(now)
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		m.sys.Step()
	}
	dur := time.Since(start)
	if n > 0 && m.metrics != nil {
		m.metrics.RecordSteps(n, dur)
	}

	bodies := m.sys.Bodies()
	if m.follow && m.focus < len(bodies) {
		m.renderer.Camera.Target = bodies[m.focus].Position
	}
	m.renderer.Camera.Update()
	m.state.Update(*ctl, m.sys.Frames(), dur, bodies)
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sceneWidth := m.width
	var side string
	if m.showPanel && m.width > panelWidth+10 {
		sceneWidth = m.width - panelWidth
		side = m.pane.View(panelWidth)
	}
	sceneHeight := max(1, m.height-headerLines-hudLines-footerLines)

	canvas := m.renderer.Draw(m.sys.Graph(), *m.sys.Controls(), sceneWidth, sceneHeight)
	content := m.renderer.Render(canvas)
	if side != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, side)
	}

	return m.renderLogo() + "\n" + content + "\n" + m.renderHUD() + "\n" + m.renderFooter()
}

func (m Model) renderLogo() string {
	title := "  ✦ L S - O R R E R Y"
	var b strings.Builder
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("   v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(muted.Render("  Planets, moons and periodic comets"))
	return b.String()
}

// logoStops is the title gradient: blue, purple, magenta, pink.
var logoStops = []colorful.Color{
	{R: 59 / 255.0, G: 130 / 255.0, B: 246 / 255.0},
	{R: 139 / 255.0, G: 92 / 255.0, B: 246 / 255.0},
	{R: 217 / 255.0, G: 70 / 255.0, B: 239 / 255.0},
	{R: 236 / 255.0, G: 72 / 255.0, B: 153 / 255.0},
}

// gradientColor returns a hex color for a column of the title gradient.
func gradientColor(col, width int) string {
	if width <= 1 {
		return logoStops[0].Hex()
	}
	t := float64(col) / float64(width-1) * float64(len(logoStops)-1)
	i := min(int(t), len(logoStops)-2)
	return logoStops[i].BlendLuv(logoStops[i+1], t-float64(i)).Clamped().Hex()
}

func (m Model) renderHUD() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	bodies := m.sys.Bodies()
	var line1 string
	if m.focus < len(bodies) {
		b := bodies[m.focus]
		ecl := astro.SceneToEcliptic(b.Position)
		info := fmt.Sprintf("  %s  r=%.1f  λ=%.1f°  β=%.1f°",
			b.Kind, b.Position.Norm(), astro.EclipticLongitude(ecl), astro.EclipticLatitude(ecl))
		if b.Parent != "" {
			info += "  of " + b.Parent
		}
		if b.TrailCapacity > 0 {
			info += fmt.Sprintf("  trail %d/%d", b.TrailLen, b.TrailCapacity)
		}
		if m.follow {
			info += "  [follow]"
		}
		line1 = "  " + nameStyle.Render(b.Name) + dimStyle.Render(info)
	}

	snap := m.state.Snapshot()
	stats := fmt.Sprintf("  frame %d  %.0f steps/s", snap.Frames, snap.StepsPerSec)
	if snap.Controls.Paused {
		stats += "  PAUSED"
	}
	events := m.state.RecentEvents(hudEvents)
	if len(events) > 0 {
		parts := make([]string, 0, len(events))
		for _, ev := range events {
			parts = append(parts, fmt.Sprintf("%s→%s", ev.Control, ev.New))
		}
		stats += "  | " + strings.Join(parts, ", ")
	}
	return line1 + "\n" + dimStyle.Render(stats)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	return dimStyle.Render("  arrows: orbit | +/-: zoom | r: reset | tab: control | space: toggle | [/]: adjust | n/N: body | f: follow | p: pause | P: panel | q: quit")
}
