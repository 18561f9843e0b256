package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Depth assigned to things drawn at infinity.
const farDepth = math.MaxFloat64

// cell is one character of the canvas.
type cell struct {
	ch    rune
	color string // "#RRGGBB", empty for the default foreground
	depth float64
	bold  bool
}

// Canvas is a depth-tested character grid.
type Canvas struct {
	width, height int
	cells         []cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', depth: math.Inf(1)}
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// At returns the rune and color at (x, y).
func (c *Canvas) At(x, y int) (rune, string) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0, ""
	}
	cl := c.cells[y*c.width+x]
	return cl.ch, cl.color
}

// Set writes ch at (x, y) when depth is not behind what is already there.
func (c *Canvas) Set(x, y int, ch rune, color string, depth float64) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	cl := &c.cells[y*c.width+x]
	if depth > cl.depth {
		return false
	}
	*cl = cell{ch: ch, color: color, depth: depth}
	return true
}

// Text writes s starting at (x, y) over blank, star and orbit cells only.
func (c *Canvas) Text(x, y int, s string, color string) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range s {
		if x >= c.width {
			return
		}
		if x >= 0 {
			cl := &c.cells[y*c.width+x]
			if cl.ch == ' ' || cl.depth == farDepth || cl.ch == '·' {
				*cl = cell{ch: r, color: color, depth: cl.depth, bold: true}
			}
		}
		x++
	}
}

// Renderer draws a scene graph through an orbit camera onto a Canvas and
// turns canvases into styled strings.
type Renderer struct {
	Camera     astro.OrbitCamera
	Stars      astro.StarField
	Background colorful.Color

	styles *lru.Cache // color hex -> lipgloss.Style
}

// NewRenderer creates a renderer with a style cache of the given size.
func NewRenderer(stars astro.StarField, cacheSize int) (*Renderer, error) {
	styles, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		Camera:     astro.NewOrbitCamera(),
		Stars:      stars,
		Background: colorful.Color{R: 0, G: 0, B: 0},
		styles:     styles,
	}, nil
}

// labelPos is a body's screen position for label placement.
type labelPos struct {
	x, y  int
	name  string
	color string
}

// Draw renders the visible parts of g.
func (r *Renderer) Draw(g *scene.Graph, ctl orbit.Controls, width, height int) *Canvas {
	c := NewCanvas(width, height)
	if width == 0 || height == 0 {
		return c
	}

	if ctl.ShowStars {
		r.drawStars(c)
	}

	var labels []labelPos
	g.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		switch n.Kind {
		case scene.KindLine:
			r.drawLine(c, n)
		case scene.KindPoints:
			r.drawPoints(c, n)
		case scene.KindSphere:
			if lp, ok := r.drawSphere(c, n); ok {
				labels = append(labels, lp)
			}
		}
		return true
	})

	if ctl.ShowLabels {
		for _, lp := range labels {
			c.Text(lp.x, lp.y, lp.name, lp.color)
		}
	}
	return c
}

func (r *Renderer) drawStars(c *Canvas) {
	for _, s := range r.Stars.Stars {
		p, ok := r.Camera.ProjectDirection(s.Pos, c.width, c.height)
		if !ok {
			continue
		}
		glyph := starGlyph(s.Mag)
		if glyph == ' ' {
			continue
		}
		x, y := p.Cell()
		level := 1 - s.Mag/5
		star := r.Background.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.25+0.5*level)
		c.Set(x, y, glyph, star.Hex(), farDepth)
	}
}

// starGlyph returns a subtle glyph based on star magnitude.
// Brighter stars (lower magnitude) get slightly more prominent glyphs.
func starGlyph(mag float64) rune {
	switch {
	case mag <= 0.5:
		return '∗'
	case mag <= 2.0:
		return '·'
	case mag <= 3.0:
		return '˙'
	default:
		return ' ' // Very dim: skip to avoid clutter
	}
}

func (r *Renderer) drawLine(c *Canvas, n *scene.Node) {
	if len(n.Line) < 2 {
		return
	}
	col := r.fade(n.Material.Color, n.Material.Opacity)
	prev, prevOK := r.Camera.Project(n.LocalToWorld(n.Line[0]), c.width, c.height)
	for _, pt := range n.Line[1:] {
		cur, curOK := r.Camera.Project(n.LocalToWorld(pt), c.width, c.height)
		if prevOK || curOK {
			r.segment(c, prev, cur, col)
		}
		prev, prevOK = cur, curOK
	}
}

// segment plots dots between two projections, interpolating depth.
func (r *Renderer) segment(c *Canvas, a, b astro.Projection, color string) {
	if !r.inRange(a.Depth) || !r.inRange(b.Depth) {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	steps = max(1, min(steps, c.width+c.height))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Floor(a.X + (b.X-a.X)*t))
		y := int(math.Floor(a.Y + (b.Y-a.Y)*t))
		c.Set(x, y, '·', color, a.Depth+(b.Depth-a.Depth)*t)
	}
}

func (r *Renderer) inRange(depth float64) bool {
	return depth >= r.Camera.Near && depth <= r.Camera.Far
}

func (r *Renderer) drawPoints(c *Canvas, n *scene.Node) {
	cloud := n.Cloud
	if cloud == nil {
		return
	}
	cloud.Upload()
	opacity := n.Material.Opacity
	if opacity == 0 {
		opacity = 1
	}
	for i := 0; i < cloud.Len(); i++ {
		pos, rgba := cloud.Point(i)
		alpha := float64(rgba[3]) * opacity
		if alpha <= 0 || pos.IsZero() {
			continue
		}
		p, ok := r.Camera.Project(n.LocalToWorld(pos), c.width, c.height)
		if !ok {
			continue
		}
		base := colorful.Color{R: float64(rgba[0]), G: float64(rgba[1]), B: float64(rgba[2])}
		col := r.Background.BlendRgb(base, alpha).Clamped()
		x, y := p.Cell()
		c.Set(x, y, trailGlyph(alpha), col.Hex(), p.Depth)
	}
}

func trailGlyph(alpha float64) rune {
	switch {
	case alpha > 0.6:
		return '•'
	case alpha > 0.3:
		return '∙'
	default:
		return '·'
	}
}

func (r *Renderer) drawSphere(c *Canvas, n *scene.Node) (labelPos, bool) {
	p, ok := r.Camera.Project(n.WorldPosition(), c.width, c.height)
	if !ok {
		return labelPos{}, false
	}
	col := r.fade(n.Material.Color, n.Material.Opacity)
	cx, cy := p.Cell()
	radius := n.WorldScale()
	rows := r.Camera.ProjectedRadius(radius, p.Depth, c.height)

	if rows < 0.75 {
		glyph := '•'
		if radius >= 1 {
			glyph = '●'
		}
		if n.Name == "Sun" {
			glyph = '☉'
		}
		c.Set(cx, cy, glyph, col, p.Depth)
		return labelPos{x: cx + 2, y: cy, name: n.Name, color: col}, true
	}

	rows = math.Min(rows, float64(c.height))
	cols := rows * astro.CellAspect
	front := p.Depth - radius
	for dy := -int(rows); dy <= int(rows); dy++ {
		for dx := -int(cols); dx <= int(cols); dx++ {
			fx, fy := float64(dx)/cols, float64(dy)/rows
			d2 := fx*fx + fy*fy
			if d2 > 1 {
				continue
			}
			glyph := '█'
			if d2 > 0.6 {
				glyph = '▓'
			}
			c.Set(cx+dx, cy+dy, glyph, col, front+radius*d2)
		}
	}
	return labelPos{x: cx + int(cols) + 2, y: cy, name: n.Name, color: col}, true
}

// fade blends a 0xRRGGBB color toward the background by opacity.
func (r *Renderer) fade(rgb uint32, opacity float64) string {
	base := hexColor(rgb)
	if opacity <= 0 || opacity >= 1 {
		return base.Hex()
	}
	return r.Background.BlendRgb(base, opacity).Clamped().Hex()
}

func hexColor(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64((rgb>>16)&0xFF) / 255,
		G: float64((rgb>>8)&0xFF) / 255,
		B: float64(rgb&0xFF) / 255,
	}
}

// style returns the cached foreground style for a color.
func (r *Renderer) style(color string, bold bool) lipgloss.Style {
	key := color
	if bold {
		key += "!"
	}
	if s, ok := r.styles.Get(key); ok {
		return s.(lipgloss.Style)
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(bold)
	r.styles.Add(key, s)
	return s
}

// Render converts the canvas to a string, styling runs of same-colored cells
// together.
func (r *Renderer) Render(c *Canvas) string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := 0; x < len(row); {
			cl := row[x]
			if cl.ch == ' ' || cl.color == "" {
				b.WriteRune(cl.ch)
				x++
				continue
			}
			run.Reset()
			end := x
			for end < len(row) && row[end].color == cl.color && row[end].bold == cl.bold && row[end].ch != ' ' {
				run.WriteRune(row[end].ch)
				end++
			}
			b.WriteString(r.style(cl.color, cl.bold).Render(run.String()))
			x = end
		}
		if y < c.height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
