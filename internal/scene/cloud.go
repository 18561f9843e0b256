package scene

import "github.com/litescript/ls-orrery/internal/astro"

// PointCloud holds flat position (xyz) and color (rgba) buffers for a set of
// points, plus dirty flags telling the renderer which buffers changed.
type PointCloud struct {
	Positions []float32 // 3 per point
	Colors    []float32 // 4 per point, components in [0,1]
	Size      float64   // Point size hint

	PositionsDirty bool
	ColorsDirty    bool
}

// NewPointCloud allocates a zero-filled cloud of n points.
func NewPointCloud(n int) *PointCloud {
	c := &PointCloud{Size: 0.5}
	c.Resize(n)
	return c
}

// Len returns the number of points.
func (c *PointCloud) Len() int { return len(c.Positions) / 3 }

// Resize replaces both buffers with freshly zeroed ones of n points and marks
// them dirty. Callers repopulate the contents.
func (c *PointCloud) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.Positions = make([]float32, n*3)
	c.Colors = make([]float32, n*4)
	c.MarkDirty()
}

// Point returns the position and RGBA color of point i.
func (c *PointCloud) Point(i int) (astro.Vec3, [4]float32) {
	p := c.Positions[i*3 : i*3+3]
	col := c.Colors[i*4 : i*4+4]
	return astro.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])},
		[4]float32{col[0], col[1], col[2], col[3]}
}

// MarkDirty flags both buffers for upload.
func (c *PointCloud) MarkDirty() {
	c.PositionsDirty = true
	c.ColorsDirty = true
}

// Upload clears the dirty flags and reports which buffers had changed.
func (c *PointCloud) Upload() (positions, colors bool) {
	positions, colors = c.PositionsDirty, c.ColorsDirty
	c.PositionsDirty = false
	c.ColorsDirty = false
	return positions, colors
}
