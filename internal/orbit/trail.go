package orbit

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/scene"
)

// TrailBuffer is a fixed-capacity history of a comet's recent positions,
// viewed newest first. Index 0 is the latest sample.
type TrailBuffer struct {
	buf   []astro.Vec3 // ring storage, len == capacity
	head  int          // slot holding the newest sample
	n     int
	color uint32

	ramp      []float32 // RGBA per slot, alpha fading from 1 toward 0
	rampStale bool      // ramp not yet copied into the mesh
}

// NewTrailBuffer creates an empty trail. Capacities below 1 are raised to 1.
func NewTrailBuffer(capacity int, color uint32) *TrailBuffer {
	if capacity < 1 {
		capacity = 1
	}
	t := &TrailBuffer{
		buf:   make([]astro.Vec3, capacity),
		color: color,
	}
	t.buildRamp()
	return t
}

// Capacity returns the number of samples the trail holds.
func (t *TrailBuffer) Capacity() int { return len(t.buf) }

// Len returns the number of samples recorded so far, at most Capacity.
func (t *TrailBuffer) Len() int { return t.n }

// Color returns the trail's 0xRRGGBB color.
func (t *TrailBuffer) Color() uint32 { return t.color }

// Push records p as the newest sample, evicting the oldest when full.
func (t *TrailBuffer) Push(p astro.Vec3) {
	c := len(t.buf)
	t.head = (t.head - 1 + c) % c
	t.buf[t.head] = p
	if t.n < c {
		t.n++
	}
}

// At returns the i-th newest sample. Slots never written read as the origin.
func (t *TrailBuffer) At(i int) astro.Vec3 {
	if i < 0 || i >= t.n {
		return astro.Vec3{}
	}
	return t.buf[(t.head+i)%len(t.buf)]
}

// Positions returns the recorded samples, newest first.
func (t *TrailBuffer) Positions() []astro.Vec3 {
	out := make([]astro.Vec3, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// Alpha returns the opacity of slot i: 1 for the newest, fading linearly.
func (t *TrailBuffer) Alpha(i int) float64 {
	return 1 - float64(i)/float64(len(t.buf))
}

// Colors returns a copy of the per-slot RGBA ramp.
func (t *TrailBuffer) Colors() []float32 {
	out := make([]float32, len(t.ramp))
	copy(out, t.ramp)
	return out
}

// Resize changes the capacity, keeping the newest min(Len, capacity) samples.
// The color ramp is regenerated for the new capacity. It reports whether the
// capacity changed. A nil trail is ignored.
func (t *TrailBuffer) Resize(capacity int) bool {
	if t == nil {
		return false
	}
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(t.buf) {
		return false
	}

	keep := min(t.n, capacity)
	buf := make([]astro.Vec3, capacity)
	for i := 0; i < keep; i++ {
		buf[i] = t.At(i)
	}
	t.buf = buf
	t.head = 0
	t.n = keep
	t.buildRamp()
	return true
}

// Fill writes the trail into a point cloud sized to match, zero-filling slots
// not yet recorded, and marks both buffers dirty.
func (t *TrailBuffer) Fill(c *scene.PointCloud) {
	if t == nil || c == nil {
		return
	}
	capacity := len(t.buf)
	if c.Len() != capacity {
		c.Resize(capacity)
		t.rampStale = true
	}
	for i := 0; i < capacity; i++ {
		p := t.At(i)
		c.Positions[i*3] = float32(p.X)
		c.Positions[i*3+1] = float32(p.Y)
		c.Positions[i*3+2] = float32(p.Z)
	}
	if t.rampStale {
		copy(c.Colors, t.ramp)
		t.rampStale = false
	}
	c.MarkDirty()
}

func (t *TrailBuffer) buildRamp() {
	r, g, b := splitRGB(t.color)
	capacity := len(t.buf)
	t.ramp = make([]float32, capacity*4)
	for i := 0; i < capacity; i++ {
		t.ramp[i*4] = r
		t.ramp[i*4+1] = g
		t.ramp[i*4+2] = b
		t.ramp[i*4+3] = float32(t.Alpha(i))
	}
	t.rampStale = true
}

// splitRGB converts 0xRRGGBB into components in [0,1].
func splitRGB(c uint32) (r, g, b float32) {
	return float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255
}
