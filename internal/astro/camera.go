package astro

import "math"

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// maxPolar keeps the camera off the poles so the basis stays well defined.
const maxPolar = math.Pi/2 - 0.01

var worldUp = Vec3{Y: 1}

// OrbitCamera is a perspective camera that orbits a target point on a sphere
// described by distance, azimuth and elevation.
type OrbitCamera struct {
	Target    Vec3
	Distance  float64
	Azimuth   float64 // Radians around the Y axis, 0 looks down -Z
	Elevation float64 // Radians above the XZ plane

	FOVDeg float64 // Vertical field of view
	Near   float64
	Far    float64

	MinDistance float64
	MaxDistance float64

	EnableDamping bool
	DampingFactor float64

	// Pending rotation not yet applied by Update.
	azDelta float64
	elDelta float64
}

// NewOrbitCamera returns a camera looking at the origin from (0, 5, 100) with
// a 35° field of view and a zoom range of [20, 200].
func NewOrbitCamera() OrbitCamera {
	c := OrbitCamera{
		FOVDeg:        35,
		Near:          0.1,
		Far:           400,
		MinDistance:   20,
		MaxDistance:   200,
		EnableDamping: true,
		DampingFactor: 0.05,
	}
	c.LookFrom(Vec3{Y: 5, Z: 100})
	return c
}

// LookFrom places the eye at p (relative to the target) in spherical terms.
func (c *OrbitCamera) LookFrom(p Vec3) {
	c.Distance = p.Norm()
	c.Azimuth = math.Atan2(p.X, p.Z)
	c.Elevation = math.Atan2(p.Y, math.Hypot(p.X, p.Z))
	c.azDelta, c.elDelta = 0, 0
	c.clamp()
}

// Rotate requests an orbit by dAz/dEl radians. With damping enabled the
// rotation is spread across subsequent Update calls.
func (c *OrbitCamera) Rotate(dAz, dEl float64) {
	if !c.EnableDamping {
		c.Azimuth += dAz
		c.Elevation += dEl
		c.clamp()
		return
	}
	c.azDelta += dAz
	c.elDelta += dEl
}

// Zoom scales the eye distance, clamped to [MinDistance, MaxDistance].
func (c *OrbitCamera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
	c.clamp()
}

// Update applies one damping step of any pending rotation.
func (c *OrbitCamera) Update() {
	if !c.EnableDamping {
		return
	}
	c.Azimuth += c.azDelta * c.DampingFactor
	c.Elevation += c.elDelta * c.DampingFactor
	c.azDelta *= 1 - c.DampingFactor
	c.elDelta *= 1 - c.DampingFactor
	if math.Abs(c.azDelta) < 1e-6 {
		c.azDelta = 0
	}
	if math.Abs(c.elDelta) < 1e-6 {
		c.elDelta = 0
	}
	c.clamp()
}

// Settled reports whether no rotation is pending.
func (c OrbitCamera) Settled() bool {
	return c.azDelta == 0 && c.elDelta == 0
}

func (c *OrbitCamera) clamp() {
	if c.MinDistance > 0 && c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	if c.Elevation > maxPolar {
		c.Elevation = maxPolar
	} else if c.Elevation < -maxPolar {
		c.Elevation = -maxPolar
	}
}

// Eye returns the camera position in world coordinates.
func (c OrbitCamera) Eye() Vec3 {
	cosEl := math.Cos(c.Elevation)
	offset := Vec3{
		X: c.Distance * cosEl * math.Sin(c.Azimuth),
		Y: c.Distance * math.Sin(c.Elevation),
		Z: c.Distance * cosEl * math.Cos(c.Azimuth),
	}
	return c.Target.Add(offset)
}

// basis returns the forward, right and up unit vectors.
func (c OrbitCamera) basis() (fwd, right, up Vec3) {
	fwd = c.Target.Sub(c.Eye()).Normalized()
	right = fwd.Cross(worldUp)
	if right.Norm() < 1e-9 {
		right = Vec3{X: 1}
	}
	right = right.Normalized()
	up = right.Cross(fwd).Normalized()
	return fwd, right, up
}

// Projection is a world point mapped onto a width×height cell grid.
type Projection struct {
	X, Y  float64 // Cell coordinates, origin top-left
	Depth float64 // Distance along the view direction
}

// Cell returns the integer cell containing the projection.
func (p Projection) Cell() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Project maps world point p onto a width×height cell grid. ok is false when
// the point lies outside the near/far planes or the field of view.
func (c OrbitCamera) Project(p Vec3, width, height int) (Projection, bool) {
	fwd, right, up := c.basis()
	rel := p.Sub(c.Eye())
	depth := rel.Dot(fwd)
	if depth < c.Near || depth > c.Far {
		return Projection{Depth: depth}, false
	}
	return c.toCells(rel.Dot(right), rel.Dot(up), depth, width, height)
}

// ProjectDirection maps a direction at infinity (e.g. a background star) onto
// the grid, ignoring the eye position and the far plane.
func (c OrbitCamera) ProjectDirection(dir Vec3, width, height int) (Projection, bool) {
	fwd, right, up := c.basis()
	d := dir.Normalized()
	depth := d.Dot(fwd)
	if depth <= 0 {
		return Projection{}, false
	}
	return c.toCells(d.Dot(right), d.Dot(up), depth, width, height)
}

func (c OrbitCamera) toCells(x, y, depth float64, width, height int) (Projection, bool) {
	if width <= 0 || height <= 0 {
		return Projection{Depth: depth}, false
	}
	tanHalf := math.Tan(degToRad(c.FOVDeg) / 2)
	aspect := float64(width) / (float64(height) * CellAspect)

	ndcX := x / (depth * tanHalf * aspect)
	ndcY := y / (depth * tanHalf)

	proj := Projection{
		X:     (ndcX + 1) / 2 * float64(width),
		Y:     (1 - ndcY) / 2 * float64(height),
		Depth: depth,
	}
	ok := ndcX >= -1 && ndcX < 1 && ndcY > -1 && ndcY <= 1
	return proj, ok
}

// ProjectedRadius returns how many rows a sphere of the given world radius
// spans at depth on a grid of the given height.
func (c OrbitCamera) ProjectedRadius(radius, depth float64, height int) float64 {
	if depth <= 0 {
		return 0
	}
	tanHalf := math.Tan(degToRad(c.FOVDeg) / 2)
	return radius / (depth * tanHalf) * float64(height) / 2
}
