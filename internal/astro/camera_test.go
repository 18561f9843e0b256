package astro

import (
	"math"
	"testing"
)

func TestNewOrbitCamera(t *testing.T) {
	c := NewOrbitCamera()

	eye := c.Eye()
	if !vecNear(eye, Vec3{Y: 5, Z: 100}, 1e-9) {
		t.Errorf("Eye() = %v, want (0, 5, 100)", eye)
	}
	if c.FOVDeg != 35 {
		t.Errorf("FOVDeg = %v, want 35", c.FOVDeg)
	}
	if c.MinDistance != 20 || c.MaxDistance != 200 {
		t.Errorf("zoom range = [%v, %v], want [20, 200]", c.MinDistance, c.MaxDistance)
	}
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		want   float64
	}{
		{"zoom far out", 10, 200},
		{"zoom far in", 0.01, 20},
		{"ignore non-positive", -1, math.Hypot(5, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.Zoom(tt.factor)
			if math.Abs(c.Distance-tt.want) > 1e-9 {
				t.Errorf("Distance = %v, want %v", c.Distance, tt.want)
			}
		})
	}
}

func TestOrbitCameraDampedRotate(t *testing.T) {
	c := NewOrbitCamera()
	start := c.Azimuth

	c.Rotate(0.5, 0)
	if c.Azimuth != start {
		t.Fatalf("damped rotate applied immediately")
	}

	for i := 0; i < 2000 && !c.Settled(); i++ {
		c.Update()
	}
	if !c.Settled() {
		t.Fatal("camera never settled")
	}
	if math.Abs(c.Azimuth-start-0.5) > 1e-4 {
		t.Errorf("total rotation = %v, want 0.5", c.Azimuth-start)
	}
}

func TestOrbitCameraElevationClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.EnableDamping = false

	c.Rotate(0, 10)
	if c.Elevation > math.Pi/2 {
		t.Errorf("Elevation = %v, exceeds pole", c.Elevation)
	}
	c.Rotate(0, -20)
	if c.Elevation < -math.Pi/2 {
		t.Errorf("Elevation = %v, exceeds pole", c.Elevation)
	}
}

func TestOrbitCameraProject(t *testing.T) {
	c := NewOrbitCamera()
	const w, h = 80, 24

	p, ok := c.Project(Vec3{}, w, h)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(p.X-w/2) > 1e-9 || math.Abs(p.Y-h/2) > 1e-9 {
		t.Errorf("origin projected to (%v, %v), want center", p.X, p.Y)
	}
	if math.Abs(p.Depth-c.Distance) > 1e-9 {
		t.Errorf("Depth = %v, want %v", p.Depth, c.Distance)
	}

	right, ok := c.Project(Vec3{X: 10}, w, h)
	if !ok || right.X <= p.X {
		t.Errorf("+X should project right of center: %v ok=%v", right, ok)
	}

	up, ok := c.Project(Vec3{Y: 5}, w, h)
	if !ok || up.Y >= p.Y {
		t.Errorf("+Y should project above center: %v ok=%v", up, ok)
	}

	if _, ok := c.Project(Vec3{Z: 200}, w, h); ok {
		t.Error("point behind the camera should not be visible")
	}
	if _, ok := c.Project(Vec3{Z: -500}, w, h); ok {
		t.Error("point past the far plane should not be visible")
	}
	if _, ok := c.Project(Vec3{}, 0, 0); ok {
		t.Error("empty grid should not accept projections")
	}
}

func TestOrbitCameraProjectDirection(t *testing.T) {
	c := NewOrbitCamera()

	if _, ok := c.ProjectDirection(Vec3{Z: -700}, 80, 24); !ok {
		t.Error("star ahead of the camera should project")
	}
	if _, ok := c.ProjectDirection(Vec3{Z: 700}, 80, 24); ok {
		t.Error("star behind the camera should not project")
	}
}

func TestProjectedRadius(t *testing.T) {
	c := NewOrbitCamera()

	near := c.ProjectedRadius(5, 50, 24)
	far := c.ProjectedRadius(5, 100, 24)
	if near <= far {
		t.Errorf("nearer sphere should look larger: near=%v far=%v", near, far)
	}
	if got := c.ProjectedRadius(5, 0, 24); got != 0 {
		t.Errorf("zero depth radius = %v, want 0", got)
	}
}
