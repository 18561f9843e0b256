package astro

import "math"

// DefaultOrbitSegments is the polyline resolution used for orbit lines.
const DefaultOrbitSegments = 128

// MinorAxis returns the semi-minor axis b = a·sqrt(1 − e²) of an ellipse with
// semi-major axis a and eccentricity e.
func MinorAxis(a, e float64) float64 {
	return a * math.Sqrt(1-e*e)
}

// EllipsePoint returns the position at phase angle theta on an ellipse lying
// in the XZ plane with axes a (along X) and b (along Z).
func EllipsePoint(theta, a, b float64) Vec3 {
	return Vec3{
		X: math.Cos(theta) * a,
		Z: math.Sin(theta) * b,
	}
}

// InclinedEllipsePoint returns the position at phase angle theta on an ellipse
// whose plane is tilted by inclination radians about the X axis. The minor
// axis component is split between Y and Z.
func InclinedEllipsePoint(theta, a, b, inclination float64) Vec3 {
	s := math.Sin(theta) * b
	return Vec3{
		X: math.Cos(theta) * a,
		Y: s * math.Sin(inclination),
		Z: s * math.Cos(inclination),
	}
}

// SampleEllipse returns segments+1 points along an inclined ellipse, closing
// the loop (the last point equals the first). An inclination of zero gives
// the coplanar ellipse.
func SampleEllipse(a, b, inclination float64, segments int) []Vec3 {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Vec3, 0, segments+1)
	for j := 0; j <= segments; j++ {
		theta := float64(j) / float64(segments) * 2 * math.Pi
		pts = append(pts, InclinedEllipsePoint(theta, a, b, inclination))
	}
	return pts
}
