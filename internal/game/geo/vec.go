// Package geo provides the small amount of vector and angle math the
// simulation needs: positions, headings, and rate-limited turning.
package geo

import "math"

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero reports whether v has no meaningful magnitude. Used to detect a
// stationary agent, where a movement heading is undefined.
func (v Vec3) IsZero() bool {
	const eps = 1e-9
	return v.Length() < eps
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// no magnitude.
//
// Postcondition: result.Length() is 1 or 0.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance returns the straight-line distance between a and b.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Length()
}

// Heading returns the yaw angle in radians of the direction from `from` to
// `to`, measured in the ground (XZ) plane.
//
// Postcondition: result is in (-Pi, Pi].
func Heading(from, to Vec3) float64 {
	d := to.Sub(from)
	return math.Atan2(d.X, d.Z)
}

// AngleDiff returns the signed smallest rotation from yaw a to yaw b.
//
// Postcondition: result is in (-Pi, Pi].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// TurnToward advances yaw toward target by at most rate*dt radians and
// reports whether the resulting yaw is within tolerance of target. Rotation
// is always rate-limited; the facing never snaps.
//
// Precondition: rate >= 0 and dt >= 0.
// Postcondition: |AngleDiff(result, target)| <= |AngleDiff(yaw, target)|.
func TurnToward(yaw, target, rate, dt, tolerance float64) (float64, bool) {
	diff := AngleDiff(yaw, target)
	step := rate * dt
	if math.Abs(diff) <= step {
		yaw = target
	} else if diff > 0 {
		yaw += step
	} else {
		yaw -= step
	}
	return yaw, math.Abs(AngleDiff(yaw, target)) <= tolerance
}
