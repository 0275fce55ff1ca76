// Package vec provides the small float vector types used by the simulation.
package vec

import "math"

// Vec2 is a planar vector (X, Y).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales the vector.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D determinant v.X*o.Y - v.Y*o.X.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns the Euclidean length.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// NormalizeOrZero returns the unit vector, or zero for a zero-length vector.
func (v Vec2) NormalizeOrZero() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// DistanceTo returns the distance to another point.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Length()
}

// Vec3 is a point or displacement in world space. Z is up.
type Vec3 struct {
	X, Y, Z float64
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// PlanarDistance returns the distance between v and o ignoring Z.
func (v Vec3) PlanarDistance(o Vec3) float64 {
	return v.XY().DistanceTo(o.XY())
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// Identity is the zero rotation.
var Identity = Quat{W: 1}

// FromRotationZ returns a rotation of angle radians around the Z axis.
func FromRotationZ(angle float64) Quat {
	s, c := math.Sincos(angle / 2)
	return Quat{Z: s, W: c}
}

// AngleZ returns the rotation angle around Z in (-π, π].
func (q Quat) AngleZ() float64 {
	a := 2 * math.Atan2(q.Z, q.W)
	switch {
	case a > math.Pi:
		a -= 2 * math.Pi
	case a <= -math.Pi:
		a += 2 * math.Pi
	}
	return a
}
