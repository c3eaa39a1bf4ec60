// Package physics provides vector math, collision helpers and distance utilities.
package physics

import "math"

// Epsilon is the floor applied to lengths before dividing by them.
const Epsilon = 1e-6

// FallbackNormal is used when the query point coincides with the shape,
// pointing up the table (negative Y).
var FallbackNormal = Vec2{X: 0, Y: -1}

// Vec2 is a 2D vector in logical playfield units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSquared returns the squared magnitude (avoids the sqrt in comparisons).
func (v Vec2) LenSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// FromAngle returns the point at distance length from origin in direction angle (radians).
func FromAngle(origin Vec2, angle, length float64) Vec2 {
	return Vec2{
		X: origin.X + math.Cos(angle)*length,
		Y: origin.Y + math.Sin(angle)*length,
	}
}

// ClampMagnitude scales v down so its magnitude does not exceed max.
// Vectors already within the limit are returned unchanged.
func ClampMagnitude(v Vec2, max float64) Vec2 {
	s2 := v.LenSquared()
	if s2 <= max*max {
		return v
	}
	m := math.Sqrt(s2)
	if m < Epsilon {
		m = Epsilon
	}
	return v.Scale(max / m)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Contact describes the relation between a point and the closest point of a shape.
type Contact struct {
	Point  Vec2    // Closest point on the shape
	Normal Vec2    // Unit vector from Point towards the query point
	Dist   float64 // Distance from Point to the query point
	T      float64 // Segment parameter in [0, 1] (segments only)
}

// ClosestOnSegment returns the closest point on the finite segment a-b to p,
// along with the outward normal and distance.
// A zero-length segment degenerates to its endpoint.
func ClosestOnSegment(p, a, b Vec2) Contact {
	ab := b.Sub(a)
	len2 := ab.LenSquared()
	if len2 < Epsilon {
		len2 = Epsilon
	}
	t := Clamp(p.Sub(a).Dot(ab)/len2, 0, 1)
	closest := a.Add(ab.Scale(t))

	normal, dist := unitOrFallback(p.Sub(closest))
	return Contact{
		Point:  closest,
		Normal: normal,
		Dist:   dist,
		T:      t,
	}
}

// CircleContact returns the contact of point p against the centre c of a circle.
// Normal points from c to p.
func CircleContact(p, c Vec2) Contact {
	normal, dist := unitOrFallback(p.Sub(c))
	return Contact{
		Point:  c,
		Normal: normal,
		Dist:   dist,
	}
}

// unitOrFallback normalises n and returns its length. Lengths below
// Epsilon yield FallbackNormal instead of dividing.
func unitOrFallback(n Vec2) (Vec2, float64) {
	dist := n.Len()
	if dist < Epsilon {
		return FallbackNormal, dist
	}
	return n.Scale(1 / dist), dist
}

// Reflect removes the inward component of v along unit normal n and
// adds it back scaled by restitution. Returns v unchanged when v is not
// moving into the surface.
func Reflect(v, n Vec2, restitution float64) (Vec2, bool) {
	vn := v.Dot(n)
	if vn >= 0 {
		return v, false
	}
	return v.Sub(n.Scale((1 + restitution) * vn)), true
}
