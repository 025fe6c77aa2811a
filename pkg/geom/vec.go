// Package geom provides the 2D geometry kernel used by the ground
// generators: vectors, polygons, offsetting, clipping and a periodic
// Voronoi partitioner.
package geom

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z-component of the 3D cross product.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Lerp returns the linear interpolation between v and other at t.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Less reports whether v orders before other lexicographically (x, then y).
func (v Vec2) Less(other Vec2) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	return v.Y < other.Y
}
