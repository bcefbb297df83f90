package main

import "math"

// vec2 is a 2D point or direction in world space.
type vec2 struct {
	X, Y float64
}

func (v vec2) add(o vec2) vec2 { return vec2{v.X + o.X, v.Y + o.Y} }

func (v vec2) sub(o vec2) vec2 { return vec2{v.X - o.X, v.Y - o.Y} }

func (v vec2) scale(s float64) vec2 { return vec2{v.X * s, v.Y * s} }

func (v vec2) length() float64 { return math.Hypot(v.X, v.Y) }

// normalized returns the unit-length vector pointing the same way as v.
// The zero vector is returned unchanged.
func (v vec2) normalized() vec2 {
	l := v.length()
	if l == 0 {
		return v
	}
	return vec2{v.X / l, v.Y / l}
}

// finite reports whether both components are normal floating-point values.
func (v vec2) finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// chebyshev returns max(|dx|, |dy|) between two points. The nearest-candidate
// policy uses it to test whether a terminal point lies inside the square
// silhouette of a cell.
func chebyshev(a, b vec2) float64 {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}
