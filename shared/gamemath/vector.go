package gamemath

import "math"

// Vector is a 2D world-space vector. +Y points up.
type Vector struct {
	X, Y float64
}

// Up is the unit vector used for stomp and approach checks.
var Up = Vector{X: 0, Y: 1}

func (v Vector) Add(o Vector) Vector    { return Vector{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector    { return Vector{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vector) Scale(s float64) Vector { return Vector{X: v.X * s, Y: v.Y * s} }
func (v Vector) Neg() Vector            { return Vector{X: -v.X, Y: -v.Y} }
func (v Vector) Len() float64           { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vector) Equal(o Vector) bool    { return v.X == o.X && v.Y == o.Y }

// Normalized returns the unit vector in the direction of v, or the zero vector.
func (v Vector) Normalized() Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Rect is an axis-aligned box anchored at its bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectAtFeet builds a box whose bottom edge is centred on pos.
func RectAtFeet(pos Vector, w, h float64) Rect {
	return Rect{X: pos.X - w/2, Y: pos.Y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y }
func (r Rect) Top() float64    { return r.Y + r.H }

// Center returns the centre point of the rect.
func (r Rect) Center() Vector {
	return Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vector) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Overlaps reports whether the two rects share a region of non-zero area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}
