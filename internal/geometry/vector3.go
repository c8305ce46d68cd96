// Package geometry holds the 3D vector type shared by the Target, Node,
// Network, and Client processes.
package geometry

import "math"

// Vector3 is a point or displacement in ℝ³.
type Vector3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3) Distance(o Vector3) float64 {
	return v.Sub(o).Norm()
}
