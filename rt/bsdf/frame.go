package bsdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is an orthonormal basis around a shading normal.
type Frame struct {
	T, B, N mgl32.Vec3
}

// NewFrame builds a basis around the unit normal n without branching on
// degenerate tangents (Duff et al. 2017).
func NewFrame(n mgl32.Vec3) Frame {
	sign := float32(math.Copysign(1, float64(n.Z())))
	a := -1 / (sign + n.Z())
	b := n.X() * n.Y() * a
	return Frame{
		T: mgl32.Vec3{1 + sign*n.X()*n.X()*a, sign * b, -sign * n.X()},
		B: mgl32.Vec3{b, sign + n.Y()*n.Y()*a, -n.Y()},
		N: n,
	}
}

func (f Frame) ToLocal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.Dot(f.T), v.Dot(f.B), v.Dot(f.N)}
}

func (f Frame) ToWorld(v mgl32.Vec3) mgl32.Vec3 {
	return f.T.Mul(v.X()).Add(f.B.Mul(v.Y())).Add(f.N.Mul(v.Z()))
}
