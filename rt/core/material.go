package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Material is the packed, GPU friendly form of a surface material. One entry
// per palette index is uploaded as a material table.
type Material struct {
	BaseColor    [4]uint8 // RGBA
	Emissive     [4]uint8 // RGBA
	Roughness    float32
	Metalness    float32
	IOR          float32
	Transparency float32
}

func NewMaterial(baseColor [4]uint8, emissive [4]uint8) Material {
	m := DefaultMaterial()
	m.BaseColor = baseColor
	m.Emissive = emissive
	return m
}

// DefaultMaterial is opaque rough white.
func DefaultMaterial() Material {
	return Material{
		BaseColor:    [4]uint8{255, 255, 255, 255},
		Emissive:     [4]uint8{0, 0, 0, 0},
		Roughness:    1.0,
		Metalness:    0.0,
		IOR:          1.0,
		Transparency: 0.0,
	}
}

// PackColor quantizes a linear color to RGBA8. Components are clamped to [0,1].
func PackColor(c mgl32.Vec3, alpha uint8) [4]uint8 {
	return [4]uint8{quantize(c.X()), quantize(c.Y()), quantize(c.Z()), alpha}
}

// UnpackColor is the inverse of PackColor, ignoring alpha.
func UnpackColor(c [4]uint8) mgl32.Vec3 {
	return mgl32.Vec3{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
