// Package bsdf holds the scattering models behind the built-in surface
// materials. All directions are expressed in the local shading frame, where
// the surface normal is +Z and both wo and wi point away from the surface.
package bsdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const invPi = float32(1 / math.Pi)

// Sample is one direction drawn from a BSDF.
type Sample struct {
	Wi       mgl32.Vec3
	F        mgl32.Vec3
	PDF      float32
	Specular bool
}

// Weight is the Monte Carlo throughput f * |cos(wi)| / pdf.
func (s Sample) Weight() mgl32.Vec3 {
	if s.PDF <= 0 {
		return mgl32.Vec3{}
	}
	return s.F.Mul(AbsCosTheta(s.Wi) / s.PDF)
}

type BSDF interface {
	// Evaluate returns f(wo, wi). Delta lobes evaluate to zero.
	Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3
	// PDF is the solid angle density Sample would draw wi with.
	PDF(wo, wi mgl32.Vec3) float32
	// Sample draws wi given two uniform numbers in [0,1).
	Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool)
	// Emission is the radiance the surface emits on its own.
	Emission() mgl32.Vec3
}

func CosTheta(w mgl32.Vec3) float32    { return w.Z() }
func AbsCosTheta(w mgl32.Vec3) float32 { return abs32(w.Z()) }

func SameHemisphere(a, b mgl32.Vec3) bool {
	return a.Z()*b.Z() > 0
}

// Reflect mirrors w about the normal.
func Reflect(w mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-w.X(), -w.Y(), w.Z()}
}

// ReflectAbout mirrors w about an arbitrary unit vector h.
func ReflectAbout(w, h mgl32.Vec3) mgl32.Vec3 {
	return w.Mul(-1).Add(h.Mul(2 * w.Dot(h)))
}

// Refract bends w through the interface. eta is the index of refraction of the
// side the normal points away from, relative to the side it points into.
// Returns false on total internal reflection.
func Refract(w mgl32.Vec3, eta float32) (mgl32.Vec3, bool) {
	n := mgl32.Vec3{0, 0, 1}
	cosI := w.Z()
	if cosI < 0 {
		eta = 1 / eta
		cosI = -cosI
		n = mgl32.Vec3{0, 0, -1}
	}
	sin2I := max(0, 1-cosI*cosI)
	sin2T := sin2I / (eta * eta)
	if sin2T >= 1 {
		return mgl32.Vec3{}, false
	}
	cosT := sqrt32(1 - sin2T)
	return w.Mul(-1 / eta).Add(n.Mul(cosI/eta - cosT)), true
}

// FresnelDielectric is the unpolarized reflectance of a dielectric interface.
func FresnelDielectric(cosI, eta float32) float32 {
	cosI = mgl32.Clamp(cosI, -1, 1)
	if cosI < 0 {
		eta = 1 / eta
		cosI = -cosI
	}
	sin2I := 1 - cosI*cosI
	sin2T := sin2I / (eta * eta)
	if sin2T >= 1 {
		return 1
	}
	cosT := sqrt32(1 - sin2T)
	parl := (eta*cosI - cosT) / (eta*cosI + cosT)
	perp := (cosI - eta*cosT) / (cosI + eta*cosT)
	return (parl*parl + perp*perp) / 2
}

// FresnelSchlick approximates reflectance for a normal incidence color f0.
func FresnelSchlick(f0 mgl32.Vec3, cosD float32) mgl32.Vec3 {
	m := 1 - mgl32.Clamp(cosD, 0, 1)
	m5 := m * m * m * m * m
	return mgl32.Vec3{
		f0.X() + (1-f0.X())*m5,
		f0.Y() + (1-f0.Y())*m5,
		f0.Z() + (1-f0.Z())*m5,
	}
}

// CosineHemisphere maps u to the upper hemisphere with density cos/pi.
func CosineHemisphere(u mgl32.Vec2) mgl32.Vec3 {
	r := sqrt32(u.X())
	phi := 2 * math.Pi * float64(u.Y())
	return mgl32.Vec3{
		r * float32(math.Cos(phi)),
		r * float32(math.Sin(phi)),
		sqrt32(max(0, 1-u.X())),
	}
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
