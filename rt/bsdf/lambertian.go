package bsdf

import "github.com/go-gl/mathgl/mgl32"

// Lambertian scatters uniformly in the hemisphere of wo. It is two-sided.
type Lambertian struct {
	Albedo mgl32.Vec3
}

func (l *Lambertian) Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3 {
	if !SameHemisphere(wo, wi) {
		return mgl32.Vec3{}
	}
	return l.Albedo.Mul(invPi)
}

func (l *Lambertian) PDF(wo, wi mgl32.Vec3) float32 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) * invPi
}

func (l *Lambertian) Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool) {
	if wo.Z() == 0 {
		return Sample{}, false
	}
	wi := CosineHemisphere(u)
	if wo.Z() < 0 {
		wi[2] = -wi[2]
	}
	pdf := l.PDF(wo, wi)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: l.Evaluate(wo, wi), PDF: pdf}, true
}

func (l *Lambertian) Emission() mgl32.Vec3 { return mgl32.Vec3{} }
