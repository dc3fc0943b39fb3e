package bsdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minAlpha keeps the GGX lobe finite for roughness 0.
const minAlpha = 1e-3

// Microfacet is a metallic-roughness surface: a GGX specular lobe over a
// Lambertian base that fades out as Metalness grows. Front face only.
type Microfacet struct {
	BaseColor mgl32.Vec3
	Roughness float32
	Metalness float32
	Emitted   mgl32.Vec3
}

func (m *Microfacet) FrontFaceOnly() bool { return true }

func (m *Microfacet) alpha() float32 {
	return max(m.Roughness*m.Roughness, minAlpha)
}

// specularProbability is the chance Sample picks the GGX lobe.
func (m *Microfacet) specularProbability() float32 {
	return 0.5 + 0.5*mgl32.Clamp(m.Metalness, 0, 1)
}

func (m *Microfacet) f0() mgl32.Vec3 {
	metal := mgl32.Clamp(m.Metalness, 0, 1)
	dielectric := mgl32.Vec3{0.04, 0.04, 0.04}
	return dielectric.Mul(1 - metal).Add(m.BaseColor.Mul(metal))
}

// distribution is the GGX normal distribution D(h).
func (m *Microfacet) distribution(h mgl32.Vec3) float32 {
	a2 := m.alpha() * m.alpha()
	cos2 := h.Z() * h.Z()
	d := cos2*(a2-1) + 1
	return a2 / (math.Pi * d * d)
}

// g1 is the Smith masking term for one direction.
func (m *Microfacet) g1(w mgl32.Vec3) float32 {
	a2 := m.alpha() * m.alpha()
	c := AbsCosTheta(w)
	return 2 * c / (c + sqrt32(a2+(1-a2)*c*c))
}

func (m *Microfacet) Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3 {
	if wo.Z() <= 0 || wi.Z() <= 0 {
		return mgl32.Vec3{}
	}
	h := wo.Add(wi).Normalize()
	d := m.distribution(h)
	g := m.g1(wo) * m.g1(wi)
	f := FresnelSchlick(m.f0(), wi.Dot(h))
	spec := f.Mul(d * g / (4 * wo.Z() * wi.Z()))

	diffuse := m.BaseColor.Mul((1 - mgl32.Clamp(m.Metalness, 0, 1)) * invPi)
	return spec.Add(diffuse)
}

func (m *Microfacet) PDF(wo, wi mgl32.Vec3) float32 {
	if wo.Z() <= 0 || wi.Z() <= 0 {
		return 0
	}
	h := wo.Add(wi).Normalize()
	pSpec := m.specularProbability()
	specPDF := m.distribution(h) * h.Z() / (4 * abs32(wo.Dot(h)))
	diffPDF := wi.Z() * invPi
	return pSpec*specPDF + (1-pSpec)*diffPDF
}

func (m *Microfacet) Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool) {
	if wo.Z() <= 0 {
		return Sample{}, false
	}
	var wi mgl32.Vec3
	pSpec := m.specularProbability()
	if u.X() < pSpec {
		u0 := u.X() / pSpec
		a2 := m.alpha() * m.alpha()
		cos2 := (1 - u0) / (1 + (a2-1)*u0)
		cosT := sqrt32(cos2)
		sinT := sqrt32(max(0, 1-cos2))
		phi := 2 * math.Pi * float64(u.Y())
		h := mgl32.Vec3{sinT * float32(math.Cos(phi)), sinT * float32(math.Sin(phi)), cosT}
		wi = ReflectAbout(wo, h)
	} else {
		u0 := (u.X() - pSpec) / (1 - pSpec)
		wi = CosineHemisphere(mgl32.Vec2{u0, u.Y()})
	}
	if wi.Z() <= 0 {
		return Sample{}, false
	}
	pdf := m.PDF(wo, wi)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: m.Evaluate(wo, wi), PDF: pdf}, true
}

func (m *Microfacet) Emission() mgl32.Vec3 { return m.Emitted }
