package bsdf

import "github.com/go-gl/mathgl/mgl32"

// Mirror is a perfect specular reflector tinted by Reflectance.
type Mirror struct {
	Reflectance mgl32.Vec3
}

func (m *Mirror) Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{} }
func (m *Mirror) PDF(wo, wi mgl32.Vec3) float32         { return 0 }

func (m *Mirror) Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool) {
	if wo.Z() == 0 {
		return Sample{}, false
	}
	wi := Reflect(wo)
	return Sample{
		Wi:       wi,
		F:        m.Reflectance.Mul(1 / AbsCosTheta(wi)),
		PDF:      1,
		Specular: true,
	}, true
}

func (m *Mirror) Emission() mgl32.Vec3 { return mgl32.Vec3{} }
