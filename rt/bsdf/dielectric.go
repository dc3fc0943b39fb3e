package bsdf

import "github.com/go-gl/mathgl/mgl32"

// Dielectric is a smooth glass interface. Reflection and transmission are
// chosen stochastically in proportion to the Fresnel reflectance. Radiance is
// not rescaled by the relative index on transmission.
type Dielectric struct {
	Tint mgl32.Vec3
	IOR  float32
}

func (d *Dielectric) Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{} }
func (d *Dielectric) PDF(wo, wi mgl32.Vec3) float32         { return 0 }

func (d *Dielectric) Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool) {
	if wo.Z() == 0 {
		return Sample{}, false
	}
	r := FresnelDielectric(CosTheta(wo), d.IOR)
	if u.X() < r {
		wi := Reflect(wo)
		return Sample{
			Wi:       wi,
			F:        d.Tint.Mul(r / AbsCosTheta(wi)),
			PDF:      r,
			Specular: true,
		}, true
	}
	wi, ok := Refract(wo, d.IOR)
	if !ok {
		return Sample{}, false
	}
	t := 1 - r
	return Sample{
		Wi:       wi,
		F:        d.Tint.Mul(t / AbsCosTheta(wi)),
		PDF:      t,
		Specular: true,
	}, true
}

func (d *Dielectric) Emission() mgl32.Vec3 { return mgl32.Vec3{} }
