package bsdf

import "github.com/go-gl/mathgl/mgl32"

// Emitter is a light source surface. It emits Radiance and scatters nothing.
type Emitter struct {
	Radiance mgl32.Vec3
}

func (e *Emitter) Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{} }
func (e *Emitter) PDF(wo, wi mgl32.Vec3) float32         { return 0 }

func (e *Emitter) Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool) {
	return Sample{}, false
}

func (e *Emitter) Emission() mgl32.Vec3 { return e.Radiance }
