package bsdf

import "github.com/go-gl/mathgl/mgl32"

// Mix blends two BSDFs. Weight is the share of B, clamped to [0,1].
type Mix struct {
	A, B   BSDF
	Weight float32
}

// frontFaced is implemented by BSDFs that only shade the +Z side.
type frontFaced interface {
	FrontFaceOnly() bool
}

func backFaceless(b BSDF, wo mgl32.Vec3) bool {
	f, ok := b.(frontFaced)
	return ok && f.FrontFaceOnly() && wo.Z() <= 0
}

// weight is the share of B for wo. A front-face-only lobe gives its share
// to the other lobe when wo is below the surface.
func (m *Mix) weight(wo mgl32.Vec3) float32 {
	switch {
	case backFaceless(m.A, wo) && !backFaceless(m.B, wo):
		return 1
	case backFaceless(m.B, wo) && !backFaceless(m.A, wo):
		return 0
	}
	return mgl32.Clamp(m.Weight, 0, 1)
}

func (m *Mix) Evaluate(wo, wi mgl32.Vec3) mgl32.Vec3 {
	w := m.weight(wo)
	return m.A.Evaluate(wo, wi).Mul(1 - w).Add(m.B.Evaluate(wo, wi).Mul(w))
}

func (m *Mix) PDF(wo, wi mgl32.Vec3) float32 {
	w := m.weight(wo)
	return (1-w)*m.A.PDF(wo, wi) + w*m.B.PDF(wo, wi)
}

func (m *Mix) Sample(wo mgl32.Vec3, u mgl32.Vec2) (Sample, bool) {
	w := m.weight(wo)
	var (
		s  Sample
		ok bool
		p  float32
	)
	if u.X() < w {
		p = w
		s, ok = m.B.Sample(wo, mgl32.Vec2{u.X() / w, u.Y()})
	} else {
		p = 1 - w
		s, ok = m.A.Sample(wo, mgl32.Vec2{(u.X() - w) / (1 - w), u.Y()})
	}
	if !ok {
		return Sample{}, false
	}
	if s.Specular {
		s.F = s.F.Mul(p)
		s.PDF *= p
		return s, true
	}
	s.F = m.Evaluate(wo, s.Wi)
	s.PDF = m.PDF(wo, s.Wi)
	if s.PDF <= 0 {
		return Sample{}, false
	}
	return s, true
}

func (m *Mix) Emission() mgl32.Vec3 {
	w := mgl32.Clamp(m.Weight, 0, 1)
	return m.A.Emission().Mul(1 - w).Add(m.B.Emission().Mul(w))
}
