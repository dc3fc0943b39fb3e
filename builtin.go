package surface

import (
	"fmt"
	"math"

	"github.com/gekko3d/surface/rt/bsdf"
	"github.com/gekko3d/surface/rt/core"
	"github.com/gekko3d/surface/rt/texture"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	KindDiffuse  = "diffuse"
	KindEmissive = "emissive"
	KindMirror   = "mirror"
	KindGlass    = "glass"
	KindPBR      = "pbr"
)

var white = mgl32.Vec3{1, 1, 1}

func albedoOption() Option {
	return Option{Name: "color", Type: OptionColor, Default: white, Bounded: true, Min: 0, Max: 1, Doc: "surface color"}
}

func iorOption() Option {
	return Option{Name: "ior", Type: OptionFloat, Default: 1.5, Bounded: true, Min: 1, Max: 4, Doc: "index of refraction"}
}

func unitOption(name string, def float64, doc string) Option {
	return Option{Name: name, Type: OptionFloat, Default: def, Bounded: true, Min: 0, Max: 1, Doc: doc}
}

var (
	diffuseSchema = Schema{Kind: KindDiffuse, Options: []Option{
		albedoOption(),
		{Name: "texture", Type: OptionString, Default: "", Doc: "image file multiplied into color"},
	}}
	emissiveSchema = Schema{Kind: KindEmissive, Options: []Option{
		albedoOption(),
		{Name: "intensity", Type: OptionFloat, Default: 1.0, Bounded: true, Min: 0, Max: math.Inf(1), Doc: "radiance scale"},
	}}
	mirrorSchema = Schema{Kind: KindMirror, Options: []Option{
		albedoOption(),
	}}
	glassSchema = Schema{Kind: KindGlass, Options: []Option{
		albedoOption(),
		iorOption(),
	}}
	pbrSchema = Schema{Kind: KindPBR, Options: []Option{
		albedoOption(),
		unitOption("roughness", 1, "microfacet roughness"),
		unitOption("metalness", 0, "metallic blend"),
		iorOption(),
		unitOption("transparency", 0, "share of light transmitted through a glass layer"),
		{Name: "emission", Type: OptionFloat, Default: 0.0, Bounded: true, Min: 0, Max: math.Inf(1), Doc: "emitted radiance as a multiple of color"},
	}}
)

func registerBuiltins(r *Registry) {
	builtins := []struct {
		name    string
		factory Factory
		aliases []string
	}{
		{KindDiffuse, func() Native { return &diffuseMaterial{} }, []string{"lambert", "diffusive"}},
		{KindEmissive, func() Native { return &emissiveMaterial{} }, []string{"light"}},
		{KindMirror, func() Native { return &mirrorMaterial{} }, []string{"reflective"}},
		{KindGlass, func() Native { return &glassMaterial{} }, []string{"refractive", "dielectric"}},
		{KindPBR, func() Native { return &pbrMaterial{} }, []string{"microfacet"}},
	}
	for _, b := range builtins {
		if err := r.Register(b.name, b.factory); err != nil {
			panic(err)
		}
		for _, alias := range b.aliases {
			if err := r.Alias(alias, b.name); err != nil {
				panic(err)
			}
		}
	}
}

type diffuseMaterial struct {
	color  mgl32.Vec3
	albedo texture.ColorSource
	image  *texture.Image
}

func (m *diffuseMaterial) Schema() Schema { return diffuseSchema }

func (m *diffuseMaterial) Initialize(cfg Config) error {
	v, err := diffuseSchema.Resolve(cfg)
	if err != nil {
		return err
	}
	m.color = v.Color("color")
	m.albedo = texture.Solid{Color: m.color}
	if path := v.Text("texture"); path != "" {
		img, err := texture.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", KindDiffuse, err)
		}
		m.image = img
		m.albedo = texture.Tinted{Source: img, Tint: m.color}
	}
	return nil
}

func (m *diffuseMaterial) BSDF(uv mgl32.Vec2) bsdf.BSDF {
	return &bsdf.Lambertian{Albedo: m.albedo.Evaluate(uv)}
}

func (m *diffuseMaterial) Pack() core.Material {
	return core.NewMaterial(core.PackColor(m.color, 255), [4]uint8{})
}

func (m *diffuseMaterial) Close() error {
	if m.image == nil {
		return nil
	}
	return m.image.Close()
}

type emissiveMaterial struct {
	color    mgl32.Vec3
	radiance mgl32.Vec3
}

func (m *emissiveMaterial) Schema() Schema { return emissiveSchema }

func (m *emissiveMaterial) Initialize(cfg Config) error {
	v, err := emissiveSchema.Resolve(cfg)
	if err != nil {
		return err
	}
	m.color = v.Color("color")
	m.radiance = m.color.Mul(v.Float("intensity"))
	return nil
}

func (m *emissiveMaterial) BSDF(uv mgl32.Vec2) bsdf.BSDF {
	return &bsdf.Emitter{Radiance: m.radiance}
}

func (m *emissiveMaterial) Pack() core.Material {
	return core.NewMaterial(core.PackColor(m.color, 255), core.PackColor(m.radiance, 255))
}

type mirrorMaterial struct {
	color mgl32.Vec3
}

func (m *mirrorMaterial) Schema() Schema { return mirrorSchema }

func (m *mirrorMaterial) Initialize(cfg Config) error {
	v, err := mirrorSchema.Resolve(cfg)
	if err != nil {
		return err
	}
	m.color = v.Color("color")
	return nil
}

func (m *mirrorMaterial) BSDF(uv mgl32.Vec2) bsdf.BSDF {
	return &bsdf.Mirror{Reflectance: m.color}
}

func (m *mirrorMaterial) Pack() core.Material {
	p := core.NewMaterial(core.PackColor(m.color, 255), [4]uint8{})
	p.Roughness = 0
	p.Metalness = 1
	return p
}

type glassMaterial struct {
	color mgl32.Vec3
	ior   float32
}

func (m *glassMaterial) Schema() Schema { return glassSchema }

func (m *glassMaterial) Initialize(cfg Config) error {
	v, err := glassSchema.Resolve(cfg)
	if err != nil {
		return err
	}
	m.color = v.Color("color")
	m.ior = v.Float("ior")
	return nil
}

func (m *glassMaterial) BSDF(uv mgl32.Vec2) bsdf.BSDF {
	return &bsdf.Dielectric{Tint: m.color, IOR: m.ior}
}

func (m *glassMaterial) Pack() core.Material {
	p := core.NewMaterial(core.PackColor(m.color, 255), [4]uint8{})
	p.Roughness = 0
	p.IOR = m.ior
	p.Transparency = 1
	return p
}

type pbrMaterial struct {
	color        mgl32.Vec3
	roughness    float32
	metalness    float32
	ior          float32
	transparency float32
	emission     float32
}

func (m *pbrMaterial) Schema() Schema { return pbrSchema }

func (m *pbrMaterial) Initialize(cfg Config) error {
	v, err := pbrSchema.Resolve(cfg)
	if err != nil {
		return err
	}
	m.color = v.Color("color")
	m.roughness = v.Float("roughness")
	m.metalness = v.Float("metalness")
	m.ior = v.Float("ior")
	m.transparency = v.Float("transparency")
	m.emission = v.Float("emission")
	return nil
}

func (m *pbrMaterial) BSDF(uv mgl32.Vec2) bsdf.BSDF {
	base := &bsdf.Microfacet{
		BaseColor: m.color,
		Roughness: m.roughness,
		Metalness: m.metalness,
		Emitted:   m.color.Mul(m.emission),
	}
	if m.transparency <= 0 {
		return base
	}
	return &bsdf.Mix{
		A:      base,
		B:      &bsdf.Dielectric{Tint: m.color, IOR: m.ior},
		Weight: m.transparency,
	}
}

func (m *pbrMaterial) Pack() core.Material {
	p := core.NewMaterial(core.PackColor(m.color, 255), [4]uint8{})
	if m.emission > 0 {
		p.Emissive = core.PackColor(m.color.Mul(m.emission), 255)
	}
	p.Roughness = m.roughness
	p.Metalness = m.metalness
	p.IOR = m.ior
	p.Transparency = m.transparency
	return p
}
