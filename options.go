package surface

import "github.com/go-gl/mathgl/mgl32"

// OptionSet is a typed option struct for one material kind. Every field is
// passed through, so start from the Default* constructors rather than zero
// values.
type OptionSet interface {
	Kind() string
	Options() map[string]any
}

type DiffuseOptions struct {
	Color   mgl32.Vec3
	Texture string
}

func DefaultDiffuseOptions() DiffuseOptions { return DiffuseOptions{Color: white} }

func (o DiffuseOptions) Kind() string { return KindDiffuse }

func (o DiffuseOptions) Options() map[string]any {
	m := map[string]any{"color": o.Color}
	if o.Texture != "" {
		m["texture"] = o.Texture
	}
	return m
}

type EmissiveOptions struct {
	Color     mgl32.Vec3
	Intensity float32
}

func DefaultEmissiveOptions() EmissiveOptions {
	return EmissiveOptions{Color: white, Intensity: 1}
}

func (o EmissiveOptions) Kind() string { return KindEmissive }

func (o EmissiveOptions) Options() map[string]any {
	return map[string]any{"color": o.Color, "intensity": o.Intensity}
}

type MirrorOptions struct {
	Color mgl32.Vec3
}

func DefaultMirrorOptions() MirrorOptions { return MirrorOptions{Color: white} }

func (o MirrorOptions) Kind() string { return KindMirror }

func (o MirrorOptions) Options() map[string]any {
	return map[string]any{"color": o.Color}
}

type GlassOptions struct {
	Color mgl32.Vec3
	IOR   float32
}

func DefaultGlassOptions() GlassOptions { return GlassOptions{Color: white, IOR: 1.5} }

func (o GlassOptions) Kind() string { return KindGlass }

func (o GlassOptions) Options() map[string]any {
	return map[string]any{"color": o.Color, "ior": o.IOR}
}

type PBROptions struct {
	Color        mgl32.Vec3
	Roughness    float32
	Metalness    float32
	IOR          float32
	Transparency float32
	Emission     float32
}

func DefaultPBROptions() PBROptions {
	return PBROptions{Color: white, Roughness: 1, IOR: 1.5}
}

func (o PBROptions) Kind() string { return KindPBR }

func (o PBROptions) Options() map[string]any {
	return map[string]any{
		"color":        o.Color,
		"roughness":    o.Roughness,
		"metalness":    o.Metalness,
		"ior":          o.IOR,
		"transparency": o.Transparency,
		"emission":     o.Emission,
	}
}
