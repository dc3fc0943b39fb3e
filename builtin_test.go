package surface

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/surface/rt/bsdf"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterial(t *testing.T, name string, opts map[string]any) *SurfaceMaterial {
	t.Helper()
	m, err := NewFrom(NewDefaultRegistry(), name, opts)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func bsdfAt(t *testing.T, m *SurfaceMaterial, uv mgl32.Vec2) bsdf.BSDF {
	t.Helper()
	b, err := m.BSDF(uv)
	require.NoError(t, err)
	return b
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 0, 255, 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDiffuse(t *testing.T) {
	m := newMaterial(t, KindDiffuse, map[string]any{"color": []float64{0.5, 0.25, 1}})

	l, ok := bsdfAt(t, m, mgl32.Vec2{}).(*bsdf.Lambertian)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 1}, l.Albedo)

	packed, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{128, 64, 255, 255}, packed.BaseColor)
	assert.Equal(t, float32(1), packed.Roughness)
}

func TestDiffuseTexture(t *testing.T) {
	path := writePNG(t, t.TempDir(), "stripes.png")
	m := newMaterial(t, "lambert", map[string]any{"texture": path, "color": 0.5})

	left := bsdfAt(t, m, mgl32.Vec2{0.25, 0.5}).(*bsdf.Lambertian)
	right := bsdfAt(t, m, mgl32.Vec2{0.75, 0.5}).(*bsdf.Lambertian)
	assert.InDelta(t, 0.5, left.Albedo.X(), 1e-5)
	assert.InDelta(t, 0, left.Albedo.Z(), 1e-5)
	assert.InDelta(t, 0.5, right.Albedo.Z(), 1e-5)
}

func TestDiffuseMissingTexture(t *testing.T) {
	_, err := NewFrom(NewDefaultRegistry(), KindDiffuse, map[string]any{
		"texture": filepath.Join(t.TempDir(), "missing.png"),
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmissive(t *testing.T) {
	m := newMaterial(t, "light", map[string]any{"color": []any{1.0, 0.5, 0.0}, "intensity": 4})

	b := bsdfAt(t, m, mgl32.Vec2{})
	assert.Equal(t, mgl32.Vec3{4, 2, 0}, b.Emission())
	_, ok := b.Sample(mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0.5, 0.5})
	assert.False(t, ok)

	packed, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{255, 255, 0, 255}, packed.Emissive)
}

func TestMirror(t *testing.T) {
	m := newMaterial(t, "reflective", map[string]any{"color": 0.9})
	mirror, ok := bsdfAt(t, m, mgl32.Vec2{}).(*bsdf.Mirror)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.9, 0.9, 0.9}, mirror.Reflectance)

	packed, err := m.Pack()
	require.NoError(t, err)
	assert.Zero(t, packed.Roughness)
	assert.Equal(t, float32(1), packed.Metalness)
}

func TestGlass(t *testing.T) {
	m := newMaterial(t, KindGlass, map[string]any{"ior": 1.33})
	d, ok := bsdfAt(t, m, mgl32.Vec2{}).(*bsdf.Dielectric)
	require.True(t, ok)
	assert.Equal(t, float32(1.33), d.IOR)
	assert.Equal(t, white, d.Tint)

	packed, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, float32(1.33), packed.IOR)
	assert.Equal(t, float32(1), packed.Transparency)
}

func TestPBR(t *testing.T) {
	m := newMaterial(t, KindPBR, map[string]any{
		"color":     []float64{1, 0.5, 0},
		"roughness": 0.2,
		"metalness": 1,
		"emission":  2,
	})
	mf, ok := bsdfAt(t, m, mgl32.Vec2{}).(*bsdf.Microfacet)
	require.True(t, ok)
	assert.Equal(t, float32(0.2), mf.Roughness)
	assert.Equal(t, float32(1), mf.Metalness)
	assert.Equal(t, mgl32.Vec3{2, 1, 0}, mf.Emission())

	packed, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{255, 255, 0, 255}, packed.Emissive)
	assert.Equal(t, float32(1.5), packed.IOR)
}

func TestPBRTransparencyAddsGlassLayer(t *testing.T) {
	m := newMaterial(t, KindPBR, map[string]any{"transparency": 0.5, "ior": 1.2})
	mix, ok := bsdfAt(t, m, mgl32.Vec2{}).(*bsdf.Mix)
	require.True(t, ok)
	assert.Equal(t, float32(0.5), mix.Weight)
	assert.IsType(t, &bsdf.Microfacet{}, mix.A)
	assert.Equal(t, float32(1.2), mix.B.(*bsdf.Dielectric).IOR)
}

func TestBuiltinValidation(t *testing.T) {
	reg := NewDefaultRegistry()
	cases := []struct {
		kind string
		opts map[string]any
		want error
	}{
		{KindDiffuse, map[string]any{"colour": 1.0}, ErrUnknownOption},
		{KindDiffuse, map[string]any{"color": "red"}, ErrOptionType},
		{KindDiffuse, map[string]any{"color": []float64{2, 0, 0}}, ErrOptionRange},
		{KindEmissive, map[string]any{"intensity": -1}, ErrOptionRange},
		{KindGlass, map[string]any{"ior": 0.9}, ErrOptionRange},
		{KindPBR, map[string]any{"metalness": true}, ErrOptionType},
		{KindPBR, map[string]any{"transparency": 1.5}, ErrOptionRange},
		{KindMirror, map[string]any{"ior": 1.5}, ErrUnknownOption},
	}
	for _, c := range cases {
		m, err := NewFrom(reg, c.kind, c.opts)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, c.want, "%s %v", c.kind, c.opts)
	}
	assert.Zero(t, reg.Live())
}
