package surface

import (
	"errors"
	"testing"

	"github.com/gekko3d/surface/rt/bsdf"
	"github.com/gekko3d/surface/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type closeFailMaterial struct{ recordingMaterial }

func (m *closeFailMaterial) Close() error { return errors.New("close failed") }

type bareMaterial struct{}

func (bareMaterial) Initialize(Config) error   { return nil }
func (bareMaterial) BSDF(mgl32.Vec2) bsdf.BSDF { return &bsdf.Emitter{} }
func (bareMaterial) Pack() core.Material       { return core.DefaultMaterial() }

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	f := func() Native { return bareMaterial{} }

	require.NoError(t, reg.Register("bare", f))
	assert.ErrorIs(t, reg.Register("bare", f), ErrDuplicateMaterial)
	assert.ErrorIs(t, reg.Register("", f), ErrEmptyName)
	assert.Error(t, reg.Register("nil", nil))

	require.NoError(t, reg.Alias("plain", "bare"))
	assert.ErrorIs(t, reg.Alias("plain", "bare"), ErrDuplicateMaterial)
	assert.ErrorIs(t, reg.Alias("bare", "bare"), ErrDuplicateMaterial)
	assert.ErrorIs(t, reg.Alias("ghost", "missing"), ErrUnknownMaterial)
	assert.ErrorIs(t, reg.Register("plain", f), ErrDuplicateMaterial)

	assert.Equal(t, []string{"bare"}, reg.Names())
}

func TestRegistryAliasResolvesToCanonicalKind(t *testing.T) {
	reg := NewDefaultRegistry()
	h, err := reg.Create("reflective")
	require.NoError(t, err)
	defer h.Release()
	assert.Equal(t, KindMirror, h.Kind())
}

func TestRegistryNilFactoryResult(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("nothing", func() Native { return nil }))
	_, err := reg.Create("nothing")
	assert.Error(t, err)
	assert.Zero(t, reg.Live())
}

func TestRegistrySchema(t *testing.T) {
	reg := NewDefaultRegistry()

	s, ok := reg.Schema("microfacet")
	require.True(t, ok)
	assert.Equal(t, KindPBR, s.Kind)
	for _, name := range []string{"color", "roughness", "metalness", "ior", "transparency", "emission"} {
		_, ok := s.Option(name)
		assert.True(t, ok, name)
	}

	_, ok = reg.Schema("velvet")
	assert.False(t, ok)

	require.NoError(t, reg.Register("bare", func() Native { return bareMaterial{} }))
	_, ok = reg.Schema("bare")
	assert.False(t, ok)
}

func TestHandleLifecycle(t *testing.T) {
	reg := NewDefaultRegistry()
	h, err := reg.Create(KindDiffuse)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Live())

	_, err = h.BSDF(mgl32.Vec2{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = h.Pack()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, h.Initialize(Config{}))
	assert.ErrorIs(t, h.Initialize(Config{}), ErrAlreadyInitialized)

	_, err = h.BSDF(mgl32.Vec2{})
	assert.NoError(t, err)

	require.NoError(t, h.Release())
	require.NoError(t, h.Release())
	assert.Zero(t, reg.Live())
	assert.ErrorIs(t, h.Initialize(Config{}), ErrReleased)
	_, err = h.BSDF(mgl32.Vec2{})
	assert.ErrorIs(t, err, ErrReleased)
}

func TestHandleFailedInitializeCanRetry(t *testing.T) {
	reg := NewDefaultRegistry()
	h, err := reg.Create(KindGlass)
	require.NoError(t, err)
	defer h.Release()

	bad, err := ConfigFromMap(map[string]any{"ior": 0.5})
	require.NoError(t, err)
	assert.ErrorIs(t, h.Initialize(bad), ErrOptionRange)

	require.NoError(t, h.Initialize(Config{}))
}

func TestRegistryLogging(t *testing.T) {
	logger, logs := observedLogger(true)
	reg := NewDefaultRegistry(WithLogger(logger))
	require.NoError(t, reg.Register("closefail", func() Native { return &closeFailMaterial{} }))

	_, err := NewFrom(reg, KindPBR, map[string]any{"roughness": 3})
	require.ErrorIs(t, err, ErrOptionRange)

	m, err := NewFrom(reg, "closefail", nil)
	require.NoError(t, err)
	assert.EqualError(t, m.Close(), "close failed")

	assert.Equal(t, 2, logs.FilterMessageSnippet("allocated").Len())
	assert.Equal(t, 2, logs.FilterMessageSnippet("released").Len())
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 2)
	assert.Contains(t, warns[0].Message, "initialize pbr material")
	assert.Contains(t, warns[1].Message, "close closefail material")
}

func TestWithNilLoggerKeepsNop(t *testing.T) {
	reg := NewRegistry(WithLogger(nil))
	assert.NotNil(t, reg.logger)
}
