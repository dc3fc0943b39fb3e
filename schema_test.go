package surface

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var testSchema = Schema{Kind: "test", Options: []Option{
	{Name: "color", Type: OptionColor, Default: mgl32.Vec3{1, 1, 1}, Bounded: true, Min: 0, Max: 1},
	{Name: "gain", Type: OptionFloat, Default: 1.0, Bounded: true, Min: 0, Max: math.Inf(1)},
	{Name: "label", Type: OptionString, Default: ""},
	{Name: "twoSided", Type: OptionBool, Default: false},
}}

func resolve(t *testing.T, opts map[string]any) (Values, error) {
	t.Helper()
	cfg, err := ConfigFromMap(opts)
	require.NoError(t, err)
	return testSchema.Resolve(cfg)
}

func TestSchemaDefaults(t *testing.T) {
	v, err := resolve(t, nil)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, v.Color("color"))
	assert.Equal(t, float32(1), v.Float("gain"))
	assert.Equal(t, "", v.Text("label"))
	assert.False(t, v.Bool("twoSided"))
}

func TestSchemaOverrides(t *testing.T) {
	v, err := resolve(t, map[string]any{
		"color":    0.5,
		"gain":     12,
		"label":    "floor",
		"twoSided": true,
	})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, v.Color("color"))
	assert.Equal(t, float32(12), v.Float("gain"))
	assert.Equal(t, "floor", v.Text("label"))
	assert.True(t, v.Bool("twoSided"))
}

func TestSchemaReportsEveryProblem(t *testing.T) {
	_, err := resolve(t, map[string]any{
		"colour": []any{1.0, 0.0, 0.0},
		"gain":   "loud",
		"color":  []any{2.0, 0.0, 0.0},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.ErrorIs(t, err, ErrOptionType)
	assert.ErrorIs(t, err, ErrOptionRange)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), `test: option "colour"`)
}

func TestSchemaRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := resolve(t, map[string]any{"gain": f})
		assert.ErrorIs(t, err, ErrOptionRange, "gain %g", f)
	}
}

func TestSchemaOptionLookup(t *testing.T) {
	o, ok := testSchema.Option("gain")
	require.True(t, ok)
	assert.Equal(t, OptionFloat, o.Type)
	assert.Equal(t, "float", o.Type.String())

	_, ok = testSchema.Option("missing")
	assert.False(t, ok)
}
