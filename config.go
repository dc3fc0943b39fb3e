package surface

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type ValueKind int

const (
	KindNumber ValueKind = iota + 1
	KindBool
	KindString
	KindVector
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVector:
		return "vector"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is one converted option. The caller's original value is kept in raw;
// slices are copied.
type Value struct {
	kind ValueKind
	raw  any
	num  float64
	vec  mgl32.Vec3
	str  string
	b    bool
}

// NewValue converts numbers of any Go numeric type, bools, strings, and
// 3-component vectors (mgl32.Vec3, arrays, or numeric slices).
func NewValue(v any) (Value, error) {
	val := Value{raw: v}
	if f, ok := toFloat(v); ok {
		val.kind, val.num = KindNumber, f
		return val, nil
	}
	switch x := v.(type) {
	case bool:
		val.kind, val.b = KindBool, x
		return val, nil
	case string:
		val.kind, val.str = KindString, x
		return val, nil
	case mgl32.Vec3:
		val.kind, val.vec = KindVector, x
		return val, nil
	case [3]float32:
		val.kind, val.vec = KindVector, mgl32.Vec3(x)
		return val, nil
	case [3]float64:
		val.kind, val.vec = KindVector, mgl32.Vec3{float32(x[0]), float32(x[1]), float32(x[2])}
		return val, nil
	case []float32:
		x = slices.Clone(x)
		val.raw = x
		return vectorFrom(val, len(x), func(i int) any { return x[i] })
	case []float64:
		x = slices.Clone(x)
		val.raw = x
		return vectorFrom(val, len(x), func(i int) any { return x[i] })
	case []int:
		x = slices.Clone(x)
		val.raw = x
		return vectorFrom(val, len(x), func(i int) any { return x[i] })
	case []int64:
		x = slices.Clone(x)
		val.raw = x
		return vectorFrom(val, len(x), func(i int) any { return x[i] })
	case []any:
		x = slices.Clone(x)
		val.raw = x
		return vectorFrom(val, len(x), func(i int) any { return x[i] })
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func vectorFrom(val Value, n int, at func(int) any) (Value, error) {
	if n != 3 {
		return Value{}, fmt.Errorf("%w: list of %d elements, want 3", ErrUnsupportedValue, n)
	}
	for i := 0; i < 3; i++ {
		f, ok := toFloat(at(i))
		if !ok {
			return Value{}, fmt.Errorf("%w: element %d is %T", ErrUnsupportedValue, i, at(i))
		}
		val.vec[i] = float32(f)
	}
	val.kind = KindVector
	return val, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) Raw() any        { return v.raw }

func (v Value) Number() (float64, bool)    { return v.num, v.kind == KindNumber }
func (v Value) Bool() (bool, bool)         { return v.b, v.kind == KindBool }
func (v Value) Text() (string, bool)       { return v.str, v.kind == KindString }
func (v Value) Vector() (mgl32.Vec3, bool) { return v.vec, v.kind == KindVector }

// Config is the converted option set handed to a material initializer.
// Keys are unique and carry no order.
type Config struct {
	values map[string]Value
}

// ConfigFromMap converts every entry of m. The map itself is not retained.
func ConfigFromMap(m map[string]any) (Config, error) {
	cfg := Config{values: make(map[string]Value, len(m))}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		val, err := NewValue(m[key])
		if err != nil {
			return Config{}, fmt.Errorf("option %q: %w", key, err)
		}
		cfg.values[key] = val
	}
	return cfg, nil
}

func (c Config) Len() int { return len(c.values) }

func (c Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

func (c Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

func (c Config) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Map returns the original option values keyed by name.
func (c Config) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v.raw
	}
	return out
}
