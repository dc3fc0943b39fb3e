package surface

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
)

type OptionType int

const (
	OptionFloat OptionType = iota + 1
	OptionColor
	OptionString
	OptionBool
)

func (t OptionType) String() string {
	switch t {
	case OptionFloat:
		return "float"
	case OptionColor:
		return "color"
	case OptionString:
		return "string"
	case OptionBool:
		return "bool"
	}
	return fmt.Sprintf("OptionType(%d)", int(t))
}

// Option documents one recognized key of a material kind. When Bounded is set,
// numbers (and every color component) must lie in [Min, Max].
type Option struct {
	Name    string
	Type    OptionType
	Default any
	Bounded bool
	Min     float64
	Max     float64
	Doc     string
}

// Schema lists the options a material kind accepts.
type Schema struct {
	Kind    string
	Options []Option
}

func (s Schema) Option(name string) (Option, bool) {
	for _, o := range s.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Values are resolved options with defaults applied.
type Values map[string]Value

func (v Values) Float(name string) float32 {
	f, _ := v[name].Number()
	return float32(f)
}

func (v Values) Color(name string) mgl32.Vec3 {
	c, _ := v[name].Vector()
	return c
}

func (v Values) Text(name string) string {
	s, _ := v[name].Text()
	return s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].Bool()
	return b
}

// Resolve checks cfg against the schema and fills in defaults. Every problem
// found is reported in the returned error.
func (s Schema) Resolve(cfg Config) (Values, error) {
	var err error
	for _, key := range cfg.Keys() {
		if _, ok := s.Option(key); !ok {
			err = multierr.Append(err, fmt.Errorf("%s: option %q: %w", s.Kind, key, ErrUnknownOption))
		}
	}

	values := make(Values, len(s.Options))
	for _, opt := range s.Options {
		v, ok := cfg.Get(opt.Name)
		if !ok {
			def, defErr := NewValue(opt.Default)
			if defErr != nil {
				panic(fmt.Sprintf("%s: bad default for %q: %v", s.Kind, opt.Name, defErr))
			}
			v = def
		}
		resolved, coerceErr := opt.coerce(v)
		if coerceErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: option %q: %w", s.Kind, opt.Name, coerceErr))
			continue
		}
		values[opt.Name] = resolved
	}
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (o Option) coerce(v Value) (Value, error) {
	switch o.Type {
	case OptionFloat:
		f, ok := v.Number()
		if !ok {
			return Value{}, o.typeError(v)
		}
		if err := o.checkRange(f); err != nil {
			return Value{}, err
		}
		return v, nil
	case OptionColor:
		switch v.Kind() {
		case KindNumber:
			// A scalar is a grey color.
			g := float32(v.num)
			v.kind, v.vec = KindVector, mgl32.Vec3{g, g, g}
		case KindVector:
		default:
			return Value{}, o.typeError(v)
		}
		for i := 0; i < 3; i++ {
			if err := o.checkRange(float64(v.vec[i])); err != nil {
				return Value{}, err
			}
		}
		return v, nil
	case OptionString:
		if v.Kind() != KindString {
			return Value{}, o.typeError(v)
		}
		return v, nil
	case OptionBool:
		if v.Kind() != KindBool {
			return Value{}, o.typeError(v)
		}
		return v, nil
	}
	return Value{}, fmt.Errorf("%w: schema type %s", ErrOptionType, o.Type)
}

func (o Option) typeError(v Value) error {
	return fmt.Errorf("%w: want %s, got %s", ErrOptionType, o.Type, v.Kind())
}

func (o Option) checkRange(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %g", ErrOptionRange, f)
	}
	if o.Bounded && (f < o.Min || f > o.Max) {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrOptionRange, f, o.Min, o.Max)
	}
	return nil
}
