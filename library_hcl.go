package surface

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

type hclLibrary struct {
	Materials []*hclMaterial `hcl:"material,block"`
}

// hclMaterial is one block:
//
//	material "floor" {
//	  type  = "diffuse"
//	  color = [0.8, 0.8, 0.8]
//	}
type hclMaterial struct {
	Name string   `hcl:"name,label"`
	Type string   `hcl:"type"`
	Body hcl.Body `hcl:",remain"`
}

func ParseHCL(data []byte, filename string) (*Library, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse material library: %w", diags)
	}

	var raw hclLibrary
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decode material library: %w", diags)
	}

	lib := NewLibrary()
	for _, m := range raw.Materials {
		attrs, diags := m.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("material %q: %w", m.Name, diags)
		}
		opts := make(map[string]any, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("material %q: option %q: %w", m.Name, name, diags)
			}
			native, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("material %q: option %q: %w", m.Name, name, err)
			}
			opts[name] = native
		}
		if err := lib.Add(Definition{Name: m.Name, Type: m.Type, Options: opts}); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// ctyToNative converts an evaluated attribute into the plain Go values
// ConfigFromMap understands.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, ty.FriendlyName())
	}
}
