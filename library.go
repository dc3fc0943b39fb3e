package surface

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Definition is a named, reusable material: a kind plus its options.
type Definition struct {
	Name    string
	Type    string
	Options map[string]any
}

// Library holds material definitions loaded from TOML, HCL or JSON files:
//
//	[materials.floor]
//	type  = "diffuse"
//	color = [0.8, 0.8, 0.8]
type Library struct {
	dir  string
	defs map[string]Definition
}

func NewLibrary() *Library {
	return &Library{defs: make(map[string]Definition)}
}

// LoadLibrary picks the format from the file extension. Relative texture
// paths in the file resolve against its directory.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lib *Library
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		lib, err = ParseTOML(data)
	case ".hcl":
		lib, err = ParseHCL(data, path)
	case ".json":
		lib, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lib.dir = filepath.Dir(path)
	return lib, nil
}

type libraryFile struct {
	Materials map[string]map[string]any `toml:"materials" json:"materials"`
}

func ParseTOML(data []byte) (*Library, error) {
	var raw libraryFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("parse material library: %w", err)
	}
	return libraryFromRaw(raw.Materials)
}

func ParseJSON(data []byte) (*Library, error) {
	var raw libraryFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse material library: %w", err)
	}
	return libraryFromRaw(raw.Materials)
}

func libraryFromRaw(materials map[string]map[string]any) (*Library, error) {
	lib := NewLibrary()
	for _, name := range slices.Sorted(maps.Keys(materials)) {
		body := materials[name]
		typ, _ := body["type"].(string)
		opts := make(map[string]any, len(body))
		for k, v := range body {
			if k != "type" {
				opts[k] = v
			}
		}
		if err := lib.Add(Definition{Name: name, Type: typ, Options: opts}); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func (l *Library) Add(def Definition) error {
	if def.Name == "" {
		return ErrEmptyName
	}
	if def.Type == "" {
		return fmt.Errorf("material %q: %w", def.Name, ErrMissingType)
	}
	if _, ok := l.defs[def.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateDefinition, def.Name)
	}
	l.defs[def.Name] = def
	return nil
}

func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.defs))
}

func (l *Library) Definition(name string) (Definition, bool) {
	def, ok := l.defs[name]
	return def, ok
}

// Build constructs the named definition.
func (l *Library) Build(reg *Registry, name string) (*SurfaceMaterial, error) {
	def, ok := l.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefinition, name)
	}
	return NewFrom(reg, def.Type, l.resolveOptions(def.Options))
}

// BuildAll constructs every definition. On failure nothing is left allocated.
func (l *Library) BuildAll(reg *Registry) (map[string]*SurfaceMaterial, error) {
	built := make(map[string]*SurfaceMaterial, len(l.defs))
	for _, name := range l.Names() {
		m, err := l.Build(reg, name)
		if err != nil {
			for _, b := range built {
				b.Close()
			}
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		built[name] = m
	}
	return built, nil
}

func (l *Library) resolveOptions(opts map[string]any) map[string]any {
	out := maps.Clone(opts)
	if tex, ok := out["texture"].(string); ok && tex != "" && l.dir != "" && !filepath.IsAbs(tex) {
		out["texture"] = filepath.Join(l.dir, tex)
	}
	return out
}

// Save writes the library as JSON in the layout ParseJSON reads.
func (l *Library) Save(filename string) error {
	raw := libraryFile{Materials: make(map[string]map[string]any, len(l.defs))}
	for name, def := range l.defs {
		body := maps.Clone(def.Options)
		if body == nil {
			body = make(map[string]any)
		}
		body["type"] = def.Type
		raw.Materials[name] = body
	}

	bytes, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}
