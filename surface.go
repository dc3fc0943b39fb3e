// Package surface constructs surface materials by name. A material kind is
// looked up in a Registry, its options are converted into a Config, and the
// allocated Handle is initialized with it and owned by the SurfaceMaterial
// until Close.
//
//	m, err := surface.New("pbr", map[string]any{
//		"color":     []float64{0.9, 0.6, 0.2},
//		"roughness": 0.3,
//		"metalness": 1,
//	})
//	if err != nil {
//		return err
//	}
//	defer m.Close()
package surface

import (
	"sync"

	"github.com/gekko3d/surface/rt/bsdf"
	"github.com/gekko3d/surface/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type SurfaceMaterial struct {
	name string

	mu     sync.Mutex
	handle *Handle
}

// New builds a material from the default registry.
func New(name string, options map[string]any) (*SurfaceMaterial, error) {
	return NewFrom(DefaultRegistry(), name, options)
}

// NewFrom creates, configures and initializes a material of kind name.
// Errors from the registry or the initializer are returned as they are.
func NewFrom(reg *Registry, name string, options map[string]any) (*SurfaceMaterial, error) {
	h, err := reg.Create(name)
	if err != nil {
		return nil, err
	}
	cfg, err := ConfigFromMap(options)
	if err != nil {
		h.Release()
		return nil, err
	}
	if err := h.Initialize(cfg); err != nil {
		h.Release()
		return nil, err
	}
	return &SurfaceMaterial{name: name, handle: h}, nil
}

// NewWith builds a material from a typed option set.
func NewWith(reg *Registry, opts OptionSet) (*SurfaceMaterial, error) {
	return NewFrom(reg, opts.Kind(), opts.Options())
}

func (m *SurfaceMaterial) Name() string { return m.name }

// Handle returns the owned handle, or nil once the material is closed.
func (m *SurfaceMaterial) Handle() *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle
}

func (m *SurfaceMaterial) BSDF(uv mgl32.Vec2) (bsdf.BSDF, error) {
	h := m.Handle()
	if h == nil {
		return nil, ErrReleased
	}
	return h.BSDF(uv)
}

func (m *SurfaceMaterial) Pack() (core.Material, error) {
	h := m.Handle()
	if h == nil {
		return core.Material{}, ErrReleased
	}
	return h.Pack()
}

// Close releases the handle. It is safe to call more than once.
func (m *SurfaceMaterial) Close() error {
	m.mu.Lock()
	h := m.handle
	m.handle = nil
	m.mu.Unlock()
	if h == nil {
		return nil
	}
	return h.Release()
}
