package surface

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/gekko3d/surface/rt/bsdf"
	"github.com/gekko3d/surface/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Native is the material object a Factory allocates. It may also implement
// io.Closer to free resources on release and expose a Schema() Schema method.
type Native interface {
	Initialize(cfg Config) error
	BSDF(uv mgl32.Vec2) bsdf.BSDF
	Pack() core.Material
}

type Factory func() Native

type RegistryOption func(*Registry)

func WithLogger(l Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Registry resolves material names to factories and tracks the handles it
// has allocated. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	aliases   map[string]string
	live      map[uuid.UUID]*Handle
	logger    Logger
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		aliases:   make(map[string]string),
		live:      make(map[uuid.UUID]*Handle),
		logger:    NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry returns a fresh registry holding the built-in kinds.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	registerBuiltins(r)
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry { return NewDefaultRegistry() })

// DefaultRegistry is the process wide registry used by New.
func DefaultRegistry() *Registry { return defaultRegistry() }

func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return ErrEmptyName
	}
	if f == nil {
		return fmt.Errorf("register %q: nil factory", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, name)
	}
	r.factories[name] = f
	return nil
}

// Alias makes alias resolve to an already registered target.
func (r *Registry) Alias(alias, target string) error {
	if alias == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(alias) {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, alias)
	}
	if _, ok := r.factories[target]; !ok {
		return fmt.Errorf("alias %q: %w: %q", alias, ErrUnknownMaterial, target)
	}
	r.aliases[alias] = target
	return nil
}

func (r *Registry) taken(name string) bool {
	_, isFactory := r.factories[name]
	_, isAlias := r.aliases[name]
	return isFactory || isAlias
}

// Names lists registered kinds, without aliases.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

func (r *Registry) lookup(name string) (string, Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	f, ok := r.factories[name]
	return name, f, ok
}

// Create allocates an uninitialized handle for the named kind.
func (r *Registry) Create(name string) (*Handle, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	kind, factory, ok := r.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	native := factory()
	if native == nil {
		return nil, fmt.Errorf("create %q: factory returned nil", name)
	}

	h := &Handle{
		id:     uuid.New(),
		kind:   kind,
		native: native,
		reg:    r,
	}
	r.mu.Lock()
	r.live[h.id] = h
	r.mu.Unlock()

	r.logger.Debugf("allocated %s material %s", kind, h.id)
	return h, nil
}

// Schema returns the documented options of a kind, if it publishes them.
func (r *Registry) Schema(name string) (Schema, bool) {
	_, factory, ok := r.lookup(name)
	if !ok {
		return Schema{}, false
	}
	native := factory()
	if c, ok := native.(io.Closer); ok {
		defer c.Close()
	}
	s, ok := native.(interface{ Schema() Schema })
	if !ok {
		return Schema{}, false
	}
	return s.Schema(), true
}

// Live reports how many handles are allocated and not yet released.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.live)
}

func (r *Registry) forget(h *Handle) {
	r.mu.Lock()
	delete(r.live, h.id)
	r.mu.Unlock()
	r.logger.Debugf("released %s material %s", h.kind, h.id)
}
