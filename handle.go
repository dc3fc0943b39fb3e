package surface

import (
	"fmt"
	"io"
	"sync"

	"github.com/gekko3d/surface/rt/bsdf"
	"github.com/gekko3d/surface/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type handleState int

const (
	stateAllocated handleState = iota
	stateInitialized
	stateReleased
)

// Handle exclusively owns one native material from allocation until Release.
type Handle struct {
	id   uuid.UUID
	kind string
	reg  *Registry

	mu     sync.Mutex
	state  handleState
	native Native
}

func (h *Handle) ID() uuid.UUID { return h.id }
func (h *Handle) Kind() string  { return h.kind }

// Initialize configures the material. It may succeed only once.
func (h *Handle) Initialize(cfg Config) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch h.state {
	case stateReleased:
		return ErrReleased
	case stateInitialized:
		return fmt.Errorf("%s material %s: %w", h.kind, h.id, ErrAlreadyInitialized)
	}
	if err := h.native.Initialize(cfg); err != nil {
		h.reg.logger.Warnf("initialize %s material %s: %v", h.kind, h.id, err)
		return err
	}
	h.state = stateInitialized
	return nil
}

func (h *Handle) ready() error {
	switch h.state {
	case stateReleased:
		return ErrReleased
	case stateAllocated:
		return ErrNotInitialized
	}
	return nil
}

// BSDF returns the scattering model at surface coordinate uv.
func (h *Handle) BSDF(uv mgl32.Vec2) (bsdf.BSDF, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ready(); err != nil {
		return nil, err
	}
	return h.native.BSDF(uv), nil
}

func (h *Handle) Pack() (core.Material, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ready(); err != nil {
		return core.Material{}, err
	}
	return h.native.Pack(), nil
}

func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == stateReleased
}

// Release frees the native material. Calling it again is a no-op.
func (h *Handle) Release() error {
	h.mu.Lock()
	if h.state == stateReleased {
		h.mu.Unlock()
		return nil
	}
	h.state = stateReleased
	native := h.native
	h.native = nil
	h.mu.Unlock()

	var err error
	if c, ok := native.(io.Closer); ok {
		err = c.Close()
		if err != nil {
			h.reg.logger.Warnf("close %s material %s: %v", h.kind, h.id, err)
		}
	}
	h.reg.forget(h)
	return err
}
