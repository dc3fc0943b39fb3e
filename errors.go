package surface

import "errors"

var (
	ErrEmptyName          = errors.New("empty material name")
	ErrUnknownMaterial    = errors.New("unknown surface material")
	ErrDuplicateMaterial  = errors.New("surface material already registered")
	ErrUnsupportedValue   = errors.New("unsupported option value")
	ErrUnknownOption      = errors.New("unknown option")
	ErrOptionType         = errors.New("option has wrong type")
	ErrOptionRange        = errors.New("option out of range")
	ErrAlreadyInitialized = errors.New("material already initialized")
	ErrNotInitialized     = errors.New("material not initialized")
	ErrReleased           = errors.New("material handle released")

	ErrUnsupportedFormat   = errors.New("unsupported material library format")
	ErrMissingType         = errors.New("material definition has no type")
	ErrUnknownDefinition   = errors.New("unknown material definition")
	ErrDuplicateDefinition = errors.New("material definition already exists")

	ErrInvalidVox = errors.New("not a valid VOX file")
)
