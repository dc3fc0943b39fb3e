package surface

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gekko3d/surface/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	VOXMagicNumber = "VOX "
)

type VoxPalette [256][4]byte // RGBA colors

// VoxMaterial is a MATL chunk: a palette index and its property dictionary.
type VoxMaterial struct {
	ID       int
	Property map[string]string
}

// VoxMaterials is the material part of a .vox file. Geometry chunks are skipped.
type VoxMaterials struct {
	Version   int
	Palette   VoxPalette
	Materials []VoxMaterial
}

func LoadVoxMaterials(filename string) (*VoxMaterials, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadVoxMaterials(file)
}

func ReadVoxMaterials(r io.Reader) (*VoxMaterials, error) {
	// Read and verify magic number
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if string(magic[:]) != VOXMagicNumber {
		return nil, ErrInvalidVox
	}

	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}

	vox := &VoxMaterials{
		Version: int(version),
		Palette: defaultPalette(),
	}

	// Chunks are read flat; MAIN has no content of its own so its children
	// simply follow.
	for {
		var chunkID [4]byte
		if _, err := io.ReadFull(r, chunkID[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		var chunkSize, childrenSize int32
		if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &childrenSize); err != nil {
			return nil, err
		}
		if chunkSize < 0 {
			return nil, fmt.Errorf("%w: chunk %q has negative size", ErrInvalidVox, chunkID[:])
		}

		id := string(chunkID[:])
		if id != "RGBA" && id != "MATL" {
			if _, err := io.CopyN(io.Discard, r, int64(chunkSize)); err != nil {
				return nil, fmt.Errorf("%w: chunk %q: %v", ErrInvalidVox, id, err)
			}
			continue
		}
		if chunkSize > maxVoxChunk {
			return nil, fmt.Errorf("%w: chunk %q is %d bytes", ErrInvalidVox, id, chunkSize)
		}
		chunkData := make([]byte, chunkSize)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return nil, err
		}

		switch id {
		case "RGBA":
			for i := 0; i < 255; i++ {
				offset := i * 4
				if offset+3 >= len(chunkData) {
					break
				}
				copy(vox.Palette[i+1][:], chunkData[offset:offset+4])
			}
		case "MATL":
			mat, err := parseMaterial(chunkData)
			if err != nil {
				return nil, err
			}
			vox.Materials = append(vox.Materials, mat)
		}
	}

	return vox, nil
}

// maxVoxChunk bounds the palette and material chunks that are read into memory.
const maxVoxChunk = 1 << 20

var errVoxTruncated = errors.New("MATL chunk truncated")

type chunkReader struct {
	data []byte
}

func (c *chunkReader) int32() (int32, error) {
	if len(c.data) < 4 {
		return 0, errVoxTruncated
	}
	v := int32(binary.LittleEndian.Uint32(c.data[:4]))
	c.data = c.data[4:]
	return v, nil
}

func (c *chunkReader) string() (string, error) {
	n, err := c.int32()
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > len(c.data) {
		return "", errVoxTruncated
	}
	s := string(c.data[:n])
	c.data = c.data[n:]
	return s, nil
}

func parseMaterial(data []byte) (VoxMaterial, error) {
	c := &chunkReader{data: data}
	id, err := c.int32()
	if err != nil {
		return VoxMaterial{}, fmt.Errorf("%w: %w", ErrInvalidVox, err)
	}
	count, err := c.int32()
	if err != nil {
		return VoxMaterial{}, fmt.Errorf("%w: %w", ErrInvalidVox, err)
	}

	mat := VoxMaterial{ID: int(id), Property: make(map[string]string)}
	for i := int32(0); i < count; i++ {
		key, err := c.string()
		if err != nil {
			return VoxMaterial{}, fmt.Errorf("%w: material %d: %w", ErrInvalidVox, id, err)
		}
		value, err := c.string()
		if err != nil {
			return VoxMaterial{}, fmt.Errorf("%w: material %d: %w", ErrInvalidVox, id, err)
		}
		mat.Property[key] = value
	}
	return mat, nil
}

func defaultPalette() VoxPalette {
	var palette VoxPalette
	for i := range palette {
		palette[i] = [4]uint8{255, 255, 255, 255} // white as fallback
	}
	return palette
}

func (m VoxMaterial) float(key string) (float32, bool) {
	s, ok := m.Property[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func (m VoxMaterial) floatOr(key string, def float32) float32 {
	if f, ok := m.float(key); ok {
		return f
	}
	return def
}

// ior reads _ior, which MagicaVoxel stores as an offset from 1.
func (m VoxMaterial) ior() (float32, bool) {
	f, ok := m.float("_ior")
	if !ok {
		return 0, false
	}
	if f < 1 {
		f += 1
	}
	return mgl32.Clamp(f, 1, 4), true
}

// Definition maps the material's _type and properties onto a built-in kind,
// clamping values into the ranges that kind accepts.
func (m VoxMaterial) Definition(color [4]uint8) Definition {
	c := core.UnpackColor(color)
	def := Definition{
		Name:    fmt.Sprintf("vox_%d", m.ID),
		Options: map[string]any{"color": c},
	}

	unit := func(key, option string) {
		if f, ok := m.float(key); ok {
			def.Options[option] = mgl32.Clamp(f, 0, 1)
		}
	}
	withIOR := func() {
		if ior, ok := m.ior(); ok {
			def.Options["ior"] = ior
		}
	}

	switch m.Property["_type"] {
	case "_metal":
		def.Type = KindPBR
		def.Options["metalness"] = mgl32.Clamp(m.floatOr("_metal", 1), 0, 1)
		unit("_rough", "roughness")
		withIOR()
	case "_glass":
		// Partially transparent or rough glass needs the pbr kind.
		trans := mgl32.Clamp(m.floatOr("_trans", 1), 0, 1)
		rough := mgl32.Clamp(m.floatOr("_rough", 0), 0, 1)
		def.Type = KindGlass
		if trans < 1 || rough > 0 {
			def.Type = KindPBR
			def.Options["transparency"] = trans
			def.Options["roughness"] = rough
		}
		withIOR()
	case "_emit":
		def.Type = KindEmissive
		power := m.floatOr("_emit", 1) * m.floatOr("_flux", 1)
		def.Options["intensity"] = max(power, 0)
	case "_blend", "_media":
		def.Type = KindPBR
		unit("_trans", "transparency")
		unit("_rough", "roughness")
		unit("_metal", "metalness")
		withIOR()
	default:
		def.Type = KindDiffuse
	}
	return def
}

// BuildVoxMaterials constructs a surface material for every MATL entry that
// names a palette index. On failure nothing is left allocated.
func BuildVoxMaterials(reg *Registry, vox *VoxMaterials) (map[int]*SurfaceMaterial, error) {
	built := make(map[int]*SurfaceMaterial, len(vox.Materials))
	release := func() {
		for _, m := range built {
			m.Close()
		}
	}
	for _, vm := range vox.Materials {
		if vm.ID <= 0 || vm.ID >= len(vox.Palette) {
			continue
		}
		def := vm.Definition(vox.Palette[vm.ID])
		m, err := NewFrom(reg, def.Type, def.Options)
		if err != nil {
			release()
			return nil, fmt.Errorf("vox material %d: %w", vm.ID, err)
		}
		if old, ok := built[vm.ID]; ok {
			old.Close()
		}
		built[vm.ID] = m
	}
	return built, nil
}
