package surface

import (
	"fmt"

	"github.com/gekko3d/surface/rt/core"
)

// BuildMaterialTable packs one material per palette index. Index 0 is air
// and always fully transparent. Palette alpha below 255 raises transparency.
func BuildMaterialTable(palette VoxPalette, mats map[int]*SurfaceMaterial) ([]core.Material, error) {
	table := make([]core.Material, len(palette))

	for i, color := range palette {
		mat := core.DefaultMaterial()
		mat.BaseColor = color

		if sm, ok := mats[i]; ok {
			packed, err := sm.Pack()
			if err != nil {
				return nil, fmt.Errorf("palette index %d: %w", i, err)
			}
			mat = packed
			mat.BaseColor[3] = color[3]
		}

		if i == 0 {
			mat.Transparency = 1.0
		}

		// Infer transparency from palette alpha channel if not explicitly provided
		if color[3] < 255 {
			a := float32(color[3]) / 255.0
			t := float32(1.0) - a
			if t > mat.Transparency {
				mat.Transparency = t
			}
		}

		table[i] = mat
	}
	return table, nil
}
