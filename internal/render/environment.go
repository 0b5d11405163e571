package render

import (
	"fmt"

	"pbrview/internal/material"
)

// EnvironmentMaps is the image-based-lighting resource set: an irradiance
// cube map, a BRDF lookup table and a prefiltered environment cube map with
// its mip chain depth. The references are borrowed; ownership stays with
// whoever uploaded the maps. Holding an EnvironmentMaps alone does not
// enable IBL — the drawable opts in at construction.
type EnvironmentMaps struct {
	Irradiance  material.TextureRef
	BrdfLUT     material.TextureRef
	Prefiltered material.TextureRef
	MipLevels   uint32
}

// ShadowMapManager resolves shadow map keys to variance shadow cube maps.
// Drawables borrow the resolved references per draw.
type ShadowMapManager struct {
	maps map[string]material.TextureRef
}

// NewShadowMapManager returns an empty manager.
func NewShadowMapManager() *ShadowMapManager {
	return &ShadowMapManager{maps: make(map[string]material.TextureRef)}
}

// Set registers (or replaces) the cube map for key.
func (m *ShadowMapManager) Set(key string, tex material.TextureRef) {
	m.maps[key] = tex
}

// Get resolves key to its cube map; a missing key is a wiring bug and
// panics.
func (m *ShadowMapManager) Get(key string) material.TextureRef {
	tex, ok := m.maps[key]
	if !ok {
		panic(fmt.Sprintf("render.ShadowMapManager.Get: no shadow map %q", key))
	}
	return tex
}
