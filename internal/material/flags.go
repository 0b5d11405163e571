package material

import "fmt"

// Flags is the capability bit set derived from a material description. Each
// optional rendering feature gets its own independent bit; a layer-texture
// bit is only ever set together with its parent layer bit. Flags never
// change after extraction, with the single exception of FlagShadowsVSM
// which a drawable ORs in when shadow data is attached.
type Flags uint32

const (
	// FlagObjectID is set on every extracted material: the fragment shader
	// always writes an object id output.
	FlagObjectID Flags = 1 << iota

	FlagBaseColorTexture
	FlagMetallicRoughnessTexture
	FlagNormalTexture
	FlagEmissiveTexture

	// FlagTextureTransform is set when the material's aggregate texture
	// transform differs from identity.
	FlagTextureTransform

	// FlagPrecomputedTangent enables the tangent-space vertex input path
	// for normal mapping; only set when the mesh supplies tangents.
	FlagPrecomputedTangent

	FlagDoubleSided
	FlagInstancedObjectID

	FlagClearCoat
	FlagClearCoatTexture
	FlagClearCoatRoughnessTexture
	FlagClearCoatNormalTexture

	FlagSpecular
	FlagSpecularTexture
	FlagSpecularColorTexture

	FlagAnisotropy
	FlagAnisotropyTexture

	FlagTransmission
	FlagTransmissionTexture

	FlagVolume
	FlagVolumeThicknessTexture

	FlagDebugDisplay
	FlagShadowsVSM
	FlagImageBasedLighting
)

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// AnyTexture reports whether any texture channel is active across the base
// layer and all extension layers. The anisotropy layer counts even without
// its own texture: it always samples tangent-space coordinates.
func (f Flags) AnyTexture() bool {
	const textureMask = FlagBaseColorTexture | FlagMetallicRoughnessTexture |
		FlagNormalTexture | FlagEmissiveTexture |
		FlagClearCoatTexture | FlagClearCoatRoughnessTexture | FlagClearCoatNormalTexture |
		FlagSpecularTexture | FlagSpecularColorTexture |
		FlagAnisotropy | FlagAnisotropyTexture |
		FlagTransmissionTexture | FlagVolumeThicknessTexture
	return f&textureMask != 0
}

func (f Flags) String() string {
	return fmt.Sprintf("0x%06x", uint32(f))
}
