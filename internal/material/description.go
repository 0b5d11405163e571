package material

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TextureRef is a non-owning reference to a GPU texture by its GL name.
// Texture lifetime is managed by the caller's texture cache; the zero value
// (GL name 0) means "no texture".
type TextureRef uint32

// Valid reports whether the reference points at an actual texture.
func (t TextureRef) Valid() bool {
	return t != 0
}

// ClearCoatLayer describes an optional clear coat on top of the base
// material. A Factor of 0 disables the entire layer regardless of what else
// is set, per the glTF KHR_materials_clearcoat convention.
type ClearCoatLayer struct {
	Factor             float32
	Roughness          float32
	NormalTextureScale float32
	FactorTexture      TextureRef
	RoughnessTexture   TextureRef
	NormalTexture      TextureRef
}

// NewClearCoatLayer returns a clear coat layer with glTF defaults
// (factor 0, roughness 0, normal scale 1).
func NewClearCoatLayer() *ClearCoatLayer {
	return &ClearCoatLayer{NormalTextureScale: 1}
}

// IORLayer overrides the base material's index of refraction.
type IORLayer struct {
	IOR float32
}

// SpecularLayer tints and scales the specular reflection of the base layer.
type SpecularLayer struct {
	Factor        float32
	ColorFactor   mgl32.Vec3
	FactorTexture TextureRef
	ColorTexture  TextureRef
}

// NewSpecularLayer returns a specular layer with glTF defaults
// (factor 1, white color factor).
func NewSpecularLayer() *SpecularLayer {
	return &SpecularLayer{Factor: 1, ColorFactor: mgl32.Vec3{1, 1, 1}}
}

// AnisotropyLayer stretches the specular highlight along a tangent-space
// direction. Strength and Rotation each have a legacy alias used by early
// adopters of the extension; a nil field means the attribute is absent and
// the alias (or the default) is consulted instead.
type AnisotropyLayer struct {
	// Strength in [-1, 1]. Anisotropy is the legacy alias for the same
	// concept; Strength wins when both are set.
	Strength   *float32
	Anisotropy *float32

	// Rotation is an angle in radians counter-clockwise from the tangent.
	// Direction is the legacy alias; Rotation wins when both are set.
	Rotation  *float32
	Direction *float32

	Texture TextureRef
}

// TransmissionLayer makes the base layer transmissive (glass-like).
type TransmissionLayer struct {
	Factor  float32
	Texture TextureRef
}

// VolumeLayer gives a transmissive material interior thickness and
// attenuation.
type VolumeLayer struct {
	ThicknessFactor float32
	// AttenuationDistance of 0 (or +Inf) means no attenuation.
	AttenuationDistance float32
	AttenuationColor    mgl32.Vec3
	ThicknessTexture    TextureRef
}

// NewVolumeLayer returns a volume layer with glTF defaults
// (thickness 0, unset attenuation distance, white attenuation color).
func NewVolumeLayer() *VolumeLayer {
	return &VolumeLayer{AttenuationColor: mgl32.Vec3{1, 1, 1}}
}

// Description is the full, layered description of a PBR material: a base
// metallic-roughness layer plus optional extension layers. A nil layer
// pointer means the layer is absent. All texture references are weak; the
// description never owns GPU resources.
type Description struct {
	BaseColor     mgl32.Vec4
	Roughness     float32
	Metalness     float32
	EmissiveColor mgl32.Vec3

	// TextureTransform applies to every texture channel of the material.
	TextureTransform mgl32.Mat3

	BaseColorTexture         TextureRef
	MetallicRoughnessTexture TextureRef
	NormalTexture            TextureRef
	NormalTextureScale       float32
	EmissiveTexture          TextureRef

	DoubleSided       bool
	PerVertexObjectID bool

	ClearCoat    *ClearCoatLayer
	IOR          *IORLayer
	Specular     *SpecularLayer
	Anisotropy   *AnisotropyLayer
	Transmission *TransmissionLayer
	Volume       *VolumeLayer
}

// NewDescription returns a description with glTF base-layer defaults and no
// extension layers.
func NewDescription() *Description {
	return &Description{
		BaseColor:          mgl32.Vec4{1, 1, 1, 1},
		Roughness:          1,
		Metalness:          1,
		NormalTextureScale: 1,
		TextureTransform:   mgl32.Ident3(),
	}
}
