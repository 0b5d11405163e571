package material

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ClearCoatState is the extracted clear coat layer data.
type ClearCoatState struct {
	Factor             float32
	Roughness          float32
	NormalTextureScale float32
	FactorTexture      TextureRef
	RoughnessTexture   TextureRef
	NormalTexture      TextureRef
}

// SpecularState is the extracted specular layer data.
type SpecularState struct {
	Factor        float32
	ColorFactor   mgl32.Vec3
	FactorTexture TextureRef
	ColorTexture  TextureRef
}

// AnisotropyState is the extracted anisotropy layer data. The rotation
// angle is resolved to a unit direction vector at extraction time.
type AnisotropyState struct {
	Factor    float32
	Direction mgl32.Vec2
	Texture   TextureRef
}

// TransmissionState is the extracted transmission layer data.
type TransmissionState struct {
	Factor  float32
	Texture TextureRef
}

// VolumeState is the extracted volume layer data.
type VolumeState struct {
	ThicknessFactor     float32
	AttenuationDistance float32
	AttenuationColor    mgl32.Vec3
	ThicknessTexture    TextureRef
}

// Snapshot is the plain cached data a drawable keeps after flag extraction.
// It is immutable once extracted; assigning a new material to a drawable
// re-extracts the whole snapshot.
type Snapshot struct {
	BaseColor     mgl32.Vec4
	Roughness     float32
	Metalness     float32
	EmissiveColor mgl32.Vec3
	IOR           float32

	TextureTransform mgl32.Mat3

	BaseColorTexture         TextureRef
	MetallicRoughnessTexture TextureRef
	NormalTexture            TextureRef
	NormalTextureScale       float32
	EmissiveTexture          TextureRef

	ClearCoat    ClearCoatState
	Specular     SpecularState
	Anisotropy   AnisotropyState
	Transmission TransmissionState
	Volume       VolumeState
}

// defaultSnapshot carries the documented fallback for every attribute that
// can be absent from a description.
func defaultSnapshot() Snapshot {
	return Snapshot{
		BaseColor:          mgl32.Vec4{1, 1, 1, 1},
		Roughness:          1,
		Metalness:          1,
		IOR:                1.5,
		TextureTransform:   mgl32.Ident3(),
		NormalTextureScale: 1,
		ClearCoat:          ClearCoatState{NormalTextureScale: 1},
		Specular:           SpecularState{Factor: 1, ColorFactor: mgl32.Vec3{1, 1, 1}},
		Anisotropy:         AnisotropyState{Direction: mgl32.Vec2{1, 0}},
		Volume: VolumeState{
			AttenuationDistance: math32.Inf(1),
			AttenuationColor:    mgl32.Vec3{1, 1, 1},
		},
	}
}
