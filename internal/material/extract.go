package material

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Extract derives the capability flag set and the cached snapshot from a
// material description. hasTangents tells the extractor whether the mesh
// carries precomputed tangents, which enables the optimized tangent-space
// path for normal mapping.
//
// Extract is pure and total: every attribute is optional, absence falls
// back to the documented default, and the same description always produces
// the same (flags, snapshot) pair.
func Extract(desc *Description, hasTangents bool) (Flags, Snapshot) {
	flags := FlagObjectID
	snap := defaultSnapshot()

	snap.BaseColor = desc.BaseColor
	snap.Roughness = desc.Roughness
	snap.Metalness = desc.Metalness
	snap.EmissiveColor = desc.EmissiveColor

	if desc.TextureTransform != mgl32.Ident3() {
		flags |= FlagTextureTransform
		snap.TextureTransform = desc.TextureTransform
	}
	if desc.BaseColorTexture.Valid() {
		flags |= FlagBaseColorTexture
		snap.BaseColorTexture = desc.BaseColorTexture
	}
	if desc.MetallicRoughnessTexture.Valid() {
		flags |= FlagMetallicRoughnessTexture
		snap.MetallicRoughnessTexture = desc.MetallicRoughnessTexture
	}
	if desc.NormalTexture.Valid() {
		flags |= FlagNormalTexture
		snap.NormalTexture = desc.NormalTexture
		snap.NormalTextureScale = desc.NormalTextureScale
		if hasTangents {
			flags |= FlagPrecomputedTangent
		}
	}
	if desc.EmissiveTexture.Valid() {
		flags |= FlagEmissiveTexture
		snap.EmissiveTexture = desc.EmissiveTexture
	}
	if desc.PerVertexObjectID {
		flags |= FlagInstancedObjectID
	}
	if desc.DoubleSided {
		flags |= FlagDoubleSided
	}

	// A zero layer factor disables the entire clear coat, independent of
	// any other clear coat attributes being present.
	if cc := desc.ClearCoat; cc != nil && cc.Factor > 0 {
		flags |= FlagClearCoat
		snap.ClearCoat.Factor = cc.Factor
		snap.ClearCoat.Roughness = cc.Roughness
		if cc.FactorTexture.Valid() {
			flags |= FlagClearCoatTexture
			snap.ClearCoat.FactorTexture = cc.FactorTexture
		}
		if cc.RoughnessTexture.Valid() {
			flags |= FlagClearCoatRoughnessTexture
			snap.ClearCoat.RoughnessTexture = cc.RoughnessTexture
		}
		if cc.NormalTexture.Valid() {
			flags |= FlagClearCoatNormalTexture
			snap.ClearCoat.NormalTexture = cc.NormalTexture
			snap.ClearCoat.NormalTextureScale = cc.NormalTextureScale
		}
	}

	if ior := desc.IOR; ior != nil {
		snap.IOR = ior.IOR
	}

	if sp := desc.Specular; sp != nil {
		flags |= FlagSpecular
		snap.Specular.Factor = mgl32.Clamp(sp.Factor, 0, 1)
		snap.Specular.ColorFactor = sp.ColorFactor
		if sp.FactorTexture.Valid() {
			flags |= FlagSpecularTexture
			snap.Specular.FactorTexture = sp.FactorTexture
		}
		if sp.ColorTexture.Valid() {
			flags |= FlagSpecularColorTexture
			snap.Specular.ColorTexture = sp.ColorTexture
		}
	}

	if an := desc.Anisotropy; an != nil {
		if strength := firstPresent(an.Strength, an.Anisotropy); strength != nil && math32.Abs(*strength) > 0 {
			flags |= FlagAnisotropy
			snap.Anisotropy.Factor = mgl32.Clamp(*strength, -1, 1)
		}
		if rotation := firstPresent(an.Rotation, an.Direction); rotation != nil && *rotation != 0 {
			flags |= FlagAnisotropy
			snap.Anisotropy.Direction = mgl32.Vec2{math32.Cos(*rotation), math32.Sin(*rotation)}
		}
		if an.Texture.Valid() {
			// The texture alone implies the layer, independent of the
			// numeric strength and rotation values.
			flags |= FlagAnisotropy | FlagAnisotropyTexture
			snap.Anisotropy.Texture = an.Texture
		}
	}

	if tr := desc.Transmission; tr != nil {
		flags |= FlagTransmission
		snap.Transmission.Factor = tr.Factor
		if tr.Texture.Valid() {
			flags |= FlagTransmissionTexture
			snap.Transmission.Texture = tr.Texture
		}
	}

	if vol := desc.Volume; vol != nil {
		flags |= FlagVolume
		snap.Volume.ThicknessFactor = vol.ThicknessFactor
		snap.Volume.AttenuationColor = vol.AttenuationColor
		// Zero and infinite both mean "no attenuation"; keep the +Inf
		// default for either.
		if vol.AttenuationDistance > 0 && !math32.IsInf(vol.AttenuationDistance, 1) {
			snap.Volume.AttenuationDistance = vol.AttenuationDistance
		}
		if vol.ThicknessTexture.Valid() {
			flags |= FlagVolumeThicknessTexture
			snap.Volume.ThicknessTexture = vol.ThicknessTexture
		}
	}

	return flags, snap
}

// firstPresent resolves a legacy attribute alias pair: the first non-nil
// value wins, absence of both yields nil.
func firstPresent(primary, alias *float32) *float32 {
	if primary != nil {
		return primary
	}
	return alias
}
