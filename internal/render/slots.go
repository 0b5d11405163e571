package render

// Fixed texture unit assignments. Every texture-bearing feature owns one
// reserved unit whether or not it is enabled, so unit numbers never collide
// across program variants; a unit is only bound when its feature flag is
// set. The sampler order must match the fragment shader.
const (
	unitBaseColor = iota
	unitMetallicRoughness
	unitNormal
	unitEmissive
	unitClearCoatFactor
	unitClearCoatRoughness
	unitClearCoatNormal
	unitSpecularFactor
	unitSpecularColor
	unitAnisotropy
	unitTransmission
	unitVolumeThickness
	unitIrradianceMap
	unitBrdfLUT
	unitPrefilteredMap
	unitShadowMap0
	unitShadowMap1
	unitShadowMap2
)

// maxShadowMaps bounds the shadow cube maps a drawable may bind.
const maxShadowMaps = 3
