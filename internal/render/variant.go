package render

import (
	"fmt"

	"pbrview/internal/lighting"
	"pbrview/internal/material"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// variantKey identifies one compiled program variant by value: equal keys
// always resolve to the same shared variant.
type variantKey struct {
	flags  material.Flags
	lights int
}

func (k variantKey) String() string {
	return fmt.Sprintf("lights=%d flags=%s", k.lights, k.flags)
}

// DebugDisplay selects a per-pixel debug visualization for variants built
// with material.FlagDebugDisplay.
type DebugDisplay int32

const (
	DebugNone DebugDisplay = iota
	DebugDiffuse
	DebugSpecular
	DebugNormal
)

// EquationScales mix direct lighting against image-based lighting. The
// neutral value (all 1) applies each enabled path at full weight.
type EquationScales struct {
	DirectDiffuse  float32
	DirectSpecular float32
	IBLDiffuse     float32
	IBLSpecular    float32
}

// Variant is one compiled program specialized for a (flags, light count)
// pair. It is immutable after construction apart from uniform uploads, and
// shared via the VariantCache across every drawable with the same key.
//
// Setters for lighting-dependent parameters are no-ops when the variant is
// unlit (no lights, no IBL): the compiled program has no such state then.
// Binding a texture for a feature whose flag is not set is a programming
// error and panics.
type Variant struct {
	device Device
	key    variantKey

	program  uint32
	lit      bool
	textured bool

	projMatrix   int32
	viewMatrix   int32
	modelMatrix  int32
	normalMatrix int32

	objectID       int32
	textureMatrix  int32
	cameraWorldPos int32

	baseColor     int32
	roughness     int32
	metallic      int32
	ior           int32
	emissiveColor int32

	normalTextureScale int32

	clearCoatFactor      int32
	clearCoatRoughness   int32
	clearCoatNormalScale int32

	specularFactor int32
	specularColor  int32

	anisotropyFactor    int32
	anisotropyDirection int32

	lightVectors int32
	lightColors  int32
	lightRanges  int32

	prefilteredMipLevels int32
	componentScales      int32
	debugDisplay         int32
}

// newVariant compiles and links the program for (flags, lightCount),
// assigns texture units for enabled channels, resolves parameter handles
// for enabled features only, and pushes one-time defaults. A compilation or
// link failure is a defect in the shipped feature matrix and panics.
func newVariant(dev Device, flags material.Flags, lightCount int) *Variant {
	key := variantKey{flags: flags, lights: lightCount}
	vertSrc, fragSrc := variantSources(flags, lightCount)
	program, err := dev.CompileProgram(vertSrc, fragSrc)
	if err != nil {
		panic(fmt.Sprintf("render.newVariant: %v: %v", key, err))
	}

	v := &Variant{
		device:   dev,
		key:      key,
		program:  program,
		lit:      lightCount > 0 || flags.Has(material.FlagImageBasedLighting),
		textured: flags.AnyTexture(),

		projMatrix:           -1,
		viewMatrix:           -1,
		modelMatrix:          -1,
		normalMatrix:         -1,
		objectID:             -1,
		textureMatrix:        -1,
		cameraWorldPos:       -1,
		baseColor:            -1,
		roughness:            -1,
		metallic:             -1,
		ior:                  -1,
		emissiveColor:        -1,
		normalTextureScale:   -1,
		clearCoatFactor:      -1,
		clearCoatRoughness:   -1,
		clearCoatNormalScale: -1,
		specularFactor:       -1,
		specularColor:        -1,
		anisotropyFactor:     -1,
		anisotropyDirection:  -1,
		lightVectors:         -1,
		lightColors:          -1,
		lightRanges:          -1,
		prefilteredMipLevels: -1,
		componentScales:      -1,
		debugDisplay:         -1,
	}

	dev.UseProgram(program)
	v.assignTextureUnits(flags)
	v.resolveHandles(flags, lightCount)
	v.pushDefaults(flags, lightCount)
	return v
}

// assignTextureUnits points each enabled sampler at its reserved unit.
// Units are fixed per feature so they never collide across variants.
func (v *Variant) assignTextureUnits(flags material.Flags) {
	sampler := func(name string, unit int) {
		v.device.SetUniformInt(v.device.UniformLocation(v.program, name), int32(unit))
	}

	if v.lit {
		if flags.Has(material.FlagBaseColorTexture) {
			sampler("uBaseColorTexture", unitBaseColor)
		}
		if flags.Has(material.FlagMetallicRoughnessTexture) {
			sampler("uMetallicRoughnessTexture", unitMetallicRoughness)
		}
		if flags.Has(material.FlagNormalTexture) {
			sampler("uNormalTexture", unitNormal)
		}
		if flags.Has(material.FlagClearCoat) {
			if flags.Has(material.FlagClearCoatTexture) {
				sampler("uClearCoatTexture", unitClearCoatFactor)
			}
			if flags.Has(material.FlagClearCoatRoughnessTexture) {
				sampler("uClearCoatRoughnessTexture", unitClearCoatRoughness)
			}
			if flags.Has(material.FlagClearCoatNormalTexture) {
				sampler("uClearCoatNormalTexture", unitClearCoatNormal)
			}
		}
		if flags.Has(material.FlagSpecular) {
			if flags.Has(material.FlagSpecularTexture) {
				sampler("uSpecularLayerTexture", unitSpecularFactor)
			}
			if flags.Has(material.FlagSpecularColorTexture) {
				sampler("uSpecularLayerColorTexture", unitSpecularColor)
			}
		}
		if flags.Has(material.FlagAnisotropyTexture) {
			sampler("uAnisotropyLayerTexture", unitAnisotropy)
		}
	}

	// emissive does not depend on lighting
	if flags.Has(material.FlagEmissiveTexture) {
		sampler("uEmissiveTexture", unitEmissive)
	}

	if flags.Has(material.FlagImageBasedLighting) {
		sampler("uIrradianceMap", unitIrradianceMap)
		sampler("uBrdfLUT", unitBrdfLUT)
		sampler("uPrefilteredMap", unitPrefilteredMap)
	}

	if flags.Has(material.FlagShadowsVSM) {
		sampler("uShadowMap[0]", unitShadowMap0)
		sampler("uShadowMap[1]", unitShadowMap1)
		sampler("uShadowMap[2]", unitShadowMap2)
	}
}

// resolveHandles looks up the parameter handles the variant's feature set
// actually has. Handles for disabled features stay -1 and are never
// resolved: the compiled program has no such parameters.
func (v *Variant) resolveHandles(flags material.Flags, lightCount int) {
	loc := func(name string) int32 {
		return v.device.UniformLocation(v.program, name)
	}

	v.projMatrix = loc("uProjectionMatrix")
	v.viewMatrix = loc("uViewMatrix")
	v.modelMatrix = loc("uModelMatrix")
	v.normalMatrix = loc("uNormalMatrix")
	v.cameraWorldPos = loc("uCameraWorldPos")

	if flags.Has(material.FlagObjectID) {
		v.objectID = loc("uObjectId")
	}
	if v.textured && flags.Has(material.FlagTextureTransform) {
		v.textureMatrix = loc("uTextureMatrix")
	}

	v.baseColor = loc("uMaterial.baseColor")
	v.roughness = loc("uMaterial.roughness")
	v.metallic = loc("uMaterial.metallic")
	v.ior = loc("uMaterial.ior")
	v.emissiveColor = loc("uMaterial.emissiveColor")

	if v.lit {
		if flags.Has(material.FlagNormalTexture) {
			v.normalTextureScale = loc("uNormalTextureScale")
		}
		if flags.Has(material.FlagClearCoat) {
			v.clearCoatFactor = loc("uClearCoat.factor")
			v.clearCoatRoughness = loc("uClearCoat.roughness")
			if flags.Has(material.FlagClearCoatNormalTexture) {
				v.clearCoatNormalScale = loc("uClearCoat.normalTextureScale")
			}
		}
		if flags.Has(material.FlagSpecular) {
			v.specularFactor = loc("uSpecularLayer.factor")
			v.specularColor = loc("uSpecularLayer.colorFactor")
		}
		if flags.Has(material.FlagAnisotropy) {
			v.anisotropyFactor = loc("uAnisotropyLayer.factor")
			v.anisotropyDirection = loc("uAnisotropyLayer.direction")
		}
	}

	if lightCount > 0 {
		v.lightVectors = loc("uLightDirections")
		v.lightColors = loc("uLightColors")
		v.lightRanges = loc("uLightRanges")
	}

	// the scales only mix when both direct lighting and IBL contribute;
	// otherwise the compiled program keeps its neutral default
	if lightCount > 0 && flags.Has(material.FlagImageBasedLighting) {
		v.componentScales = loc("uComponentScales")
	}

	if flags.Has(material.FlagImageBasedLighting) {
		v.prefilteredMipLevels = loc("uPrefilteredMapMipLevels")
	}
	if flags.Has(material.FlagDebugDisplay) {
		v.debugDisplay = loc("uPbrDebugDisplay")
	}
}

// pushDefaults uploads the one-time neutral state every fresh variant
// starts from.
func (v *Variant) pushDefaults(flags material.Flags, lightCount int) {
	v.SetProjectionMatrix(mgl32.Ident4())
	v.SetViewMatrix(mgl32.Ident4())
	v.SetModelMatrix(mgl32.Ident4())
	v.SetNormalMatrix(mgl32.Ident3())

	if v.lit {
		v.SetBaseColor(mgl32.Vec4{0.7, 0.7, 0.7, 0.7})
		v.SetRoughness(0)
		v.SetMetallic(1)
		v.SetIndexOfRefraction(1.5)
		if flags.Has(material.FlagNormalTexture) {
			v.SetNormalTextureScale(1)
		}
		if flags.Has(material.FlagClearCoat) {
			v.SetClearCoatFactor(0)
			v.SetClearCoatRoughness(0)
			if flags.Has(material.FlagClearCoatNormalTexture) {
				v.SetClearCoatNormalTextureScale(1)
			}
		}
		if flags.Has(material.FlagSpecular) {
			v.SetSpecularFactor(1)
			v.SetSpecularColorFactor(mgl32.Vec3{1, 1, 1})
		}
		if flags.Has(material.FlagAnisotropy) {
			v.SetAnisotropyFactor(0)
			v.SetAnisotropyDirection(mgl32.Vec2{1, 0})
		}
	}

	if lightCount > 0 {
		// a single directional fill light per slot, from the camera
		vectors := make([]mgl32.Vec4, lightCount)
		colors := make([]mgl32.Vec3, lightCount)
		ranges := make([]float32, lightCount)
		for i := range vectors {
			vectors[i] = mgl32.Vec4{0, 0, -1, 0}
			colors[i] = mgl32.Vec3{1, 1, 1}
			ranges[i] = math32.Inf(1)
		}
		v.SetLightVectors(vectors)
		v.SetLightColors(colors)
		v.SetLightRanges(ranges)
	}

	v.SetEmissiveColor(mgl32.Vec3{0, 0, 0})

	scales := EquationScales{DirectDiffuse: 1, DirectSpecular: 1, IBLDiffuse: 1, IBLSpecular: 1}
	if lightCount > 0 && flags.Has(material.FlagImageBasedLighting) {
		// Discount both paths when mixing so the ambient contribution is
		// not overpowering and glossy surfaces do not mirror the
		// environment.
		scales = EquationScales{DirectDiffuse: 0.5, DirectSpecular: 0.5, IBLDiffuse: 0.5, IBLSpecular: 0.5}
	}
	v.SetEquationScales(scales)

	if flags.Has(material.FlagDebugDisplay) {
		v.SetDebugDisplay(DebugNone)
	}
}

// Flags returns the capability set this variant was compiled for.
func (v *Variant) Flags() material.Flags {
	return v.key.flags
}

// LightCount returns the light slot count this variant was compiled for.
func (v *Variant) LightCount() int {
	return v.key.lights
}

// require panics with a diagnostic when a precondition does not hold.
func (v *Variant) require(ok bool, method, detail string) {
	if !ok {
		panic(fmt.Sprintf("render.Variant.%s: %s (%v)", method, detail, v.key))
	}
}

func (v *Variant) SetProjectionMatrix(m mgl32.Mat4) {
	v.device.SetUniformMat4(v.projMatrix, m)
}

func (v *Variant) SetViewMatrix(m mgl32.Mat4) {
	v.device.SetUniformMat4(v.viewMatrix, m)
}

func (v *Variant) SetModelMatrix(m mgl32.Mat4) {
	v.device.SetUniformMat4(v.modelMatrix, m)
}

func (v *Variant) SetNormalMatrix(m mgl32.Mat3) {
	v.device.SetUniformMat3(v.normalMatrix, m)
}

func (v *Variant) SetObjectID(id uint32) {
	if v.key.flags.Has(material.FlagObjectID) {
		v.device.SetUniformUint(v.objectID, id)
	}
}

func (v *Variant) SetCameraWorldPosition(pos mgl32.Vec3) {
	v.device.SetUniformVec3(v.cameraWorldPos, pos)
}

// SetTextureMatrix uploads the common texture transform. The upload only
// happens when any texture channel is present; the flag must be set.
func (v *Variant) SetTextureMatrix(m mgl32.Mat3) {
	v.require(v.key.flags.Has(material.FlagTextureTransform), "SetTextureMatrix",
		"variant compiled without texture transform")
	if v.textured {
		v.device.SetUniformMat3(v.textureMatrix, m)
	}
}

func (v *Variant) SetBaseColor(c mgl32.Vec4) {
	if v.lit {
		v.device.SetUniformVec4(v.baseColor, c)
	}
}

func (v *Variant) SetRoughness(roughness float32) {
	if v.lit {
		v.device.SetUniformFloat(v.roughness, roughness)
	}
}

func (v *Variant) SetMetallic(metallic float32) {
	if v.lit {
		v.device.SetUniformFloat(v.metallic, metallic)
	}
}

func (v *Variant) SetIndexOfRefraction(ior float32) {
	if v.lit {
		v.device.SetUniformFloat(v.ior, ior)
	}
}

func (v *Variant) SetEmissiveColor(c mgl32.Vec3) {
	v.device.SetUniformVec3(v.emissiveColor, c)
}

func (v *Variant) SetNormalTextureScale(scale float32) {
	v.require(v.key.flags.Has(material.FlagNormalTexture), "SetNormalTextureScale",
		"variant compiled without normal texture")
	if v.lit {
		v.device.SetUniformFloat(v.normalTextureScale, scale)
	}
}

func (v *Variant) SetClearCoatFactor(factor float32) {
	if v.lit {
		v.device.SetUniformFloat(v.clearCoatFactor, factor)
	}
}

func (v *Variant) SetClearCoatRoughness(roughness float32) {
	if v.lit {
		v.device.SetUniformFloat(v.clearCoatRoughness, roughness)
	}
}

func (v *Variant) SetClearCoatNormalTextureScale(scale float32) {
	if v.lit {
		v.device.SetUniformFloat(v.clearCoatNormalScale, scale)
	}
}

func (v *Variant) SetSpecularFactor(factor float32) {
	if v.lit {
		v.device.SetUniformFloat(v.specularFactor, factor)
	}
}

func (v *Variant) SetSpecularColorFactor(c mgl32.Vec3) {
	if v.lit {
		v.device.SetUniformVec3(v.specularColor, c)
	}
}

func (v *Variant) SetAnisotropyFactor(factor float32) {
	if v.lit {
		v.device.SetUniformFloat(v.anisotropyFactor, factor)
	}
}

func (v *Variant) SetAnisotropyDirection(dir mgl32.Vec2) {
	if v.lit {
		v.device.SetUniformVec2(v.anisotropyDirection, dir)
	}
}

// SetLightVectors uploads one pre-flipped direction-or-position vector per
// light slot; the slice length must match the variant's light count.
func (v *Variant) SetLightVectors(vectors []mgl32.Vec4) {
	v.require(len(vectors) == v.key.lights, "SetLightVectors",
		fmt.Sprintf("expected %d vectors, got %d", v.key.lights, len(vectors)))
	if v.key.lights > 0 {
		v.device.SetUniformVec4Slice(v.lightVectors, vectors)
	}
}

// SetLightColors uploads one intensity-premultiplied color per light slot.
func (v *Variant) SetLightColors(colors []mgl32.Vec3) {
	v.require(len(colors) == v.key.lights, "SetLightColors",
		fmt.Sprintf("expected %d colors, got %d", v.key.lights, len(colors)))
	if v.key.lights > 0 {
		v.device.SetUniformVec3Slice(v.lightColors, colors)
	}
}

// SetLightRanges uploads one range per light slot.
func (v *Variant) SetLightRanges(ranges []float32) {
	v.require(len(ranges) == v.key.lights, "SetLightRanges",
		fmt.Sprintf("expected %d ranges, got %d", v.key.lights, len(ranges)))
	if v.key.lights > 0 {
		v.device.SetUniformFloatSlice(v.lightRanges, ranges)
	}
}

// ApplyLights packs and uploads a light setup in one step. The variant's
// program must be current: uploads target whatever program is bound.
func (v *Variant) ApplyLights(setup lighting.Setup, transform, view mgl32.Mat4) {
	v.SetLightVectors(lighting.PackVectors(setup, transform, view))
	v.SetLightColors(lighting.PackColors(setup))
	v.SetLightRanges(lighting.Ranges(setup))
}

func (v *Variant) SetPrefilteredMapMipLevels(levels uint32) {
	v.require(v.key.flags.Has(material.FlagImageBasedLighting), "SetPrefilteredMapMipLevels",
		"variant compiled without image based lighting")
	v.device.SetUniformUint(v.prefilteredMipLevels, levels)
}

func (v *Variant) SetEquationScales(s EquationScales) {
	v.device.SetUniformVec4(v.componentScales,
		mgl32.Vec4{s.DirectDiffuse, s.DirectSpecular, s.IBLDiffuse, s.IBLSpecular})
}

func (v *Variant) SetDebugDisplay(mode DebugDisplay) {
	v.require(v.key.flags.Has(material.FlagDebugDisplay), "SetDebugDisplay",
		"variant compiled without debug display")
	v.device.SetUniformInt(v.debugDisplay, int32(mode))
}

func (v *Variant) BindBaseColorTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagBaseColorTexture), "BindBaseColorTexture",
		"variant compiled without base color texture")
	if v.lit {
		v.device.BindTexture2D(unitBaseColor, tex)
	}
}

func (v *Variant) BindMetallicRoughnessTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagMetallicRoughnessTexture), "BindMetallicRoughnessTexture",
		"variant compiled without metallic-roughness texture")
	if v.lit {
		v.device.BindTexture2D(unitMetallicRoughness, tex)
	}
}

func (v *Variant) BindNormalTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagNormalTexture), "BindNormalTexture",
		"variant compiled without normal texture")
	if v.lit {
		v.device.BindTexture2D(unitNormal, tex)
	}
}

// BindEmissiveTexture binds regardless of lighting: emission is visible on
// unlit variants too.
func (v *Variant) BindEmissiveTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagEmissiveTexture), "BindEmissiveTexture",
		"variant compiled without emissive texture")
	v.device.BindTexture2D(unitEmissive, tex)
}

func (v *Variant) BindClearCoatFactorTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagClearCoatTexture), "BindClearCoatFactorTexture",
		"variant compiled without clear coat factor texture")
	if v.lit {
		v.device.BindTexture2D(unitClearCoatFactor, tex)
	}
}

func (v *Variant) BindClearCoatRoughnessTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagClearCoatRoughnessTexture), "BindClearCoatRoughnessTexture",
		"variant compiled without clear coat roughness texture")
	if v.lit {
		v.device.BindTexture2D(unitClearCoatRoughness, tex)
	}
}

func (v *Variant) BindClearCoatNormalTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagClearCoatNormalTexture), "BindClearCoatNormalTexture",
		"variant compiled without clear coat normal texture")
	if v.lit {
		v.device.BindTexture2D(unitClearCoatNormal, tex)
	}
}

func (v *Variant) BindSpecularTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagSpecularTexture), "BindSpecularTexture",
		"variant compiled without specular layer texture")
	if v.lit {
		v.device.BindTexture2D(unitSpecularFactor, tex)
	}
}

func (v *Variant) BindSpecularColorTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagSpecularColorTexture), "BindSpecularColorTexture",
		"variant compiled without specular layer color texture")
	if v.lit {
		v.device.BindTexture2D(unitSpecularColor, tex)
	}
}

func (v *Variant) BindAnisotropyTexture(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagAnisotropyTexture), "BindAnisotropyTexture",
		"variant compiled without anisotropy layer texture")
	if v.lit {
		v.device.BindTexture2D(unitAnisotropy, tex)
	}
}

func (v *Variant) BindIrradianceMap(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagImageBasedLighting), "BindIrradianceMap",
		"variant compiled without image based lighting")
	v.device.BindCubeMap(unitIrradianceMap, tex)
}

func (v *Variant) BindBrdfLUT(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagImageBasedLighting), "BindBrdfLUT",
		"variant compiled without image based lighting")
	v.device.BindTexture2D(unitBrdfLUT, tex)
}

func (v *Variant) BindPrefilteredMap(tex material.TextureRef) {
	v.require(v.key.flags.Has(material.FlagImageBasedLighting), "BindPrefilteredMap",
		"variant compiled without image based lighting")
	v.device.BindCubeMap(unitPrefilteredMap, tex)
}

// BindShadowMap binds the shadow cube map for one of the up-to-three
// shadowed lights.
func (v *Variant) BindShadowMap(index int, tex material.TextureRef) {
	v.require(index >= 0 && index < maxShadowMaps, "BindShadowMap",
		fmt.Sprintf("shadow map index %d out of range", index))
	v.require(v.key.flags.Has(material.FlagShadowsVSM), "BindShadowMap",
		"variant compiled without shadows")
	v.device.BindCubeMap(unitShadowMap0+index, tex)
}
