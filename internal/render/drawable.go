package render

import (
	"fmt"

	"pbrview/internal/lighting"
	"pbrview/internal/material"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawable binds one mesh to one material and draws it with the cached
// program variant matching its capability flags and current light count.
// It owns the extracted material snapshot and a reference into the variant
// cache; light setups, environment maps and shadow maps are borrowed.
type Drawable struct {
	device Device
	cache  *VariantCache
	mesh   MeshRef

	id         uint32
	semanticID uint32

	flags    material.Flags
	snapshot material.Snapshot

	lights   *lighting.Registry
	lightKey string
	setup    *lighting.Setup

	environment *EnvironmentMaps

	shadowMaps *ShadowMapManager
	shadowKeys []string

	variant *Variant
}

// NewDrawable extracts the material into a snapshot and flag set and wires
// the drawable to its light setup. A non-nil environment enables
// image-based lighting for the drawable's whole lifetime. The variant is
// fetched lazily on the first draw: the light setup may still be under
// construction here.
func NewDrawable(dev Device, cache *VariantCache, mesh MeshRef,
	desc *material.Description, hasTangents bool,
	lights *lighting.Registry, lightKey string,
	id, semanticID uint32, environment *EnvironmentMaps) *Drawable {

	d := &Drawable{
		device:      dev,
		cache:       cache,
		mesh:        mesh,
		id:          id,
		semanticID:  semanticID,
		lights:      lights,
		lightKey:    lightKey,
		setup:       lights.Get(lightKey),
		environment: environment,
	}
	d.flags, d.snapshot = material.Extract(desc, hasTangents)
	if environment != nil {
		d.flags |= material.FlagImageBasedLighting
	}
	return d
}

// Flags returns the drawable's capability set.
func (d *Drawable) Flags() material.Flags {
	return d.flags
}

// SetMaterial re-extracts the snapshot and flags from a new description,
// keeping the drawable-owned bits (IBL, attached shadows) that do not come
// from the material. The next draw re-fetches a matching variant.
func (d *Drawable) SetMaterial(desc *material.Description, hasTangents bool) {
	attached := d.flags & (material.FlagImageBasedLighting | material.FlagShadowsVSM | material.FlagDebugDisplay)
	d.flags, d.snapshot = material.Extract(desc, hasTangents)
	d.flags |= attached
}

// SetLightSetup re-resolves the drawable's light setup reference.
func (d *Drawable) SetLightSetup(key string) {
	d.lightKey = key
	d.setup = d.lights.Get(key)
}

// EnableDebugDisplay compiles the drawable's next variant with the debug
// visualization path; the mode itself comes from the global render
// settings each draw.
func (d *Drawable) EnableDebugDisplay() {
	d.flags |= material.FlagDebugDisplay
}

// SetShadowData attaches up to three variance shadow cube maps, resolved
// through manager by key on every draw. shadowFlag must be the variance
// shadow map flag: it is the only shadow variant the feature matrix ships.
func (d *Drawable) SetShadowData(manager *ShadowMapManager, keys []string, shadowFlag material.Flags) {
	if shadowFlag != material.FlagShadowsVSM {
		panic(fmt.Sprintf("render.Drawable.SetShadowData: flag %v is not the VSM shadow flag", shadowFlag))
	}
	d.shadowMaps = manager
	d.shadowKeys = keys
	d.flags |= shadowFlag
}

// Close releases the drawable's variant reference.
func (d *Drawable) Close() {
	if d.variant != nil {
		d.cache.Release(d.variant)
		d.variant = nil
	}
}

// updateVariant re-fetches the program variant when the drawable's flags
// or the light count changed since the last draw.
func (d *Drawable) updateVariant() {
	lightCount := len(*d.setup)
	if d.variant != nil && d.variant.LightCount() == lightCount && d.variant.Flags() == d.flags {
		return
	}
	if d.variant != nil {
		d.cache.Release(d.variant)
	}
	d.variant = d.cache.Get(d.flags, lightCount)
}

// Draw uploads all per-draw state into the drawable's variant and submits
// the mesh. transform is the drawable's model-to-camera matrix.
func (d *Drawable) Draw(transform mgl32.Mat4, cam *Camera) {
	if !d.mesh.Valid() {
		panic("render.Drawable.Draw: mesh resource does not exist")
	}

	d.updateVariant()
	v := d.variant
	d.device.UseProgram(v.program)

	v.ApplyLights(*d.setup, transform, cam.View())

	modelMatrix := cam.View().Inv().Mul4(transform)
	rotScale := modelMatrix.Mat3()
	det := rotScale.Det()
	// The normal matrix is inverse-transpose(rotScale); the cofactor form
	// reuses the determinant already needed for the winding check.
	normalMatrix := cofactor3(rotScale).Mul(1 / det)

	// A negative determinant means the transform mirrors the mesh, which
	// would cull the wrong faces. Flip the winding for this draw only; the
	// deferred restore covers every exit path, including panics below.
	if det < 0 {
		defer d.device.PushFrontFace(WindingCW)()
	}

	v.SetObjectID(d.objectID(cam))
	v.SetProjectionMatrix(cam.Projection())
	v.SetViewMatrix(cam.View())
	v.SetModelMatrix(modelMatrix)
	v.SetNormalMatrix(normalMatrix)
	v.SetCameraWorldPosition(cam.WorldPosition())

	v.SetBaseColor(d.snapshot.BaseColor)
	v.SetRoughness(d.snapshot.Roughness)
	v.SetMetallic(d.snapshot.Metalness)
	v.SetIndexOfRefraction(d.snapshot.IOR)
	v.SetEmissiveColor(d.snapshot.EmissiveColor)

	if d.flags.Has(material.FlagBaseColorTexture) {
		v.BindBaseColorTexture(d.snapshot.BaseColorTexture)
	}
	if d.flags.Has(material.FlagMetallicRoughnessTexture) {
		v.BindMetallicRoughnessTexture(d.snapshot.MetallicRoughnessTexture)
	}
	if d.flags.Has(material.FlagNormalTexture) {
		v.BindNormalTexture(d.snapshot.NormalTexture)
		v.SetNormalTextureScale(d.snapshot.NormalTextureScale)
	}
	if d.flags.Has(material.FlagEmissiveTexture) {
		v.BindEmissiveTexture(d.snapshot.EmissiveTexture)
	}
	if d.flags.Has(material.FlagTextureTransform) {
		v.SetTextureMatrix(d.snapshot.TextureTransform)
	}

	if d.flags.Has(material.FlagClearCoat) {
		v.SetClearCoatFactor(d.snapshot.ClearCoat.Factor)
		v.SetClearCoatRoughness(d.snapshot.ClearCoat.Roughness)
		v.SetClearCoatNormalTextureScale(d.snapshot.ClearCoat.NormalTextureScale)
		if d.flags.Has(material.FlagClearCoatTexture) {
			v.BindClearCoatFactorTexture(d.snapshot.ClearCoat.FactorTexture)
		}
		if d.flags.Has(material.FlagClearCoatRoughnessTexture) {
			v.BindClearCoatRoughnessTexture(d.snapshot.ClearCoat.RoughnessTexture)
		}
		if d.flags.Has(material.FlagClearCoatNormalTexture) {
			v.BindClearCoatNormalTexture(d.snapshot.ClearCoat.NormalTexture)
		}
	}

	if d.flags.Has(material.FlagSpecular) {
		v.SetSpecularFactor(d.snapshot.Specular.Factor)
		v.SetSpecularColorFactor(d.snapshot.Specular.ColorFactor)
		if d.flags.Has(material.FlagSpecularTexture) {
			v.BindSpecularTexture(d.snapshot.Specular.FactorTexture)
		}
		if d.flags.Has(material.FlagSpecularColorTexture) {
			v.BindSpecularColorTexture(d.snapshot.Specular.ColorTexture)
		}
	}

	if d.flags.Has(material.FlagAnisotropy) {
		v.SetAnisotropyFactor(d.snapshot.Anisotropy.Factor)
		v.SetAnisotropyDirection(d.snapshot.Anisotropy.Direction)
		if d.flags.Has(material.FlagAnisotropyTexture) {
			v.BindAnisotropyTexture(d.snapshot.Anisotropy.Texture)
		}
	}

	if d.flags.Has(material.FlagImageBasedLighting) {
		if d.environment == nil {
			panic("render.Drawable.Draw: image based lighting enabled without environment maps")
		}
		v.BindIrradianceMap(d.environment.Irradiance)
		v.BindBrdfLUT(d.environment.BrdfLUT)
		v.BindPrefilteredMap(d.environment.Prefiltered)
		v.SetPrefilteredMapMipLevels(d.environment.MipLevels)
	}

	if d.flags.Has(material.FlagShadowsVSM) {
		if d.shadowMaps == nil {
			panic("render.Drawable.Draw: shadows enabled without shadow data")
		}
		if len(d.shadowKeys) > maxShadowMaps {
			panic(fmt.Sprintf("render.Drawable.Draw: %d shadow maps configured, maximum is %d",
				len(d.shadowKeys), maxShadowMaps))
		}
		for i, key := range d.shadowKeys {
			v.BindShadowMap(i, d.shadowMaps.Get(key))
		}
	}

	if d.flags.Has(material.FlagDebugDisplay) {
		v.SetDebugDisplay(GetDebugDisplay())
	}

	d.device.DrawMesh(d.mesh)
}

// objectID picks which id the fragment shader writes: the drawable id when
// the camera asked for drawable ids, 0 when the mesh carries per-vertex
// ids, the scene-semantic id otherwise.
func (d *Drawable) objectID(cam *Camera) uint32 {
	switch {
	case cam.UseDrawableIDs:
		return d.id
	case d.flags.Has(material.FlagInstancedObjectID):
		return 0
	default:
		return d.semanticID
	}
}
