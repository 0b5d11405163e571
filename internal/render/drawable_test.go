package render

import (
	"testing"

	"pbrview/internal/lighting"
	"pbrview/internal/material"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawableFixture bundles the pieces every drawable test needs.
type drawableFixture struct {
	dev    *traceDevice
	cache  *VariantCache
	lights *lighting.Registry
	cam    *Camera
	mesh   MeshRef
}

func newDrawableFixture(t *testing.T, numLights int) *drawableFixture {
	t.Helper()
	dev := newTraceDevice()
	reg := lighting.NewRegistry()
	setup := make([]lighting.Light, numLights)
	for i := range setup {
		setup[i] = lighting.NewPointLight(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 1, 1}, 1)
	}
	reg.Set("scene", setup)
	return &drawableFixture{
		dev:    dev,
		cache:  NewVariantCache(dev),
		lights: reg,
		cam:    NewCamera(640, 480),
		mesh:   MeshRef{VAO: 1, Count: 36, Indexed: true},
	}
}

func (f *drawableFixture) newDrawable(desc *material.Description, env *EnvironmentMaps) *Drawable {
	return NewDrawable(f.dev, f.cache, f.mesh, desc, false, f.lights, "scene", 7, 21, env)
}

func TestDrawableVariantIsLazy(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	assert.Equal(t, 0, f.cache.Len())

	d.Draw(mgl32.Ident4(), f.cam)
	assert.Equal(t, 1, f.cache.Len())
	assert.Len(t, f.dev.draws, 1)
}

func TestDrawablesShareVariants(t *testing.T) {
	f := newDrawableFixture(t, 2)
	a := f.newDrawable(material.NewDescription(), nil)
	b := f.newDrawable(material.NewDescription(), nil)

	a.Draw(mgl32.Ident4(), f.cam)
	b.Draw(mgl32.Ident4(), f.cam)

	assert.Same(t, a.variant, b.variant)
	assert.Equal(t, 1, f.dev.compiles)
}

func TestDrawableRefetchesOnLightCountChange(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	d.Draw(mgl32.Ident4(), f.cam)
	first := d.variant
	require.Equal(t, 1, first.LightCount())

	f.lights.Set("scene", []lighting.Light{
		lighting.NewPointLight(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1),
		lighting.NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 1, 1}, 1),
	})
	d.Draw(mgl32.Ident4(), f.cam)

	assert.NotSame(t, first, d.variant)
	assert.Equal(t, 2, d.variant.LightCount())
	// the one-light variant was released along the way
	assert.Equal(t, 1, f.cache.Len())
}

func TestDrawableRefetchesOnMaterialChange(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	d.Draw(mgl32.Ident4(), f.cam)
	first := d.variant

	desc := material.NewDescription()
	desc.ClearCoat = material.NewClearCoatLayer()
	desc.ClearCoat.Factor = 1
	d.SetMaterial(desc, false)
	d.Draw(mgl32.Ident4(), f.cam)

	assert.NotSame(t, first, d.variant)
	assert.True(t, d.variant.Flags().Has(material.FlagClearCoat))
}

func TestDrawableFlipsWindingForMirroredTransform(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	d.Draw(mgl32.Scale3D(-1, 1, 1), f.cam)

	require.Len(t, f.dev.windingAtDraw, 1)
	assert.Equal(t, WindingCW, f.dev.windingAtDraw[0])
	// restored once the draw is over
	assert.Equal(t, WindingCCW, f.dev.frontFace)
}

func TestDrawableKeepsWindingForRegularTransform(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	d.Draw(mgl32.Scale3D(2, 2, 2), f.cam)

	require.Len(t, f.dev.windingAtDraw, 1)
	assert.Equal(t, WindingCCW, f.dev.windingAtDraw[0])
	assert.NotContains(t, f.dev.events, "frontface cw")
}

func TestDrawableRestoresWindingOnPanic(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	mgr := NewShadowMapManager()
	for _, key := range []string{"a", "b", "c", "d"} {
		mgr.Set(key, 9)
	}
	d.SetShadowData(mgr, []string{"a", "b", "c", "d"}, material.FlagShadowsVSM)

	assert.Panics(t, func() { d.Draw(mgl32.Scale3D(-1, 1, 1), f.cam) })
	assert.Equal(t, WindingCCW, f.dev.frontFace)
}

func TestDrawableBindsShadowMaps(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	mgr := NewShadowMapManager()
	mgr.Set("a", 31)
	mgr.Set("b", 32)
	mgr.Set("c", 33)
	d.SetShadowData(mgr, []string{"a", "b", "c"}, material.FlagShadowsVSM)

	d.Draw(mgl32.Ident4(), f.cam)

	assert.Equal(t, material.TextureRef(31), f.dev.boundCube[unitShadowMap0])
	assert.Equal(t, material.TextureRef(32), f.dev.boundCube[unitShadowMap1])
	assert.Equal(t, material.TextureRef(33), f.dev.boundCube[unitShadowMap2])
}

func TestDrawableShadowFlagRequiresVSM(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	assert.Panics(t, func() {
		d.SetShadowData(NewShadowMapManager(), nil, material.FlagImageBasedLighting)
	})
}

func TestDrawableShadowsWithoutManagerPanics(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	d.SetShadowData(nil, nil, material.FlagShadowsVSM)

	assert.Panics(t, func() { d.Draw(mgl32.Ident4(), f.cam) })
}

func TestDrawableInvalidMeshPanics(t *testing.T) {
	f := newDrawableFixture(t, 1)
	f.mesh = MeshRef{}
	d := f.newDrawable(material.NewDescription(), nil)

	assert.Panics(t, func() { d.Draw(mgl32.Ident4(), f.cam) })
}

func TestDrawableObjectIDSelection(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	d.Draw(mgl32.Ident4(), f.cam)
	got, ok := f.dev.uniform(d.variant.program, "uObjectId")
	require.True(t, ok)
	assert.Equal(t, uint32(21), got, "defaults to the scene-semantic id")

	f.cam.UseDrawableIDs = true
	d.Draw(mgl32.Ident4(), f.cam)
	got, _ = f.dev.uniform(d.variant.program, "uObjectId")
	assert.Equal(t, uint32(7), got, "camera asked for drawable ids")
}

func TestDrawablePerVertexIDsUploadZero(t *testing.T) {
	f := newDrawableFixture(t, 1)
	desc := material.NewDescription()
	desc.PerVertexObjectID = true
	d := f.newDrawable(desc, nil)

	d.Draw(mgl32.Ident4(), f.cam)

	got, ok := f.dev.uniform(d.variant.program, "uObjectId")
	require.True(t, ok)
	assert.Equal(t, uint32(0), got)
}

func TestDrawableNormalMatrixIsInverseTranspose(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)

	d.Draw(mgl32.Scale3D(2, 2, 2), f.cam)

	got, ok := f.dev.uniform(d.variant.program, "uNormalMatrix")
	require.True(t, ok)
	assert.Equal(t, mgl32.Ident3().Mul(0.5), got)
}

func TestDrawableRangesUploadTargetsOwnProgram(t *testing.T) {
	f := newDrawableFixture(t, 1)
	plain := f.newDrawable(material.NewDescription(), nil)

	coated := material.NewDescription()
	coated.ClearCoat = material.NewClearCoatLayer()
	coated.ClearCoat.Factor = 1
	other := f.newDrawable(coated, nil)

	plain.Draw(mgl32.Ident4(), f.cam)
	other.Draw(mgl32.Ident4(), f.cam)

	// a cache hit while the other variant's program is current must not
	// leak the ranges upload into that program
	third := f.newDrawable(material.NewDescription(), nil)
	third.Draw(mgl32.Ident4(), f.cam)
	require.Same(t, plain.variant, third.variant)

	for _, v := range []*Variant{plain.variant, other.variant} {
		loc, ok := f.dev.locations[v.program]["uLightRanges"]
		require.True(t, ok)
		assert.Equal(t, v.program, f.dev.uploadProgram[loc])
	}
}

func TestDrawableRangeMutationVisibleOnNextDraw(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	d.Draw(mgl32.Ident4(), f.cam)

	shortRange := lighting.NewPointLight(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 1, 1}, 1)
	shortRange.Range = 12
	f.lights.Set("scene", []lighting.Light{shortRange})
	d.Draw(mgl32.Ident4(), f.cam)

	// the light count is unchanged, so the variant is reused
	got, ok := f.dev.uniform(d.variant.program, "uLightRanges")
	require.True(t, ok)
	assert.Equal(t, []float32{12}, got)
}

func TestDrawableUploadsLightState(t *testing.T) {
	f := newDrawableFixture(t, 2)
	d := f.newDrawable(material.NewDescription(), nil)

	d.Draw(mgl32.Ident4(), f.cam)

	got, ok := f.dev.uniform(d.variant.program, "uLightDirections")
	require.True(t, ok)
	vectors := got.([]mgl32.Vec4)
	require.Len(t, vectors, 2)
	assert.Equal(t, mgl32.Vec4{0, 5, 0, 1}, vectors[0])
}

func TestDrawableIBLBindsEnvironment(t *testing.T) {
	f := newDrawableFixture(t, 1)
	env := &EnvironmentMaps{Irradiance: 41, BrdfLUT: 42, Prefiltered: 43, MipLevels: 6}
	d := f.newDrawable(material.NewDescription(), env)

	require.True(t, d.Flags().Has(material.FlagImageBasedLighting))
	d.Draw(mgl32.Ident4(), f.cam)

	assert.Equal(t, material.TextureRef(41), f.dev.boundCube[unitIrradianceMap])
	assert.Equal(t, material.TextureRef(42), f.dev.bound2D[unitBrdfLUT])
	assert.Equal(t, material.TextureRef(43), f.dev.boundCube[unitPrefilteredMap])

	got, ok := f.dev.uniform(d.variant.program, "uPrefilteredMapMipLevels")
	require.True(t, ok)
	assert.Equal(t, uint32(6), got)
}

func TestDrawableSetMaterialKeepsAttachedBits(t *testing.T) {
	f := newDrawableFixture(t, 1)
	env := &EnvironmentMaps{Irradiance: 1, BrdfLUT: 2, Prefiltered: 3, MipLevels: 1}
	d := f.newDrawable(material.NewDescription(), env)
	d.EnableDebugDisplay()

	d.SetMaterial(material.NewDescription(), false)

	assert.True(t, d.Flags().Has(material.FlagImageBasedLighting))
	assert.True(t, d.Flags().Has(material.FlagDebugDisplay))
}

func TestDrawableDebugDisplayFollowsGlobalSetting(t *testing.T) {
	t.Cleanup(func() { SetDebugDisplay(DebugNone) })

	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	d.EnableDebugDisplay()
	SetDebugDisplay(DebugNormal)

	d.Draw(mgl32.Ident4(), f.cam)

	got, ok := f.dev.uniform(d.variant.program, "uPbrDebugDisplay")
	require.True(t, ok)
	assert.Equal(t, int32(DebugNormal), got)
}

func TestDrawableCloseReleasesVariant(t *testing.T) {
	f := newDrawableFixture(t, 1)
	d := f.newDrawable(material.NewDescription(), nil)
	d.Draw(mgl32.Ident4(), f.cam)
	require.Equal(t, 1, f.cache.Len())

	d.Close()
	assert.Equal(t, 0, f.cache.Len())

	// close is idempotent
	assert.NotPanics(t, d.Close)
}

func TestDrawableBindsMaterialTextures(t *testing.T) {
	f := newDrawableFixture(t, 1)
	desc := material.NewDescription()
	desc.BaseColorTexture = 11
	desc.MetallicRoughnessTexture = 12
	desc.EmissiveTexture = 13
	d := f.newDrawable(desc, nil)

	d.Draw(mgl32.Ident4(), f.cam)

	assert.Equal(t, material.TextureRef(11), f.dev.bound2D[unitBaseColor])
	assert.Equal(t, material.TextureRef(12), f.dev.bound2D[unitMetallicRoughness])
	assert.Equal(t, material.TextureRef(13), f.dev.bound2D[unitEmissive])
}
