package render

import (
	_ "embed"
	"fmt"
	"strings"

	"pbrview/internal/material"
)

//go:embed shaders/pbr.vert
var vertexBody string

//go:embed shaders/pbr.frag
var fragmentBody string

// Vertex attribute locations; the mesh upload side must match.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
	attribTangent4 = 3
)

// Fragment output locations.
const (
	outputColor    = 0
	outputObjectID = 1
)

// variantSources assembles the vertex and fragment sources for one variant.
// Each enabled feature contributes exactly one define; the remaining text
// is the shared embedded shader body.
func variantSources(flags material.Flags, lightCount int) (vert, frag string) {
	lit := lightCount > 0 || flags.Has(material.FlagImageBasedLighting)
	textured := flags.AnyTexture()

	var v strings.Builder
	v.WriteString("#version 410 core\n")
	fmt.Fprintf(&v, "#define ATTRIBUTE_LOCATION_POSITION %d\n", attribPosition)
	fmt.Fprintf(&v, "#define ATTRIBUTE_LOCATION_NORMAL %d\n", attribNormal)
	if flags.Has(material.FlagNormalTexture) && flags.Has(material.FlagPrecomputedTangent) && lit {
		fmt.Fprintf(&v, "#define ATTRIBUTE_LOCATION_TANGENT4 %d\n", attribTangent4)
	}
	if textured {
		fmt.Fprintf(&v, "#define ATTRIBUTE_LOCATION_TEXCOORD %d\n", attribTexCoord)
	}
	writeDefine(&v, textured, "TEXTURED")
	writeDefine(&v, flags.Has(material.FlagNormalTexture), "NORMAL_TEXTURE")
	writeDefine(&v, flags.Has(material.FlagPrecomputedTangent), "PRECOMPUTED_TANGENT")
	writeDefine(&v, textured && flags.Has(material.FlagTextureTransform), "TEXTURE_TRANSFORMATION")
	v.WriteString(vertexBody)

	var f strings.Builder
	f.WriteString("#version 410 core\n")
	fmt.Fprintf(&f, "#define OUTPUT_ATTRIBUTE_LOCATION_COLOR %d\n", outputColor)
	fmt.Fprintf(&f, "#define OUTPUT_ATTRIBUTE_LOCATION_OBJECT_ID %d\n", outputObjectID)
	fmt.Fprintf(&f, "#define LIGHT_COUNT %d\n", lightCount)
	writeDefine(&f, textured, "TEXTURED")
	writeDefine(&f, flags.Has(material.FlagBaseColorTexture), "BASECOLOR_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagMetallicRoughnessTexture), "METALLIC_ROUGHNESS_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagNormalTexture), "NORMAL_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagEmissiveTexture), "EMISSIVE_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagPrecomputedTangent), "PRECOMPUTED_TANGENT")
	writeDefine(&f, textured && flags.Has(material.FlagTextureTransform), "TEXTURE_TRANSFORMATION")
	writeDefine(&f, flags.Has(material.FlagObjectID), "OBJECT_ID")
	writeDefine(&f, flags.Has(material.FlagDoubleSided), "DOUBLE_SIDED")
	writeDefine(&f, flags.Has(material.FlagClearCoat), "CLEAR_COAT")
	writeDefine(&f, flags.Has(material.FlagClearCoatTexture), "CLEAR_COAT_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagClearCoatRoughnessTexture), "CLEAR_COAT_ROUGHNESS_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagClearCoatNormalTexture), "CLEAR_COAT_NORMAL_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagSpecular), "SPECULAR_LAYER")
	writeDefine(&f, flags.Has(material.FlagSpecularTexture), "SPECULAR_LAYER_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagSpecularColorTexture), "SPECULAR_LAYER_COLOR_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagAnisotropy), "ANISOTROPY_LAYER")
	writeDefine(&f, flags.Has(material.FlagAnisotropyTexture), "ANISOTROPY_LAYER_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagTransmission), "TRANSMISSION_LAYER")
	writeDefine(&f, flags.Has(material.FlagTransmissionTexture), "TRANSMISSION_LAYER_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagVolume), "VOLUME_LAYER")
	writeDefine(&f, flags.Has(material.FlagVolumeThicknessTexture), "VOLUME_LAYER_THICKNESS_TEXTURE")
	writeDefine(&f, flags.Has(material.FlagShadowsVSM), "SHADOWS_VSM")
	if flags.Has(material.FlagImageBasedLighting) {
		f.WriteString("#define IMAGE_BASED_LIGHTING\n#define TONE_MAP\n")
	}
	writeDefine(&f, flags.Has(material.FlagDebugDisplay), "PBR_DEBUG_DISPLAY")
	f.WriteString(fragmentBody)

	return v.String(), f.String()
}

func writeDefine(b *strings.Builder, enabled bool, name string) {
	if enabled {
		b.WriteString("#define ")
		b.WriteString(name)
		b.WriteString("\n")
	}
}
