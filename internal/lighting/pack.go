package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// worldVector resolves a light's stored vector to world space. transform is
// the drawable's model-to-camera matrix, view the camera matrix; both are
// only consulted for the non-global position models. Directions (W == 0)
// pass through the matrices untranslated by construction.
func worldVector(l Light, transform, view mgl32.Mat4) mgl32.Vec4 {
	switch l.Model {
	case ModelObject:
		return view.Inv().Mul4(transform).Mul4x1(l.Vector)
	case ModelCamera:
		return view.Inv().Mul4x1(l.Vector)
	default:
		return l.Vector
	}
}

// PackVectors produces one world-space 4-vector per light, pre-flipped for
// the compiled program: `v * (2w - 1)` leaves positional lights (w == 1)
// unchanged and negates directional lights (w == 0), so the lighting
// formula can treat "vector toward the light" uniformly without branching.
func PackVectors(setup Setup, transform, view mgl32.Mat4) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, len(setup))
	for i, l := range setup {
		v := worldVector(l, transform, view)
		out[i] = v.Mul(v.W()*2 - 1)
	}
	return out
}

// PackColors produces one intensity-premultiplied color per light.
func PackColors(setup Setup) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(setup))
	for i, l := range setup {
		out[i] = l.Color.Mul(l.Intensity)
	}
	return out
}

// Ranges collects the per-light ranges for upload.
func Ranges(setup Setup) []float32 {
	out := make([]float32, len(setup))
	for i, l := range setup {
		out[i] = l.Range
	}
	return out
}
