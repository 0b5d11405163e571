package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertMat3InDelta(t *testing.T, want, got mgl32.Mat3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestCofactorMatchesInverseTranspose(t *testing.T) {
	cases := []mgl32.Mat3{
		mgl32.Ident3(),
		mgl32.Rotate3DY(0.7).Mul3(mgl32.Diag3(mgl32.Vec3{2, 3, 0.5})),
		mgl32.Rotate3DX(1.2).Mul3(mgl32.Rotate3DZ(-0.4)),
		// mirrored, negative determinant
		mgl32.Diag3(mgl32.Vec3{-1, 2, 1.5}),
	}

	for _, m := range cases {
		det := m.Det()
		got := cofactor3(m).Mul(1 / det)
		want := m.Inv().Transpose()
		assertMat3InDelta(t, want, got, 1e-5)
	}
}

func TestCofactorDeterminantSign(t *testing.T) {
	mirrored := mgl32.Diag3(mgl32.Vec3{-2, 1, 1})
	assert.Less(t, mirrored.Det(), float32(0))

	regular := mgl32.Rotate3DY(0.3).Mul3(mgl32.Diag3(mgl32.Vec3{2, 2, 2}))
	assert.Greater(t, regular.Det(), float32(0))
}
