package render

import "github.com/go-gl/mathgl/mgl32"

// cofactor3 returns the cofactor (comatrix) of m. Dividing it by det(m)
// gives the normal matrix: `inverse-transpose(m)` equals
// `transpose(cofactor(m)/det)` transposed back, so the cofactor form
// reuses the determinant the winding check already needs instead of paying
// for a full inverse.
func cofactor3(m mgl32.Mat3) mgl32.Mat3 {
	// mgl32.Mat3 is column-major: m[col*3+row].
	a, b, c := m[0], m[3], m[6]
	d, e, f := m[1], m[4], m[7]
	g, h, i := m[2], m[5], m[8]

	return mgl32.Mat3{
		e*i - f*h, c*h - b*i, b*f - c*e,
		f*g - d*i, a*i - c*g, c*d - a*f,
		d*h - e*g, b*g - a*h, a*e - b*d,
	}
}
