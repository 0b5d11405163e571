package main

import (
	"pbrview/internal/render"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// buildSphere tessellates a unit UV sphere. Vertices are interleaved as
// position (3), normal (3), texcoord (2); on a unit sphere the normal
// equals the position.
func buildSphere(stacks, slices int) ([]float32, []uint32) {
	var vertices []float32
	for i := 0; i <= stacks; i++ {
		v := float32(i) / float32(stacks)
		phi := v * math32.Pi
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			theta := u * 2 * math32.Pi

			x := math32.Sin(phi) * math32.Cos(theta)
			y := math32.Cos(phi)
			z := math32.Sin(phi) * math32.Sin(theta)

			vertices = append(vertices,
				x, y, z, // position
				x, y, z, // normal
				u, 1-v, // texcoord
			)
		}
	}

	var indices []uint32
	cols := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*cols + uint32(j)
			b := a + cols
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return vertices, indices
}

// uploadMesh uploads an interleaved vertex buffer with its index buffer
// and returns the mesh handle. Attribute locations match the compiled
// program variants: 0 position, 1 normal, 2 texcoord.
func uploadMesh(vertices []float32, indices []uint32) render.MeshRef {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	const stride = 8 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return render.MeshRef{VAO: vao, Count: int32(len(indices)), Indexed: true}
}
