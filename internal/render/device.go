package render

import (
	"pbrview/internal/material"

	"github.com/go-gl/mathgl/mgl32"
)

// Winding is a triangle front-face convention.
type Winding int

const (
	// WindingCCW is the default front-face convention.
	WindingCCW Winding = iota
	// WindingCW is the flipped convention used for negatively-scaled draws.
	WindingCW
)

// MeshRef is a non-owning handle to an uploaded mesh: a vertex array object
// plus element count. Mesh upload lives outside this package.
type MeshRef struct {
	VAO     uint32
	Count   int32
	Indexed bool
}

// Valid reports whether the handle points at an uploaded mesh.
func (m MeshRef) Valid() bool {
	return m.VAO != 0 && m.Count > 0
}

// Device is the rendering backend the draw path talks to: program
// compilation, uniform upload, texture binding, front-face state and draw
// submission. The GL implementation is the production device; tests use a
// recording TraceDevice. All methods are render-thread-only.
type Device interface {
	// CompileProgram compiles and links a vertex/fragment program and
	// returns its handle.
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation resolves a named parameter of the program, -1 when
	// the program has no such parameter.
	UniformLocation(program uint32, name string) int32

	SetUniformInt(loc int32, v int32)
	SetUniformUint(loc int32, v uint32)
	SetUniformFloat(loc int32, v float32)
	SetUniformVec2(loc int32, v mgl32.Vec2)
	SetUniformVec3(loc int32, v mgl32.Vec3)
	SetUniformVec4(loc int32, v mgl32.Vec4)
	SetUniformMat3(loc int32, m mgl32.Mat3)
	SetUniformMat4(loc int32, m mgl32.Mat4)
	SetUniformVec3Slice(loc int32, vs []mgl32.Vec3)
	SetUniformVec4Slice(loc int32, vs []mgl32.Vec4)
	SetUniformFloatSlice(loc int32, vs []float32)

	// BindTexture2D and BindCubeMap attach a texture to a fixed unit.
	BindTexture2D(unit int, tex material.TextureRef)
	BindCubeMap(unit int, tex material.TextureRef)

	// PushFrontFace switches the front-face convention and returns a
	// restore func. Callers defer the restore over the whole draw so the
	// previous convention comes back on every exit path.
	PushFrontFace(w Winding) (restore func())

	// DrawMesh submits a draw of the mesh with the currently bound
	// program and state.
	DrawMesh(mesh MeshRef)
}
