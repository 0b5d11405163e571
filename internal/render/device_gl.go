package render

import (
	"fmt"
	"strings"

	"pbrview/internal/material"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice is the OpenGL 4.1 core implementation of Device. It assumes a
// current GL context on the calling thread.
type GLDevice struct {
	frontFace Winding
}

// NewGLDevice returns a device with the default CCW front face applied.
func NewGLDevice() *GLDevice {
	gl.FrontFace(gl.CCW)
	return &GLDevice{frontFace: WindingCCW}
}

func (d *GLDevice) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertex, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragment, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))

		gl.DeleteShader(vertex)
		gl.DeleteShader(fragment)
		return 0, fmt.Errorf("failed to link program: %v", infoLog)
	}
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)
	return program, nil
}

func (d *GLDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) SetUniformInt(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (d *GLDevice) SetUniformUint(loc int32, v uint32) {
	gl.Uniform1ui(loc, v)
}

func (d *GLDevice) SetUniformFloat(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (d *GLDevice) SetUniformVec2(loc int32, v mgl32.Vec2) {
	gl.Uniform2f(loc, v.X(), v.Y())
}

func (d *GLDevice) SetUniformVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
}

func (d *GLDevice) SetUniformVec4(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v.X(), v.Y(), v.Z(), v.W())
}

func (d *GLDevice) SetUniformMat3(loc int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(loc, 1, false, &m[0])
}

func (d *GLDevice) SetUniformMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *GLDevice) SetUniformVec3Slice(loc int32, vs []mgl32.Vec3) {
	if len(vs) == 0 {
		return
	}
	gl.Uniform3fv(loc, int32(len(vs)), &vs[0][0])
}

func (d *GLDevice) SetUniformVec4Slice(loc int32, vs []mgl32.Vec4) {
	if len(vs) == 0 {
		return
	}
	gl.Uniform4fv(loc, int32(len(vs)), &vs[0][0])
}

func (d *GLDevice) SetUniformFloatSlice(loc int32, vs []float32) {
	if len(vs) == 0 {
		return
	}
	gl.Uniform1fv(loc, int32(len(vs)), &vs[0])
}

func (d *GLDevice) BindTexture2D(unit int, tex material.TextureRef) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (d *GLDevice) BindCubeMap(unit int, tex material.TextureRef) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(tex))
}

func (d *GLDevice) PushFrontFace(w Winding) func() {
	prev := d.frontFace
	d.setFrontFace(w)
	return func() {
		d.setFrontFace(prev)
	}
}

func (d *GLDevice) setFrontFace(w Winding) {
	if w == d.frontFace {
		return
	}
	d.frontFace = w
	if w == WindingCW {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

func (d *GLDevice) DrawMesh(mesh MeshRef) {
	gl.BindVertexArray(mesh.VAO)
	if mesh.Indexed {
		gl.DrawElements(gl.TRIANGLES, mesh.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, mesh.Count)
	}
	gl.BindVertexArray(0)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", infoLog)
	}
	return shader, nil
}
