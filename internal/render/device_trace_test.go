package render

import (
	"fmt"

	"pbrview/internal/material"

	"github.com/go-gl/mathgl/mgl32"
)

// traceDevice is a recording Device for tests: programs are handles
// counted up from 1, uniform locations are handed out per (program, name)
// on first lookup, and uploads, texture binds, front-face switches and
// draws are captured for assertions.
type traceDevice struct {
	compiles int
	deleted  []uint32
	current  uint32

	nextProgram uint32
	nextLoc     int32
	locations   map[uint32]map[string]int32
	uniforms    map[int32]any
	// program that was current when each location was last written
	uploadProgram map[int32]uint32

	bound2D   map[int]material.TextureRef
	boundCube map[int]material.TextureRef

	frontFace     Winding
	events        []string
	windingAtDraw []Winding
	draws         []MeshRef
}

func newTraceDevice() *traceDevice {
	return &traceDevice{
		locations:     make(map[uint32]map[string]int32),
		uniforms:      make(map[int32]any),
		uploadProgram: make(map[int32]uint32),
		bound2D:       make(map[int]material.TextureRef),
		boundCube:     make(map[int]material.TextureRef),
	}
}

func (d *traceDevice) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	d.compiles++
	d.nextProgram++
	d.events = append(d.events, fmt.Sprintf("compile %d", d.nextProgram))
	return d.nextProgram, nil
}

func (d *traceDevice) DeleteProgram(program uint32) {
	d.deleted = append(d.deleted, program)
	d.events = append(d.events, fmt.Sprintf("delete %d", program))
}

func (d *traceDevice) UseProgram(program uint32) {
	d.current = program
}

func (d *traceDevice) UniformLocation(program uint32, name string) int32 {
	locs, ok := d.locations[program]
	if !ok {
		locs = make(map[string]int32)
		d.locations[program] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := d.nextLoc
	d.nextLoc++
	locs[name] = loc
	return loc
}

// uniform returns the last value uploaded for a named parameter of
// program, false when the name was never resolved or never set.
func (d *traceDevice) uniform(program uint32, name string) (any, bool) {
	loc, ok := d.locations[program][name]
	if !ok {
		return nil, false
	}
	v, ok := d.uniforms[loc]
	return v, ok
}

// resolved reports whether a named parameter of program was ever looked up.
func (d *traceDevice) resolved(program uint32, name string) bool {
	_, ok := d.locations[program][name]
	return ok
}

func (d *traceDevice) set(loc int32, v any) {
	if loc < 0 {
		return
	}
	d.uniforms[loc] = v
	d.uploadProgram[loc] = d.current
}

func (d *traceDevice) SetUniformInt(loc int32, v int32)       { d.set(loc, v) }
func (d *traceDevice) SetUniformUint(loc int32, v uint32)     { d.set(loc, v) }
func (d *traceDevice) SetUniformFloat(loc int32, v float32)   { d.set(loc, v) }
func (d *traceDevice) SetUniformVec2(loc int32, v mgl32.Vec2) { d.set(loc, v) }
func (d *traceDevice) SetUniformVec3(loc int32, v mgl32.Vec3) { d.set(loc, v) }
func (d *traceDevice) SetUniformVec4(loc int32, v mgl32.Vec4) { d.set(loc, v) }
func (d *traceDevice) SetUniformMat3(loc int32, m mgl32.Mat3) { d.set(loc, m) }
func (d *traceDevice) SetUniformMat4(loc int32, m mgl32.Mat4) { d.set(loc, m) }

func (d *traceDevice) SetUniformVec3Slice(loc int32, vs []mgl32.Vec3) {
	d.set(loc, append([]mgl32.Vec3(nil), vs...))
}

func (d *traceDevice) SetUniformVec4Slice(loc int32, vs []mgl32.Vec4) {
	d.set(loc, append([]mgl32.Vec4(nil), vs...))
}

func (d *traceDevice) SetUniformFloatSlice(loc int32, vs []float32) {
	d.set(loc, append([]float32(nil), vs...))
}

func (d *traceDevice) BindTexture2D(unit int, tex material.TextureRef) {
	d.bound2D[unit] = tex
	d.events = append(d.events, fmt.Sprintf("bind2d %d", unit))
}

func (d *traceDevice) BindCubeMap(unit int, tex material.TextureRef) {
	d.boundCube[unit] = tex
	d.events = append(d.events, fmt.Sprintf("bindcube %d", unit))
}

func (d *traceDevice) PushFrontFace(w Winding) func() {
	prev := d.frontFace
	d.setFrontFace(w)
	return func() {
		d.setFrontFace(prev)
	}
}

func (d *traceDevice) setFrontFace(w Winding) {
	if d.frontFace == w {
		return
	}
	d.frontFace = w
	if w == WindingCW {
		d.events = append(d.events, "frontface cw")
	} else {
		d.events = append(d.events, "frontface ccw")
	}
}

func (d *traceDevice) DrawMesh(mesh MeshRef) {
	d.draws = append(d.draws, mesh)
	d.windingAtDraw = append(d.windingAtDraw, d.frontFace)
	d.events = append(d.events, "draw")
}
