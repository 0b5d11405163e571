package main

import (
	"pbrview/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// setupWindow creates the GLFW window with an OpenGL 4.1 core context and
// initializes the GL bindings on it.
func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "pbrview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return nil, err
	}
	return window, nil
}

// setupInput wires the debug visualization keys: 0 returns to the shaded
// view, 1-3 show the diffuse, specular and normal channels.
func setupInput(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.Key0:
			render.SetDebugDisplay(render.DebugNone)
		case glfw.Key1:
			render.SetDebugDisplay(render.DebugDiffuse)
		case glfw.Key2:
			render.SetDebugDisplay(render.DebugSpecular)
		case glfw.Key3:
			render.SetDebugDisplay(render.DebugNormal)
		}
	})
}
