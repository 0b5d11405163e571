package main

import (
	"log"
	"runtime"
	"time"

	"pbrview/internal/lighting"
	"pbrview/internal/material"
	"pbrview/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		panic(err)
	}

	device := render.NewGLDevice()
	cache := render.NewVariantCache(device)

	lights := lighting.NewRegistry()
	lights.Set("scene", []lighting.Light{
		lighting.NewPointLight(mgl32.Vec3{2, 3, 2}, mgl32.Vec3{1, 1, 1}, 20),
		lighting.NewDirectionalLight(mgl32.Vec3{-0.3, -1, -0.2}.Normalize(), mgl32.Vec3{1, 0.98, 0.95}, 2.5),
	})

	checker := checkerTexture(8, 256, [4]uint8{235, 235, 235, 255}, [4]uint8{40, 60, 160, 255})
	mesh := uploadMesh(buildSphere(32, 48))

	desc := material.NewDescription()
	desc.BaseColorTexture = checker
	desc.Roughness = 0.35
	desc.Metalness = 0.1
	desc.ClearCoat = material.NewClearCoatLayer()
	desc.ClearCoat.Factor = 1
	desc.ClearCoat.Roughness = 0.1
	desc.Specular = material.NewSpecularLayer()

	cam := render.NewCamera(windowWidth, windowHeight)
	cam.LookAt(mgl32.Vec3{0, 1.5, 4}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	drawable := render.NewDrawable(device, cache, mesh, desc, false, lights, "scene", 1, 1, nil)
	drawable.EnableDebugDisplay()
	defer drawable.Close()

	setupInput(window)
	log.Printf("controls: 0 shaded, 1 diffuse, 2 specular, 3 normals, esc quits")

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	// background from the scene's ambient term
	ambient := lights.Get("scene").AmbientColor().Mul(0.6)
	gl.ClearColor(ambient.X(), ambient.Y(), ambient.Z(), 1.0)

	start := time.Now()
	for !window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		angle := float32(time.Since(start).Seconds()) * 0.5
		model := mgl32.HomogRotate3DY(angle)
		drawable.Draw(cam.View().Mul4(model), cam)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}
