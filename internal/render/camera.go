package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the view and projection state the draw path needs. The view
// matrix transforms world to camera space; WorldPosition is the camera's
// position in world space.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	view          mgl32.Mat4
	worldPosition mgl32.Vec3

	// UseDrawableIDs makes drawables upload their own drawable id instead
	// of the scene-semantic id (unless the mesh carries per-vertex ids).
	UseDrawableIDs bool
}

// NewCamera returns a camera with the default perspective parameters.
func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		view:        mgl32.Ident4(),
	}
}

// LookAt positions the camera at eye looking toward center.
func (c *Camera) LookAt(eye, center, up mgl32.Vec3) {
	c.view = mgl32.LookAtV(eye, center, up)
	c.worldPosition = eye
}

// SetView installs a world-to-camera matrix directly; worldPos must be the
// matching camera position in world space.
func (c *Camera) SetView(view mgl32.Mat4, worldPos mgl32.Vec3) {
	c.view = view
	c.worldPosition = worldPos
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return c.view
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// WorldPosition returns the camera position in world space.
func (c *Camera) WorldPosition() mgl32.Vec3 {
	return c.worldPosition
}
