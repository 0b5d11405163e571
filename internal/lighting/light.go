package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PositionModel says which space a light's vector is specified in.
type PositionModel int

const (
	// ModelGlobal positions the light in world space.
	ModelGlobal PositionModel = iota
	// ModelCamera positions the light relative to the camera.
	ModelCamera
	// ModelObject positions the light relative to the drawable's object.
	ModelObject
)

// Light is one light record in a setup. Vector holds either a direction
// (W == 0) or a position (W == 1); the trailing component is the tag the
// packer and the compiled program branch on.
type Light struct {
	Vector    mgl32.Vec4
	Color     mgl32.Vec3
	Intensity float32
	Range     float32
	Model     PositionModel
}

// NewPointLight returns a positional light at pos with unlimited range.
func NewPointLight(pos mgl32.Vec3, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Vector:    mgl32.Vec4{pos.X(), pos.Y(), pos.Z(), 1},
		Color:     color,
		Intensity: intensity,
		Range:     math32.Inf(1),
	}
}

// NewDirectionalLight returns a directional light shining along dir.
func NewDirectionalLight(dir mgl32.Vec3, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Vector:    mgl32.Vec4{dir.X(), dir.Y(), dir.Z(), 0},
		Color:     color,
		Intensity: intensity,
		Range:     math32.Inf(1),
	}
}

// Setup is an ordered light sequence. Drawables hold a *Setup borrowed from
// a Registry; mutating a shared setup is visible to every drawable
// referencing it on their next draw.
type Setup []Light

// AmbientColor aggregates the setup into an ambient term. An empty setup
// renders objects flat, so the ambient is full white; any lights at all
// reduce it to a dim floor.
func (s Setup) AmbientColor() mgl32.Vec4 {
	if len(s) == 0 {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	return mgl32.Vec4{0.1, 0.1, 0.1, 1}
}

// Registry resolves opaque setup keys to shared light setups. Setting a key
// that already exists mutates the existing setup in place so borrowed
// references stay live.
type Registry struct {
	setups map[string]*Setup
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{setups: make(map[string]*Setup)}
}

// Set stores lights under key, preserving the identity of an existing
// setup so drawables already holding it observe the change.
func (r *Registry) Set(key string, lights []Light) {
	if s, ok := r.setups[key]; ok {
		*s = lights
		return
	}
	s := Setup(lights)
	r.setups[key] = &s
}

// Get returns the shared setup for key, creating an empty one if the key
// has not been set yet so the reference can be populated later.
func (r *Registry) Get(key string) *Setup {
	if s, ok := r.setups[key]; ok {
		return s
	}
	s := Setup{}
	r.setups[key] = &s
	return r.setups[key]
}
