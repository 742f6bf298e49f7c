package material

import (
	"github.com/Carmen-Shannon/estomania/common"
)

// material is the implementation of the Material interface.
type material struct {
	name      string
	baseColor [4]float32
	wireframe bool
	texture   *common.Texture
}

// Material describes how the renderer fills an object's surface: a flat base color,
// an optional wireframe mode, and an optional texture map (used by sprites such as name tags).
//
// Materials are immutable after construction and may be shared by any number of objects,
// which is how every plains hex ends up pointing at the same green material.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Wireframe reports whether only the outline of the surface should be drawn.
	//
	// Returns:
	//   - bool: true for outline-only rendering
	Wireframe() bool

	// Texture retrieves the texture map, or nil if none is set.
	//
	// Returns:
	//   - *common.Texture: the texture, or nil
	Texture() *common.Texture
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The default material is opaque white with no texture.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Wireframe() bool {
	return m.wireframe
}

func (m *material) Texture() *common.Texture {
	return m.texture
}
