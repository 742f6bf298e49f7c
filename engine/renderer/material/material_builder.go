package material

import (
	"github.com/Carmen-Shannon/estomania/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithColor is an option builder that sets the color from a packed 0xRRGGBB value, fully opaque.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = common.HexColor(hex)
	}
}

// WithWireframe is an option builder that toggles outline-only rendering.
//
// Parameters:
//   - wireframe: true to draw only the outline
//
// Returns:
//   - MaterialBuilderOption: a function that applies the wireframe option to a material
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *material) {
		m.wireframe = wireframe
	}
}

// WithTexture is an option builder that sets the texture map of the material.
//
// Parameters:
//   - tex: the texture to sample
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex *common.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.texture = tex
	}
}
