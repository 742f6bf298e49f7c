// package common contains common types that are used throughout this client. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	"image/color"
)

// Texture holds RGBA pixel data rasterised on the CPU, such as a name tag rendered from text.
// Sprites reference a Texture through their material and the renderer samples it when drawing.
type Texture struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It is in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Label is an optional human readable description of what the texture shows (e.g. the name tag text).
	Label string
}

// NewTextureFromImage copies an RGBA image into a Texture.
//
// Parameters:
//   - img: the source image (must not be nil)
//   - label: a description of the texture contents
//
// Returns:
//   - *Texture: the new texture
//   - error: error if img is nil or has an empty bounds rectangle
func NewTextureFromImage(img *image.RGBA, label string) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture image is nil")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("texture image %q has empty bounds", label)
	}
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	return &Texture{
		Pixels: pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Label:  label,
	}, nil
}

// Image returns an *image.RGBA view over the texture pixels. The view shares memory with the texture.
//
// Returns:
//   - *image.RGBA: the image view, or nil if the texture is nil
func (t *Texture) Image() *image.RGBA {
	if t == nil {
		return nil
	}
	return &image.RGBA{
		Pix:    t.Pixels,
		Stride: int(t.Width) * 4,
		Rect:   image.Rect(0, 0, int(t.Width), int(t.Height)),
	}
}

// HexColor converts a 0xRRGGBB integer into a normalised RGBA color with full opacity.
//
// Parameters:
//   - hex: the packed color value
//
// Returns:
//   - [4]float32: the color as RGBA values in [0, 1]
func HexColor(hex uint32) [4]float32 {
	return [4]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
		1,
	}
}

// ToNRGBA converts a normalised RGBA color into a color.NRGBA, clamping each channel.
//
// Parameters:
//   - c: the color as RGBA values in [0, 1]
//
// Returns:
//   - color.NRGBA: the 8-bit color
func ToNRGBA(c [4]float32) color.NRGBA {
	ch := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}
