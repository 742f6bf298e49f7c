package renderer

import "github.com/Carmen-Shannon/estomania/common"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPixelRatio sets the device pixel ratio applied to sizes passed to Resize.
//
// Parameters:
//   - ratio: the ratio, values <= 0 are ignored
//
// Returns:
//   - RendererBuilderOption: a function that applies the pixel ratio option to a renderer
func WithPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		if ratio > 0 {
			r.pixelRatio = ratio
		}
	}
}

// WithOutline draws a one pixel outline around every filled face.
//
// Parameters:
//   - hex: the outline color as 0xRRGGBB
//
// Returns:
//   - RendererBuilderOption: a function that applies the outline option to a renderer
func WithOutline(hex uint32) RendererBuilderOption {
	return func(r *renderer) {
		r.outline = true
		r.outlineRGBA = common.ToNRGBA(common.HexColor(hex))
	}
}
