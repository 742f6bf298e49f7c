package renderer

import (
	"image"
	"image/color"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeRaster selects the CPU scanline rasteriser that draws into a Canvas.
	BackendTypeRaster RendererBackendType = iota
)

// RendererBackend draws primitives into a frame and presents it. The Renderer projects the
// scene and sorts primitives; a backend only fills pixels.
type RendererBackend interface {
	// Resize reallocates the frame buffer.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Size returns the frame size in pixels.
	Size() (width, height int)

	// BeginFrame clears the frame to the given color.
	//
	// Parameters:
	//   - clear: the background color
	BeginFrame(clear color.Color)

	// FillPolygon fills a closed polygon given in pixel coordinates.
	//
	// Parameters:
	//   - points: the polygon vertices
	//   - c: the fill color
	FillPolygon(points [][2]float32, c color.Color)

	// StrokePolygon draws the outline of a closed polygon.
	//
	// Parameters:
	//   - points: the polygon vertices
	//   - width: line width in pixels
	//   - c: the line color
	StrokePolygon(points [][2]float32, width float32, c color.Color)

	// DrawImage scales src into dst, blending over what is already drawn.
	//
	// Parameters:
	//   - src: the image to draw
	//   - dst: the destination rectangle in pixels
	DrawImage(src image.Image, dst image.Rectangle)

	// EndFrame presents the finished frame.
	EndFrame()
}
