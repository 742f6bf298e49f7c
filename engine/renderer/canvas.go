package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
)

// Canvas is the drawing surface the renderer presents frames to. It is created on the
// main goroutine and handed to the worker inside the start message; after that only the
// worker draws into it, and other goroutines read it through Snapshot.
type Canvas struct {
	mu  sync.RWMutex
	id  string
	img *image.RGBA
}

// NewCanvas creates a canvas of the given size. Non-positive sizes become 1.
//
// Parameters:
//   - id: the canvas identifier
//   - width, height: the size in pixels
//
// Returns:
//   - *Canvas: the new canvas
func NewCanvas(id string, width, height int) *Canvas {
	return &Canvas{
		id:  id,
		img: image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))),
	}
}

// ID returns the canvas identifier.
func (c *Canvas) ID() string {
	return c.id
}

// Width returns the drawing-buffer width in pixels.
func (c *Canvas) Width() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img.Bounds().Dx()
}

// Height returns the drawing-buffer height in pixels.
func (c *Canvas) Height() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img.Bounds().Dy()
}

// Resize reallocates the drawing buffer when the size changes.
//
// Parameters:
//   - width, height: the new size in pixels
//
// Returns:
//   - bool: true if the buffer was reallocated
func (c *Canvas) Resize(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.img.Bounds().Dx() == width && c.img.Bounds().Dy() == height {
		return false
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

// present copies a finished frame into the canvas. Frames of a different size are ignored.
func (c *Canvas) present(frame *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if frame.Bounds() != c.img.Bounds() {
		return
	}
	copy(c.img.Pix, frame.Pix)
}

// Snapshot returns a copy of the last presented frame.
//
// Returns:
//   - *image.RGBA: the frame copy
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// EncodePNG writes the last presented frame as a PNG.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: error if encoding fails
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Snapshot()); err != nil {
		return fmt.Errorf("encode canvas %q: %w", c.id, err)
	}
	return nil
}
