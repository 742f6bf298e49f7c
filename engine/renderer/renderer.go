package renderer

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/scene"
)

// sideShade darkens the side faces of prisms relative to their top face.
const sideShade = 0.7

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	canvas      *Canvas
	backendType RendererBackendType
	backend     RendererBackend

	pixelRatio  float32
	outline     bool
	outlineRGBA color.NRGBA

	lastDrawn int
	queue     []drawItem
}

// drawItem is one primitive waiting to be drawn, keyed by its view depth.
type drawItem struct {
	depth   float32
	polygon [][2]float32
	fill    color.NRGBA
	stroke  bool
	image   image.Image
	rect    image.Rectangle
}

// Renderer draws a Scene as seen through a Camera into a Canvas.
//
// Meshes are drawn as their projected faces, sprites as screen-aligned images, and
// everything is ordered back to front by view depth. Objects whose faces reach behind the
// near plane are skipped.
type Renderer interface {
	// Canvas returns the canvas frames are presented to.
	//
	// Returns:
	//   - *Canvas: the target canvas
	Canvas() *Canvas

	// BackendType returns the backend selected at construction.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Resize configures the drawing buffer for a new size in CSS pixels; the buffer is scaled
	// by the pixel ratio.
	//
	// Parameters:
	//   - width: the new width in CSS pixels
	//   - height: the new height in CSS pixels
	Resize(width, height int)

	// Size returns the drawing-buffer size in pixels.
	//
	// Returns:
	//   - width, height: the buffer size
	Size() (width, height int)

	// PixelRatio returns the device pixel ratio applied by Resize.
	PixelRatio() float32

	// Render draws one frame of s from cam and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: error if s or cam is nil
	Render(s scene.Scene, cam camera.Camera) error

	// LastDrawCount returns the number of primitives drawn in the last frame.
	LastDrawCount() int
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer that presents into canvas.
//
// Panics if canvas is nil.
//
// Parameters:
//   - backendType: the backend to draw with
//   - canvas: the presentation target
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(backendType RendererBackendType, canvas *Canvas, options ...RendererBuilderOption) Renderer {
	if canvas == nil {
		panic("renderer: NewRenderer requires a non-nil Canvas")
	}
	r := &renderer{
		mu:          &sync.Mutex{},
		canvas:      canvas,
		backendType: backendType,
		pixelRatio:  1,
	}

	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeRaster:
		fallthrough
	default:
		r.backend = newRasterRendererBackend(canvas)
	}
	return r
}

func (r *renderer) Canvas() *Canvas {
	return r.canvas
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Resize(int(float32(width)*r.pixelRatio), int(float32(height)*r.pixelRatio))
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Size()
}

func (r *renderer) PixelRatio() float32 {
	return r.pixelRatio
}

func (r *renderer) LastDrawCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastDrawn
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if s == nil || cam == nil {
		return fmt.Errorf("render: scene and camera are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.backend.Size()
	vp := cam.ViewProjectionMatrix()
	proj := cam.ProjectionMatrix()

	r.queue = r.queue[:0]
	s.Traverse(func(obj game_object.GameObject) bool {
		if !obj.Enabled() {
			return false
		}
		switch obj.Kind() {
		case game_object.KindMesh:
			r.queueMesh(obj, vp, w, h)
		case game_object.KindSprite:
			r.queueSprite(obj, vp, proj, w, h)
		}
		return true
	})

	sort.SliceStable(r.queue, func(i, j int) bool {
		return r.queue[i].depth > r.queue[j].depth
	})

	r.backend.BeginFrame(common.ToNRGBA(s.BackgroundColor()))
	for _, item := range r.queue {
		switch {
		case item.image != nil:
			r.backend.DrawImage(item.image, item.rect)
		case item.stroke:
			r.backend.StrokePolygon(item.polygon, 1, item.fill)
		default:
			r.backend.FillPolygon(item.polygon, item.fill)
			if r.outline {
				r.backend.StrokePolygon(item.polygon, 1, r.outlineRGBA)
			}
		}
	}
	r.backend.EndFrame()
	r.lastDrawn = len(r.queue)
	return nil
}

// project maps a world point to pixel coordinates. ok is false when the point is behind the eye.
func project(vp []float32, p [3]float32, w, h int) (px [2]float32, depth float32, ok bool) {
	ndc, clipW := common.TransformPoint(vp, p[0], p[1], p[2])
	if clipW <= 0 {
		return px, 0, false
	}
	return [2]float32{
		(ndc[0] + 1) / 2 * float32(w),
		(1 - ndc[1]) / 2 * float32(h),
	}, clipW, true
}

// queueMesh adds the top face and the side faces of a prism mesh.
func (r *renderer) queueMesh(obj game_object.GameObject, vp [16]float32, w, h int) {
	g := obj.Geometry()
	m := obj.Material()
	if g == nil || m == nil {
		return
	}
	world := obj.WorldMatrix()
	var mvp [16]float32
	common.Mul4(mvp[:], vp[:], world[:])

	outline := g.Outline()
	n := len(outline)
	top := make([][2]float32, n)
	bottom := make([][2]float32, n)
	topDepths := make([]float32, n)
	bottomDepths := make([]float32, n)
	var topDepth float32
	for i, v := range outline {
		p, d, ok := project(mvp[:], v, w, h)
		if !ok {
			return
		}
		top[i], topDepths[i] = p, d
		topDepth += d
		p, d, ok = project(mvp[:], [3]float32{v[0], -v[1], v[2]}, w, h)
		if !ok {
			return
		}
		bottom[i], bottomDepths[i] = p, d
	}

	base := common.ToNRGBA(m.BaseColor())
	if m.Wireframe() {
		r.queue = append(r.queue, drawItem{depth: topDepth / float32(n), polygon: top, fill: base, stroke: true})
		return
	}

	side := base
	side.R = uint8(float32(side.R) * sideShade)
	side.G = uint8(float32(side.G) * sideShade)
	side.B = uint8(float32(side.B) * sideShade)
	for i := range n {
		j := (i + 1) % n
		r.queue = append(r.queue, drawItem{
			depth:   (topDepths[i] + topDepths[j] + bottomDepths[i] + bottomDepths[j]) / 4,
			polygon: [][2]float32{top[i], top[j], bottom[j], bottom[i]},
			fill:    side,
		})
	}
	// The top face sorts slightly nearer than the sides so it wins ties.
	r.queue = append(r.queue, drawItem{depth: topDepth/float32(n) - 1e-4, polygon: top, fill: base})
}

// queueSprite adds a screen-aligned image centred on the sprite's world position and sized
// by its world scale.
func (r *renderer) queueSprite(obj game_object.GameObject, vp, proj [16]float32, w, h int) {
	m := obj.Material()
	if m == nil || m.Texture() == nil {
		return
	}
	center, depth, ok := project(vp[:], obj.WorldPosition(), w, h)
	if !ok {
		return
	}
	world := obj.WorldMatrix()
	sx := common.Length3([3]float32{world[0], world[1], world[2]})
	sy := common.Length3([3]float32{world[4], world[5], world[6]})

	// Pixels per world unit at this depth.
	ppu := proj[5] * float32(h) / 2 / depth
	halfW := sx * ppu / 2
	halfH := sy * ppu / 2
	rect := image.Rect(
		int(center[0]-halfW), int(center[1]-halfH),
		int(center[0]+halfW), int(center[1]+halfH),
	)
	r.queue = append(r.queue, drawItem{depth: depth, image: m.Texture().Image(), rect: rect})
}
