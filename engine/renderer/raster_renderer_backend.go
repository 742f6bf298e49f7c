package renderer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// rasterRendererBackend fills anti-aliased polygons with x/image/vector into a back buffer
// and copies the buffer into the Canvas on EndFrame.
type rasterRendererBackend struct {
	canvas *Canvas
	frame  *image.RGBA
	raster *vector.Rasterizer
}

var _ RendererBackend = &rasterRendererBackend{}

func newRasterRendererBackend(canvas *Canvas) *rasterRendererBackend {
	w, h := canvas.Width(), canvas.Height()
	return &rasterRendererBackend{
		canvas: canvas,
		frame:  image.NewRGBA(image.Rect(0, 0, w, h)),
		raster: vector.NewRasterizer(w, h),
	}
}

func (b *rasterRendererBackend) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	b.canvas.Resize(width, height)
	if b.frame.Bounds().Dx() == width && b.frame.Bounds().Dy() == height {
		return
	}
	b.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	b.raster.Reset(width, height)
}

func (b *rasterRendererBackend) Size() (int, int) {
	return b.frame.Bounds().Dx(), b.frame.Bounds().Dy()
}

func (b *rasterRendererBackend) BeginFrame(clear color.Color) {
	draw.Draw(b.frame, b.frame.Bounds(), image.NewUniform(clear), image.Point{}, draw.Src)
}

func (b *rasterRendererBackend) FillPolygon(points [][2]float32, c color.Color) {
	if len(points) < 3 {
		return
	}
	b.raster.Reset(b.frame.Bounds().Dx(), b.frame.Bounds().Dy())
	b.raster.DrawOp = draw.Over
	b.raster.MoveTo(points[0][0], points[0][1])
	for _, p := range points[1:] {
		b.raster.LineTo(p[0], p[1])
	}
	b.raster.ClosePath()
	b.raster.Draw(b.frame, b.frame.Bounds(), image.NewUniform(c), image.Point{})
}

// StrokePolygon draws each edge as a thin quad.
func (b *rasterRendererBackend) StrokePolygon(points [][2]float32, width float32, c color.Color) {
	if len(points) < 2 {
		return
	}
	half := width / 2
	for i := range points {
		p0 := points[i]
		p1 := points[(i+1)%len(points)]
		dx, dy := p1[0]-p0[0], p1[1]-p0[1]
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		b.FillPolygon([][2]float32{
			{p0[0] + nx, p0[1] + ny},
			{p1[0] + nx, p1[1] + ny},
			{p1[0] - nx, p1[1] - ny},
			{p0[0] - nx, p0[1] - ny},
		}, c)
	}
}

func (b *rasterRendererBackend) DrawImage(src image.Image, dst image.Rectangle) {
	if src == nil || dst.Empty() {
		return
	}
	draw.ApproxBiLinear.Scale(b.frame, dst, src, src.Bounds(), draw.Over, nil)
}

func (b *rasterRendererBackend) EndFrame() {
	b.canvas.present(b.frame)
}
