package geometry

import (
	"math"

	"github.com/Carmen-Shannon/estomania/common"
)

// Plane is a half-space boundary in local object space. A point p is inside when Normal·p <= D.
type Plane struct {
	Normal [3]float32
	D      float32
}

// Geometry is the local-space shape of a renderable object. Every shape here is a convex
// polyhedron, described both as bounding planes (for ray tests) and as a top-face outline
// (for the raster backend).
type Geometry interface {
	// Name returns the geometry kind, e.g. "cylinder" or "box".
	//
	// Returns:
	//   - string: the geometry kind
	Name() string

	// Planes returns the bounding planes of the convex shape in local space.
	//
	// Returns:
	//   - []Plane: the planes; the shape is their intersection
	Planes() []Plane

	// Outline returns the vertices of the top face in local space, in winding order.
	//
	// Returns:
	//   - [][3]float32: the outline vertices
	Outline() [][3]float32
}

type convexGeometry struct {
	name    string
	planes  []Plane
	outline [][3]float32
}

var _ Geometry = &convexGeometry{}

func (g *convexGeometry) Name() string {
	return g.name
}

func (g *convexGeometry) Planes() []Plane {
	return g.planes
}

func (g *convexGeometry) Outline() [][3]float32 {
	return g.outline
}

// NewCylinderGeometry builds a prism with radialSegments sides centred on the origin and
// aligned with the Y axis. With six segments this is the hex tile shape. Vertices sit at
// angles 2πi/n measured from +Z toward +X. When the radii differ the larger one bounds the shape.
//
// Parameters:
//   - radiusTop: circumradius of the top face
//   - radiusBottom: circumradius of the bottom face
//   - height: extent along Y
//   - radialSegments: number of sides (minimum 3)
//
// Returns:
//   - Geometry: the prism
func NewCylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments int) Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	radius := max(radiusTop, radiusBottom)
	half := height / 2
	n := float64(radialSegments)
	apothem := radius * float32(math.Cos(math.Pi/n))

	planes := []Plane{
		{Normal: [3]float32{0, 1, 0}, D: half},
		{Normal: [3]float32{0, -1, 0}, D: half},
	}
	outline := make([][3]float32, 0, radialSegments)
	for i := 0; i < radialSegments; i++ {
		theta := 2 * math.Pi * float64(i) / n
		outline = append(outline, [3]float32{
			radiusTop * float32(math.Sin(theta)),
			half,
			radiusTop * float32(math.Cos(theta)),
		})
		mid := theta + math.Pi/n
		planes = append(planes, Plane{
			Normal: [3]float32{float32(math.Sin(mid)), 0, float32(math.Cos(mid))},
			D:      apothem,
		})
	}

	return &convexGeometry{name: "cylinder", planes: planes, outline: outline}
}

// NewBoxGeometry builds an axis-aligned box centred on the origin.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//
// Returns:
//   - Geometry: the box
func NewBoxGeometry(width, height, depth float32) Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	return &convexGeometry{
		name: "box",
		planes: []Plane{
			{Normal: [3]float32{1, 0, 0}, D: hx},
			{Normal: [3]float32{-1, 0, 0}, D: hx},
			{Normal: [3]float32{0, 1, 0}, D: hy},
			{Normal: [3]float32{0, -1, 0}, D: hy},
			{Normal: [3]float32{0, 0, 1}, D: hz},
			{Normal: [3]float32{0, 0, -1}, D: hz},
		},
		outline: [][3]float32{
			{-hx, hy, -hz},
			{hx, hy, -hz},
			{hx, hy, hz},
			{-hx, hy, hz},
		},
	}
}

// IntersectRay intersects a local-space ray with the convex shape of g using the slab method
// over its planes. The direction does not need to be normalised; the returned parameter is in
// units of the direction's length.
//
// Parameters:
//   - g: the geometry to test
//   - origin: ray origin in local space
//   - dir: ray direction in local space
//
// Returns:
//   - float32: ray parameter of the first hit at or after the origin
//   - bool: false when the ray misses
func IntersectRay(g Geometry, origin, dir [3]float32) (float32, bool) {
	if g == nil {
		return 0, false
	}
	tEnter := float32(math.Inf(-1))
	tExit := float32(math.Inf(1))
	for _, p := range g.Planes() {
		denom := common.Dot3(p.Normal, dir)
		dist := p.D - common.Dot3(p.Normal, origin)
		if denom == 0 {
			if dist < 0 {
				return 0, false
			}
			continue
		}
		t := dist / denom
		if denom < 0 {
			tEnter = max(tEnter, t)
		} else {
			tExit = min(tExit, t)
		}
		if tEnter > tExit {
			return 0, false
		}
	}
	if tExit < 0 {
		return 0, false
	}
	if tEnter >= 0 {
		return tEnter, true
	}
	return tExit, true
}
