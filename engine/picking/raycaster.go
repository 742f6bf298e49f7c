package picking

import (
	"math"
	"sort"

	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/geometry"
)

// Intersection is a single ray hit.
type Intersection struct {
	// Distance is the world-space distance from the ray origin to Point.
	Distance float32
	// Point is the world-space hit location.
	Point [3]float32
	// Object is the mesh that was hit.
	Object game_object.GameObject
}

// Raycaster casts a world-space ray against mesh geometry. Only objects of kind mesh
// with a geometry can be hit; groups, sprites and lights are traversed but never returned.
type Raycaster struct {
	Origin    [3]float32
	Direction [3]float32
	Near      float32
	Far       float32
}

// NewRaycaster returns a Raycaster with an unbounded range.
func NewRaycaster() *Raycaster {
	return &Raycaster{
		Direction: [3]float32{0, 0, -1},
		Far:       float32(math.Inf(1)),
	}
}

// SetFromCamera aims the ray from the camera's eye through a point given in normalised
// device coordinates, where (-1, -1) is the bottom-left and (1, 1) the top-right corner.
//
// Parameters:
//   - ndc: the pointer position in normalised device coordinates
//   - cam: the camera to cast from
func (rc *Raycaster) SetFromCamera(ndc [2]float32, cam camera.Camera) {
	inv := cam.InverseViewProjectionMatrix()
	rc.Origin = cam.Position()
	through, _ := common.TransformPoint(inv[:], ndc[0], ndc[1], 0.5)
	rc.Direction = common.Normalize3(common.Sub3(through, rc.Origin))
}

// IntersectObject tests obj and, when recursive, its descendants.
//
// Parameters:
//   - obj: the object to test
//   - recursive: whether to descend into children
//
// Returns:
//   - []Intersection: hits sorted nearest first
func (rc *Raycaster) IntersectObject(obj game_object.GameObject, recursive bool) []Intersection {
	var hits []Intersection
	rc.intersect(obj, recursive, &hits)
	sortIntersections(hits)
	return hits
}

// IntersectObjects tests every object in objs.
//
// Parameters:
//   - objs: the objects to test
//   - recursive: whether to descend into children
//
// Returns:
//   - []Intersection: hits sorted nearest first
func (rc *Raycaster) IntersectObjects(objs []game_object.GameObject, recursive bool) []Intersection {
	var hits []Intersection
	for _, obj := range objs {
		rc.intersect(obj, recursive, &hits)
	}
	sortIntersections(hits)
	return hits
}

func (rc *Raycaster) intersect(obj game_object.GameObject, recursive bool, hits *[]Intersection) {
	if obj == nil || !obj.Enabled() {
		return
	}
	if hit, ok := rc.intersectMesh(obj); ok {
		*hits = append(*hits, hit)
	}
	if !recursive {
		return
	}
	for _, child := range obj.Children() {
		rc.intersect(child, true, hits)
	}
}

// intersectMesh moves the ray into the object's local space, runs the convex test there and
// maps the hit point back to world space.
func (rc *Raycaster) intersectMesh(obj game_object.GameObject) (Intersection, bool) {
	if obj.Kind() != game_object.KindMesh || obj.Geometry() == nil {
		return Intersection{}, false
	}
	world := obj.WorldMatrix()
	var inv [16]float32
	if !common.Invert4(inv[:], world[:]) {
		return Intersection{}, false
	}
	localOrigin, _ := common.TransformPoint(inv[:], rc.Origin[0], rc.Origin[1], rc.Origin[2])
	localDir := common.TransformDirection(inv[:], rc.Direction[0], rc.Direction[1], rc.Direction[2])

	t, ok := geometry.IntersectRay(obj.Geometry(), localOrigin, localDir)
	if !ok {
		return Intersection{}, false
	}
	local := [3]float32{
		localOrigin[0] + localDir[0]*t,
		localOrigin[1] + localDir[1]*t,
		localOrigin[2] + localDir[2]*t,
	}
	point, _ := common.TransformPoint(world[:], local[0], local[1], local[2])
	dist := common.Length3(common.Sub3(point, rc.Origin))
	if dist < rc.Near || dist > rc.Far {
		return Intersection{}, false
	}
	return Intersection{Distance: dist, Point: point, Object: obj}, true
}

func sortIntersections(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}
