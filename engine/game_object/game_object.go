package game_object

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/geometry"
	"github.com/Carmen-Shannon/estomania/engine/light"
	"github.com/Carmen-Shannon/estomania/engine/renderer/material"
)

// Kind distinguishes how the renderer and the raycaster treat an object.
type Kind int

const (
	// KindGroup is an empty node that only carries a transform and children.
	KindGroup Kind = iota
	// KindMesh is a solid object with a geometry and a material. Only meshes are pickable.
	KindMesh
	// KindSprite is a camera-facing textured quad, such as a name tag.
	KindSprite
	// KindLight is a node carrying an attached Light.
	KindLight
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindSprite:
		return "sprite"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

var objectCounter atomic.Uint64

type gameObject struct {
	uuid     string
	name     string
	kind     Kind
	enabled  atomic.Bool
	geometry geometry.Geometry
	material material.Material
	light    light.Light

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	parent   GameObject
	children []GameObject
}

// GameObject is a node in the scene graph. It carries a local transform, an optional
// geometry and material (meshes and sprites), an optional attached Light, and children
// whose transforms are relative to it.
//
// Every object has a UUID. Objects created for server entities take the server's UUID;
// all others receive a generated "object-<n>" identifier.
type GameObject interface {
	// UUID returns the object's identity key.
	//
	// Returns:
	//   - string: the UUID
	UUID() string

	// Name returns the human readable name of the object.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Kind returns how the object is rendered and picked.
	//
	// Returns:
	//   - Kind: the object kind
	Kind() Kind

	// Enabled returns whether this object (and its subtree) is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Geometry returns the local-space shape, or nil for groups, sprites and lights.
	//
	// Returns:
	//   - geometry.Geometry: the shape or nil
	Geometry() geometry.Geometry

	// Material returns the surface description, or nil.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// Light returns the attached Light, or nil.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// Position returns the local position relative to the parent.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - [3]float32: the rotation
	Rotation() [3]float32

	// Scale returns the local scale.
	//
	// Returns:
	//   - [3]float32: the scale factors
	Scale() [3]float32

	// SetName sets the human readable name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to draw
	SetEnabled(enabled bool)

	// SetMaterial replaces the material.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m material.Material)

	// SetPosition sets the local position.
	//
	// Parameters:
	//   - x, y, z: the new position
	SetPosition(x, y, z float32)

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: the new rotation
	SetRotation(rx, ry, rz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: the new scale factors
	SetScale(sx, sy, sz float32)

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a copy of the direct children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// Add attaches child to this node, detaching it from any previous parent first.
	// Adding an object to itself is ignored.
	//
	// Parameters:
	//   - child: the node to attach
	Add(child GameObject)

	// Remove detaches child from this node. Unknown children are ignored.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if child was attached and has been removed
	Remove(child GameObject) bool

	// LocalMatrix builds the column-major local transform.
	//
	// Returns:
	//   - [16]float32: the local matrix
	LocalMatrix() [16]float32

	// WorldMatrix composes the local transforms from the root down to this node.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// WorldPosition returns the object's origin in world space.
	//
	// Returns:
	//   - [3]float32: the world position
	WorldPosition() [3]float32

	setParent(parent GameObject)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Without WithUUID the object receives a generated identifier.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.uuid == "" {
		obj.uuid = fmt.Sprintf("object-%d", objectCounter.Add(1))
	}
	return obj
}

func (g *gameObject) UUID() string {
	return g.uuid
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Kind() Kind {
	return g.kind
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Geometry() geometry.Geometry {
	return g.geometry
}

func (g *gameObject) Material() material.Material {
	return g.material
}

func (g *gameObject) Light() light.Light {
	return g.light
}

func (g *gameObject) Position() [3]float32 {
	return g.position
}

func (g *gameObject) Rotation() [3]float32 {
	return g.rotation
}

func (g *gameObject) Scale() [3]float32 {
	return g.scale
}

func (g *gameObject) SetName(name string) {
	g.name = name
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.material = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) Parent() GameObject {
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	out := make([]GameObject, len(g.children))
	copy(out, g.children)
	return out
}

func (g *gameObject) Add(child GameObject) {
	if child == nil || child == GameObject(g) {
		return
	}
	if prev := child.Parent(); prev != nil {
		prev.Remove(child)
	}
	child.setParent(g)
	g.children = append(g.children, child)
}

func (g *gameObject) Remove(child GameObject) bool {
	for i, c := range g.children {
		if c == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			child.setParent(nil)
			return true
		}
	}
	return false
}

func (g *gameObject) LocalMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:],
		g.position[0], g.position[1], g.position[2],
		g.rotation[0], g.rotation[1], g.rotation[2],
		g.scale[0], g.scale[1], g.scale[2],
	)
	return m
}

func (g *gameObject) WorldMatrix() [16]float32 {
	local := g.LocalMatrix()
	if g.parent == nil {
		return local
	}
	parent := g.parent.WorldMatrix()
	var out [16]float32
	common.Mul4(out[:], parent[:], local[:])
	return out
}

func (g *gameObject) WorldPosition() [3]float32 {
	m := g.WorldMatrix()
	return [3]float32{m[12], m[13], m[14]}
}

func (g *gameObject) setParent(parent GameObject) {
	g.parent = parent
}
