package game_object

import (
	"github.com/Carmen-Shannon/estomania/engine/geometry"
	"github.com/Carmen-Shannon/estomania/engine/light"
	"github.com/Carmen-Shannon/estomania/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithUUID sets the identity key of the GameObject.
//
// Parameters:
//   - uuid: the identity key, usually the server-assigned UUID
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the UUID
func WithUUID(uuid string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.uuid = uuid
	}
}

// WithName sets the human readable name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithKind sets how the GameObject is rendered and picked.
//
// Parameters:
//   - kind: the object kind
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the kind
func WithKind(kind Kind) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.kind = kind
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithGeometry sets the local-space shape and marks the object as a mesh.
//
// Parameters:
//   - g: the geometry
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the geometry
func WithGeometry(g geometry.Geometry) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.geometry = g
		obj.kind = KindMesh
	}
}

// WithMaterial sets the surface description of the GameObject.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.material = m
	}
}

// WithPosition sets the local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the local scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the local Euler rotation of the GameObject in radians.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithLight attaches a Light to the GameObject and marks it as a light node.
// The light is placed wherever the object is.
//
// Parameters:
//   - l: the Light to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the attached light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.light = l
		obj.kind = KindLight
	}
}
