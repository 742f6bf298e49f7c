package scene

import (
	"sync"

	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/light"
)

// Scene is the root of an object graph together with the camera it is viewed through.
// Top-level objects are added directly; their children are reached through Traverse.
// Lights attached to top-level objects are tracked so the renderer can read them
// without walking the graph.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Add appends a top-level object. An object that is already a top-level member is not added twice.
	//
	// Parameters:
	//   - obj: the object to add
	Add(obj game_object.GameObject)

	// Remove detaches a top-level object. Returns false if obj is not a top-level member.
	//
	// Parameters:
	//   - obj: the object to remove
	//
	// Returns:
	//   - bool: true if the object was removed
	Remove(obj game_object.GameObject) bool

	// Contains reports whether obj is a top-level member.
	//
	// Parameters:
	//   - obj: the object to look for
	//
	// Returns:
	//   - bool: true if present
	Contains(obj game_object.GameObject) bool

	// Children returns a copy of the top-level objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the top-level objects
	Children() []game_object.GameObject

	// Count returns the number of top-level objects.
	//
	// Returns:
	//   - int: the count
	Count() int

	// Traverse calls fn for every object in the graph, parents before children.
	// Returning false from fn skips that object's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(obj game_object.GameObject) bool)

	// Lights returns the lights attached to top-level objects.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// AmbientColor returns the scene's ambient light color.
	//
	// Returns:
	//   - [3]float32: the ambient RGB color
	AmbientColor() [3]float32

	// SetAmbientColor sets the scene's ambient light color.
	//
	// Parameters:
	//   - color: the ambient RGB color
	SetAmbientColor(color [3]float32)

	// BackgroundColor returns the clear color used by the renderer.
	//
	// Returns:
	//   - [4]float32: RGBA in [0, 1]
	BackgroundColor() [4]float32

	// Clear removes all objects and lights from the scene.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam      camera.Camera
	children []game_object.GameObject

	lights       []light.Light
	ambientColor [3]float32
	background   [4]float32
}

var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam.
//
// Panics if cam is nil.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera the scene is rendered from
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		cam:        cam,
		background: [4]float32{0, 0, 0, 1},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Add(obj game_object.GameObject) {
	if obj == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(obj)
}

func (s *scene) addLocked(obj game_object.GameObject) {
	for _, c := range s.children {
		if c == obj {
			return
		}
	}
	if p := obj.Parent(); p != nil {
		p.Remove(obj)
	}
	s.children = append(s.children, obj)
	if l := obj.Light(); l != nil {
		s.lights = append(s.lights, l)
	}
}

func (s *scene) Remove(obj game_object.GameObject) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.children {
		if c != obj {
			continue
		}
		s.children = append(s.children[:i], s.children[i+1:]...)
		if l := obj.Light(); l != nil {
			for j, existing := range s.lights {
				if existing == l {
					s.lights = append(s.lights[:j], s.lights[j+1:]...)
					break
				}
			}
		}
		return true
	}
	return false
}

func (s *scene) Contains(obj game_object.GameObject) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.children {
		if c == obj {
			return true
		}
	}
	return false
}

func (s *scene) Children() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.children))
	copy(out, s.children)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.children)
}

func (s *scene) Traverse(fn func(obj game_object.GameObject) bool) {
	for _, obj := range s.Children() {
		traverse(obj, fn)
	}
}

func traverse(obj game_object.GameObject, fn func(obj game_object.GameObject) bool) {
	if !fn(obj) {
		return
	}
	for _, child := range obj.Children() {
		traverse(child, fn)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AmbientColor() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor
}

func (s *scene) SetAmbientColor(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = color
}

func (s *scene) BackgroundColor() [4]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = nil
	s.lights = nil
}
