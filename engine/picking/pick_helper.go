package picking

import (
	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/dom"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/scene"
)

// NoPointer is the coordinate stored when no pointer is over the element. It lies far
// outside the [-1, 1] range of normalised device coordinates, so it can never hit anything.
const NoPointer float32 = -100000

// PickHelper tracks the pointer over an element in normalised device coordinates and,
// on every Pick, finds the nearest mesh under it.
type PickHelper struct {
	raycaster    *Raycaster
	element      dom.Element
	pickPosition [2]float32
	pickedObject game_object.GameObject
	listeners    map[string]dom.ListenerID
}

// NewPickHelper attaches pointer tracking to element. The position starts cleared.
//
// Panics if element is nil.
//
// Parameters:
//   - element: the element pointer events arrive on
//
// Returns:
//   - *PickHelper: the attached helper
func NewPickHelper(element dom.Element) *PickHelper {
	if element == nil {
		panic("picking: NewPickHelper requires a non-nil element")
	}
	ph := &PickHelper{
		raycaster: NewRaycaster(),
		element:   element,
		listeners: make(map[string]dom.ListenerID),
	}
	ph.ClearPickPosition()

	handlers := map[string]dom.Listener{
		"mousemove":   ph.onMove,
		"pointermove": ph.onMove,
		"mouseout":    ph.onClear,
		"mouseleave":  ph.onClear,
		"touchend":    ph.onClear,
		"touchstart":  ph.onTouchStart,
		"touchmove":   ph.onTouchMove,
	}
	for eventType, fn := range handlers {
		ph.listeners[eventType] = element.AddEventListener(eventType, fn)
	}
	return ph
}

// PickPosition returns the tracked pointer position in normalised device coordinates.
func (ph *PickHelper) PickPosition() [2]float32 {
	return ph.pickPosition
}

// PickedObject returns the result of the last Pick, or nil.
func (ph *PickHelper) PickedObject() game_object.GameObject {
	return ph.pickedObject
}

// SetPickPosition converts a viewport position into normalised device coordinates relative
// to the element.
//
// Parameters:
//   - clientX, clientY: the viewport position in CSS pixels
func (ph *PickHelper) SetPickPosition(clientX, clientY float64) {
	rect := ph.element.BoundingClientRect()
	w, h := ph.element.ClientWidth(), ph.element.ClientHeight()
	if w <= 0 || h <= 0 {
		ph.ClearPickPosition()
		return
	}
	x := clientX - rect.Left
	y := clientY - rect.Top
	ph.pickPosition = [2]float32{
		float32(x/w*2 - 1),
		float32(y/h*-2 + 1),
	}
}

// ClearPickPosition stores the NoPointer sentinel.
func (ph *PickHelper) ClearPickPosition() {
	ph.pickPosition = [2]float32{NoPointer, NoPointer}
}

// Pick clears the previous result, then casts from cam through the tracked position and
// keeps the nearest mesh among the scene's objects and their descendants. A position
// outside [-1, 1] on either axis never casts.
//
// Parameters:
//   - s: the scene to search
//   - cam: the camera to cast from
//
// Returns:
//   - game_object.GameObject: the picked object, or nil
func (ph *PickHelper) Pick(s scene.Scene, cam camera.Camera) game_object.GameObject {
	ph.pickedObject = nil
	if s == nil || cam == nil || !inClipRange(ph.pickPosition) {
		return nil
	}
	ph.raycaster.SetFromCamera(ph.pickPosition, cam)
	hits := ph.raycaster.IntersectObjects(s.Children(), true)
	if len(hits) > 0 {
		ph.pickedObject = hits[0].Object
	}
	return ph.pickedObject
}

// Dispose removes every listener the helper attached.
func (ph *PickHelper) Dispose() {
	for eventType, id := range ph.listeners {
		ph.element.RemoveEventListener(eventType, id)
	}
	clear(ph.listeners)
}

func inClipRange(p [2]float32) bool {
	return p[0] >= -1 && p[0] <= 1 && p[1] >= -1 && p[1] <= 1
}

func (ph *PickHelper) onMove(ev *dom.Event) {
	ph.SetPickPosition(ev.ClientX, ev.ClientY)
}

func (ph *PickHelper) onClear(ev *dom.Event) {
	ph.ClearPickPosition()
}

// Touch envelopes carry only page coordinates.
func (ph *PickHelper) onTouchStart(ev *dom.Event) {
	ev.PreventDefault()
	ph.onTouchMove(ev)
}

func (ph *PickHelper) onTouchMove(ev *dom.Event) {
	if len(ev.Touches) == 0 {
		return
	}
	ph.SetPickPosition(ev.Touches[0].PageX, ev.Touches[0].PageY)
}
