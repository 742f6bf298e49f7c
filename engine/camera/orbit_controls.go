package camera

import (
	"math"

	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/dom"
)

type controlState int

const (
	stateNone controlState = iota
	stateRotate
	statePan
	stateDolly
	stateTouchRotate
	stateTouchDolly
)

// keyPanPixels is how far one arrow key press pans, in element pixels.
const keyPanPixels = 7

// OrbitControls drive a Camera's controller from the events of a dom.Element. Primary
// button drags rotate, secondary (or modified primary) drags pan, middle drags and the
// wheel zoom, arrow keys pan, one finger rotates, and two fingers pinch-zoom.
//
// The element may be the real window or a worker-side proxy target; the controls only use
// the dom.Element capability surface.
type OrbitControls struct {
	cam     Camera
	element dom.Element

	enabled   bool
	state     controlState
	pointerID int
	lastX     float64
	lastY     float64
	pinchDist float64

	listeners map[string]dom.ListenerID
}

// NewOrbitControls attaches orbit controls for cam to element. The camera must have a
// controller attached.
//
// Panics if cam, its controller, or element is nil.
//
// Parameters:
//   - cam: the camera to move
//   - element: the event source
//
// Returns:
//   - *OrbitControls: the attached controls
func NewOrbitControls(cam Camera, element dom.Element) *OrbitControls {
	if cam == nil || cam.Controller() == nil {
		panic("camera: NewOrbitControls requires a Camera with a controller")
	}
	if element == nil {
		panic("camera: NewOrbitControls requires a non-nil element")
	}

	oc := &OrbitControls{
		cam:       cam,
		element:   element,
		enabled:   true,
		listeners: make(map[string]dom.ListenerID),
	}
	element.Style()["touchAction"] = "none"

	handlers := map[string]dom.Listener{
		"contextmenu":   oc.onContextMenu,
		"pointerdown":   oc.onPointerDown,
		"pointermove":   oc.onPointerMove,
		"pointerup":     oc.onPointerUp,
		"pointercancel": oc.onPointerUp,
		"wheel":         oc.onWheel,
		"keydown":       oc.onKeyDown,
		"touchstart":    oc.onTouchStart,
		"touchmove":     oc.onTouchMove,
		"touchend":      oc.onTouchEnd,
	}
	for eventType, fn := range handlers {
		oc.listeners[eventType] = element.AddEventListener(eventType, fn)
	}
	return oc
}

// Enabled reports whether input is applied to the camera.
func (oc *OrbitControls) Enabled() bool {
	return oc.enabled
}

// SetEnabled turns input handling on or off. Listeners stay attached.
func (oc *OrbitControls) SetEnabled(enabled bool) {
	oc.enabled = enabled
	if !enabled {
		oc.state = stateNone
	}
}

// Update recomputes the camera matrices from the controller. Call once per frame.
func (oc *OrbitControls) Update() {
	oc.cam.Update()
}

// Dispose removes every listener the controls attached.
func (oc *OrbitControls) Dispose() {
	for eventType, id := range oc.listeners {
		oc.element.RemoveEventListener(eventType, id)
	}
	clear(oc.listeners)
}

func (oc *OrbitControls) controller() CameraController {
	return oc.cam.Controller()
}

func (oc *OrbitControls) height() float64 {
	if h := oc.element.ClientHeight(); h > 0 {
		return h
	}
	return 1
}

func (oc *OrbitControls) rotateBy(dx, dy float64) {
	h := oc.height()
	oc.controller().Rotate(
		float32(-2*math.Pi*dx/h),
		float32(2*math.Pi*dy/h),
	)
}

// panBy converts a pixel offset into world units at the target's depth, so the point under
// the pointer follows the drag.
func (oc *OrbitControls) panBy(dx, dy float64) {
	ctrl := oc.controller()
	targetDistance := float64(ctrl.Radius()) * math.Tan(float64(oc.cam.Fov())/2)
	h := oc.height()
	ctrl.Pan(
		float32(-2*dx*targetDistance/h),
		float32(2*dy*targetDistance/h),
	)
}

func (oc *OrbitControls) onContextMenu(ev *dom.Event) {
	if oc.enabled {
		ev.PreventDefault()
	}
}

func (oc *OrbitControls) onPointerDown(ev *dom.Event) {
	if !oc.enabled || ev.PointerType == "touch" {
		return
	}
	oc.element.Focus()
	oc.element.SetPointerCapture(ev.PointerID)
	oc.pointerID = ev.PointerID
	oc.lastX, oc.lastY = ev.ClientX, ev.ClientY

	switch ev.Button {
	case 0:
		if ev.CtrlKey || ev.MetaKey || ev.ShiftKey {
			oc.state = statePan
		} else {
			oc.state = stateRotate
		}
	case 1:
		oc.state = stateDolly
	case 2:
		oc.state = statePan
	default:
		oc.state = stateNone
	}
}

func (oc *OrbitControls) onPointerMove(ev *dom.Event) {
	if !oc.enabled || ev.PointerType == "touch" {
		return
	}
	dx, dy := ev.ClientX-oc.lastX, ev.ClientY-oc.lastY
	switch oc.state {
	case stateRotate:
		oc.rotateBy(dx, dy)
	case statePan:
		oc.panBy(dx, dy)
	case stateDolly:
		if dy != 0 {
			oc.controller().Zoom(float32(-common.Clamp(dy, -1, 1)))
		}
	default:
		return
	}
	oc.lastX, oc.lastY = ev.ClientX, ev.ClientY
}

func (oc *OrbitControls) onPointerUp(ev *dom.Event) {
	if ev.PointerType == "touch" {
		return
	}
	if oc.state != stateNone {
		oc.element.ReleasePointerCapture(oc.pointerID)
	}
	oc.state = stateNone
}

func (oc *OrbitControls) onWheel(ev *dom.Event) {
	if !oc.enabled || oc.state != stateNone {
		return
	}
	ev.PreventDefault()
	switch {
	case ev.DeltaY < 0:
		oc.controller().Zoom(1)
	case ev.DeltaY > 0:
		oc.controller().Zoom(-1)
	}
}

func (oc *OrbitControls) onKeyDown(ev *dom.Event) {
	if !oc.enabled {
		return
	}
	switch ev.KeyCode {
	case common.KeyUp:
		oc.panBy(0, keyPanPixels)
	case common.KeyDown:
		oc.panBy(0, -keyPanPixels)
	case common.KeyLeft:
		oc.panBy(keyPanPixels, 0)
	case common.KeyRight:
		oc.panBy(-keyPanPixels, 0)
	default:
		return
	}
	ev.PreventDefault()
}

func (oc *OrbitControls) onTouchStart(ev *dom.Event) {
	if !oc.enabled {
		return
	}
	switch len(ev.Touches) {
	case 1:
		oc.state = stateTouchRotate
		oc.lastX, oc.lastY = ev.Touches[0].PageX, ev.Touches[0].PageY
	case 2:
		oc.state = stateTouchDolly
		oc.pinchDist = touchDistance(ev.Touches[0], ev.Touches[1])
	default:
		oc.state = stateNone
	}
}

func (oc *OrbitControls) onTouchMove(ev *dom.Event) {
	if !oc.enabled {
		return
	}
	switch {
	case oc.state == stateTouchRotate && len(ev.Touches) >= 1:
		t := ev.Touches[0]
		oc.rotateBy(t.PageX-oc.lastX, t.PageY-oc.lastY)
		oc.lastX, oc.lastY = t.PageX, t.PageY
	case oc.state == stateTouchDolly && len(ev.Touches) >= 2:
		dist := touchDistance(ev.Touches[0], ev.Touches[1])
		if oc.pinchDist > 0 && dist > 0 {
			oc.controller().Zoom(float32(math.Log(dist/oc.pinchDist) / -math.Log(1-float64(oc.controller().ZoomSpeed()))))
		}
		oc.pinchDist = dist
	}
}

func (oc *OrbitControls) onTouchEnd(ev *dom.Event) {
	oc.state = stateNone
}

func touchDistance(a, b dom.Touch) float64 {
	return math.Hypot(a.PageX-b.PageX, a.PageY-b.PageY)
}
