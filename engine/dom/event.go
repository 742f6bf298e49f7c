// Package dom defines the small slice of the browser element and event model that input code is written against.
// Both the real window and the worker-side proxy target implement these contracts, so camera controls and
// picking never know which side of the proxy boundary they run on.
package dom

// Touch is a single touch point of a touch event.
type Touch struct {
	PageX   float64
	PageY   float64
	ClientX float64
	ClientY float64
}

// Rect mirrors the DOMRect returned by getBoundingClientRect.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
	Right  float64
	Bottom float64
}

// NewRect builds a Rect from an origin and a size, deriving Right and Bottom.
//
// Parameters:
//   - left, top: the offset of the element
//   - width, height: the size of the element
//
// Returns:
//   - Rect: the populated rectangle
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Width:  width,
		Height: height,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Event is a DOM-shaped input event. Fields that do not apply to an event type are left at their zero value.
type Event struct {
	// Type is the event name, e.g. "pointermove" or "wheel".
	Type string

	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool

	// Button is the mouse button that changed state (0 primary, 1 auxiliary, 2 secondary).
	Button int
	// PointerType is "mouse", "pen" or "touch" for pointer events.
	PointerType string
	// PointerID identifies the pointer for capture calls.
	PointerID int

	ClientX float64
	ClientY float64
	PageX   float64
	PageY   float64

	DeltaX float64
	DeltaY float64

	// KeyCode is the DOM virtual key code for keyboard events.
	KeyCode int

	Touches []Touch

	preventDefault   func()
	stopPropagation  func()
	defaultPrevented bool
	propagationDone  bool
}

// SetDefaultHandlers installs the functions run by PreventDefault and StopPropagation.
// The window layer uses this to suppress platform behaviour; the proxy target installs no-ops.
//
// Parameters:
//   - preventDefault: called by PreventDefault (may be nil)
//   - stopPropagation: called by StopPropagation (may be nil)
func (e *Event) SetDefaultHandlers(preventDefault, stopPropagation func()) {
	e.preventDefault = preventDefault
	e.stopPropagation = stopPropagation
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
	if e.preventDefault != nil {
		e.preventDefault()
	}
}

// StopPropagation records that the event should not bubble further. Targets here have no
// parents, so listeners on the same target still run.
func (e *Event) StopPropagation() {
	e.propagationDone = true
	if e.stopPropagation != nil {
		e.stopPropagation()
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationDone
}
