package dom

// Listener handles a dispatched event.
type Listener func(ev *Event)

// ListenerID identifies a registered listener so it can be removed later.
// Go funcs are not comparable, so removal goes through the id returned at registration.
type ListenerID uint64

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	// AddEventListener registers fn for events of the given type.
	// The same function may be registered more than once; each registration is invoked.
	//
	// Parameters:
	//   - eventType: the event name
	//   - fn: the listener
	//
	// Returns:
	//   - ListenerID: handle for RemoveEventListener
	AddEventListener(eventType string, fn Listener) ListenerID

	// RemoveEventListener unregisters a listener. Unknown ids are ignored.
	//
	// Parameters:
	//   - eventType: the event name the listener was registered under
	//   - id: the handle returned by AddEventListener
	RemoveEventListener(eventType string, id ListenerID)

	// DispatchEvent invokes every listener registered for ev.Type in registration order.
	//
	// Parameters:
	//   - ev: the event to deliver
	DispatchEvent(ev *Event)
}

// Element is the capability surface an orbit camera controller and a pick helper need from a canvas.
// It is deliberately narrow: geometry getters, the bounding rect, pointer capture, focus and events.
type Element interface {
	EventTarget

	// ClientWidth returns the element's width in CSS pixels.
	ClientWidth() float64

	// ClientHeight returns the element's height in CSS pixels.
	ClientHeight() float64

	// BoundingClientRect returns the element's position and size relative to the viewport.
	BoundingClientRect() Rect

	// SetPointerCapture routes subsequent events of the pointer to this element.
	SetPointerCapture(pointerID int)

	// ReleasePointerCapture ends a capture started with SetPointerCapture.
	ReleasePointerCapture(pointerID int)

	// Focus gives the element keyboard focus.
	Focus()

	// Style returns the element's inline style properties. Controllers write keys such as "touchAction".
	Style() map[string]string
}
