package proxy

import (
	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/dom"
)

// EventHandler turns a native event into zero or one envelope. send is called at most once.
type EventHandler func(ev *dom.Event, send func(Envelope))

var mouseEventProperties = []string{
	"ctrlKey",
	"metaKey",
	"shiftKey",
	"button",
	"pointerType",
	"clientX",
	"clientY",
	"pageX",
	"pageY",
}

var wheelEventProperties = []string{
	"deltaX",
	"deltaY",
}

var keydownEventProperties = []string{
	"ctrlKey",
	"metaKey",
	"shiftKey",
	"keyCode",
}

// eventProperty reads one allow-listed field by its DOM name.
func eventProperty(ev *dom.Event, name string) (any, bool) {
	switch name {
	case "ctrlKey":
		return ev.CtrlKey, true
	case "metaKey":
		return ev.MetaKey, true
	case "shiftKey":
		return ev.ShiftKey, true
	case "button":
		return ev.Button, true
	case "pointerType":
		return ev.PointerType, true
	case "clientX":
		return ev.ClientX, true
	case "clientY":
		return ev.ClientY, true
	case "pageX":
		return ev.PageX, true
	case "pageY":
		return ev.PageY, true
	case "deltaX":
		return ev.DeltaX, true
	case "deltaY":
		return ev.DeltaY, true
	case "keyCode":
		return ev.KeyCode, true
	default:
		return nil, false
	}
}

func copyProperties(ev *dom.Event, properties []string) Envelope {
	env := Envelope{"type": ev.Type}
	for _, name := range properties {
		if v, ok := eventProperty(ev, name); ok {
			env[name] = v
		}
	}
	return env
}

// MouseEventHandler forwards pointer and mouse events.
func MouseEventHandler(ev *dom.Event, send func(Envelope)) {
	send(copyProperties(ev, mouseEventProperties))
}

// WheelEventHandler suppresses page scrolling and forwards the wheel deltas.
func WheelEventHandler(ev *dom.Event, send func(Envelope)) {
	ev.PreventDefault()
	send(copyProperties(ev, wheelEventProperties))
}

// TouchEventHandler forwards the page position of every touch point.
func TouchEventHandler(ev *dom.Event, send func(Envelope)) {
	touches := make([]map[string]any, 0, len(ev.Touches))
	for _, t := range ev.Touches {
		touches = append(touches, map[string]any{"pageX": t.PageX, "pageY": t.PageY})
	}
	send(Envelope{"type": ev.Type, "touches": touches})
}

// FilteredKeydownEventHandler forwards only the arrow keys, suppressing their default
// action. Every other key is dropped and left alone.
func FilteredKeydownEventHandler(ev *dom.Event, send func(Envelope)) {
	if !common.NavigationKeys[ev.KeyCode] {
		return
	}
	ev.PreventDefault()
	send(copyProperties(ev, keydownEventProperties))
}

// PreventDefaultHandler suppresses the default action and sends nothing.
func PreventDefaultHandler(ev *dom.Event, send func(Envelope)) {
	ev.PreventDefault()
}

// DefaultEventHandlers returns the standard event-name to handler table used for a canvas.
func DefaultEventHandlers() map[string]EventHandler {
	return map[string]EventHandler{
		"contextmenu": PreventDefaultHandler,
		"mousedown":   MouseEventHandler,
		"mousemove":   MouseEventHandler,
		"mouseup":     MouseEventHandler,
		"mouseout":    MouseEventHandler,
		"mouseleave":  MouseEventHandler,
		"pointerdown": MouseEventHandler,
		"pointermove": MouseEventHandler,
		"pointerup":   MouseEventHandler,
		"touchstart":  TouchEventHandler,
		"touchmove":   TouchEventHandler,
		"touchend":    TouchEventHandler,
		"wheel":       WheelEventHandler,
		"keydown":     FilteredKeydownEventHandler,
	}
}
