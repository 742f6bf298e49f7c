package dom

import "sync"

type registration struct {
	id ListenerID
	fn Listener
}

// EventDispatcher is an embeddable observer keyed by event type. It implements EventTarget.
// The zero value is ready to use.
type EventDispatcher struct {
	mu        sync.RWMutex
	nextID    ListenerID
	listeners map[string][]registration
}

var _ EventTarget = &EventDispatcher{}

func (d *EventDispatcher) AddEventListener(eventType string, fn Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listeners == nil {
		d.listeners = make(map[string][]registration)
	}
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], registration{id: d.nextID, fn: fn})
	return d.nextID
}

func (d *EventDispatcher) RemoveEventListener(eventType string, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	regs := d.listeners[eventType]
	for i, r := range regs {
		if r.id == id {
			d.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// HasEventListeners reports whether at least one listener is registered for eventType.
//
// Parameters:
//   - eventType: the event name
//
// Returns:
//   - bool: true if any listener is registered
func (d *EventDispatcher) HasEventListeners(eventType string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[eventType]) > 0
}

// DispatchEvent delivers ev to a snapshot of the listeners registered for ev.Type, so
// listeners may add or remove registrations while being called.
func (d *EventDispatcher) DispatchEvent(ev *Event) {
	if ev == nil {
		return
	}
	d.mu.RLock()
	regs := make([]registration, len(d.listeners[ev.Type]))
	copy(regs, d.listeners[ev.Type])
	d.mu.RUnlock()

	for _, r := range regs {
		r.fn(ev)
	}
}
