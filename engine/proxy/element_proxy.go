package proxy

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/estomania/engine/dom"
	"github.com/Carmen-Shannon/estomania/pkg/logger"
)

var nextProxyID atomic.Int64

// ElementProxy listens to a real element and forwards serialised events to a worker.
type ElementProxy interface {
	// ID returns the proxy id shared with the worker-side ProxyTarget.
	ID() int

	// SendSize posts the element's current bounding rect as a size envelope.
	SendSize()

	// Close removes every listener this proxy registered.
	Close()
}

type elementProxy struct {
	id       int
	element  dom.Element
	window   dom.EventTarget
	poster   MessagePoster
	handlers map[string]EventHandler

	mu        sync.Mutex
	listeners map[string]dom.ListenerID
	resizeID  dom.ListenerID
	closed    bool
}

var _ ElementProxy = &elementProxy{}

// NewElementProxy allocates a fresh proxy id, registers it with the worker and starts forwarding.
// The makeProxy message is posted before the initial size so the worker never sees an event for
// an id it does not know.
//
// Parameters:
//   - element: the element whose events are forwarded
//   - window: the target that fires "resize"; may be nil
//   - poster: the port to the worker
//   - handlers: event name to serialiser; nil uses DefaultEventHandlers
//
// Returns:
//   - ElementProxy: the running proxy
func NewElementProxy(element dom.Element, window dom.EventTarget, poster MessagePoster, handlers map[string]EventHandler) ElementProxy {
	if element == nil {
		panic("proxy: element must not be nil")
	}
	if poster == nil {
		panic("proxy: poster must not be nil")
	}
	if handlers == nil {
		handlers = DefaultEventHandlers()
	}

	p := &elementProxy{
		id:        int(nextProxyID.Add(1) - 1),
		element:   element,
		window:    window,
		poster:    poster,
		handlers:  handlers,
		listeners: make(map[string]dom.ListenerID, len(handlers)),
	}

	p.post(NewMakeProxyMessage(p.id))
	p.SendSize()

	for eventType, handler := range handlers {
		handler := handler
		p.listeners[eventType] = element.AddEventListener(eventType, func(ev *dom.Event) {
			handler(ev, p.send)
		})
	}
	if window != nil {
		p.resizeID = window.AddEventListener("resize", func(*dom.Event) { p.SendSize() })
	}
	return p
}

func (p *elementProxy) ID() int {
	return p.id
}

func (p *elementProxy) SendSize() {
	p.send(NewSizeEnvelope(p.element.BoundingClientRect()))
}

func (p *elementProxy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for eventType, id := range p.listeners {
		p.element.RemoveEventListener(eventType, id)
	}
	if p.window != nil {
		p.window.RemoveEventListener("resize", p.resizeID)
	}
}

func (p *elementProxy) send(env Envelope) {
	msg, err := NewEventMessage(p.id, env)
	if err != nil {
		logger.Component("proxy").WithError(err).Error("failed to encode envelope")
		return
	}
	p.post(msg)
}

func (p *elementProxy) post(msg Message) {
	if err := p.poster.PostMessage(msg); err != nil {
		logger.Component("proxy").WithError(err).
			WithField("proxy", p.id).
			WithField("type", msg.Type).
			Warn("failed to post message")
	}
}
