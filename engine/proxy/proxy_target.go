package proxy

import (
	"sync"

	"github.com/Carmen-Shannon/estomania/engine/dom"
)

// ProxyTarget stands in for a DOM element on the worker side. Geometry comes from size
// envelopes; every other envelope is re-dispatched to local listeners as a dom.Event.
type ProxyTarget struct {
	dom.EventDispatcher

	mu     sync.RWMutex
	left   float64
	top    float64
	width  float64
	height float64
	style  map[string]string
}

var _ dom.Element = &ProxyTarget{}

// NewProxyTarget creates a target with zero geometry and an empty touchAction style.
func NewProxyTarget() *ProxyTarget {
	return &ProxyTarget{
		style: map[string]string{"touchAction": ""},
	}
}

// HandleEvent applies one envelope. A size envelope updates geometry without dispatching.
//
// Parameters:
//   - env: the envelope received from the element proxy
func (t *ProxyTarget) HandleEvent(env Envelope) {
	if env.Type() == EnvelopeTypeSize {
		t.mu.Lock()
		t.left = env.Float("left")
		t.top = env.Float("top")
		t.width = env.Float("width")
		t.height = env.Float("height")
		t.mu.Unlock()
		return
	}

	ev := env.ToEvent()
	ev.SetDefaultHandlers(func() {}, func() {})
	t.DispatchEvent(ev)
}

func (t *ProxyTarget) ClientWidth() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width
}

func (t *ProxyTarget) ClientHeight() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.height
}

func (t *ProxyTarget) BoundingClientRect() dom.Rect {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return dom.NewRect(t.left, t.top, t.width, t.height)
}

// SetPointerCapture is a no-op; capture is owned by the real element.
func (t *ProxyTarget) SetPointerCapture(int) {}

// ReleasePointerCapture is a no-op.
func (t *ProxyTarget) ReleasePointerCapture(int) {}

// Focus is a no-op.
func (t *ProxyTarget) Focus() {}

func (t *ProxyTarget) Style() map[string]string {
	return t.style
}
