package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownProxy is returned for an event addressed to an id that was never registered.
var ErrUnknownProxy = errors.New("unknown proxy")

// ProxyManager owns the worker-side ProxyTargets keyed by proxy id.
type ProxyManager struct {
	mu      sync.RWMutex
	targets map[int]*ProxyTarget
}

// NewProxyManager creates an empty manager.
func NewProxyManager() *ProxyManager {
	return &ProxyManager{targets: make(map[int]*ProxyTarget)}
}

// MakeProxy registers a target for id. A repeated id keeps the existing target.
//
// Parameters:
//   - id: the proxy id
//
// Returns:
//   - *ProxyTarget: the target registered for id
func (m *ProxyManager) MakeProxy(id int) *ProxyTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.targets[id]; ok {
		return t
	}
	t := NewProxyTarget()
	m.targets[id] = t
	return t
}

// GetProxy returns the target for id, or nil if none was made.
func (m *ProxyManager) GetProxy(id int) *ProxyTarget {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.targets[id]
}

// HandleEvent routes env to the target for id.
//
// Parameters:
//   - id: the proxy id
//   - env: the envelope
//
// Returns:
//   - error: ErrUnknownProxy if no target exists for id
func (m *ProxyManager) HandleEvent(id int, env Envelope) error {
	t := m.GetProxy(id)
	if t == nil {
		return fmt.Errorf("%w: %d", ErrUnknownProxy, id)
	}
	t.HandleEvent(env)
	return nil
}

// HandleEventMessage decodes an event message and routes it.
//
// Parameters:
//   - msg: a message of type event
//
// Returns:
//   - error: a decode error or ErrUnknownProxy
func (m *ProxyManager) HandleEventMessage(msg Message) error {
	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		return fmt.Errorf("decode envelope for proxy %d: %w", msg.ID, err)
	}
	return m.HandleEvent(msg.ID, env)
}
