package proxy

import (
	"errors"
	"sync"
)

// ErrPortClosed is returned when posting to a closed Port.
var ErrPortClosed = errors.New("port closed")

// MessagePoster accepts messages for delivery to the other side of a port.
type MessagePoster interface {
	PostMessage(msg Message) error
}

// Port is a one-directional, ordered, unacknowledged message channel. PostMessage never
// blocks: messages queue without bound until the receiver drains Messages.
type Port struct {
	mu     sync.Mutex
	queue  []Message
	closed bool

	notify chan struct{}
	done   chan struct{}
	out    chan Message
	once   sync.Once
}

var _ MessagePoster = &Port{}

// NewPort creates a Port and starts its delivery goroutine.
func NewPort() *Port {
	p := &Port{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		out:    make(chan Message),
	}
	go p.pump()
	return p
}

// PostMessage queues msg for delivery.
//
// Parameters:
//   - msg: the message to send
//
// Returns:
//   - error: ErrPortClosed after Close
func (p *Port) PostMessage(msg Message) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPortClosed
	}
	p.queue = append(p.queue, msg)
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
	return nil
}

// Messages returns the receive side. It is closed after Close.
func (p *Port) Messages() <-chan Message {
	return p.out
}

// Pending returns the number of queued messages not yet received.
func (p *Port) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Close stops delivery. Messages still queued are discarded.
func (p *Port) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.queue = nil
		p.mu.Unlock()
		close(p.done)
	})
}

func (p *Port) pump() {
	defer close(p.out)
	for {
		msg, ok := p.next()
		if !ok {
			select {
			case <-p.notify:
				continue
			case <-p.done:
				return
			}
		}
		select {
		case p.out <- msg:
		case <-p.done:
			return
		}
	}
}

func (p *Port) next() (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return Message{}, false
	}
	msg := p.queue[0]
	p.queue[0] = Message{}
	p.queue = p.queue[1:]
	return msg, true
}
