// Package network connects the client to the game server. Frames are JSON objects of the form
// {"event": name, "data": payload}; subscribers are called per event name.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/estomania/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	sendBufferSize = 256
)

const (
	EventMapData  = "mapData"
	EventGameData = "gameData"
)

// ErrSendBufferFull is returned by Emit when outgoing frames are not being drained.
var ErrSendBufferFull = errors.New("send buffer full")

// Frame is one message on the socket.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the payload of a subscribed event.
type Handler func(data json.RawMessage)

// SocketManager keeps a WebSocket connection to the game server open and fans incoming frames
// out to subscribers.
type SocketManager interface {
	// On subscribes h to event. Handlers run on the read goroutine in subscription order.
	//
	// Parameters:
	//   - event: the event name, e.g. "gameData"
	//   - h: the handler
	On(event string, h Handler)

	// Emit queues a frame for the server. Frames queued while disconnected are sent after
	// the next connect.
	//
	// Parameters:
	//   - event: the event name
	//   - data: any JSON-encodable payload
	//
	// Returns:
	//   - error: an encoding error or ErrSendBufferFull
	Emit(event string, data any) error

	// Run dials the server and reconnects after every disconnect, at most once per reconnect
	// interval, until ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancelling it closes the connection and ends Run
	//
	// Returns:
	//   - error: nil once ctx is cancelled
	Run(ctx context.Context) error

	// Connected reports whether a connection is currently open.
	Connected() bool
}

type socketManager struct {
	url       string
	dialer    *websocket.Dialer
	limiter   *rate.Limiter
	reconnect time.Duration
	log       *logrus.Entry

	mu        sync.RWMutex
	handlers  map[string][]Handler
	connected bool

	send chan Frame
}

var _ SocketManager = &socketManager{}

// NewSocketManager creates a SocketManager for a ws:// or wss:// URL. It does not connect until Run.
//
// Parameters:
//   - url: the server URL
//   - options: variadic list of SocketManagerBuilderOption functions
//
// Returns:
//   - SocketManager: the new manager
func NewSocketManager(url string, options ...SocketManagerBuilderOption) SocketManager {
	s := &socketManager{
		url:       url,
		dialer:    websocket.DefaultDialer,
		reconnect: 2 * time.Second,
		log:       logger.Component("network").WithField("url", url),
		handlers:  make(map[string][]Handler),
		send:      make(chan Frame, sendBufferSize),
	}
	for _, opt := range options {
		opt(s)
	}
	s.limiter = rate.NewLimiter(rate.Every(s.reconnect), 1)
	return s
}

func (s *socketManager) On(event string, h Handler) {
	if h == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], h)
}

func (s *socketManager) Emit(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}
	select {
	case s.send <- Frame{Event: event, Data: payload}:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (s *socketManager) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *socketManager) Run(ctx context.Context) error {
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil
		}
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.WithError(err).Warn("dial failed")
			continue
		}

		s.log.Info("connected")
		s.setConnected(true)
		err = s.serve(ctx, conn)
		s.setConnected(false)

		if ctx.Err() != nil {
			return nil
		}
		s.log.WithError(err).Warn("disconnected, reconnecting")
	}
}

func (s *socketManager) setConnected(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()
}

// serve pumps one connection until it fails or ctx is cancelled.
func (s *socketManager) serve(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case <-done:
		}
		if err := conn.Close(); err != nil {
			s.log.WithError(err).Debug("close connection")
		}
	}()
	go func() {
		defer wg.Done()
		s.writePump(conn, done)
	}()

	err := s.readPump(conn)
	close(done)
	wg.Wait()
	return err
}

func (s *socketManager) readPump(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			return err
		}
		s.dispatch(frame)
	}
}

func (s *socketManager) dispatch(frame Frame) {
	s.mu.RLock()
	handlers := append([]Handler(nil), s.handlers[frame.Event]...)
	s.mu.RUnlock()

	if len(handlers) == 0 {
		s.log.WithField("event", frame.Event).Debug("no subscriber")
		return
	}
	for _, h := range handlers {
		h(frame.Data)
	}
}

func (s *socketManager) writePump(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case frame := <-s.send:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.log.WithError(err).Warn("failed to set write deadline")
			}
			if err := conn.WriteJSON(frame); err != nil {
				s.log.WithError(err).WithField("event", frame.Event).Warn("write failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
