package network

import (
	"time"

	"github.com/gorilla/websocket"
)

// SocketManagerBuilderOption is a functional option for configuring a SocketManager.
type SocketManagerBuilderOption func(*socketManager)

// WithReconnectInterval sets the minimum time between connection attempts.
// Values <= 0 are ignored.
//
// Parameters:
//   - interval: the minimum time between dials (default 2s)
//
// Returns:
//   - SocketManagerBuilderOption: option function to apply
func WithReconnectInterval(interval time.Duration) SocketManagerBuilderOption {
	return func(s *socketManager) {
		if interval > 0 {
			s.reconnect = interval
		}
	}
}

// WithDialer replaces the default WebSocket dialer.
//
// Parameters:
//   - dialer: the dialer to use
//
// Returns:
//   - SocketManagerBuilderOption: option function to apply
func WithDialer(dialer *websocket.Dialer) SocketManagerBuilderOption {
	return func(s *socketManager) {
		if dialer != nil {
			s.dialer = dialer
		}
	}
}
