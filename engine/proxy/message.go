// Package proxy carries input from the goroutine that owns the window to the goroutine that
// owns the scene. The sending side serialises native events into allow-listed envelopes;
// the receiving side replays them onto ProxyTarget elements that implement dom.Element.
package proxy

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/estomania/engine/renderer"
)

// MessageType names a message on the port. The worker resolves it against a fixed handler table.
type MessageType string

const (
	MessageTypeStart             MessageType = "start"
	MessageTypeMakeProxy         MessageType = "makeProxy"
	MessageTypeEvent             MessageType = "event"
	MessageTypeGameData          MessageType = "gameData"
	MessageTypeMapData           MessageType = "mapData"
	MessageTypeRaycastFromCamera MessageType = "raycastFromCamera"
)

// Message is one unit posted across the port. Only the fields relevant to Type are set.
type Message struct {
	Type MessageType `json:"type" jsonschema:"required,enum=start,enum=makeProxy,enum=event,enum=gameData,enum=mapData,enum=raycastFromCamera"`
	// ID is the proxy id for makeProxy and event messages.
	ID int `json:"id"`
	// CanvasID is the proxy id the worker should use as its input element on start.
	CanvasID int `json:"canvasId,omitempty"`
	// Data is the event envelope, map or game snapshot, kept encoded so nothing live crosses.
	Data json.RawMessage `json:"data,omitempty"`

	// Canvas is transferred by pointer on start and never serialised.
	Canvas *renderer.Canvas `json:"-"`
}

// NewMakeProxyMessage registers proxy id on the worker.
func NewMakeProxyMessage(id int) Message {
	return Message{Type: MessageTypeMakeProxy, ID: id}
}

// NewEventMessage wraps an envelope for the proxy target with the given id.
//
// Parameters:
//   - id: the proxy id
//   - env: the serialised event
//
// Returns:
//   - Message: the event message
//   - error: error if the envelope cannot be encoded
func NewEventMessage(id int, env Envelope) (Message, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s envelope for proxy %d: %w", env.Type(), id, err)
	}
	return Message{Type: MessageTypeEvent, ID: id, Data: data}, nil
}

// NewStartMessage hands canvas to the worker together with the proxy id of its input element.
// After posting it the sender must not draw into canvas.
func NewStartMessage(canvas *renderer.Canvas, proxyID int) Message {
	return Message{Type: MessageTypeStart, CanvasID: proxyID, Canvas: canvas}
}

// NewGameDataMessage wraps a game snapshot.
//
// Parameters:
//   - snapshot: any JSON-encodable snapshot value, or raw JSON bytes
//
// Returns:
//   - Message: the gameData message
//   - error: error if the snapshot cannot be encoded
func NewGameDataMessage(snapshot any) (Message, error) {
	if raw, ok := snapshot.(json.RawMessage); ok {
		return Message{Type: MessageTypeGameData, Data: raw}, nil
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return Message{}, fmt.Errorf("encode game snapshot: %w", err)
	}
	return Message{Type: MessageTypeGameData, Data: data}, nil
}

// NewMapDataMessage wraps a bare grid sent before the first snapshot. raw is forwarded as is.
func NewMapDataMessage(raw json.RawMessage) Message {
	return Message{Type: MessageTypeMapData, Data: raw}
}

// NewRaycastMessage asks the worker for an immediate pick.
func NewRaycastMessage() Message {
	return Message{Type: MessageTypeRaycastFromCamera}
}
