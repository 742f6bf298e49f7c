package proxy

import (
	"github.com/Carmen-Shannon/estomania/engine/dom"
)

// Envelope is a serialised event: a "type" key plus only the allow-listed primitive fields
// for that kind of event. After a JSON round trip numbers arrive as float64, so the
// accessors accept any numeric kind.
type Envelope map[string]any

// EnvelopeTypeSize is the envelope type that carries element geometry instead of an event.
const EnvelopeTypeSize = "size"

// NewSizeEnvelope builds the geometry envelope sent on construction and on every resize.
//
// Parameters:
//   - rect: the element's bounding rect
//
// Returns:
//   - Envelope: {type: "size", left, top, width, height}
func NewSizeEnvelope(rect dom.Rect) Envelope {
	return Envelope{
		"type":   EnvelopeTypeSize,
		"left":   rect.Left,
		"top":    rect.Top,
		"width":  rect.Width,
		"height": rect.Height,
	}
}

// Type returns the envelope's event type, or "" if missing.
func (e Envelope) Type() string {
	return e.String("type")
}

// String returns a string field, or "" if missing or not a string.
func (e Envelope) String(key string) string {
	s, _ := e[key].(string)
	return s
}

// Float returns a numeric field as float64, or 0 if missing or not numeric.
func (e Envelope) Float(key string) float64 {
	switch v := e[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Int returns a numeric field truncated to int.
func (e Envelope) Int(key string) int {
	return int(e.Float(key))
}

// Bool returns a boolean field, or false if missing or not a boolean.
func (e Envelope) Bool(key string) bool {
	b, _ := e[key].(bool)
	return b
}

// Touches returns the touch list. Entries may be Touch maps built locally or decoded JSON objects.
func (e Envelope) Touches() []dom.Touch {
	var items []map[string]any
	switch v := e["touches"].(type) {
	case []map[string]any:
		items = v
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				items = append(items, m)
			}
		}
	default:
		return nil
	}
	touches := make([]dom.Touch, 0, len(items))
	for _, item := range items {
		t := Envelope(item)
		touches = append(touches, dom.Touch{PageX: t.Float("pageX"), PageY: t.Float("pageY")})
	}
	return touches
}

// ToEvent rebuilds a dom.Event from the envelope. Fields absent from the envelope stay at their zero value.
func (e Envelope) ToEvent() *dom.Event {
	return &dom.Event{
		Type:        e.Type(),
		CtrlKey:     e.Bool("ctrlKey"),
		MetaKey:     e.Bool("metaKey"),
		ShiftKey:    e.Bool("shiftKey"),
		Button:      e.Int("button"),
		PointerType: e.String("pointerType"),
		PointerID:   e.Int("pointerId"),
		ClientX:     e.Float("clientX"),
		ClientY:     e.Float("clientY"),
		PageX:       e.Float("pageX"),
		PageY:       e.Float("pageY"),
		DeltaX:      e.Float("deltaX"),
		DeltaY:      e.Float("deltaY"),
		KeyCode:     e.Int("keyCode"),
		Touches:     e.Touches(),
	}
}

// EnvelopeDocument describes every field an Envelope may carry. It exists for schema generation.
type EnvelopeDocument struct {
	Type        string  `json:"type" jsonschema:"required"`
	CtrlKey     bool    `json:"ctrlKey,omitempty"`
	MetaKey     bool    `json:"metaKey,omitempty"`
	ShiftKey    bool    `json:"shiftKey,omitempty"`
	Button      int     `json:"button,omitempty"`
	PointerType string  `json:"pointerType,omitempty"`
	ClientX     float64 `json:"clientX,omitempty"`
	ClientY     float64 `json:"clientY,omitempty"`
	PageX       float64 `json:"pageX,omitempty"`
	PageY       float64 `json:"pageY,omitempty"`
	DeltaX      float64 `json:"deltaX,omitempty"`
	DeltaY      float64 `json:"deltaY,omitempty"`
	KeyCode     int     `json:"keyCode,omitempty"`
	Touches     []struct {
		PageX float64 `json:"pageX"`
		PageY float64 `json:"pageY"`
	} `json:"touches,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Top    float64 `json:"top,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}
