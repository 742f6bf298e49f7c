package worker

import (
	"github.com/invopop/jsonschema"

	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/game"
)

// ProtocolSchemas returns JSON schemas for everything that crosses the port: the message
// frame, the event envelope carried in event messages and the game snapshot carried in
// gameData messages. Keys are "message", "envelope" and "game".
func ProtocolSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	message := reflector.Reflect(new(proxy.Message))
	message.Title = "Worker Message"
	message.Description = "One message posted from the window goroutine to the scene worker"

	envelope := reflector.Reflect(new(proxy.EnvelopeDocument))
	envelope.Title = "Event Envelope"
	envelope.Description = "An input event reduced to its allow-listed fields, or a size update"

	snapshot := reflector.Reflect(new(game.Game))
	snapshot.Title = "Game Snapshot"
	snapshot.Description = "Full game state pushed by the server on gameData"

	return map[string]*jsonschema.Schema{
		"message":  message,
		"envelope": envelope,
		"game":     snapshot,
	}
}
