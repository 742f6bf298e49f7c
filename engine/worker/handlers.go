package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/game"
)

func (w *Worker) handleStart(ctx context.Context, msg proxy.Message) error {
	if w.gameScene != nil {
		return ErrAlreadyStarted
	}
	if msg.Canvas == nil {
		return fmt.Errorf("start: no canvas transferred")
	}
	target := w.proxies.GetProxy(msg.CanvasID)
	if target == nil {
		return fmt.Errorf("start: input element: %w: %d", proxy.ErrUnknownProxy, msg.CanvasID)
	}

	w.gameScene = game.NewGameScene(msg.Canvas, target, w.cameraSettings, w.sceneOptions...)
	w.log.WithField("canvas", msg.Canvas.ID()).WithField("proxy", msg.CanvasID).Info("worker started")
	w.startFrames()

	var errs []error
	if w.pendingMap != nil {
		grid := *w.pendingMap
		w.pendingMap = nil
		errs = append(errs, w.gameScene.LoadMapData(grid))
	}
	if w.pendingGame != nil {
		data := *w.pendingGame
		w.pendingGame = nil
		errs = append(errs, w.loadGame(data))
	}
	return errors.Join(errs...)
}

func (w *Worker) handleMakeProxy(ctx context.Context, msg proxy.Message) error {
	w.proxies.MakeProxy(msg.ID)
	return nil
}

func (w *Worker) handleEvent(ctx context.Context, msg proxy.Message) error {
	return w.proxies.HandleEventMessage(msg)
}

func (w *Worker) handleGameData(ctx context.Context, msg proxy.Message) error {
	var data game.Game
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return fmt.Errorf("decode game snapshot: %w", err)
	}
	if w.gameScene == nil {
		// Keep only the newest snapshot until the scene exists.
		w.pendingGame = &data
		return nil
	}
	return w.loadGame(data)
}

func (w *Worker) loadGame(data game.Game) error {
	err := w.gameScene.LoadGameSceneData(data)
	if errors.Is(err, game.ErrUnresolvedHex) {
		w.log.WithField("turn", data.Turn).Warn("snapshot applied with integrity errors")
	}
	return err
}

func (w *Worker) handleMapData(ctx context.Context, msg proxy.Message) error {
	var grid [][]*game.Hex
	if err := json.Unmarshal(msg.Data, &grid); err != nil {
		return fmt.Errorf("decode map: %w", err)
	}
	if w.gameScene == nil {
		w.pendingMap = &game.HexGridMap{Grid: grid}
		return nil
	}
	return w.gameScene.LoadMapData(game.HexGridMap{Grid: grid})
}

func (w *Worker) handleRaycastFromCamera(ctx context.Context, msg proxy.Message) error {
	if w.gameScene == nil {
		return fmt.Errorf("raycastFromCamera: %w", ErrNotStarted)
	}
	w.gameScene.RaycastFromCamera()
	return nil
}
