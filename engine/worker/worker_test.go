package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/estomania/engine/dom"
	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/engine/renderer"
	"github.com/Carmen-Shannon/estomania/game"
)

func sizeMessage(t *testing.T, id int, w, h float64) proxy.Message {
	t.Helper()
	msg, err := proxy.NewEventMessage(id, proxy.NewSizeEnvelope(dom.NewRect(0, 0, w, h)))
	if err != nil {
		t.Fatalf("expected size message, got %v", err)
	}
	return msg
}

func snapshot() game.Game {
	return game.Game{
		HexGridMap: game.HexGridMap{Grid: [][]*game.Hex{
			{
				{UUID: "hex-0-0", Position: game.Position{X: 0, Z: 0}, TileType: game.TilePlains},
				{UUID: "hex-0-1", Position: game.Position{X: 0, Z: 1}, TileType: game.TileWater},
			},
			{
				{UUID: "hex-1-0", Position: game.Position{X: 1, Z: 0}, TileType: game.TilePlains},
				nil,
			},
		}},
		CurrentPlayers: []game.Player{{
			Name:  "Alice",
			Units: []game.Unit{{UUID: "unit-1", OwnerName: "Alice", Position: game.Position{X: 0, Z: 0}}},
		}},
		Turn: 3,
	}
}

func gameDataMessage(t *testing.T, data game.Game) proxy.Message {
	t.Helper()
	msg, err := proxy.NewGameDataMessage(data)
	if err != nil {
		t.Fatalf("expected gameData message, got %v", err)
	}
	return msg
}

func runUntilDone(t *testing.T, w *Worker) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Run to return")
		return nil
	}
}

func TestUnknownMessageType(t *testing.T) {
	w := NewWorker(make(chan proxy.Message))
	err := w.Dispatch(context.Background(), proxy.Message{Type: "bogus"})
	if !errors.Is(err, ErrUnknownMessageType) {
		t.Fatalf("expected ErrUnknownMessageType, got %v", err)
	}
	if err.Error() != "no handler for type: bogus" {
		t.Errorf("expected error naming the type, got %q", err.Error())
	}
}

func TestRunStopsOnUnknownMessageType(t *testing.T) {
	port := proxy.NewPort()
	defer port.Close()
	w := NewWorker(port.Messages(), WithFrameRate(0))

	port.PostMessage(proxy.NewMakeProxyMessage(1))
	port.PostMessage(proxy.Message{Type: "bogus"})
	port.PostMessage(proxy.NewMakeProxyMessage(2))

	err := runUntilDone(t, w)
	if !errors.Is(err, ErrUnknownMessageType) {
		t.Fatalf("expected Run to fail with ErrUnknownMessageType, got %v", err)
	}
	if w.Proxies().GetProxy(1) == nil {
		t.Error("expected the message before the bogus one to be handled")
	}
	if w.Proxies().GetProxy(2) != nil {
		t.Error("expected nothing after the bogus message to be handled")
	}
}

func TestRunBuildsSceneInOrder(t *testing.T) {
	port := proxy.NewPort()
	defer port.Close()
	w := NewWorker(port.Messages(), WithFrameRate(500))
	canvas := renderer.NewCanvas("main", 1, 1)

	port.PostMessage(proxy.NewMakeProxyMessage(7))
	port.PostMessage(sizeMessage(t, 7, 200, 100))
	// An event for an unregistered proxy is reported, not fatal.
	port.PostMessage(sizeMessage(t, 99, 1, 1))
	port.PostMessage(proxy.NewStartMessage(canvas, 7))
	port.PostMessage(gameDataMessage(t, snapshot()))
	port.PostMessage(proxy.NewRaycastMessage())
	port.PostMessage(proxy.Message{Type: "bogus"})

	if err := runUntilDone(t, w); !errors.Is(err, ErrUnknownMessageType) {
		t.Fatalf("expected the bogus message to end Run, got %v", err)
	}

	g := w.GameScene()
	if g == nil {
		t.Fatal("expected the start message to create the scene")
	}
	defer g.Dispose()
	unit := g.GetObjectByUUID("unit-1")
	hex := g.GetObjectByUUID("hex-0-0")
	if unit == nil || hex == nil {
		t.Fatal("expected the snapshot to be applied")
	}
	if unit.Position() != hex.Position() {
		t.Errorf("expected unit on hex at %v, got %v", hex.Position(), unit.Position())
	}
	if w.Proxies().GetProxy(7).ClientWidth() != 200 {
		t.Errorf("expected proxy width 200, got %v", w.Proxies().GetProxy(7).ClientWidth())
	}
}

func TestGameDataBeforeStartIsAppliedOnStart(t *testing.T) {
	w := NewWorker(make(chan proxy.Message), WithFrameRate(0))
	ctx := context.Background()

	if err := w.Dispatch(ctx, gameDataMessage(t, snapshot())); err != nil {
		t.Fatalf("expected the snapshot to be held, got %v", err)
	}
	if err := w.Dispatch(ctx, proxy.NewMakeProxyMessage(1)); err != nil {
		t.Fatalf("expected makeProxy to succeed, got %v", err)
	}
	if err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 1)); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	defer w.GameScene().Dispose()
	if w.GameScene().GetObjectByUUID("unit-1") == nil {
		t.Error("expected the held snapshot to be applied on start")
	}
}

func TestStartErrors(t *testing.T) {
	w := NewWorker(make(chan proxy.Message), WithFrameRate(0))
	ctx := context.Background()

	err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 5))
	if !errors.Is(err, proxy.ErrUnknownProxy) {
		t.Errorf("expected ErrUnknownProxy for an unregistered canvas id, got %v", err)
	}
	if err := w.Dispatch(ctx, proxy.NewStartMessage(nil, 5)); err == nil {
		t.Error("expected an error for a start without canvas")
	}

	w.Dispatch(ctx, proxy.NewMakeProxyMessage(5))
	if err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 5)); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	defer w.GameScene().Dispose()
	if err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 5)); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestHandlersRequireStart(t *testing.T) {
	w := NewWorker(make(chan proxy.Message))
	ctx := context.Background()
	if err := w.Dispatch(ctx, proxy.NewRaycastMessage()); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted for raycast, got %v", err)
	}
}

func TestMapDataBeforeStartIsAppliedOnStart(t *testing.T) {
	w := NewWorker(make(chan proxy.Message), WithFrameRate(0))
	ctx := context.Background()

	if err := w.Dispatch(ctx, proxy.NewMapDataMessage(json.RawMessage(`not json`))); err == nil {
		t.Error("expected a decode error for malformed map data")
	}
	stale, _ := json.Marshal([][]*game.Hex{{{UUID: "stale", Position: game.Position{}}}})
	if err := w.Dispatch(ctx, proxy.NewMapDataMessage(stale)); err != nil {
		t.Fatalf("expected the map to be held, got %v", err)
	}
	raw, _ := json.Marshal(snapshot().HexGridMap.Grid)
	if err := w.Dispatch(ctx, proxy.NewMapDataMessage(raw)); err != nil {
		t.Fatalf("expected the map to be held, got %v", err)
	}

	w.Dispatch(ctx, proxy.NewMakeProxyMessage(1))
	if err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 1)); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	defer w.GameScene().Dispose()

	if w.GameScene().GetObjectByUUID("hex-0-1") == nil {
		t.Error("expected the newest held map to be applied on start")
	}
	if w.GameScene().GetObjectByUUID("stale") != nil {
		t.Error("expected the older held map to be replaced")
	}
}

func TestHeldMapIsAppliedBeforeHeldSnapshot(t *testing.T) {
	w := NewWorker(make(chan proxy.Message), WithFrameRate(0))
	ctx := context.Background()

	raw, _ := json.Marshal(snapshot().HexGridMap.Grid)
	w.Dispatch(ctx, gameDataMessage(t, snapshot()))
	w.Dispatch(ctx, proxy.NewMapDataMessage(raw))
	w.Dispatch(ctx, proxy.NewMakeProxyMessage(1))
	if err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 1)); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	defer w.GameScene().Dispose()

	if w.GameScene().GetObjectByUUID("unit-1") == nil {
		t.Error("expected the held snapshot's unit to be placed")
	}
}

func TestMapDataBuildsGrid(t *testing.T) {
	w := NewWorker(make(chan proxy.Message), WithFrameRate(0))
	ctx := context.Background()
	w.Dispatch(ctx, proxy.NewMakeProxyMessage(1))
	if err := w.Dispatch(ctx, proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 1)); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	defer w.GameScene().Dispose()

	raw, _ := json.Marshal(snapshot().HexGridMap.Grid)
	if err := w.Dispatch(ctx, proxy.NewMapDataMessage(raw)); err != nil {
		t.Fatalf("expected mapData to apply, got %v", err)
	}
	if w.GameScene().GetObjectByUUID("hex-0-1") == nil {
		t.Error("expected hex-0-1 to be placed from map data")
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	w := NewWorker(make(chan proxy.Message))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Errorf("expected nil on cancellation, got %v", err)
	}
}

func TestRenderPanicStopsFramesButNotMessages(t *testing.T) {
	port := proxy.NewPort()
	defer port.Close()
	var frames atomic.Int32
	w := NewWorker(port.Messages(), WithFrameRate(200), WithFrameHook(func(game.GameScene) {
		frames.Add(1)
		panic("boom")
	}))

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	port.PostMessage(proxy.NewMakeProxyMessage(1))
	port.PostMessage(proxy.NewStartMessage(renderer.NewCanvas("c", 1, 1), 1))

	deadline := time.Now().Add(5 * time.Second)
	for frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	port.PostMessage(proxy.NewMakeProxyMessage(2))
	port.PostMessage(proxy.Message{Type: "bogus"})

	select {
	case err := <-done:
		if !errors.Is(err, ErrUnknownMessageType) {
			t.Errorf("expected Run to keep handling messages, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Run")
	}
	if n := frames.Load(); n != 1 {
		t.Errorf("expected exactly 1 frame before the loop stopped, got %d", n)
	}
	if w.Proxies().GetProxy(2) == nil {
		t.Error("expected messages after the panic to be handled")
	}
	w.GameScene().Dispose()
}

func TestProtocolSchemas(t *testing.T) {
	schemas := ProtocolSchemas()
	cases := map[string]string{
		"message":  "canvasId",
		"envelope": "touches",
		"game":     "hexGridMap",
	}
	for key, field := range cases {
		s, ok := schemas[key]
		if !ok {
			t.Fatalf("expected a %s schema", key)
		}
		if s.Title == "" {
			t.Errorf("%s: expected a title", key)
		}
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("%s: expected schema to encode, got %v", key, err)
		}
		if !strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("%s: expected schema to describe %q", key, field)
		}
	}
}
