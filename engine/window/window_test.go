package window

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/engine/dom"
)

func record(w Window, types ...string) *[]*dom.Event {
	var events []*dom.Event
	for _, t := range types {
		w.AddEventListener(t, func(ev *dom.Event) { events = append(events, ev) })
	}
	return &events
}

func TestHeadlessWindowIsAnElement(t *testing.T) {
	w := NewHeadlessWindow(WithSize(800, 600), WithTitle("test"))
	if w.ClientWidth() != 800 || w.ClientHeight() != 600 {
		t.Errorf("expected 800x600, got %vx%v", w.ClientWidth(), w.ClientHeight())
	}
	rect := w.BoundingClientRect()
	if rect.Left != 0 || rect.Right != 800 || rect.Bottom != 600 {
		t.Errorf("expected rect at origin, got %+v", rect)
	}
	if w.Title() != "test" {
		t.Errorf("expected title test, got %q", w.Title())
	}
}

func TestCursorAndButtonsBecomePointerEvents(t *testing.T) {
	w := newEngineWindow()
	events := record(w, "pointermove", "mousemove", "pointerdown", "mousedown", "contextmenu", "pointerup")

	w.cursorMoved(12, 34)
	w.buttonChanged(domButton(1), true)
	w.buttonChanged(domButton(1), false)

	got := *events
	expected := []string{"pointermove", "mousemove", "pointerdown", "mousedown", "contextmenu", "pointerup"}
	if len(got) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(got))
	}
	for i, ev := range got {
		if ev.Type != expected[i] {
			t.Errorf("event %d: expected %s, got %s", i, expected[i], ev.Type)
		}
		if ev.ClientX != 12 || ev.ClientY != 34 {
			t.Errorf("event %d: expected position (12, 34), got (%v, %v)", i, ev.ClientX, ev.ClientY)
		}
	}
	if got[2].Button != 2 {
		t.Errorf("expected the right button to map to DOM button 2, got %d", got[2].Button)
	}
}

func TestScrollBecomesWheel(t *testing.T) {
	w := newEngineWindow()
	events := record(w, "wheel")
	w.scrolled(0, 1)
	if len(*events) != 1 || (*events)[0].DeltaY != -100 {
		t.Errorf("expected one wheel event with deltaY -100, got %+v", *events)
	}
}

func TestKeysTranslateToDOMCodes(t *testing.T) {
	cases := map[int]int{
		glfwKeyLeft:   common.KeyLeft,
		glfwKeyUp:     common.KeyUp,
		glfwKeyRight:  common.KeyRight,
		glfwKeyDown:   common.KeyDown,
		glfwKeyEnter:  common.KeyEnter,
		glfwKeyEscape: common.KeyEsc,
		65:            65,
		300:           0,
	}
	for key, expected := range cases {
		if got := domKeyCode(key); got != expected {
			t.Errorf("domKeyCode(%d): expected %d, got %d", key, expected, got)
		}
	}

	w := newEngineWindow()
	events := record(w, "keydown", "keyup")
	w.keyChanged(common.KeyUp, true)
	w.keyChanged(common.KeyUp, false)
	if len(*events) != 2 || (*events)[0].Type != "keydown" || (*events)[0].KeyCode != common.KeyUp {
		t.Errorf("expected keydown then keyup for ArrowUp, got %+v", *events)
	}
}

func TestResizeFiresOnChangeAndClamps(t *testing.T) {
	w := newEngineWindow(WithSize(800, 600), WithSizeLimits(100, 100, 1000, 1000))
	events := record(w, "resize")

	w.resize(800, 600)
	w.resize(5000, 50)

	if len(*events) != 1 {
		t.Fatalf("expected 1 resize event, got %d", len(*events))
	}
	if w.Width() != 1000 || w.Height() != 100 {
		t.Errorf("expected clamped 1000x100, got %dx%d", w.Width(), w.Height())
	}
}

func TestCursorLeaveFiresMouseoutAndMouseleave(t *testing.T) {
	w := newEngineWindow()
	events := record(w, "mouseout", "mouseleave")
	w.cursorLeft()
	if len(*events) != 2 {
		t.Errorf("expected mouseout and mouseleave, got %d events", len(*events))
	}
}

func TestProcessMessagesStopsOnRequestClose(t *testing.T) {
	w := NewHeadlessWindow()
	updates := 0
	w.SetUpdateCallback(func() {
		updates++
		if updates == 3 {
			w.RequestClose()
		}
	})

	done := make(chan struct{})
	go func() {
		w.ProcessMessages()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the loop to stop")
	}
	if updates != 3 {
		t.Errorf("expected 3 updates, got %d", updates)
	}
	if err := w.Close(); err != nil {
		t.Errorf("expected headless close to succeed, got %v", err)
	}
}
