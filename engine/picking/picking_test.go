package picking

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/dom"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/geometry"
	"github.com/Carmen-Shannon/estomania/engine/light"
	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/engine/scene"
)

type fakeElement struct {
	dom.EventDispatcher
	rect dom.Rect
}

func (f *fakeElement) ClientWidth() float64         { return f.rect.Width }
func (f *fakeElement) ClientHeight() float64        { return f.rect.Height }
func (f *fakeElement) BoundingClientRect() dom.Rect { return f.rect }
func (f *fakeElement) SetPointerCapture(int)        {}
func (f *fakeElement) ReleasePointerCapture(int)    {}
func (f *fakeElement) Focus()                       {}
func (f *fakeElement) Style() map[string]string     { return map[string]string{} }

func hexAt(uuid string, x, z float32) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithUUID(uuid),
		game_object.WithGeometry(geometry.NewCylinderGeometry(1, 1, 0.2, 6)),
		game_object.WithPosition(x, 0, z),
	)
}

func setup(objs ...game_object.GameObject) (*fakeElement, *PickHelper, scene.Scene, camera.Camera) {
	el := &fakeElement{rect: dom.NewRect(10, 20, 200, 100)}
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	cam.UpdateProjectionMatrix(200, 100)
	return el, NewPickHelper(el), scene.NewScene("pick", cam, scene.WithObjects(objs...)), cam
}

func TestPickHelperStartsCleared(t *testing.T) {
	_, ph, _, _ := setup()
	if ph.PickPosition() != [2]float32{NoPointer, NoPointer} {
		t.Errorf("expected sentinel position, got %v", ph.PickPosition())
	}
}

func TestPointerMoveSetsNDC(t *testing.T) {
	el, ph, _, _ := setup()

	el.DispatchEvent(&dom.Event{Type: "pointermove", ClientX: 110, ClientY: 70})
	if ph.PickPosition() != [2]float32{0, 0} {
		t.Errorf("expected centre to map to (0, 0), got %v", ph.PickPosition())
	}

	el.DispatchEvent(&dom.Event{Type: "mousemove", ClientX: 10, ClientY: 120})
	if ph.PickPosition() != [2]float32{-1, -1} {
		t.Errorf("expected bottom-left to map to (-1, -1), got %v", ph.PickPosition())
	}

	el.DispatchEvent(&dom.Event{Type: "mouseleave"})
	if ph.PickPosition()[0] != NoPointer {
		t.Errorf("expected mouseleave to clear, got %v", ph.PickPosition())
	}
}

// managerPoster delivers proxy messages straight into a ProxyManager, standing in for the port
// and the worker's makeProxy/event handlers.
type managerPoster struct {
	manager *proxy.ProxyManager
	t       *testing.T
}

func (m *managerPoster) PostMessage(msg proxy.Message) error {
	switch msg.Type {
	case proxy.MessageTypeMakeProxy:
		m.manager.MakeProxy(msg.ID)
	case proxy.MessageTypeEvent:
		if err := m.manager.HandleEventMessage(msg); err != nil {
			m.t.Errorf("expected event to route, got %v", err)
		}
	}
	return nil
}

func TestPointerLeavingElementClearsProxiedPick(t *testing.T) {
	el := &fakeElement{rect: dom.NewRect(0, 0, 640, 320)}
	manager := proxy.NewProxyManager()
	p := proxy.NewElementProxy(el, nil, &managerPoster{manager: manager, t: t}, nil)
	defer p.Close()

	target := manager.GetProxy(p.ID())
	if target == nil {
		t.Fatal("expected the proxy target to be registered")
	}
	ph := NewPickHelper(target)
	defer ph.Dispose()

	el.DispatchEvent(&dom.Event{Type: "pointermove", PointerType: "mouse", ClientX: 320, ClientY: 160})
	if ph.PickPosition() != [2]float32{0, 0} {
		t.Fatalf("expected forwarded pointermove at (0, 0), got %v", ph.PickPosition())
	}

	for _, eventType := range []string{"mouseout", "mouseleave"} {
		el.DispatchEvent(&dom.Event{Type: "pointermove", PointerType: "mouse", ClientX: 320, ClientY: 160})
		el.DispatchEvent(&dom.Event{Type: eventType})
		if ph.PickPosition() != [2]float32{NoPointer, NoPointer} {
			t.Errorf("expected %s to clear the pick position, got %v", eventType, ph.PickPosition())
		}
	}
}

func TestTouchUsesFirstTouchAndPreventsDefault(t *testing.T) {
	el, ph, _, _ := setup()

	ev := &dom.Event{Type: "touchstart", Touches: []dom.Touch{{PageX: 210, PageY: 20}, {PageX: 0, PageY: 0}}}
	el.DispatchEvent(ev)

	if ph.PickPosition() != [2]float32{1, 1} {
		t.Errorf("expected top-right to map to (1, 1), got %v", ph.PickPosition())
	}
	if !ev.DefaultPrevented() {
		t.Error("expected touchstart to prevent default")
	}

	el.DispatchEvent(&dom.Event{Type: "touchend"})
	if ph.PickPosition()[1] != NoPointer {
		t.Errorf("expected touchend to clear, got %v", ph.PickPosition())
	}
}

func TestPickFindsObjectUnderPointer(t *testing.T) {
	hex := hexAt("hex-0", 0, 0)
	el, ph, s, cam := setup(hex)

	el.DispatchEvent(&dom.Event{Type: "pointermove", ClientX: 110, ClientY: 70})
	if got := ph.Pick(s, cam); got != hex {
		t.Fatalf("expected hex-0 to be picked, got %v", got)
	}
	if ph.PickedObject() != hex {
		t.Error("expected PickedObject to report the last pick")
	}
}

func TestSentinelNeverPicks(t *testing.T) {
	hex := hexAt("hex-0", 0, 0)
	el, ph, s, cam := setup(hex)

	el.DispatchEvent(&dom.Event{Type: "pointermove", ClientX: 110, ClientY: 70})
	ph.Pick(s, cam)

	el.DispatchEvent(&dom.Event{Type: "mouseout"})
	if got := ph.Pick(s, cam); got != nil {
		t.Errorf("expected no pick with the sentinel position, got %s", got.UUID())
	}
	if ph.PickedObject() != nil {
		t.Error("expected the previous pick to be cleared")
	}
}

func TestPickIgnoresLightsAndSprites(t *testing.T) {
	lightObj := game_object.NewGameObject(game_object.WithLight(light.NewLight(light.LightTypeDirectional)))
	sprite := game_object.NewGameObject(game_object.WithKind(game_object.KindSprite))
	el, ph, s, cam := setup(lightObj, sprite)

	el.DispatchEvent(&dom.Event{Type: "pointermove", ClientX: 110, ClientY: 70})
	if got := ph.Pick(s, cam); got != nil {
		t.Errorf("expected nothing pickable, got %s", got.UUID())
	}
}

func TestIntersectObjectsSortedNearestFirst(t *testing.T) {
	near := game_object.NewGameObject(game_object.WithUUID("near"), game_object.WithGeometry(geometry.NewBoxGeometry(1, 1, 1)), game_object.WithPosition(0, 0, 5))
	far := game_object.NewGameObject(game_object.WithUUID("far"), game_object.WithGeometry(geometry.NewBoxGeometry(1, 1, 1)), game_object.WithPosition(0, 0, -5))

	rc := NewRaycaster()
	rc.Origin = [3]float32{0, 0, 20}
	rc.Direction = [3]float32{0, 0, -1}
	hits := rc.IntersectObjects([]game_object.GameObject{far, near}, false)

	if len(hits) != 2 || hits[0].Object != near || hits[1].Object != far {
		t.Fatalf("expected near then far, got %v", hits)
	}
	if math.Abs(float64(hits[0].Distance-14.5)) > 1e-3 {
		t.Errorf("expected first hit at 14.5, got %v", hits[0].Distance)
	}
}

func TestIntersectObjectRecursesIntoChildren(t *testing.T) {
	parent := game_object.NewGameObject(game_object.WithPosition(0, 0, 0))
	child := game_object.NewGameObject(game_object.WithGeometry(geometry.NewBoxGeometry(1, 1, 1)), game_object.WithPosition(2, 0, 0))
	parent.Add(child)

	rc := NewRaycaster()
	rc.Origin = [3]float32{2, 10, 0}
	rc.Direction = [3]float32{0, -1, 0}

	if hits := rc.IntersectObject(parent, false); len(hits) != 0 {
		t.Errorf("expected no hits without recursion, got %d", len(hits))
	}
	hits := rc.IntersectObject(parent, true)
	if len(hits) != 1 || hits[0].Object != child {
		t.Fatalf("expected the child to be hit, got %v", hits)
	}
	if math.Abs(float64(hits[0].Point[1]-0.5)) > 1e-3 {
		t.Errorf("expected hit on the top face at y=0.5, got %v", hits[0].Point)
	}
}
