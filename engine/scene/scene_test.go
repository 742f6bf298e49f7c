package scene

import (
	"testing"

	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/light"
)

func newTestScene(options ...SceneBuilderOption) Scene {
	return NewScene("test", camera.NewCamera(), options...)
}

func TestNewScenePanicsWithoutCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected NewScene to panic with a nil camera")
		}
	}()
	NewScene("test", nil)
}

func TestAddIgnoresDuplicatesAndNil(t *testing.T) {
	s := newTestScene()
	obj := game_object.NewGameObject(game_object.WithUUID("a"))
	s.Add(obj)
	s.Add(obj)
	s.Add(nil)

	if s.Count() != 1 || !s.Contains(obj) {
		t.Errorf("expected exactly one child, got %d", s.Count())
	}
}

func TestAddDetachesFromParent(t *testing.T) {
	s := newTestScene()
	parent := game_object.NewGameObject(game_object.WithUUID("parent"))
	child := game_object.NewGameObject(game_object.WithUUID("child"))
	parent.Add(child)

	s.Add(child)

	if len(parent.Children()) != 0 {
		t.Errorf("expected the child to leave its parent, parent has %d children", len(parent.Children()))
	}
	if child.Parent() != nil {
		t.Error("expected the child to have no parent after being added to the scene")
	}
}

func TestLightsFollowObjects(t *testing.T) {
	s := newTestScene()
	l := light.NewLight(light.LightTypeDirectional, light.WithHexColor(0xffffff), light.WithIntensity(1))
	lamp := game_object.NewGameObject(game_object.WithUUID("lamp"), game_object.WithLight(l))

	s.Add(lamp)
	if got := s.Lights(); len(got) != 1 || got[0] != l {
		t.Fatalf("expected the lamp's light to be registered, got %v", got)
	}

	if !s.Remove(lamp) {
		t.Fatal("expected Remove to report the lamp")
	}
	if len(s.Lights()) != 0 {
		t.Errorf("expected no lights after removal, got %d", len(s.Lights()))
	}
	if s.Remove(lamp) {
		t.Error("expected a second Remove to report false")
	}
}

func TestTraverseVisitsDescendants(t *testing.T) {
	s := newTestScene()
	root := game_object.NewGameObject(game_object.WithUUID("root"))
	root.Add(game_object.NewGameObject(game_object.WithUUID("tag")))
	pruned := game_object.NewGameObject(game_object.WithUUID("pruned"))
	pruned.Add(game_object.NewGameObject(game_object.WithUUID("hidden")))
	s.Add(root)
	s.Add(pruned)

	var seen []string
	s.Traverse(func(obj game_object.GameObject) bool {
		seen = append(seen, obj.UUID())
		return obj.UUID() != "pruned"
	})

	expected := []string{"root", "tag", "pruned"}
	if len(seen) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, seen)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, seen)
			break
		}
	}
}

func TestOptionsAndClear(t *testing.T) {
	a := game_object.NewGameObject(game_object.WithUUID("a"))
	b := game_object.NewGameObject(game_object.WithUUID("b"))
	s := newTestScene(WithObjects(a, b), WithBackgroundColor(0x0000ff), WithActive(true))

	if s.Count() != 2 || !s.Active() {
		t.Errorf("expected 2 active children, got %d active=%v", s.Count(), s.Active())
	}
	if bg := s.BackgroundColor(); bg != [4]float32{0, 0, 1, 1} {
		t.Errorf("expected blue background, got %v", bg)
	}

	s.Clear()
	if s.Count() != 0 || len(s.Lights()) != 0 {
		t.Errorf("expected an empty scene after Clear, got %d children", s.Count())
	}
}
