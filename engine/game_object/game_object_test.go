package game_object

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/estomania/engine/geometry"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()
	if !strings.HasPrefix(obj.UUID(), "object-") {
		t.Errorf("expected generated uuid, got %q", obj.UUID())
	}
	if !obj.Enabled() {
		t.Error("expected new objects to be enabled")
	}
	if obj.Scale() != [3]float32{1, 1, 1} {
		t.Errorf("expected unit scale, got %v", obj.Scale())
	}
	if obj.Kind() != KindGroup {
		t.Errorf("expected group kind, got %s", obj.Kind())
	}

	other := NewGameObject()
	if other.UUID() == obj.UUID() {
		t.Error("expected generated uuids to differ")
	}
}

func TestWithGeometryMarksMesh(t *testing.T) {
	obj := NewGameObject(WithUUID("hex-1"), WithGeometry(geometry.NewBoxGeometry(1, 1, 1)))
	if obj.UUID() != "hex-1" || obj.Kind() != KindMesh {
		t.Errorf("expected mesh hex-1, got %s %s", obj.Kind(), obj.UUID())
	}
}

func TestChildWorldPositionFollowsParent(t *testing.T) {
	parent := NewGameObject(WithPosition(3, 0, 2))
	child := NewGameObject(WithPosition(0, 1.5, 0))
	parent.Add(child)

	got := child.WorldPosition()
	want := [3]float32{3, 1.5, 2}
	if got != want {
		t.Errorf("expected world position %v, got %v", want, got)
	}

	parent.SetPosition(-1, 0, 0)
	if got := child.WorldPosition(); got != [3]float32{-1, 1.5, 0} {
		t.Errorf("expected child to move with parent, got %v", got)
	}
}

func TestAddReparents(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	child := NewGameObject()

	a.Add(child)
	b.Add(child)

	if len(a.Children()) != 0 {
		t.Errorf("expected child to leave its first parent, got %d children", len(a.Children()))
	}
	if child.Parent() != b {
		t.Error("expected child to be attached to the second parent")
	}
	if !b.Remove(child) || child.Parent() != nil {
		t.Error("expected remove to detach the child")
	}
	if b.Remove(child) {
		t.Error("expected second remove to report false")
	}
}

func TestAddSelfIgnored(t *testing.T) {
	obj := NewGameObject()
	obj.Add(obj)
	if len(obj.Children()) != 0 {
		t.Error("expected adding an object to itself to be ignored")
	}
}
