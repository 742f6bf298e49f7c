package renderer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/geometry"
	"github.com/Carmen-Shannon/estomania/engine/renderer/material"
	"github.com/Carmen-Shannon/estomania/engine/scene"
)

func newTestScene(objs ...game_object.GameObject) (scene.Scene, camera.Camera) {
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	return scene.NewScene("test", cam, scene.WithObjects(objs...)), cam
}

func TestRenderDrawsMeshAtCentre(t *testing.T) {
	canvas := NewCanvas("c", 100, 50)
	r := NewRenderer(BackendTypeRaster, canvas)
	box := game_object.NewGameObject(
		game_object.WithGeometry(geometry.NewBoxGeometry(1, 1, 1)),
		game_object.WithMaterial(material.NewMaterial(material.WithColor(0x00ff00))),
	)
	s, cam := newTestScene(box)

	if err := r.Render(s, cam); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	c := canvas.Snapshot().RGBAAt(50, 25)
	if c.G < 100 || c.R > 50 || c.B > 50 {
		t.Errorf("expected a green pixel at the centre, got %v", c)
	}
	corner := canvas.Snapshot().RGBAAt(0, 0)
	if corner.G != 0 {
		t.Errorf("expected background at the corner, got %v", corner)
	}
	if r.LastDrawCount() != 5 {
		t.Errorf("expected 4 sides and a top, got %d primitives", r.LastDrawCount())
	}
}

func TestRenderSkipsDisabledObjects(t *testing.T) {
	canvas := NewCanvas("c", 64, 64)
	r := NewRenderer(BackendTypeRaster, canvas)
	box := game_object.NewGameObject(
		game_object.WithGeometry(geometry.NewBoxGeometry(1, 1, 1)),
		game_object.WithMaterial(material.NewMaterial()),
		game_object.WithEnabled(false),
	)
	s, cam := newTestScene(box)

	if err := r.Render(s, cam); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if r.LastDrawCount() != 0 {
		t.Errorf("expected nothing drawn, got %d", r.LastDrawCount())
	}
}

func TestRenderRequiresSceneAndCamera(t *testing.T) {
	r := NewRenderer(BackendTypeRaster, NewCanvas("c", 8, 8))
	if err := r.Render(nil, nil); err == nil {
		t.Error("expected an error without scene and camera")
	}
}

func TestResizeAppliesPixelRatio(t *testing.T) {
	canvas := NewCanvas("c", 10, 10)
	r := NewRenderer(BackendTypeRaster, canvas, WithPixelRatio(2))
	r.Resize(300, 150)

	w, h := r.Size()
	if w != 600 || h != 300 {
		t.Errorf("expected 600x300, got %dx%d", w, h)
	}
	if canvas.Width() != 600 || canvas.Height() != 300 {
		t.Errorf("expected canvas to follow, got %dx%d", canvas.Width(), canvas.Height())
	}
}

func TestCanvasEncodePNG(t *testing.T) {
	canvas := NewCanvas("c", 4, 3)
	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("expected 4x3, got %v", img.Bounds())
	}
}
