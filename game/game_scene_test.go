package game

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/estomania/engine/dom"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/renderer"
)

type fakeElement struct {
	dom.EventDispatcher
	width, height float64
	style         map[string]string
}

func newFakeElement(w, h float64) *fakeElement {
	return &fakeElement{width: w, height: h, style: map[string]string{}}
}

func (f *fakeElement) ClientWidth() float64         { return f.width }
func (f *fakeElement) ClientHeight() float64        { return f.height }
func (f *fakeElement) BoundingClientRect() dom.Rect { return dom.NewRect(0, 0, f.width, f.height) }
func (f *fakeElement) SetPointerCapture(int)        {}
func (f *fakeElement) ReleasePointerCapture(int)    {}
func (f *fakeElement) Focus()                       {}
func (f *fakeElement) Style() map[string]string     { return f.style }

func newTestGameScene(t *testing.T) (GameScene, *fakeElement) {
	t.Helper()
	el := newFakeElement(200, 100)
	g := NewGameScene(renderer.NewCanvas("test", 200, 100), el, DefaultCameraSettings(), WithNameTagWorkers(2))
	t.Cleanup(g.Dispose)
	return g, el
}

// twoByTwo is (0,0) plains, (0,1) water, (1,0) plains and (1,1) empty.
func twoByTwo() HexGridMap {
	return HexGridMap{Grid: [][]*Hex{
		{
			{UUID: "hex-0-0", Position: Position{X: 0, Z: 0}, TileType: TilePlains},
			{UUID: "hex-0-1", Position: Position{X: 0, Z: 1}, TileType: TileWater},
		},
		{
			{UUID: "hex-1-0", Position: Position{X: 1, Z: 0}, TileType: TilePlains},
			nil,
		},
	}}
}

func countHexes(g GameScene) int {
	n := 0
	for _, obj := range g.Scene().Children() {
		if obj.Kind() == game_object.KindMesh && (obj.Name() == string(TilePlains) || obj.Name() == string(TileWater)) {
			n++
		}
	}
	return n
}

func TestHexToWorld(t *testing.T) {
	sqrt3 := float32(math.Sqrt(3))
	cases := []struct {
		x, z     int
		expected [3]float32
	}{
		{0, 0, [3]float32{0, 0, sqrt3 / 2}},
		{1, 0, [3]float32{1.5, 0, 0}},
		{0, 1, [3]float32{0, 0, sqrt3 + sqrt3/2}},
		{3, 2, [3]float32{4.5, 0, 2 * sqrt3}},
		{2, 2, [3]float32{3, 0, 2*sqrt3 + sqrt3/2}},
	}
	for _, tc := range cases {
		got := HexToWorld(tc.x, tc.z)
		for i := range got {
			if math.Abs(float64(got[i]-tc.expected[i])) > 1e-5 {
				t.Errorf("HexToWorld(%d, %d): expected %v, got %v", tc.x, tc.z, tc.expected, got)
				break
			}
		}
		if again := HexToWorld(tc.x, tc.z); again != got {
			t.Errorf("HexToWorld(%d, %d) is not deterministic: %v then %v", tc.x, tc.z, got, again)
		}
	}
}

func TestHexAtBounds(t *testing.T) {
	grid := twoByTwo()
	if grid.HexAt(1, 1) != nil || grid.HexAt(-1, 0) != nil || grid.HexAt(0, 5) != nil || grid.HexAt(7, 0) != nil {
		t.Error("expected nil for empty or out-of-range cells")
	}
	if h := grid.HexAt(0, 1); h == nil || h.UUID != "hex-0-1" {
		t.Errorf("expected hex-0-1, got %+v", h)
	}
}

func TestCreateMapTwoByTwo(t *testing.T) {
	g, _ := newTestGameScene(t)
	if err := g.LoadGameSceneData(Game{HexGridMap: twoByTwo()}); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}

	if n := countHexes(g); n != 3 {
		t.Fatalf("expected 3 hex objects, got %d", n)
	}
	// Three hexes plus the directional light.
	if g.Objects() != 4 || g.Scene().Count() != 4 {
		t.Errorf("expected 4 indexed and 4 scene objects, got %d and %d", g.Objects(), g.Scene().Count())
	}
	for _, uuid := range []string{"hex-0-0", "hex-0-1", "hex-1-0"} {
		obj := g.GetObjectByUUID(uuid)
		if obj == nil {
			t.Fatalf("expected %s to be indexed", uuid)
		}
		expected := "plains"
		if uuid == "hex-0-1" {
			expected = "water"
		}
		if obj.Material().Name() != expected {
			t.Errorf("%s: expected %s material, got %s", uuid, expected, obj.Material().Name())
		}
		if obj.Rotation()[1] != float32(math.Pi/2) {
			t.Errorf("%s: expected Y rotation π/2, got %v", uuid, obj.Rotation()[1])
		}
	}
	if pos := g.GetObjectByUUID("hex-1-0").Position(); pos != HexToWorld(1, 0) {
		t.Errorf("expected hex-1-0 at %v, got %v", HexToWorld(1, 0), pos)
	}
}

func TestSceneHasDirectionalLight(t *testing.T) {
	g, _ := newTestGameScene(t)
	lights := g.Scene().Lights()
	if len(lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(lights))
	}
	if lights[0].Color() != [3]float32{1, 1, 1} || lights[0].Intensity() != 1 {
		t.Errorf("expected white light at intensity 1, got %v %v", lights[0].Color(), lights[0].Intensity())
	}
}

func TestUnitSitsOnHexWithNameTag(t *testing.T) {
	g, _ := newTestGameScene(t)
	data := Game{
		HexGridMap: twoByTwo(),
		CurrentPlayers: []Player{{
			Name:  "Alice",
			Units: []Unit{{UUID: "unit-1", OwnerName: "Alice", Position: Position{X: 0, Z: 0}}},
		}},
	}
	if err := g.LoadGameSceneData(data); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}

	unit := g.GetObjectByUUID("unit-1")
	if unit == nil {
		t.Fatal("expected unit-1 to be indexed")
	}
	hex := g.GetObjectByUUID("hex-0-0")
	if unit.Position() != hex.Position() {
		t.Errorf("expected unit at hex position %v, got %v", hex.Position(), unit.Position())
	}

	var tag game_object.GameObject
	for _, child := range unit.Children() {
		if child.Kind() == game_object.KindSprite {
			tag = child
		}
	}
	if tag == nil {
		t.Fatal("expected a name tag sprite on the unit")
	}
	if tag.Name() != "Alice" || tag.Material().Texture() == nil || tag.Material().Texture().Label != "Alice" {
		t.Errorf("expected name tag labelled Alice, got %q", tag.Name())
	}
}

func TestUnresolvedUnitIsSkipped(t *testing.T) {
	g, _ := newTestGameScene(t)
	data := Game{
		HexGridMap: twoByTwo(),
		CurrentPlayers: []Player{{
			Name: "Bob",
			Units: []Unit{
				{UUID: "lost", OwnerName: "Bob", Position: Position{X: 1, Z: 1}},
				{UUID: "off-map", OwnerName: "Bob", Position: Position{X: 9, Z: 9}},
				{UUID: "fine", OwnerName: "Bob", Position: Position{X: 1, Z: 0}},
			},
		}},
	}

	err := g.LoadGameSceneData(data)
	if !errors.Is(err, ErrUnresolvedHex) {
		t.Fatalf("expected ErrUnresolvedHex, got %v", err)
	}
	if g.GetObjectByUUID("lost") != nil || g.GetObjectByUUID("off-map") != nil {
		t.Error("expected unresolved units to be skipped")
	}
	if g.GetObjectByUUID("fine") == nil {
		t.Error("expected the resolvable unit to be created")
	}
}

func TestRemoveObjectByUUIDUpdatesSceneAndIndex(t *testing.T) {
	g, _ := newTestGameScene(t)
	if err := g.LoadGameSceneData(Game{HexGridMap: twoByTwo()}); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}
	obj := g.GetObjectByUUID("hex-0-1")

	if !g.RemoveObjectByUUID("hex-0-1") {
		t.Fatal("expected removal to succeed")
	}
	if g.GetObjectByUUID("hex-0-1") != nil {
		t.Error("expected hex-0-1 to be gone from the index")
	}
	if g.Scene().Contains(obj) {
		t.Error("expected hex-0-1 to be gone from the scene")
	}
	if g.RemoveObjectByUUID("hex-0-1") {
		t.Error("expected a second removal to report false")
	}
	if g.Objects() != g.Scene().Count() {
		t.Errorf("expected index and scene sizes to match, got %d and %d", g.Objects(), g.Scene().Count())
	}
}

func TestReloadReconcilesByUUID(t *testing.T) {
	g, _ := newTestGameScene(t)
	first := Game{
		HexGridMap: twoByTwo(),
		CurrentPlayers: []Player{{
			Name: "Alice",
			Units: []Unit{
				{UUID: "a", OwnerName: "Alice", Position: Position{X: 0, Z: 0}},
				{UUID: "b", OwnerName: "Alice", Position: Position{X: 0, Z: 1}},
			},
		}},
	}
	if err := g.LoadGameSceneData(first); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}
	if err := g.LoadGameSceneData(first); err != nil {
		t.Fatalf("expected clean reload, got %v", err)
	}
	// Light, three hexes, two units.
	if g.Objects() != 6 || g.Scene().Count() != 6 {
		t.Fatalf("expected a repeated snapshot not to duplicate objects, got %d indexed and %d in scene", g.Objects(), g.Scene().Count())
	}

	second := twoByTwo()
	second.Grid[0][1] = nil
	next := Game{
		HexGridMap: second,
		CurrentPlayers: []Player{{
			Name:  "Carol",
			Units: []Unit{{UUID: "a", OwnerName: "Carol", Position: Position{X: 1, Z: 0}}},
		}},
	}
	if err := g.LoadGameSceneData(next); err != nil {
		t.Fatalf("expected clean reload, got %v", err)
	}

	if g.GetObjectByUUID("hex-0-1") != nil {
		t.Error("expected the removed hex to be gone")
	}
	if g.GetObjectByUUID("b") != nil {
		t.Error("expected the missing unit to be gone")
	}
	a := g.GetObjectByUUID("a")
	if a == nil {
		t.Fatal("expected unit a to survive")
	}
	if a.Position() != g.GetObjectByUUID("hex-1-0").Position() {
		t.Errorf("expected unit a to move onto hex-1-0, got %v", a.Position())
	}
	sprites := 0
	for _, child := range a.Children() {
		if child.Kind() == game_object.KindSprite {
			sprites++
			if child.Name() != "Carol" {
				t.Errorf("expected relabelled tag Carol, got %q", child.Name())
			}
		}
	}
	if sprites != 1 {
		t.Errorf("expected exactly one name tag, got %d", sprites)
	}
}

func TestLoadMapDataRemovesUnitsOnRemovedHexes(t *testing.T) {
	g, _ := newTestGameScene(t)
	data := Game{
		HexGridMap: twoByTwo(),
		CurrentPlayers: []Player{{
			Name: "Alice",
			Units: []Unit{
				{UUID: "u1", OwnerName: "Alice", Position: Position{X: 0, Z: 0}},
				{UUID: "u2", OwnerName: "Alice", Position: Position{X: 1, Z: 0}},
			},
		}},
	}
	if err := g.LoadGameSceneData(data); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}
	u1 := g.GetObjectByUUID("u1")

	grid := twoByTwo()
	grid.Grid[0][0] = nil
	err := g.LoadMapData(grid)
	if !errors.Is(err, ErrUnresolvedHex) {
		t.Errorf("expected ErrUnresolvedHex for the stranded unit, got %v", err)
	}

	if g.GetObjectByUUID("hex-0-0") != nil {
		t.Error("expected hex-0-0 to be removed")
	}
	if g.GetObjectByUUID("u1") != nil || g.Scene().Contains(u1) {
		t.Error("expected unit u1 to leave the index and the scene with its hex")
	}
	u2 := g.GetObjectByUUID("u2")
	if u2 == nil {
		t.Fatal("expected unit u2 to stay on hex-1-0")
	}
	if u2.Position() != g.GetObjectByUUID("hex-1-0").Position() {
		t.Errorf("expected u2 on hex-1-0, got %v", u2.Position())
	}
	if g.Objects() != g.Scene().Count() {
		t.Errorf("expected index and scene sizes to match, got %d and %d", g.Objects(), g.Scene().Count())
	}
}

func TestClearKeepsLight(t *testing.T) {
	g, _ := newTestGameScene(t)
	data := Game{
		HexGridMap:     twoByTwo(),
		CurrentPlayers: []Player{{Name: "Alice", Units: []Unit{{UUID: "u", OwnerName: "Alice"}}}},
	}
	if err := g.LoadGameSceneData(data); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}
	g.Clear()
	if g.Objects() != 1 || g.Scene().Count() != 1 || len(g.Scene().Lights()) != 1 {
		t.Errorf("expected only the light to remain, got %d objects", g.Objects())
	}
}

func TestFrameFollowsElementSizeAndPicks(t *testing.T) {
	g, el := newTestGameScene(t)
	data := Game{
		HexGridMap:     twoByTwo(),
		CurrentPlayers: []Player{{Name: "Alice", Units: []Unit{{UUID: "u", OwnerName: "Alice"}}}},
	}
	if err := g.LoadGameSceneData(data); err != nil {
		t.Fatalf("expected clean load, got %v", err)
	}

	el.width, el.height = 320, 160
	if err := g.Frame(); err != nil {
		t.Fatalf("expected frame to render, got %v", err)
	}
	if w, h := g.Renderer().Size(); w != 320 || h != 160 {
		t.Errorf("expected renderer 320x160, got %dx%d", w, h)
	}
	if g.Camera().Aspect() != 2 {
		t.Errorf("expected aspect 2, got %v", g.Camera().Aspect())
	}
	if g.RaycastFromCamera() != nil {
		t.Error("expected nothing picked before the pointer moves")
	}

	// The default camera looks at the origin, so the centre of the element sees the unit.
	el.DispatchEvent(&dom.Event{Type: "pointermove", ClientX: 160, ClientY: 80})
	picked := g.RaycastFromCamera()
	if picked == nil || picked.UUID() != "u" {
		t.Errorf("expected unit u under the pointer, got %v", picked)
	}
}

func TestNewGameScenePanicsWithoutCollaborators(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a nil input element")
		}
	}()
	NewGameScene(renderer.NewCanvas("x", 1, 1), nil, DefaultCameraSettings())
}
