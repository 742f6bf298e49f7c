package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/estomania/engine/camera"
	"github.com/Carmen-Shannon/estomania/engine/dom"
	"github.com/Carmen-Shannon/estomania/engine/game_object"
	"github.com/Carmen-Shannon/estomania/engine/geometry"
	"github.com/Carmen-Shannon/estomania/engine/light"
	"github.com/Carmen-Shannon/estomania/engine/picking"
	"github.com/Carmen-Shannon/estomania/engine/renderer"
	"github.com/Carmen-Shannon/estomania/engine/renderer/material"
	"github.com/Carmen-Shannon/estomania/engine/scene"
	"github.com/Carmen-Shannon/estomania/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrUnresolvedHex is returned when a unit's coordinate does not lead to a placed hex.
var ErrUnresolvedHex = errors.New("unit position does not resolve to a placed hex")

const (
	plainsColor uint32 = 0x00ff00
	waterColor  uint32 = 0x0000ff
	unitColor   uint32 = 0xff0000
	lightColor  uint32 = 0xffffff

	hexRotationY = math.Pi / 2
)

var nameTagOffset = [3]float32{0, 1.5, 0}

// CameraSettings configures the scene camera. Fov is in degrees.
type CameraSettings struct {
	Fov      float32
	Aspect   float32
	Near     float32
	Far      float32
	Position [3]float32
	Target   [3]float32
}

// DefaultCameraSettings returns fov 75, aspect 2, near 0.1, far 100, looking from (3, 4, 5) at the origin.
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		Fov:      75,
		Aspect:   2,
		Near:     0.1,
		Far:      100,
		Position: [3]float32{3, 4, 5},
	}
}

// gameScene is the implementation of the GameScene interface.
type gameScene struct {
	renderer     renderer.Renderer
	scene        scene.Scene
	camera       camera.Camera
	controls     *camera.OrbitControls
	pickHelper   *picking.PickHelper
	inputElement dom.Element
	log          *logrus.Entry

	hexGridMap HexGridMap
	// objects is the identity index. Every object in the scene graph is here under its UUID.
	objects map[string]game_object.GameObject
	hexes   map[string]struct{}
	units   map[string]Unit

	hexGeometry    geometry.Geometry
	unitGeometry   geometry.Geometry
	plainsMaterial material.Material
	waterMaterial  material.Material
	unitMaterial   material.Material
	nameTags       *nameTagCache

	nameTagWorkers  int
	rendererOptions []renderer.RendererBuilderOption
	sceneOptions    []scene.SceneBuilderOption
	lastWidth       int
	lastHeight      int
}

// GameScene owns everything the worker draws: the renderer, the scene graph, the camera and its
// orbit controls, the pick helper and the identity index from entity UUID to scene object.
//
// A GameScene is owned by a single goroutine and is not safe for concurrent use.
type GameScene interface {
	// LoadGameSceneData applies a snapshot. Hexes and units are reconciled by UUID: new ones are
	// created, missing ones removed, and units whose position or owner changed are updated. A unit
	// that cannot be placed is logged and skipped; the joined placement errors are returned.
	//
	// Parameters:
	//   - data: the snapshot
	//
	// Returns:
	//   - error: joined ErrUnresolvedHex errors, or nil
	LoadGameSceneData(data Game) error

	// LoadMapData applies a bare grid, as delivered before the first full snapshot. Hexes missing
	// from grid are removed, and every known unit is re-resolved against it; a unit whose hex is
	// gone is removed.
	//
	// Parameters:
	//   - grid: the map
	//
	// Returns:
	//   - error: joined ErrUnresolvedHex errors for removed units, or nil
	LoadMapData(grid HexGridMap) error

	// CreateMap creates a scene object for every non-null hex of the stored grid that is not
	// already placed.
	CreateMap()

	// CreateUnit places a unit on the hex at its coordinate and attaches a name tag.
	//
	// Parameters:
	//   - unit: the unit to create
	//
	// Returns:
	//   - error: ErrUnresolvedHex if the coordinate has no placed hex
	CreateUnit(unit Unit) error

	// AddObject adds obj to the scene and indexes it by UUID.
	//
	// Parameters:
	//   - obj: the object to add
	AddObject(obj game_object.GameObject)

	// RemoveObjectByUUID removes the object from both the scene and the index.
	//
	// Parameters:
	//   - uuid: the object's UUID
	//
	// Returns:
	//   - bool: true if an object was removed
	RemoveObjectByUUID(uuid string) bool

	// GetObjectByUUID looks an object up in the index.
	//
	// Parameters:
	//   - uuid: the object's UUID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil
	GetObjectByUUID(uuid string) game_object.GameObject

	// PickObject picks at the current pointer position and logs the result.
	//
	// Returns:
	//   - game_object.GameObject: the picked object, or nil
	PickObject() game_object.GameObject

	// RaycastFromCamera is PickObject, named for the worker message that triggers it.
	//
	// Returns:
	//   - game_object.GameObject: the picked object, or nil
	RaycastFromCamera() game_object.GameObject

	// Frame renders one frame: it follows the input element's size, picks, updates the orbit
	// controls and draws.
	//
	// Returns:
	//   - error: error from the renderer
	Frame() error

	// Clear removes every hex and unit, leaving the light.
	Clear()

	// HexGridMap returns the stored grid.
	HexGridMap() HexGridMap

	// Objects returns the number of indexed objects.
	Objects() int

	// Scene returns the underlying scene graph.
	Scene() scene.Scene

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Renderer returns the renderer drawing into the transferred canvas.
	Renderer() renderer.Renderer

	// PickHelper returns the pointer pick helper.
	PickHelper() *picking.PickHelper

	// Dispose detaches the orbit controls and pick helper from the input element.
	Dispose()
}

var _ GameScene = &gameScene{}

// NewGameScene creates the worker's scene around a transferred canvas and the element input
// arrives on, and registers a white directional light at (-1, 2, 4).
//
// Panics if canvas or inputElement is nil.
//
// Parameters:
//   - canvas: the canvas to draw into
//   - inputElement: the element whose events drive the camera and picking
//   - settings: camera settings
//   - options: variadic list of GameSceneBuilderOption functions
//
// Returns:
//   - GameScene: the new scene
func NewGameScene(canvas *renderer.Canvas, inputElement dom.Element, settings CameraSettings, options ...GameSceneBuilderOption) GameScene {
	if canvas == nil {
		panic("game: NewGameScene requires a canvas")
	}
	if inputElement == nil {
		panic("game: NewGameScene requires an input element")
	}

	g := &gameScene{
		inputElement:   inputElement,
		log:            logger.Component("game"),
		objects:        make(map[string]game_object.GameObject),
		hexes:          make(map[string]struct{}),
		units:          make(map[string]Unit),
		hexGeometry:    geometry.NewCylinderGeometry(1, 1, 0.2, 6),
		unitGeometry:   geometry.NewBoxGeometry(1, 1, 1),
		plainsMaterial: material.NewMaterial(material.WithName("plains"), material.WithColor(plainsColor)),
		waterMaterial:  material.NewMaterial(material.WithName("water"), material.WithColor(waterColor)),
		unitMaterial:   material.NewMaterial(material.WithName("unit"), material.WithColor(unitColor)),
		nameTagWorkers: 4,
	}
	for _, opt := range options {
		opt(g)
	}

	g.renderer = renderer.NewRenderer(renderer.BackendTypeRaster, canvas, g.rendererOptions...)
	g.camera = newSceneCamera(settings)
	g.controls = camera.NewOrbitControls(g.camera, inputElement)
	g.scene = scene.NewScene("game", g.camera, g.sceneOptions...)
	g.pickHelper = picking.NewPickHelper(inputElement)
	g.nameTags = newNameTagCache(g.nameTagWorkers)

	g.setupGlobalLights()
	g.controls.Update()
	return g
}

func newSceneCamera(settings CameraSettings) camera.Camera {
	ctrl := camera.NewCameraController(
		camera.WithTarget(settings.Target[0], settings.Target[1], settings.Target[2]),
		camera.WithStartPosition(settings.Position[0], settings.Position[1], settings.Position[2]),
	)
	return camera.NewCamera(
		camera.WithFovDegrees(settings.Fov),
		camera.WithAspect(settings.Aspect),
		camera.WithNear(settings.Near),
		camera.WithFar(settings.Far),
		camera.WithController(ctrl),
	)
}

func (g *gameScene) setupGlobalLights() {
	l := light.NewLight(light.LightTypeDirectional, light.WithHexColor(lightColor), light.WithIntensity(1))
	g.AddObject(game_object.NewGameObject(
		game_object.WithName("global light"),
		game_object.WithLight(l),
		game_object.WithPosition(-1, 2, 4),
	))
}

func (g *gameScene) LoadGameSceneData(data Game) error {
	g.log.WithFields(logrus.Fields{
		"turn":    data.Turn,
		"players": len(data.CurrentPlayers),
	}).Debug("loading game snapshot")

	g.loadMap(data.HexGridMap)

	var labels []string
	for _, player := range data.CurrentPlayers {
		for _, unit := range player.Units {
			labels = append(labels, unit.OwnerName)
		}
	}
	g.nameTags.Prepare(labels)

	seen := make(map[string]struct{})
	var errs []error
	for _, player := range data.CurrentPlayers {
		for _, unit := range player.Units {
			seen[unit.UUID] = struct{}{}
			if err := g.applyUnit(unit); err != nil {
				g.log.WithError(err).WithField("unit", unit.UUID).Warn("skipping unit")
				errs = append(errs, err)
			}
		}
	}
	for uuid := range g.units {
		if _, ok := seen[uuid]; !ok {
			g.RemoveObjectByUUID(uuid)
		}
	}
	return errors.Join(errs...)
}

func (g *gameScene) LoadMapData(grid HexGridMap) error {
	g.loadMap(grid)

	var errs []error
	for _, unit := range g.units {
		if err := g.applyUnit(unit); err != nil {
			g.log.WithError(err).WithField("unit", unit.UUID).Warn("removing unit")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loadMap stores grid, removes hexes it no longer contains and places the new ones.
func (g *gameScene) loadMap(grid HexGridMap) {
	g.hexGridMap = grid

	current := make(map[string]struct{})
	for _, h := range grid.Hexes() {
		current[h.UUID] = struct{}{}
	}
	for uuid := range g.hexes {
		if _, ok := current[uuid]; !ok {
			g.RemoveObjectByUUID(uuid)
		}
	}
	g.CreateMap()
}

func (g *gameScene) CreateMap() {
	for _, h := range g.hexGridMap.Hexes() {
		if _, placed := g.hexes[h.UUID]; placed {
			continue
		}
		mat := g.plainsMaterial
		if h.TileType == TileWater {
			mat = g.waterMaterial
		}
		pos := HexToWorld(h.Position.X, h.Position.Z)
		g.AddObject(game_object.NewGameObject(
			game_object.WithUUID(h.UUID),
			game_object.WithName(mat.Name()),
			game_object.WithGeometry(g.hexGeometry),
			game_object.WithMaterial(mat),
			game_object.WithPosition(pos[0], pos[1], pos[2]),
			game_object.WithRotation(0, hexRotationY, 0),
		))
		g.hexes[h.UUID] = struct{}{}
	}
}

// hexPosition resolves a grid coordinate through the grid and the index to the placed hex's position.
func (g *gameScene) hexPosition(unit Unit) ([3]float32, error) {
	h := g.hexGridMap.HexAt(unit.Position.X, unit.Position.Z)
	if h == nil {
		return [3]float32{}, fmt.Errorf("unit %s at (%d, %d): no hex in grid: %w",
			unit.UUID, unit.Position.X, unit.Position.Z, ErrUnresolvedHex)
	}
	obj := g.GetObjectByUUID(h.UUID)
	if obj == nil {
		return [3]float32{}, fmt.Errorf("unit %s at (%d, %d): hex %s not placed: %w",
			unit.UUID, unit.Position.X, unit.Position.Z, h.UUID, ErrUnresolvedHex)
	}
	return obj.Position(), nil
}

func (g *gameScene) CreateUnit(unit Unit) error {
	pos, err := g.hexPosition(unit)
	if err != nil {
		return err
	}
	mesh := game_object.NewGameObject(
		game_object.WithUUID(unit.UUID),
		game_object.WithName(unit.OwnerName),
		game_object.WithGeometry(g.unitGeometry),
		game_object.WithMaterial(g.unitMaterial),
		game_object.WithPosition(pos[0], pos[1], pos[2]),
	)
	g.attachNameTag(mesh, unit.OwnerName)
	g.AddObject(mesh)
	g.units[unit.UUID] = unit
	return nil
}

// applyUnit creates a unit or brings an existing one in line with the snapshot.
func (g *gameScene) applyUnit(unit Unit) error {
	prev, ok := g.units[unit.UUID]
	obj := g.GetObjectByUUID(unit.UUID)
	if !ok || obj == nil {
		return g.CreateUnit(unit)
	}
	// The hex under an unmoved unit may still have been replaced, so always re-resolve.
	pos, err := g.hexPosition(unit)
	if err != nil {
		g.RemoveObjectByUUID(unit.UUID)
		return err
	}
	obj.SetPosition(pos[0], pos[1], pos[2])
	if prev.OwnerName != unit.OwnerName {
		for _, child := range obj.Children() {
			if child.Kind() == game_object.KindSprite {
				obj.Remove(child)
			}
		}
		obj.SetName(unit.OwnerName)
		g.attachNameTag(obj, unit.OwnerName)
	}
	g.units[unit.UUID] = unit
	return nil
}

func (g *gameScene) attachNameTag(parent game_object.GameObject, label string) {
	tex, err := g.nameTags.Texture(label)
	if err != nil {
		g.log.WithError(err).WithField("label", label).Warn("unit has no name tag")
		return
	}
	parent.Add(game_object.NewGameObject(
		game_object.WithName(label),
		game_object.WithKind(game_object.KindSprite),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("name tag"),
			material.WithTexture(tex),
		)),
		game_object.WithPosition(nameTagOffset[0], nameTagOffset[1], nameTagOffset[2]),
		game_object.WithScale(2, 1, 1),
	))
}

func (g *gameScene) AddObject(obj game_object.GameObject) {
	if obj == nil {
		return
	}
	if prev, ok := g.objects[obj.UUID()]; ok && prev != obj {
		g.scene.Remove(prev)
	}
	g.objects[obj.UUID()] = obj
	g.scene.Add(obj)
}

func (g *gameScene) RemoveObjectByUUID(uuid string) bool {
	obj, ok := g.objects[uuid]
	if !ok {
		return false
	}
	g.scene.Remove(obj)
	delete(g.objects, uuid)
	delete(g.hexes, uuid)
	delete(g.units, uuid)
	return true
}

func (g *gameScene) GetObjectByUUID(uuid string) game_object.GameObject {
	return g.objects[uuid]
}

func (g *gameScene) PickObject() game_object.GameObject {
	picked := g.pickHelper.Pick(g.scene, g.camera)
	if picked != nil {
		g.log.WithFields(logrus.Fields{
			"uuid": picked.UUID(),
			"name": picked.Name(),
		}).Info("picked object")
	} else {
		g.log.WithField("objects", g.scene.Count()).Info("nothing under pointer")
	}
	return picked
}

func (g *gameScene) RaycastFromCamera() game_object.GameObject {
	return g.PickObject()
}

func (g *gameScene) Frame() error {
	g.resizeRendererToDisplaySize()
	g.pickHelper.Pick(g.scene, g.camera)
	g.controls.Update()
	return g.renderer.Render(g.scene, g.camera)
}

// resizeRendererToDisplaySize follows the input element's client size. It reports whether a
// resize happened.
func (g *gameScene) resizeRendererToDisplaySize() bool {
	width := int(g.inputElement.ClientWidth())
	height := int(g.inputElement.ClientHeight())
	if width <= 0 || height <= 0 || (width == g.lastWidth && height == g.lastHeight) {
		return false
	}
	g.lastWidth, g.lastHeight = width, height
	g.renderer.Resize(width, height)
	g.camera.UpdateProjectionMatrix(width, height)
	return true
}

func (g *gameScene) Clear() {
	for uuid := range g.units {
		g.RemoveObjectByUUID(uuid)
	}
	for uuid := range g.hexes {
		g.RemoveObjectByUUID(uuid)
	}
	g.hexGridMap = HexGridMap{}
}

func (g *gameScene) HexGridMap() HexGridMap {
	return g.hexGridMap
}

func (g *gameScene) Objects() int {
	return len(g.objects)
}

func (g *gameScene) Scene() scene.Scene {
	return g.scene
}

func (g *gameScene) Camera() camera.Camera {
	return g.camera
}

func (g *gameScene) Renderer() renderer.Renderer {
	return g.renderer
}

func (g *gameScene) PickHelper() *picking.PickHelper {
	return g.pickHelper
}

func (g *gameScene) Dispose() {
	g.controls.Dispose()
	g.pickHelper.Dispose()
}
