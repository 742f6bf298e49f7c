package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/estomania/common"
)

// cameraControllerImpl is the orbit implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position      [3]float32
	target        [3]float32
	startPosition *[3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller. Without WithStartPosition the camera
// starts at (3, 4, 5) looking at the target.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		minRadius:    0.5,
		maxRadius:    100.0,
		minElevation: float32(-math.Pi/2 + 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		rotateSpeed: 1.0,
		panSpeed:    1.0,
		zoomSpeed:   0.05,
	}

	for _, option := range options {
		option(cc)
	}

	start := [3]float32{3, 4, 5}
	if cc.startPosition != nil {
		start = *cc.startPosition
	}
	cc.syncFromPosition(start)
	return cc
}

// syncFromPosition derives spherical coordinates from a world position.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) syncFromPosition(pos [3]float32) {
	offset := common.Sub3(pos, cc.target)
	r := common.Length3(offset)
	if r < 1e-8 {
		cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
		cc.updatePosition()
		return
	}
	cc.radius = common.Clamp(r, cc.minRadius, cc.maxRadius)
	cc.azimuth = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
	cc.elevation = common.Clamp(float32(math.Asin(float64(offset[1]/r))), cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix.
// If position and target coincide, both are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up [3]float32) {
	// backward = normalize(position - target), matching LookAt's z-axis
	back := common.Sub3(cc.position, cc.target)
	if common.Length3(back) < 1e-8 {
		return
	}
	back = common.Normalize3(back)

	// right = normalize(cross(worldUp, backward)) with worldUp = (0, 1, 0)
	right = [3]float32{back[2], 0, -back[0]}
	if common.Length3(right) < 1e-8 {
		return [3]float32{}, [3]float32{}
	}
	right = common.Normalize3(right)

	// up = cross(backward, right)
	up = [3]float32{
		back[1]*right[2] - back[2]*right[1],
		back[2]*right[0] - back[0]*right[2],
		back[0]*right[1] - back[1]*right[0],
	}
	return right, up
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.syncFromPosition([3]float32{x, y, z})
}

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += dAzimuth * cc.rotateSpeed
	cc.elevation = common.Clamp(cc.elevation+dElevation*cc.rotateSpeed, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Pan(right, up float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	r, u := cc.localAxes()
	for i := range 3 {
		offset := (r[i]*right + u[i]*up) * cc.panSpeed
		cc.target[i] += offset
		cc.position[i] += offset
	}
}

func (cc *cameraControllerImpl) Zoom(steps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	scale := float32(math.Pow(float64(1-cc.zoomSpeed), float64(steps)))
	cc.radius = common.Clamp(cc.radius*scale, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) RotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotateSpeed
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}
