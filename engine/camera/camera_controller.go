package camera

// CameraController owns the camera's position and target and moves them in response to
// input. The position is kept as spherical coordinates (radius, azimuth, elevation) around
// the target, so rotating and zooming never drift the pivot.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget moves the pivot and recomputes position from the current spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera and re-derives radius, azimuth, and elevation from the
	// offset to the target. Values outside the configured bounds are clamped.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Rotate orbits the camera around the target. Angles are in radians before RotateSpeed is applied.
	//
	// Parameters:
	//   - dAzimuth: change of the horizontal angle around Y
	//   - dElevation: change of the vertical angle, clamped to the elevation bounds
	Rotate(dAzimuth, dElevation float32)

	// Pan translates both position and target along the camera's local right and up axes.
	//
	// Parameters:
	//   - right: distance along the right axis before PanSpeed is applied
	//   - up: distance along the up axis before PanSpeed is applied
	Pan(right, up float32)

	// Zoom scales the orbit radius. Each positive step moves closer by ZoomSpeed, each negative
	// step moves away; the result is clamped to the radius bounds.
	//
	// Parameters:
	//   - steps: number of zoom steps (fractional allowed)
	Zoom(steps float32)

	// Radius returns the current distance from the target.
	Radius() float32

	// Azimuth returns the horizontal angle around the Y axis in radians (0 = +Z).
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// RotateSpeed returns the multiplier applied to Rotate angles.
	RotateSpeed() float32

	// PanSpeed returns the multiplier applied to Pan distances.
	PanSpeed() float32

	// ZoomSpeed returns the fraction of the radius removed per zoom step.
	ZoomSpeed() float32
}

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithStartPosition sets the initial camera position; spherical coordinates are derived
// from it once all options are applied.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the start position
func WithStartPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.startPosition = &[3]float32{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - CameraControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithRotateSpeed sets the rotation multiplier.
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithPanSpeed sets the pan multiplier.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithZoomSpeed sets the fraction of the radius removed per zoom step, in (0, 1).
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
