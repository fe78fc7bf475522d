package look

// LookControllerOption is a functional option for configuring a LookController.
type LookControllerOption func(*lookControllerImpl)

// WithSensitivity sets the pointer sensitivity multiplier.
//
// Parameters:
//   - sensitivity: multiplier applied to each pixel of motion (must be > 0)
//
// Returns:
//   - LookControllerOption: functional option to set sensitivity
func WithSensitivity(sensitivity float32) LookControllerOption {
	return func(lc *lookControllerImpl) {
		lc.sensitivity = sensitivity
	}
}

// WithAngularScale sets how many degrees one unit of sensitivity-scaled motion turns the view.
//
// Parameters:
//   - scale: degrees per scaled unit (must be > 0)
//
// Returns:
//   - LookControllerOption: functional option to set the angular scale
func WithAngularScale(scale float32) LookControllerOption {
	return func(lc *lookControllerImpl) {
		lc.angularScale = scale
	}
}

// WithPitchLimit sets the symmetric pitch clamp.
//
// Parameters:
//   - limit: maximum absolute pitch in radians, strictly between 0 and pi/2
//
// Returns:
//   - LookControllerOption: functional option to set the pitch limit
func WithPitchLimit(limit float32) LookControllerOption {
	return func(lc *lookControllerImpl) {
		lc.pitchLimit = limit
	}
}

// WithAngles sets the starting orientation. Pitch is clamped to the pitch limit.
//
// Parameters:
//   - pitch: initial pitch in radians
//   - yaw: initial yaw in radians
//
// Returns:
//   - LookControllerOption: functional option to set the initial angles
func WithAngles(pitch, yaw float32) LookControllerOption {
	return func(lc *lookControllerImpl) {
		lc.pitch = pitch
		lc.yaw = yaw
	}
}
