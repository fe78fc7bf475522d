package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis conventions: right-handed, +Y up, an unrotated entity faces -Z with +X to its right.
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
	WorldLeft    = mgl32.Vec3{-1, 0, 0}
)

// DirectionEpsilon is the shortest vector length that is still normalized.
// Anything shorter is treated as having no direction.
const DirectionEpsilon = 1e-6

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// SafeNormalize normalizes v, refusing vectors that are too short or non-finite.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or the zero vector when ok is false
//   - bool: false if v has no usable direction
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	if !IsFiniteVec3(v) {
		return mgl32.Vec3{}, false
	}
	l := v.Len()
	if l < DirectionEpsilon || !IsFinite(l) {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// HorizontalDirection projects v onto the ground plane (Y zeroed) and normalizes the result.
//
// Parameters:
//   - v: a world-space direction
//
// Returns:
//   - mgl32.Vec3: the unit horizontal direction, or the zero vector when ok is false
//   - bool: false if v is vertical (or degenerate) and has no horizontal component
func HorizontalDirection(v mgl32.Vec3) (mgl32.Vec3, bool) {
	return SafeNormalize(mgl32.Vec3{v[0], 0, v[2]})
}

// YawPitchRotation composes a yaw about world +Y with a pitch about the local +X axis.
// Yaw is applied outermost so the combination never introduces roll.
//
// Parameters:
//   - yaw: rotation about world up in radians
//   - pitch: rotation about the local right axis in radians
//
// Returns:
//   - mgl32.Quat: the unit rotation
func YawPitchRotation(yaw, pitch float32) mgl32.Quat {
	q := mgl32.QuatRotate(yaw, WorldUp).Mul(mgl32.QuatRotate(pitch, WorldRight))
	return q.Normalize()
}

// AnglesFromDirection recovers the pitch and yaw that make YawPitchRotation face along dir.
//
// Parameters:
//   - dir: the desired forward direction (need not be normalized)
//
// Returns:
//   - pitch, yaw: angles in radians
//   - bool: false if dir has no usable direction
func AnglesFromDirection(dir mgl32.Vec3) (pitch, yaw float32, ok bool) {
	d, ok := SafeNormalize(dir)
	if !ok {
		return 0, 0, false
	}
	pitch = float32(math.Asin(float64(mgl32.Clamp(d[1], -1, 1))))
	if h, ok := HorizontalDirection(d); ok {
		yaw = float32(math.Atan2(float64(-h[0]), float64(-h[2])))
	}
	return pitch, yaw, true
}

// AnglesFromLookAt returns the pitch and yaw of an observer at eye facing target.
//
// Parameters:
//   - eye: observer position
//   - target: point to face
//
// Returns:
//   - pitch, yaw: angles in radians
//   - bool: false if eye and target coincide
func AnglesFromLookAt(eye, target mgl32.Vec3) (pitch, yaw float32, ok bool) {
	return AnglesFromDirection(target.Sub(eye))
}
