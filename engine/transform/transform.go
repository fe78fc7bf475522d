package transform

import (
	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the world-space position and orientation of a controlled entity.
// It is stored as an ECS component; controllers receive a pointer to it for the duration of one tick.
// The look controller owns Rotation, the motion controller bound to the same entity owns Position.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// New creates a Transform at the given position with the identity rotation.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - Transform: the new transform
func New(x, y, z float32) Transform {
	return Transform{
		Position: mgl32.Vec3{x, y, z},
		Rotation: mgl32.QuatIdent(),
	}
}

// LookingAt returns a copy of t rotated so its forward axis points at target, with no roll.
// If target coincides with the position the rotation is left unchanged.
//
// Parameters:
//   - target: world-space point to face
//
// Returns:
//   - Transform: the re-oriented transform
func (t Transform) LookingAt(target mgl32.Vec3) Transform {
	if pitch, yaw, ok := common.AnglesFromLookAt(t.Position, target); ok {
		t.Rotation = common.YawPitchRotation(yaw, pitch)
	}
	return t
}

// Forward returns the entity's local forward axis (-Z) in world space.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(common.WorldForward)
}

// Left returns the entity's local left axis (-X) in world space.
func (t *Transform) Left() mgl32.Vec3 {
	return t.Rotation.Rotate(common.WorldLeft)
}

// Up returns the entity's local up axis (+Y) in world space.
func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(common.WorldUp)
}

// Translate moves the entity by delta in world space.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}
