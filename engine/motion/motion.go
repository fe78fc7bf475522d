package motion

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Controller translates a transform on the ground plane from held keys, and optionally yaws it.
// Forward and left follow the transform's rotation projected onto the XZ plane,
// up and down follow world Y. Displacements from simultaneously held keys add
// without renormalization, so a diagonal moves at Speed·√2.
type Controller interface {
	// Update integrates one tick of motion into t.Position. Rotation is written only while a
	// turn key is held, as a yaw about world up applied before the basis is taken.
	// A non-finite or negative dt, or a nil transform, is a no-op.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - keys: the held-key snapshot for this tick
	//   - t: the transform to move
	Update(dt float32, keys input.KeyReader, t *transform.Transform)

	// Basis returns the horizontal forward and left directions for a rotation,
	// falling back to the last valid pair when the projection degenerates.
	//
	// Parameters:
	//   - rotation: the entity rotation
	//
	// Returns:
	//   - mgl32.Vec3: unit horizontal forward
	//   - mgl32.Vec3: unit horizontal left
	Basis(rotation mgl32.Quat) (forward, left mgl32.Vec3)

	// Profile returns a copy of the bound keys and speed.
	Profile() Profile
}

type controllerImpl struct {
	mu *sync.Mutex

	profile Profile

	// Last valid horizontal directions, seeded with the identity orientation.
	lastForward mgl32.Vec3
	lastLeft    mgl32.Vec3

	log *zap.Logger
}

var _ Controller = &controllerImpl{}

// NewController creates a controller for one entity.
//
// Parameters:
//   - profile: key bindings and speed, copied into the controller
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
//   - error: ErrInvalidProfile if the profile fails validation
func NewController(profile Profile, options ...ControllerOption) (Controller, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	c := &controllerImpl{
		mu:          &sync.Mutex{},
		profile:     profile,
		lastForward: common.WorldForward,
		lastLeft:    common.WorldLeft,
		log:         zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func (c *controllerImpl) Update(dt float32, keys input.KeyReader, t *transform.Transform) {
	if t == nil || keys == nil || !common.IsFinite(dt) || dt < 0 {
		return
	}

	var turn float32
	if keys.Pressed(c.profile.TurnLeft) {
		turn += c.profile.TurnSpeed * dt
	}
	if keys.Pressed(c.profile.TurnRight) {
		turn -= c.profile.TurnSpeed * dt
	}
	if turn != 0 {
		t.Rotation = mgl32.QuatRotate(turn, common.WorldUp).Mul(t.Rotation).Normalize()
	}

	forward, left := c.Basis(t.Rotation)
	step := c.profile.Speed * dt

	var delta mgl32.Vec3
	if keys.Pressed(c.profile.Forward) {
		delta = delta.Add(forward.Mul(step))
	}
	if keys.Pressed(c.profile.Backward) {
		delta = delta.Sub(forward.Mul(step))
	}
	if keys.Pressed(c.profile.StrafeLeft) {
		delta = delta.Add(left.Mul(step))
	}
	if keys.Pressed(c.profile.StrafeRight) {
		delta = delta.Sub(left.Mul(step))
	}
	if keys.Pressed(c.profile.Up) {
		delta = delta.Add(common.WorldUp.Mul(step))
	}
	if keys.Pressed(c.profile.Down) {
		delta = delta.Sub(common.WorldUp.Mul(step))
	}

	t.Translate(delta)
}

func (c *controllerImpl) Basis(rotation mgl32.Quat) (mgl32.Vec3, mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := common.HorizontalDirection(rotation.Rotate(common.WorldForward)); ok {
		c.lastForward = f
	} else {
		c.log.Debug("degenerate forward direction, reusing last valid")
	}
	if l, ok := common.HorizontalDirection(rotation.Rotate(common.WorldLeft)); ok {
		c.lastLeft = l
	} else {
		c.log.Debug("degenerate left direction, reusing last valid")
	}
	return c.lastForward, c.lastLeft
}

func (c *controllerImpl) Profile() Profile {
	return c.profile
}
