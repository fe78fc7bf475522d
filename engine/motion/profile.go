package motion

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

const (
	// DefaultSpeed is the planar speed of every preset profile, in world units per second.
	DefaultSpeed float32 = 3.0
	// DefaultTurnSpeed is the keyboard yaw rate of every preset profile, in radians per second.
	DefaultTurnSpeed float32 = 1.5
)

// ErrInvalidProfile is returned when a Profile cannot drive a controller.
var ErrInvalidProfile = errors.New("invalid motion profile")

// Profile binds keys to the six planar/vertical directions and to an optional yaw turn.
// common.KeyNone leaves a direction unbound.
type Profile struct {
	Forward     common.Key
	Backward    common.Key
	StrafeLeft  common.Key
	StrafeRight common.Key
	Up          common.Key
	Down        common.Key

	// TurnLeft and TurnRight yaw the entity about world up. Leave them unbound on any
	// entity whose rotation is driven by pointer look.
	TurnLeft  common.Key
	TurnRight common.Key

	// Speed in world units per second, shared by all directions.
	Speed float32
	// TurnSpeed in radians per second.
	TurnSpeed float32
}

// WASDProfile is the camera layout with Space and LeftControl for vertical motion.
func WASDProfile() Profile {
	return Profile{
		Forward:     common.KeyW,
		Backward:    common.KeyS,
		StrafeLeft:  common.KeyA,
		StrafeRight: common.KeyD,
		Up:          common.KeySpace,
		Down:        common.KeyLeftControl,
		Speed:       DefaultSpeed,
		TurnSpeed:   DefaultTurnSpeed,
	}
}

// IJKLProfile is a planar layout on the right hand of the home row, turning with U and O.
func IJKLProfile() Profile {
	return Profile{
		Forward:     common.KeyI,
		Backward:    common.KeyK,
		StrafeLeft:  common.KeyJ,
		StrafeRight: common.KeyL,
		TurnLeft:    common.KeyU,
		TurnRight:   common.KeyO,
		Speed:       DefaultSpeed,
		TurnSpeed:   DefaultTurnSpeed,
	}
}

// ArrowProfile is a planar-only layout on the arrow keys.
func ArrowProfile() Profile {
	return Profile{
		Forward:     common.KeyUp,
		Backward:    common.KeyDown,
		StrafeLeft:  common.KeyLeft,
		StrafeRight: common.KeyRight,
		Speed:       DefaultSpeed,
		TurnSpeed:   DefaultTurnSpeed,
	}
}

// Keys returns every bound key of the profile.
func (p Profile) Keys() []common.Key {
	keys := make([]common.Key, 0, 8)
	for _, k := range []common.Key{p.Forward, p.Backward, p.StrafeLeft, p.StrafeRight, p.Up, p.Down, p.TurnLeft, p.TurnRight} {
		if k != common.KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

// Turns reports whether either turn key is bound.
func (p Profile) Turns() bool {
	return p.TurnLeft != common.KeyNone || p.TurnRight != common.KeyNone
}

// Validate checks the speeds and that no key is bound to two directions.
//
// Returns:
//   - error: ErrInvalidProfile wrapped with the reason, or nil
func (p Profile) Validate() error {
	if !common.IsFinite(p.Speed) || p.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidProfile, p.Speed)
	}
	if p.Turns() && (!common.IsFinite(p.TurnSpeed) || p.TurnSpeed <= 0) {
		return fmt.Errorf("%w: turn speed must be positive, got %v", ErrInvalidProfile, p.TurnSpeed)
	}
	seen := make(map[common.Key]struct{}, 8)
	for _, k := range p.Keys() {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: key %s bound twice", ErrInvalidProfile, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
