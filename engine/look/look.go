package look

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// Defaults tuned for a 720-pixel-tall window: one pixel of motion turns the view by 0.0864 degrees.
const (
	DefaultSensitivity  float32 = 0.00012
	DefaultAngularScale float32 = 720.0
	DefaultPitchLimit   float32 = 1.54
)

// ErrInvalidLookConfig is returned by NewLookController for unusable parameters.
var ErrInvalidLookConfig = errors.New("invalid look configuration")

// ActiveGate reports whether pointer motion should turn the view. Satisfied by cursor.CaptureGate.
type ActiveGate interface {
	IsActive() bool
}

// LookController accumulates pointer motion into a pitch/yaw orientation.
// Pitch is clamped to ±PitchLimit, yaw is unbounded. The resulting rotation is always
// yaw about world up composed with pitch about the local right axis, so it never rolls.
type LookController interface {
	// Update drains the pending motion events and rewrites t.Rotation.
	// While the gate is inactive the events are consumed but the angles do not change.
	//
	// Parameters:
	//   - gate: the capture gate; nil is treated as inactive
	//   - t: the transform whose rotation is written; nil skips the write
	Update(gate ActiveGate, t *transform.Transform)

	// Discard drains pending motion events without applying them.
	//
	// Returns:
	//   - int: number of events discarded
	Discard() int

	// Pitch returns the current pitch in radians.
	Pitch() float32

	// Yaw returns the current yaw in radians.
	Yaw() float32

	// Rotation returns the rotation for the current angles.
	Rotation() mgl32.Quat

	// PitchLimit returns the symmetric pitch clamp in radians.
	PitchLimit() float32

	// Sensitivity returns the pointer sensitivity multiplier.
	Sensitivity() float32

	// AngularScale returns the degrees of rotation per unit of sensitivity-scaled motion.
	AngularScale() float32

	// Offset returns the stream position of the next unread motion event.
	Offset() uint64
}

type lookControllerImpl struct {
	mu *sync.Mutex

	reader *input.MotionReader

	pitch float32
	yaw   float32

	sensitivity  float32
	angularScale float32
	pitchLimit   float32
}

var _ LookController = &lookControllerImpl{}

// NewLookController creates a look controller reading from its own motion reader.
// The reader must not be shared with any other consumer.
//
// Parameters:
//   - reader: the motion reader owned by this controller
//   - options: functional options to configure the controller
//
// Returns:
//   - LookController: the new controller
//   - error: ErrInvalidLookConfig if the reader is nil or a parameter is out of range
func NewLookController(reader *input.MotionReader, options ...LookControllerOption) (LookController, error) {
	lc := &lookControllerImpl{
		mu:           &sync.Mutex{},
		reader:       reader,
		sensitivity:  DefaultSensitivity,
		angularScale: DefaultAngularScale,
		pitchLimit:   DefaultPitchLimit,
	}
	for _, opt := range options {
		opt(lc)
	}

	if reader == nil {
		return nil, fmt.Errorf("%w: motion reader is required", ErrInvalidLookConfig)
	}
	if !common.IsFinite(lc.sensitivity) || lc.sensitivity <= 0 {
		return nil, fmt.Errorf("%w: sensitivity must be positive, got %v", ErrInvalidLookConfig, lc.sensitivity)
	}
	if !common.IsFinite(lc.angularScale) || lc.angularScale <= 0 {
		return nil, fmt.Errorf("%w: angular scale must be positive, got %v", ErrInvalidLookConfig, lc.angularScale)
	}
	if !common.IsFinite(lc.pitchLimit) || lc.pitchLimit <= 0 || lc.pitchLimit >= math.Pi/2 {
		return nil, fmt.Errorf("%w: pitch limit must be in (0, pi/2), got %v", ErrInvalidLookConfig, lc.pitchLimit)
	}
	if !common.IsFinite(lc.pitch) || !common.IsFinite(lc.yaw) {
		return nil, fmt.Errorf("%w: initial angles must be finite", ErrInvalidLookConfig)
	}
	lc.pitch = mgl32.Clamp(lc.pitch, -lc.pitchLimit, lc.pitchLimit)

	return lc, nil
}

func (lc *lookControllerImpl) Update(gate ActiveGate, t *transform.Transform) {
	events := lc.reader.Read()

	lc.mu.Lock()
	defer lc.mu.Unlock()

	active := gate != nil && gate.IsActive()
	for _, ev := range events {
		if active && common.IsFinite(ev.DX) && common.IsFinite(ev.DY) {
			lc.yaw -= mgl32.DegToRad(lc.sensitivity * ev.DX * lc.angularScale)
			lc.pitch -= mgl32.DegToRad(lc.sensitivity * ev.DY * lc.angularScale)
		}
		lc.pitch = mgl32.Clamp(lc.pitch, -lc.pitchLimit, lc.pitchLimit)
	}

	if t != nil {
		t.Rotation = common.YawPitchRotation(lc.yaw, lc.pitch)
	}
}

func (lc *lookControllerImpl) Discard() int {
	return lc.reader.Discard()
}

func (lc *lookControllerImpl) Pitch() float32 {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.pitch
}

func (lc *lookControllerImpl) Yaw() float32 {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.yaw
}

func (lc *lookControllerImpl) Rotation() mgl32.Quat {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return common.YawPitchRotation(lc.yaw, lc.pitch)
}

func (lc *lookControllerImpl) PitchLimit() float32 {
	return lc.pitchLimit
}

func (lc *lookControllerImpl) Sensitivity() float32 {
	return lc.sensitivity
}

func (lc *lookControllerImpl) AngularScale() float32 {
	return lc.angularScale
}

func (lc *lookControllerImpl) Offset() uint64 {
	return lc.reader.Offset()
}
