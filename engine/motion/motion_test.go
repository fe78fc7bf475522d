package motion

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func held(keys ...common.Key) input.KeySnapshot {
	return input.NewKeySnapshot(keys, nil)
}

func newWASD(t *testing.T) Controller {
	t.Helper()
	c, err := NewController(WASDProfile())
	require.NoError(t, err)
	return c
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-4, "want %v, got %v", want, got)
}

func TestSingleKeyMovesSpeedTimesDt(t *testing.T) {
	tests := []struct {
		name string
		key  common.Key
		want mgl32.Vec3
	}{
		{"forward", common.KeyW, mgl32.Vec3{0, 0, -1.5}},
		{"backward", common.KeyS, mgl32.Vec3{0, 0, 1.5}},
		{"left", common.KeyA, mgl32.Vec3{-1.5, 0, 0}},
		{"right", common.KeyD, mgl32.Vec3{1.5, 0, 0}},
		{"up", common.KeySpace, mgl32.Vec3{0, 1.5, 0}},
		{"down", common.KeyLeftControl, mgl32.Vec3{0, -1.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newWASD(t)
			tr := transform.New(0, 0, 0)
			c.Update(0.5, held(tt.key), &tr)
			assertVec(t, tt.want, tr.Position)
		})
	}
}

func TestDiagonalIsNotNormalized(t *testing.T) {
	c := newWASD(t)
	tr := transform.New(1, 2, 3)

	c.Update(1, held(common.KeyW, common.KeyA), &tr)
	assertVec(t, mgl32.Vec3{-2, 2, 0}, tr.Position)
	assert.InDelta(t, 3*math.Sqrt2, tr.Position.Sub(mgl32.Vec3{1, 2, 3}).Len(), 1e-4)
}

func TestOpposingKeysCancel(t *testing.T) {
	c := newWASD(t)
	tr := transform.New(0, 0, 0)
	c.Update(1, held(common.KeyW, common.KeyS, common.KeyA, common.KeyD), &tr)
	assertVec(t, mgl32.Vec3{}, tr.Position)
}

func TestPitchedDownStaysOnPlane(t *testing.T) {
	c := newWASD(t)
	tr := transform.New(0, 1, 0)
	tr.Rotation = common.YawPitchRotation(0.3, -math.Pi/4)
	before := tr.Rotation

	c.Update(0.25, held(common.KeyW), &tr)
	assert.InDelta(t, 1, tr.Position.Y(), 1e-6)
	assert.InDelta(t, 0.75, mgl32.Vec2{tr.Position.X(), tr.Position.Z()}.Len(), 1e-5)
	assert.Equal(t, before, tr.Rotation, "motion never writes rotation")
}

func TestYawedForwardFollowsRotation(t *testing.T) {
	c := newWASD(t)
	tr := transform.New(0, 0, 0)
	tr.Rotation = common.YawPitchRotation(math.Pi/2, 0)

	c.Update(1, held(common.KeyW), &tr)
	assertVec(t, mgl32.Vec3{-3, 0, 0}, tr.Position)
}

func TestStraightUpUsesFallback(t *testing.T) {
	t.Run("identity fallback before any valid basis", func(t *testing.T) {
		c := newWASD(t)
		tr := transform.New(0, 0, 0)
		tr.Rotation = common.YawPitchRotation(0, math.Pi/2)

		c.Update(1, held(common.KeyW), &tr)
		assert.True(t, common.IsFiniteVec3(tr.Position))
		assertVec(t, mgl32.Vec3{0, 0, -3}, tr.Position)
	})

	t.Run("last valid direction", func(t *testing.T) {
		c := newWASD(t)
		tr := transform.New(0, 0, 0)
		tr.Rotation = common.YawPitchRotation(math.Pi/2, 0)
		c.Update(0, held(), &tr)

		tr.Rotation = common.YawPitchRotation(math.Pi/2, -math.Pi/2)
		c.Update(1, held(common.KeyW), &tr)
		assert.True(t, common.IsFiniteVec3(tr.Position))
		assertVec(t, mgl32.Vec3{-3, 0, 0}, tr.Position)
	})
}

func TestInvalidInputIsNoOp(t *testing.T) {
	c := newWASD(t)
	tr := transform.New(4, 5, 6)
	keys := held(common.KeyW, common.KeySpace)

	c.Update(float32(math.NaN()), keys, &tr)
	c.Update(float32(math.Inf(1)), keys, &tr)
	c.Update(-1, keys, &tr)
	c.Update(1, nil, &tr)
	assert.NotPanics(t, func() { c.Update(1, keys, nil) })
	assertVec(t, mgl32.Vec3{4, 5, 6}, tr.Position)
}

func TestPlanarProfilesIgnoreVertical(t *testing.T) {
	c, err := NewController(ArrowProfile())
	require.NoError(t, err)
	tr := transform.New(0, 0, 0)

	c.Update(1, held(common.KeyUp, common.KeySpace, common.KeyW), &tr)
	assertVec(t, mgl32.Vec3{0, 0, -3}, tr.Position)
}

func TestProfileValidation(t *testing.T) {
	dup := IJKLProfile()
	dup.Up = common.KeyI

	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"wasd", WASDProfile(), false},
		{"ijkl", IJKLProfile(), false},
		{"arrows", ArrowProfile(), false},
		{"zero speed", Profile{Forward: common.KeyW}, true},
		{"nan speed", Profile{Speed: float32(math.NaN())}, true},
		{"duplicate key", dup, true},
		{"turn key without turn speed", Profile{TurnLeft: common.KeyQ, Speed: 1}, true},
		{"turn key clashes with strafe", Profile{StrafeLeft: common.KeyQ, TurnLeft: common.KeyQ, Speed: 1, TurnSpeed: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewController(tt.profile)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProfile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileKeys(t *testing.T) {
	assert.Len(t, WASDProfile().Keys(), 6)
	assert.ElementsMatch(t, []common.Key{common.KeyI, common.KeyK, common.KeyJ, common.KeyL, common.KeyU, common.KeyO}, IJKLProfile().Keys())
	assert.True(t, IJKLProfile().Turns())
	assert.False(t, WASDProfile().Turns())
}

func TestTurnKeysYawThenMove(t *testing.T) {
	c, err := NewController(IJKLProfile())
	require.NoError(t, err)
	tr := transform.New(0, 0, 0)

	// A quarter turn left at 1.5 rad/s.
	c.Update(math.Pi/3, held(common.KeyU), &tr)
	assertVec(t, mgl32.Vec3{}, tr.Position)
	assertVec(t, mgl32.Vec3{-1, 0, 0}, tr.Forward())
	assert.InDelta(t, 0, tr.Left().Y(), 1e-6, "no roll")

	c.Update(1, held(common.KeyI), &tr)
	assertVec(t, mgl32.Vec3{-3, 0, 0}, tr.Position)

	c.Update(math.Pi/3, held(common.KeyO), &tr)
	assertVec(t, mgl32.Vec3{0, 0, -1}, tr.Forward())
}

func TestOpposingTurnKeysLeaveRotation(t *testing.T) {
	c, err := NewController(IJKLProfile())
	require.NoError(t, err)
	tr := transform.New(0, 0, 0)
	before := tr.Rotation

	c.Update(1, held(common.KeyU, common.KeyO), &tr)
	assert.Equal(t, before, tr.Rotation)
}
