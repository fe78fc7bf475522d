package common

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYawPitchRotationHasNoRoll(t *testing.T) {
	for pitch := float32(-1.54); pitch <= 1.54; pitch += 0.11 {
		for yaw := float32(-2 * math.Pi); yaw <= 2*math.Pi; yaw += 0.37 {
			q := YawPitchRotation(yaw, pitch)
			right := q.Rotate(WorldRight)
			assert.InDelta(t, 0, right.Y(), 1e-5, "pitch=%v yaw=%v", pitch, yaw)
			assert.InDelta(t, 1, q.Len(), 1e-5)
		}
	}
}

func TestYawPitchRotationOrderMatters(t *testing.T) {
	// Pitch-outermost composition rolls the right axis out of the ground plane.
	yaw, pitch := float32(1.0), float32(1.2)
	wrong := mgl32.QuatRotate(pitch, WorldRight).Mul(mgl32.QuatRotate(yaw, WorldUp))
	assert.Greater(t, math.Abs(float64(wrong.Rotate(WorldRight).Y())), 0.1)
	assert.InDelta(t, 0, YawPitchRotation(yaw, pitch).Rotate(WorldRight).Y(), 1e-6)
}

func TestHorizontalDirection(t *testing.T) {
	tests := []struct {
		name   string
		in     mgl32.Vec3
		want   mgl32.Vec3
		wantOK bool
	}{
		{name: "level", in: mgl32.Vec3{0, 0, -2}, want: mgl32.Vec3{0, 0, -1}, wantOK: true},
		{name: "pitched", in: mgl32.Vec3{3, 5, 4}, want: mgl32.Vec3{0.6, 0, 0.8}, wantOK: true},
		{name: "straight up", in: mgl32.Vec3{0, 1, 0}, wantOK: false},
		{name: "nan", in: mgl32.Vec3{float32(math.NaN()), 0, 1}, wantOK: false},
		{name: "tiny", in: mgl32.Vec3{1e-8, 1, 1e-8}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HorizontalDirection(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, mgl32.Vec3{}, got)
				return
			}
			assert.InDeltaSlice(t, tt.want[:], got[:], 1e-6)
		})
	}
}

func TestAnglesFromLookAtRoundTrip(t *testing.T) {
	eye := mgl32.Vec3{0.037, 2.5, 8.372}
	pitch, yaw, ok := AnglesFromLookAt(eye, mgl32.Vec3{})
	require.True(t, ok)

	forward := YawPitchRotation(yaw, pitch).Rotate(WorldForward)
	want := eye.Mul(-1).Normalize()
	assert.InDeltaSlice(t, want[:], forward[:], 1e-5)
	assert.Less(t, pitch, float32(0))

	_, _, ok = AnglesFromLookAt(eye, eye)
	assert.False(t, ok)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "w", want: KeyW},
		{in: "W", want: KeyW},
		{in: "1", want: Key1},
		{in: "Space", want: KeySpace},
		{in: "left_control", want: KeyLeftControl},
		{in: "LControl", want: KeyLeftControl},
		{in: "Up", want: KeyUp},
		{in: "", want: KeyNone},
		{in: "Hyper", wantErr: true},
		{in: "%", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyStringParsesBack(t *testing.T) {
	for _, k := range []Key{KeyA, KeyZ, Key0, KeySpace, KeyEsc, KeyLeftControl, KeyUp, KeyRightAlt} {
		parsed, err := ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func TestCursorModeCaptured(t *testing.T) {
	assert.False(t, CursorModeFree.Captured())
	assert.True(t, CursorModeConfined.Captured())
	assert.True(t, CursorModeLocked.Captured())
	assert.Equal(t, "confined", CursorModeConfined.String())
}

func TestParseCursorMode(t *testing.T) {
	for _, m := range []CursorMode{CursorModeFree, CursorModeConfined, CursorModeLocked} {
		parsed, err := ParseCursorMode(strings.ToUpper(m.String()))
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseCursorMode("grabbed")
	assert.Error(t, err)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "terminal", Coalesce("", "terminal", "glfw"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
