package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want %v, got %v", want, got)
}

func TestNewIsAxisAligned(t *testing.T) {
	tr := New(1, 2, 3)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Position)
	assertVec(t, mgl32.Vec3{0, 0, -1}, tr.Forward())
	assertVec(t, mgl32.Vec3{-1, 0, 0}, tr.Left())
	assertVec(t, mgl32.Vec3{0, 1, 0}, tr.Up())
}

func TestLookingAt(t *testing.T) {
	tr := New(0, 0, 0).LookingAt(mgl32.Vec3{5, 0, 0})
	assertVec(t, mgl32.Vec3{1, 0, 0}, tr.Forward())
	assertVec(t, mgl32.Vec3{0, 0, -1}, tr.Left())

	down := New(0, 4, 4).LookingAt(mgl32.Vec3{})
	assertVec(t, mgl32.Vec3{0, -1, -1}.Normalize(), down.Forward())
	assert.InDelta(t, 0, down.Left().Y(), 1e-5, "no roll")
}

func TestLookingAtSelfKeepsRotation(t *testing.T) {
	tr := New(1, 1, 1)
	assert.Equal(t, tr.Rotation, tr.LookingAt(mgl32.Vec3{1, 1, 1}).Rotation)
}

func TestTranslate(t *testing.T) {
	tr := New(1, 0, 0)
	tr.Translate(mgl32.Vec3{0, 2, -3})
	assert.Equal(t, mgl32.Vec3{1, 2, -3}, tr.Position)
}
