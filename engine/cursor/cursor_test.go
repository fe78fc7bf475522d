package cursor

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSurface struct {
	running bool
	mode    common.CursorMode
	visible bool
	calls   int
}

func (s *fakeSurface) IsRunning() bool { return s.running }

func (s *fakeSurface) SetCursorMode(mode common.CursorMode) {
	s.mode = mode
	s.calls++
}

func (s *fakeSurface) SetCursorVisible(visible bool) { s.visible = visible }

func TestInitializeCaptures(t *testing.T) {
	s := &fakeSurface{running: true, visible: true}
	g := NewCaptureGate(s)
	assert.False(t, g.IsActive())

	g.Initialize()
	assert.True(t, g.IsActive())
	assert.Equal(t, common.CursorModeConfined, s.mode)
	assert.False(t, s.visible)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s := &fakeSurface{running: true}
	g := NewCaptureGate(s, WithCaptureMode(common.CursorModeLocked))
	g.Initialize()

	g.Toggle()
	assert.False(t, g.IsActive())
	assert.Equal(t, common.CursorModeFree, s.mode)
	assert.True(t, s.visible)

	g.Toggle()
	assert.True(t, g.IsActive())
	assert.Equal(t, common.CursorModeLocked, s.mode)
	assert.False(t, s.visible)
}

func TestMissingSurfaceIsNoOp(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	g := NewCaptureGate(nil, WithLogger(zap.New(core)))

	assert.NotPanics(t, func() {
		g.Initialize()
		g.Toggle()
	})
	assert.False(t, g.IsActive())
	assert.False(t, g.Available())
	assert.Equal(t, 2, logs.FilterMessage("primary window not found, cursor capture unchanged").Len())
}

func TestClosedSurfaceIsNoOp(t *testing.T) {
	s := &fakeSurface{running: true}
	g := NewCaptureGate(s)
	g.Initialize()

	s.running = false
	g.Toggle()
	assert.True(t, g.IsActive(), "state is unchanged without a running surface")
	assert.Equal(t, 1, s.calls)
}

func TestOptions(t *testing.T) {
	g := NewCaptureGate(nil, WithToggleKey(common.KeyTab), WithCaptureMode(common.CursorModeFree), WithLogger(nil))
	assert.Equal(t, common.KeyTab, g.ToggleKey())

	s := &fakeSurface{running: true}
	g = NewCaptureGate(s, WithCaptureMode(common.CursorModeFree))
	g.Initialize()
	assert.Equal(t, common.CursorModeConfined, s.mode, "free is not a capture mode")
}
