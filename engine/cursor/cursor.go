package cursor

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"go.uber.org/zap"
)

// Surface is the part of a window the gate drives. Implemented by window.Window.
type Surface interface {
	// IsRunning reports whether the primary surface exists and is still open.
	IsRunning() bool

	// SetCursorMode sets the pointer confinement mode.
	SetCursorMode(mode common.CursorMode)

	// SetCursorVisible shows or hides the pointer.
	SetCursorVisible(visible bool)
}

// CaptureGate tracks whether pointer motion is routed into look input.
// It owns only the logical flag; the visual and confinement effect is delegated to the Surface.
type CaptureGate interface {
	// Initialize captures the cursor. Called once at startup.
	Initialize()

	// Toggle flips the captured state and applies the inverse cursor effect.
	Toggle()

	// IsActive reports whether look input is currently enabled.
	//
	// Returns:
	//   - bool: true if the cursor is captured
	IsActive() bool

	// Available reports whether a running surface is attached.
	//
	// Returns:
	//   - bool: true if a surface exists and is running
	Available() bool

	// ToggleKey returns the key whose press toggles the gate.
	//
	// Returns:
	//   - common.Key: the toggle key
	ToggleKey() common.Key
}

type captureGateImpl struct {
	mu *sync.Mutex

	surface   Surface
	captured  bool
	mode      common.CursorMode
	toggleKey common.Key

	log *zap.Logger
}

var _ CaptureGate = &captureGateImpl{}

// NewCaptureGate creates a gate in the released state. Call Initialize to capture at startup.
//
// Parameters:
//   - surface: the window surface to drive, may be nil for headless runs
//   - options: functional options to configure the gate
//
// Returns:
//   - CaptureGate: the new gate
func NewCaptureGate(surface Surface, options ...CaptureGateOption) CaptureGate {
	g := &captureGateImpl{
		mu:        &sync.Mutex{},
		surface:   surface,
		mode:      common.CursorModeConfined,
		toggleKey: common.Key1,
		log:       zap.NewNop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *captureGateImpl) Initialize() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.surfaceReadyLocked("initialize") {
		return
	}
	g.applyLocked(true)
}

func (g *captureGateImpl) Toggle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.surfaceReadyLocked("toggle") {
		return
	}
	g.applyLocked(!g.captured)
}

func (g *captureGateImpl) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.captured
}

func (g *captureGateImpl) Available() bool {
	return g.surface != nil && g.surface.IsRunning()
}

func (g *captureGateImpl) ToggleKey() common.Key {
	return g.toggleKey
}

// surfaceReadyLocked logs a warning and returns false when there is no running surface.
// Caller must hold the mutex.
func (g *captureGateImpl) surfaceReadyLocked(op string) bool {
	if g.surface == nil || !g.surface.IsRunning() {
		g.log.Warn("primary window not found, cursor capture unchanged", zap.String("op", op))
		return false
	}
	return true
}

// applyLocked sets the logical flag and pushes the matching cursor state to the surface.
// Caller must hold the mutex.
func (g *captureGateImpl) applyLocked(captured bool) {
	g.captured = captured
	if captured {
		g.surface.SetCursorMode(g.mode)
		g.surface.SetCursorVisible(false)
	} else {
		g.surface.SetCursorMode(common.CursorModeFree)
		g.surface.SetCursorVisible(true)
	}
	g.log.Debug("cursor capture changed", zap.Bool("captured", captured))
}
