package cursor

import (
	"github.com/Carmen-Shannon/oxy-motion/common"
	"go.uber.org/zap"
)

// CaptureGateOption is a functional option for configuring a CaptureGate.
type CaptureGateOption func(*captureGateImpl)

// WithToggleKey sets the key whose press toggles capture.
//
// Parameters:
//   - key: the toggle key (default Key1)
//
// Returns:
//   - CaptureGateOption: functional option to set the toggle key
func WithToggleKey(key common.Key) CaptureGateOption {
	return func(g *captureGateImpl) {
		g.toggleKey = key
	}
}

// WithCaptureMode sets the mode applied when capturing. CursorModeFree is ignored.
//
// Parameters:
//   - mode: CursorModeConfined (default) or CursorModeLocked
//
// Returns:
//   - CaptureGateOption: functional option to set the capture mode
func WithCaptureMode(mode common.CursorMode) CaptureGateOption {
	return func(g *captureGateImpl) {
		if mode.Captured() {
			g.mode = mode
		}
	}
}

// WithLogger sets the logger used for missing-window warnings.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - CaptureGateOption: functional option to set the logger
func WithLogger(log *zap.Logger) CaptureGateOption {
	return func(g *captureGateImpl) {
		if log != nil {
			g.log = log
		}
	}
}
