package window

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithBackend selects the platform backend. Defaults to BackendGLFW.
//
// Parameters:
//   - backend: the backend to create
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithBackend(backend Backend) WindowBuilderOption {
	return func(w *engineWindow) {
		w.backend = backend
	}
}

// WithLogger sets the logger for cursor diagnostics.
func WithLogger(log *zap.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		if log != nil {
			w.log = log
		}
	}
}

// WithScreen replaces the terminal screen used by BackendTerminal.
// The screen is initialized by NewWindow.
//
// Parameters:
//   - screen: an uninitialized tcell screen
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithScreen(screen tcell.Screen) WindowBuilderOption {
	return func(w *engineWindow) {
		w.terminal.screen = screen
	}
}

// WithKeyHoldTimeout sets how long a terminal key stays held without a repeat.
// Should exceed the terminal's auto-repeat delay.
//
// Parameters:
//   - d: the hold timeout
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithKeyHoldTimeout(d time.Duration) WindowBuilderOption {
	return func(w *engineWindow) {
		if d > 0 {
			w.terminal.holdTimeout = d
		}
	}
}

// WithCellSize sets the pixel size of one terminal cell for motion deltas.
func WithCellSize(width, height float32) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 && height > 0 {
			w.terminal.cellWidth, w.terminal.cellHeight = width, height
		}
	}
}
