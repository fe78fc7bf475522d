package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"go.uber.org/zap"
)

// Backend selects the platform layer behind a Window.
type Backend string

const (
	// BackendGLFW opens a desktop window and reads raw mouse motion.
	BackendGLFW Backend = "glfw"
	// BackendTerminal drives the controllers from a terminal via tcell.
	BackendTerminal Backend = "terminal"
)

// ErrUnknownBackend is returned by NewWindow for a backend name it does not support.
var ErrUnknownBackend = errors.New("unknown window backend")

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(name); b {
	case BackendGLFW, BackendTerminal:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Window provides platform windowing, input events and cursor control.
// Wraps platform-specific window implementations with a common interface.
//
// Callbacks fire on the thread running ProcessMessages. Cursor changes may be
// requested from any goroutine; they are applied by the next ProcessMessages iteration.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events. Auto-repeat is not reported.
	//
	// Parameters:
	//   - callback: function receiving the key
	SetKeyDownCallback(callback func(key common.Key))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key
	SetKeyUpCallback(callback func(key common.Key))

	// SetMouseMotionCallback sets the callback for relative pointer motion.
	// Deltas are in pixels, +x right and +y down.
	//
	// Parameters:
	//   - callback: function receiving the motion since the previous event
	SetMouseMotionCallback(callback func(dx, dy float32))

	// SetFocusCallback sets the callback for focus changes. Losing focus releases all keys on the GLFW backend.
	//
	// Parameters:
	//   - callback: function receiving the new focus state
	SetFocusCallback(callback func(focused bool))

	// CursorMode returns the most recently requested cursor mode.
	CursorMode() common.CursorMode

	// SetCursorMode requests a cursor confinement mode.
	//
	// Parameters:
	//   - mode: the new mode
	SetCursorMode(mode common.CursorMode)

	// CursorVisible returns the most recently requested cursor visibility.
	CursorVisible() bool

	// SetCursorVisible requests the cursor to be shown or hidden.
	//
	// Parameters:
	//   - visible: true to show the cursor
	SetCursorVisible(visible bool)

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: false once the window has closed
	IsRunning() bool

	// RequestClose asks the message loop to stop. Safe to call from any goroutine;
	// resources are released by Close on the message loop thread.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages pumps platform events until the window closes,
	// applying pending cursor changes and calling the update callback every pass.
	ProcessMessages()

	// Width returns the current window client area width.
	//
	// Returns:
	//   - int: width in pixels (cells on the terminal backend)
	Width() int

	// Height returns the current window client area height.
	//
	// Returns:
	//   - int: height in pixels (cells on the terminal backend)
	Height() int

	// Backend returns the platform backend in use.
	Backend() Backend
}

// platformWindow is the per-backend half of a window.
type platformWindow interface {
	// isRunning reports whether the platform window is still open.
	isRunning() bool
	// processMessages dispatches pending events; false stops the message loop.
	processMessages() bool
	// requestClose marks the window as closing from any goroutine.
	requestClose()
	// applyCursor pushes the requested cursor state. Called on the message loop thread.
	applyCursor(mode common.CursorMode, visible bool)
	// close releases platform resources.
	close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	backend Backend

	// width and height are the current client area size.
	width  int
	height int

	// internalWindow holds the platform-specific window data.
	internalWindow platformWindow

	// Requested cursor state; cursorDirty marks it as not yet applied.
	cursorMode    common.CursorMode
	cursorVisible bool
	cursorDirty   bool

	onUpdate      func()
	onResize      func(width, height int)
	onKeyDown     func(key common.Key)
	onKeyUp       func(key common.Key)
	onMouseMotion func(dx, dy float32)
	onFocus       func(focused bool)

	terminal terminalOptions

	log *zap.Logger
}

var _ Window = &engineWindow{}

// NewWindow opens a window on the configured backend. Defaults to a 1280x720 GLFW window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: ErrUnknownBackend or the platform creation error
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:            &sync.Mutex{},
		title:         "oxy-motion",
		backend:       BackendGLFW,
		width:         1280,
		height:        720,
		cursorMode:    common.CursorModeFree,
		cursorVisible: true,
		terminal:      defaultTerminalOptions(),
		log:           zap.NewNop(),
	}
	for _, opt := range options {
		opt(w)
	}

	var err error
	switch w.backend {
	case BackendGLFW:
		w.internalWindow, err = newGLFWWindow(w)
	case BackendTerminal:
		w.internalWindow, err = newTerminalWindow(w)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, w.backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key common.Key)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(key common.Key)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseMotionCallback(callback func(dx, dy float32)) {
	w.onMouseMotion = callback
}

func (w *engineWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *engineWindow) CursorMode() common.CursorMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursorMode
}

func (w *engineWindow) SetCursorMode(mode common.CursorMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cursorMode != mode {
		w.cursorMode = mode
		w.cursorDirty = true
	}
}

func (w *engineWindow) CursorVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursorVisible
}

func (w *engineWindow) SetCursorVisible(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cursorVisible != visible {
		w.cursorVisible = visible
		w.cursorDirty = true
	}
}

func (w *engineWindow) IsRunning() bool {
	return w.internalWindow != nil && w.internalWindow.isRunning()
}

func (w *engineWindow) RequestClose() {
	if w.internalWindow != nil {
		w.internalWindow.requestClose()
	}
}

func (w *engineWindow) Close() error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	return w.internalWindow.close()
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := w.processOnce(); !succ {
			break
		}
		runtime.Gosched()
	}
}

// processOnce runs a single message loop iteration.
func (w *engineWindow) processOnce() bool {
	w.flushCursor()
	if !w.internalWindow.processMessages() {
		return false
	}
	if w.onUpdate != nil {
		w.onUpdate()
	}
	return true
}

// flushCursor applies a pending cursor request on the calling (message loop) thread.
func (w *engineWindow) flushCursor() {
	w.mu.Lock()
	if !w.cursorDirty {
		w.mu.Unlock()
		return
	}
	mode, visible := w.cursorMode, w.cursorVisible
	w.cursorDirty = false
	w.mu.Unlock()

	w.internalWindow.applyCursor(mode, visible)
	w.log.Debug("cursor applied", zap.Stringer("mode", mode), zap.Bool("visible", visible))
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) Backend() Backend {
	return w.backend
}

// resized records a new client size and notifies the resize callback.
func (w *engineWindow) resized(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) keyDown(key common.Key) {
	if key != common.KeyNone && w.onKeyDown != nil {
		w.onKeyDown(key)
	}
}

func (w *engineWindow) keyUp(key common.Key) {
	if key != common.KeyNone && w.onKeyUp != nil {
		w.onKeyUp(key)
	}
}

func (w *engineWindow) mouseMotion(dx, dy float32) {
	if (dx != 0 || dy != 0) && w.onMouseMotion != nil {
		w.onMouseMotion(dx, dy)
	}
}

func (w *engineWindow) focus(focused bool) {
	if w.onFocus != nil {
		w.onFocus(focused)
	}
}
