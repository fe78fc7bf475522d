package window

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running atomic.Bool

	// Last cursor position for motion deltas; cleared whenever the cursor mode changes
	// so the warp into or out of disabled mode is not reported as motion.
	lastX, lastY float64
	hasLast      bool

	rawMotion bool
	closed    atomic.Bool
}

var _ platformWindow = &glfwWindow{}

// newGLFWWindow creates the GLFW window with input callbacks.
// Must be called from the thread that will run ProcessMessages.
//
// GLFW reference: https://www.glfw.org/docs/latest/input_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newGLFWWindow(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Nothing is drawn, so no client API context is created.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	gw := &glfwWindow{
		parent:    w,
		window:    win,
		rawMotion: glfw.RawMouseMotionSupported(),
	}
	gw.running.Store(true)

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running.Store(false)
			win.SetShouldClose(true)
			return
		}
		if key < 0 {
			return
		}
		switch action {
		case glfw.Press:
			w.keyDown(common.Key(key))
		case glfw.Release:
			w.keyUp(common.Key(key))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !gw.hasLast {
			gw.lastX, gw.lastY, gw.hasLast = xpos, ypos, true
			return
		}
		dx, dy := xpos-gw.lastX, ypos-gw.lastY
		gw.lastX, gw.lastY = xpos, ypos
		w.mouseMotion(float32(dx), float32(dy))
	})

	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		gw.hasLast = false
		w.focus(focused)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})

	// Stored dimensions follow the framebuffer, which may differ from the request on high-DPI displays.
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return gw, nil
}

func (gw *glfwWindow) isRunning() bool {
	if !gw.running.Load() || gw.closed.Load() {
		return false
	}
	return !gw.window.ShouldClose()
}

// requestClose relies on glfwSetWindowShouldClose being callable from any thread.
func (gw *glfwWindow) requestClose() {
	gw.window.SetShouldClose(true)
}

// processMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (gw *glfwWindow) processMessages() bool {
	glfw.PollEvents()
	return gw.isRunning()
}

// applyCursor maps the cursor mode onto GLFW input modes. GLFW 3.3 has no
// visible-but-confined mode, so both capture modes disable the cursor.
//
// Reference: https://www.glfw.org/docs/3.3/input_guide.html#cursor_mode
func (gw *glfwWindow) applyCursor(mode common.CursorMode, visible bool) {
	switch {
	case mode.Captured():
		gw.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	case !visible:
		gw.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	default:
		gw.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}

	if gw.rawMotion {
		raw := glfw.False
		if mode.Captured() {
			raw = glfw.True
		}
		gw.window.SetInputMode(glfw.RawMouseMotion, raw)
	}
	gw.hasLast = false
}

// close destroys the GLFW window and terminates the GLFW library.
func (gw *glfwWindow) close() error {
	if gw.closed.Swap(true) {
		return nil
	}
	gw.running.Store(false)
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}
