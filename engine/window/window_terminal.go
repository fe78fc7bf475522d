package window

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/gdamore/tcell/v2"
)

// terminalOptions configures the tcell backend.
type terminalOptions struct {
	// screen overrides the terminal screen, e.g. with a tcell.SimulationScreen.
	screen tcell.Screen

	// holdTimeout is how long a key counts as held after its last press or repeat.
	// Terminals report no key releases, so held keys are inferred from auto-repeat.
	holdTimeout time.Duration

	// cellWidth and cellHeight convert cell motion into pixel-like deltas.
	cellWidth  float32
	cellHeight float32

	// pollTimeout bounds how long one message loop iteration waits for events.
	pollTimeout time.Duration
}

func defaultTerminalOptions() terminalOptions {
	return terminalOptions{
		holdTimeout: 500 * time.Millisecond,
		cellWidth:   8,
		cellHeight:  16,
		pollTimeout: 10 * time.Millisecond,
	}
}

// terminalWindow holds the tcell-specific window state.
type terminalWindow struct {
	parent *engineWindow
	screen tcell.Screen
	opts   terminalOptions

	events    chan tcell.Event
	quit      chan struct{}
	running   atomic.Bool
	closeOnce sync.Once

	// held maps each emulated held key to the time it was last reported.
	held map[common.Key]time.Time

	lastX, lastY int
	hasLast      bool
}

var _ platformWindow = &terminalWindow{}

// newTerminalWindow initializes the terminal screen and starts the event reader.
func newTerminalWindow(w *engineWindow) (*terminalWindow, error) {
	screen := w.terminal.screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.SetTitle(w.title)
	w.width, w.height = screen.Size()

	tw := &terminalWindow{
		parent: w,
		screen: screen,
		opts:   w.terminal,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
		held:   make(map[common.Key]time.Time),
	}
	tw.running.Store(true)

	go tw.readEvents()
	return tw, nil
}

// readEvents forwards screen events until the screen is finalized.
func (tw *terminalWindow) readEvents() {
	for {
		ev := tw.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case tw.events <- ev:
		case <-tw.quit:
			return
		}
	}
}

func (tw *terminalWindow) isRunning() bool {
	return tw.running.Load()
}

// processMessages waits briefly for input, dispatches everything pending, then
// releases keys whose auto-repeat has stopped.
func (tw *terminalWindow) processMessages() bool {
	timer := time.NewTimer(tw.opts.pollTimeout)
	defer timer.Stop()

	select {
	case ev := <-tw.events:
		tw.handle(ev)
	drain:
		for {
			select {
			case ev := <-tw.events:
				tw.handle(ev)
			default:
				break drain
			}
		}
	case <-timer.C:
	}

	tw.releaseStale(time.Now())
	return tw.isRunning()
}

func (tw *terminalWindow) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			tw.running.Store(false)
			return
		}
		key := terminalKey(ev)
		if key == common.KeyNone {
			return
		}
		if _, held := tw.held[key]; !held {
			tw.parent.keyDown(key)
		}
		tw.held[key] = ev.When()

	case *tcell.EventMouse:
		x, y := ev.Position()
		if tw.hasLast {
			dx := float32(x-tw.lastX) * tw.opts.cellWidth
			dy := float32(y-tw.lastY) * tw.opts.cellHeight
			tw.parent.mouseMotion(dx, dy)
		}
		tw.lastX, tw.lastY, tw.hasLast = x, y, true

	case *tcell.EventResize:
		width, height := ev.Size()
		tw.parent.resized(width, height)
		tw.screen.Sync()
	}
}

// releaseStale emits key-up for keys that have not repeated within the hold timeout.
func (tw *terminalWindow) releaseStale(now time.Time) {
	for key, last := range tw.held {
		if now.Sub(last) >= tw.opts.holdTimeout {
			delete(tw.held, key)
			tw.parent.keyUp(key)
		}
	}
}

// applyCursor enables mouse motion reporting while captured. A terminal cannot
// confine the pointer, so Confined and Locked behave the same.
func (tw *terminalWindow) applyCursor(mode common.CursorMode, visible bool) {
	if mode.Captured() {
		tw.screen.EnableMouse(tcell.MouseMotionEvents)
	} else {
		tw.screen.DisableMouse()
	}
	if visible {
		width, height := tw.screen.Size()
		tw.screen.ShowCursor(width/2, height/2)
	} else {
		tw.screen.HideCursor()
	}
	tw.screen.Show()
	tw.hasLast = false
}

func (tw *terminalWindow) requestClose() {
	tw.running.Store(false)
}

func (tw *terminalWindow) close() error {
	tw.closeOnce.Do(func() {
		tw.running.Store(false)
		close(tw.quit)
		tw.screen.Fini()
	})
	return nil
}

// terminalKey maps a tcell key event onto the GLFW-numbered key set.
// Terminals cannot report bare modifier keys, so those stay unbound here.
func terminalKey(ev *tcell.EventKey) common.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return common.KeyUp
	case tcell.KeyDown:
		return common.KeyDown
	case tcell.KeyLeft:
		return common.KeyLeft
	case tcell.KeyRight:
		return common.KeyRight
	case tcell.KeyEnter:
		return common.KeyEnter
	case tcell.KeyTab:
		return common.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return common.KeyBackspace
	case tcell.KeyRune:
		r := unicode.ToUpper(ev.Rune())
		switch {
		case r == ' ':
			return common.KeySpace
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return common.Key(r)
		}
	}
	return common.KeyNone
}
