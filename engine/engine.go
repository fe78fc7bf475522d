package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/profiler"
	"github.com/Carmen-Shannon/oxy-motion/engine/system"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
	"github.com/mlange-42/ark-tools/app"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Coordinates the fixed-rate tick goroutine with the window message loop.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	initOnce     sync.Once
	finalizeOnce sync.Once
	finalized    atomic.Bool

	window window.Window

	app    *app.App
	frame  *system.Frame
	keys   *input.KeyState
	motion *input.MotionStream

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	motionCapacity int

	log *zap.Logger
}

// Engine is the main entry point for the engine.
// It owns the input buffers, the ECS application and its ordered systems, and the tick loop.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// World returns the ECS world systems run against.
	//
	// Returns:
	//   - *ecs.World: the world
	World() *ecs.World

	// Keys returns the held-key state fed by the window.
	//
	// Returns:
	//   - *input.KeyState: the key state
	Keys() *input.KeyState

	// Motion returns the pointer motion stream fed by the window.
	// Each consumer must take its own reader with NewReader.
	//
	// Returns:
	//   - *input.MotionStream: the stream
	Motion() *input.MotionStream

	// AddSystem appends a system. Systems run once per tick in the order they were added.
	// Must be called before Run.
	//
	// Parameters:
	//   - sys: the system to add
	AddSystem(sys app.System)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers a function called after the systems each tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Tick runs a single update synchronously: snapshot input, run every system, then the tick callback.
	// Used by Run on the tick goroutine; may be called directly when driving the engine manually.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Tick(deltaTime float32)

	// Run starts the tick loop and blocks until the window closes or Quit is called.
	// With a window it must be called on the thread that created the window.
	Run()

	// Quit signals all engine goroutines to stop and closes the window.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is supplied its key, motion and focus callbacks are wired to the engine's input buffers.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		app:             app.New(1024),
		frame:           &system.Frame{},
		keys:            input.NewKeyState(),
		engineTickRate:  time.Second / 60,
		motionCapacity:  input.DefaultMotionCapacity,
		log:             zap.NewNop(),
	}

	for _, opt := range options {
		opt(e)
	}

	e.motion = input.NewMotionStream(e.motionCapacity)
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.log.Named("profiler")))
	ecs.AddResource(&e.app.World, e.frame)

	if e.window != nil {
		e.window.SetKeyDownCallback(e.keys.KeyDown)
		e.window.SetKeyUpCallback(e.keys.KeyUp)
		e.window.SetMouseMotionCallback(e.motion.Push)
		e.window.SetFocusCallback(func(focused bool) {
			if !focused {
				e.keys.ReleaseAll()
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) World() *ecs.World {
	return &e.app.World
}

func (e *engine) Keys() *input.KeyState {
	return e.keys
}

func (e *engine) Motion() *input.MotionStream {
	return e.motion
}

func (e *engine) AddSystem(sys app.System) {
	e.app.AddSystem(sys)
}

func (e *engine) Tick(deltaTime float32) {
	e.initialize()

	e.frame.Tick++
	e.frame.Delta = deltaTime
	e.frame.Keys = e.keys.Snapshot()

	e.app.Update()

	if e.tickCallback != nil {
		e.tickCallback(deltaTime)
	}
	if e.profilingEnabled {
		e.profiler.Tick(e.motion.Dropped())
	}
}

func (e *engine) Run() {
	e.initialize()
	e.running.Store(true)
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.running.Store(false)
	e.finalize()
}

// Quit stops the tick goroutine and asks the window to close. Repeated calls do nothing.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit and asks the
// window message loop to stop. Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		if e.window != nil && !e.finalized.Load() {
			e.window.RequestClose()
		}
	})
}

// initialize runs every system's Initialize once.
func (e *engine) initialize() {
	e.initOnce.Do(func() {
		e.app.Initialize()
		e.log.Debug("engine initialized", zap.Duration("tick", e.engineTickRate))
	})
}

// finalize runs every system's Finalize and releases the window.
func (e *engine) finalize() {
	e.finalizeOnce.Do(func() {
		e.finalized.Store(true)
		e.app.Finalize()
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				e.log.Warn("window close failed", zap.Error(err))
			}
		}
		e.log.Info("engine stopped", zap.Uint64("ticks", e.frame.Tick))
	})
}

// handle launches the engine and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Ticks at the configured rate and listens for dynamic rate changes via tickRateChannel.
// Recovers from panics inside a tick, logs them and signals quit.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("tick goroutine recovered from panic", zap.Any("panic", r), zap.Stack("stack"))
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.Tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit parks until quit is signalled.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler turns on periodic tick statistics.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler turns periodic tick statistics off.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	newRate := tickInterval(tps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called after the systems each tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// tickInterval converts a tick rate into a ticker period, defaulting to 60 per second.
func tickInterval(tps float64) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Duration(float64(time.Second) / tps)
}
