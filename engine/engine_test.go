package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/system"
	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordSystem captures the frame it sees on every update.
type recordSystem struct {
	frames []system.Frame
	frame  ecs.Resource[system.Frame]
	order  *[]string
	name   string
	ticks  atomic.Int64
	panics bool
}

func (s *recordSystem) Initialize(w *ecs.World) {
	s.frame = ecs.NewResource[system.Frame](w)
}

func (s *recordSystem) Update(w *ecs.World) {
	if s.panics {
		panic("boom")
	}
	s.frames = append(s.frames, *s.frame.Get())
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
	s.ticks.Add(1)
}

func (s *recordSystem) Finalize(w *ecs.World) {}

func TestTickPublishesFrame(t *testing.T) {
	e := NewEngine()
	rec := &recordSystem{}
	e.AddSystem(rec)

	e.Keys().KeyDown(common.KeyW)
	e.Tick(0.25)
	e.Tick(0.5)
	e.Keys().KeyUp(common.KeyW)
	e.Tick(0.5)

	require.Len(t, rec.frames, 3)
	assert.Equal(t, uint64(1), rec.frames[0].Tick)
	assert.Equal(t, float32(0.25), rec.frames[0].Delta)
	assert.True(t, rec.frames[0].Keys.JustPressed(common.KeyW))
	assert.True(t, rec.frames[1].Keys.Pressed(common.KeyW))
	assert.False(t, rec.frames[1].Keys.JustPressed(common.KeyW))
	assert.False(t, rec.frames[2].Keys.Pressed(common.KeyW))
}

func TestSystemsRunInInsertionOrder(t *testing.T) {
	var order []string
	e := NewEngine()
	for _, name := range []string{"capture", "look", "motion"} {
		e.AddSystem(&recordSystem{order: &order, name: name})
	}

	var callbacks int
	e.SetTickCallback(func(float32) { callbacks++ })
	e.Tick(0.016)
	e.Tick(0.016)

	assert.Equal(t, []string{"capture", "look", "motion", "capture", "look", "motion"}, order)
	assert.Equal(t, 2, callbacks)
}

func TestHeadlessRunUntilQuit(t *testing.T) {
	e := NewEngine(WithTickRate(500), WithProfiling(true))
	rec := &recordSystem{}
	e.AddSystem(rec)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool { return rec.ticks.Load() >= 5 }, 2*time.Second, time.Millisecond)
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestTickPanicStopsEngine(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	e := NewEngine(WithTickRate(500), WithLogger(zap.New(core)))
	e.AddSystem(&recordSystem{panics: true})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after a panicking tick")
	}
	assert.Equal(t, 1, logs.FilterMessage("tick goroutine recovered from panic").Len())
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(0))
	assert.Equal(t, 10*time.Millisecond, tickInterval(100))
	assert.Equal(t, time.Second/60, tickInterval(-5))
}
