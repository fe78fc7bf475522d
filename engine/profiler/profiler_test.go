package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithInterval(time.Second),
		WithLogger(zap.New(core)),
		WithClock(func() time.Time { return clock }),
	)

	for range 99 {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick(0))
	}
	clock = clock.Add(10 * time.Millisecond)
	assert.True(t, p.Tick(7))

	assert.Equal(t, 1, logs.FilterMessage("profile").Len())
	assert.InDelta(t, 100, p.Last().TickRate, 0.01)
	assert.Equal(t, uint64(7), p.Last().DroppedMotion)
	assert.Greater(t, p.Last().SysMB, 0.0)
}
