package system

import (
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

// Frame is the per-tick input shared by every system. The engine stores it as a
// world resource and rewrites it before each update.
type Frame struct {
	// Tick counts updates since start, beginning at 1.
	Tick uint64
	// Delta is the elapsed time since the previous tick, in seconds.
	Delta float32
	// Keys is the held-key snapshot taken at the start of the tick.
	Keys input.KeySnapshot
}

// frameOf returns the current frame, or an empty one when the resource is missing.
func frameOf(res ecs.Resource[Frame]) Frame {
	if !res.Has() {
		return Frame{}
	}
	return *res.Get()
}

// missingTarget logs a warning when a resolution failure first appears or changes,
// and an info line once it clears, so a persistently missing entity does not repeat every tick.
type missingTarget struct {
	last string
}

func (m *missingTarget) report(log *zap.Logger, role string, err error) {
	if err == nil {
		if m.last != "" {
			log.Info("target resolved again", zap.String("role", role))
			m.last = ""
		}
		return
	}
	if msg := err.Error(); msg != m.last {
		log.Warn("target unavailable, skipping", zap.String("role", role), zap.Error(err))
		m.last = msg
	}
}
