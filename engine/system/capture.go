package system

import (
	"github.com/Carmen-Shannon/oxy-motion/engine/cursor"
	"github.com/mlange-42/ark/ecs"
)

// CaptureToggleSystem flips the capture gate on the tick its toggle key goes down.
type CaptureToggleSystem struct {
	Gate cursor.CaptureGate

	frame ecs.Resource[Frame]
}

func (s *CaptureToggleSystem) Initialize(w *ecs.World) {
	s.frame = ecs.NewResource[Frame](w)
}

func (s *CaptureToggleSystem) Update(w *ecs.World) {
	if s.Gate == nil {
		return
	}
	if frameOf(s.frame).Keys.JustPressed(s.Gate.ToggleKey()) {
		s.Gate.Toggle()
	}
}

func (s *CaptureToggleSystem) Finalize(w *ecs.World) {}
