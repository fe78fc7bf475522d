package system

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-motion/engine/cursor"
	"github.com/Carmen-Shannon/oxy-motion/engine/look"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

var errNoWindow = errors.New("primary window not found")

// LookSystem applies pointer motion to the rotation of the entity carrying Role.
// When the window or the target is missing the pending motion is discarded.
type LookSystem struct {
	Scene      scene.Scene
	Controller look.LookController
	Gate       cursor.CaptureGate
	Role       scene.Role
	Log        *zap.Logger

	missing missingTarget
}

func (s *LookSystem) Initialize(w *ecs.World) {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
}

func (s *LookSystem) Update(w *ecs.World) {
	if s.Gate == nil || !s.Gate.Available() {
		s.missing.report(s.Log, s.Role.String(), errNoWindow)
		s.Controller.Discard()
		return
	}

	t, err := s.Scene.Resolve(s.Role)
	s.missing.report(s.Log, s.Role.String(), err)
	if err != nil {
		s.Controller.Discard()
		return
	}
	s.Controller.Update(s.Gate, t)
}

func (s *LookSystem) Finalize(w *ecs.World) {}
