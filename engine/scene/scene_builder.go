package scene

import (
	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithLogger sets the logger used for spawn diagnostics.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(log *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if log != nil {
			s.log = log
		}
	}
}

// Spawnable describes an entity to create when the scene is built.
type Spawnable struct {
	Role      Role
	Name      string
	Transform transform.Transform
}

// WithEntities spawns the given entities into the scene at construction.
// Entries with an unknown role are logged and skipped.
//
// Parameters:
//   - entities: the entities to spawn, in order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEntities(entities ...Spawnable) SceneBuilderOption {
	return func(s *scene) {
		for _, ent := range entities {
			if _, err := s.spawnLocked(ent.Role, ent.Name, ent.Transform); err != nil {
				s.log.Warn("entity skipped", zap.String("name", ent.Name), zap.Error(err))
			}
		}
	}
}
