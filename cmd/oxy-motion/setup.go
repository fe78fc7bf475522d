package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine"
	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/cursor"
	"github.com/Carmen-Shannon/oxy-motion/engine/look"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/system"
	"go.uber.org/zap"
)

// assembly is everything built from a config on top of an engine.
type assembly struct {
	scene scene.Scene
	gate  cursor.CaptureGate
	look  look.LookController
}

// assemble spawns the configured scene and registers the capture toggle, look and motion
// systems on eng, in that order. The capture gate is initialized last so the cursor starts captured.
//
// Parameters:
//   - eng: the engine to register systems on; its window may be nil
//   - cfg: a validated configuration
//   - log: the root logger
//
// Returns:
//   - assembly: the scene, gate and look controller
//   - error: error if a controller cannot be built
func assemble(eng engine.Engine, cfg *config.Config, log *zap.Logger) (assembly, error) {
	// ── Scene ───────────────────────────────────────────────────────────
	spawnables := make([]scene.Spawnable, 0, len(cfg.Scene.Entities))
	for _, ec := range cfg.Scene.Entities {
		role, err := scene.ParseRole(ec.Role)
		if err != nil {
			return assembly{}, fmt.Errorf("scene entity %q: %w", ec.Name, err)
		}
		spawnables = append(spawnables, scene.Spawnable{Role: role, Name: ec.Name, Transform: ec.Transform()})
	}
	sc := scene.NewScene(cfg.Scene.Name, eng.World(),
		scene.WithLogger(log.Named("scene")),
		scene.WithEntities(spawnables...),
	)

	// ── Capture Gate ────────────────────────────────────────────────────
	var surface cursor.Surface
	if w := eng.Window(); w != nil {
		surface = w
	}
	toggle, err := cfg.Look.Toggle()
	if err != nil {
		return assembly{}, fmt.Errorf("toggle key: %w", err)
	}
	mode, err := cfg.Look.Mode()
	if err != nil {
		return assembly{}, fmt.Errorf("capture mode: %w", err)
	}
	gate := cursor.NewCaptureGate(surface,
		cursor.WithToggleKey(toggle),
		cursor.WithCaptureMode(mode),
		cursor.WithLogger(log.Named("cursor")),
	)

	// ── Look ────────────────────────────────────────────────────────────
	lookRole, err := scene.ParseRole(cfg.Look.Role)
	if err != nil {
		return assembly{}, fmt.Errorf("look role: %w", err)
	}
	pitch, yaw := initialAngles(cfg, lookRole)
	lc, err := look.NewLookController(eng.Motion().NewReader(),
		look.WithSensitivity(cfg.Look.Sensitivity),
		look.WithAngularScale(cfg.Look.AngularScale),
		look.WithPitchLimit(cfg.Look.PitchLimit),
		look.WithAngles(pitch, yaw),
	)
	if err != nil {
		return assembly{}, err
	}
	log.Info("look configured",
		zap.Stringer("role", lookRole),
		zap.Float32("sensitivity", lc.Sensitivity()),
		zap.Float32("angular_scale", lc.AngularScale()),
		zap.Float32("pitch_limit", lc.PitchLimit()),
		zap.Float32("pitch", lc.Pitch()),
		zap.Float32("yaw", lc.Yaw()),
	)

	// ── Motion ──────────────────────────────────────────────────────────
	motionLog := log.Named("motion")
	bindings := make([]*system.Binding, 0, len(cfg.Controllers))
	for _, cc := range cfg.Controllers {
		role, err := scene.ParseRole(cc.Role)
		if err != nil {
			return assembly{}, fmt.Errorf("controller: %w", err)
		}
		profile, err := cc.Profile()
		if err != nil {
			return assembly{}, fmt.Errorf("controller %s: %w", role, err)
		}
		mc, err := motion.NewController(profile, motion.WithLogger(motionLog.With(zap.Stringer("role", role))))
		if err != nil {
			return assembly{}, fmt.Errorf("controller %s: %w", role, err)
		}
		bindings = append(bindings, &system.Binding{Role: role, Controller: mc})
	}
	for _, o := range cfg.Overlaps() {
		log.Warn("key moves several entities", zap.Stringer("key", o.Key), zap.Strings("roles", o.Roles))
	}

	eng.AddSystem(&system.CaptureToggleSystem{Gate: gate})
	eng.AddSystem(&system.LookSystem{
		Scene:      sc,
		Controller: lc,
		Gate:       gate,
		Role:       lookRole,
		Log:        log.Named("look"),
	})
	eng.AddSystem(&system.MotionSystem{
		Scene:    sc,
		Bindings: bindings,
		Workers:  cfg.Engine.MotionWorkers,
		Log:      motionLog,
	})

	gate.Initialize()

	return assembly{scene: sc, gate: gate, look: lc}, nil
}

// initialAngles seeds the look controller from the first entity of role so the first
// look update does not snap the view.
func initialAngles(cfg *config.Config, role scene.Role) (pitch, yaw float32) {
	for _, ec := range cfg.Scene.Entities {
		if r, err := scene.ParseRole(ec.Role); err != nil || r != role {
			continue
		}
		t := ec.Transform()
		if p, y, ok := common.AnglesFromDirection(t.Forward()); ok {
			return p, y
		}
		return 0, 0
	}
	return 0, 0
}
