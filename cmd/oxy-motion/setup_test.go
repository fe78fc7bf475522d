package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine"
	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAssembleDefaultScene(t *testing.T) {
	eng := engine.NewEngine()
	a, err := assemble(eng, config.Default(), zap.NewNop())
	require.NoError(t, err)

	for _, role := range scene.Roles {
		assert.Equal(t, 1, a.scene.Count(role), role.String())
	}
	assert.False(t, a.gate.IsActive(), "no window to capture")

	cam, err := a.scene.Resolve(scene.RoleCamera)
	require.NoError(t, err)
	wantPitch, wantYaw, ok := common.AnglesFromLookAt(cam.Position, mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, wantPitch, a.look.Pitch(), 1e-5)
	assert.InDelta(t, wantYaw, a.look.Yaw(), 1e-5)
}

func TestAssembledSystemsMoveActors(t *testing.T) {
	eng := engine.NewEngine()
	a, err := assemble(eng, config.Default(), zap.NewNop())
	require.NoError(t, err)

	eng.Keys().KeyDown(common.KeyI)
	eng.Keys().KeyDown(common.KeyRight)
	eng.Tick(0.5)

	primary, err := a.scene.Resolve(scene.RolePrimaryActor)
	require.NoError(t, err)
	assert.InDelta(t, -2, primary.Position.X(), 1e-5)
	assert.InDelta(t, -1.5, primary.Position.Z(), 1e-5)

	secondary, err := a.scene.Resolve(scene.RoleSecondaryActor)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, secondary.Position.X(), 1e-5)

	cam, err := a.scene.Resolve(scene.RoleCamera)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0.037, 2.5, 8.372}, cam.Position)
}

func TestAssembleWarnsOnSharedKeys(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.Default()
	cfg.Controllers[1].Forward = "W"

	_, err := assemble(engine.NewEngine(), cfg, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("key moves several entities").Len())
}

func TestInitialAnglesWithoutEntity(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Entities = nil
	pitch, yaw := initialAngles(cfg, scene.RoleCamera)
	assert.Zero(t, pitch)
	assert.Zero(t, yaw)
}

func TestAssembleLogsLookTuning(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := config.Default()
	cfg.Look.Sensitivity = 0.0002

	eng := engine.NewEngine()
	a, err := assemble(eng, cfg, zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("look configured").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "camera", fields["role"])
	assert.InDelta(t, 0.0002, fields["sensitivity"], 1e-9)
	assert.InDelta(t, 720, fields["angular_scale"], 1e-6)
	assert.InDelta(t, 1.54, fields["pitch_limit"], 1e-6)

	eng.Tick(0.016)
	cam, err := a.scene.Resolve(scene.RoleCamera)
	require.NoError(t, err)
	assert.Equal(t, a.look.Rotation(), cam.Rotation, "the look system owns the camera rotation")
}
