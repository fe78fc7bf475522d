package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(options ...SceneBuilderOption) Scene {
	w := ecs.NewWorld()
	return NewScene("test", &w, options...)
}

func TestResolveUnique(t *testing.T) {
	s := newTestScene()
	_, err := s.Spawn(RoleCamera, "camera", transform.New(0, 2.5, 8))
	require.NoError(t, err)
	_, err = s.Spawn(RolePrimaryActor, "cube", transform.New(-2, 0.25, 0))
	require.NoError(t, err)

	cam, err := s.Resolve(RoleCamera)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 2.5, 8}, cam.Position)

	actor, err := s.Resolve(RolePrimaryActor)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-2, 0.25, 0}, actor.Position)
}

func TestResolveWritesThrough(t *testing.T) {
	s := newTestScene()
	_, err := s.Spawn(RoleSecondaryActor, "cube", transform.New(2, 0.25, 0))
	require.NoError(t, err)

	tr, err := s.Resolve(RoleSecondaryActor)
	require.NoError(t, err)
	tr.Translate(mgl32.Vec3{1, 0, 0})

	again, err := s.Resolve(RoleSecondaryActor)
	require.NoError(t, err)
	assert.Equal(t, float32(3), again.Position.X())
}

func TestResolveErrors(t *testing.T) {
	s := newTestScene()

	_, err := s.Resolve(RoleCamera)
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = s.Spawn(RoleCamera, "a", transform.New(0, 0, 0))
	require.NoError(t, err)
	_, err = s.Spawn(RoleCamera, "b", transform.New(0, 0, 0))
	require.NoError(t, err)

	_, err = s.Resolve(RoleCamera)
	assert.ErrorIs(t, err, ErrEntityAmbiguous)
	assert.Contains(t, err.Error(), "camera")

	_, err = s.Resolve(Role(42))
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = s.Spawn(Role(42), "x", transform.New(0, 0, 0))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestIdentityAndRemove(t *testing.T) {
	s := newTestScene()
	e, err := s.Spawn(RolePrimaryActor, "cube", transform.New(0, 0, 0))
	require.NoError(t, err)

	id, ok := s.Identity(e)
	require.True(t, ok)
	assert.Equal(t, "cube", id.Name)
	assert.Equal(t, RolePrimaryActor, id.Role)
	assert.NotEqual(t, uuid.Nil, id.ID)

	s.Remove(e)
	s.Remove(e)
	_, ok = s.Identity(e)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count(RolePrimaryActor))
}

func TestWithEntitiesAndClear(t *testing.T) {
	s := newTestScene(WithEntities(
		Spawnable{Role: RoleCamera, Name: "camera", Transform: transform.New(0, 0, 0)},
		Spawnable{Role: RolePrimaryActor, Name: "left", Transform: transform.New(-2, 0, 0)},
		Spawnable{Role: RoleSecondaryActor, Name: "right", Transform: transform.New(2, 0, 0)},
		Spawnable{Role: Role(9), Name: "bogus"},
	))

	for _, r := range Roles {
		assert.Equal(t, 1, s.Count(r), r.String())
	}

	s.Clear()
	for _, r := range Roles {
		assert.Equal(t, 0, s.Count(r), r.String())
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"camera", RoleCamera, false},
		{"Primary_Actor", RolePrimaryActor, false},
		{"secondary-actor", RoleSecondaryActor, false},
		{" primary actor ", RolePrimaryActor, false},
		{"npc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
