package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

var (
	// ErrEntityNotFound is returned by Resolve when no entity carries the role.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrEntityAmbiguous is returned by Resolve when more than one entity carries the role.
	ErrEntityAmbiguous = errors.New("entity ambiguous")
	// ErrUnknownRole is returned for a Role value outside the defined set.
	ErrUnknownRole = errors.New("unknown role")
)

// Scene is a role-tagged entity registry on top of an ECS world.
// All methods are safe for concurrent use; the world itself must not be
// structurally modified elsewhere while a Scene method runs.
type Scene interface {
	// Name returns the name of the scene.
	Name() string

	// World returns the backing ECS world.
	World() *ecs.World

	// Spawn creates an entity with a transform, an identity and the role's tag component.
	//
	// Parameters:
	//   - role: the role tag to attach
	//   - name: a human readable name, logged on resolution failures
	//   - t: the initial transform
	//
	// Returns:
	//   - ecs.Entity: the new entity
	//   - error: ErrUnknownRole if role is not defined
	Spawn(role Role, name string, t transform.Transform) (ecs.Entity, error)

	// Resolve returns the transform of the single entity carrying role.
	// The pointer stays valid until the next structural change to the world.
	//
	// Parameters:
	//   - role: the role to look up
	//
	// Returns:
	//   - *transform.Transform: the entity's transform
	//   - error: ErrEntityNotFound or ErrEntityAmbiguous wrapped with the role name
	Resolve(role Role) (*transform.Transform, error)

	// Identity returns the identity of an entity.
	//
	// Parameters:
	//   - e: the entity
	//
	// Returns:
	//   - Identity: the identity component
	//   - bool: false if the entity is dead or was not spawned by this scene
	Identity(e ecs.Entity) (Identity, bool)

	// Count returns the number of entities carrying role.
	Count(role Role) int

	// Remove despawns an entity. Dead entities are ignored.
	Remove(e ecs.Entity)

	// Clear despawns every entity spawned by this scene.
	Clear()
}

// roleIndex stores and queries the entities of one role.
type roleIndex interface {
	spawn(t *transform.Transform, id *Identity) ecs.Entity
	collect(dst []ecs.Entity) []ecs.Entity
}

type roleStore[T any] struct {
	mapper *ecs.Map3[transform.Transform, Identity, T]
	filter *ecs.Filter2[transform.Transform, Identity]
}

func newRoleStore[T any](w *ecs.World) *roleStore[T] {
	return &roleStore[T]{
		mapper: ecs.NewMap3[transform.Transform, Identity, T](w),
		filter: ecs.NewFilter2[transform.Transform, Identity](w).With(ecs.C[T]()),
	}
}

func (s *roleStore[T]) spawn(t *transform.Transform, id *Identity) ecs.Entity {
	var tag T
	return s.mapper.NewEntity(t, id, &tag)
}

func (s *roleStore[T]) collect(dst []ecs.Entity) []ecs.Entity {
	query := s.filter.Query()
	for query.Next() {
		dst = append(dst, query.Entity())
	}
	return dst
}

type scene struct {
	mu *sync.Mutex

	name  string
	world *ecs.World

	roles      map[Role]roleIndex
	transforms *ecs.Map1[transform.Transform]
	identities *ecs.Map1[Identity]

	log *zap.Logger
}

var _ Scene = &scene{}

// NewScene creates an empty scene on top of world.
//
// Parameters:
//   - name: the scene name
//   - world: the ECS world that stores the entities
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, world *ecs.World, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:    &sync.Mutex{},
		name:  name,
		world: world,
		roles: map[Role]roleIndex{
			RoleCamera:         newRoleStore[CameraTag](world),
			RolePrimaryActor:   newRoleStore[PrimaryActorTag](world),
			RoleSecondaryActor: newRoleStore[SecondaryActorTag](world),
		},
		transforms: ecs.NewMap1[transform.Transform](world),
		identities: ecs.NewMap1[Identity](world),
		log:        zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) World() *ecs.World {
	return s.world
}

func (s *scene) Spawn(role Role, name string, t transform.Transform) (ecs.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawnLocked(role, name, t)
}

func (s *scene) spawnLocked(role Role, name string, t transform.Transform) (ecs.Entity, error) {
	idx, ok := s.roles[role]
	if !ok {
		return ecs.Entity{}, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	id := Identity{ID: uuid.New(), Name: name, Role: role}
	e := idx.spawn(&t, &id)
	s.log.Debug("entity spawned",
		zap.String("role", role.String()),
		zap.String("name", name),
		zap.Stringer("id", id.ID),
	)
	return e, nil
}

func (s *scene) Resolve(role Role) (*transform.Transform, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.roles[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	matches := idx.collect(nil)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no %s", ErrEntityNotFound, role)
	case 1:
		return s.transforms.Get(matches[0]), nil
	default:
		names := make([]string, 0, len(matches))
		for _, e := range matches {
			names = append(names, s.identities.Get(e).Name)
		}
		return nil, fmt.Errorf("%w: %d entities tagged %s %v", ErrEntityAmbiguous, len(matches), role, names)
	}
}

func (s *scene) Identity(e ecs.Entity) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.world.Alive(e) || !s.identities.HasAll(e) {
		return Identity{}, false
	}
	return *s.identities.Get(e), true
}

func (s *scene) Count(role Role) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.roles[role]
	if !ok {
		return 0
	}
	return len(idx.collect(nil))
}

func (s *scene) Remove(e ecs.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(e)
}

func (s *scene) removeLocked(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.world.RemoveEntity(e)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []ecs.Entity
	for _, r := range Roles {
		all = s.roles[r].collect(all)
	}
	// Removal is a structural change, so it runs after every query has closed.
	for _, e := range all {
		s.removeLocked(e)
	}
}
