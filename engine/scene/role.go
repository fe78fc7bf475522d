package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role identifies which controller drives an entity. Exactly one entity per role is expected.
type Role uint8

const (
	RoleCamera Role = iota
	RolePrimaryActor
	RoleSecondaryActor
)

// Roles lists every role in resolution order.
var Roles = []Role{RoleCamera, RolePrimaryActor, RoleSecondaryActor}

func (r Role) String() string {
	switch r {
	case RoleCamera:
		return "camera"
	case RolePrimaryActor:
		return "primary_actor"
	case RoleSecondaryActor:
		return "secondary_actor"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole converts a configuration name into a Role. Matching is case-insensitive
// and accepts "-" or " " in place of "_".
//
// Parameters:
//   - name: the role name, e.g. "camera" or "primary_actor"
//
// Returns:
//   - Role: the parsed role
//   - error: non-nil if the name is unknown
func ParseRole(name string) (Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	for _, r := range Roles {
		if r.String() == n {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// Tag components. Each entity carries exactly one of them.
type (
	CameraTag         struct{}
	PrimaryActorTag   struct{}
	SecondaryActorTag struct{}
)

// Identity names an entity for logs and lookups.
type Identity struct {
	ID   uuid.UUID
	Name string
	Role Role
}
