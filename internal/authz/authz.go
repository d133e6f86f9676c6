// Package authz holds the single ownership/role decision applied by every
// mutating guide, post, comment and user endpoint. Handlers load the actor
// and the target record, then ask CanMutate; nothing else in the codebase
// compares roles or owner ids.
package authz

import (
	"errors"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// ErrInsufficientRole is returned when the endpoint's role gate rejects
// the actor before ownership is even considered.
var ErrInsufficientRole = errors.New("insufficient role")

// ErrNotOwner is returned when the actor passed the role gate but neither
// owns the record nor holds the super_admin override.
var ErrNotOwner = errors.New("not owner")

// Actor is the authenticated identity a decision is made for. Role is
// read from storage at request time, never cached from the token.
type Actor struct {
	ID   int
	Role string
}

// CheckRole applies an endpoint's role gate. A nil or empty required set
// means the endpoint has no gate and any authenticated actor passes.
func CheckRole(actor Actor, required []string) error {
	if len(required) == 0 {
		return nil
	}
	for _, role := range required {
		if actor.Role == role {
			return nil
		}
	}
	return ErrInsufficientRole
}

// CanMutate decides whether actor may update or delete a record owned by
// ownerID, given the endpoint's required role set. The check runs in three
// tiers: role gate, super_admin override, ownership match.
func CanMutate(actor Actor, ownerID int, required []string) error {
	if err := CheckRole(actor, required); err != nil {
		return err
	}
	if actor.Role == types.RoleSuperAdmin {
		return nil
	}
	if actor.ID == ownerID {
		return nil
	}
	return ErrNotOwner
}

// IsAdmin reports whether role grants admin-level read visibility
// (drafts, archived posts, user listings).
func IsAdmin(role string) bool {
	return role == types.RoleAdmin || role == types.RoleSuperAdmin
}

// Admins is the role gate for endpoints restricted to admins and above.
func Admins() []string {
	return []string{types.RoleAdmin, types.RoleSuperAdmin}
}

// SuperAdminOnly is the role gate for endpoints restricted to super admins.
func SuperAdminOnly() []string {
	return []string{types.RoleSuperAdmin}
}
