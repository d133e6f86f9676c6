package authz

import (
	"testing"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMutate(t *testing.T) {
	adminGate := []string{types.RoleAdmin, types.RoleSuperAdmin}

	tests := []struct {
		name     string
		actor    Actor
		ownerID  int
		required []string
		want     error
	}{
		{
			name:     "role gate rejects plain user before ownership",
			actor:    Actor{ID: 6, Role: types.RoleUser},
			ownerID:  6, // actor owns the record, gate still denies
			required: adminGate,
			want:     ErrInsufficientRole,
		},
		{
			name:     "super_admin bypasses ownership",
			actor:    Actor{ID: 7, Role: types.RoleSuperAdmin},
			ownerID:  5,
			required: adminGate,
			want:     nil,
		},
		{
			name:     "admin owner passes gate and ownership",
			actor:    Actor{ID: 5, Role: types.RoleAdmin},
			ownerID:  5,
			required: adminGate,
			want:     nil,
		},
		{
			name:     "admin non-owner denied",
			actor:    Actor{ID: 6, Role: types.RoleAdmin},
			ownerID:  5,
			required: adminGate,
			want:     ErrNotOwner,
		},
		{
			name:     "no gate, owner allowed",
			actor:    Actor{ID: 5, Role: types.RoleUser},
			ownerID:  5,
			required: nil,
			want:     nil,
		},
		{
			name:     "no gate, non-owner denied",
			actor:    Actor{ID: 6, Role: types.RoleUser},
			ownerID:  5,
			required: nil,
			want:     ErrNotOwner,
		},
		{
			name:     "no gate, super_admin overrides ownership",
			actor:    Actor{ID: 9, Role: types.RoleSuperAdmin},
			ownerID:  5,
			required: nil,
			want:     nil,
		},
		{
			name:     "super_admin gate rejects admin",
			actor:    Actor{ID: 5, Role: types.RoleAdmin},
			ownerID:  5,
			required: []string{types.RoleSuperAdmin},
			want:     ErrInsufficientRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanMutate(tt.actor, tt.ownerID, tt.required)
			if tt.want == nil {
				require.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tt.want)
		})
	}
}

func TestCheckRole(t *testing.T) {
	actor := Actor{ID: 1, Role: types.RoleUser}

	assert.NoError(t, CheckRole(actor, nil))
	assert.NoError(t, CheckRole(actor, []string{types.RoleUser, types.RoleAdmin}))
	assert.ErrorIs(t, CheckRole(actor, Admins()), ErrInsufficientRole)
	assert.ErrorIs(t, CheckRole(actor, SuperAdminOnly()), ErrInsufficientRole)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(types.RoleAdmin))
	assert.True(t, IsAdmin(types.RoleSuperAdmin))
	assert.False(t, IsAdmin(types.RoleUser))
	assert.False(t, IsAdmin(""))
}
