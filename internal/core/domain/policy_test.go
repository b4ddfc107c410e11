package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_Table(t *testing.T) {
	tests := []struct {
		action  Action
		allowed []Role
	}{
		{ActionReadAuditLog, []Role{RoleAdmin, RoleQCManager, RoleAuditor}},
		{ActionCreateSpecification, []Role{RoleAdmin, RoleQCManager}},
		{ActionCreateEquipment, []Role{RoleAdmin, RoleQCManager}},
		{ActionManageUsers, []Role{RoleAdmin}},
		{ActionCreateTest, Roles},
		{ActionUpdateTest, Roles},
		{ActionSignTest, Roles},
		{ActionCreateBatch, Roles},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			for _, role := range Roles {
				want := Deny
				for _, r := range tt.allowed {
					if r == role {
						want = Allow
					}
				}
				assert.Equal(t, want, Authorize(role, true, tt.action), "role %q", role)
			}
		})
	}
}

func TestAuthorize_InactiveAlwaysDenied(t *testing.T) {
	for _, role := range Roles {
		assert.Equal(t, Deny, Authorize(role, false, ActionCreateTest))
		assert.Equal(t, Deny, Authorize(role, false, ActionReadAuditLog))
	}
}

func TestAuthorize_UnknownRoleOrAction(t *testing.T) {
	assert.Equal(t, Deny, Authorize("Guest", true, ActionCreateTest))
	assert.Equal(t, Deny, Authorize(RoleAdmin, true, Action("drop_database")))
}

func TestActor_Can(t *testing.T) {
	analyst := ActorFrom(&User{ID: "u1", Username: "ana", Role: RoleQCAnalyst, IsActive: true}, "10.0.0.1")
	assert.True(t, analyst.Can(ActionSignTest))
	assert.False(t, analyst.Can(ActionReadAuditLog))
	assert.Equal(t, "10.0.0.1", analyst.Origin)
}
