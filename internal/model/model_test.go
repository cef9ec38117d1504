package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHasPermission(t *testing.T) {
	for _, p := range AllPermissions {
		assert.True(t, RoleAdmin.HasPermission(p), p)
		assert.False(t, RoleUser.HasPermission(p), p)
	}
	assert.False(t, Role("Guest").HasPermission(PermissionCatalogWrite))
}

func TestPermissionsFor(t *testing.T) {
	assert.Len(t, PermissionsFor(RoleAdmin), len(AllPermissions))
	assert.Contains(t, PermissionsFor(RoleAdmin), "catalog:write")
	assert.Empty(t, PermissionsFor(RoleUser))
}

func TestValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("admin").Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("Deleted").Valid())
}

func TestCourseSchedulePurchasable(t *testing.T) {
	tests := []struct {
		slots  int
		status Status
		want   bool
	}{
		{3, StatusActive, true},
		{0, StatusActive, false},
		{3, StatusInactive, false},
	}
	for _, tt := range tests {
		cs := CourseSchedule{AvailableSlot: tt.slots, Status: tt.status}
		assert.Equal(t, tt.want, cs.Purchasable(), "%d %s", tt.slots, tt.status)
	}
}
