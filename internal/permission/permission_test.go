package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtside/hoa-court-booking/internal/model"
)

func activeProfile(role Role, userID, hoaID uint64) *model.Profile {
	return &model.Profile{
		ID:       userID,
		UserID:   userID,
		HOAID:    hoaID,
		Role:     string(role),
		IsActive: true,
	}
}

var allRoles = []Role{RoleMember, RoleHOAAdmin, RoleSuperAdmin}

var systemPerms = []Permission{
	ManageHOAs, ViewAllHOAs, ManageSystemUsers, ViewSystemReports, ManageSystemSettings,
}

var hoaPerms = []Permission{
	ManageHOASettings, ManageHOAUsers, AssignUserRoles, ViewHOAReports,
	ManageHOACourts, ManageHOAHours, ResetUserHours, ManageAllBookings,
	ViewAllBookings, ApproveBookings, ViewHOAMembers, InviteMembers,
	DeactivateMembers, ViewMemberDetails,
}

var selfPerms = []Permission{
	CreateBookings, ManageOwnBookings, ManageOwnProfile, ViewOwnProfile,
}

func TestHas_NilProfileDeniesEverything(t *testing.T) {
	for _, perm := range append(append(systemPerms, hoaPerms...), selfPerms...) {
		assert.False(t, Has(nil, perm), "nil profile must be denied %q", perm)
	}
}

func TestHas_InactiveProfileDeniesEverything(t *testing.T) {
	for _, role := range allRoles {
		p := activeProfile(role, 1, 1)
		p.IsActive = false
		for _, perm := range append(append(systemPerms, hoaPerms...), selfPerms...) {
			assert.False(t, Has(p, perm), "inactive %s must be denied %q", role, perm)
		}
	}
}

func TestHas_SystemTierIsSuperAdminOnly(t *testing.T) {
	for _, perm := range systemPerms {
		for _, role := range allRoles {
			got := Has(activeProfile(role, 1, 1), perm)
			assert.Equal(t, role == RoleSuperAdmin, got, "role=%s perm=%s", role, perm)
		}
	}
}

func TestHas_HOATierExcludesMembers(t *testing.T) {
	for _, perm := range hoaPerms {
		assert.True(t, Has(activeProfile(RoleSuperAdmin, 1, 1), perm))
		assert.True(t, Has(activeProfile(RoleHOAAdmin, 1, 1), perm))
		assert.False(t, Has(activeProfile(RoleMember, 1, 1), perm))
	}
}

func TestHas_SelfServiceTierForEveryActiveRole(t *testing.T) {
	for _, perm := range selfPerms {
		for _, role := range allRoles {
			assert.True(t, Has(activeProfile(role, 1, 1), perm), "role=%s perm=%s", role, perm)
		}
	}
}

func TestHas_UnknownTokenFailsClosed(t *testing.T) {
	for _, role := range allRoles {
		assert.False(t, Has(activeProfile(role, 1, 1), Permission("launch_missiles")))
		assert.False(t, Has(activeProfile(role, 1, 1), Permission("")))
	}
}

func TestCanManageUser(t *testing.T) {
	superA := activeProfile(RoleSuperAdmin, 1, 1)
	adminA := activeProfile(RoleHOAAdmin, 2, 1)
	memberA := activeProfile(RoleMember, 3, 1)
	memberA2 := activeProfile(RoleMember, 4, 1)
	memberB := activeProfile(RoleMember, 5, 2)
	superB := activeProfile(RoleSuperAdmin, 6, 2)

	// Super admin manages anyone, anywhere.
	assert.True(t, CanManageUser(superA, memberB))
	assert.True(t, CanManageUser(superA, superB))

	// HOA admin manages same-tenant non-super-admins only.
	assert.True(t, CanManageUser(adminA, memberA))
	assert.False(t, CanManageUser(adminA, memberB), "cross-tenant must be denied")
	assert.False(t, CanManageUser(adminA, superA), "hoa_admin must not manage a super_admin")

	// Members manage only themselves.
	assert.True(t, CanManageUser(memberA, memberA))
	assert.False(t, CanManageUser(memberA, memberA2))

	// Missing input denies.
	assert.False(t, CanManageUser(nil, memberA))
	assert.False(t, CanManageUser(memberA, nil))
}

func TestCanAccessHOA(t *testing.T) {
	assert.True(t, CanAccessHOA(activeProfile(RoleSuperAdmin, 1, 1), 99))
	assert.True(t, CanAccessHOA(activeProfile(RoleMember, 2, 7), 7))
	assert.False(t, CanAccessHOA(activeProfile(RoleMember, 2, 7), 8))
	assert.False(t, CanAccessHOA(activeProfile(RoleHOAAdmin, 3, 7), 8))
	assert.False(t, CanAccessHOA(nil, 7))
}

func TestAssignableRoles(t *testing.T) {
	assert.Equal(t, []Role{RoleSuperAdmin, RoleHOAAdmin, RoleMember},
		AssignableRoles(activeProfile(RoleSuperAdmin, 1, 1)))
	assert.Equal(t, []Role{RoleHOAAdmin, RoleMember},
		AssignableRoles(activeProfile(RoleHOAAdmin, 1, 1)))
	assert.Empty(t, AssignableRoles(activeProfile(RoleMember, 1, 1)))
	assert.Empty(t, AssignableRoles(nil))

	assert.NotContains(t, AssignableRoles(activeProfile(RoleHOAAdmin, 1, 1)), RoleSuperAdmin)
}

func TestCanAssignRole(t *testing.T) {
	admin := activeProfile(RoleHOAAdmin, 1, 1)
	assert.False(t, CanAssignRole(admin, RoleSuperAdmin), "escalation to super_admin must be rejected")
	assert.True(t, CanAssignRole(admin, RoleHOAAdmin))
	assert.True(t, CanAssignRole(admin, RoleMember))
	assert.False(t, CanAssignRole(activeProfile(RoleMember, 1, 1), RoleMember))
	assert.False(t, CanAssignRole(nil, RoleMember))
}

func TestRoleLevel(t *testing.T) {
	assert.Equal(t, 3, RoleLevel(RoleSuperAdmin))
	assert.Equal(t, 2, RoleLevel(RoleHOAAdmin))
	assert.Equal(t, 1, RoleLevel(RoleMember))
	assert.Equal(t, 0, RoleLevel(Role("intruder")))

	// Strictly increasing with privilege.
	assert.Greater(t, RoleLevel(RoleSuperAdmin), RoleLevel(RoleHOAAdmin))
	assert.Greater(t, RoleLevel(RoleHOAAdmin), RoleLevel(RoleMember))
}

func TestRoleValid(t *testing.T) {
	for _, r := range allRoles {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}
