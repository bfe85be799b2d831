// Package permission implements the role-based access-control engine.
// Every query is a pure function over a profile snapshot and returns a
// boolean or a role list; nothing here touches the database or returns
// an error.  Missing, inactive or unrecognized input always evaluates
// to deny; callers translate a false result into an HTTP 403.
package permission

import "github.com/courtside/hoa-court-booking/internal/model"

// Role is the closed set of roles a profile can carry.
type Role string

const (
	RoleMember     Role = "member"
	RoleHOAAdmin   Role = "hoa_admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleHOAAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Permission is the closed set of permission tokens.  Tokens are
// partitioned into three tiers: system-wide (super admin only),
// HOA-level (hoa_admin and super_admin) and self-service (any active
// role).  A token outside the enumerated set is denied for everyone.
type Permission string

// System-wide permissions.
const (
	ManageHOAs           Permission = "manage_hoas"
	ViewAllHOAs          Permission = "view_all_hoas"
	ManageSystemUsers    Permission = "manage_system_users"
	ViewSystemReports    Permission = "view_system_reports"
	ManageSystemSettings Permission = "manage_system_settings"
)

// HOA-level permissions.
const (
	ManageHOASettings Permission = "manage_hoa_settings"
	ManageHOAUsers    Permission = "manage_hoa_users"
	AssignUserRoles   Permission = "assign_user_roles"
	ViewHOAReports    Permission = "view_hoa_reports"
	ManageHOACourts   Permission = "manage_hoa_courts"
	ManageHOAHours    Permission = "manage_hoa_hours"
	ResetUserHours    Permission = "reset_user_hours"
	ManageAllBookings Permission = "manage_all_bookings"
	ViewAllBookings   Permission = "view_all_bookings"
	ApproveBookings   Permission = "approve_bookings"
	ViewHOAMembers    Permission = "view_hoa_members"
	InviteMembers     Permission = "invite_members"
	DeactivateMembers Permission = "deactivate_members"
	ViewMemberDetails Permission = "view_member_details"
)

// Self-service permissions.
const (
	CreateBookings    Permission = "create_bookings"
	ManageOwnBookings Permission = "manage_own_bookings"
	ManageOwnProfile  Permission = "manage_own_profile"
	ViewOwnProfile    Permission = "view_own_profile"
)

// Has reports whether the profile may exercise the given permission.
// A nil or deactivated profile is denied everything.  The switch is the
// single source of truth for the tier partition; any token not listed
// falls through to deny.
func Has(p *model.Profile, perm Permission) bool {
	if p == nil || !p.IsActive {
		return false
	}
	role := Role(p.Role)
	switch perm {
	case ManageHOAs, ViewAllHOAs, ManageSystemUsers, ViewSystemReports, ManageSystemSettings:
		return role == RoleSuperAdmin
	case ManageHOASettings, ManageHOAUsers, AssignUserRoles, ViewHOAReports,
		ManageHOACourts, ManageHOAHours, ResetUserHours, ManageAllBookings,
		ViewAllBookings, ApproveBookings, ViewHOAMembers, InviteMembers,
		DeactivateMembers, ViewMemberDetails:
		return role == RoleSuperAdmin || role == RoleHOAAdmin
	case CreateBookings, ManageOwnBookings, ManageOwnProfile, ViewOwnProfile:
		return role == RoleSuperAdmin || role == RoleHOAAdmin || role == RoleMember
	default:
		return false
	}
}

// HasAny reports whether the profile holds at least one of the given
// permissions.
func HasAny(p *model.Profile, perms ...Permission) bool {
	for _, perm := range perms {
		if Has(p, perm) {
			return true
		}
	}
	return false
}

// CanManageUser reports whether actor may manage target.  Super admins
// manage anyone.  HOA admins manage members of their own HOA, but never
// a super admin.  Everyone else manages only themselves.
func CanManageUser(actor, target *model.Profile) bool {
	if actor == nil || target == nil {
		return false
	}
	switch Role(actor.Role) {
	case RoleSuperAdmin:
		return true
	case RoleHOAAdmin:
		return actor.HOAID == target.HOAID && Role(target.Role) != RoleSuperAdmin
	default:
		return actor.UserID == target.UserID
	}
}

// CanAccessHOA reports whether the profile may read or act on data
// belonging to the given HOA.  Only super admins have cross-tenant
// reach.
func CanAccessHOA(p *model.Profile, hoaID uint64) bool {
	if p == nil {
		return false
	}
	if Role(p.Role) == RoleSuperAdmin {
		return true
	}
	return p.HOAID == hoaID
}

// AssignableRoles returns the roles the actor may hand out, most
// privileged first.  This list, not RoleLevel, is authoritative for
// role-assignment decisions: an hoa_admin never sees super_admin here
// even though level comparison alone would allow managing a peer.
func AssignableRoles(actor *model.Profile) []Role {
	if actor == nil {
		return nil
	}
	switch Role(actor.Role) {
	case RoleSuperAdmin:
		return []Role{RoleSuperAdmin, RoleHOAAdmin, RoleMember}
	case RoleHOAAdmin:
		return []Role{RoleHOAAdmin, RoleMember}
	default:
		return nil
	}
}

// CanAssignRole reports whether the actor may assign the target role,
// by membership in AssignableRoles.
func CanAssignRole(actor *model.Profile, target Role) bool {
	for _, r := range AssignableRoles(actor) {
		if r == target {
			return true
		}
	}
	return false
}

// RoleLevel maps a role to its hierarchy level (member=1, hoa_admin=2,
// super_admin=3, unknown=0).  It exists for sorting and display only;
// authorization goes through the explicit checks above.
func RoleLevel(r Role) int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleHOAAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// DisplayName returns the human-readable name of a role.
func DisplayName(r Role) string {
	switch r {
	case RoleSuperAdmin:
		return "Super Administrator"
	case RoleHOAAdmin:
		return "HOA Administrator"
	case RoleMember:
		return "Member"
	default:
		return "Unknown"
	}
}
