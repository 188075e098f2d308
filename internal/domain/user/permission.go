package user

type Permission string

const (
	// Self service
	PermissionAttendanceOwn Permission = "attendance.own"
	PermissionLeaveOwn      Permission = "leave.own"
	PermissionPayrollOwn    Permission = "payroll.own"
	PermissionProfileOwn    Permission = "profile.own"

	// Administration
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionLeaveViewAll      Permission = "leave.view_all"
	PermissionLeaveDecide       Permission = "leave.decide"
	PermissionPayrollManage     Permission = "payroll.manage"
	PermissionUserManage        Permission = "user.manage"
	PermissionDayCloseRun       Permission = "dayclose.run"
)

var selfService = []Permission{
	PermissionAttendanceOwn,
	PermissionLeaveOwn,
	PermissionPayrollOwn,
	PermissionProfileOwn,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: selfService,
	RoleAdmin: append(append([]Permission{}, selfService...),
		PermissionAttendanceViewAll,
		PermissionLeaveViewAll,
		PermissionLeaveDecide,
		PermissionPayrollManage,
		PermissionUserManage,
		PermissionDayCloseRun,
	),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
