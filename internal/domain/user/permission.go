package user

type Permission string

const (
	// Payroll
	PermissionPayrollProcess Permission = "payroll.process"
	PermissionPayrollView    Permission = "payroll.view"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Statutory rate tables
	PermissionStatutoryView   Permission = "statutory.view"
	PermissionStatutoryManage Permission = "statutory.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPayrollProcess,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionStatutoryView,
		PermissionStatutoryManage,
	},
	RoleHR: {
		PermissionPayrollProcess,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionStatutoryView,
	},
	RoleEmployee: {},
}

func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
