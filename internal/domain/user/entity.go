package user

type Role string

const (
	RoleOwner    Role = "owner"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleOwner, RoleHR, RoleEmployee:
		return true
	}
	return false
}
