package roles

// Role is the permission level carried in the token's role claim.
type Role string

const (
	Viewer  Role = "viewer"
	Staff   Role = "staff"
	Manager Role = "manager"
	Admin   Role = "admin"
)

type HierarchyLevel int

const (
	ViewerLevel  HierarchyLevel = 1
	StaffLevel   HierarchyLevel = 2
	ManagerLevel HierarchyLevel = 3
	AdminLevel   HierarchyLevel = 4
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Staff:
		return StaffLevel
	case Manager:
		return ManagerLevel
	case Admin:
		return AdminLevel
	default:
		return ViewerLevel
	}
}

// HasPermission reports whether r is at or above requiredRole.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Viewer, Staff, Manager, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
