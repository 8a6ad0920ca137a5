package models

// Role constants. The set is closed: an unrecognized role must not satisfy
// any permission check.
const (
	RoleViewer = "viewer"
	RolePoster = "poster"
	RoleAdmin  = "admin"
)

// AllRoles returns every defined role.
func AllRoles() []string {
	return []string{RoleViewer, RolePoster, RoleAdmin}
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleViewer, RolePoster, RoleAdmin:
		return true
	}
	return false
}

// RoleAllowed reports whether role is one of the accepted roles. An empty
// accepted list means any valid role passes.
func RoleAllowed(role string, accepted []string) bool {
	if !ValidRole(role) {
		return false
	}
	if len(accepted) == 0 {
		return true
	}
	for _, a := range accepted {
		if role == a {
			return true
		}
	}
	return false
}
