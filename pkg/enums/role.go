package enums

import "fmt"

// RoleName describes the allowed values for the `name` column in roles.
type RoleName string

const (
	RoleUser      RoleName = "USER"
	RoleModerator RoleName = "MODERATOR"
	RoleAdmin     RoleName = "ADMIN"
)

var validRoleNames = []RoleName{
	RoleUser,
	RoleModerator,
	RoleAdmin,
}

// IsValid reports whether the value matches the canonical role enum.
func (r RoleName) IsValid() bool {
	for _, candidate := range validRoleNames {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoleName converts the raw string to RoleName.
func ParseRoleName(value string) (RoleName, error) {
	for _, candidate := range validRoleNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role name %q", value)
}

// RoleNames returns the full set of canonical roles.
func RoleNames() []RoleName {
	out := make([]RoleName, len(validRoleNames))
	copy(out, validRoleNames)
	return out
}
