package enums

import "fmt"

// SupplierRole ranks a supplier listing for an item.
type SupplierRole string

const (
	SupplierRolePrimary   SupplierRole = "primary"
	SupplierRoleSecondary SupplierRole = "secondary"
	SupplierRoleBackup    SupplierRole = "backup"
)

var validSupplierRoles = []SupplierRole{
	SupplierRolePrimary,
	SupplierRoleSecondary,
	SupplierRoleBackup,
}

// String implements fmt.Stringer.
func (s SupplierRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SupplierRole.
func (s SupplierRole) IsValid() bool {
	for _, candidate := range validSupplierRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSupplierRole converts raw input into a SupplierRole.
func ParseSupplierRole(value string) (SupplierRole, error) {
	for _, candidate := range validSupplierRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid supplier role %q", value)
}
