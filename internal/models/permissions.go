package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Permission is a label granted to a user and checked against a required set
// for access decisions. The set is closed: anything outside the constants
// below is rejected at the boundary instead of stored as a free-form string.
type Permission string

const (
	PermissionUser             Permission = "USER"
	PermissionAdmin            Permission = "ADMIN"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// AllPermissions lists every valid permission label.
var AllPermissions = []Permission{
	PermissionUser,
	PermissionAdmin,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

// ParsePermission validates a raw label against the closed enumeration.
func ParsePermission(s string) (Permission, error) {
	for _, p := range AllPermissions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown permission %q", s)
}

// PermissionList is the set of permissions granted to a user. It is stored
// as a single space-joined column so the same model works on both SQLite
// and Postgres.
type PermissionList []Permission

// Has reports whether the list contains the given permission.
func (l PermissionList) Has(p Permission) bool {
	for _, have := range l {
		if have == p {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for database storage.
func (l PermissionList) Value() (driver.Value, error) {
	parts := make([]string, 0, len(l))
	for _, p := range l {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, " "), nil
}

// Scan implements sql.Scanner.
func (l *PermissionList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PermissionList", src)
	}

	*l = nil
	for _, part := range strings.Fields(raw) {
		*l = append(*l, Permission(part))
	}
	return nil
}
