package authz

import "strings"

// RoleEquipmentManager is the normalized form of the only role allowed into the dashboard.
const RoleEquipmentManager = "equipmentmanager"

// NormalizeRole lowercases role and strips separators, so "EquipmentManager",
// "equipment_manager" and "Equipment Manager" compare equal.
func NormalizeRole(role string) string {
	var b strings.Builder
	b.Grow(len(role))
	for _, r := range strings.ToLower(strings.TrimSpace(role)) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HasRole reports whether the session role matches any of the wanted roles after normalization.
func (s Session) HasRole(wanted ...string) bool {
	actual := NormalizeRole(s.Role)
	if actual == "" {
		return false
	}
	for _, w := range wanted {
		if NormalizeRole(w) == actual {
			return true
		}
	}
	return false
}
