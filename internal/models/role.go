package models

import "sort"

// Role names the directory must contain for default assignment to work.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleUser      = "ROLE_USER"
	RoleClubAdmin = "ROLE_CLUB_ADMIN"
	RoleCoach     = "ROLE_COACH"
	RolePlayer    = "ROLE_PLAYER"
)

// Role is a named permission bundle composed of authorities.
type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex" json:"name"`

	Authorities []Authority `gorm:"many2many:role_authorities;" json:"authorities,omitempty"`
}

// Authority is an atomic named permission.
type Authority struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex" json:"name"`
}

// RolesAndAuthorities flattens a role set into the union of role names
// and the names of every authority reachable from them. The result is
// deduplicated and sorted.
func RolesAndAuthorities(roles []Role) []string {
	seen := make(map[string]struct{})
	for _, role := range roles {
		seen[role.Name] = struct{}{}
		for _, authority := range role.Authorities {
			seen[authority.Name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
