package models

import (
	"time"

	"gorm.io/gorm"
)

// UserKind discriminates the member families that share the users table.
type UserKind string

const (
	UserKindBase      UserKind = "user"
	UserKindClubAdmin UserKind = "club_admin"
	UserKindCoach     UserKind = "coach"
	UserKindPlayer    UserKind = "player"
)

// DefaultRole returns the subtype default role assigned when a user is
// created without an explicit role selection. The base kind has no
// subtype role of its own.
func (k UserKind) DefaultRole() (string, bool) {
	switch k {
	case UserKindClubAdmin:
		return RoleClubAdmin, true
	case UserKindCoach:
		return RoleCoach, true
	case UserKindPlayer:
		return RolePlayer, true
	default:
		return "", false
	}
}

// AffiliationStatus is the club-membership lifecycle state of a user,
// independent of whether the account itself is enabled.
type AffiliationStatus string

const (
	AffiliationActive    AffiliationStatus = "ACTIVE"
	AffiliationInactive  AffiliationStatus = "INACTIVE"
	AffiliationSuspended AffiliationStatus = "SUSPENDED"
)

// User represents any account in the system: plain users, club
// administrators, coaches and players, discriminated by Kind.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	NationalID  string `gorm:"type:varchar(10);uniqueIndex" json:"national_id"`
	Name        string `gorm:"type:varchar(20)" json:"name"`
	LastName    string `gorm:"type:varchar(20)" json:"last_name"`
	PhoneNumber string `gorm:"type:varchar(10);uniqueIndex" json:"phone_number"`
	Email       string `gorm:"type:varchar(40);uniqueIndex" json:"email"`
	Username    string `gorm:"type:varchar(20);uniqueIndex" json:"username"`
	Password    string `gorm:"type:varchar(60)" json:"-"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`

	Kind              UserKind          `gorm:"type:varchar(20);default:'user';index" json:"kind"`
	AffiliationStatus AffiliationStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"affiliation_status"`

	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`

	// ClubID is the club a coach or player belongs to, or the club a
	// club administrator owns. Nil when unaffiliated.
	ClubID *uint `json:"club_id,omitempty"`
	Club   *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`

	// Events holds the registrations of a player.
	Events []Event `gorm:"many2many:player_events;" json:"events,omitempty"`
}

// RolesAndAuthorities returns the union of the user's role names and
// every authority name reachable from those roles.
func (u *User) RolesAndAuthorities() []string {
	return RolesAndAuthorities(u.Roles)
}

// HasEvent reports whether the player is already registered in the event.
func (u *User) HasEvent(eventID uint) bool {
	for _, e := range u.Events {
		if e.ID == eventID {
			return true
		}
	}
	return false
}
