package models

import (
	"time"

	"gorm.io/gorm"
)

// Club groups an administrator, coaches and players. The member side of
// each relationship lives on the users table via ClubID, discriminated
// by UserKind.
type Club struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string `gorm:"type:varchar(50);uniqueIndex" json:"name"`
	Address     string `gorm:"type:varchar(255);uniqueIndex" json:"address"`
	PhoneNumber string `gorm:"type:varchar(10);uniqueIndex" json:"phone_number"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`

	Members []User `gorm:"foreignKey:ClubID" json:"members,omitempty"`
}

// MembersOfKind filters the loaded member list by kind.
func (c *Club) MembersOfKind(kind UserKind) []User {
	var out []User
	for _, m := range c.Members {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
