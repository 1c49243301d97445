package models

import (
	"time"

	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// EventKind discriminates tournaments and trainings in the events table.
type EventKind string

const (
	EventKindTournament EventKind = "tournament"
	EventKindTraining   EventKind = "training"
)

// EventVisibility controls whether an event is listed publicly.
type EventVisibility string

const (
	EventPublic  EventVisibility = "PUBLIC"
	EventPrivate EventVisibility = "PRIVATE"
)

// Event is a tournament or training players can register in.
type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string    `gorm:"type:varchar(50);uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"type:varchar(50)" json:"location"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`

	Visibility          EventVisibility `gorm:"type:varchar(20);default:'PUBLIC'" json:"visibility"`
	MaximumParticipants int             `json:"maximum_participants"`
	Kind                EventKind       `gorm:"type:varchar(20);index" json:"kind"`

	// RecurrenceRule is an RFC 5545 RRULE string; only trainings use it.
	RecurrenceRule *string `gorm:"type:text" json:"recurrence_rule,omitempty"`

	Players []User `gorm:"many2many:player_events;" json:"players,omitempty"`
}

// UpcomingSessions expands the recurrence rule into the next session
// dates on or after from, capped at count. Events without a rule yield
// only their start date when it has not passed yet.
func (e *Event) UpcomingSessions(from time.Time, count int) []time.Time {
	if e.RecurrenceRule == nil || *e.RecurrenceRule == "" {
		if !e.StartDate.Before(from) {
			return []time.Time{e.StartDate}
		}
		return nil
	}

	rule, err := rrule.StrToRRule(*e.RecurrenceRule)
	if err != nil {
		return nil
	}
	rule.DTStart(e.StartDate)

	var sessions []time.Time
	next := rule.After(from, true)
	for !next.IsZero() && len(sessions) < count {
		sessions = append(sessions, next)
		next = rule.After(next, false)
	}
	return sessions
}
