package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"clubmanager_backend/internal/models"
)

// EventUpdateRequest carries the event fields an update may change.
type EventUpdateRequest struct {
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	Location            string                 `json:"location"`
	StartDate           time.Time              `json:"start_date"`
	EndDate             time.Time              `json:"end_date"`
	Visibility          models.EventVisibility `json:"visibility"`
	MaximumParticipants int                    `json:"maximum_participants"`
	RecurrenceRule      *string                `json:"recurrence_rule"`
}

// EventService manages one family of events (tournaments or trainings)
// including the player registration workflow.
type EventService struct {
	db   *gorm.DB
	kind models.EventKind
}

func NewEventService(db *gorm.DB, kind models.EventKind) *EventService {
	return &EventService{db: db, kind: kind}
}

func (s *EventService) scoped() *gorm.DB {
	return s.db.Where("kind = ?", s.kind)
}

func (s *EventService) resource() string {
	return string(s.kind) + " event"
}

func (s *EventService) Create(event *models.Event) error {
	event.Kind = s.kind
	if event.Visibility == "" {
		event.Visibility = models.EventPublic
	}
	return s.db.Create(event).Error
}

func (s *EventService) FindByID(id uint) (*models.Event, error) {
	var event models.Event
	err := s.scoped().Preload("Players").First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound(s.resource(), id)
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) FindAll() ([]models.Event, error) {
	var events []models.Event
	if err := s.scoped().Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) FindAllPaginated(page int) ([]models.Event, int64, error) {
	var total int64
	if err := s.scoped().Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := s.scoped().Limit(PageSize).Offset(page * PageSize).Order("id").Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *EventService) Update(id uint, req *EventUpdateRequest) (*models.Event, error) {
	event, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Location = req.Location
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.Visibility = req.Visibility
	event.MaximumParticipants = req.MaximumParticipants
	event.RecurrenceRule = req.RecurrenceRule
	event.Players = nil

	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(id uint) error {
	event, err := s.FindByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(event).Association("Players").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, event.ID).Error
	})
}

// RegisterPlayer registers a player in an event of this service's kind.
// The duplicate-registration check runs before the capacity check; the
// capacity limit is inclusive, so a full event rejects the next
// registrant even when the duplicate check passed. Both sides of the
// relationship are written within one transaction.
func (s *EventService) RegisterPlayer(playerID, eventID uint) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var player models.User
		err := tx.Preload("Events").Where("kind = ?", models.UserKindPlayer).First(&player, playerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("player", playerID)
		}
		if err != nil {
			return err
		}

		var event models.Event
		err = tx.Preload("Players").Where("kind = ?", s.kind).First(&event, eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound(s.resource(), eventID)
		}
		if err != nil {
			return err
		}

		if player.HasEvent(event.ID) {
			return fmt.Errorf("%w (player ID: %d, event ID: %d)", ErrPlayerAlreadyInEvent, playerID, eventID)
		}
		if len(event.Players) >= event.MaximumParticipants {
			return fmt.Errorf("%w (maximum: %d)", ErrMaximumParticipants, event.MaximumParticipants)
		}

		return tx.Model(&player).Association("Events").Append(&models.Event{ID: event.ID})
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpcomingSessions expands a training's recurrence rule into its next
// session dates starting at from.
func (s *EventService) UpcomingSessions(eventID uint, from time.Time, count int) ([]time.Time, error) {
	event, err := s.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	return event.UpcomingSessions(from, count), nil
}
