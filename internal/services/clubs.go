package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"clubmanager_backend/internal/models"
)

// ClubUpdateRequest carries the club fields an update may change.
type ClubUpdateRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// ClubService manages clubs and the club-membership workflow.
type ClubService struct {
	db *gorm.DB
}

func NewClubService(db *gorm.DB) *ClubService {
	return &ClubService{db: db}
}

// Create persists a club and assigns it to the given administrator. An
// administrator may own at most one club.
func (s *ClubService) Create(club *models.Club, clubAdminID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		err := tx.Where("kind = ?", models.UserKindClubAdmin).First(&admin, clubAdminID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("club administrator", clubAdminID)
		}
		if err != nil {
			return err
		}

		if admin.ClubID != nil {
			return fmt.Errorf("%w (club ID: %d)", ErrAdminAlreadyHasClub, *admin.ClubID)
		}

		club.Enabled = true
		if err := tx.Create(club).Error; err != nil {
			return err
		}

		admin.ClubID = &club.ID
		return tx.Save(&admin).Error
	})
}

func (s *ClubService) FindByID(id uint) (*models.Club, error) {
	var club models.Club
	err := s.db.Preload("Members").First(&club, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("club", id)
	}
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *ClubService) FindByName(name string) (*models.Club, error) {
	var club models.Club
	err := s.db.Preload("Members").Where("name = ?", name).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("club", name)
	}
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *ClubService) FindAll() ([]models.Club, error) {
	var clubs []models.Club
	if err := s.db.Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

func (s *ClubService) FindAllPaginated(page int) ([]models.Club, int64, error) {
	var total int64
	if err := s.db.Model(&models.Club{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clubs []models.Club
	err := s.db.Limit(PageSize).Offset(page * PageSize).Order("id").Find(&clubs).Error
	if err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

func (s *ClubService) Update(id uint, req *ClubUpdateRequest) (*models.Club, error) {
	club, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	club.Name = req.Name
	club.Address = req.Address
	club.PhoneNumber = req.PhoneNumber
	club.Members = nil

	if err := s.db.Save(club).Error; err != nil {
		return nil, err
	}
	return club, nil
}

// Delete detaches the club's administrator, coaches and players before
// removing the row. A failure while detaching is wrapped so callers can
// tell it apart from a plain store error.
func (s *ClubService) Delete(id uint) error {
	club, err := s.FindByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("club_id = ?", club.ID).
			Update("club_id", nil).Error
		if err != nil {
			return &ClubDeletingError{Cause: err}
		}
		return tx.Delete(&models.Club{}, club.ID).Error
	})
}

// LinkPlayerToClub associates a player with a club. The club-side
// duplicate is checked before the player-side conflict, preserving the
// order callers depend on for error mapping. The whole check-then-act
// sequence runs in one transaction.
func (s *ClubService) LinkPlayerToClub(clubID, playerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var club models.Club
		err := tx.First(&club, clubID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("club", clubID)
		}
		if err != nil {
			return err
		}

		var player models.User
		err = tx.Where("kind = ?", models.UserKindPlayer).First(&player, playerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("player", playerID)
		}
		if err != nil {
			return err
		}

		if player.ClubID != nil && *player.ClubID == club.ID {
			return fmt.Errorf("%w (club ID: %d, player ID: %d)", ErrClubAlreadyHasPlayer, clubID, playerID)
		}
		if player.ClubID != nil {
			return fmt.Errorf("%w (player ID: %d)", ErrPlayerAlreadyHasClub, playerID)
		}

		player.ClubID = &club.ID
		return tx.Save(&player).Error
	})
}
