package services

import (
	"errors"

	"gorm.io/gorm"

	"clubmanager_backend/internal/models"
)

// RoleService is the role directory: lookup of roles by name and
// resolution of the role set to persist on a user.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// FindByName returns the role with the given name, authorities loaded.
func (s *RoleService) FindByName(name string) (*models.Role, error) {
	var role models.Role
	err := s.db.Preload("Authorities").Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("role", name)
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Resolve derives the role set for a user being created. A non-empty
// requested name set is resolved against the directory, silently
// dropping names that do not exist. An empty set falls back to the
// generic default role plus the subtype default for the kind; a missing
// default role is a fatal configuration error.
//
// Note: the silent drop means a typo in a requested role name strips
// that permission without any signal to the caller.
func (s *RoleService) Resolve(requested []string, kind models.UserKind) ([]models.Role, error) {
	if len(requested) > 0 {
		return s.resolveRequested(requested)
	}

	roles := make([]models.Role, 0, 2)

	base, err := s.FindByName(models.RoleUser)
	if err != nil {
		return nil, &RoleRetrievalError{Msg: "error retrieving default role " + models.RoleUser, Cause: err}
	}
	roles = append(roles, *base)

	if name, ok := kind.DefaultRole(); ok {
		role, err := s.FindByName(name)
		if err != nil {
			return nil, &RoleRetrievalError{Msg: "error retrieving default role " + name, Cause: err}
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// ResolveRequested derives the role set for an update request. Unlike
// creation, an empty requested set is an error here: updates must state
// the roles they want to keep.
func (s *RoleService) ResolveRequested(requested []string) ([]models.Role, error) {
	if len(requested) == 0 {
		return nil, &RoleRetrievalError{Msg: "user roles must not be empty"}
	}
	return s.resolveRequested(requested)
}

func (s *RoleService) resolveRequested(requested []string) ([]models.Role, error) {
	var roles []models.Role
	for _, name := range requested {
		role, err := s.FindByName(name)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, &RoleRetrievalError{Msg: "error retrieving roles", Cause: err}
		}
		roles = append(roles, *role)
	}
	return roles, nil
}
