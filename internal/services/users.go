package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubmanager_backend/internal/models"
)

// PageSize is the fixed page length of paginated listings.
const PageSize = 5

// UserUpdateRequest carries the profile fields an update may change.
// Roles are requested by name and re-resolved against the directory.
type UserUpdateRequest struct {
	Name        string        `json:"name"`
	LastName    string        `json:"last_name"`
	PhoneNumber string        `json:"phone_number"`
	Email       string        `json:"email"`
	Username    string        `json:"username"`
	Roles       []models.Role `json:"roles"`
}

// RolesAndAuthorities flattens the requested roles the same way a full
// user object does.
func (r *UserUpdateRequest) RolesAndAuthorities() []string {
	return models.RolesAndAuthorities(r.Roles)
}

// UserService manages one family of user accounts. An empty kind spans
// the whole population; a concrete kind scopes every lookup to it.
type UserService struct {
	db    *gorm.DB
	roles *RoleService
	kind  models.UserKind
}

func NewUserService(db *gorm.DB, roles *RoleService, kind models.UserKind) *UserService {
	return &UserService{db: db, roles: roles, kind: kind}
}

func (s *UserService) scoped() *gorm.DB {
	if s.kind == "" {
		return s.db
	}
	return s.db.Where("kind = ?", s.kind)
}

func (s *UserService) resource() string {
	if s.kind == "" {
		return "user"
	}
	return string(s.kind)
}

// Create resolves the role set, hashes the password and persists the
// user. Requested role names come from the roles attached to the
// incoming user, flattened to names the way the resolver expects.
func (s *UserService) Create(user *models.User) error {
	if s.kind != "" {
		user.Kind = s.kind
	}
	if user.Kind == "" {
		user.Kind = models.UserKindBase
	}

	roles, err := s.roles.Resolve(models.RolesAndAuthorities(user.Roles), user.Kind)
	if err != nil {
		return err
	}
	user.Roles = roles

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)

	if user.AffiliationStatus == "" {
		user.AffiliationStatus = models.AffiliationActive
	}
	user.Enabled = true

	return s.db.Create(user).Error
}

func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := s.scoped().Preload("Roles.Authorities").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound(s.resource(), id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.scoped().Preload("Roles.Authorities").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound(s.resource(), username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	if err := s.scoped().Preload("Roles").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindAllPaginated returns the given zero-based page and the total
// count of the scoped population.
func (s *UserService) FindAllPaginated(page int) ([]models.User, int64, error) {
	var total int64
	if err := s.scoped().Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := s.scoped().Preload("Roles").
		Limit(PageSize).Offset(page * PageSize).
		Order("id").Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update overwrites the profile fields and re-resolves the role set
// from the request. Returns a not-found error when the id is absent.
func (s *UserService) Update(id uint, req *UserUpdateRequest) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.ResolveRequested(req.RolesAndAuthorities())
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	user.Email = req.Email
	user.Username = req.Username

	return user, s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Roles").Replace(roles); err != nil {
			return err
		}
		user.Roles = roles
		return tx.Save(user).Error
	})
}

// Delete removes the user after clearing its association rows.
func (s *UserService) Delete(id uint) error {
	user, err := s.FindByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Roles").Clear(); err != nil {
			return err
		}
		if err := tx.Model(user).Association("Events").Clear(); err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// UpdateAffiliationStatus overwrites the affiliation status. It is a
// flat setter: any transition is accepted, and a missing id reports
// false without touching the store.
func (s *UserService) UpdateAffiliationStatus(id uint, status models.AffiliationStatus) (bool, error) {
	user, err := s.FindByID(id)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	user.AffiliationStatus = status
	if err := s.db.Save(user).Error; err != nil {
		return false, err
	}
	return true, nil
}

// CheckPassword compares the stored bcrypt hash with a candidate.
func (s *UserService) CheckPassword(user *models.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}
