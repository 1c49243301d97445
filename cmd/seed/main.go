package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubmanager_backend/internal/models"
	"clubmanager_backend/internal/services"
)

// Seeds the role directory and, when ADMIN_USERNAME/ADMIN_PASSWORD are
// set, a bootstrap administrator account. Safe to run repeatedly: every
// step is an upsert by name.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	if err := seedRoles(db); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}
	log.Println("Role directory seeded")

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping bootstrap admin")
		return
	}
	if err := seedAdmin(db, username, password); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Printf("Bootstrap admin %q ready", username)
}

func seedRoles(db *gorm.DB) error {
	roleAuthorities := map[string][]string{
		models.RoleAdmin:     {"users:read", "users:write", "clubs:read", "clubs:write", "events:read", "events:write"},
		models.RoleClubAdmin: {"clubs:read", "clubs:write", "events:read", "events:write"},
		models.RoleCoach:     {"events:read"},
		models.RolePlayer:    {"events:read"},
		models.RoleUser:      nil,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for roleName, authorityNames := range roleAuthorities {
			var authorities []models.Authority
			for _, name := range authorityNames {
				var authority models.Authority
				err := tx.Where(models.Authority{Name: name}).FirstOrCreate(&authority).Error
				if err != nil {
					return err
				}
				authorities = append(authorities, authority)
			}

			var role models.Role
			if err := tx.Where(models.Role{Name: roleName}).FirstOrCreate(&role).Error; err != nil {
				return err
			}
			if len(authorities) > 0 {
				if err := tx.Model(&role).Association("Authorities").Replace(authorities); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func seedAdmin(db *gorm.DB, username, password string) error {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var adminRole models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		NationalID:        "0000000000",
		Name:              "System",
		LastName:          "Administrator",
		PhoneNumber:       "0000000000",
		Email:             "admin@clubmanager.local",
		Username:          username,
		Password:          string(hash),
		Enabled:           true,
		Kind:              models.UserKindBase,
		AffiliationStatus: models.AffiliationActive,
		Roles:             []models.Role{adminRole},
	}
	return db.Create(&admin).Error
}
