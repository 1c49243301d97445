package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clubmanager_backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Authority{},
		&models.Role{},
		&models.Club{},
		&models.User{},
		&models.Event{},
	))
	return db
}

// seedDirectory fills the role directory with the default roles plus an
// admin role carrying two authorities.
func seedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()

	read := models.Authority{Name: "users:read"}
	write := models.Authority{Name: "users:write"}
	require.NoError(t, db.Create(&read).Error)
	require.NoError(t, db.Create(&write).Error)

	roles := []models.Role{
		{Name: models.RoleAdmin, Authorities: []models.Authority{read, write}},
		{Name: models.RoleUser},
		{Name: models.RoleClubAdmin},
		{Name: models.RoleCoach},
		{Name: models.RolePlayer},
	}
	for i := range roles {
		require.NoError(t, db.Create(&roles[i]).Error)
	}
}

// tail keeps the last n characters so usernames differing only in a
// numeric suffix still produce distinct identity fields.
func tail(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// newMember inserts a user of the given kind with unique identity
// fields derived from the username.
func newMember(t *testing.T, db *gorm.DB, kind models.UserKind, username string) *models.User {
	t.Helper()

	user := models.User{
		NationalID:        tail(username, 10),
		Name:              "Test",
		LastName:          "Member",
		PhoneNumber:       "9" + tail(username, 9),
		Email:             username + "@club.test",
		Username:          username,
		Password:          "irrelevant",
		Enabled:           true,
		Kind:              kind,
		AffiliationStatus: models.AffiliationActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestClub(t *testing.T, db *gorm.DB, name string) *models.Club {
	t.Helper()

	club := models.Club{
		Name:        name,
		Address:     name + " street 1",
		PhoneNumber: fmt.Sprintf("%.10s", "8"+name+"000000000"),
		Enabled:     true,
	}
	require.NoError(t, db.Create(&club).Error)
	return &club
}
