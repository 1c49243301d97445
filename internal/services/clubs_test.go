package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubmanager_backend/internal/models"
)

func TestCreateClubAssignsAdministrator(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	admin := newMember(t, db, models.UserKindClubAdmin, "clubadmin1")
	club := models.Club{Name: "Atletico", Address: "Main st 1", PhoneNumber: "6011111111"}
	require.NoError(t, svc.Create(&club, admin.ID))

	var stored models.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	require.NotNil(t, stored.ClubID)
	assert.Equal(t, club.ID, *stored.ClubID)
}

func TestCreateClubAdminConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	admin := newMember(t, db, models.UserKindClubAdmin, "clubadmin2")
	first := models.Club{Name: "First", Address: "First st 1", PhoneNumber: "6012222222"}
	require.NoError(t, svc.Create(&first, admin.ID))

	second := models.Club{Name: "Second", Address: "Second st 1", PhoneNumber: "6013333333"}
	err := svc.Create(&second, admin.ID)
	assert.ErrorIs(t, err, ErrAdminAlreadyHasClub)
}

func TestCreateClubUnknownAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := models.Club{Name: "Orphan", Address: "Nowhere 1", PhoneNumber: "6014444444"}
	err := svc.Create(&club, 9999)
	assert.True(t, IsNotFound(err))
}

func TestLinkPlayerToClub(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := newTestClub(t, db, "Linkers")
	player := newMember(t, db, models.UserKindPlayer, "linkplayer")

	require.NoError(t, svc.LinkPlayerToClub(club.ID, player.ID))

	var stored models.User
	require.NoError(t, db.First(&stored, player.ID).Error)
	require.NotNil(t, stored.ClubID)
	assert.Equal(t, club.ID, *stored.ClubID)
}

func TestLinkPlayerToClubTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := newTestClub(t, db, "Dupes")
	player := newMember(t, db, models.UserKindPlayer, "dupeplayer")

	require.NoError(t, svc.LinkPlayerToClub(club.ID, player.ID))

	err := svc.LinkPlayerToClub(club.ID, player.ID)
	assert.ErrorIs(t, err, ErrClubAlreadyHasPlayer)

	// The original link survives untouched.
	var stored models.User
	require.NoError(t, db.First(&stored, player.ID).Error)
	require.NotNil(t, stored.ClubID)
	assert.Equal(t, club.ID, *stored.ClubID)
}

func TestLinkPlayerWithOtherClubConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	home := newTestClub(t, db, "Home")
	rival := newTestClub(t, db, "Rival")
	player := newMember(t, db, models.UserKindPlayer, "loyalplayer")

	require.NoError(t, svc.LinkPlayerToClub(home.ID, player.ID))

	err := svc.LinkPlayerToClub(rival.ID, player.ID)
	assert.ErrorIs(t, err, ErrPlayerAlreadyHasClub)

	// No partial state change: the player still belongs to home.
	var stored models.User
	require.NoError(t, db.First(&stored, player.ID).Error)
	require.NotNil(t, stored.ClubID)
	assert.Equal(t, home.ID, *stored.ClubID)
}

func TestLinkPlayerToClubNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := newTestClub(t, db, "Ghosts")
	player := newMember(t, db, models.UserKindPlayer, "ghostplayer")

	tests := []struct {
		name     string
		clubID   uint
		playerID uint
	}{
		{name: "unknown club", clubID: 9999, playerID: player.ID},
		{name: "unknown player", clubID: club.ID, playerID: 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.LinkPlayerToClub(tt.clubID, tt.playerID)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestDeleteClubDetachesMembers(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	admin := newMember(t, db, models.UserKindClubAdmin, "deladmin1")
	club := models.Club{Name: "Doomed", Address: "End st 1", PhoneNumber: "6015555555"}
	require.NoError(t, svc.Create(&club, admin.ID))

	coach := newMember(t, db, models.UserKindCoach, "delcoach1")
	require.NoError(t, db.Model(coach).Update("club_id", club.ID).Error)
	player := newMember(t, db, models.UserKindPlayer, "delplayer1")
	require.NoError(t, svc.LinkPlayerToClub(club.ID, player.ID))

	require.NoError(t, svc.Delete(club.ID))

	for _, id := range []uint{admin.ID, coach.ID, player.ID} {
		var stored models.User
		require.NoError(t, db.First(&stored, id).Error)
		assert.Nil(t, stored.ClubID)
	}

	_, err := svc.FindByID(club.ID)
	assert.True(t, IsNotFound(err))
}

// Full scenario: link, duplicate link, then club deletion leaves the
// player unaffiliated.
func TestClubMembershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := newTestClub(t, db, "Lifecycle")
	player := newMember(t, db, models.UserKindPlayer, "lifeplayer")

	require.NoError(t, svc.LinkPlayerToClub(club.ID, player.ID))
	assert.ErrorIs(t, svc.LinkPlayerToClub(club.ID, player.ID), ErrClubAlreadyHasPlayer)

	require.NoError(t, svc.Delete(club.ID))

	var stored models.User
	require.NoError(t, db.First(&stored, player.ID).Error)
	assert.Nil(t, stored.ClubID)
}
