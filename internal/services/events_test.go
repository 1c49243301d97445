package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubmanager_backend/internal/models"
)

func newTestEvent(t *testing.T, svc *EventService, name string, maxParticipants int) *models.Event {
	t.Helper()

	event := models.Event{
		Name:                name,
		Description:         "test event",
		Location:            "city arena",
		StartDate:           time.Now().Add(24 * time.Hour),
		EndDate:             time.Now().Add(26 * time.Hour),
		MaximumParticipants: maxParticipants,
	}
	require.NoError(t, svc.Create(&event))
	return &event
}

func TestRegisterPlayerCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db, models.EventKindTournament)

	const maxParticipants = 3
	event := newTestEvent(t, svc, "Summer Cup", maxParticipants)

	for i := 0; i < maxParticipants; i++ {
		player := newMember(t, db, models.UserKindPlayer, fmt.Sprintf("capplayer%d", i))
		ok, err := svc.RegisterPlayer(player.ID, event.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// The event is exactly full; one more distinct player is rejected.
	extra := newMember(t, db, models.UserKindPlayer, "capextra")
	_, err := svc.RegisterPlayer(extra.ID, event.ID)
	assert.ErrorIs(t, err, ErrMaximumParticipants)

	stored, err := svc.FindByID(event.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Players, maxParticipants)
}

func TestRegisterPlayerTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db, models.EventKindTraining)

	event := newTestEvent(t, svc, "Weekly Drills", 10)
	player := newMember(t, db, models.UserKindPlayer, "twiceplayer")

	ok, err := svc.RegisterPlayer(player.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Duplicate registration loses even though capacity remains.
	_, err = svc.RegisterPlayer(player.ID, event.ID)
	assert.ErrorIs(t, err, ErrPlayerAlreadyInEvent)

	stored, err := svc.FindByID(event.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Players, 1)
}

func TestRegisterPlayerNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db, models.EventKindTournament)

	event := newTestEvent(t, svc, "Lonely Cup", 5)
	player := newMember(t, db, models.UserKindPlayer, "nfplayer")

	tests := []struct {
		name     string
		playerID uint
		eventID  uint
	}{
		{name: "unknown player", playerID: 9999, eventID: event.ID},
		{name: "unknown event", playerID: player.ID, eventID: 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterPlayer(tt.playerID, tt.eventID)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestRegistrationIsKindScoped(t *testing.T) {
	db := newTestDB(t)
	tournaments := NewEventService(db, models.EventKindTournament)
	trainings := NewEventService(db, models.EventKindTraining)

	tournament := newTestEvent(t, tournaments, "Cross Cup", 5)
	player := newMember(t, db, models.UserKindPlayer, "kindplayer")

	// A tournament id does not resolve through the training service.
	_, err := trainings.RegisterPlayer(player.ID, tournament.ID)
	assert.True(t, IsNotFound(err))
}

func TestUpcomingSessions(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db, models.EventKindTraining)

	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)
	rule := "FREQ=WEEKLY;COUNT=8"
	event := models.Event{
		Name:                "Evening Practice",
		Description:         "weekly training",
		Location:            "field 2",
		StartDate:           start,
		EndDate:             start.Add(2 * time.Hour),
		MaximumParticipants: 20,
		RecurrenceRule:      &rule,
	}
	require.NoError(t, svc.Create(&event))

	sessions, err := svc.UpcomingSessions(event.ID, start, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, start, sessions[0])
	assert.Equal(t, start.AddDate(0, 0, 7), sessions[1])
	assert.Equal(t, start.AddDate(0, 0, 14), sessions[2])
}

func TestUpcomingSessionsWithoutRule(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db, models.EventKindTraining)

	event := newTestEvent(t, svc, "One Off", 10)

	sessions, err := svc.UpcomingSessions(event.ID, time.Now(), 5)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestEventUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db, models.EventKindTournament)

	event := newTestEvent(t, svc, "Mutable Cup", 5)
	player := newMember(t, db, models.UserKindPlayer, "mutplayer")
	_, err := svc.RegisterPlayer(player.ID, event.ID)
	require.NoError(t, err)

	updated, err := svc.Update(event.ID, &EventUpdateRequest{
		Name:                "Renamed Cup",
		Description:         "still a cup",
		Location:            "north arena",
		StartDate:           event.StartDate,
		EndDate:             event.EndDate,
		Visibility:          models.EventPrivate,
		MaximumParticipants: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Cup", updated.Name)
	assert.Equal(t, models.EventPrivate, updated.Visibility)

	require.NoError(t, svc.Delete(event.ID))
	_, err = svc.FindByID(event.ID)
	assert.True(t, IsNotFound(err))

	// The registration rows went with the event.
	var stored models.User
	require.NoError(t, db.Preload("Events").First(&stored, player.ID).Error)
	assert.Empty(t, stored.Events)
}
