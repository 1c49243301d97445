package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubmanager_backend/internal/services"
)

// PlayerHandler adds the event registration endpoints on top of the
// regular player account routes.
type PlayerHandler struct {
	*UserHandler
	tournaments *services.EventService
	trainings   *services.EventService
}

func NewPlayerHandler(users *services.UserService, tournaments, trainings *services.EventService) *PlayerHandler {
	return &PlayerHandler{
		UserHandler: NewUserHandler(users),
		tournaments: tournaments,
		trainings:   trainings,
	}
}

// RegisterInTournamentEvent registers the player in a tournament.
func (h *PlayerHandler) RegisterInTournamentEvent(c echo.Context) error {
	return h.register(c, h.tournaments, "tournamentEventId")
}

// RegisterInTrainingEvent registers the player in a training.
func (h *PlayerHandler) RegisterInTrainingEvent(c echo.Context) error {
	return h.register(c, h.trainings, "trainingEventId")
}

func (h *PlayerHandler) register(c echo.Context, events *services.EventService, eventParam string) error {
	playerID, err := parseIDParam(c, "playerId")
	if err != nil {
		return err
	}
	eventID, err := parseIDParam(c, eventParam)
	if err != nil {
		return err
	}

	if _, err := events.RegisterPlayer(playerID, eventID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "player registered successfully"})
}
