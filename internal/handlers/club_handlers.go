package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"clubmanager_backend/internal/models"
	"clubmanager_backend/internal/services"
)

// ClubHandler serves the club routes, including creation through a club
// administrator and the player-to-club linking workflow.
type ClubHandler struct {
	clubs *services.ClubService
}

func NewClubHandler(clubs *services.ClubService) *ClubHandler {
	return &ClubHandler{clubs: clubs}
}

// clubResponse splits the flat member list into the three families.
type clubResponse struct {
	models.Club
	Administrator *models.User  `json:"administrator,omitempty"`
	Coaches       []models.User `json:"coaches"`
	Players       []models.User `json:"players"`
}

func newClubResponse(club *models.Club) clubResponse {
	resp := clubResponse{
		Club:    *club,
		Coaches: []models.User{},
		Players: []models.User{},
	}
	resp.Coaches = append(resp.Coaches, club.MembersOfKind(models.UserKindCoach)...)
	resp.Players = append(resp.Players, club.MembersOfKind(models.UserKindPlayer)...)
	if admins := club.MembersOfKind(models.UserKindClubAdmin); len(admins) > 0 {
		resp.Administrator = &admins[0]
	}
	resp.Club.Members = nil
	return resp
}

// Create persists a club owned by the administrator in the path.
func (h *ClubHandler) Create(c echo.Context) error {
	adminID, err := parseIDParam(c, "clubAdminId")
	if err != nil {
		return err
	}

	var club models.Club
	if err := c.Bind(&club); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if errs := requireFields(map[string]string{
		"name":         club.Name,
		"address":      club.Address,
		"phone_number": club.PhoneNumber,
	}); errs != nil {
		return validationError(c, errs)
	}

	if err := h.clubs.Create(&club, adminID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	club, err := h.clubs.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClubResponse(club))
}

func (h *ClubHandler) GetByName(c echo.Context) error {
	club, err := h.clubs.FindByName(c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClubResponse(club))
}

func (h *ClubHandler) GetAll(c echo.Context) error {
	clubs, err := h.clubs.FindAll()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) GetPage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	clubs, total, err := h.clubs.FindAllPaginated(page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(clubs, page, services.PageSize, total))
}

func (h *ClubHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.ClubUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if errs := requireFields(map[string]string{
		"name":         req.Name,
		"address":      req.Address,
		"phone_number": req.PhoneNumber,
	}); errs != nil {
		return validationError(c, errs)
	}

	club, err := h.clubs.Update(id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, club)
}

// Delete removes a club after detaching its administrator, coaches and
// players.
func (h *ClubHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.clubs.Delete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// LinkPlayerToClub associates a player with a club.
func (h *ClubHandler) LinkPlayerToClub(c echo.Context) error {
	clubID, err := parseIDParam(c, "clubId")
	if err != nil {
		return err
	}
	playerID, err := parseIDParam(c, "playerId")
	if err != nil {
		return err
	}

	if err := h.clubs.LinkPlayerToClub(clubID, playerID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
