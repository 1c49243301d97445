package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"clubmanager_backend/internal/models"
	"clubmanager_backend/internal/services"
)

// scheduleLength caps the number of sessions the schedule endpoint
// expands from a recurrence rule.
const scheduleLength = 10

// EventHandler serves one family of events; it is instantiated once for
// tournaments and once for trainings.
type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Create(c echo.Context) error {
	var event models.Event
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	errs := requireFields(map[string]string{
		"name":        event.Name,
		"description": event.Description,
		"location":    event.Location,
	})
	if errs == nil {
		errs = make(map[string]string)
	}
	if event.StartDate.IsZero() || event.EndDate.IsZero() {
		errs["dates"] = "dates field: start_date and end_date must be set"
	}
	if event.MaximumParticipants <= 0 {
		errs["maximum_participants"] = "maximum_participants field: must be positive"
	}
	if len(errs) > 0 {
		return validationError(c, errs)
	}

	if err := h.events.Create(&event); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ApiResponse{Data: event})
}

func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	event, err := h.events.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetAll(c echo.Context) error {
	events, err := h.events.FindAll()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetPage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	events, total, err := h.events.FindAllPaginated(page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(events, page, services.PageSize, total))
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.EventUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if errs := requireFields(map[string]string{
		"name":     req.Name,
		"location": req.Location,
	}); errs != nil {
		return validationError(c, errs)
	}

	event, err := h.events.Update(id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ApiResponse{Data: event})
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.events.Delete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSchedule expands a training's recurrence rule into its upcoming
// session dates.
func (h *EventHandler) GetSchedule(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	sessions, err := h.events.UpcomingSessions(id, time.Now(), scheduleLength)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"sessions": sessions})
}
