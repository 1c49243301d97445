package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"clubmanager_backend/internal/models"
	"clubmanager_backend/internal/services"
)

// UserHandler serves one family of user accounts. The same handler type
// backs the generic user routes and the club-administrator, coach and
// player routes, each bound to a kind-scoped service.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// createUserRequest shadows the model's write-only password so it can
// be bound from JSON.
type createUserRequest struct {
	models.User
	Password string `json:"password"`
}

// Create registers a new account in this handler's family.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	errs := requireFields(map[string]string{
		"national_id":  req.NationalID,
		"name":         req.Name,
		"last_name":    req.LastName,
		"phone_number": req.PhoneNumber,
		"email":        req.Email,
		"username":     req.Username,
		"password":     req.Password,
	})
	if errs == nil {
		errs = make(map[string]string)
	}
	if req.Username != "" && !validUsername(req.Username) {
		errs["username"] = "username field: must be 6-20 characters, letters and digits only"
	}
	if req.Password != "" && !validPassword(req.Password) {
		errs["password"] = "password field: must be at least 6 characters mixing letters and digits"
	}
	if len(errs) > 0 {
		return validationError(c, errs)
	}

	user := req.User
	user.Password = req.Password
	if err := h.users.Create(&user); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ApiResponse{Data: user})
}

func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.users.FindAll()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetPage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	users, total, err := h.users.FindAllPaginated(page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(users, page, services.PageSize, total))
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if errs := requireFields(map[string]string{
		"name":         req.Name,
		"last_name":    req.LastName,
		"phone_number": req.PhoneNumber,
		"email":        req.Email,
		"username":     req.Username,
	}); errs != nil {
		return validationError(c, errs)
	}

	user, err := h.users.Update(id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ApiResponse{Data: user})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type affiliationRequest struct {
	AffiliationStatus models.AffiliationStatus `json:"affiliation_status"`
}

// UpdateAffiliationStatus overwrites the affiliation status; a missing
// id yields 404 without a write.
func (h *UserHandler) UpdateAffiliationStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req affiliationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	switch req.AffiliationStatus {
	case models.AffiliationActive, models.AffiliationInactive, models.AffiliationSuspended:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid affiliation status")
	}

	updated, err := h.users.UpdateAffiliationStatus(id, req.AffiliationStatus)
	if err != nil {
		return err
	}
	if !updated {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusOK)
}
