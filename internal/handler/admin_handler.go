package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secalert/internal/model"
	"secalert/internal/service"
)

// AdminHandler handles super-admin account-creation endpoints.
type AdminHandler struct {
	authService service.AuthService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(authService service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// CreateAdmin godoc
// @Summary Create an admin account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} Response
// @Failure 403 {object} Response
// @Router /admin/create-admin [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	return h.createElevated(c, model.RoleAdmin, "Admin account created successfully")
}

// CreatePolice godoc
// @Summary Create a police account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} Response
// @Failure 403 {object} Response
// @Router /admin/create-police [post]
func (h *AdminHandler) CreatePolice(c echo.Context) error {
	return h.createElevated(c, model.RolePolice, "Police account created successfully")
}

// createElevated runs the shared creation path. The target role is fixed
// per endpoint; a role value in the request body has no effect.
func (h *AdminHandler) createElevated(c echo.Context, target model.Role, successMsg string) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.CreateElevated(c.Request().Context(), claims.Role, target, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, successMsg, echo.Map{"user": user})
}
