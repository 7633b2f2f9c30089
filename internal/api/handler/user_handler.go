package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employee client"`
}

type userListResponse struct {
	Items []*domain.UserProfile `json:"items"`
}

// UserHandler handles the admin-only account administration endpoints.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List returns every account profile, sorted by email.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListProfiles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Items: users})
}

// AssignRole sets the role of another account. An admin cannot change its
// own role, which keeps at least the acting admin in place.
//
// @Summary      Assign a role to an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Account ID"
// @Param        body  body      assignRoleRequest  true  "Target role"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/role [patch]
func (h *UserHandler) AssignRole(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	targetID := c.Param("id")
	if err := h.authService.AssignRole(c.Request().Context(), claims.UserID, targetID, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}
