package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickshop/shop-system/internal/api/metrics"
	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

// AuthHandler handles registration, login, logout and the two-phase staff
// access-code flow.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a client account and opens a session.
//
// @Summary      Register a client account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User})
}

// Login authenticates an email/password pair and returns a JWT whose role
// claim reflects the role document at this moment.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("none", "failure").Inc()
		return err
	}

	role := string(res.User.Role)
	if role == "" {
		role = "none"
	}
	metrics.LoginsTotal.WithLabelValues(role, "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// Logout revokes the presented token. The session is gone for every
// subsequent request carrying it.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claims.TokenID, claims.TokenExp); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "session terminated"})
}

// Me returns the consistent {user, role} snapshot for the session. The role
// comes from the stored profile, so a role change since login is visible
// here before the token is refreshed.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user, Role: user.Role})
}

// StaffChallenge runs the credentials step of the staff flow and returns a
// challenge waiting on the access code.
//
// @Summary      Begin a staff login or registration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      staffChallengeRequest  true  "Credentials step"
// @Success      200   {object}  staffChallengeResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/staff/challenge [post]
func (h *AuthHandler) StaffChallenge(c echo.Context) error {
	var req staffChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ch, err := h.authService.BeginStaffLogin(c.Request().Context(), ports.BeginStaffLoginInput{
		Email:    req.Email,
		Password: req.Password,
		Mode:     ports.StaffLoginMode(req.Mode),
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.StaffChallengesTotal.WithLabelValues("opened").Inc()
	return c.JSON(http.StatusOK, staffChallengeResponse{
		ChallengeID: ch.ID,
		State:       string(ch.State),
		Mode:        string(ch.Mode),
		Role:        string(ch.Role),
	})
}

// StaffVerify runs the code step. A wrong code leaves the challenge in
// place so the form can retry without redoing the credentials step.
//
// @Summary      Verify the staff access code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      staffVerifyRequest  true  "Code step"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/staff/verify [post]
func (h *AuthHandler) StaffVerify(c echo.Context) error {
	var req staffVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.VerifyStaffLogin(c.Request().Context(), req.ChallengeID, req.AccessCode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAccessCode) {
			metrics.StaffChallengesTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.StaffChallengesTotal.WithLabelValues("verified").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// StaffCancel discards a pending challenge (the form's "back" action).
func (h *AuthHandler) StaffCancel(c echo.Context) error {
	if err := h.authService.CancelStaffLogin(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "challenge discarded"})
}
