package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// sessionClaims is the minimal session view handlers pull out of the echo
// context after the Auth middleware has run.
type sessionClaims struct {
	UserID   string
	Email    string
	Role     string
	TokenID  string
	TokenExp time.Time
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing user_id
// means the middleware never ran, which is a wiring bug surfaced as 401.
func ctxClaims(c echo.Context) (sessionClaims, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return sessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	tokenID, _ := c.Get("token_id").(string)
	tokenExp, _ := c.Get("token_exp").(time.Time)

	return sessionClaims{
		UserID:   userID,
		Email:    email,
		Role:     role,
		TokenID:  tokenID,
		TokenExp: tokenExp,
	}, nil
}
