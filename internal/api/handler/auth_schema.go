package handler

import (
	"github.com/clickshop/shop-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type staffChallengeRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Mode     string `json:"mode"     validate:"required,oneof=login register"`
	Role     string `json:"role"     validate:"required,oneof=admin employee"`
}

type staffVerifyRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
	AccessCode  string `json:"access_code"  validate:"required"`
}

// authResponse is returned whenever a session is established.
type authResponse struct {
	Token string              `json:"token,omitempty"`
	User  *domain.UserProfile `json:"user,omitempty"`
}

// staffChallengeResponse acknowledges the credentials step: the flow is now
// waiting on the access code. The code itself is never echoed back.
type staffChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
	State       string `json:"state"`
	Mode        string `json:"mode"`
	Role        string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// sessionResponse is the consistent {user, role} snapshot for /auth/me.
type sessionResponse struct {
	User *domain.UserProfile `json:"user"`
	Role domain.Role         `json:"role"`
}
