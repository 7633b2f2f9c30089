package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	loginFn        func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	logoutFn       func(ctx context.Context, tokenID string, expiresAt time.Time) error
	profileFn      func(ctx context.Context, userID string) (*domain.UserProfile, error)
	beginFn        func(ctx context.Context, input ports.BeginStaffLoginInput) (*ports.StaffLoginChallenge, error)
	verifyFn       func(ctx context.Context, challengeID, accessCode string) (*ports.AuthResult, error)
	cancelFn       func(ctx context.Context, challengeID string) error
	assignRoleFn   func(ctx context.Context, actorID, targetID string, role domain.Role) error
	listProfilesFn func(ctx context.Context) ([]*domain.UserProfile, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) BeginStaffLogin(ctx context.Context, input ports.BeginStaffLoginInput) (*ports.StaffLoginChallenge, error) {
	return s.beginFn(ctx, input)
}

func (s *stubAuthService) VerifyStaffLogin(ctx context.Context, challengeID, accessCode string) (*ports.AuthResult, error) {
	return s.verifyFn(ctx, challengeID, accessCode)
}

func (s *stubAuthService) CancelStaffLogin(ctx context.Context, challengeID string) error {
	return s.cancelFn(ctx, challengeID)
}

func (s *stubAuthService) AssignRole(ctx context.Context, actorID, targetID string, role domain.Role) error {
	return s.assignRoleFn(ctx, actorID, targetID, role)
}

func (s *stubAuthService) ListProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	return s.listProfilesFn(ctx)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return &ports.AuthResult{
				Token: "token-1",
				User:  &domain.UserProfile{ID: "u1", Email: email, Role: domain.RoleClient},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token-1" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "client" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := jsonContext(e, http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"secret1"}`)
	err := h.Register(c)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_PassesErrorThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_UsesSessionClaims(t *testing.T) {
	e := newTestEcho()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	var gotTokenID string
	var gotExp time.Time
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			gotTokenID = tokenID
			gotExp = expiresAt
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/logout", "")
	c.Set("user_id", "u1")
	c.Set("token_id", "jti-1")
	c.Set("token_exp", exp)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotTokenID != "jti-1" || !gotExp.Equal(exp) {
		t.Fatalf("logout called with %s %v", gotTokenID, gotExp)
	}
}

func TestAuthHandler_Logout_MissingClaims(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := jsonContext(e, http.MethodPost, "/auth/logout", "")
	err := h.Logout(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Me_ReturnsStoredRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			// Stored role differs from the (stale) token claim.
			return &domain.UserProfile{ID: "u1", Email: "alice@example.com", Role: domain.RoleEmployee}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "u1")
	c.Set("role", "client")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "employee" {
		t.Fatalf("expected stored role employee, got %+v", resp)
	}
}

func TestAuthHandler_StaffChallenge_Opens(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		beginFn: func(ctx context.Context, input ports.BeginStaffLoginInput) (*ports.StaffLoginChallenge, error) {
			if input.Mode != ports.StaffModeRegister || input.Role != domain.RoleEmployee {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.StaffLoginChallenge{
				ID:    "ch-1",
				Mode:  input.Mode,
				State: ports.StateCode,
				Role:  input.Role,
				Email: input.Email,
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"email":"bob@example.com","password":"secret1","mode":"register","role":"employee"}`
	c, rec := jsonContext(e, http.MethodPost, "/auth/staff/challenge", body)
	if err := h.StaffChallenge(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["challenge_id"] != "ch-1" || resp["state"] != "code" {
		t.Fatalf("unexpected challenge payload: %+v", resp)
	}
}

func TestAuthHandler_StaffChallenge_RejectsUnknownMode(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	body := `{"email":"bob@example.com","password":"secret1","mode":"upgrade","role":"employee"}`
	c, _ := jsonContext(e, http.MethodPost, "/auth/staff/challenge", body)
	err := h.StaffChallenge(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestAuthHandler_StaffVerify_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, challengeID, accessCode string) (*ports.AuthResult, error) {
			if challengeID != "ch-1" || accessCode != "CODE" {
				t.Fatalf("unexpected args: %s %s", challengeID, accessCode)
			}
			return &ports.AuthResult{
				Token: "token-2",
				User:  &domain.UserProfile{ID: "u2", Email: "bob@example.com", Role: domain.RoleEmployee},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/staff/verify", `{"challenge_id":"ch-1","access_code":"CODE"}`)
	if err := h.StaffVerify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_StaffVerify_WrongCode(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, challengeID, accessCode string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidAccessCode
		},
	}
	h := NewAuthHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/auth/staff/verify", `{"challenge_id":"ch-1","access_code":"NOPE"}`)
	err := h.StaffVerify(c)
	if !errors.Is(err, domain.ErrInvalidAccessCode) {
		t.Fatalf("expected ErrInvalidAccessCode, got %v", err)
	}
}

func TestAuthHandler_StaffCancel(t *testing.T) {
	e := newTestEcho()
	var cancelled string
	stub := &stubAuthService{
		cancelFn: func(ctx context.Context, challengeID string) error {
			cancelled = challengeID
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodDelete, "/auth/staff/challenge/ch-9", "")
	c.SetParamNames("id")
	c.SetParamValues("ch-9")

	if err := h.StaffCancel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || cancelled != "ch-9" {
		t.Fatalf("cancel not applied: code=%d id=%s", rec.Code, cancelled)
	}
}
