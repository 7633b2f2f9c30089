package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
)

// ChallengeStore abstracts the short-lived staff challenge storage (Redis).
// Entries expire on their own; Delete removes one eagerly.
type ChallengeStore interface {
	Save(ctx context.Context, ch *ports.StaffLoginChallenge) error
	Find(ctx context.Context, id string) (*ports.StaffLoginChallenge, error)
	Delete(ctx context.Context, id string) error
}

// TokenRevoker abstracts the logout denylist (Redis).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
}

// AccessCodes holds the server-side secrets gating privileged role
// self-assignment. They are configured per deployment and never sent to
// clients.
type AccessCodes struct {
	Admin    string
	Employee string
}

// For returns the code expected for the given role, or "" for roles that are
// not code-gated.
func (c AccessCodes) For(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return c.Admin
	case domain.RoleEmployee:
		return c.Employee
	default:
		return ""
	}
}

// AuthService implements registration, login, logout and the two-phase
// staff access-code flow.
type AuthService struct {
	users      ports.UserRepository
	challenges ChallengeStore
	revoker    TokenRevoker
	jwtSecret  string
	tokenTTL   time.Duration
	codes      AccessCodes
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	challenges ChallengeStore,
	revoker TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	codes AccessCodes,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		challenges: challenges,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		codes:      codes,
		log:        log,
	}
}

// Register creates a client account with its role document and opens a
// session. Privileged roles go through the staff flow instead.
func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.UserProfile{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("client account registered")
	return s.openSession(user)
}

// Login authenticates an email/password pair. The role claim reflects the
// role document at this moment; an account without one gets an empty role
// claim and is rejected downstream by the gate middleware.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Role == domain.RoleNone {
		s.log.Warn().Str("user_id", user.ID).Msg("login without role document, degrading to no role")
	}

	return s.openSession(user)
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, expiresAt)
}

// Profile returns the stored profile for the given account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.users.FindByID(ctx, userID)
}

// BeginStaffLogin runs the credentials step of the staff flow.
//
// In login mode the credentials must verify before a challenge is issued. In
// register mode no account exists yet: the challenge stores the email and
// password hash so the account can be created once the access code checks
// out (deferred creation).
func (s *AuthService) BeginStaffLogin(ctx context.Context, input ports.BeginStaffLoginInput) (*ports.StaffLoginChallenge, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.PrivilegedRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if input.Mode != ports.StaffModeLogin && input.Mode != ports.StaffModeRegister {
		return nil, domain.ErrInvalidCredentials
	}

	ch := &ports.StaffLoginChallenge{
		ID:        uuid.NewString(),
		Mode:      input.Mode,
		State:     ports.StateCode,
		Role:      input.Role,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	switch input.Mode {
	case ports.StaffModeLogin:
		user, err := s.users.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrInvalidCredentials
			}
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		ch.UserID = user.ID

	case ports.StaffModeRegister:
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		ch.PasswordHash = string(hash)
	}

	if err := s.challenges.Save(ctx, ch); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("challenge_id", ch.ID).
		Str("mode", string(ch.Mode)).
		Str("role", string(ch.Role)).
		Msg("staff challenge opened")
	return ch, nil
}

// VerifyStaffLogin runs the code step of the staff flow. A wrong code leaves
// the challenge in place so the caller can retry; a duplicate email at
// deferred account creation discards it, forcing a return to the
// credentials step.
func (s *AuthService) VerifyStaffLogin(ctx context.Context, challengeID, accessCode string) (*ports.AuthResult, error) {
	ch, err := s.challenges.Find(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if accessCode == "" || accessCode != s.codes.For(ch.Role) {
		return nil, domain.ErrInvalidAccessCode
	}

	var user *domain.UserProfile
	switch ch.Mode {
	case ports.StaffModeLogin:
		if err := s.users.UpsertRole(ctx, ch.UserID, ch.Email, ch.Role); err != nil {
			return nil, err
		}
		user, err = s.users.FindByID(ctx, ch.UserID)
		if err != nil {
			return nil, err
		}

	case ports.StaffModeRegister:
		now := time.Now().UTC()
		user, err = s.users.Create(ctx, &domain.UserProfile{
			Email:        ch.Email,
			PasswordHash: ch.PasswordHash,
			Role:         ch.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				_ = s.challenges.Delete(ctx, ch.ID)
			}
			return nil, err
		}

	default:
		return nil, domain.ErrChallengeNotFound
	}

	_ = s.challenges.Delete(ctx, ch.ID)

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Str("mode", string(ch.Mode)).
		Msg("staff access code verified")
	return s.openSession(user)
}

// CancelStaffLogin discards a pending challenge. Cancelling an unknown or
// expired challenge is a no-op.
func (s *AuthService) CancelStaffLogin(ctx context.Context, challengeID string) error {
	err := s.challenges.Delete(ctx, challengeID)
	if errors.Is(err, domain.ErrChallengeNotFound) {
		return nil
	}
	return err
}

// AssignRole sets targetID's role via the idempotent role upsert. An admin
// cannot change their own role.
func (s *AuthService) AssignRole(ctx context.Context, actorID, targetID string, role domain.Role) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if actorID == targetID {
		return domain.ErrSelfDemotion
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.users.UpsertRole(ctx, target.ID, target.Email, role); err != nil {
		return err
	}

	s.log.Info().
		Str("actor_id", actorID).
		Str("user_id", target.ID).
		Str("role", string(role)).
		Msg("role assigned")
	return nil
}

func (s *AuthService) ListProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	return s.users.List(ctx)
}

func (s *AuthService) openSession(user *domain.UserProfile) (*ports.AuthResult, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}
