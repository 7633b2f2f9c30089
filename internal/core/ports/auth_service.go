package ports

import (
	"context"
	"time"

	"github.com/clickshop/shop-system/internal/core/domain"
)

// StaffLoginMode selects the behaviour of the credentials step of a staff
// challenge: login verifies the account immediately, register defers account
// creation until the access code is verified.
type StaffLoginMode string

const (
	StaffModeLogin    StaffLoginMode = "login"
	StaffModeRegister StaffLoginMode = "register"
)

// StaffLoginState tags the phase a staff challenge is in. Challenges are
// created in StateCode: the credentials step has already passed and only the
// access code is outstanding.
type StaffLoginState string

const (
	StateCredentials StaffLoginState = "credentials"
	StateCode        StaffLoginState = "code"
)

// StaffLoginChallenge is the server-side state of a staff login or
// self-registration that has passed the credentials step. In register mode
// no account exists yet; Email and PasswordHash carry what is needed to
// create it once the access code checks out.
type StaffLoginChallenge struct {
	ID           string          `json:"id"`
	Mode         StaffLoginMode  `json:"mode"`
	State        StaffLoginState `json:"state"`
	Role         domain.Role     `json:"role"`
	UserID       string          `json:"user_id,omitempty"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BeginStaffLoginInput carries the credentials step of the staff flow.
type BeginStaffLoginInput struct {
	Email    string
	Password string
	Mode     StaffLoginMode
	Role     domain.Role
}

// AuthResult is returned whenever a session is established.
type AuthResult struct {
	Token string
	User  *domain.UserProfile
}

// AuthService defines identity, session and role-store use cases.
type AuthService interface {
	// Register creates a client account and its role document, then opens a
	// session for it.
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	// Login authenticates an email/password pair. The role claim in the
	// returned token reflects the role document at the moment of login; a
	// missing role degrades to domain.RoleNone rather than an error.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout revokes the token identified by tokenID until expiresAt.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	// Profile returns the stored profile for the given account.
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// BeginStaffLogin runs the credentials step of the two-phase staff flow
	// and returns a challenge waiting on the access code.
	BeginStaffLogin(ctx context.Context, input BeginStaffLoginInput) (*StaffLoginChallenge, error)
	// VerifyStaffLogin runs the code step. A wrong code leaves the challenge
	// in place so the caller can retry.
	VerifyStaffLogin(ctx context.Context, challengeID, accessCode string) (*AuthResult, error)
	// CancelStaffLogin discards a pending challenge (the "back" action).
	CancelStaffLogin(ctx context.Context, challengeID string) error

	// AssignRole sets targetID's role. Admins cannot change their own role.
	AssignRole(ctx context.Context, actorID, targetID string, role domain.Role) error
	ListProfiles(ctx context.Context) ([]*domain.UserProfile, error)
}
