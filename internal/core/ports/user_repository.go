package ports

import (
	"context"

	"github.com/clickshop/shop-system/internal/core/domain"
)

// UserRepository defines persistence for accounts and their role documents.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	FindByID(ctx context.Context, id string) (*domain.UserProfile, error)
	Create(ctx context.Context, user *domain.UserProfile) (*domain.UserProfile, error)
	// UpsertRole sets the role for the given account, creating the role
	// document if absent. Idempotent: repeating the same call is a no-op.
	UpsertRole(ctx context.Context, id, email string, role domain.Role) error
	List(ctx context.Context) ([]*domain.UserProfile, error)
}
