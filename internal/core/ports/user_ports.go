package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskman/api/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	// GetByValidResetToken returns the user whose stored reset token hash
	// matches and whose expiry is still in the future, or nil when no such
	// user exists. Expiry is part of the lookup predicate, not a separate
	// check, so a stale token can never match.
	GetByValidResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
