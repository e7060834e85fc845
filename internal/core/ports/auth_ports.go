package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskman/api/internal/core/domain"
)

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) // returns user, bearer token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Authenticate verifies a bearer token, loads the identified user and
	// rejects tokens issued before the user's last password change.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email, resetURLBase string) error
	ResetPassword(ctx context.Context, token, password, passwordConfirm string) (string, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, current, password, passwordConfirm string) (string, error)
}
