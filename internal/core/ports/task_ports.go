package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskman/api/internal/core/domain"
)

type TaskRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	// GetByID returns nil, nil when no task with this id is owned by userID,
	// whether the id is unknown or belongs to someone else.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, id, userID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type CreateTaskInput struct {
	UserID   uuid.UUID
	Name     string
	Date     *time.Time
	Priority string
	Note     string
}

type UpdateTaskInput struct {
	Name     *string
	Date     *time.Time
	Priority *string
	Note     *string
	Active   *bool
}

type TaskService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	Get(ctx context.Context, id string, userID uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, userID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string, userID uuid.UUID) error
}
