package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

type taskService struct {
	repo ports.TaskRepository
}

func NewTaskService(repo ports.TaskRepository) ports.TaskService {
	return &taskService{
		repo: repo,
	}
}

func (s *taskService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, id string, userID uuid.UUID) (*domain.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}

	task, err := s.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Date != nil && beforeToday(*input.Date) {
		return nil, domain.ErrDateInPast
	}

	task := &domain.Task{
		UserID:   input.UserID,
		Name:     name,
		Date:     input.Date,
		Priority: input.Priority,
		Note:     input.Note,
		Active:   true,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, userID uuid.UUID, input ports.UpdateTaskInput) (*domain.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	task, err := s.repo.Update(ctx, taskID, userID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string, userID uuid.UUID) error {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidTaskID
	}
	return s.repo.Delete(ctx, taskID, userID)
}

// beforeToday compares at day granularity: a task due earlier today is
// still valid, yesterday is not.
func beforeToday(date time.Time) bool {
	now := time.Now().In(date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return date.Before(today)
}
