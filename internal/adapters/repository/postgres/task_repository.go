package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

const taskColumns = `id, user_id, name, date, priority, note, active, created_at, updated_at`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) ports.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (user_id, name, date, priority, note, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		task.UserID, task.Name, task.Date, task.Priority, task.Note, task.Active,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

// Update applies only the fields present in input. The owning user is
// part of the WHERE clause and never of the SET clause, so ownership
// cannot change through this path.
func (r *TaskRepository) Update(ctx context.Context, id, userID uuid.UUID, input ports.UpdateTaskInput) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET name = COALESCE($3, name),
		    date = COALESCE($4, date),
		    priority = COALESCE($5, priority),
		    note = COALESCE($6, note),
		    active = COALESCE($7, active),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	task, err := scanTask(r.db.QueryRowContext(ctx, query,
		id, userID, input.Name, input.Date, input.Priority, input.Note, input.Active,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Name,
		&task.Date,
		&task.Priority,
		&task.Note,
		&task.Active,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
