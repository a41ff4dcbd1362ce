package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Task is a checklist item scoped to a project.
type Task struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	Title     string    `json:"title" db:"title"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (project_id, title, done)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, task.ProjectID, task.Title, task.Done).
		Scan(&task.ID, &task.CreatedAt)
	return mapPgError(err)
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	task := &Task{}
	err := r.db.GetContext(ctx, task, `SELECT id, project_id, title, done, created_at FROM tasks WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// FindByProjectIDs returns the tasks of every given project, oldest first.
func (r *taskRepository) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, project_id, title, done, created_at FROM tasks WHERE project_id IN (?) ORDER BY created_at ASC`,
		projectIDs,
	)
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE tasks SET title = :title, done = :done WHERE id = :id`, task)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
