package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Project struct {
	ID          string
	ClientID    string
	Name        string
	Description *string
	Status      types.ProjectStatus
	DueDate     *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated on reads
	Client *Client
	Tasks  []*Task
	Links  []*DeliverableLink
}

// ProjectFilter narrows Find. Zero values mean "any".
type ProjectFilter struct {
	Status   types.ProjectStatus
	ClientID string
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	Find(ctx context.Context, filter ProjectFilter) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

const projectSelect = `
	SELECT p.id, p.client_id, p.name, p.description, p.status, p.due_date, p.notes, p.created_at, p.updated_at,
	       c.id, c.name, c.company, c.email, c.phone, c.notes, c.created_at, c.updated_at
	FROM projects p
	JOIN clients c ON c.id = p.client_id
`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	c := &Client{}
	var status string
	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &p.Description, &status, &p.DueDate, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = types.ProjectStatus(status)
	p.Client = c
	return p, nil
}

func (r *pgProjectRepository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (client_id, name, description, status, due_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		project.ClientID, project.Name, project.Description, string(project.Status),
		project.DueDate, project.Notes,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	return mapPgError(err)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx, projectSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return project, err
}

func (r *pgProjectRepository) Find(ctx context.Context, filter ProjectFilter) ([]*Project, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conds = append(conds, fmt.Sprintf("p.client_id = $%d", len(args)))
	}

	query := projectSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *pgProjectRepository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects
		SET client_id = $2, name = $3, description = $4, status = $5, due_date = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		project.ID, project.ClientID, project.Name, project.Description,
		string(project.Status), project.DueDate, project.Notes,
	).Scan(&project.UpdatedAt)
	return mapPgError(err)
}

// Delete removes the project. Tasks and links are removed by ON DELETE CASCADE.
func (r *pgProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
