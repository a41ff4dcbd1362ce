package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// DeliverableLink is a labeled URL pointing at finished work for a project.
type DeliverableLink struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	Label     *string   `json:"label,omitempty" db:"label"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type LinkRepository interface {
	Create(ctx context.Context, link *DeliverableLink) error
	FindByID(ctx context.Context, id string) (*DeliverableLink, error)
	FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*DeliverableLink, error)
	Delete(ctx context.Context, id string) error
}

type linkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *DeliverableLink) error {
	query := `
		INSERT INTO deliverable_links (project_id, label, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, link.ProjectID, link.Label, link.URL).
		Scan(&link.ID, &link.CreatedAt)
	return mapPgError(err)
}

func (r *linkRepository) FindByID(ctx context.Context, id string) (*DeliverableLink, error) {
	link := &DeliverableLink{}
	err := r.db.GetContext(ctx, link, `SELECT id, project_id, label, url, created_at FROM deliverable_links WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// FindByProjectIDs returns the links of every given project, newest first.
func (r *linkRepository) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*DeliverableLink, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, project_id, label, url, created_at FROM deliverable_links WHERE project_id IN (?) ORDER BY created_at DESC`,
		projectIDs,
	)
	if err != nil {
		return nil, err
	}

	var links []*DeliverableLink
	if err := r.db.SelectContext(ctx, &links, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *linkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deliverable_links WHERE id = $1`, id)
	return err
}
