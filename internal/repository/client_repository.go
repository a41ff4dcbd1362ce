package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	ID        string
	Name      string
	Company   *string
	Email     *string
	Phone     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindAll(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
}

type pgClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &pgClientRepository{pool: pool}
}

const clientColumns = `id, name, company, email, phone, notes, created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	c := &Client{}
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgClientRepository) Create(ctx context.Context, client *Client) error {
	query := `
		INSERT INTO clients (name, company, email, phone, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		client.Name, client.Company, client.Email, client.Phone, client.Notes,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	return mapPgError(err)
}

func (r *pgClientRepository) FindByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return client, err
}

func (r *pgClientRepository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE LOWER(email) = LOWER($1) LIMIT 1`
	client, err := scanClient(r.pool.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return client, err
}

func (r *pgClientRepository) FindAll(ctx context.Context) ([]*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *pgClientRepository) Update(ctx context.Context, client *Client) error {
	query := `
		UPDATE clients
		SET name = $2, company = $3, email = $4, phone = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		client.ID, client.Name, client.Company, client.Email, client.Phone, client.Notes,
	).Scan(&client.UpdatedAt)
	return mapPgError(err)
}

// Delete removes the client; its projects go with it through ON DELETE CASCADE.
func (r *pgClientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}
