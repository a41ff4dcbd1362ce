package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// pgxpool repositories
	UserRepo    UserRepository
	ClientRepo  ClientRepository
	ProjectRepo ProjectRepository
	SurveyRepo  SurveyRepository

	// database/sql repositories
	TaskRepo TaskRepository
	LinkRepo LinkRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		UserRepo:    NewUserRepository(pool),
		ClientRepo:  NewClientRepository(pool),
		ProjectRepo: NewProjectRepository(pool),
		SurveyRepo:  NewSurveyRepository(pool),

		TaskRepo: NewTaskRepository(db),
		LinkRepo: NewLinkRepository(db),
	}
}
