package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Survey struct {
	ID                 string
	Name               *string
	Email              *string
	SatisfactionRating int
	EaseOfUseRating    int
	WouldRecommend     bool
	Comments           *string
	CreatedAt          time.Time
}

// SurveyTotals holds raw sums so averages can be computed without float drift.
type SurveyTotals struct {
	Count           int64
	SumSatisfaction int64
	SumEaseOfUse    int64
	RecommendCount  int64
}

type SurveyRepository interface {
	Create(ctx context.Context, survey *Survey) error
	FindAll(ctx context.Context) ([]*Survey, error)
	Totals(ctx context.Context) (*SurveyTotals, error)
}

type pgSurveyRepository struct {
	pool *pgxpool.Pool
}

func NewSurveyRepository(pool *pgxpool.Pool) SurveyRepository {
	return &pgSurveyRepository{pool: pool}
}

func (r *pgSurveyRepository) Create(ctx context.Context, survey *Survey) error {
	query := `
		INSERT INTO surveys (name, email, satisfaction_rating, ease_of_use_rating, would_recommend, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		survey.Name, survey.Email, survey.SatisfactionRating, survey.EaseOfUseRating,
		survey.WouldRecommend, survey.Comments,
	).Scan(&survey.ID, &survey.CreatedAt)
}

func (r *pgSurveyRepository) FindAll(ctx context.Context) ([]*Survey, error) {
	query := `
		SELECT id, name, email, satisfaction_rating, ease_of_use_rating, would_recommend, comments, created_at
		FROM surveys
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surveys []*Survey
	for rows.Next() {
		s := &Survey{}
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.SatisfactionRating, &s.EaseOfUseRating,
			&s.WouldRecommend, &s.Comments, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

func (r *pgSurveyRepository) Totals(ctx context.Context) (*SurveyTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(satisfaction_rating), 0),
		       COALESCE(SUM(ease_of_use_rating), 0),
		       COUNT(*) FILTER (WHERE would_recommend)
		FROM surveys
	`
	t := &SurveyTotals{}
	err := r.pool.QueryRow(ctx, query).Scan(&t.Count, &t.SumSatisfaction, &t.SumEaseOfUse, &t.RecommendCount)
	if err != nil {
		return nil, err
	}
	return t, nil
}
