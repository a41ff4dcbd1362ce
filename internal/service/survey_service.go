package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ============================================
// Survey Service
// ============================================

const (
	surveyStatsCacheKey = "surveys:stats"
	surveyStatsTTL      = 10 * time.Minute
)

// StatsCache is satisfied by db.RedisDB.
type StatsCache interface {
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetCache(ctx context.Context, key string, dest interface{}) error
	InvalidateCache(ctx context.Context, key string) error
}

type SurveyInput struct {
	Name               *string
	Email              *string
	SatisfactionRating int
	EaseOfUseRating    int
	WouldRecommend     bool
	Comments           *string
}

// SurveyStats aggregates every survey. Averages and the percentage are
// rounded to one decimal.
type SurveyStats struct {
	TotalSurveys        int64   `json:"totalSurveys"`
	AvgSatisfaction     float64 `json:"avgSatisfaction"`
	AvgEaseOfUse        float64 `json:"avgEaseOfUse"`
	RecommendPercentage float64 `json:"recommendPercentage"`
	RecommendCount      int64   `json:"recommendCount"`
}

type SurveyService interface {
	Create(ctx context.Context, in SurveyInput) (*repository.Survey, error)
	List(ctx context.Context) ([]*repository.Survey, error)
	Stats(ctx context.Context) (*SurveyStats, error)
}

type surveyService struct {
	surveyRepo repository.SurveyRepository
	cache      StatsCache
	log        zerolog.Logger
}

// NewSurveyService creates the service. cache may be nil.
func NewSurveyService(surveyRepo repository.SurveyRepository, cache StatsCache) SurveyService {
	return &surveyService{surveyRepo: surveyRepo, cache: cache, log: logger.With("surveys")}
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func (s *surveyService) Create(ctx context.Context, in SurveyInput) (*repository.Survey, error) {
	if !validRating(in.SatisfactionRating) {
		return nil, &ValidationError{Field: "satisfactionRating", Message: "Debe estar entre 1 y 5"}
	}
	if !validRating(in.EaseOfUseRating) {
		return nil, &ValidationError{Field: "easeOfUseRating", Message: "Debe estar entre 1 y 5"}
	}

	survey := &repository.Survey{
		Name:               in.Name,
		Email:              normalizeEmail(in.Email),
		SatisfactionRating: in.SatisfactionRating,
		EaseOfUseRating:    in.EaseOfUseRating,
		WouldRecommend:     in.WouldRecommend,
		Comments:           in.Comments,
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCache(ctx, surveyStatsCacheKey); err != nil {
			s.log.Warn().Err(err).Msg("invalidate stats cache")
		}
	}
	return survey, nil
}

func (s *surveyService) List(ctx context.Context) ([]*repository.Survey, error) {
	return s.surveyRepo.FindAll(ctx)
}

func (s *surveyService) Stats(ctx context.Context) (*SurveyStats, error) {
	if s.cache != nil {
		var cached SurveyStats
		if err := s.cache.GetCache(ctx, surveyStatsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	totals, err := s.surveyRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate surveys: %w", err)
	}
	stats := ComputeSurveyStats(totals)

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, surveyStatsCacheKey, stats, surveyStatsTTL); err != nil {
			s.log.Warn().Err(err).Msg("store stats cache")
		}
	}
	return stats, nil
}

// ComputeSurveyStats derives the rounded averages from raw sums. Zero
// surveys yield all zeros.
func ComputeSurveyStats(t *repository.SurveyTotals) *SurveyStats {
	stats := &SurveyStats{TotalSurveys: t.Count, RecommendCount: t.RecommendCount}
	if t.Count == 0 {
		return stats
	}

	n := decimal.NewFromInt(t.Count)
	stats.AvgSatisfaction = decimal.NewFromInt(t.SumSatisfaction).Div(n).Round(1).InexactFloat64()
	stats.AvgEaseOfUse = decimal.NewFromInt(t.SumEaseOfUse).Div(n).Round(1).InexactFloat64()
	stats.RecommendPercentage = decimal.NewFromInt(t.RecommendCount * 100).Div(n).Round(1).InexactFloat64()
	return stats
}
