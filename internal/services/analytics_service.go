package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000

	scoreBucketWidth = 10.0
)

type analyticsService struct {
	repo      repositories.EventRepository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewAnalyticsService(repo repositories.EventRepository, logger *slog.Logger, validator *validator.Validator) AnalyticsService {
	return &analyticsService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *analyticsService) ListEvents(ctx context.Context, filters *repositories.EventFilters) (*EventListResponse, error) {
	if err := s.validator.Validate(filters); err != nil {
		return nil, err
	}
	if filters.Limit == 0 {
		filters.Limit = defaultEventLimit
	}

	events, total, err := s.repo.List(ctx, *filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics events: %w", err)
	}

	return &EventListResponse{
		Events: events,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *analyticsService) Stats(ctx context.Context) (*models.AnalyticsSummary, error) {
	counts, err := s.repo.CountByTest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count analytics events: %w", err)
	}

	summary := &models.AnalyticsSummary{GeneratedAt: s.now()}
	byTest := make(map[models.ExerciseType]*models.ExerciseStats, len(models.ExerciseTypes))
	for _, t := range models.ExerciseTypes {
		entry, _ := models.CatalogEntryFor(t)
		stats := &models.ExerciseStats{TestID: t, Title: entry.Title}
		byTest[t] = stats
		summary.Exercises = append(summary.Exercises, stats)
	}

	for _, c := range counts {
		summary.TotalEvents += c.Count
		stats, ok := byTest[c.TestID]
		if !ok {
			continue
		}
		switch c.EventName {
		case models.EventTileOpened:
			stats.Opened += c.Count
		case models.EventTestStarted:
			stats.Started += c.Count
		case models.EventTestSubmitted:
			stats.Submissions += c.Count
		case models.EventTestReset:
			stats.Resets += c.Count
		case models.EventBackClicked:
			stats.BackClicks += c.Count
		}
	}

	for _, stats := range summary.Exercises {
		scores, err := s.repo.Scores(ctx, stats.TestID)
		if err != nil {
			return nil, fmt.Errorf("failed to load scores for %s: %w", stats.TestID, err)
		}
		applyScoreStats(stats, scores)
	}

	s.logger.Debug("Analytics summary built", "total_events", summary.TotalEvents)
	return summary, nil
}

// applyScoreStats fills the score figures of stats from the graded scores.
func applyScoreStats(stats *models.ExerciseStats, scores []float64) {
	stats.ScoreDistribution = newScoreBuckets()
	if len(scores) == 0 {
		return
	}

	stats.LowestScore = math.Inf(1)
	var sum float64
	for _, score := range scores {
		sum += score
		stats.HighestScore = math.Max(stats.HighestScore, score)
		stats.LowestScore = math.Min(stats.LowestScore, score)
		if score >= 100 {
			stats.PerfectScores++
		}

		i := int(score / scoreBucketWidth)
		i = max(0, min(i, len(stats.ScoreDistribution)-1))
		stats.ScoreDistribution[i].Count++
	}
	stats.AverageScore = math.Round(sum/float64(len(scores))*100) / 100
}

func newScoreBuckets() []models.ScoreBucket {
	n := int(100 / scoreBucketWidth)
	buckets := make([]models.ScoreBucket, n)
	for i := range buckets {
		buckets[i] = models.ScoreBucket{
			From: float64(i) * scoreBucketWidth,
			To:   float64(i+1) * scoreBucketWidth,
		}
	}
	return buckets
}
