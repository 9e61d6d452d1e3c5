package models

import "time"

// ExerciseStats summarises the stored analytics events of one catalog tile.
type ExerciseStats struct {
	TestID ExerciseType `json:"test_id"`
	Title  string       `json:"title"`

	// Event counts
	Opened      int64 `json:"opened"`
	Started     int64 `json:"started"`
	Submissions int64 `json:"submissions"`
	Resets      int64 `json:"resets"`
	BackClicks  int64 `json:"back_clicks"`

	// Score statistics over test_submitted events
	AverageScore  float64 `json:"average_score"`
	HighestScore  float64 `json:"highest_score"`
	LowestScore   float64 `json:"lowest_score"`
	PerfectScores int64   `json:"perfect_scores"`

	ScoreDistribution []ScoreBucket `json:"score_distribution"`
}

// ScoreBucket counts submissions whose score falls in [From, To).
// The last bucket includes 100.
type ScoreBucket struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int64   `json:"count"`
}

// AnalyticsSummary is the response of the stats endpoint.
type AnalyticsSummary struct {
	TotalEvents int64            `json:"total_events"`
	Exercises   []*ExerciseStats `json:"exercises"`
	GeneratedAt time.Time        `json:"generated_at"`
}
