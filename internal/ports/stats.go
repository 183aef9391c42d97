package ports

import "context"

// ScoreReport is one player's final score in a finished game.
type ScoreReport struct {
	UserID string
	Name   string
	Score  int64
}

// StatsPort records final scores once a game finishes. Reporting is
// best-effort; the game outcome is already committed when it runs.
type StatsPort interface {
	ReportScores(ctx context.Context, gameID string, reports []ScoreReport) error
}
