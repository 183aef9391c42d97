package nakama

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"

	"github.com/zilkupcin/memory-game-cloud/internal/ports"
)

type leaderboardAPI interface {
	LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error)
}

// NakamaStatsAdapter implements ports.StatsPort on a Nakama leaderboard.
type NakamaStatsAdapter struct {
	nk            leaderboardAPI
	leaderboardID string
}

// NewNakamaStatsAdapter creates a new stats adapter writing to the given
// leaderboard.
func NewNakamaStatsAdapter(nk leaderboardAPI, leaderboardID string) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk, leaderboardID: leaderboardID}
}

// ReportScores writes one leaderboard record per player. The leaderboard
// operator decides how a new score combines with the player's standing.
func (a *NakamaStatsAdapter) ReportScores(ctx context.Context, gameID string, reports []ports.ScoreReport) error {
	metadata := map[string]interface{}{"game_id": gameID}
	for _, report := range reports {
		if _, err := a.nk.LeaderboardRecordWrite(ctx, a.leaderboardID, report.UserID, report.Name, report.Score, 0, metadata, nil); err != nil {
			return fmt.Errorf("failed to write score for %s: %w", report.UserID, err)
		}
	}
	return nil
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
