package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zilkupcin/memory-game-cloud/internal/domain"
	"github.com/zilkupcin/memory-game-cloud/internal/ports"
)

// Service contains the memory-game use-cases. Every public operation is
// one load, one pure state transition, one conditional persist; the
// store enforces compare-and-swap on game documents so concurrent
// mutations of the same game cannot silently overwrite each other.
type Service struct {
	store       ports.GameStore
	stats       ports.StatsPort
	gen         *domain.Generator
	catalogSize int

	// logf records non-fatal failures: score reporting and the
	// per-game writes of the join/leave sweeps.
	logf func(format string, v ...interface{})

	// now is swapped out by tests for deterministic timestamps.
	now func() time.Time
}

// NewService constructs a Service. stats may be nil to disable score
// reporting; rng may be nil to use a time-seeded default; catalogSize is
// the number of distinct icons available for icons games; logf may be
// nil to discard non-fatal failure reports.
func NewService(store ports.GameStore, stats ports.StatsPort, rng *rand.Rand, catalogSize int, logf func(format string, v ...interface{})) *Service {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Service{
		store:       store,
		stats:       stats,
		gen:         domain.NewGenerator(rng),
		catalogSize: catalogSize,
		logf:        logf,
		now:         time.Now,
	}
}

// CreateGame validates the parameters, builds a fresh game and its
// hidden solution, and persists both in one atomic batch. The caller
// becomes host and Player 1. Returns the store-assigned game id.
func (s *Service) CreateGame(ctx context.Context, callerID string, maxPlayers, size int, gameType domain.GameType) (string, error) {
	if maxPlayers < domain.MinPlayers || maxPlayers > domain.MaxPlayers {
		return "", ErrInvalidArgument
	}
	if !domain.ValidSize(size) {
		return "", ErrInvalidArgument
	}
	if !gameType.Valid() {
		return "", ErrInvalidArgument
	}

	solution, err := s.gen.Solution(size, gameType, s.catalogSize)
	if err != nil {
		return "", err
	}

	game := domain.NewGame(maxPlayers, gameType, domain.NewEmptyGrid(size), callerID, s.now())

	id, err := s.store.CreateGame(ctx, game, solution)
	if err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}
	return id, nil
}

// RestartGame creates a successor game with the same size, type and
// player limit, then marks the old game finished with a nextGame
// pointer. Only the host may restart.
func (s *Service) RestartGame(ctx context.Context, callerID, gameID string) (string, error) {
	stored, err := s.loadGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	old := stored.Game
	if old.Host != callerID {
		return "", ErrNotHost
	}

	size := old.Size()
	solution, err := s.gen.Solution(size, old.GameType, s.catalogSize)
	if err != nil {
		return "", err
	}

	next := domain.NewGame(old.MaxPlayers, old.GameType, domain.NewEmptyGrid(size), callerID, s.now())
	nextID, err := s.store.CreateGame(ctx, next, solution)
	if err != nil {
		return "", fmt.Errorf("create successor game: %w", err)
	}

	old.NextGame = nextID
	old.Finished = true
	if err := s.store.UpdateGame(ctx, gameID, old, stored.Version); err != nil {
		return "", fmt.Errorf("finish old game: %w", err)
	}
	return nextID, nil
}

// loadGame fetches a game, translating a missing document into the
// rule-level not-found kind.
func (s *Service) loadGame(ctx context.Context, gameID string) (ports.StoredGame, error) {
	stored, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.StoredGame{}, ErrGameNotFound
		}
		return ports.StoredGame{}, fmt.Errorf("load game %s: %w", gameID, err)
	}
	return stored, nil
}

// reportScores pushes final scores to the stats port once a game has
// finished. Scores are advisory; a reporting failure never unwinds the
// already-committed game outcome.
func (s *Service) reportScores(ctx context.Context, gameID string, game *domain.Game) {
	if s.stats == nil || !game.Finished {
		return
	}
	reports := make([]ports.ScoreReport, 0, len(game.Players))
	for i := range game.Players {
		p := &game.Players[i]
		reports = append(reports, ports.ScoreReport{
			UserID: p.ID,
			Name:   p.Name,
			Score:  int64(p.Score),
		})
	}
	if err := s.stats.ReportScores(ctx, gameID, reports); err != nil {
		s.logf("failed to report scores for game %s: %v", gameID, err)
	}
}
