package app

import (
	"context"
	"fmt"

	"github.com/zilkupcin/memory-game-cloud/internal/domain"
)

// Join adds the caller to a game's roster. Joining a game abandons the
// caller's presence in every other unfinished game first, so a player is
// never active in two games at once.
func (s *Service) Join(ctx context.Context, callerID, gameID string) error {
	s.deactivateEverywhere(ctx, callerID, gameID)

	stored, err := s.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	game := stored.Game

	if len(game.Players)+1 > game.MaxPlayers {
		return ErrGameFull
	}
	if game.Started {
		return ErrAlreadyStarted
	}
	if game.Finished {
		return ErrAlreadyFinished
	}

	game.Players = append(game.Players, domain.Player{
		ID:     callerID,
		Name:   fmt.Sprintf("Player %d", len(game.Players)+1),
		Active: true,
	})

	if err := s.store.UpdateGame(ctx, gameID, game, stored.Version); err != nil {
		return fmt.Errorf("persist join: %w", err)
	}
	return nil
}

// SetReady toggles the caller's readiness. The game starts exactly when
// the roster is full and every player is ready.
func (s *Service) SetReady(ctx context.Context, callerID, gameID string) error {
	stored, err := s.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	game := stored.Game

	if game.Finished {
		return ErrAlreadyFinished
	}
	if game.Started {
		return ErrAlreadyStarted
	}
	player := game.FindPlayer(callerID)
	if player == nil {
		return ErrNotInGame
	}

	player.IsReady = !player.IsReady

	if game.AllReady() && len(game.Players) == game.MaxPlayers {
		game.Started = true
	}

	if err := s.store.UpdateGame(ctx, gameID, game, stored.Version); err != nil {
		return fmt.Errorf("persist ready: %w", err)
	}
	return nil
}

// LeaveGame removes the caller from the target game and abandons their
// presence in every other unfinished game. It is a no-op for games the
// caller is not active in.
func (s *Service) LeaveGame(ctx context.Context, callerID, gameID string) error {
	games, err := s.store.ListUnfinished(ctx)
	if err != nil {
		return fmt.Errorf("list unfinished games: %w", err)
	}

	for _, stored := range games {
		player := stored.Game.FindPlayer(callerID)
		if player == nil || !player.Active {
			continue
		}

		if stored.ID == gameID && !stored.Game.Started {
			removeFromRoster(stored.Game, callerID)
		} else {
			deactivate(stored.Game, callerID)
		}

		// Each game is updated independently; a failed write leaves that
		// one game stale, self-correcting on the player's next action.
		if err := s.store.UpdateGame(ctx, stored.ID, stored.Game, stored.Version); err != nil {
			s.logf("leave sweep: failed to update game %s for %s: %v", stored.ID, callerID, err)
			continue
		}
		s.reportScores(ctx, stored.ID, stored.Game)
	}
	return nil
}

// deactivateEverywhere marks the caller inactive in every unfinished
// game except the one being joined. Write failures are tolerated the
// same way LeaveGame tolerates them.
func (s *Service) deactivateEverywhere(ctx context.Context, callerID, exceptGameID string) {
	games, err := s.store.ListUnfinished(ctx)
	if err != nil {
		s.logf("join sweep: failed to list unfinished games for %s: %v", callerID, err)
		return
	}
	for _, stored := range games {
		if stored.ID == exceptGameID {
			continue
		}
		player := stored.Game.FindPlayer(callerID)
		if player == nil || !player.Active {
			continue
		}
		deactivate(stored.Game, callerID)
		if err := s.store.UpdateGame(ctx, stored.ID, stored.Game, stored.Version); err != nil {
			s.logf("join sweep: failed to update game %s for %s: %v", stored.ID, callerID, err)
			continue
		}
		s.reportScores(ctx, stored.ID, stored.Game)
	}
}

// deactivate marks a player inactive and repairs the game around the
// departure: the game finishes when fewer than two active players
// remain, and an orphaned turn pointer advances to the next active
// player with the pending selection cleared.
func deactivate(game *domain.Game, userID string) {
	player := game.FindPlayer(userID)
	if player == nil || !player.Active {
		return
	}
	player.Active = false

	if len(game.Players) == 1 || game.ActiveCount() < 2 {
		game.Finished = true
		return
	}

	if game.CurrentTurn.Player == userID {
		if next, ok := game.NextActivePlayer(userID); ok {
			game.CurrentTurn.Player = next
			game.CurrentTurn.Selection = []int{}
		}
	}
}

// removeFromRoster trims a player out of a not-yet-started game, freeing
// their slot. The turn pointer moves off the removed player so it never
// references someone outside the roster.
func removeFromRoster(game *domain.Game, userID string) {
	idx := game.PlayerIndex(userID)
	if idx < 0 {
		return
	}
	game.Players = append(game.Players[:idx], game.Players[idx+1:]...)

	if len(game.Players) == 0 {
		game.Finished = true
		return
	}
	if game.CurrentTurn.Player == userID {
		game.CurrentTurn.Player = game.Players[0].ID
		game.CurrentTurn.Selection = []int{}
	}
}
