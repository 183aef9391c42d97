package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/zilkupcin/memory-game-cloud/internal/domain"
	"github.com/zilkupcin/memory-game-cloud/internal/ports"
)

// Guess reveals one cell for the caller and advances the turn state
// machine. The raw symbol is returned even when the pair does not match;
// the transport layer decides what to show to whom.
func (s *Service) Guess(ctx context.Context, callerID, gameID string, index int) (domain.Cell, error) {
	stored, err := s.loadGame(ctx, gameID)
	if err != nil {
		return domain.EmptyCell, err
	}
	game := stored.Game

	if len(game.Players) == 0 {
		return domain.EmptyCell, ErrGameNotFound
	}
	if index < 0 || index >= len(game.Grid) {
		return domain.EmptyCell, ErrInvalidArgument
	}
	if game.Finished {
		return domain.EmptyCell, ErrAlreadyFinished
	}
	if !game.Started {
		return domain.EmptyCell, ErrNotStarted
	}
	if game.CurrentTurn.Player != callerID {
		return domain.EmptyCell, ErrNotYourTurn
	}
	if game.Grid[index] != domain.EmptyCell {
		return domain.EmptyCell, ErrCellNotEmpty
	}

	solution, err := s.store.GetSolution(ctx, gameID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.EmptyCell, fmt.Errorf("game %s has no solution: %w", gameID, err)
		}
		return domain.EmptyCell, fmt.Errorf("load solution for %s: %w", gameID, err)
	}

	symbol, err := applyGuess(game, solution, callerID, index)
	if err != nil {
		return domain.EmptyCell, err
	}

	if err := s.store.UpdateGame(ctx, gameID, game, stored.Version); err != nil {
		return domain.EmptyCell, fmt.Errorf("persist guess: %w", err)
	}
	s.reportScores(ctx, gameID, game)
	return symbol, nil
}

// applyGuess is the pure turn transition. Selection handling mirrors the
// shipped behavior exactly: a completed 2-cell selection is only
// discarded on the NEXT guess call, not when the pair resolves, so the
// same player's follow-up probe starts the fresh selection.
func applyGuess(game *domain.Game, solution *domain.Solution, callerID string, index int) (domain.Cell, error) {
	symbol := solution.Grid[index]
	turn := &game.CurrentTurn

	if len(turn.Selection) < 2 {
		// A repeat of the turn's open first pick counts as a non-empty
		// cell even though nothing is committed to the grid yet.
		if len(turn.Selection) > 0 && turn.Selection[0] == index {
			return domain.EmptyCell, ErrCellNotEmpty
		}

		turn.Selection = append(turn.Selection, index)

		if len(turn.Selection) == 2 {
			first, second := turn.Selection[0], turn.Selection[1]
			if solution.Grid[first] == solution.Grid[second] {
				game.FindPlayer(callerID).Score++
				game.Grid[first] = solution.Grid[first]
				game.Grid[second] = solution.Grid[second]
			}

			// Rotate only when a pair just completed and there is anyone
			// to rotate to.
			if len(game.Players) > 1 {
				if next, ok := game.NextActivePlayer(callerID); ok {
					turn.Player = next
				} else {
					game.Finished = true
				}
			}
		}
	} else {
		turn.Selection = []int{index}
	}

	if game.AllRevealed() {
		game.Finished = true
	}

	return symbol, nil
}
