package ports

import (
	"context"
	"errors"

	"github.com/zilkupcin/memory-game-cloud/internal/domain"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrVersionConflict indicates a conditional write lost a race and
	// the caller's copy of the document is stale.
	ErrVersionConflict = errors.New("document version conflict")
)

// StoredGame is a game document together with the store-assigned id and
// the version tag guarding conditional writes.
type StoredGame struct {
	ID      string
	Version string
	Game    *domain.Game
}

// GameStore persists game and solution documents. Implementations must
// reject an UpdateGame whose version no longer matches the stored
// document, so every single-game read-modify-write is a compare-and-swap.
type GameStore interface {
	// CreateGame writes a new game document and its solution in one
	// atomic batch, returning the assigned game id.
	CreateGame(ctx context.Context, game *domain.Game, solution []domain.Cell) (string, error)

	// GetGame loads a game document by id.
	GetGame(ctx context.Context, gameID string) (StoredGame, error)

	// UpdateGame replaces a game document iff version still matches.
	UpdateGame(ctx context.Context, gameID string, game *domain.Game, version string) error

	// GetSolution loads the hidden solution paired with a game.
	GetSolution(ctx context.Context, gameID string) (*domain.Solution, error)

	// ListUnfinished returns every game not yet finished.
	ListUnfinished(ctx context.Context) ([]StoredGame, error)
}
