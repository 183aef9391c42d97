package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/zilkupcin/memory-game-cloud/internal/domain"
	"github.com/zilkupcin/memory-game-cloud/internal/ports"
)

// storageAPI is the slice of runtime.NakamaModule the game store needs.
type storageAPI interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	StorageIndexList(ctx context.Context, callerID, indexName, query string, limit int, order []string, cursor string) (*api.StorageObjects, string, error)
}

// NakamaGameStore implements ports.GameStore on Nakama storage. Both
// document kinds are system-owned and writable only through the RPCs.
// Game documents are publicly readable so clients can render the grid,
// roster and turn directly; solutions are never readable.
type NakamaGameStore struct {
	nk storageAPI
}

// NewNakamaGameStore creates a new game store adapter.
func NewNakamaGameStore(nk storageAPI) *NakamaGameStore {
	return &NakamaGameStore{nk: nk}
}

// CreateGame persists a game and its solution in one batch write and
// returns the assigned game id. Both writes use the create-only version
// so an id collision fails instead of overwriting.
func (s *NakamaGameStore) CreateGame(ctx context.Context, game *domain.Game, solution []domain.Cell) (string, error) {
	id := uuid.NewString()

	gameValue, err := json.Marshal(game)
	if err != nil {
		return "", fmt.Errorf("failed to marshal game: %w", err)
	}
	solutionValue, err := json.Marshal(&domain.Solution{Game: id, Grid: solution})
	if err != nil {
		return "", fmt.Errorf("failed to marshal solution: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      GameCollection,
			Key:             id,
			Value:           string(gameValue),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
		{
			Collection:      SolutionCollection,
			Key:             id,
			Value:           string(solutionValue),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := s.nk.StorageWrite(ctx, writes); err != nil {
		return "", fmt.Errorf("failed to write game %s: %w", id, err)
	}
	return id, nil
}

// GetGame reads one game document with its storage version.
func (s *NakamaGameStore) GetGame(ctx context.Context, gameID string) (ports.StoredGame, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: GameCollection, Key: gameID},
	})
	if err != nil {
		return ports.StoredGame{}, fmt.Errorf("failed to read game %s: %w", gameID, err)
	}
	if len(objects) == 0 {
		return ports.StoredGame{}, ports.ErrNotFound
	}
	return storedGameFromObject(objects[0])
}

// UpdateGame conditionally rewrites a game document. A stale version is
// reported as ports.ErrVersionConflict so callers can reload and retry.
func (s *NakamaGameStore) UpdateGame(ctx context.Context, gameID string, game *domain.Game, version string) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", gameID, err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      GameCollection,
			Key:             gameID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := s.nk.StorageWrite(ctx, writes); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return ports.ErrVersionConflict
		}
		return fmt.Errorf("failed to update game %s: %w", gameID, err)
	}
	return nil
}

// GetSolution reads the hidden solution for a game.
func (s *NakamaGameStore) GetSolution(ctx context.Context, gameID string) (*domain.Solution, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: SolutionCollection, Key: gameID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read solution %s: %w", gameID, err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrNotFound
	}
	solution := &domain.Solution{}
	if err := json.Unmarshal([]byte(objects[0].Value), solution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution %s: %w", gameID, err)
	}
	return solution, nil
}

// ListUnfinished pages through the unfinished-games index. Bleve indexes
// booleans as T/F tokens, hence the query shape.
func (s *NakamaGameStore) ListUnfinished(ctx context.Context) ([]ports.StoredGame, error) {
	const pageSize = 100
	var out []ports.StoredGame
	cursor := ""
	for {
		page, next, err := s.nk.StorageIndexList(ctx, "", UnfinishedGamesIndex, "+value.finished:F", pageSize, nil, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list unfinished games: %w", err)
		}
		for _, object := range page.GetObjects() {
			stored, err := storedGameFromObject(object)
			if err != nil {
				return nil, err
			}
			out = append(out, stored)
		}
		if next == "" {
			return out, nil
		}
		cursor = next
	}
}

func storedGameFromObject(object *api.StorageObject) (ports.StoredGame, error) {
	game := &domain.Game{}
	if err := json.Unmarshal([]byte(object.Value), game); err != nil {
		return ports.StoredGame{}, fmt.Errorf("failed to unmarshal game %s: %w", object.Key, err)
	}
	return ports.StoredGame{ID: object.Key, Version: object.Version, Game: game}, nil
}

var _ ports.GameStore = (*NakamaGameStore)(nil)
