package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the server-side tuning for the memory game.
type GameConfig struct {
	// IconCatalog is the pool of icon names icons-mode solutions draw
	// from. Names are what the client renders; the stored solution only
	// keeps indexes into this list.
	IconCatalog []string `json:"icon_catalog"`
	// InviteTTLSeconds bounds how long a game-invite link stays valid.
	InviteTTLSeconds int `json:"invite_ttl_seconds"`
	// LeaderboardID is the leaderboard final scores are reported to.
	LeaderboardID string `json:"leaderboard_id"`
}

var defaultIconCatalog = []string{
	"football-ball", "mountain", "tree", "wind", "tractor", "space-shuttle",
	"meteor", "rocket", "bomb", "cloud", "feather", "bone",
	"fish", "ice-cream", "pizza-slice", "stroopwafel", "plane", "wine-glass-alt",
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

func defaults() *GameConfig {
	return &GameConfig{
		IconCatalog:      defaultIconCatalog,
		InviteTTLSeconds: 24 * 60 * 60,
		LeaderboardID:    "memory_scores",
	}
}

// LoadGameConfig loads the game configuration from the given path,
// falling back to built-in defaults for any field the file leaves unset.
// An empty path keeps the defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c := defaults()
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("failed to read game config: %w", err)
				return
			}
			if err := json.Unmarshal(data, c); err != nil {
				loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
				return
			}
		}
		if len(c.IconCatalog) == 0 {
			c.IconCatalog = defaultIconCatalog
		}
		if c.InviteTTLSeconds <= 0 {
			c.InviteTTLSeconds = 24 * 60 * 60
		}
		if c.LeaderboardID == "" {
			c.LeaderboardID = "memory_scores"
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration. Defaults are
// returned when LoadGameConfig was never called.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return defaults()
	}
	return cfg
}
