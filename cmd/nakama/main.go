package main

import (
	"context"
	"database/sql"

	"github.com/zilkupcin/memory-game-cloud/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is unused: Nakama loads the module via InitModule when built with
// -buildmode=plugin, but a main function keeps plain `go build` working.
func main() {}
