package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/zilkupcin/memory-game-cloud/internal/config"
)

// InitModule wires RPCs, hooks and storage indexes for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	configPath := ""
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		configPath = env["GAME_CONFIG_PATH"]
	}
	if err := config.LoadGameConfig(configPath); err != nil {
		return err
	}

	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcCreateGame:   RpcCreateGameFn,
		RpcRestartGame:  RpcRestartGameFn,
		RpcJoinGame:     RpcJoinGameFn,
		RpcSetReady:     RpcSetReadyFn,
		RpcGuess:        RpcGuessFn,
		RpcLeaveGame:    RpcLeaveGameFn,
		RpcCreateInvite: RpcCreateInviteFn,
		RpcRedeemInvite: RpcRedeemInviteFn,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}

	// The join/leave sweeps query unfinished games by the "finished"
	// field, so game documents need a storage index on it.
	if err := initializer.RegisterStorageIndex(UnfinishedGamesIndex, GameCollection, "", []string{"finished"}, nil, 1_000_000, false); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	cfg := config.GetGameConfig()
	if err := nk.LeaderboardCreate(ctx, cfg.LeaderboardID, true, "desc", "incr", "", nil, false); err != nil {
		return err
	}

	logger.Info("Memory game module loaded.")
	return nil
}
