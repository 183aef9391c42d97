package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/zilkupcin/memory-game-cloud/internal/app"
	"github.com/zilkupcin/memory-game-cloud/internal/config"
	"github.com/zilkupcin/memory-game-cloud/internal/domain"
)

type createGameRequest struct {
	MaxPlayers int    `json:"maxPlayers"`
	Size       int    `json:"size"`
	GameType   string `json:"gameType"`
}

type gameRequest struct {
	GameID string `json:"gameId"`
}

type guessRequest struct {
	GameID string `json:"gameId"`
	Index  int    `json:"index"`
}

type redeemInviteRequest struct {
	Token string `json:"token"`
}

type gameResponse struct {
	GameID string `json:"gameId"`
}

type guessResponse struct {
	// Value is the revealed symbol: a number for numbers games, an icon
	// name for icons games.
	Value interface{} `json:"value"`
}

type inviteResponse struct {
	Token string `json:"token"`
}

// newService builds the game service over Nakama storage. Constructed
// per call; all state lives in storage. Non-fatal failures inside the
// service surface as warnings on the runtime logger.
func newService(nk runtime.NakamaModule, logger runtime.Logger) *app.Service {
	cfg := config.GetGameConfig()
	store := NewNakamaGameStore(nk)
	stats := NewNakamaStatsAdapter(nk, cfg.LeaderboardID)
	return app.NewService(store, stats, nil, len(cfg.IconCatalog), logger.Warn)
}

func newInviteService(ctx context.Context) *app.InviteService {
	secret := ""
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		secret = env["INVITE_SIGNING_KEY"]
	}
	ttl := time.Duration(config.GetGameConfig().InviteTTLSeconds) * time.Second
	return app.NewInviteService(secret, InviteIssuer, ttl)
}

func callerID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("user id not found in context", codeUnauthenticated)
	}
	return userID, nil
}

func unmarshalPayload(payload string, v interface{}) error {
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("payload is not valid json", codeInvalidArgument)
	}
	return nil
}

func marshalResponse(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return string(data), nil
}

// RpcCreateGameFn creates a new game with the caller as host.
//
// Payload: {"maxPlayers": 2, "size": 4, "gameType": "numbers"}
// Returns: {"gameId": "..."}
func RpcCreateGameFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := createGameRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	gameID, err := newService(nk, logger).CreateGame(ctx, userID, req.MaxPlayers, req.Size, domain.GameType(req.GameType))
	if err != nil {
		logger.Error("RpcCreateGame [User:%s]: %v", userID, err)
		return "", rpcError(err)
	}
	return marshalResponse(gameResponse{GameID: gameID})
}

// RpcRestartGameFn creates a successor game and closes out the old one.
// Host only.
//
// Payload: {"gameId": "..."}
// Returns: {"gameId": "..."} of the successor.
func RpcRestartGameFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := gameRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	nextID, err := newService(nk, logger).RestartGame(ctx, userID, req.GameID)
	if err != nil {
		logger.Error("RpcRestartGame [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}
	return marshalResponse(gameResponse{GameID: nextID})
}

// RpcJoinGameFn adds the caller to a game's roster, abandoning any other
// unfinished game they were active in.
//
// Payload: {"gameId": "..."}
func RpcJoinGameFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := gameRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	if err := newService(nk, logger).Join(ctx, userID, req.GameID); err != nil {
		logger.Error("RpcJoinGame [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}
	return marshalResponse(gameResponse{GameID: req.GameID})
}

// RpcSetReadyFn toggles the caller's readiness. The game starts when the
// roster is full and everyone is ready.
//
// Payload: {"gameId": "..."}
func RpcSetReadyFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := gameRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	if err := newService(nk, logger).SetReady(ctx, userID, req.GameID); err != nil {
		logger.Error("RpcSetReady [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}
	return marshalResponse(gameResponse{GameID: req.GameID})
}

// RpcGuessFn reveals one cell for the caller.
//
// Payload: {"gameId": "...", "index": 5}
// Returns: {"value": 42} for numbers games, {"value": "rocket"} for
// icons games.
func RpcGuessFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := guessRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	store := NewNakamaGameStore(nk)
	symbol, err := newService(nk, logger).Guess(ctx, userID, req.GameID, req.Index)
	if err != nil {
		logger.Error("RpcGuess [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}

	value, err := renderSymbol(ctx, store, req.GameID, symbol)
	if err != nil {
		logger.Error("RpcGuess [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}
	return marshalResponse(guessResponse{Value: value})
}

// renderSymbol turns a stored cell into what the client displays. Icons
// games store catalog indexes, so the index is resolved back to a name.
func renderSymbol(ctx context.Context, store *NakamaGameStore, gameID string, symbol domain.Cell) (interface{}, error) {
	stored, err := store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if stored.Game.GameType != domain.GameTypeIcons {
		return int(symbol), nil
	}
	catalog := config.GetGameConfig().IconCatalog
	if int(symbol) < 0 || int(symbol) >= len(catalog) {
		return nil, runtime.NewError("revealed icon is outside the catalog", codeInternal)
	}
	return catalog[symbol], nil
}

// RpcLeaveGameFn removes the caller from the target game and from every
// other unfinished game they were active in.
//
// Payload: {"gameId": "..."}
func RpcLeaveGameFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := gameRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	if err := newService(nk, logger).LeaveGame(ctx, userID, req.GameID); err != nil {
		logger.Error("RpcLeaveGame [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}
	return marshalResponse(gameResponse{GameID: req.GameID})
}

// RpcCreateInviteFn mints a signed invite token for a game the caller is
// part of.
//
// Payload: {"gameId": "..."}
// Returns: {"token": "..."}
func RpcCreateInviteFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := gameRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	stored, err := NewNakamaGameStore(nk).GetGame(ctx, req.GameID)
	if err != nil {
		logger.Error("RpcCreateInvite [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", rpcError(err)
	}
	if stored.Game.FindPlayer(userID) == nil {
		return "", rpcError(app.ErrNotInGame)
	}

	token, err := newInviteService(ctx).CreateInvite(req.GameID, userID)
	if err != nil {
		logger.Error("RpcCreateInvite [User:%s Game:%s]: %v", userID, req.GameID, err)
		return "", runtime.NewError("failed to create invite", codeInternal)
	}
	return marshalResponse(inviteResponse{Token: token})
}

// RpcRedeemInviteFn verifies an invite token and joins the caller to the
// game it names.
//
// Payload: {"token": "..."}
// Returns: {"gameId": "..."}
func RpcRedeemInviteFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	req := redeemInviteRequest{}
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	gameID, err := newInviteService(ctx).RedeemInvite(req.Token)
	if err != nil {
		logger.Warn("RpcRedeemInvite [User:%s]: %v", userID, err)
		return "", runtime.NewError("invite token is invalid or expired", codeInvalidArgument)
	}

	if err := newService(nk, logger).Join(ctx, userID, gameID); err != nil {
		logger.Error("RpcRedeemInvite [User:%s Game:%s]: %v", userID, gameID, err)
		return "", rpcError(err)
	}
	return marshalResponse(gameResponse{GameID: gameID})
}
