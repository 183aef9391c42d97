package nakama

// RPC ids clients call.
const (
	RpcCreateGame   = "create_game"
	RpcRestartGame  = "restart_game"
	RpcJoinGame     = "join_game"
	RpcSetReady     = "set_ready"
	RpcGuess        = "guess"
	RpcLeaveGame    = "leave_game"
	RpcCreateInvite = "create_invite"
	RpcRedeemInvite = "redeem_invite"
)

// Storage layout. Game documents and their hidden solutions live in
// separate collections keyed by the same game id, so a solution is never
// in a payload that reaches a client.
const (
	GameCollection     = "game"
	SolutionCollection = "solution"

	// UnfinishedGamesIndex serves the "every unfinished game" scan used
	// by join and leave sweeps.
	UnfinishedGamesIndex = "idx_unfinished_games"
)

// InviteIssuer tags invite tokens minted by this module.
const InviteIssuer = "memory-game-cloud"
