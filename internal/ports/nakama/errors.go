package nakama

import (
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/zilkupcin/memory-game-cloud/internal/app"
	"github.com/zilkupcin/memory-game-cloud/internal/domain"
)

// gRPC status codes used in runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeResourceExhausted  = 8
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)

var errorCodes = []struct {
	sentinel error
	code     int
}{
	{app.ErrInvalidArgument, codeInvalidArgument},
	{app.ErrGameNotFound, codeNotFound},
	{app.ErrNotHost, codePermissionDenied},
	{app.ErrGameFull, codeResourceExhausted},
	{app.ErrNotStarted, codeFailedPrecondition},
	{app.ErrAlreadyStarted, codeFailedPrecondition},
	{app.ErrAlreadyFinished, codeFailedPrecondition},
	{app.ErrNotYourTurn, codeFailedPrecondition},
	{app.ErrCellNotEmpty, codeFailedPrecondition},
	{app.ErrNotInGame, codeFailedPrecondition},
	{domain.ErrCatalogExhausted, codeInternal},
}

// rpcError translates a use-case error into a runtime error carrying the
// matching gRPC status code. Anything unrecognized is an internal error
// with its detail withheld from the client.
func rpcError(err error) error {
	for _, entry := range errorCodes {
		if errors.Is(err, entry.sentinel) {
			return runtime.NewError(entry.sentinel.Error(), entry.code)
		}
	}
	return runtime.NewError("internal server error", codeInternal)
}
