package ports

import "context"

// AccountPort updates player-facing account profiles.
type AccountPort interface {
	// UpdateProfile applies username/displayName to the given account.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
