// Package sessions holds the live-refresh-token registry. A refresh token is
// honored only while it is present here; revocation removes the entry without
// touching the token's signature, which stays valid until natural expiry.
package sessions

import "context"

// Registry maps live refresh tokens to user ids. It is the authoritative
// source for revocation: a token absent from the registry must be rejected
// even if its signature check would still pass.
//
// Implementations must allow concurrent calls; operations on the same token
// are linearizable (a concurrent Revoke and IsLive observe each other's
// effect fully or not at all).
type Registry interface {
	// Register stores the token for the given user. Entries live until
	// revoked; JWT expiry is the backstop for stale ones.
	Register(ctx context.Context, token string, userID int64) error

	// IsLive reports whether the token is currently registered.
	IsLive(ctx context.Context, token string) (bool, error)

	// Revoke removes a single token. Revoking an absent token is not an error.
	Revoke(ctx context.Context, token string) error

	// RevokeByUserID removes every token registered for the user, so logout
	// invalidates all of the user's sessions at once. Removing zero entries
	// is not an error.
	RevokeByUserID(ctx context.Context, userID int64) error
}
