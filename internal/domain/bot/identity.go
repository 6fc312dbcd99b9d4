package bot

import "context"

// Identity is a candidate name/username/email triple used to create a bot
// account. It carries no uniqueness guarantee by itself; the negotiation loop
// in the poster service checks it against the account store.
type Identity struct {
	FullName string
	Username string
	Email    string
}

// IdentitySource produces candidate identities for bot accounts.
// Implementations must never fail outward: on any upstream error they return
// a locally synthesized identity instead.
type IdentitySource interface {
	FetchIdentity(ctx context.Context) Identity
}
