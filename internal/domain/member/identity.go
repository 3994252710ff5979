package member

import "context"

// IdentityProfile is the verified profile returned by the external
// identity provider for a one-time session id.
type IdentityProfile struct {
	Email        string
	Name         string
	Picture      string
	SessionToken string
}

// IdentityProvider exchanges a one-time session id for a verified profile.
// Implementations guard the upstream call with retry and a circuit breaker.
type IdentityProvider interface {
	ExchangeSession(ctx context.Context, sessionID string) (*IdentityProfile, error)
}
