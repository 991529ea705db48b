package prefs

import "context"

// SessionBackend is the server-side storage the session channel writes
// through, keyed by session ID. The metadata store implements it.
type SessionBackend interface {
	GetPreference(ctx context.Context, sessionID, name string) (string, error)
	SetPreference(ctx context.Context, sessionID, name, value string) error
}

// SessionChannel is the primary preference channel: a per-session
// key-value row in the metadata store. Constructed per request with
// the request context.
type SessionChannel struct {
	ctx       context.Context
	sessionID string
	backend   SessionBackend
}

// NewSessionChannel builds a session channel for one request.
func NewSessionChannel(ctx context.Context, sessionID string, backend SessionBackend) *SessionChannel {
	return &SessionChannel{ctx: ctx, sessionID: sessionID, backend: backend}
}

// Get reads the preference for this session. Backend failures are
// returned so the store can fall through to the cookie channel.
func (c *SessionChannel) Get(name string) (string, error) {
	if c.backend == nil || c.sessionID == "" {
		return "", nil
	}
	return c.backend.GetPreference(c.ctx, c.sessionID, name)
}

// Set writes the preference for this session.
func (c *SessionChannel) Set(name, value string) error {
	if c.backend == nil || c.sessionID == "" {
		return nil
	}
	return c.backend.SetPreference(c.ctx, c.sessionID, name, value)
}
