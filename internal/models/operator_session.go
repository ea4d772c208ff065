package models

import "time"

// DefaultOperatorSessionTTL is how long an operator console login stays valid.
const DefaultOperatorSessionTTL = 24 * time.Hour

// OperatorSession is the explicit session of an operator console login.
type OperatorSession struct {
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewOperatorSession creates a session starting at now and lasting ttl.
func NewOperatorSession(username string, now time.Time, ttl time.Duration) OperatorSession {
	if ttl <= 0 {
		ttl = DefaultOperatorSessionTTL
	}
	return OperatorSession{
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired returns true if the session is no longer valid at now.
func (s OperatorSession) Expired(now time.Time) bool {
	return s.Username == "" || !now.Before(s.ExpiresAt)
}
