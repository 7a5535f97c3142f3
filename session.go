package mapchat

import "time"

// Session represents a conversation thread with the assistant.
// At most one session is current at a time; once a session id has been
// observed invalid server-side it is never reused.
type Session struct {
	ID         string
	Title      string
	AIProvider string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
