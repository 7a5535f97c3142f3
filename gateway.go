package mapchat

import "context"

// Reply is the payload returned by HistoryGateway.GenerateReply: the
// persisted user message, the assistant's answer, and any map commands the
// assistant attached to it.
type Reply struct {
	UserMessage Message
	BotMessage  Message
	MapCommands []Command
}

// HistoryGateway is the persistence/API boundary for sessions and messages.
// Implementations report a missing session by wrapping ErrSessionNotFound so
// callers can distinguish it from other failures with errors.Is.
type HistoryGateway interface {
	CreateSession(ctx context.Context, title string) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	GetSessionMessages(ctx context.Context, id string) ([]Message, error)
	ListSessions(ctx context.Context, limit, offset int) ([]Session, error)
	GenerateReply(ctx context.Context, sessionID, text string, mode Mode) (Reply, error)
	UpdateSessionTitle(ctx context.Context, id, title string) error
	DeleteSession(ctx context.Context, id string) error
}
