package mem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fieldreport/mapchat"
	"github.com/google/uuid"
)

// Compile-time interface check.
var _ mapchat.HistoryGateway = (*Gateway)(nil)

// Gateway is an in-memory HistoryGateway with a scripted assistant. Replies
// are deterministic keyword matches that emit the corresponding map command
// batch, which is enough to exercise the full send/execute/bind path
// without a backend.
type Gateway struct {
	mu       sync.Mutex
	sessions map[string]mapchat.Session
	messages map[string][]mapchat.Message
}

// NewGateway returns an empty Gateway.
func NewGateway() *Gateway {
	return &Gateway{
		sessions: make(map[string]mapchat.Session),
		messages: make(map[string][]mapchat.Message),
	}
}

// CreateSession mints a new session.
func (g *Gateway) CreateSession(_ context.Context, title string) (mapchat.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if title == "" {
		title = "New conversation"
	}
	now := time.Now()
	sess := mapchat.Session{
		ID:         uuid.NewString(),
		Title:      title,
		AIProvider: "scripted",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	g.sessions[sess.ID] = sess
	g.messages[sess.ID] = nil
	return sess, nil
}

// GetSession returns a session or ErrSessionNotFound.
func (g *Gateway) GetSession(_ context.Context, id string) (mapchat.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.sessions[id]
	if !ok {
		return mapchat.Session{}, fmt.Errorf("session %s: %w", id, mapchat.ErrSessionNotFound)
	}
	return sess, nil
}

// GetSessionMessages returns the session's message log in order.
func (g *Gateway) GetSessionMessages(_ context.Context, id string) ([]mapchat.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.sessions[id]; !ok {
		return nil, fmt.Errorf("session %s: %w", id, mapchat.ErrSessionNotFound)
	}
	out := make([]mapchat.Message, len(g.messages[id]))
	copy(out, g.messages[id])
	return out, nil
}

// ListSessions returns sessions ordered by most recent activity.
func (g *Gateway) ListSessions(_ context.Context, limit, offset int) ([]mapchat.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	all := make([]mapchat.Session, 0, len(g.sessions))
	for _, s := range g.sessions {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// GenerateReply persists the user message, scripts an assistant answer
// (possibly with map commands), and returns both.
func (g *Gateway) GenerateReply(_ context.Context, sessionID, text string, mode mapchat.Mode) (mapchat.Reply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.sessions[sessionID]
	if !ok {
		return mapchat.Reply{}, fmt.Errorf("session %s: %w", sessionID, mapchat.ErrSessionNotFound)
	}

	now := time.Now()
	userMsg := mapchat.Message{
		ID:        uuid.NewString(),
		Sender:    mapchat.SenderUser,
		Text:      text,
		Status:    mapchat.StatusDone,
		Timestamp: now,
	}

	answer, commands := scriptReply(text)
	botMsg := mapchat.Message{
		ID:          uuid.NewString(),
		Sender:      mapchat.SenderBot,
		Text:        answer,
		Status:      mapchat.StatusDone,
		Timestamp:   now,
		MapCommands: commands,
	}

	g.messages[sessionID] = append(g.messages[sessionID], userMsg, botMsg)
	if sess.Title == "New conversation" {
		sess.Title = truncateTitle(text)
	}
	sess.UpdatedAt = now
	g.sessions[sessionID] = sess

	return mapchat.Reply{
		UserMessage: userMsg,
		BotMessage:  botMsg,
		MapCommands: commands,
	}, nil
}

// UpdateSessionTitle renames a session.
func (g *Gateway) UpdateSessionTitle(_ context.Context, id, title string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.sessions[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, mapchat.ErrSessionNotFound)
	}
	sess.Title = title
	sess.UpdatedAt = time.Now()
	g.sessions[id] = sess
	return nil
}

// DeleteSession removes a session and its messages. Deleting a session that
// is already gone reports ErrSessionNotFound.
func (g *Gateway) DeleteSession(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, mapchat.ErrSessionNotFound)
	}
	delete(g.sessions, id)
	delete(g.messages, id)
	return nil
}

// Expire drops a session server-side without telling the client. Tests use
// it to provoke the manager's session-not-found recovery.
func (g *Gateway) Expire(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, id)
	delete(g.messages, id)
}

func truncateTitle(text string) string {
	const max = 40
	if len(text) <= max {
		return text
	}
	return text[:max] + "…"
}
