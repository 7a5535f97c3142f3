// Package mock provides test doubles for mapchat interfaces using function fields.
package mock

import (
	"context"

	"github.com/fieldreport/mapchat"
)

// Compile-time interface check.
var _ mapchat.HistoryGateway = (*Gateway)(nil)

// Gateway is a test double for mapchat.HistoryGateway.
// Set the function fields for the methods you need.
type Gateway struct {
	CreateSessionFn      func(ctx context.Context, title string) (mapchat.Session, error)
	GetSessionFn         func(ctx context.Context, id string) (mapchat.Session, error)
	GetSessionMessagesFn func(ctx context.Context, id string) ([]mapchat.Message, error)
	ListSessionsFn       func(ctx context.Context, limit, offset int) ([]mapchat.Session, error)
	GenerateReplyFn      func(ctx context.Context, sessionID, text string, mode mapchat.Mode) (mapchat.Reply, error)
	UpdateSessionTitleFn func(ctx context.Context, id, title string) error
	DeleteSessionFn      func(ctx context.Context, id string) error
}

// CreateSession delegates to CreateSessionFn.
func (g *Gateway) CreateSession(ctx context.Context, title string) (mapchat.Session, error) {
	return g.CreateSessionFn(ctx, title)
}

// GetSession delegates to GetSessionFn.
func (g *Gateway) GetSession(ctx context.Context, id string) (mapchat.Session, error) {
	return g.GetSessionFn(ctx, id)
}

// GetSessionMessages delegates to GetSessionMessagesFn.
func (g *Gateway) GetSessionMessages(ctx context.Context, id string) ([]mapchat.Message, error) {
	return g.GetSessionMessagesFn(ctx, id)
}

// ListSessions delegates to ListSessionsFn.
func (g *Gateway) ListSessions(ctx context.Context, limit, offset int) ([]mapchat.Session, error) {
	return g.ListSessionsFn(ctx, limit, offset)
}

// GenerateReply delegates to GenerateReplyFn.
func (g *Gateway) GenerateReply(ctx context.Context, sessionID, text string, mode mapchat.Mode) (mapchat.Reply, error) {
	return g.GenerateReplyFn(ctx, sessionID, text, mode)
}

// UpdateSessionTitle delegates to UpdateSessionTitleFn.
func (g *Gateway) UpdateSessionTitle(ctx context.Context, id, title string) error {
	return g.UpdateSessionTitleFn(ctx, id, title)
}

// DeleteSession delegates to DeleteSessionFn.
func (g *Gateway) DeleteSession(ctx context.Context, id string) error {
	return g.DeleteSessionFn(ctx, id)
}
