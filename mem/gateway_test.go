package mem_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldreport/mapchat"
	"github.com/fieldreport/mapchat/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Sessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()

		sess, err := g.CreateSession(ctx, "")
		require.NoError(t, err)
		assert.NotEmpty(t, sess.ID)
		assert.Equal(t, "New conversation", sess.Title)
		assert.Equal(t, "scripted", sess.AIProvider)

		got, err := g.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess, got)
	})

	t.Run("get unknown", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()

		_, err := g.GetSession(ctx, "nope")
		assert.ErrorIs(t, err, mapchat.ErrSessionNotFound)
	})

	t.Run("rename", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()
		sess, err := g.CreateSession(ctx, "before")
		require.NoError(t, err)

		require.NoError(t, g.UpdateSessionTitle(ctx, sess.ID, "after"))
		got, err := g.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)

		assert.ErrorIs(t, g.UpdateSessionTitle(ctx, "nope", "x"), mapchat.ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()
		sess, err := g.CreateSession(ctx, "")
		require.NoError(t, err)

		require.NoError(t, g.DeleteSession(ctx, sess.ID))
		_, err = g.GetSession(ctx, sess.ID)
		assert.ErrorIs(t, err, mapchat.ErrSessionNotFound)
		assert.ErrorIs(t, g.DeleteSession(ctx, sess.ID), mapchat.ErrSessionNotFound)
	})

	t.Run("list orders by recent activity", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()
		a, err := g.CreateSession(ctx, "a")
		require.NoError(t, err)
		_, err = g.CreateSession(ctx, "b")
		require.NoError(t, err)
		_, err = g.CreateSession(ctx, "c")
		require.NoError(t, err)

		// Touching a session bumps it to the front.
		time.Sleep(5 * time.Millisecond)
		_, err = g.GenerateReply(ctx, a.ID, "hello", mapchat.ModeText)
		require.NoError(t, err)

		all, err := g.ListSessions(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, a.ID, all[0].ID)

		page, err := g.ListSessions(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := g.ListSessions(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, rest, 1)

		none, err := g.ListSessions(ctx, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestGateway_GenerateReply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists both messages", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()
		sess, err := g.CreateSession(ctx, "")
		require.NoError(t, err)

		reply, err := g.GenerateReply(ctx, sess.ID, "zoom in please", mapchat.ModeText)
		require.NoError(t, err)
		assert.Equal(t, mapchat.SenderUser, reply.UserMessage.Sender)
		assert.Equal(t, "zoom in please", reply.UserMessage.Text)
		assert.Equal(t, mapchat.SenderBot, reply.BotMessage.Sender)
		require.Len(t, reply.MapCommands, 1)
		assert.Equal(t, "Zoom", reply.MapCommands[0].Function)
		assert.Equal(t, reply.MapCommands, reply.BotMessage.MapCommands)

		msgs, err := g.GetSessionMessages(ctx, sess.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, reply.UserMessage.ID, msgs[0].ID)
		assert.Equal(t, reply.BotMessage.ID, msgs[1].ID)
	})

	t.Run("first message names the session", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()
		sess, err := g.CreateSession(ctx, "")
		require.NoError(t, err)

		_, err = g.GenerateReply(ctx, sess.ID, "show me the shelters", mapchat.ModeText)
		require.NoError(t, err)

		got, err := g.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "show me the shelters", got.Title)

		// Later messages leave the title alone.
		_, err = g.GenerateReply(ctx, sess.ID, "zoom in", mapchat.ModeText)
		require.NoError(t, err)
		got, err = g.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "show me the shelters", got.Title)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()

		_, err := g.GenerateReply(ctx, "nope", "hello", mapchat.ModeText)
		assert.ErrorIs(t, err, mapchat.ErrSessionNotFound)
	})

	t.Run("expired session behaves like a missing one", func(t *testing.T) {
		t.Parallel()
		g := mem.NewGateway()
		sess, err := g.CreateSession(ctx, "")
		require.NoError(t, err)

		g.Expire(sess.ID)
		_, err = g.GenerateReply(ctx, sess.ID, "hello", mapchat.ModeText)
		assert.ErrorIs(t, err, mapchat.ErrSessionNotFound)
	})
}
