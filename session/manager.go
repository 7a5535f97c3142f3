package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fieldreport/mapchat"
	"github.com/google/uuid"
)

// state is the manager's position in the session lifecycle.
type state int

const (
	stateNoSession state = iota
	stateCreating
	stateReady
	stateSending
)

func (s state) String() string {
	switch s {
	case stateNoSession:
		return "no-session"
	case stateCreating:
		return "creating"
	case stateReady:
		return "ready"
	case stateSending:
		return "sending"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Manager is the session orchestration state machine. It owns the Store and
// Binder, talks to the HistoryGateway, and persists the active session id
// through the Storage port so a reload can restore the conversation.
//
// Invariants it maintains: at most one session creation in flight, at most
// one pending message (last-write-wins), and at most one create-and-retry
// cycle per Send when the server reports the session gone.
type Manager struct {
	gateway  mapchat.HistoryGateway
	storage  mapchat.Storage
	store    *Store
	binder   *Binder
	executor mapchat.CommandExecutor
	view     mapchat.MapView
	logger   *log.Logger

	mu      sync.Mutex
	state   state
	pending *mapchat.PendingMessage
	init    *sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithExecutor wires a command executor and the map view it runs against.
// When set, the manager executes a reply's map commands after the bot
// message is appended and binds the results to it.
func WithExecutor(exec mapchat.CommandExecutor, view mapchat.MapView) Option {
	return func(m *Manager) {
		m.executor = exec
		m.view = view
	}
}

// NewManager creates a Manager in the no-session state.
func NewManager(gateway mapchat.HistoryGateway, storage mapchat.Storage, opts ...Option) *Manager {
	m := &Manager{
		gateway: gateway,
		storage: storage,
		store:   NewStore(),
		binder:  NewBinder(),
		logger:  log.New(io.Discard),
		init:    &sync.Once{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restores the persisted session, if a valid id is stored.
// Any failure clears the stale id silently; initialization never errors.
// Idempotent: concurrent calls share one restore attempt, and a later call
// after Clear starts a fresh one.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	once := m.init
	m.mu.Unlock()
	once.Do(func() { m.restore(ctx) })
}

func (m *Manager) restore(ctx context.Context) {
	id, ok := m.storage.Get(mapchat.SessionIDKey)
	if !ok || id == "" {
		return
	}
	sess, err := m.gateway.GetSession(ctx, id)
	if err != nil {
		m.logger.Debug("persisted session invalid, clearing", "session", id, "err", err)
		m.storage.Remove(mapchat.SessionIDKey)
		return
	}
	msgs, err := m.gateway.GetSessionMessages(ctx, id)
	if err != nil {
		m.logger.Debug("session messages unavailable, clearing", "session", id, "err", err)
		m.storage.Remove(mapchat.SessionIDKey)
		return
	}
	m.mu.Lock()
	m.store.Load(sess, msgs)
	m.state = stateReady
	m.mu.Unlock()
	m.logger.Debug("session restored", "session", id, "messages", len(msgs))
}

// CreateSession requests a new session and makes it current, resetting the
// log to a single welcome message. On failure the caller must not assume a
// session exists.
func (m *Manager) CreateSession(ctx context.Context, title string) (mapchat.Session, error) {
	m.mu.Lock()
	if m.state == stateCreating || m.state == stateSending {
		m.mu.Unlock()
		return mapchat.Session{}, fmt.Errorf("%s in progress: %w", m.state, mapchat.ErrSessionCreate)
	}
	m.state = stateCreating
	m.mu.Unlock()
	return m.doCreate(ctx, title)
}

// doCreate performs the gateway call and the READY/NO_SESSION transition.
// The caller must have moved the machine to CREATING.
func (m *Manager) doCreate(ctx context.Context, title string) (mapchat.Session, error) {
	sess, err := m.gateway.CreateSession(ctx, title)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.createFailedLocked()
		m.logger.Error("session create failed", "err", err)
		return mapchat.Session{}, fmt.Errorf("create session: %v: %w", err, mapchat.ErrSessionCreate)
	}
	m.adoptLocked(sess)
	m.state = stateReady
	return sess, nil
}

// createAndFlush mints a session and, in the same critical section that
// adopts it, claims the pending message for delivery. READY is never
// observable in between, so a concurrent Send cannot steal the slot and
// bounce the queued text with ErrSendInProgress.
func (m *Manager) createAndFlush(ctx context.Context, allowRetry bool) error {
	sess, err := m.gateway.CreateSession(ctx, "")
	m.mu.Lock()
	if err != nil {
		m.createFailedLocked()
		m.mu.Unlock()
		m.logger.Error("session create failed", "err", err)
		return fmt.Errorf("create session: %v: %w", err, mapchat.ErrSessionCreate)
	}
	m.adoptLocked(sess)
	p := m.pending
	m.pending = nil
	if p == nil {
		m.state = stateReady
		m.mu.Unlock()
		return nil
	}
	userMsg, placeholder := m.beginSendLocked(p.Text)
	m.mu.Unlock()
	return m.completeSend(ctx, sess.ID, p.Text, p.Mode, userMsg.ID, placeholder.ID, allowRetry)
}

// adoptLocked installs a freshly created session as current. Caller holds
// the lock.
func (m *Manager) adoptLocked(sess mapchat.Session) {
	m.store.Adopt(sess)
	m.binder.Clear()
	m.storage.Set(mapchat.SessionIDKey, sess.ID)
	m.logger.Debug("session created", "session", sess.ID)
}

// createFailedLocked settles the machine after a failed create: pending is
// dropped and the state returns to wherever a session still exists.
func (m *Manager) createFailedLocked() {
	m.pending = nil
	if _, ok := m.store.Session(); ok {
		m.state = stateReady
	} else {
		m.state = stateNoSession
	}
}

// LoadSession fetches a session and its message log and replaces the store
// wholesale. A gone session surfaces ErrSessionNotFound; the caller decides
// the fallback (typically CreateSession).
func (m *Manager) LoadSession(ctx context.Context, id string) (mapchat.Session, error) {
	sess, err := m.gateway.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, mapchat.ErrSessionNotFound) {
			return mapchat.Session{}, fmt.Errorf("load session %s: %w", id, mapchat.ErrSessionNotFound)
		}
		return mapchat.Session{}, fmt.Errorf("load session %s: %v: %w", id, err, mapchat.ErrSessionLoad)
	}
	msgs, err := m.gateway.GetSessionMessages(ctx, id)
	if err != nil {
		return mapchat.Session{}, fmt.Errorf("load session %s messages: %v: %w", id, err, mapchat.ErrSessionLoad)
	}
	m.mu.Lock()
	m.store.Load(sess, msgs)
	m.binder.Clear()
	m.pending = nil
	m.storage.Set(mapchat.SessionIDKey, sess.ID)
	m.state = stateReady
	m.mu.Unlock()
	m.logger.Debug("session loaded", "session", id, "messages", len(msgs))
	return sess, nil
}

// Send delivers a user message, creating a session first when none exists.
//
// While a session is being created the text is queued as the pending
// message (replacing any earlier one) and flushed automatically when the
// session becomes ready. If the gateway reports the session gone, the
// manager mints a replacement session and retries the same text exactly
// once before surfacing the error.
func (m *Manager) Send(ctx context.Context, text string, mode mapchat.Mode) error {
	if mode == "" {
		mode = mapchat.ModeText
	}
	m.mu.Lock()
	switch m.state {
	case stateCreating:
		m.pending = &mapchat.PendingMessage{Text: text, Mode: mode}
		m.mu.Unlock()
		m.logger.Debug("send queued behind session creation")
		return nil
	case stateSending:
		m.mu.Unlock()
		return mapchat.ErrSendInProgress
	case stateNoSession:
		m.pending = &mapchat.PendingMessage{Text: text, Mode: mode}
		m.state = stateCreating
		m.mu.Unlock()
		return m.createAndFlush(ctx, true)
	default: // stateReady
		m.mu.Unlock()
		return m.deliver(ctx, text, mode, true)
	}
}

// deliver appends the optimistic user message and typing placeholder, asks
// the gateway for a reply, and settles the placeholder. allowRetry bounds
// the session-not-found recovery to a single cycle.
func (m *Manager) deliver(ctx context.Context, text string, mode mapchat.Mode, allowRetry bool) error {
	m.mu.Lock()
	sess, ok := m.store.Session()
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("no current session: %w", mapchat.ErrMessageSend)
	}
	if m.state != stateReady {
		m.mu.Unlock()
		return mapchat.ErrSendInProgress
	}
	userMsg, placeholder := m.beginSendLocked(text)
	m.mu.Unlock()

	return m.completeSend(ctx, sess.ID, text, mode, userMsg.ID, placeholder.ID, allowRetry)
}

// beginSendLocked moves the machine to SENDING and appends the optimistic
// user message and typing placeholder. Caller holds the lock.
func (m *Manager) beginSendLocked(text string) (mapchat.Message, mapchat.Message) {
	m.state = stateSending
	now := time.Now()
	userMsg := mapchat.Message{
		ID:        uuid.NewString(),
		Sender:    mapchat.SenderUser,
		Text:      text,
		Status:    mapchat.StatusDone,
		Timestamp: now,
	}
	placeholder := mapchat.Message{
		ID:        uuid.NewString(),
		Sender:    mapchat.SenderBot,
		Status:    mapchat.StatusPending,
		Timestamp: now,
	}
	m.store.Append(userMsg)
	m.store.Append(placeholder)
	return userMsg, placeholder
}

// completeSend performs the gateway call for an already-begun send and
// settles the placeholder appended by beginSendLocked.
func (m *Manager) completeSend(ctx context.Context, sessionID, text string, mode mapchat.Mode, userID, placeholderID string, allowRetry bool) error {
	reply, err := m.gateway.GenerateReply(ctx, sessionID, text, mode)
	if err != nil {
		m.store.Remove(placeholderID)
		if errors.Is(err, mapchat.ErrSessionNotFound) && allowRetry {
			m.logger.Warn("session gone server-side, minting replacement", "session", sessionID)
			m.mu.Lock()
			m.store.Reset()
			m.binder.Clear()
			m.storage.Remove(mapchat.SessionIDKey)
			m.pending = &mapchat.PendingMessage{Text: text, Mode: mode}
			m.state = stateCreating
			m.mu.Unlock()
			return m.createAndFlush(ctx, false)
		}
		m.mu.Lock()
		m.state = stateReady
		m.mu.Unlock()
		m.logger.Error("reply generation failed", "session", sessionID, "err", err)
		if errors.Is(err, mapchat.ErrSessionNotFound) {
			return fmt.Errorf("generate reply: %w", mapchat.ErrSessionNotFound)
		}
		return fmt.Errorf("generate reply: %v: %w", err, mapchat.ErrMessageSend)
	}

	// Mirror server identity for the user message when the gateway returns
	// one; the optimistic text is already on screen.
	if reply.UserMessage.ID != "" {
		persisted := reply.UserMessage
		persisted.Sender = mapchat.SenderUser
		persisted.Status = mapchat.StatusDone
		m.store.Replace(userID, persisted)
	}

	bot := reply.BotMessage
	if bot.ID == "" {
		bot.ID = uuid.NewString()
	}
	bot.Sender = mapchat.SenderBot
	bot.Status = mapchat.StatusDone
	if bot.Timestamp.IsZero() {
		bot.Timestamp = time.Now()
	}
	if len(bot.MapCommands) == 0 {
		bot.MapCommands = reply.MapCommands
	}
	m.mu.Lock()
	m.store.Replace(placeholderID, bot)
	m.state = stateReady
	m.mu.Unlock()

	// Commands run after the bot message already exists in the log; results
	// attach through the binder, by id, independent of render timing.
	if m.executor != nil && m.view != nil && len(bot.MapCommands) > 0 {
		results := m.executor.ExecuteCommands(ctx, m.view, bot.MapCommands)
		m.binder.Bind(bot.ID, results)
	}
	return nil
}

// DeleteSession removes a session server-side. Deleting the current session
// resets the store to the initial welcome state.
func (m *Manager) DeleteSession(ctx context.Context, id string) error {
	if err := m.gateway.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	m.mu.Lock()
	if sess, ok := m.store.Session(); ok && sess.ID == id {
		m.resetLocked()
	}
	m.mu.Unlock()
	return nil
}

// RenameSession updates a session's title, mirroring the change locally
// when it targets the current session.
func (m *Manager) RenameSession(ctx context.Context, id, title string) error {
	if err := m.gateway.UpdateSessionTitle(ctx, id, title); err != nil {
		return fmt.Errorf("rename session %s: %w", id, err)
	}
	if sess, ok := m.store.Session(); ok && sess.ID == id {
		m.store.SetTitle(title)
	}
	return nil
}

// Sessions lists sessions from the gateway.
func (m *Manager) Sessions(ctx context.Context, limit, offset int) ([]mapchat.Session, error) {
	sessions, err := m.gateway.ListSessions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Clear resets all state: session, messages, pending message, bound results
// and the initialization guard. Used on logout.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.resetLocked()
	m.init = &sync.Once{}
	m.mu.Unlock()
	m.logger.Debug("session state cleared")
}

func (m *Manager) resetLocked() {
	m.store.Reset()
	m.binder.Clear()
	m.pending = nil
	m.storage.Remove(mapchat.SessionIDKey)
	m.state = stateNoSession
}

// Session returns the current session, if any.
func (m *Manager) Session() (mapchat.Session, bool) {
	return m.store.Session()
}

// Messages returns the log with bound command results attached.
func (m *Manager) Messages() []mapchat.Message {
	msgs := m.store.Messages()
	for i := range msgs {
		if res, ok := m.binder.Results(msgs[i].ID); ok {
			msgs[i].MapCommandResults = res
		}
	}
	return msgs
}

// BindResults attaches command results to a message by id. Exposed for
// callers that run the executor themselves instead of using WithExecutor.
func (m *Manager) BindResults(messageID string, results []mapchat.CommandResult) {
	m.binder.Bind(messageID, results)
}

// Pending returns the queued send request, if one exists.
func (m *Manager) Pending() (mapchat.PendingMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return mapchat.PendingMessage{}, false
	}
	return *m.pending, true
}

// CanSendMessage reports whether Send would be accepted right now. False
// while a session is being created or a send is outstanding; UIs use it to
// gate the composer.
func (m *Manager) CanSendMessage() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateNoSession || m.state == stateReady
}
