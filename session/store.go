// Package session implements the chat session lifecycle: the message store,
// the manager state machine that creates/restores/invalidates sessions, and
// the binder that attaches command results to messages after execution.
package session

import (
	"sync"
	"time"

	"github.com/fieldreport/mapchat"
	"github.com/google/uuid"
)

// WelcomeText is the single bot message shown whenever the log resets.
const WelcomeText = "Hi! I can answer questions about current incidents and control the map for you. Try \"zoom in\" or \"find shelters near downtown\"."

// Store holds the current session and the append-only message log for the
// active conversation. It is mutated only through Manager methods; reads
// return copies so callers never observe in-place mutation.
type Store struct {
	mu       sync.RWMutex
	session  *mapchat.Session
	messages []mapchat.Message
}

// NewStore returns a Store in the initial no-session state: no session id
// and a single welcome message.
func NewStore() *Store {
	s := &Store{}
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return s
}

func newWelcome() mapchat.Message {
	return mapchat.Message{
		ID:        uuid.NewString(),
		Sender:    mapchat.SenderBot,
		Text:      WelcomeText,
		Status:    mapchat.StatusDone,
		Timestamp: time.Now(),
	}
}

func (s *Store) resetLocked() {
	s.session = nil
	s.messages = []mapchat.Message{newWelcome()}
}

// Reset returns the store to the initial welcome state with no session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Session returns the current session, if any.
func (s *Store) Session() (mapchat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return mapchat.Session{}, false
	}
	return *s.session, true
}

// Adopt replaces the current session and resets the log to a single welcome
// message. Used when a freshly created session becomes current.
func (s *Store) Adopt(sess mapchat.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	s.messages = []mapchat.Message{newWelcome()}
}

// Load replaces the store wholesale with a restored session and its
// server-ordered message log.
func (s *Store) Load(sess mapchat.Session, messages []mapchat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	s.messages = make([]mapchat.Message, len(messages))
	copy(s.messages, messages)
}

// SetTitle updates the current session's title, if a session is current.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.Title = title
		s.session.UpdatedAt = time.Now()
	}
}

// Append adds a message to the end of the log.
func (s *Store) Append(msg mapchat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Replace swaps the message with the given id for msg, preserving its
// position in the log. It reports whether the id was found.
func (s *Store) Replace(id string, msg mapchat.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i] = msg
			return true
		}
	}
	return false
}

// Remove deletes the message with the given id from the log. It reports
// whether the id was found.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Messages returns a copy of the message log in order.
func (s *Store) Messages() []mapchat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]mapchat.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
