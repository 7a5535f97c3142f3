package session

import (
	"sync"

	"github.com/fieldreport/mapchat"
)

// Binder associates asynchronous command results with the originating
// message after execution completes. Results live in a side map keyed by
// message id rather than inside the log, so binding never mutates message
// identity and tolerates results arriving after the message was displayed
// or after it was removed entirely.
type Binder struct {
	mu      sync.RWMutex
	results map[string][]mapchat.CommandResult
}

// NewBinder returns an empty Binder.
func NewBinder() *Binder {
	return &Binder{results: make(map[string][]mapchat.CommandResult)}
}

// Bind stores results for the given message id, replacing any earlier
// binding for the same id. Binding an id with no matching message is a
// no-op at read time, never an error.
func (b *Binder) Bind(messageID string, results []mapchat.CommandResult) {
	if messageID == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[messageID] = results
}

// Results returns the bound results for a message id, if any.
func (b *Binder) Results(messageID string) ([]mapchat.CommandResult, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	res, ok := b.results[messageID]
	return res, ok
}

// Clear discards all bindings. Called when the session (and with it the
// message log the bindings pointed into) goes away.
func (b *Binder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = make(map[string][]mapchat.CommandResult)
}
