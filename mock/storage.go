package mock

import "github.com/fieldreport/mapchat"

// Compile-time interface checks.
var (
	_ mapchat.Storage         = (*Storage)(nil)
	_ mapchat.CommandExecutor = (*Executor)(nil)
)

// Storage is a test double for mapchat.Storage.
// Set the function fields for the methods you need.
type Storage struct {
	GetFn    func(key string) (string, bool)
	SetFn    func(key, value string)
	RemoveFn func(key string)
}

// Get delegates to GetFn.
func (s *Storage) Get(key string) (string, bool) {
	return s.GetFn(key)
}

// Set delegates to SetFn.
func (s *Storage) Set(key, value string) {
	s.SetFn(key, value)
}

// Remove delegates to RemoveFn.
func (s *Storage) Remove(key string) {
	s.RemoveFn(key)
}
