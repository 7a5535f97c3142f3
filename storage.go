package mapchat

// SessionIDKey is the well-known client-storage key holding the active
// session id across restarts. Its absence or staleness never fails
// initialization; it degrades to the no-session state.
const SessionIDKey = "mapchat.session-id"

// Storage is the injected client-storage port: writes never fail, Get
// reports presence explicitly.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}
