package mapchat

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrSessionCreate indicates the gateway could not create a session.
	ErrSessionCreate = errors.New("session create failed")

	// ErrSessionNotFound indicates the session no longer exists server-side.
	// Inside Send it triggers a single create-and-retry cycle.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLoad indicates a session restore failed for a reason other
	// than the session being gone.
	ErrSessionLoad = errors.New("session load failed")

	// ErrMessageSend indicates a reply could not be generated. Not retried.
	ErrMessageSend = errors.New("message send failed")

	// ErrSendInProgress indicates Send was called while an earlier send was
	// still outstanding. Callers are expected to gate on CanSendMessage.
	ErrSendInProgress = errors.New("send already in progress")

	// ErrLayerNotFound indicates a named map layer does not exist.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrInvalidDirection indicates a pan/zoom direction outside the fixed enum.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrGeocodeService indicates the geocoding service failed, as opposed
	// to succeeding with no match.
	ErrGeocodeService = errors.New("geocode service failure")

	// ErrViewNotInitialized indicates no map view was supplied.
	ErrViewNotInitialized = errors.New("map view not initialized")
)
