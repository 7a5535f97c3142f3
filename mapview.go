package mapchat

import "context"

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Layer describes one toggleable operational layer of the map view.
type Layer struct {
	ID      string
	Name    string
	Visible bool
}

// Graphic is an overlay marker placed on the map by command execution.
type Graphic struct {
	ID       string
	Location Coordinate
	Symbol   string
	Label    string
}

// GeocodeResult distinguishes "place not found" (Found false, nil error)
// from a service failure (non-nil error from Geocode).
type GeocodeResult struct {
	Found    bool
	Location Coordinate
	Label    string
}

// MapView is the capability surface command execution mutates. The view is
// owned by the UI layer; implementations must tolerate concurrent direct
// user interaction (a manual pan during command execution is an accepted
// race, not a correctness violation).
type MapView interface {
	// Camera returns the current center and zoom level.
	Camera() (Coordinate, float64)
	SetCamera(center Coordinate, zoom float64)

	Layers() []Layer
	SetLayerVisible(layerID string, visible bool) error

	Basemap() string
	SetBasemap(id string) error

	// AddGraphic places g on the named overlay, creating the overlay on
	// first use. ClearGraphics removes every graphic on the overlay.
	AddGraphic(overlayID string, g Graphic)
	ClearGraphics(overlayID string)

	Geocode(ctx context.Context, query string) (GeocodeResult, error)
}
