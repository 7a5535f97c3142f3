// Package mem provides in-memory implementations of the external
// collaborators: the history gateway and the map view. The demo client and
// integration-style tests run against them; a real deployment swaps in the
// backed implementations.
package mem

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fieldreport/mapchat"
)

// Compile-time interface check.
var _ mapchat.MapView = (*MapView)(nil)

// MapView is an in-memory map view seeded with the disaster-reporting
// operational layers, the standard basemaps, and a small gazetteer for
// geocoding. All mutation is mutex-guarded because commands and direct user
// interaction may touch the view concurrently.
type MapView struct {
	mu         sync.Mutex
	center     mapchat.Coordinate
	zoom       float64
	basemap    string
	basemaps   map[string]bool
	layers     []mapchat.Layer
	graphics   map[string][]mapchat.Graphic
	gazetteer  map[string]mapchat.GeocodeResult
	geocodeErr error
}

// NewMapView returns a view centered on the default operational area.
func NewMapView() *MapView {
	return &MapView{
		center:  mapchat.Coordinate{Lat: 37.7749, Lon: -122.4194},
		zoom:    10,
		basemap: "streets",
		basemaps: map[string]bool{
			"streets":     true,
			"satellite":   true,
			"topographic": true,
		},
		layers: []mapchat.Layer{
			{ID: "shelters", Name: "Shelters", Visible: true},
			{ID: "flood-zones", Name: "Flood Zones", Visible: true},
			{ID: "road-closures", Name: "Road Closures", Visible: false},
			{ID: "incident-reports", Name: "Incident Reports", Visible: true},
		},
		graphics: make(map[string][]mapchat.Graphic),
		gazetteer: map[string]mapchat.GeocodeResult{
			"downtown":          {Found: true, Location: mapchat.Coordinate{Lat: 37.7793, Lon: -122.4193}, Label: "Downtown"},
			"riverside shelter": {Found: true, Location: mapchat.Coordinate{Lat: 37.7694, Lon: -122.4662}, Label: "Riverside Shelter"},
			"memorial hospital": {Found: true, Location: mapchat.Coordinate{Lat: 37.7631, Lon: -122.4576}, Label: "Memorial Hospital"},
			"oak street bridge": {Found: true, Location: mapchat.Coordinate{Lat: 37.7712, Lon: -122.4501}, Label: "Oak Street Bridge"},
		},
	}
}

// Camera returns the current center and zoom level.
func (v *MapView) Camera() (mapchat.Coordinate, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.center, v.zoom
}

// SetCamera moves the camera.
func (v *MapView) SetCamera(center mapchat.Coordinate, zoom float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = center
	v.zoom = zoom
}

// Layers returns a copy of the layer list.
func (v *MapView) Layers() []mapchat.Layer {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]mapchat.Layer, len(v.layers))
	copy(out, v.layers)
	return out
}

// SetLayerVisible toggles a layer by id.
func (v *MapView) SetLayerVisible(layerID string, visible bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.layers {
		if v.layers[i].ID == layerID {
			v.layers[i].Visible = visible
			return nil
		}
	}
	return fmt.Errorf("layer %q: %w", layerID, mapchat.ErrLayerNotFound)
}

// Basemap returns the active basemap identifier.
func (v *MapView) Basemap() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.basemap
}

// SetBasemap switches the basemap. Unknown identifiers are rejected.
func (v *MapView) SetBasemap(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.basemaps[id] {
		return fmt.Errorf("unknown basemap %q", id)
	}
	v.basemap = id
	return nil
}

// AddGraphic places a graphic on the named overlay, creating the overlay on
// first use.
func (v *MapView) AddGraphic(overlayID string, g mapchat.Graphic) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.graphics[overlayID] = append(v.graphics[overlayID], g)
}

// ClearGraphics removes every graphic on the overlay.
func (v *MapView) ClearGraphics(overlayID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.graphics, overlayID)
}

// Graphics returns a copy of the overlay's graphics, for display and tests.
func (v *MapView) Graphics(overlayID string) []mapchat.Graphic {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]mapchat.Graphic, len(v.graphics[overlayID]))
	copy(out, v.graphics[overlayID])
	return out
}

// Geocode looks the query up in the gazetteer. A miss is a Found=false
// success; only an injected service failure errors.
func (v *MapView) Geocode(_ context.Context, query string) (mapchat.GeocodeResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.geocodeErr != nil {
		return mapchat.GeocodeResult{}, v.geocodeErr
	}
	res, ok := v.gazetteer[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return mapchat.GeocodeResult{Found: false}, nil
	}
	return res, nil
}

// AddPlace extends the gazetteer.
func (v *MapView) AddPlace(name string, loc mapchat.Coordinate, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gazetteer[strings.ToLower(strings.TrimSpace(name))] = mapchat.GeocodeResult{
		Found:    true,
		Location: loc,
		Label:    label,
	}
}

// FailGeocode makes subsequent Geocode calls fail with err until called
// again with nil. Used to simulate service outages.
func (v *MapView) FailGeocode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.geocodeErr = err
}
