package mock

import (
	"context"

	"github.com/fieldreport/mapchat"
)

// Compile-time interface check.
var _ mapchat.MapView = (*MapView)(nil)

// MapView is a test double for mapchat.MapView.
// Set the function fields for the methods you need.
type MapView struct {
	CameraFn          func() (mapchat.Coordinate, float64)
	SetCameraFn       func(center mapchat.Coordinate, zoom float64)
	LayersFn          func() []mapchat.Layer
	SetLayerVisibleFn func(layerID string, visible bool) error
	BasemapFn         func() string
	SetBasemapFn      func(id string) error
	AddGraphicFn      func(overlayID string, g mapchat.Graphic)
	ClearGraphicsFn   func(overlayID string)
	GeocodeFn         func(ctx context.Context, query string) (mapchat.GeocodeResult, error)
}

// Camera delegates to CameraFn.
func (v *MapView) Camera() (mapchat.Coordinate, float64) {
	return v.CameraFn()
}

// SetCamera delegates to SetCameraFn.
func (v *MapView) SetCamera(center mapchat.Coordinate, zoom float64) {
	v.SetCameraFn(center, zoom)
}

// Layers delegates to LayersFn.
func (v *MapView) Layers() []mapchat.Layer {
	return v.LayersFn()
}

// SetLayerVisible delegates to SetLayerVisibleFn.
func (v *MapView) SetLayerVisible(layerID string, visible bool) error {
	return v.SetLayerVisibleFn(layerID, visible)
}

// Basemap delegates to BasemapFn.
func (v *MapView) Basemap() string {
	return v.BasemapFn()
}

// SetBasemap delegates to SetBasemapFn.
func (v *MapView) SetBasemap(id string) error {
	return v.SetBasemapFn(id)
}

// AddGraphic delegates to AddGraphicFn.
func (v *MapView) AddGraphic(overlayID string, g mapchat.Graphic) {
	v.AddGraphicFn(overlayID, g)
}

// ClearGraphics delegates to ClearGraphicsFn.
func (v *MapView) ClearGraphics(overlayID string) {
	v.ClearGraphicsFn(overlayID)
}

// Geocode delegates to GeocodeFn.
func (v *MapView) Geocode(ctx context.Context, query string) (mapchat.GeocodeResult, error) {
	return v.GeocodeFn(ctx, query)
}
