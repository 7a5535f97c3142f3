package mapcmd

import "github.com/fieldreport/mapchat"

// executeDescribe reports the current camera, basemap and visible layers.
func (e *Executor) executeDescribe(view mapchat.MapView, _ mapchat.Command) (map[string]any, error) {
	center, zoom := view.Camera()

	var visible []string
	for _, l := range view.Layers() {
		if l.Visible {
			visible = append(visible, l.Name)
		}
	}

	return map[string]any{
		"center":        map[string]any{"lat": center.Lat, "lon": center.Lon},
		"zoom":          zoom,
		"basemap":       view.Basemap(),
		"visibleLayers": visible,
	}, nil
}
