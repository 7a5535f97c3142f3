package mapcmd

import "github.com/fieldreport/mapchat"

// executeClear removes assistant graphics from the overlay and resets the
// executor's geocode cache.
func (e *Executor) executeClear(view mapchat.MapView, _ mapchat.Command) (map[string]any, error) {
	view.ClearGraphics(defaultOverlay)

	e.mu.Lock()
	e.geocache = make(map[string]mapchat.GeocodeResult)
	e.mu.Unlock()

	return map[string]any{"cleared": true}, nil
}
