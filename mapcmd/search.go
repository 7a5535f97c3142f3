package mapcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldreport/mapchat"
	"github.com/google/uuid"
)

// searchZoom is the minimum zoom level after centering on a geocoded place.
const searchZoom = 12

type searchArgs struct {
	Query string `json:"query"`
}

// executeSearch geocodes a free-text place name and centers the map on it.
// Not finding the place is a success with found=false; only a service
// failure is an error.
func (e *Executor) executeSearch(ctx context.Context, view mapchat.MapView, cmd mapchat.Command) (map[string]any, error) {
	var a searchArgs
	if err := cmd.DecodeArguments(&a); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	res, cached := e.cachedGeocode(a.Query)
	if !cached {
		var err error
		res, err = view.Geocode(ctx, a.Query)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %v: %w", a.Query, err, mapchat.ErrGeocodeService)
		}
		e.cacheGeocode(a.Query, res)
	}

	if !res.Found {
		return map[string]any{"found": false, "query": a.Query}, nil
	}

	_, zoom := view.Camera()
	if zoom < searchZoom {
		zoom = searchZoom
	}
	view.SetCamera(res.Location, zoom)
	// A cached repeat recenters but already dropped its pin the first time.
	if !cached {
		view.AddGraphic(defaultOverlay, mapchat.Graphic{
			ID:       uuid.NewString(),
			Location: res.Location,
			Symbol:   "pin",
			Label:    res.Label,
		})
	}

	return map[string]any{
		"found": true,
		"lat":   res.Location.Lat,
		"lon":   res.Location.Lon,
		"label": res.Label,
	}, nil
}

func (e *Executor) cachedGeocode(query string) (mapchat.GeocodeResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res, ok := e.geocache[geocacheKey(query)]
	return res, ok
}

func (e *Executor) cacheGeocode(query string, res mapchat.GeocodeResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.geocache[geocacheKey(query)] = res
}

func geocacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
