package mapcmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/fieldreport/mapchat"
)

// maxLat is the usable latitude range of web-mercator maps.
const maxLat = 85

type panArgs struct {
	Direction string `json:"direction"`
}

func (e *Executor) executePan(view mapchat.MapView, cmd mapchat.Command) (map[string]any, error) {
	var a panArgs
	if err := cmd.DecodeArguments(&a); err != nil {
		return nil, err
	}

	center, zoom := view.Camera()
	// Roughly a quarter of the visible span; halves with every zoom level.
	step := 90 / math.Exp2(zoom)

	switch strings.ToLower(a.Direction) {
	case "up", "north":
		center.Lat += step
	case "down", "south":
		center.Lat -= step
	case "left", "west":
		center.Lon -= step
	case "right", "east":
		center.Lon += step
	default:
		return nil, fmt.Errorf("pan direction %q: %w", a.Direction, mapchat.ErrInvalidDirection)
	}

	center.Lat = clampLat(center.Lat)
	center.Lon = wrapLon(center.Lon)
	view.SetCamera(center, zoom)

	return map[string]any{"lat": center.Lat, "lon": center.Lon}, nil
}

func clampLat(lat float64) float64 {
	if lat > maxLat {
		return maxLat
	}
	if lat < -maxLat {
		return -maxLat
	}
	return lat
}

func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
