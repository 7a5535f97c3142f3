package mapcmd

import (
	"fmt"
	"strings"

	"github.com/fieldreport/mapchat"
)

// Zoom level bounds follow the usual web map tiling range.
const (
	minZoom = 0
	maxZoom = 22
)

type zoomArgs struct {
	Direction string `json:"direction"`
}

func (e *Executor) executeZoom(view mapchat.MapView, cmd mapchat.Command) (map[string]any, error) {
	var a zoomArgs
	if err := cmd.DecodeArguments(&a); err != nil {
		return nil, err
	}

	center, zoom := view.Camera()
	switch strings.ToLower(a.Direction) {
	case "in":
		zoom++
	case "out":
		zoom--
	default:
		return nil, fmt.Errorf("zoom direction %q: %w", a.Direction, mapchat.ErrInvalidDirection)
	}
	zoom = clampZoom(zoom)
	view.SetCamera(center, zoom)

	return map[string]any{"zoom": zoom}, nil
}

func clampZoom(zoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}
