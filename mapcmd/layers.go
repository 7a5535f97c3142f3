package mapcmd

import (
	"fmt"
	"strings"

	"github.com/fieldreport/mapchat"
)

type toggleLayerArgs struct {
	Layer string `json:"layer"`
}

func (e *Executor) executeToggleLayer(view mapchat.MapView, cmd mapchat.Command) (map[string]any, error) {
	var a toggleLayerArgs
	if err := cmd.DecodeArguments(&a); err != nil {
		return nil, err
	}
	if a.Layer == "" {
		return nil, fmt.Errorf("layer is required: %w", mapchat.ErrLayerNotFound)
	}

	layer, ok := findLayer(view.Layers(), a.Layer)
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", a.Layer, mapchat.ErrLayerNotFound)
	}

	visible := !layer.Visible
	if err := view.SetLayerVisible(layer.ID, visible); err != nil {
		return nil, fmt.Errorf("toggle layer %q: %w", layer.ID, err)
	}

	return map[string]any{"layer": layer.ID, "visible": visible}, nil
}

// findLayer matches by exact id first, then case-insensitively by name.
func findLayer(layers []mapchat.Layer, key string) (mapchat.Layer, bool) {
	for _, l := range layers {
		if l.ID == key {
			return l, true
		}
	}
	for _, l := range layers {
		if strings.EqualFold(l.Name, key) || strings.EqualFold(l.ID, key) {
			return l, true
		}
	}
	return mapchat.Layer{}, false
}
