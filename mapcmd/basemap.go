package mapcmd

import (
	"fmt"

	"github.com/fieldreport/mapchat"
)

type basemapArgs struct {
	Basemap string `json:"basemap"`
}

func (e *Executor) executeSetBasemap(view mapchat.MapView, cmd mapchat.Command) (map[string]any, error) {
	var a basemapArgs
	if err := cmd.DecodeArguments(&a); err != nil {
		return nil, err
	}
	if a.Basemap == "" {
		return nil, fmt.Errorf("basemap is required")
	}
	if err := view.SetBasemap(a.Basemap); err != nil {
		return nil, fmt.Errorf("set basemap %q: %w", a.Basemap, err)
	}
	return map[string]any{"basemap": a.Basemap}, nil
}
