package mem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldreport/mapchat"
	"github.com/fieldreport/mapchat/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapView(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("camera", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		center, zoom := view.Camera()
		assert.InDelta(t, 37.7749, center.Lat, 0.0001)
		assert.Equal(t, float64(10), zoom)

		view.SetCamera(mapchat.Coordinate{Lat: 40, Lon: -74}, 14)
		center, zoom = view.Camera()
		assert.Equal(t, mapchat.Coordinate{Lat: 40, Lon: -74}, center)
		assert.Equal(t, float64(14), zoom)
	})

	t.Run("layer visibility", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		require.NoError(t, view.SetLayerVisible("road-closures", true))
		for _, l := range view.Layers() {
			if l.ID == "road-closures" {
				assert.True(t, l.Visible)
			}
		}

		assert.ErrorIs(t, view.SetLayerVisible("traffic", true), mapchat.ErrLayerNotFound)
	})

	t.Run("layers are a copy", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		layers := view.Layers()
		layers[0].Visible = !layers[0].Visible
		assert.NotEqual(t, layers[0].Visible, view.Layers()[0].Visible)
	})

	t.Run("basemap", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		assert.Equal(t, "streets", view.Basemap())
		require.NoError(t, view.SetBasemap("topographic"))
		assert.Equal(t, "topographic", view.Basemap())
		assert.Error(t, view.SetBasemap("hologram"))
	})

	t.Run("graphics", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		view.AddGraphic("overlay-a", mapchat.Graphic{ID: "1", Symbol: "pin"})
		view.AddGraphic("overlay-a", mapchat.Graphic{ID: "2", Symbol: "pin"})
		view.AddGraphic("overlay-b", mapchat.Graphic{ID: "3", Symbol: "pin"})

		assert.Len(t, view.Graphics("overlay-a"), 2)
		view.ClearGraphics("overlay-a")
		assert.Empty(t, view.Graphics("overlay-a"))
		assert.Len(t, view.Graphics("overlay-b"), 1, "other overlays are untouched")
	})

	t.Run("geocode", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		res, err := view.Geocode(ctx, "  DOWNTOWN ")
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Equal(t, "Downtown", res.Label)

		res, err = view.Geocode(ctx, "atlantis")
		require.NoError(t, err)
		assert.False(t, res.Found)

		view.AddPlace("atlantis", mapchat.Coordinate{Lat: 1, Lon: 2}, "Atlantis")
		res, err = view.Geocode(ctx, "Atlantis")
		require.NoError(t, err)
		assert.True(t, res.Found)

		outage := errors.New("upstream 503")
		view.FailGeocode(outage)
		_, err = view.Geocode(ctx, "downtown")
		assert.ErrorIs(t, err, outage)

		view.FailGeocode(nil)
		_, err = view.Geocode(ctx, "downtown")
		assert.NoError(t, err)
	})
}
