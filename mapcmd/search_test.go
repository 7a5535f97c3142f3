package mapcmd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldreport/mapchat"
	"github.com/fieldreport/mapchat/mapcmd"
	"github.com/fieldreport/mapchat/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("centers on the match and drops a marker", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		res := runOne(t, view, command("Search", `{"query": "downtown"}`))

		require.True(t, res.Success)
		assert.Equal(t, true, res.Result["found"])
		assert.Equal(t, "Downtown", res.Result["label"])

		center, zoom := view.Camera()
		assert.InDelta(t, 37.7793, center.Lat, 0.0001)
		assert.Equal(t, float64(12), zoom, "zooms in to at least the search level")

		graphics := view.Graphics("assistant-graphics")
		require.Len(t, graphics, 1)
		assert.Equal(t, "Downtown", graphics[0].Label)
		assert.Equal(t, "pin", graphics[0].Symbol)
	})

	t.Run("keeps a closer zoom", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()
		center, _ := view.Camera()
		view.SetCamera(center, 15)

		res := runOne(t, view, command("Search", `{"query": "downtown"}`))

		require.True(t, res.Success)
		_, zoom := view.Camera()
		assert.Equal(t, float64(15), zoom)
	})

	t.Run("no match is a success with found false", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()
		before, _ := view.Camera()

		res := runOne(t, view, command("Search", `{"query": "atlantis"}`))

		require.True(t, res.Success, "not found must not be an error")
		assert.Equal(t, false, res.Result["found"])
		assert.Equal(t, "atlantis", res.Result["query"])

		after, _ := view.Camera()
		assert.Equal(t, before, after, "camera must not move")
		assert.Empty(t, view.Graphics("assistant-graphics"))
	})

	t.Run("service failure is an error, distinct from not found", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()
		view.FailGeocode(errors.New("upstream 503"))

		res := runOne(t, view, command("Search", `{"query": "downtown"}`))

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "geocode service failure")
	})

	t.Run("repeated query hits the cache", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		view := mem.NewMapView()

		first := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("Search", `{"query": "Downtown"}`),
		})
		require.True(t, first[0].Success)

		// The service going down no longer matters for a cached query.
		view.FailGeocode(errors.New("upstream 503"))
		second := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("Search", `{"query": "downtown"}`),
		})
		require.True(t, second[0].Success)
		assert.Equal(t, true, second[0].Result["found"])
	})

	t.Run("cached repeat does not duplicate the marker", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		view := mem.NewMapView()

		results := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("Search", `{"query": "downtown"}`),
			command("Pan", `{"direction": "west"}`),
			command("Search", `{"query": "downtown"}`),
		})
		for _, res := range results {
			require.True(t, res.Success)
		}

		assert.Len(t, view.Graphics("assistant-graphics"), 1)
		center, _ := view.Camera()
		assert.InDelta(t, -122.4193, center.Lon, 0.0001, "repeat still recenters")
	})

	t.Run("empty query fails", func(t *testing.T) {
		t.Parallel()
		res := runOne(t, mem.NewMapView(), command("Search", `{"query": "  "}`))

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "query is required")
	})
}
