package mapcmd_test

import (
	"testing"

	"github.com/fieldreport/mapchat/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBasemap(t *testing.T) {
	t.Parallel()

	t.Run("switches the basemap", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		res := runOne(t, view, command("SetBasemap", `{"basemap": "satellite"}`))

		require.True(t, res.Success)
		assert.Equal(t, "satellite", view.Basemap())
	})

	t.Run("unknown basemap fails", func(t *testing.T) {
		t.Parallel()
		view := mem.NewMapView()

		res := runOne(t, view, command("SetBasemap", `{"basemap": "hologram"}`))

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "hologram")
		assert.Equal(t, "streets", view.Basemap())
	})

	t.Run("missing identifier fails", func(t *testing.T) {
		t.Parallel()
		res := runOne(t, mem.NewMapView(), command("SetBasemap", `{}`))

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "basemap is required")
	})
}
