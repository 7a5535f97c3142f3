package mapcmd_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fieldreport/mapchat"
	"github.com/fieldreport/mapchat/mapcmd"
	"github.com/fieldreport/mapchat/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func command(function, args string) mapchat.Command {
	c := mapchat.Command{Function: function}
	if args != "" {
		c.Arguments = json.RawMessage(args)
	}
	return c
}

func TestExecutor_ExecuteCommands(t *testing.T) {
	t.Parallel()

	t.Run("implements CommandExecutor interface", func(t *testing.T) {
		t.Parallel()
		var _ mapchat.CommandExecutor = (*mapcmd.Executor)(nil)
	})

	t.Run("preserves command order including unknown names", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		view := mem.NewMapView()

		results := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("Zoom", `{"direction": "in"}`),
			command("Pan", `{"direction": "left"}`),
			command("RouteToShelter", `{"shelter": "riverside"}`),
		})

		require.Len(t, results, 3)
		assert.Equal(t, "Zoom", results[0].Function)
		assert.True(t, results[0].Success)
		assert.Equal(t, "Pan", results[1].Function)
		assert.True(t, results[1].Success)

		// Unknown vocabulary degrades gracefully instead of failing the batch.
		assert.Equal(t, "RouteToShelter", results[2].Function)
		assert.True(t, results[2].Success)
		assert.Equal(t, "queued", results[2].Result["message"])
		assert.Equal(t, map[string]any{"shelter": "riverside"}, results[2].Result["args"])
	})

	t.Run("one failing command never aborts the batch", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		view := mem.NewMapView()

		results := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("Zoom", `{"direction": "in"}`),
			command("ToggleLayer", `{"layer": "missing"}`),
			command("Pan", `{"direction": "up"}`),
		})

		require.Len(t, results, 3)
		assert.True(t, results[0].Success)
		assert.False(t, results[1].Success)
		assert.Contains(t, results[1].Error, "layer not found")
		assert.True(t, results[2].Success)
	})

	t.Run("nil view fails every command without panicking", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()

		results := exec.ExecuteCommands(context.Background(), nil, []mapchat.Command{
			command("Zoom", `{"direction": "in"}`),
			command("DescribeView", ""),
		})

		require.Len(t, results, 2)
		for _, r := range results {
			assert.False(t, r.Success)
			assert.Contains(t, r.Error, "map view not initialized")
		}
	})

	t.Run("later commands see earlier mutations", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		view := mem.NewMapView()
		_, before := view.Camera()

		results := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("Zoom", `{"direction": "in"}`),
			command("DescribeView", ""),
		})

		require.Len(t, results, 2)
		require.True(t, results[1].Success)
		assert.Equal(t, before+1, results[1].Result["zoom"])
	})

	t.Run("dispatch is case-insensitive", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		view := mem.NewMapView()

		results := exec.ExecuteCommands(context.Background(), view, []mapchat.Command{
			command("zoom", `{"direction": "in"}`),
			command("toggle_layer", `{"layer": "shelters"}`),
		})

		require.Len(t, results, 2)
		assert.True(t, results[0].Success)
		assert.True(t, results[1].Success)
	})

	t.Run("empty batch returns empty results", func(t *testing.T) {
		t.Parallel()
		exec := mapcmd.NewExecutor()
		results := exec.ExecuteCommands(context.Background(), mem.NewMapView(), nil)
		assert.Empty(t, results)
	})
}
