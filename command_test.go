package mapchat_test

import (
	"encoding/json"
	"testing"

	"github.com/fieldreport/mapchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_DecodeArguments(t *testing.T) {
	t.Parallel()

	t.Run("decodes into typed struct", func(t *testing.T) {
		t.Parallel()
		cmd := mapchat.Command{
			Function:  "Zoom",
			Arguments: json.RawMessage(`{"direction": "in"}`),
		}
		var args struct {
			Direction string `json:"direction"`
		}
		require.NoError(t, cmd.DecodeArguments(&args))
		assert.Equal(t, "in", args.Direction)
	})

	t.Run("empty arguments decode as zero values", func(t *testing.T) {
		t.Parallel()
		cmd := mapchat.Command{Function: "ClearGraphics"}
		var args struct {
			Overlay string `json:"overlay"`
		}
		require.NoError(t, cmd.DecodeArguments(&args))
		assert.Empty(t, args.Overlay)
	})

	t.Run("malformed arguments name the function", func(t *testing.T) {
		t.Parallel()
		cmd := mapchat.Command{
			Function:  "Pan",
			Arguments: json.RawMessage(`{"direction":`),
		}
		var args struct{}
		err := cmd.DecodeArguments(&args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Pan")
	})
}
