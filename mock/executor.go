package mock

import (
	"context"

	"github.com/fieldreport/mapchat"
)

// Executor is a test double for mapchat.CommandExecutor.
// Set ExecuteCommandsFn before calling ExecuteCommands.
type Executor struct {
	ExecuteCommandsFn func(ctx context.Context, view mapchat.MapView, commands []mapchat.Command) []mapchat.CommandResult
}

// ExecuteCommands delegates to ExecuteCommandsFn.
func (e *Executor) ExecuteCommands(ctx context.Context, view mapchat.MapView, commands []mapchat.Command) []mapchat.CommandResult {
	return e.ExecuteCommandsFn(ctx, view, commands)
}
