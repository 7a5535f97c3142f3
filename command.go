package mapchat

import (
	"context"
	"encoding/json"
	"fmt"
)

// Command is a structured map instruction emitted by the assistant.
// Immutable once received.
type Command struct {
	Function  string
	Arguments json.RawMessage
}

// DecodeArguments unmarshals the command's arguments into v.
// A nil or empty Arguments payload decodes as all zero values.
func (c Command) DecodeArguments(v any) error {
	if len(c.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(c.Arguments, v); err != nil {
		return fmt.Errorf("decode %s arguments: %w", c.Function, err)
	}
	return nil
}

// CommandResult is the outcome of executing one Command. Results are
// produced 1:1 and order-preserving with the command list they execute.
type CommandResult struct {
	Function string
	Success  bool
	Result   map[string]any
	Error    string
}

// CommandExecutor runs an ordered command batch against a map view.
// Implementations absorb per-command failures into CommandResult.Error;
// ExecuteCommands never aborts the batch.
type CommandExecutor interface {
	ExecuteCommands(ctx context.Context, view MapView, commands []Command) []CommandResult
}
