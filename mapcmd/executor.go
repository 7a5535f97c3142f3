package mapcmd

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fieldreport/mapchat"
)

// Compile-time interface check.
var _ mapchat.CommandExecutor = (*Executor)(nil)

// defaultOverlay is the overlay layer search markers land on. It is created
// by the view on first use.
const defaultOverlay = "assistant-graphics"

// Executor dispatches map commands to the appropriate operation. Commands
// run sequentially in batch order because later commands may depend on state
// mutated by earlier ones (a Zoom before a Search). A failing command never
// aborts the batch; its error is absorbed into the result.
//
// The executor is stateless across calls except for a geocode cache the
// ClearGraphics command resets.
type Executor struct {
	logger *log.Logger

	mu       sync.Mutex
	geocache map[string]mapchat.GeocodeResult
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor creates a new Executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		logger:   log.New(io.Discard),
		geocache: make(map[string]mapchat.GeocodeResult),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecuteCommands runs the batch in order and returns one result per
// command, positionally matched. It never returns early: failures and
// unknown function names produce results, not aborts.
func (e *Executor) ExecuteCommands(ctx context.Context, view mapchat.MapView, commands []mapchat.Command) []mapchat.CommandResult {
	results := make([]mapchat.CommandResult, 0, len(commands))
	for _, cmd := range commands {
		res := e.execute(ctx, view, cmd)
		if !res.Success {
			e.logger.Debug("map command failed", "function", cmd.Function, "err", res.Error)
		}
		results = append(results, res)
	}
	return results
}

// execute dispatches one command by function name, case-insensitively.
// Unknown names return a non-failing "queued" placeholder so partial AI
// command vocabularies degrade gracefully.
func (e *Executor) execute(ctx context.Context, view mapchat.MapView, cmd mapchat.Command) mapchat.CommandResult {
	if view == nil {
		return failResult(cmd.Function, mapchat.ErrViewNotInitialized)
	}

	var (
		payload map[string]any
		err     error
	)
	switch normalize(cmd.Function) {
	case "zoom":
		payload, err = e.executeZoom(view, cmd)
	case "pan":
		payload, err = e.executePan(view, cmd)
	case "togglelayer":
		payload, err = e.executeToggleLayer(view, cmd)
	case "search":
		payload, err = e.executeSearch(ctx, view, cmd)
	case "setbasemap", "basemap":
		payload, err = e.executeSetBasemap(view, cmd)
	case "cleargraphics", "clear":
		payload, err = e.executeClear(view, cmd)
	case "describeview", "describe":
		payload, err = e.executeDescribe(view, cmd)
	default:
		return okResult(cmd.Function, map[string]any{
			"message": "queued",
			"args":    rawArgs(cmd),
		})
	}
	if err != nil {
		return failResult(cmd.Function, err)
	}
	return okResult(cmd.Function, payload)
}

func normalize(function string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(function)), "_", "")
}

// rawArgs decodes arguments into a generic map for echoing back in queued
// results. Malformed payloads echo as raw text.
func rawArgs(cmd mapchat.Command) any {
	if len(cmd.Arguments) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(cmd.Arguments, &m); err != nil {
		return string(cmd.Arguments)
	}
	return m
}
