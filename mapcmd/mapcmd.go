// Package mapcmd executes assistant-issued map commands against a map view.
package mapcmd

import "github.com/fieldreport/mapchat"

func okResult(function string, payload map[string]any) mapchat.CommandResult {
	return mapchat.CommandResult{
		Function: function,
		Success:  true,
		Result:   payload,
	}
}

func failResult(function string, err error) mapchat.CommandResult {
	return mapchat.CommandResult{
		Function: function,
		Success:  false,
		Error:    err.Error(),
	}
}
