package mem

import (
	"encoding/json"
	"strings"

	"github.com/fieldreport/mapchat"
)

func commandArgs(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}

// scriptReply matches known phrases in the user's text and emits the map
// commands they ask for, in order of mention. Unrecognized text gets a
// plain informational answer with no commands.
func scriptReply(text string) (string, []mapchat.Command) {
	lower := strings.ToLower(text)

	var (
		commands []mapchat.Command
		actions  []string
	)

	if strings.Contains(lower, "zoom in") {
		commands = append(commands, mapchat.Command{
			Function:  "Zoom",
			Arguments: commandArgs(map[string]string{"direction": "in"}),
		})
		actions = append(actions, "zoomed in")
	}
	if strings.Contains(lower, "zoom out") {
		commands = append(commands, mapchat.Command{
			Function:  "Zoom",
			Arguments: commandArgs(map[string]string{"direction": "out"}),
		})
		actions = append(actions, "zoomed out")
	}

	for _, dir := range []string{"north", "south", "east", "west", "up", "down", "left", "right"} {
		if strings.Contains(lower, "pan "+dir) || strings.Contains(lower, "move "+dir) {
			commands = append(commands, mapchat.Command{
				Function:  "Pan",
				Arguments: commandArgs(map[string]string{"direction": dir}),
			})
			actions = append(actions, "panned "+dir)
		}
	}

	layerKeywords := []struct {
		keyword string
		layer   string
	}{
		{"shelter", "shelters"},
		{"flood", "flood-zones"},
		{"road", "road-closures"},
		{"closure", "road-closures"},
		{"incident", "incident-reports"},
	}
	for _, lk := range layerKeywords {
		keyword, layer := lk.keyword, lk.layer
		if (strings.Contains(lower, "show") || strings.Contains(lower, "hide") || strings.Contains(lower, "toggle")) &&
			strings.Contains(lower, keyword) && !hasCommand(commands, "ToggleLayer", layer) {
			commands = append(commands, mapchat.Command{
				Function:  "ToggleLayer",
				Arguments: commandArgs(map[string]string{"layer": layer}),
			})
			actions = append(actions, "toggled the "+layer+" layer")
		}
	}

	for _, prefix := range []string{"find ", "search for ", "search ", "where is "} {
		if idx := strings.Index(lower, prefix); idx >= 0 {
			query := strings.Trim(text[idx+len(prefix):], " ?.!")
			if query != "" {
				commands = append(commands, mapchat.Command{
					Function:  "Search",
					Arguments: commandArgs(map[string]string{"query": query}),
				})
				actions = append(actions, "searched for "+query)
			}
			break
		}
	}

	for _, basemap := range []string{"satellite", "streets", "topographic"} {
		if strings.Contains(lower, basemap) && !strings.Contains(lower, "street address") {
			commands = append(commands, mapchat.Command{
				Function:  "SetBasemap",
				Arguments: commandArgs(map[string]string{"basemap": basemap}),
			})
			actions = append(actions, "switched to the "+basemap+" basemap")
			break
		}
	}

	if strings.Contains(lower, "clear the map") || strings.Contains(lower, "clear markers") {
		commands = append(commands, mapchat.Command{Function: "ClearGraphics"})
		actions = append(actions, "cleared the markers")
	}

	if strings.Contains(lower, "describe") || strings.Contains(lower, "where am i") || strings.Contains(lower, "what am i looking at") {
		commands = append(commands, mapchat.Command{Function: "DescribeView"})
		actions = append(actions, "described the current view")
	}

	if len(commands) == 0 {
		return "I can zoom, pan, toggle layers, search for places, switch basemaps and describe the view. What would you like to see?", nil
	}
	return "Done. I " + joinActions(actions) + ".", commands
}

func hasCommand(commands []mapchat.Command, function, arg string) bool {
	for _, c := range commands {
		if c.Function == function && strings.Contains(string(c.Arguments), arg) {
			return true
		}
	}
	return false
}

func joinActions(actions []string) string {
	switch len(actions) {
	case 0:
		return ""
	case 1:
		return actions[0]
	default:
		return strings.Join(actions[:len(actions)-1], ", ") + " and " + actions[len(actions)-1]
	}
}
