// Package translator turns free-text chat messages into structured
// inventory commands by calling an external language model. The model is
// an untrusted oracle: anything it returns that does not decode into a
// recognized action degrades to ActionUnknown instead of an error.
package translator

import (
	"context"
	"encoding/json"
	"strings"
)

const (
	ActionBalance        = "balance"
	ActionUpdate         = "update"
	ActionLowStock       = "low-stock"
	ActionHistory        = "history"
	ActionForecast       = "forecast"
	ActionAdd            = "add"
	ActionTopConsumption = "top-consumption"
	ActionRelocate       = "relocate"
	ActionRemove         = "remove"
	ActionRename         = "rename"
	ActionKnowledgeQuery = "knowledge-query"
	ActionUnknown        = "unknown"
)

// Command is the structured result of interpreting a chat message.
type Command struct {
	Action string
	Args   []string

	// Reason is set when Action is ActionUnknown and explains why the
	// message could not be interpreted.
	Reason string
}

// Translator interprets a raw chat message for a given session role.
type Translator interface {
	Interpret(ctx context.Context, text, role string) (Command, error)
}

var recognizedActions = map[string]bool{
	ActionBalance:        true,
	ActionUpdate:         true,
	ActionLowStock:       true,
	ActionHistory:        true,
	ActionForecast:       true,
	ActionAdd:            true,
	ActionTopConsumption: true,
	ActionRelocate:       true,
	ActionRemove:         true,
	ActionRename:         true,
	ActionKnowledgeQuery: true,
	ActionUnknown:        true,
}

// decodeCommand parses the model output strictly. Models like to wrap
// JSON in markdown fences, so those are stripped first; every other shape
// deviation yields ActionUnknown.
func decodeCommand(raw string) Command {
	raw = stripFences(raw)

	var payload struct {
		Action string   `json:"action"`
		Args   []string `json:"args"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Command{Action: ActionUnknown, Reason: "svaret var inte giltig JSON"}
	}

	action := strings.ToLower(strings.TrimSpace(payload.Action))
	if action == "" {
		return Command{Action: ActionUnknown, Reason: "action saknas"}
	}
	if !recognizedActions[action] {
		return Command{Action: ActionUnknown, Reason: "okänd action: " + action}
	}

	args := make([]string, 0, len(payload.Args))
	for _, a := range payload.Args {
		args = append(args, strings.TrimSpace(a))
	}
	return Command{Action: action, Args: args}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
