package assistantclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/generative-ai-go/genai"
)

const clockLayout = "3:04 PM"

const promptTemplate = `You are an assistant that manages a weekly schedule of recurring events.
Each event has a day of the week, a time, and a list of activities that need covering.

The current schedule is:
%s

The user instruction is:
%s

Respond with a JSON array of edit objects. Each object has:
- "day": day of the week, e.g. "Sunday" (required)
- "time": clock time in 12-hour format, e.g. "10:30 AM" (required)
- "activities": list of activity names (omit to keep the existing activities)
- "delete": true to remove the event at that day and time

Only include events that should change. Respond with JSON only.`

// EventEdit is a single proposed change to the recurring schedule. An edit
// targets the event at (Day, Time); Delete removes it, otherwise it is
// created or updated in place.
type EventEdit struct {
	Day        string   `json:"day"`
	Time       string   `json:"time"`
	Activities []string `json:"activities,omitempty"`
	Delete     bool     `json:"delete,omitempty"`
}

// rawEdit tolerates the model returning activities as either a JSON list or
// a single comma-separated string
type rawEdit struct {
	Day        string          `json:"day"`
	Time       string          `json:"time"`
	Activities json.RawMessage `json:"activities"`
	Delete     bool            `json:"delete"`
}

// ProposeEventEdits asks the model for schedule edits given the current
// events and a natural-language instruction. Returned edits are validated
// and normalised; an error is returned if the model output cannot be parsed.
func (c *Client) ProposeEventEdits(ctx context.Context, instruction string, current []EventEdit) ([]EventEdit, error) {
	scheduleJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current schedule: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, string(scheduleJSON), instruction)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("model returned an empty response")
	}

	rawEdits, err := parseEdits(text)
	if err != nil {
		return nil, err
	}

	edits := make([]EventEdit, 0, len(rawEdits))
	for i, raw := range rawEdits {
		edit, err := normaliseEdit(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid edit at index %d: %w", i, err)
		}
		edits = append(edits, edit)
	}

	return edits, nil
}

func parseEdits(text string) ([]rawEdit, error) {
	cleaned := stripCodeFences(text)

	var edits []rawEdit
	if err := json.Unmarshal([]byte(cleaned), &edits); err == nil {
		return edits, nil
	}

	// Some responses wrap a single edit in a bare object
	var single rawEdit
	if err := json.Unmarshal([]byte(cleaned), &single); err != nil {
		return nil, fmt.Errorf("failed to parse model response as edits: %w", err)
	}

	return []rawEdit{single}, nil
}

func normaliseEdit(raw rawEdit) (EventEdit, error) {
	day := titleWord(strings.TrimSpace(raw.Day))
	if day == "" {
		return EventEdit{}, fmt.Errorf("day is required")
	}

	clock := strings.TrimSpace(raw.Time)
	if clock == "" {
		return EventEdit{}, fmt.Errorf("time is required")
	}
	if _, err := time.Parse(clockLayout, strings.ToUpper(clock)); err != nil {
		return EventEdit{}, fmt.Errorf("time %q is not a valid clock time: %w", raw.Time, err)
	}

	activities, err := parseActivities(raw.Activities)
	if err != nil {
		return EventEdit{}, err
	}

	return EventEdit{
		Day:        day,
		Time:       strings.ToUpper(clock),
		Activities: activities,
		Delete:     raw.Delete,
	}, nil
}

func parseActivities(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimNonEmpty(list), nil
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil, fmt.Errorf("activities must be a list or string")
	}

	return trimNonEmpty(strings.Split(joined, ",")), nil
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(builder.String())
}

func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func titleWord(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
