// Package convo builds the bounded context window sent to the language model
package convo

import (
	"slices"
	"strings"
	"time"
)

// Role is the author of a turn
type Role string

// Roles
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole maps "user" in any case to RoleUser and everything else to RoleAssistant
func ParseRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleUser)) {
		return RoleUser
	}
	return RoleAssistant
}

// Turn is one stored chat log entry
type Turn struct {
	Timestamp string `json:"timestamp"`
	PAN       string `json:"pan"`
	Role      Role   `json:"role"`
	Content   string `json:"message"`
}

// Message is one entry of the window, shaped like a chat completion message
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DefaultWindowSize is how many turns are kept when Options leaves it unset
const DefaultWindowSize = 12

// DefaultSystemPrompt is the instruction every window starts with
const DefaultSystemPrompt = "You are Tax Kaki, a friendly assistant for Singapore tax questions. " +
	"Answer clearly and briefly, say when something depends on personal circumstances, " +
	"and suggest contacting IRAS for rulings on specific cases."

// Options tune BuildWindow
type Options struct {
	WindowSize   int
	SystemPrompt string
}

func (o Options) size() int {
	if o.WindowSize <= 0 {
		return DefaultWindowSize
	}
	return o.WindowSize
}

func (o Options) prompt() string {
	if strings.TrimSpace(o.SystemPrompt) == "" {
		return DefaultSystemPrompt
	}
	return o.SystemPrompt
}

var layouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"}

// Instant parses a stored timestamp; anything unreadable is the Unix epoch
func Instant(ts string) time.Time {
	ts = strings.TrimSpace(ts)
	for _, l := range layouts {
		if t, err := time.Parse(l, ts); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// BuildWindow returns system prompt, the last N turns oldest first, then the question
// turns is not modified; equal timestamps keep their store order
func BuildWindow(turns []Turn, question string, opts Options) []Message {
	sorted := slices.Clone(turns)
	slices.SortStableFunc(sorted, func(a, b Turn) int {
		return Instant(a.Timestamp).Compare(Instant(b.Timestamp))
	})
	if n := opts.size(); len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	out := make([]Message, 0, len(sorted)+2)
	out = append(out, Message{Role: RoleSystem, Content: opts.prompt()})
	for _, t := range sorted {
		out = append(out, Message{Role: ParseRole(string(t.Role)), Content: t.Content})
	}
	return append(out, Message{Role: RoleUser, Content: question})
}
