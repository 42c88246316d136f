package module

import (
	"taxkaki/internal/core/convo"
	"taxkaki/internal/platform/config"
)

// Options controls the window and the model
type Options struct {
	Model        string
	WindowSize   int
	SystemPrompt string
}

// FromConfig reads CORE_CONVERSATION_* and CORE_COMPLETION_MODEL
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CONVERSATION_")
	return Options{
		Model:        cfg.Prefix("CORE_COMPLETION_").MayString("MODEL", "gpt-4o-mini"),
		WindowSize:   c.MayInt("WINDOW", convo.DefaultWindowSize),
		SystemPrompt: c.MayString("SYSTEM_PROMPT", convo.DefaultSystemPrompt),
	}
}
