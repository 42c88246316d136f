package module

import (
	"time"

	"taxkaki/internal/platform/config"
)

// Options controls directory evaluation and session tokens
type Options struct {
	// Location is the zone "today" is computed in for expiry checks
	Location *time.Location

	// SessionSecret signs bearer tokens, empty disables them
	SessionSecret string
	SessionTTL    time.Duration
}

// FromConfig reads CORE_AUTH_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_AUTH_")
	return Options{
		Location:      c.MayLocation("TIMEZONE", "Local"),
		SessionSecret: c.MayString("SESSION_SECRET", ""),
		SessionTTL:    c.MayDuration("SESSION_TTL", 12*time.Hour),
	}
}
