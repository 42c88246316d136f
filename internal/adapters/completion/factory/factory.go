// Package factory picks the completion client named by CORE_COMPLETION_DRIVER
package factory

import (
	"time"

	"taxkaki/internal/adapters/completion"
	"taxkaki/internal/adapters/completion/echo"
	"taxkaki/internal/adapters/completion/openai"
	"taxkaki/internal/platform/config"
	"taxkaki/internal/platform/metrics"
)

// Driver names accepted in CORE_COMPLETION_DRIVER
const (
	DriverEcho   = "echo"
	DriverOpenAI = "openai"
)

// FromConfig builds the client under c (already prefixed with CORE_COMPLETION_)
// m may be nil, in which case the client is returned uninstrumented
func FromConfig(c config.Conf, m *metrics.Metrics) completion.Client {
	var cl completion.Client = echo.Client{}
	if c.MayEnum("DRIVER", DriverEcho, DriverEcho, DriverOpenAI) == DriverOpenAI {
		cl = openai.New(openai.Options{
			BaseURL: c.MayString("BASE_URL", ""),
			APIKey:  c.MustString("API_KEY"),
			Timeout: c.MayDuration("TIMEOUT", 60*time.Second),
		})
	}
	return completion.Instrument(cl, m)
}
