// Package modkit provides module wiring and core deps
package modkit

import (
	"taxkaki/internal/adapters/completion"
	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/platform/config"
	"taxkaki/internal/platform/logger"
	"taxkaki/internal/platform/metrics"
	"taxkaki/internal/platform/store"
	ptime "taxkaki/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Clock   ptime.Clock
	Metrics *metrics.Metrics

	// Store is optional and only set when a SQL backed driver is configured
	Store *store.Store

	Directory  rowstore.Table
	Chatlog    rowstore.Table
	Completion completion.Client
}

// ClockOrSystem returns Clock, or the wall clock when none was wired
func (d Deps) ClockOrSystem() ptime.Clock {
	if d.Clock == nil {
		return ptime.System{}
	}
	return d.Clock
}
