package module

import (
	"ranksignal/internal/platform/config"
)

// Options for the staleness module
type Options struct {
	StalenessDays int
	Limit         int
}

// FromConfig fills options from environment
// ANALYTICS_STALENESS_DAYS (default 7) marks a domain stale after that many quiet days
// ANALYTICS_STALENESS_LIMIT (default 0) caps enqueued domains per sweep, 0 is unlimited
func FromConfig(cfg config.Conf) Options {
	ana := cfg.Prefix("ANALYTICS_")
	return Options{
		StalenessDays: ana.MayInt("STALENESS_DAYS", 7),
		Limit:         ana.MayInt("STALENESS_LIMIT", 0),
	}
}
