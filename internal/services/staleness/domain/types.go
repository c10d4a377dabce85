// Package domain holds staleness sweep types
package domain

// SweepParams controls one sweep pass
type SweepParams struct {
	// StalenessDays marks a domain stale when its newest fact is older
	StalenessDays int
	// Limit caps enqueued domains per pass, 0 means unlimited
	Limit int
	// DryRun plans the sweep without writing queue rows
	DryRun bool
}

// StaleDomain is one tracked domain whose velocity feed has gone quiet
type StaleDomain struct {
	DomainID string
	// LastFactDay is empty when the domain has never reported
	LastFactDay string
}

// SweepResult summarizes one pass
type SweepResult struct {
	Scanned  int
	Enqueued int
}
