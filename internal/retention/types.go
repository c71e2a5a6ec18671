package retention

import "time"

type SweepOutput struct {
	Expired int64
	Deleted int64
	// StaleGenerating counts reports stuck in generating past the configured threshold.
	StaleGenerating int64
	// Skipped is set when another replica holds the sweep lock.
	Skipped    bool
	StartedAt  time.Time
	FinishedAt time.Time
}
