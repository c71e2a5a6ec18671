package http

import (
	"time"

	"report-srv/internal/retention"
)

type sweepResp struct {
	Expired         int64  `json:"expired"`
	Deleted         int64  `json:"deleted"`
	StaleGenerating int64  `json:"stale_generating"`
	Skipped         bool   `json:"skipped"`
	StartedAt       string `json:"started_at"`
	FinishedAt      string `json:"finished_at"`
}

func (h *handler) newSweepResp(o retention.SweepOutput) sweepResp {
	return sweepResp{
		Expired:         o.Expired,
		Deleted:         o.Deleted,
		StaleGenerating: o.StaleGenerating,
		Skipped:         o.Skipped,
		StartedAt:       o.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:      o.FinishedAt.UTC().Format(time.RFC3339),
	}
}
