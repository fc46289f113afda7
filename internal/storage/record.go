package storage

import (
	"time"

	"workouttimer/internal/core/model"
	"workouttimer/internal/core/timekeeper"
)

// RecordFromSummary builds the history record for a finished session.
func RecordFromSummary(mode model.Mode, startedAt, finishedAt time.Time, summary timekeeper.Summary) *model.SessionRecord {
	return &model.SessionRecord{
		Mode:            mode,
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
		PrepSeconds:     summary.Totals.Prep,
		WorkSeconds:     summary.Totals.Work,
		RestSeconds:     summary.Totals.Rest,
		CooldownSeconds: summary.Totals.Cooldown,
		RoundsCompleted: summary.Rounds,
		TotalSeconds:    summary.Totals.Session(),
	}
}
