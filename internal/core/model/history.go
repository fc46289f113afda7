package model

import "time"

// SessionRecord is one saved workout in the history log.
type SessionRecord struct {
	ID              string
	Mode            Mode
	StartedAt       time.Time
	FinishedAt      time.Time
	PrepSeconds     int
	WorkSeconds     int
	RestSeconds     int
	CooldownSeconds int
	RoundsCompleted int
	TotalSeconds    int
}

// RecoverySeconds is the time spent outside work phases.
func (record SessionRecord) RecoverySeconds() int {
	return record.PrepSeconds + record.RestSeconds + record.CooldownSeconds
}
