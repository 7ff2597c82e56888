// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	Name        string
	Lang        string
	DurationSec int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Profile stores the player identity, preferred settings and
// personal records between runs. A single row is kept per install.
type Profile struct {
	Name          string
	Lang          string
	DurationSec   int
	BestWPM       float64
	BestAccuracy  float64
	TotalSessions int
	UpdatedAt     time.Time
}

// SessionRecord captures a finished timed session.
type SessionRecord struct {
	ID                 string
	FinishedAt         time.Time
	Lang               string
	DurationSec        int
	WPM                float64
	Accuracy           float64
	TypedChars         int
	CorrectChars       int
	ActiveMs           int64
	SentencesCompleted int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	FinishedAt         time.Time
	WPM                float64
	Accuracy           float64
	TypedChars         int
	SentencesCompleted int
	DurationMs         int64
}
