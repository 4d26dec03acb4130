// Package model defines shared data structures.
package model

import "time"

// Config defines interactive display settings.
type Config struct {
	Lang string
	FPS  int
}

// SnapshotConfig defines options for PNG export.
type SnapshotConfig struct {
	Lang       string
	Width      int
	Font       string
	Out        string
	Background string
	Progress   float64
	Frames     int
}

// QuizAttempt records one submitted quiz answer.
type QuizAttempt struct {
	ID         int64
	AnsweredAt time.Time
	Lang       string
	Answer     string
	Correct    bool
}

// AttemptFilter narrows which attempts are listed.
type AttemptFilter struct {
	Lang  string
	Since *time.Time
	Last  int
}
