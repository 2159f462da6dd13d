// Package model defines shared data structures.
package model

import "time"

// PlayConfig defines typing session settings.
type PlayConfig struct {
	PromptsPath string
	Filter      string
	Count       int
	SkipKey     string
	QuitKey     string
	Seed        int64
	Width       float64
}

// Record is one parsed row of the typeracerdata texts table.
type Record struct {
	Rank       int     `json:"rank"`
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Length     int     `json:"length"`
	Races      int     `json:"races"`
	Difficulty float64 `json:"difficulty"`
	TopScore   float64 `json:"top_score"`
	Top100     float64 `json:"top_100"`
	Average    float64 `json:"average"`
	DateActive string  `json:"date_active"`
}

// Prompt is a target text with an optional source label.
type Prompt struct {
	Text   string
	Source string
}

// Outcome describes how a round ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeQuit      Outcome = "quit"
)

// RoundResult captures a finished round. Lengths are in bytes.
type RoundResult struct {
	Source     string
	Outcome    Outcome
	TargetLen  int
	TypedLen   int
	CorrectLen int
	EndedAt    time.Time
}

// OutcomeAggregate counts round outcomes for a single source.
type OutcomeAggregate struct {
	Source    string
	Completed int
	Skipped   int
	Quit      int
}

// Total returns the number of rounds across all outcomes.
func (a OutcomeAggregate) Total() int {
	return a.Completed + a.Skipped + a.Quit
}
