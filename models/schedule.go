package models

import "time"

type Window struct {
	Start time.Time `dynamodbav:"start" json:"start"`
	End   time.Time `dynamodbav:"end" json:"end"`
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Schedule is fixed at tournament creation and never mutated afterwards.
// A nil Registration window means open registration: anyone may enter
// until the game window closes.
type Schedule struct {
	Registration      *Window `dynamodbav:"registration,omitempty" json:"registration,omitempty"`
	Game              Window  `dynamodbav:"game" json:"game"`
	SubmissionSeconds int64   `dynamodbav:"submission_seconds" json:"submissionSeconds"`
}

func (s Schedule) SubmissionDuration() time.Duration {
	return time.Duration(s.SubmissionSeconds) * time.Second
}

// SubmissionEnd is the moment results stop being accepted.
func (s Schedule) SubmissionEnd() time.Time {
	return s.Game.End.Add(s.SubmissionDuration())
}
