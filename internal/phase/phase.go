package phase

import (
	"time"

	"github.com/podiumlabs/podium/models"
)

// Phase is the lifecycle stage of a tournament, derived from its
// schedule and the current time. It is recomputed on every read and
// never stored.
type Phase int

const (
	Upcoming Phase = iota
	Registration
	Live
	Submission
	Finalized
)

var phaseNames = map[Phase]string{
	Upcoming:     "Upcoming",
	Registration: "Registration",
	Live:         "Live",
	Submission:   "Submission",
	Finalized:    "Finalized",
}

func (p Phase) String() string {
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Resolve derives the phase from the schedule. Rules apply in order,
// first match wins:
//
//  1. before the registration window opens   -> Upcoming
//  2. inside the registration window         -> Registration
//  3. before the game window opens           -> Upcoming
//  4. inside the game window                 -> Live
//  5. inside the submission window           -> Submission
//  6. otherwise                              -> Finalized
func Resolve(now time.Time, schedule models.Schedule) Phase {
	if reg := schedule.Registration; reg != nil {
		if now.Before(reg.Start) {
			return Upcoming
		}
		if now.Before(reg.End) {
			return Registration
		}
	}

	if now.Before(schedule.Game.Start) {
		return Upcoming
	}
	if now.Before(schedule.Game.End) {
		return Live
	}

	if schedule.SubmissionSeconds > 0 && now.Before(schedule.SubmissionEnd()) {
		return Submission
	}

	return Finalized
}
