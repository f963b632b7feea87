package timeline

import (
	"fmt"
	"time"

	"github.com/podiumlabs/podium/config"
	"github.com/podiumlabs/podium/models"
)

// Boundary indexes the five ordered schedule instants the editor
// maintains:
//
//	registrationStart <= registrationEnd <= tournamentStart
//	    <= tournamentEnd <= submissionEnd
type Boundary int

const (
	RegistrationStart Boundary = iota
	RegistrationEnd
	TournamentStart
	TournamentEnd
	SubmissionEnd

	boundaryCount
)

var boundaryNames = map[Boundary]string{
	RegistrationStart: "registrationStart",
	RegistrationEnd:   "registrationEnd",
	TournamentStart:   "tournamentStart",
	TournamentEnd:     "tournamentEnd",
	SubmissionEnd:     "submissionEnd",
}

func (b Boundary) String() string {
	return boundaryNames[b]
}

type bounds [boundaryCount]time.Time

// Model is the interactive schedule editor behind the tournament
// creation form. All edits clamp silently to the nearest valid instant
// so interaction stays fluid; Validate reports anything a submitted
// draft still violates. The model is a plain local value, replaced
// wholesale on every edit and surfaced to the owning form via its
// accessors; it is not safe for concurrent use and does not need to be.
type Model struct {
	now   time.Time
	rules config.RulesConfig

	// openRegistration drops the registration window entirely: entry
	// stays open while the tournament runs, and the registration
	// boundaries are absent from the visible span.
	openRegistration bool

	bounds bounds

	drag *dragSession
}

// New seeds a draft timeline relative to now: registration opens
// immediately and runs up to the earliest allowed tournament start,
// with the minimum tournament and submission windows after it.
func New(now time.Time, rules config.RulesConfig) *Model {
	start := now.Add(rules.MinimumLeadTime)
	m := &Model{
		now:   now,
		rules: rules,
	}
	m.bounds = bounds{
		RegistrationStart: now,
		RegistrationEnd:   start,
		TournamentStart:   start,
		TournamentEnd:     start.Add(rules.MinTournamentDuration),
		SubmissionEnd:     start.Add(rules.MinTournamentDuration).Add(rules.MinSubmissionWindow),
	}
	return m
}

// FromSchedule rebuilds the editor around an existing draft schedule.
func FromSchedule(now time.Time, rules config.RulesConfig, schedule models.Schedule) *Model {
	m := New(now, rules)
	if schedule.Registration == nil {
		m.openRegistration = true
	} else {
		m.bounds[RegistrationStart] = schedule.Registration.Start
		m.bounds[RegistrationEnd] = schedule.Registration.End
	}
	m.bounds[TournamentStart] = schedule.Game.Start
	m.bounds[TournamentEnd] = schedule.Game.End
	m.bounds[SubmissionEnd] = schedule.SubmissionEnd()
	return m
}

// SetOpenRegistration toggles between a fixed registration window and
// open registration.
func (m *Model) SetOpenRegistration(open bool) {
	m.openRegistration = open
	if !open {
		// Re-pin the window ahead of the tournament, gap closed.
		if m.bounds[RegistrationEnd].After(m.bounds[TournamentStart]) {
			m.bounds[RegistrationEnd] = m.bounds[TournamentStart]
		}
		if m.bounds[RegistrationStart].After(m.bounds[RegistrationEnd]) {
			m.bounds[RegistrationStart] = m.bounds[RegistrationEnd]
		}
		if m.bounds[RegistrationStart].Before(m.now) {
			m.bounds[RegistrationStart] = m.now
		}
	}
}

func (m *Model) OpenRegistration() bool {
	return m.openRegistration
}

func (m *Model) At(b Boundary) time.Time {
	return m.bounds[b]
}

// SetBoundary is the direct edit path: a date/time pick on one
// boundary. The target clamps to its valid range; nothing else moves,
// and dependent durations simply recompute.
func (m *Model) SetBoundary(b Boundary, t time.Time) {
	if m.openRegistration && (b == RegistrationStart || b == RegistrationEnd) {
		return
	}
	m.bounds[b] = m.clamp(b, t, m.bounds)
}

// clamp pins a candidate instant for one boundary into the range its
// neighbors allow, leaving every other boundary untouched.
func (m *Model) clamp(b Boundary, t time.Time, cur bounds) time.Time {
	var lo, hi time.Time
	bounded := true

	switch b {
	case RegistrationStart:
		lo, hi = m.now, cur[RegistrationEnd]
	case RegistrationEnd:
		lo, hi = cur[RegistrationStart], cur[TournamentStart]
	case TournamentStart:
		lo = laterOf(cur[RegistrationEnd], m.now.Add(m.rules.MinimumLeadTime))
		if m.openRegistration {
			lo = m.now.Add(m.rules.MinimumLeadTime)
		}
		hi = cur[TournamentEnd].Add(-m.rules.MinTournamentDuration)
	case TournamentEnd:
		lo = cur[TournamentStart].Add(m.rules.MinTournamentDuration)
		hi = cur[SubmissionEnd].Add(-m.rules.MinSubmissionWindow)
	case SubmissionEnd:
		lo = cur[TournamentEnd].Add(m.rules.MinSubmissionWindow)
		bounded = false
	}

	if t.Before(lo) {
		return lo
	}
	if bounded && t.After(hi) {
		return hi
	}
	return t
}

// Durations of the visible spans.

func (m *Model) RegistrationDuration() time.Duration {
	if m.openRegistration {
		return 0
	}
	return m.bounds[RegistrationEnd].Sub(m.bounds[RegistrationStart])
}

// Gap is the dead time between registration closing and the tournament
// starting; never negative.
func (m *Model) Gap() time.Duration {
	if m.openRegistration {
		return 0
	}
	return m.bounds[TournamentStart].Sub(m.bounds[RegistrationEnd])
}

func (m *Model) TournamentDuration() time.Duration {
	return m.bounds[TournamentEnd].Sub(m.bounds[TournamentStart])
}

func (m *Model) SubmissionDuration() time.Duration {
	return m.bounds[SubmissionEnd].Sub(m.bounds[TournamentEnd])
}

// TotalSpan is the visible editing span: registration + gap +
// tournament + submission with a fixed window, or tournament +
// submission with open registration (which overlaps the game window).
func (m *Model) TotalSpan() time.Duration {
	return m.bounds[SubmissionEnd].Sub(m.spanStart())
}

func (m *Model) spanStart() time.Time {
	if m.openRegistration {
		return m.bounds[TournamentStart]
	}
	return m.bounds[RegistrationStart]
}

// PositionPct places a boundary on the track as a percentage of the
// total span, for rendering the editor handles.
func (m *Model) PositionPct(b Boundary) float64 {
	span := m.TotalSpan()
	if span <= 0 {
		return 0
	}
	at := m.bounds[b].Sub(m.spanStart())
	if at < 0 {
		return 0
	}
	return float64(at) / float64(span) * 100
}

// Validate reports the first invariant a submitted draft violates.
func (m *Model) Validate() error {
	if !m.openRegistration {
		if m.bounds[RegistrationStart].Before(m.now) {
			return fmt.Errorf("registration opens in the past")
		}
		if m.bounds[RegistrationEnd].Before(m.bounds[RegistrationStart]) {
			return fmt.Errorf("registration closes before it opens")
		}
		if m.bounds[TournamentStart].Before(m.bounds[RegistrationEnd]) {
			return fmt.Errorf("tournament starts before registration closes")
		}
	}
	if m.bounds[TournamentStart].Before(m.now.Add(m.rules.MinimumLeadTime)) {
		return fmt.Errorf("tournament starts less than %s from now", m.rules.MinimumLeadTime)
	}
	if m.TournamentDuration() < m.rules.MinTournamentDuration {
		return fmt.Errorf("tournament shorter than %s", m.rules.MinTournamentDuration)
	}
	if m.SubmissionDuration() < m.rules.MinSubmissionWindow {
		return fmt.Errorf("submission window shorter than %s", m.rules.MinSubmissionWindow)
	}
	return nil
}

// Schedule exports the drafted boundaries in the shape the creation
// form submits and the phase resolver consumes.
func (m *Model) Schedule() models.Schedule {
	schedule := models.Schedule{
		Game: models.Window{
			Start: m.bounds[TournamentStart],
			End:   m.bounds[TournamentEnd],
		},
		SubmissionSeconds: int64(m.SubmissionDuration() / time.Second),
	}
	if !m.openRegistration {
		schedule.Registration = &models.Window{
			Start: m.bounds[RegistrationStart],
			End:   m.bounds[RegistrationEnd],
		}
	}
	return schedule
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
