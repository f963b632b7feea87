package timeline

import "time"

// DragMode selects which cascade semantics a pointer interaction uses.
// The two must stay distinct: a handle moves one boundary and lets its
// dependent durations recompute, while a segment shifts both of its
// endpoints by the same delta, preserving the segment's internal
// duration and carrying everything after it along.
type DragMode int

const (
	DragHandle DragMode = iota
	DragSegment
)

// Segment is a draggable span between two boundaries.
type Segment int

const (
	SegmentRegistration Segment = iota // registrationStart -> registrationEnd
	SegmentTournament                  // tournamentStart -> tournamentEnd
	SegmentSubmission                  // tournamentEnd -> submissionEnd
)

// leadBoundary is the first boundary a segment drag shifts; every
// boundary from it onward moves by the same delta.
func (s Segment) leadBoundary() Boundary {
	switch s {
	case SegmentTournament:
		return TournamentStart
	case SegmentSubmission:
		return TournamentEnd
	default:
		return RegistrationStart
	}
}

type DragTarget struct {
	Mode     DragMode
	Boundary Boundary // DragHandle
	Segment  Segment  // DragSegment
}

func HandleTarget(b Boundary) DragTarget {
	return DragTarget{Mode: DragHandle, Boundary: b}
}

func SegmentTarget(s Segment) DragTarget {
	return DragTarget{Mode: DragSegment, Segment: s}
}

// dragSession is the short-lived state between pointer-down and
// pointer-up. Every move recomputes from the pointer-down snapshot and
// the current pointer position, so repeated moves accumulate no error.
type dragSession struct {
	target   DragTarget
	anchorPx float64
	widthPx  float64
	span     time.Duration
	snapshot bounds
}

// BeginDrag opens a drag session: the anchor pointer position, the
// track width in pixels and the boundary snapshot are captured once.
func (m *Model) BeginDrag(target DragTarget, pointerPx, widthPx float64) {
	if m.openRegistration {
		if target.Mode == DragHandle && (target.Boundary == RegistrationStart || target.Boundary == RegistrationEnd) {
			return
		}
		if target.Mode == DragSegment && target.Segment == SegmentRegistration {
			return
		}
	}
	m.drag = &dragSession{
		target:   target,
		anchorPx: pointerPx,
		widthPx:  widthPx,
		span:     m.TotalSpan(),
		snapshot: m.bounds,
	}
}

// Drag maps the pointer offset from the anchor proportionally across
// the captured span and applies it to the snapshot. Out-of-range
// targets clamp silently; editing never errors mid-gesture.
func (m *Model) Drag(pointerPx float64) {
	s := m.drag
	if s == nil || s.widthPx <= 0 || s.span <= 0 {
		return
	}
	fraction := (pointerPx - s.anchorPx) / s.widthPx
	delta := time.Duration(fraction * float64(s.span))
	m.bounds = m.applyDelta(s.snapshot, s.target, delta)
}

// EndDrag closes the session. Releasing the pointer anywhere ends the
// gesture; there is nothing to cancel or roll back.
func (m *Model) EndDrag() {
	m.drag = nil
}

func (m *Model) Dragging() bool {
	return m.drag != nil
}

// ApplyDelta is the direct (non-pixel) form of a drag gesture, used by
// keyboard nudges and tests.
func (m *Model) ApplyDelta(target DragTarget, delta time.Duration) {
	m.bounds = m.applyDelta(m.bounds, target, delta)
}

// applyDelta is the one reducer both interaction modes run through.
func (m *Model) applyDelta(snapshot bounds, target DragTarget, delta time.Duration) bounds {
	out := snapshot

	switch target.Mode {
	case DragHandle:
		b := target.Boundary
		out[b] = m.clamp(b, snapshot[b].Add(delta), snapshot)

	case DragSegment:
		lead := target.Segment.leadBoundary()
		delta = m.clampSegmentDelta(snapshot, lead, delta)
		for b := lead; b < boundaryCount; b++ {
			out[b] = snapshot[b].Add(delta)
		}
	}

	return out
}

// clampSegmentDelta limits a segment shift so the lead boundary never
// crosses below the floor set by the boundaries that stay put. There is
// no upper limit: everything after the segment shifts with it.
func (m *Model) clampSegmentDelta(snapshot bounds, lead Boundary, delta time.Duration) time.Duration {
	var floor time.Time
	switch lead {
	case RegistrationStart:
		floor = m.now
	case TournamentStart:
		floor = m.now.Add(m.rules.MinimumLeadTime)
		if !m.openRegistration {
			floor = laterOf(floor, snapshot[RegistrationEnd])
		}
	case TournamentEnd:
		floor = snapshot[TournamentStart].Add(m.rules.MinTournamentDuration)
	}

	if lowest := floor.Sub(snapshot[lead]); delta < lowest {
		return lowest
	}
	return delta
}
