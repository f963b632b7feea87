package service

import (
	"fmt"
	"time"

	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/internal/timeline"
	"github.com/podiumlabs/podium/models"
)

// TimelinePreviewInput is one stateless round trip of the creation
// form's schedule editor: the current draft plus an optional gesture to
// apply. The server holds no editor state between calls; the form owns
// the draft and sends it whole each time.
type TimelinePreviewInput struct {
	Schedule models.Schedule  `json:"schedule"`
	Gesture  *TimelineGesture `json:"gesture,omitempty"`
}

type TimelineGesture struct {
	// Mode is "set", "handle" or "segment".
	Mode     string `json:"mode"`
	Boundary string `json:"boundary,omitempty"`
	Segment  string `json:"segment,omitempty"`

	// DeltaSeconds drives handle and segment gestures; SetTo drives a
	// direct date pick.
	DeltaSeconds int64      `json:"deltaSeconds,omitempty"`
	SetTo        *time.Time `json:"setTo,omitempty"`
}

type TimelinePreview struct {
	Schedule         models.Schedule      `json:"schedule"`
	Boundaries       map[string]time.Time `json:"boundaries"`
	Positions        map[string]float64   `json:"positions"`
	TotalSpanSeconds int64                `json:"totalSpanSeconds"`
	Valid            bool                 `json:"valid"`
	Problem          string               `json:"problem,omitempty"`
}

func (s *tournamentService) PreviewTimeline(
	input TimelinePreviewInput,
	now time.Time,
) (*TimelinePreview, *apperrors.AppError) {
	draft := timeline.FromSchedule(now, s.rules, input.Schedule)

	if input.Gesture != nil {
		if err := applyGesture(draft, input.Gesture); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid timeline gesture")
		}
	}

	preview := &TimelinePreview{
		Schedule:         draft.Schedule(),
		Boundaries:       make(map[string]time.Time),
		Positions:        make(map[string]float64),
		TotalSpanSeconds: int64(draft.TotalSpan() / time.Second),
		Valid:            true,
	}

	for b := timeline.RegistrationStart; b <= timeline.SubmissionEnd; b++ {
		if draft.OpenRegistration() && (b == timeline.RegistrationStart || b == timeline.RegistrationEnd) {
			continue
		}
		preview.Boundaries[b.String()] = draft.At(b)
		preview.Positions[b.String()] = draft.PositionPct(b)
	}

	if err := draft.Validate(); err != nil {
		preview.Valid = false
		preview.Problem = err.Error()
	}

	return preview, nil
}

func applyGesture(draft *timeline.Model, gesture *TimelineGesture) error {
	delta := time.Duration(gesture.DeltaSeconds) * time.Second

	switch gesture.Mode {
	case "set":
		boundary, ok := timeline.ParseBoundary(gesture.Boundary)
		if !ok {
			return fmt.Errorf("unknown boundary %q", gesture.Boundary)
		}
		if gesture.SetTo == nil {
			return fmt.Errorf("set gesture needs setTo")
		}
		draft.SetBoundary(boundary, *gesture.SetTo)

	case "handle":
		boundary, ok := timeline.ParseBoundary(gesture.Boundary)
		if !ok {
			return fmt.Errorf("unknown boundary %q", gesture.Boundary)
		}
		draft.ApplyDelta(timeline.HandleTarget(boundary), delta)

	case "segment":
		segment, ok := timeline.ParseSegment(gesture.Segment)
		if !ok {
			return fmt.Errorf("unknown segment %q", gesture.Segment)
		}
		draft.ApplyDelta(timeline.SegmentTarget(segment), delta)

	default:
		return fmt.Errorf("unknown gesture mode %q", gesture.Mode)
	}

	return nil
}
