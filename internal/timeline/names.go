package timeline

// ParseBoundary resolves the wire name of a boundary handle.
func ParseBoundary(name string) (Boundary, bool) {
	for b, n := range boundaryNames {
		if n == name {
			return b, true
		}
	}
	return 0, false
}

var segmentNames = map[Segment]string{
	SegmentRegistration: "registration",
	SegmentTournament:   "tournament",
	SegmentSubmission:   "submission",
}

func (s Segment) String() string {
	return segmentNames[s]
}

// ParseSegment resolves the wire name of a draggable segment.
func ParseSegment(name string) (Segment, bool) {
	for s, n := range segmentNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}
