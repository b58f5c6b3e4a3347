// Package textproc turns raw speech-recognition output into a clean,
// sentence-structured, time-annotated transcript. It performs no I/O and
// keeps no shared state; every invocation works over its own segment
// sequence, so it is safe to call from concurrent requests.
package textproc

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyInput is returned when the text to classify or segment is empty
// or whitespace-only.
var ErrEmptyInput = errors.New("empty input text")

// Segment is one timed unit of text as emitted by a speech backend or
// subtitle track, before sentence-level restructuring. Segments are never
// reordered or merged; later stages reference them by index.
type Segment struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// SegmentError reports a segment violating the input contract. Malformed
// timing is surfaced instead of clamped; silently correcting it would break
// the monotonic timestamp guarantee downstream.
type SegmentError struct {
	Index  int
	Reason string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d: %s", e.Index, e.Reason)
}

func validateSegments(segments []Segment) error {
	for i, seg := range segments {
		if seg.Start < 0 {
			return &SegmentError{Index: i, Reason: "negative start time"}
		}
		if seg.End < seg.Start {
			return &SegmentError{Index: i, Reason: "end before start"}
		}
	}
	return nil
}
