package report

import "time"

// IngestFailureRecord is a batch-level rejection of an uploaded license-data
// file: the whole upload failed before any rows were examined. Records are
// read-only inputs sourced from the event log; builders never mutate them.
type IngestFailureRecord struct {
	Compact      string
	Jurisdiction string
	EventTime    time.Time
	Errors       []string
}

// ValidationErrorRecord is a row-level rejection of one record within an
// otherwise-accepted batch: one or more field-level error lists plus the
// subset of fields that parsed successfully, shown for operator triage.
type ValidationErrorRecord struct {
	Compact      string
	Jurisdiction string
	EventTime    time.Time
	RecordNumber int
	Errors       map[string][]string
	ValidData    map[string]any
}

// Window is a half-open [Start, End) time range over the event log.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// PriorDay returns the 24-hour window ending at now. This is the nightly
// error-summary window.
func PriorDay(now time.Time) Window {
	return Window{Start: now.Add(-24 * time.Hour), End: now}
}

// TrailingWeek returns the 7-day window ending at now, used by the weekly
// all's-well / no-uploads evaluation.
func TrailingWeek(now time.Time) Window {
	return Window{Start: now.Add(-7 * 24 * time.Hour), End: now}
}
