// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"strings"
)

// An EventKind classifies an Event.
type EventKind int

const (
	// EventFile is emitted once per file, after splitting, with
	// the number of report candidates in Count.
	EventFile EventKind = iota
	// EventReport is emitted for every report that produced a
	// record.
	EventReport
	// EventSkipReport is emitted for a report candidate whose
	// header did not match. The candidate produces no record.
	EventSkipReport
	// EventNoClient is emitted for a report without a client
	// section. Its client fields take their defaults.
	EventNoClient
	// EventNoField is emitted when a field pattern does not match
	// within its section.
	EventNoField
)

var eventKindNames = []string{
	EventFile:       "file",
	EventReport:     "report",
	EventSkipReport: "skip-report",
	EventNoClient:   "no-client",
	EventNoField:    "no-field",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Structural reports whether events of kind k record a structural
// skip: something the parser looked for and did not find.
func (k EventKind) Structural() bool {
	switch k {
	case EventSkipReport, EventNoClient, EventNoField:
		return true
	}
	return false
}

// An Event records one decision made while parsing a file.
type Event struct {
	Kind EventKind

	// File is the base name of the file being parsed.
	File string
	// Line is the 1-based line the event refers to, or 0.
	Line int

	// Candidate is the 1-based index of the report candidate
	// within the file, counting candidates that were skipped.
	Candidate int
	// Report is the report number from the block header, or 0 if
	// the header was not parsed.
	Report int

	// Section is "client", "node <id>", or "" for events that are
	// not about a section.
	Section string
	// Field is the name of the field pattern for EventNoField.
	Field string

	// Count is the number of report candidates for EventFile and
	// the number of node sections for EventReport.
	Count int
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d: %s", e.File, e.Line, e.Kind)
	if e.Report != 0 {
		fmt.Fprintf(&b, " report=%d", e.Report)
	} else if e.Candidate != 0 {
		fmt.Fprintf(&b, " candidate=%d", e.Candidate)
	}
	if e.Section != "" {
		fmt.Fprintf(&b, " section=%q", e.Section)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%s", e.Field)
	}
	if e.Kind == EventFile || e.Kind == EventReport {
		fmt.Fprintf(&b, " count=%d", e.Count)
	}
	return b.String()
}

// An Observer receives parse events as they happen.
//
// An Observer passed to ParseFiles with more than one worker must be
// safe for concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts an ordinary function to an Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }
