// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"path/filepath"
	"strings"
)

// Options configures parsing. The zero Options is the default,
// tolerant configuration.
type Options struct {
	// Strict turns structural skips into errors. A report with a
	// malformed header, a missing client section, or a section
	// missing one of its fields stops the parse of the file with an
	// *AbsentError, instead of taking defaults.
	Strict bool

	// Observer, if non-nil, receives every Event as it is
	// generated, in addition to File.Events.
	Observer Observer

	// Parallel is the number of files ParseFiles parses at once.
	// Values below 1 mean 1.
	Parallel int
}

// A Reader parses the report blocks of one file.
//
// Its API is modeled on bufio.Scanner: call Scan until it returns
// false, then check Err. Blocks are split off the file text one at a
// time as Scan is called.
type Reader struct {
	name     string
	protocol string
	text     string
	opts     Options

	split     splitter
	candidate int
	report    *Report
	events    []Event
	err       error

	// Line counting cache for lineAt.
	lineOff, lineNum int
}

// NewReader returns a Reader for the report text of the named file.
// fileName determines the protocol label and is used in events and
// errors; only its base name is kept. opts may be nil.
func NewReader(text, fileName string, opts *Options) *Reader {
	r := &Reader{
		name:    filepath.Base(fileName),
		text:    text,
		split:   newSplitter(text),
		lineNum: 1,
	}
	if opts != nil {
		r.opts = *opts
	}
	r.protocol = ProtocolOf(r.name)
	r.emit(Event{Kind: EventFile, Line: 1, Count: strings.Count(text, Delimiter)})
	return r
}

// Scan advances to the next report that produces a record and
// reports whether there was one. Candidates whose header does not
// parse are skipped. Scan returns false at the end of the file or on
// the first error, which Err returns.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for {
		span, off, ok := r.split.next()
		if !ok {
			r.report = nil
			return false
		}
		r.candidate++
		rep, err := r.parseBlock(span, off)
		if err != nil {
			r.err = err
			r.report = nil
			return false
		}
		if rep != nil {
			r.report = rep
			return true
		}
	}
}

// Report returns the report read by the last call to Scan, or nil.
// The caller may retain it.
func (r *Reader) Report() *Report {
	return r.report
}

// Err returns the error that stopped Scan, if any: a *ParseError, or
// an *AbsentError in strict mode.
func (r *Reader) Err() error {
	return r.err
}

// Events returns the events generated so far.
func (r *Reader) Events() []Event {
	return r.events
}

// Protocol returns the protocol label of the file.
func (r *Reader) Protocol() string {
	return r.protocol
}

// parseBlock parses one report candidate. It returns nil, nil if the
// candidate was skipped.
func (r *Reader) parseBlock(span string, off int) (*Report, error) {
	num, ts, ok, err := parseHeader(span)
	if err != nil {
		return nil, r.positioned(0, off, err)
	}
	if !ok {
		return nil, r.absent(Event{Kind: EventSkipReport, Line: r.lineAt(off)})
	}
	b := &Block{Num: num, Timestamp: ts, Text: span, Offset: off}
	rep := &Report{Block: b}

	if sec, ok := FindClient(span); ok {
		secOff := off + sec.Offset
		c, err := ExtractClient(sec.Text)
		if err != nil {
			return nil, r.positioned(num, secOff, err)
		}
		rep.ClientFound = true
		rep.Client = c
		if !c.Throughput.Present {
			if err := r.noField(num, secOff, "client", throughputField.name); err != nil {
				return nil, err
			}
		}
		if !c.LatencyAvg.Present {
			if err := r.noField(num, secOff, "client", requestExecField.name); err != nil {
				return nil, err
			}
		}
	} else {
		if err := r.absent(Event{Kind: EventNoClient, Line: r.lineAt(off), Report: num}); err != nil {
			return nil, err
		}
	}

	secs := FindNodes(span)
	if len(secs) > 0 {
		rep.Nodes = make([]NodeMetrics, 0, len(secs))
	}
	for _, sec := range secs {
		secOff := off + sec.Offset
		n, err := ExtractNode(sec.ID, sec.Text)
		if err != nil {
			return nil, r.positioned(num, secOff, err)
		}
		if !n.BlockExecAvg.Present {
			if err := r.noField(num, secOff, "node "+sec.ID, blockExecField.name); err != nil {
				return nil, err
			}
		}
		if !n.MessageProcAvg.Present {
			if err := r.noField(num, secOff, "node "+sec.ID, messageProcField.name); err != nil {
				return nil, err
			}
		}
		rep.Nodes = append(rep.Nodes, n)
	}

	rep.Record = Aggregate(r.protocol, r.name, b, rep.Client, rep.Nodes)
	r.emit(Event{Kind: EventReport, Line: r.lineAt(off), Report: num, Count: len(rep.Nodes)})
	return rep, nil
}

// positioned converts a *FieldError found at or after byte offset
// base of the file into a *ParseError.
func (r *Reader) positioned(report, base int, err error) error {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return err
	}
	return &ParseError{
		FileName: r.name,
		Line:     r.lineAt(base + fe.Offset),
		Report:   report,
		Field:    fe.Field,
		Text:     fe.Text,
		Err:      fe.Err,
	}
}

func (r *Reader) noField(report, off int, section, field string) error {
	return r.absent(Event{Kind: EventNoField, Line: r.lineAt(off), Report: report, Section: section, Field: field})
}

// absent records a structural skip. In strict mode, it returns the
// skip as an *AbsentError.
func (r *Reader) absent(e Event) error {
	e = r.emit(e)
	if r.opts.Strict {
		return &AbsentError{e}
	}
	return nil
}

func (r *Reader) emit(e Event) Event {
	e.File = r.name
	if e.Candidate == 0 && e.Kind != EventFile {
		e.Candidate = r.candidate
	}
	r.events = append(r.events, e)
	if r.opts.Observer != nil {
		r.opts.Observer.Observe(e)
	}
	return e
}

// lineAt returns the 1-based line number of byte offset off. Offsets
// mostly increase, so it counts forward from the last lookup.
func (r *Reader) lineAt(off int) int {
	if off > len(r.text) {
		off = len(r.text)
	}
	if off < r.lineOff {
		r.lineOff, r.lineNum = 0, 1
	}
	r.lineNum += strings.Count(r.text[r.lineOff:off], "\n")
	r.lineOff = off
	return r.lineNum
}

// Parse parses the complete text of the named file. On error, it
// returns the error and no File.
func Parse(text, fileName string, opts *Options) (*File, error) {
	r := NewReader(text, fileName, opts)
	f := &File{Name: r.name, Protocol: r.protocol}
	for r.Scan() {
		f.Records = append(f.Records, r.Report().Record)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	f.Events = r.Events()
	return f, nil
}
