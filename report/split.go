// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Delimiter introduces every report block.
const Delimiter = "-- Report #"

// headerRE matches a report header at the start of a block span.
var headerRE = regexp.MustCompile(`^(\d+) @ t=([\d.]+)s --`)

// A Block is one report block of a file.
type Block struct {
	// Num is the report number from the header.
	Num int
	// Timestamp is the report time from the header, in seconds.
	Timestamp float64

	// Text is the block's span, starting immediately after the
	// delimiter and running to the next delimiter or the end of
	// the file. It includes the header line.
	Text string
	// Offset is the byte offset of Text in the file.
	Offset int
}

// A splitter yields the spans between occurrences of Delimiter, one
// at a time. The text before the first delimiter is never yielded.
type splitter struct {
	text string
	// pos is the start of the next span, or -1 when there are no
	// more spans.
	pos int
}

func newSplitter(text string) splitter {
	s := splitter{text: text, pos: -1}
	if i := strings.Index(text, Delimiter); i >= 0 {
		s.pos = i + len(Delimiter)
	}
	return s
}

// next returns the next span and its offset in the text.
func (s *splitter) next() (span string, off int, ok bool) {
	if s.pos < 0 {
		return "", 0, false
	}
	off = s.pos
	rest := s.text[off:]
	if i := strings.Index(rest, Delimiter); i >= 0 {
		span = rest[:i]
		s.pos = off + i + len(Delimiter)
	} else {
		span = rest
		s.pos = -1
	}
	return span, off, true
}

// SplitSpans returns the report candidate spans of text: the pieces
// between consecutive delimiters, and after the last one. A text with
// N delimiters yields N spans.
func SplitSpans(text string) []string {
	var spans []string
	s := newSplitter(text)
	for {
		span, _, ok := s.next()
		if !ok {
			return spans
		}
		spans = append(spans, span)
	}
}

// parseHeader parses the report header at the start of span. It
// returns ok == false if span does not start with a header. A header
// that matches but whose numbers do not parse yields a *FieldError.
func parseHeader(span string) (num int, ts float64, ok bool, err error) {
	m := headerRE.FindStringSubmatchIndex(span)
	if m == nil {
		return 0, 0, false, nil
	}
	numText := span[m[2]:m[3]]
	num, err = strconv.Atoi(numText)
	if err != nil {
		return 0, 0, true, &FieldError{"report number", numText, m[2], numError(err)}
	}
	tsText := span[m[4]:m[5]]
	ts, err = strconv.ParseFloat(tsText, 64)
	if err != nil {
		return num, 0, true, &FieldError{"timestamp", tsText, m[4], numError(err)}
	}
	return num, ts, true, nil
}
