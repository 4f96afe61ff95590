// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
)

// A FieldError reports a field whose pattern matched but whose
// captured text is not a valid number.
type FieldError struct {
	Field string
	Text  string
	// Offset is the byte offset of Text in the span that was
	// searched.
	Offset int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: parsing %q: %v", e.Field, e.Text, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// numError strips the *strconv.NumError wrapper from err, which
// repeats the text that FieldError already carries.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

// A ParseError is a FieldError positioned within a file. It stops the
// parse of that file.
type ParseError struct {
	FileName string
	Line     int
	// Report is the report number, or 0 if the error is in the
	// report header itself.
	Report int
	Field  string
	Text   string
	Err    error
}

func (e *ParseError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *ParseError) Error() string {
	if e.Report == 0 {
		return fmt.Sprintf("%s:%d: %s: parsing %q: %v", e.FileName, e.Line, e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("%s:%d: report %d: %s: parsing %q: %v", e.FileName, e.Line, e.Report, e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// An AbsentError reports a structural skip in strict mode: a report
// header, section or field that was expected and not found.
type AbsentError struct {
	Event Event
}

func (e *AbsentError) Pos() (fileName string, line int) {
	return e.Event.File, e.Event.Line
}

func (e *AbsentError) Error() string {
	ev := e.Event
	switch ev.Kind {
	case EventSkipReport:
		return fmt.Sprintf("%s:%d: report candidate %d: malformed report header", ev.File, ev.Line, ev.Candidate)
	case EventNoClient:
		return fmt.Sprintf("%s:%d: report %d: no client section", ev.File, ev.Line, ev.Report)
	}
	return fmt.Sprintf("%s:%d: report %d: %s: no %s field", ev.File, ev.Line, ev.Report, ev.Section, ev.Field)
}

// A FileError reports that one file of a ParseFiles call could not be
// read or parsed. The other files are unaffected.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	switch e.Err.(type) {
	case *ParseError, *AbsentError, *fs.PathError:
		// Already names the file.
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }
