// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/laiszig/benchmarks-bft/report"
)

// A SyntaxError represents a syntax error on a particular line of a
// dataset file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads records from a dataset.
type Reader struct {
	r        *csv.Reader
	fileName string
	header   bool
	rec      report.Record
	err      error
}

// NewReader returns a Reader that reads the dataset from r. fileName
// is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(report.Columns)
	cr.ReuseRecord = true
	return &Reader{r: cr, fileName: fileName}
}

// Scan advances to the next record and reports whether there was one.
// It returns false at the end of the dataset or on the first error,
// which Err returns.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.header {
		r.header = true
		row, err := r.r.Read()
		if err == io.EOF {
			r.err = r.newSyntaxError(1, "missing header")
			return false
		}
		if err != nil {
			r.err = r.csvError(err)
			return false
		}
		if strings.Join(row, ",") != strings.Join(report.Columns, ",") {
			r.err = r.newSyntaxError(1, fmt.Sprintf("unexpected header %q", row))
			return false
		}
	}
	row, err := r.r.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = r.csvError(err)
		return false
	}
	if err := r.parseRow(row); err != nil {
		line, _ := r.r.FieldPos(0)
		r.err = r.newSyntaxError(line, err.Error())
		return false
	}
	return true
}

func (r *Reader) parseRow(row []string) error {
	rec := report.Record{Protocol: row[0], File: row[1]}
	n, err := strconv.Atoi(row[2])
	if err != nil {
		return fmt.Errorf("report_num: parsing %q: %w", row[2], errors.Unwrap(err))
	}
	rec.ReportNum = n
	dsts := []*float64{
		&rec.Timestamp,
		&rec.Throughput,
		&rec.LatencyAvg,
		&rec.LatencyMax,
		&rec.AvgBlockExecTime,
		&rec.AvgMessageProcTime,
	}
	for i, dst := range dsts {
		v, err := strconv.ParseFloat(row[3+i], 64)
		if err != nil {
			return fmt.Errorf("%s: parsing %q: %w", report.Columns[3+i], row[3+i], errors.Unwrap(err))
		}
		*dst = v
	}
	r.rec = rec
	return nil
}

// csvError converts an encoding/csv error into a *SyntaxError.
func (r *Reader) csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return r.newSyntaxError(pe.Line, pe.Err.Error())
	}
	return err
}

func (r *Reader) newSyntaxError(line int, msg string) *SyntaxError {
	return &SyntaxError{r.fileName, line, msg}
}

// Record returns the record read by the last call to Scan. The
// returned value is a copy and may be retained.
func (r *Reader) Record() report.Record {
	return r.rec
}

// Err returns the first error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every record of the dataset in r.
func ReadAll(r io.Reader, fileName string) ([]report.Record, error) {
	cr := NewReader(r, fileName)
	var recs []report.Record
	for cr.Scan() {
		recs = append(recs, cr.Record())
	}
	return recs, cr.Err()
}
