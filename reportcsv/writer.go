// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportcsv reads and writes the flat record dataset produced
// by the report parser. The dataset is CSV with one header row naming
// report.Columns and one row per record.
package reportcsv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/laiszig/benchmarks-bft/report"
)

// A Writer writes records as CSV.
type Writer struct {
	w      *csv.Writer
	header bool
	row    []string
}

// NewWriter returns a Writer that writes the dataset to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w), row: make([]string, len(report.Columns))}
}

// WriteHeader writes the header row if it has not been written yet.
// Write calls it implicitly, so it is only needed for a dataset with
// no records.
func (w *Writer) WriteHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	return w.w.Write(report.Columns)
}

// Write writes one record.
func (w *Writer) Write(rec *report.Record) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	w.row[0] = rec.Protocol
	w.row[1] = rec.File
	w.row[2] = strconv.Itoa(rec.ReportNum)
	for i, col := range report.Columns[3:] {
		v, _ := rec.Float(col)
		w.row[3+i] = formatFloat(v)
	}
	return w.w.Write(w.row)
}

// Flush writes any buffered data and returns the first error that
// occurred writing the dataset.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// WriteAll writes the header and every record in recs, then flushes.
func WriteAll(w io.Writer, recs []report.Record) error {
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for i := range recs {
		if err := cw.Write(&recs[i]); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// formatFloat formats v with the fewest digits that read back as v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
