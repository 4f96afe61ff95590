// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows   []row
	align  []Align
	margin int
}

type row struct {
	cells []string
	// rule is a horizontal rule row; it has no cells.
	rule bool
}

// Align is the alignment of a column.
type Align int

const (
	Left Align = iota
	Right
)

// New returns a table whose columns are separated by margin spaces.
func New(margin int) *Table {
	return &Table{margin: margin}
}

// SetAlign sets the alignment of column col. Columns are numbered
// starting at 0 and are left-aligned by default.
func (t *Table) SetAlign(col int, a Align) *Table {
	for len(t.align) <= col {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
	return t
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, row{})
	return t
}

// Cell appends a cell to the current row.
func (t *Table) Cell(value string) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	r := &t.rows[len(t.rows)-1]
	r.cells = append(r.cells, value)
	return t
}

// Rule adds a row of dashes as wide as the table.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, row{rule: true})
	return t
}

func (t *Table) alignOf(col int) Align {
	if col < len(t.align) {
		return t.align[col]
	}
	return Left
}

// Format lays out table t and writes it to w. Trailing spaces are
// never written.
func (t *Table) Format(w io.Writer) error {
	var ws []int
	for _, r := range t.rows {
		for col, v := range r.cells {
			if col == len(ws) {
				ws = append(ws, 0)
			}
			ws[col] = max(ws[col], utf8.RuneCountInString(v))
		}
	}
	total := 0
	for col, cw := range ws {
		if col > 0 {
			total += t.margin
		}
		total += cw
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		if r.rule {
			line.WriteString(strings.Repeat("-", total))
		}
		for col, v := range r.cells {
			if col > 0 {
				line.WriteString(strings.Repeat(" ", t.margin))
			}
			pad := strings.Repeat(" ", ws[col]-utf8.RuneCountInString(v))
			if t.alignOf(col) == Right {
				line.WriteString(pad)
				line.WriteString(v)
			} else {
				line.WriteString(v)
				line.WriteString(pad)
			}
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
