// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportstat

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/google/safehtml/template"
	"github.com/laiszig/benchmarks-bft/internal/texttab"
)

// FormatValue formats a statistic rounded to two decimal places.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// WriteText writes tables to w as aligned text, one block per metric.
func WriteText(w io.Writer, tables []*Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, t.Metric); err != nil {
			return err
		}
		tab := texttab.New(2)
		tab.Row().Cell("protocol")
		for j, s := range t.Stats {
			tab.SetAlign(j+1, texttab.Right).Cell(s.String())
		}
		tab.Rule()
		for _, row := range t.Rows {
			tab.Row().Cell(row.Protocol)
			for _, v := range row.Values {
				tab.Cell(FormatValue(v))
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes tables to w as a single CSV table with columns
// metric, protocol, and one column per statistic.
func WriteCSV(w io.Writer, tables []*Table) error {
	cw := csv.NewWriter(w)
	if len(tables) > 0 {
		hdr := []string{"metric", "protocol"}
		for _, s := range tables[0].Stats {
			hdr = append(hdr, s.String())
		}
		if err := cw.Write(hdr); err != nil {
			return err
		}
	}
	for _, t := range tables {
		for _, row := range t.Rows {
			rec := []string{t.Metric, row.Protocol}
			for _, v := range row.Values {
				rec = append(rec, FormatValue(v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

var htmlTemplate = template.Must(template.New("").Funcs(template.FuncMap{"value": FormatValue}).Parse(`
<table class='reportstat'>
{{- range .}}
<tbody>
<tr><th>{{.Metric}}{{range .Stats}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><td>{{.Protocol}}{{range .Values}}<td>{{value .}}{{end}}
{{end -}}
</tbody>
{{- end}}
</table>
`))

// WriteHTML writes tables to w as an HTML table.
func WriteHTML(w io.Writer, tables []*Table) error {
	return htmlTemplate.Execute(w, tables)
}
