// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportstat

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/laiszig/benchmarks-bft/report"
)

// ErrNoData is returned by Summarize when no record survives
// filtering.
var ErrNoData = errors.New("no records to summarize")

// Options selects what Summarize computes.
type Options struct {
	// Metrics are the dataset columns to summarize, such as
	// "throughput". Each produces one Table.
	Metrics []string
	// Stats are the statistics to compute for each metric, in
	// column order.
	Stats []Stat

	// FilterThroughput drops records whose throughput is not
	// greater than MinThroughput before summarizing.
	FilterThroughput bool
	MinThroughput    float64
}

// SummaryPreset summarizes the throughput and block execution time of
// the records with positive throughput.
var SummaryPreset = Options{
	Metrics:          []string{"throughput", "avg_block_exec_time_ms"},
	Stats:            []Stat{Mean, Median, StdDev, P95, P99, Max},
	FilterThroughput: true,
}

// AnalysisPreset describes the spread of throughput, latency, and
// block execution time over all records.
var AnalysisPreset = Options{
	Metrics: []string{"throughput", "latency_avg_s", "avg_block_exec_time_ms"},
	Stats:   []Stat{Mean, StdDev, Min, Max},
}

// A Table holds the statistics of one metric, one row per protocol.
type Table struct {
	Metric string
	Stats  []Stat
	Rows   []*Row
}

// A Row holds the statistics of one protocol.
type Row struct {
	Protocol string
	// Values holds one value per Table.Stats entry.
	Values []float64
}

// Summarize groups recs by protocol, in protocol name order, and
// computes opts.Stats of each of opts.Metrics per group.
func Summarize(recs []report.Record, opts Options) ([]*Table, error) {
	if len(opts.Metrics) == 0 || len(opts.Stats) == 0 {
		return nil, errors.New("no metrics or statistics selected")
	}
	var probe report.Record
	for _, m := range opts.Metrics {
		if _, ok := probe.Float(m); !ok {
			return nil, fmt.Errorf("unknown metric %q", m)
		}
	}

	// Build a table with one column per metric.
	var protocols []string
	cols := make([][]float64, len(opts.Metrics))
	for i := range recs {
		rec := &recs[i]
		if opts.FilterThroughput && !(rec.Throughput > opts.MinThroughput) {
			continue
		}
		protocols = append(protocols, rec.Protocol)
		for j, m := range opts.Metrics {
			v, _ := rec.Float(m)
			cols[j] = append(cols[j], v)
		}
	}
	if len(protocols) == 0 {
		return nil, ErrNoData
	}
	b := new(table.Builder).Add("protocol", protocols)
	for j, m := range opts.Metrics {
		b.Add(m, cols[j])
	}
	g := table.GroupBy(b.Done(), "protocol")

	tables := make([]*Table, len(opts.Metrics))
	for j, m := range opts.Metrics {
		tables[j] = &Table{Metric: m, Stats: opts.Stats}
	}
	gids := g.Tables()
	sort.Slice(gids, func(i, j int) bool {
		return gids[i].Label().(string) < gids[j].Label().(string)
	})
	for _, gid := range gids {
		t := g.Table(gid)
		protocol := gid.Label().(string)
		for j, m := range opts.Metrics {
			xs := append([]float64(nil), t.MustColumn(m).([]float64)...)
			sort.Float64s(xs)
			sample := stats.Sample{Xs: xs, Sorted: true}
			row := &Row{Protocol: protocol, Values: make([]float64, len(opts.Stats))}
			for k, s := range opts.Stats {
				row.Values[k] = s.compute(&sample)
			}
			tables[j].Rows = append(tables[j].Rows, row)
		}
	}
	return tables, nil
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
