// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportplot draws per-protocol time-series charts of report
// records.
package reportplot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/laiszig/benchmarks-bft/report"
)

// ErrNoData is returned when there are no records to plot.
var ErrNoData = errors.New("no records to plot")

// A Spec describes one chart: which metric is plotted against the
// report timestamp, and how the chart is labeled.
type Spec struct {
	// Metric is the dataset column on the Y axis.
	Metric string
	Title  string
	YLabel string
	// Name is the output file name, without extension.
	Name string
}

// Specs are the charts drawn by SaveAll.
var Specs = []Spec{
	{"throughput", "Throughput Over Time", "Throughput (req/s)", "throughput_comparison"},
	{"latency_avg_s", "Average Latency Over Time", "Latency (s)", "latency_comparison"},
	{"avg_block_exec_time_ms", "Block Execution Time Over Time", "Block Execution Time (ms)", "block_exec_time_comparison"},
}

// Chart dimensions.
const (
	width  = 12 * vg.Inch
	height = 6 * vg.Inch
	dpi    = 100
)

// Formats are the file formats Save accepts.
var Formats = []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps"}

// A Chart is a rendered-on-demand time-series chart.
type Chart struct {
	Spec Spec
	// Protocols lists the plotted protocols, in legend order.
	Protocols []string

	pl *plot.Plot
}

// New builds the chart for spec from recs. Each protocol, in order of
// first appearance, is drawn as one dashed line with circle markers,
// with points in timestamp order.
func New(recs []report.Record, spec Spec) (*Chart, error) {
	if len(recs) == 0 {
		return nil, ErrNoData
	}
	var probe report.Record
	if _, ok := probe.Float(spec.Metric); !ok {
		return nil, fmt.Errorf("unknown metric %q", spec.Metric)
	}

	var protocols []string
	series := make(map[string]plotter.XYs)
	for i := range recs {
		rec := &recs[i]
		if _, ok := series[rec.Protocol]; !ok {
			protocols = append(protocols, rec.Protocol)
		}
		y, _ := rec.Float(spec.Metric)
		series[rec.Protocol] = append(series[rec.Protocol], plotter.XY{X: rec.Timestamp, Y: y})
	}

	pl := plot.New()
	pl.Title.Text = spec.Title
	pl.X.Label.Text = "Time (s)"
	pl.Y.Label.Text = spec.YLabel
	pl.Add(plotter.NewGrid())
	pl.Legend.Top = true

	for i, name := range protocols {
		xys := series[name]
		sort.SliceStable(xys, func(a, b int) bool { return xys[a].X < xys[b].X })
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		clr := plotutil.Color(i)
		line.LineStyle.Color = clr
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		points.GlyphStyle.Color = clr
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(3)
		pl.Add(line, points)
		pl.Legend.Add(name, line, points)
	}
	return &Chart{Spec: spec, Protocols: protocols, pl: pl}, nil
}

// WriteTo renders the chart as PNG to w.
func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	c.pl.Draw(draw.New(can))
	return can.WriteTo(w)
}

// Save renders the chart to the named file. The format is taken from
// the file extension.
func (c *Chart) Save(path string) error {
	return c.pl.Save(width, height, path)
}

// SaveAll draws every chart in Specs from recs and saves them in dir,
// which is created if needed, with the given format extension. It
// returns the paths it wrote.
func SaveAll(recs []report.Record, dir, format string) ([]string, error) {
	if !validFormat(format) {
		return nil, fmt.Errorf("unsupported plot format %q", format)
	}
	if len(recs) == 0 {
		return nil, ErrNoData
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, err
	}
	var paths []string
	for _, spec := range Specs {
		c, err := New(recs, spec)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, spec.Name+"."+format)
		if err := c.Save(path); err != nil {
			return paths, fmt.Errorf("saving %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
