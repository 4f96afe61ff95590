// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laiszig/benchmarks-bft/internal/sink"
	"github.com/laiszig/benchmarks-bft/report"
	"github.com/laiszig/benchmarks-bft/reportplot"
	"github.com/laiszig/benchmarks-bft/reportstat"
)

func (a *app) analyzeCmd() *cobra.Command {
	var csvPath, plotsDir, plotFormat string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print per-protocol descriptive statistics and draw time-series charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("csv") {
				csvPath = a.cfg.Output
			}
			if flags.Changed("plots") {
				a.cfg.PlotsDir = plotsDir
			}
			if flags.Changed("plot-format") {
				a.cfg.PlotFormat = plotFormat
			}
			ctx := cmd.Context()

			recs, err := a.readDataset(ctx, csvPath)
			if err != nil {
				return err
			}
			tables, err := reportstat.Summarize(recs, reportstat.AnalysisPreset)
			if errors.Is(err, reportstat.ErrNoData) {
				a.log.Warn("dataset is empty", "csv", csvPath)
				return nil
			}
			if err != nil {
				return err
			}
			if err := reportstat.WriteText(cmd.OutOrStdout(), tables); err != nil {
				return err
			}

			if a.cfg.PlotsDir == "" {
				return nil
			}
			paths, err := a.savePlots(ctx, recs, a.cfg.PlotsDir, a.cfg.PlotFormat)
			if err != nil {
				return err
			}
			a.log.Info("saved plots", "dir", a.cfg.PlotsDir, "count", len(paths))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&csvPath, "csv", "", "dataset to analyze (default is the configured output)")
	f.StringVar(&plotsDir, "plots", "", "directory or gs://bucket/prefix for charts; empty disables charts")
	f.StringVar(&plotFormat, "plot-format", "", "chart format: png, svg, pdf, jpg, ...")
	return cmd
}

// savePlots draws the charts of recs into dir. A Cloud Storage dir
// only supports png.
func (a *app) savePlots(ctx context.Context, recs []report.Record, dir, format string) ([]string, error) {
	if !strings.HasPrefix(dir, "gs://") {
		return reportplot.SaveAll(recs, dir, format)
	}
	if format != "png" {
		return nil, fmt.Errorf("plot format %q: only png can be written to Cloud Storage", format)
	}
	var paths []string
	for _, spec := range reportplot.Specs {
		c, err := reportplot.New(recs, spec)
		if err != nil {
			return paths, err
		}
		dest := strings.TrimSuffix(dir, "/") + "/" + spec.Name + ".png"
		w, err := sink.Create(ctx, dest)
		if err != nil {
			return paths, err
		}
		if _, err := c.WriteTo(w); err != nil {
			w.Close()
			return paths, fmt.Errorf("writing %s: %w", dest, err)
		}
		if err := w.Close(); err != nil {
			return paths, fmt.Errorf("writing %s: %w", dest, err)
		}
		paths = append(paths, dest)
	}
	return paths, nil
}
