// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/laiszig/benchmarks-bft/reportstat"
)

var formatters = map[string]func(io.Writer, []*reportstat.Table) error{
	"text": reportstat.WriteText,
	"csv":  reportstat.WriteCSV,
	"html": reportstat.WriteHTML,
}

func (a *app) summarizeCmd() *cobra.Command {
	var (
		csvPath, format string
		minThroughput   float64
	)
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Print per-protocol statistics of throughput and block execution time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, ok := formatters[format]
			if !ok {
				return fmt.Errorf("unknown format %q", format)
			}
			if !cmd.Flags().Changed("csv") {
				csvPath = a.cfg.Output
			}
			if cmd.Flags().Changed("min-throughput") {
				a.cfg.MinThroughput = minThroughput
			}

			recs, err := a.readDataset(cmd.Context(), csvPath)
			if err != nil {
				return err
			}
			opts := reportstat.SummaryPreset
			opts.MinThroughput = a.cfg.MinThroughput
			tables, err := reportstat.Summarize(recs, opts)
			if errors.Is(err, reportstat.ErrNoData) {
				a.log.Warn("no records with throughput above the minimum", "csv", csvPath, "min", opts.MinThroughput)
				return nil
			}
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), tables)
		},
	}
	f := cmd.Flags()
	f.StringVar(&csvPath, "csv", "", "dataset to summarize (default is the configured output)")
	f.StringVar(&format, "format", "text", "output format: text, csv, or html")
	f.Float64Var(&minThroughput, "min-throughput", 0, "only summarize records with throughput above this")
	return cmd
}
