// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/laiszig/benchmarks-bft/internal/config"
	"github.com/laiszig/benchmarks-bft/internal/logging"
	"github.com/laiszig/benchmarks-bft/internal/sink"
	"github.com/laiszig/benchmarks-bft/report"
	"github.com/laiszig/benchmarks-bft/reportcsv"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	cfgFile  string
	logLevel string
	logJSON  bool

	cfg            *config.Config
	log            hclog.Logger
	stdout, stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "benchreport",
		Short:         "Convert cluster benchmark reports into a dataset and summarize it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+" if present)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, or error")
	pf.BoolVar(&a.logJSON, "log-json", false, "write logs as JSON")

	root.AddCommand(a.parseCmd(), a.summarizeCmd(), a.analyzeCmd(), a.exportCmd())
	return root
}

// setup loads the configuration and creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = a.logJSON
	}
	a.cfg = cfg
	a.log, err = logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, Output: a.stderr})
	return err
}

// readDataset reads the dataset at src.
func (a *app) readDataset(ctx context.Context, src string) ([]report.Record, error) {
	r, err := sink.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return reportcsv.ReadAll(r, src)
}

// writeDataset writes recs as a dataset to dest.
func (a *app) writeDataset(ctx context.Context, dest string, recs []report.Record) error {
	if dest == sink.Stdio {
		return reportcsv.WriteAll(a.stdout, recs)
	}
	w, err := sink.Create(ctx, dest)
	if err != nil {
		return err
	}
	if err := reportcsv.WriteAll(w, recs); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
