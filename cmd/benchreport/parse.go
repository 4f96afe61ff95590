// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laiszig/benchmarks-bft/internal/config"
	"github.com/laiszig/benchmarks-bft/internal/logging"
	"github.com/laiszig/benchmarks-bft/report"
	"github.com/laiszig/benchmarks-bft/reportdb"
)

// A failedFilesError reports that some input files could not be
// parsed, after the dataset of the others was written.
type failedFilesError struct {
	n int
}

func (e *failedFilesError) Error() string {
	if e.n == 1 {
		return "1 file failed to parse"
	}
	return fmt.Sprintf("%d files failed to parse", e.n)
}

func (a *app) parseCmd() *cobra.Command {
	var (
		dir, output, dbDriver, dbDSN string
		parallel                     int
		strict                       bool
	)
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse report files into a CSV dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("dir") {
				cfg.InputDir = dir
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("parallel") {
				cfg.Parallel = parallel
			}
			if flags.Changed("strict") {
				cfg.Strict = strict
			}
			if flags.Changed("db-driver") {
				cfg.Database.Driver = dbDriver
			}
			if flags.Changed("db-dsn") {
				cfg.Database.DSN = dbDSN
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.parse(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&dir, "dir", "", "directory containing benchmark .txt files")
	f.StringVarP(&output, "output", "o", "", "dataset location: path, - for stdout, or gs://bucket/object")
	f.IntVar(&parallel, "parallel", 0, "number of files to parse at once")
	f.BoolVar(&strict, "strict", false, "treat missing sections and fields as errors")
	f.StringVar(&dbDriver, "db-driver", "", "also store records in a database: sqlite3 or mysql")
	f.StringVar(&dbDSN, "db-dsn", "", "database data source name")
	return cmd
}

func (a *app) parse(ctx context.Context, cfg *config.Config) error {
	paths, err := report.ListDir(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if len(paths) == 0 {
		a.log.Warn("no .txt files found", "dir", cfg.InputDir)
	}

	opts := &report.Options{
		Strict:   cfg.Strict,
		Observer: logging.EventSink(a.log),
		Parallel: cfg.Parallel,
	}
	files, err := report.ParseFiles(ctx, paths, opts)
	var failed int
	if err != nil {
		var fe *report.FileError
		if !errors.As(err, &fe) {
			return err
		}
		for _, err := range unwrapAll(err) {
			a.log.Error("failed to parse file", "error", err)
			failed++
		}
	}

	recs := report.Records(files)
	if err := a.writeDataset(ctx, cfg.Output, recs); err != nil {
		return err
	}
	a.log.Info("wrote dataset", "output", cfg.Output, "files", len(files), "records", len(recs))

	if cfg.Database.Driver != "" {
		if err := a.store(ctx, cfg.Database, recs); err != nil {
			return err
		}
	}

	if failed > 0 {
		return &failedFilesError{failed}
	}
	return nil
}

// unwrapAll returns the errors joined in err, or err itself.
func unwrapAll(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func (a *app) store(ctx context.Context, dbc config.Database, recs []report.Record) error {
	db, err := reportdb.OpenSQL(dbc.Driver, dbc.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	id, err := db.Store(ctx, recs)
	if err != nil {
		return fmt.Errorf("storing records: %w", err)
	}
	a.log.Info("stored records", "driver", dbc.Driver, "upload", id, "records", len(recs))
	return nil
}
