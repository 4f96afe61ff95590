// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging sets up the command's logger and routes parse
// events to it.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/laiszig/benchmarks-bft/report"
)

// Name is the root logger name.
const Name = "benchreport"

// Options configures New.
type Options struct {
	// Level is one of trace, debug, info, warn, or error.
	// The empty string means info.
	Level string
	// JSON selects JSON output instead of text.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns the root logger.
func New(opts Options) (hclog.Logger, error) {
	level := hclog.Info
	if opts.Level != "" {
		level = hclog.LevelFromString(opts.Level)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("unknown log level %q", opts.Level)
		}
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       Name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	}), nil
}

// EventSink returns a report.Observer that logs parse events to
// logger. Skipped reports, missing client sections and missing fields
// are logged at info level, progress at trace.
//
// The returned Observer may be shared by files parsed in parallel.
func EventSink(logger hclog.Logger) report.Observer {
	var mu sync.Mutex
	return report.ObserverFunc(func(e report.Event) {
		mu.Lock()
		defer mu.Unlock()
		args := []interface{}{"file", e.File, "line", e.Line}
		switch e.Kind {
		case report.EventFile:
			logger.Trace("parsing file", "file", e.File, "delimiters", e.Count)
		case report.EventReport:
			logger.Trace("report", append(args, "report", e.Report, "nodes", e.Count)...)
		case report.EventSkipReport:
			logger.Info("skipping report with malformed header", append(args, "candidate", e.Candidate)...)
		case report.EventNoClient:
			logger.Info("report has no client section", append(args, "report", e.Report)...)
		case report.EventNoField:
			logger.Info("field not found", append(args, "report", e.Report, "section", e.Section, "field", e.Field)...)
		default:
			logger.Debug(e.String())
		}
	})
}
