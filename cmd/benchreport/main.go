// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchreport converts cluster benchmark report files into a flat
// dataset and summarizes it.
//
// Usage:
//
//	benchreport parse [--dir D] [--output F] [--parallel N] [--strict] [--db-driver X --db-dsn Y]
//	benchreport summarize [--csv F] [--format text|csv|html] [--min-throughput X]
//	benchreport analyze [--csv F] [--plots DIR] [--plot-format png]
//	benchreport export --db-driver X --db-dsn Y [--protocol P] [--output F]
//
// The parse command reads every .txt report file in D. The numeric
// prefix and .txt suffix of each file name are stripped to form the
// protocol label, so 007-raft.txt holds raft reports. Each report
// block becomes one row of the CSV dataset written to F, with
// columns
//
//	protocol, file, report_num, timestamp, throughput,
//	latency_avg_s, latency_max_s,
//	avg_block_exec_time_ms, avg_message_proc_time_ms
//
// Missing sections and fields take the value 0 and are logged. A
// file holding a field that is not a valid number is reported and
// left out of the dataset; the dataset is still written, and
// benchreport exits with status 1.
//
// The summarize command prints per-protocol statistics of throughput
// and block execution time over the records with positive
// throughput. The analyze command prints the mean, standard
// deviation, minimum, and maximum of throughput, latency, and block
// execution time, and draws one time-series chart of each.
//
// Datasets and charts may be read from and written to Google Cloud
// Storage by naming them gs://bucket/object. Parsed records can also
// be stored in a sqlite3 or mysql database and exported again.
//
// Defaults for all flags are read from benchreport.yaml in the
// current directory, or from the file named by --config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	_ "github.com/go-sql-driver/mysql"

	_ "github.com/laiszig/benchmarks-bft/reportdb/sqlite3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "benchreport: %v\n", err)
		os.Exit(1)
	}
}
