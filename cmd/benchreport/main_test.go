// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/laiszig/benchmarks-bft/report"
	"github.com/laiszig/benchmarks-bft/reportcsv"
)

const raftReports = `starting 4 replicas
-- Report #1 @ t=5.0s --
-- Client 0
throughput   100req/s
request-execute  avg: 0.05s, max: 0.20s
-- Node 0
block-execute  avg: 2.0ms, max: 4.0ms
message-process  avg: 0.5ms
-- Node 1
block-execute  avg: 4.0ms, max: 8.0ms
message-process  avg: 1.5ms
-- Report #2 @ t=10.0s --
-- Client 0
throughput   120req/s
request-execute  avg: 0.04s, max: 0.10s
`

const pbftReports = `-- Report #1 @ t=5.0s --
-- Node 0
block-execute  avg: 1.0ms, max: 1.0ms
`

const badReports = `-- Report #1 @ t=5.0s --
-- Client 0
throughput   1.2.3req/s
`

// testEnv is a scratch directory with an empty config file.
type testEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{t: t, dir: dir, config: filepath.Join(dir, "benchreport.yaml")}
	if err := os.WriteFile(env.config, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(env.path("reports"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, "reports", name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return env
}

func (env *testEnv) path(elem ...string) string {
	return filepath.Join(append([]string{env.dir}, elem...)...)
}

// run runs benchreport with args and returns its standard output and
// log output.
func (env *testEnv) run(args ...string) (stdout, stderr string, err error) {
	var out, log bytes.Buffer
	cmd := newRootCmd(&out, &log)
	cmd.SetArgs(append([]string{"--config", env.config}, args...))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), log.String(), err
}

func (env *testEnv) parse(extra ...string) (stderr string, err error) {
	args := append([]string{"parse", "--dir", env.path("reports"), "--output", env.path("out", "data.csv")}, extra...)
	_, stderr, err = env.run(args...)
	return stderr, err
}

func (env *testEnv) dataset() []report.Record {
	env.t.Helper()
	f, err := os.Open(env.path("out", "data.csv"))
	if err != nil {
		env.t.Fatal(err)
	}
	defer f.Close()
	recs, err := reportcsv.ReadAll(f, "data.csv")
	if err != nil {
		env.t.Fatal(err)
	}
	return recs
}

func TestParse(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"001-raft.txt": raftReports,
		"002-pbft.txt": pbftReports,
		"notes.md":     "not a report",
	})
	stderr, err := env.parse()
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, stderr)
	}
	want := []report.Record{
		{Protocol: "raft", File: "001-raft.txt", ReportNum: 1, Timestamp: 5, Throughput: 100, LatencyAvg: 0.05, LatencyMax: 0.2, AvgBlockExecTime: 3, AvgMessageProcTime: 1},
		{Protocol: "raft", File: "001-raft.txt", ReportNum: 2, Timestamp: 10, Throughput: 120, LatencyAvg: 0.04, LatencyMax: 0.1},
		{Protocol: "pbft", File: "002-pbft.txt", ReportNum: 1, Timestamp: 5, AvgBlockExecTime: 1},
	}
	if diff := cmp.Diff(want, env.dataset()); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "report has no client section") {
		t.Errorf("log does not mention the missing client section:\n%s", stderr)
	}
}

func TestParseFailedFile(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"001-raft.txt": raftReports,
		"002-bad.txt":  badReports,
	})
	stderr, err := env.parse("--parallel", "2")
	var ffe *failedFilesError
	if !errors.As(err, &ffe) || ffe.n != 1 {
		t.Fatalf("got error %v, want 1 failed file", err)
	}
	if !strings.Contains(stderr, "002-bad.txt:3") {
		t.Errorf("log does not locate the malformed number:\n%s", stderr)
	}
	if recs := env.dataset(); len(recs) != 2 {
		t.Errorf("dataset has %d records, want the 2 of 001-raft.txt", len(recs))
	}
}

func TestParseStrict(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"001-raft.txt": raftReports,
		"002-pbft.txt": pbftReports,
	})
	stderr, err := env.parse("--strict")
	var ffe *failedFilesError
	if !errors.As(err, &ffe) || ffe.n != 1 {
		t.Fatalf("got error %v, want 1 failed file", err)
	}
	if !strings.Contains(stderr, "no client section") {
		t.Errorf("log does not explain the strict failure:\n%s", stderr)
	}
	// 001-raft.txt is complete and survives strict mode.
	if recs := env.dataset(); len(recs) != 2 {
		t.Errorf("dataset has %d records, want 2", len(recs))
	}
}

func TestParseMissingDir(t *testing.T) {
	env := newTestEnv(t, nil)
	_, _, err := env.run("parse", "--dir", env.path("nowhere"), "--output", env.path("out", "data.csv"))
	if err == nil || !strings.Contains(err.Error(), "nowhere") {
		t.Errorf("got error %v, want one naming the directory", err)
	}
	for _, p := range []string{env.path("nowhere"), env.path("out", "data.csv")} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s was created", p)
		}
	}
}

func TestParseNoFiles(t *testing.T) {
	env := newTestEnv(t, nil)
	stderr, err := env.parse()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "no .txt files found") {
		t.Errorf("log does not warn about the empty directory:\n%s", stderr)
	}
	data, err := os.ReadFile(env.path("out", "data.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if want := strings.Join(report.Columns, ",") + "\n"; string(data) != want {
		t.Errorf("dataset = %q, want header only", data)
	}
}

func TestSummarize(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"001-raft.txt": raftReports,
		"002-pbft.txt": pbftReports,
	})
	if _, err := env.parse(); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := env.run("summarize", "--csv", env.path("out", "data.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// pbft has no throughput, so only raft is summarized.
	for _, want := range []string{"throughput\n", "avg_block_exec_time_ms\n", "raft      110.00"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "pbft") {
		t.Errorf("output includes filtered protocol pbft:\n%s", stdout)
	}

	stdout, _, err = env.run("summarize", "--csv", env.path("out", "data.csv"), "--format", "csv")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "metric,protocol,mean,median,std,p95,p99,max\n") {
		t.Errorf("csv output has wrong header:\n%s", stdout)
	}

	if _, _, err := env.run("summarize", "--format", "xml"); err == nil {
		t.Errorf("summarize --format xml: got nil error")
	}
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"001-raft.txt": raftReports,
		"002-pbft.txt": pbftReports,
	})
	if _, err := env.parse(); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := env.run("analyze", "--csv", env.path("out", "data.csv"), "--plots", env.path("plots"), "--plot-format", "svg")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"latency_avg_s\n", "pbft", "raft"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	for _, name := range []string{"throughput_comparison.svg", "latency_comparison.svg", "block_exec_time_comparison.svg"} {
		if _, err := os.Stat(env.path("plots", name)); err != nil {
			t.Errorf("chart not written: %v", err)
		}
	}
}

func TestDatabase(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"001-raft.txt": raftReports,
		"002-pbft.txt": pbftReports,
	})
	dsn := env.path("reports.db")
	if _, err := env.parse("--db-driver", "sqlite3", "--db-dsn", dsn); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := env.run("export", "--db-driver", "sqlite3", "--db-dsn", dsn, "--list-protocols")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "pbft\nraft\n" {
		t.Errorf("protocols = %q, want pbft and raft", stdout)
	}

	stdout, _, err = env.run("export", "--db-driver", "sqlite3", "--db-dsn", dsn, "--protocol", "raft")
	if err != nil {
		t.Fatal(err)
	}
	recs, err := reportcsv.ReadAll(strings.NewReader(stdout), "stdout")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(env.dataset()[:2], recs); diff != "" {
		t.Errorf("exported records mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := env.run("export"); err == nil {
		t.Errorf("export without a database: got nil error")
	}
}
