// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportcsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/laiszig/benchmarks-bft/report"
)

const header = "protocol,file,report_num,timestamp,throughput,latency_avg_s,latency_max_s,avg_block_exec_time_ms,avg_message_proc_time_ms\n"

func TestWriteAll(t *testing.T) {
	recs := []report.Record{
		{"raft", "001-raft.txt", 1, 5, 120.5, 0.05, 0.2, 3, -0.25},
		{"unknown", "a,b.txt", 2, 10, 0, 0, 0, 0, 0},
	}
	var buf bytes.Buffer
	if err := WriteAll(&buf, recs); err != nil {
		t.Fatal(err)
	}
	want := header +
		"raft,001-raft.txt,1,5,120.5,0.05,0.2,3,-0.25\n" +
		"unknown,\"a,b.txt\",2,10,0,0,0,0,0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteAll mismatch (-want +got):\n%s", diff)
	}

	got, err := ReadAll(&buf, "data.csv")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(recs, got); diff != "" {
		t.Errorf("ReadAll mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAll(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != header {
		t.Errorf("got %q, want header only", buf.String())
	}
	recs, err := ReadAll(&buf, "data.csv")
	if err != nil || len(recs) != 0 {
		t.Errorf("ReadAll(header only) = %v, %v", recs, err)
	}
}

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	rec := report.Record{Protocol: "pbft", File: "1-pbft.txt"}
	for i := 0; i < 2; i++ {
		if err := w.Write(&rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "protocol,"); n != 1 {
		t.Errorf("header written %d times", n)
	}
}

func TestReadErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
		line int
		msg  string
	}{
		{"empty", "", 1, "missing header"},
		{"wrong header", "a,b,c,d,e,f,g,h,i\n", 1, "unexpected header"},
		{"field count", header + "raft,x.txt,1\n", 2, "wrong number of fields"},
		{"bad int", header + "raft,x.txt,one,1,1,1,1,1,1\n", 2, `report_num: parsing "one"`},
		{"bad float", header + "raft,x.txt,1,1,1,1,1,1,1\nraft,x.txt,2,2,fast,1,1,1,1\n", 3, `throughput: parsing "fast"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadAll(strings.NewReader(test.in), "data.csv")
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("got error %v, want *SyntaxError", err)
			}
			if se.FileName != "data.csv" || se.Line != test.line || !strings.Contains(se.Msg, test.msg) {
				t.Errorf("got %v, want data.csv:%d: ...%s...", se, test.line, test.msg)
			}
		})
	}
}
