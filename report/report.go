// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report parses the human-readable report files written by
// the cluster load generator into flat, per-report records.
//
// A report file is a sequence of report blocks, each introduced by
// the delimiter "-- Report #" and a header of the form
//
//	<num> @ t=<seconds>s --
//
// Inside a block, a "-- Client <id>" section carries load-generator
// metrics (throughput and request latency) and zero or more
// "-- Node <id>" sections carry per-replica processing metrics. A
// section runs until the next line beginning with "-- " or the end of
// the block.
//
// Parsing is tolerant: blocks with an unrecognized header are
// skipped, and sections or fields that are missing take documented
// defaults. Each such decision is reported as an Event rather than
// logged, so the parser is a pure function of the file name and
// contents. Only a field that matches its pattern but does not hold a
// valid number stops the parse of a file, with a *ParseError.
package report

import "fmt"

// A Record is the flat summary of a single report block. Records are
// created once by Aggregate and never modified afterward.
type Record struct {
	// Protocol is the protocol label derived from the source file name.
	Protocol string
	// File is the base name of the source file.
	File string

	ReportNum int
	// Timestamp is the report time, in seconds since the run started.
	Timestamp float64

	// Throughput is client throughput in requests per second.
	Throughput float64
	// LatencyAvg and LatencyMax are client request latencies, in seconds.
	LatencyAvg float64
	LatencyMax float64

	// AvgBlockExecTime is the mean of the per-node block-execute
	// averages, in milliseconds.
	AvgBlockExecTime float64
	// AvgMessageProcTime is the mean of the per-node message-process
	// averages, in milliseconds. It may be negative.
	AvgMessageProcTime float64
}

// Columns lists the dataset column names of a Record, in order.
var Columns = []string{
	"protocol",
	"file",
	"report_num",
	"timestamp",
	"throughput",
	"latency_avg_s",
	"latency_max_s",
	"avg_block_exec_time_ms",
	"avg_message_proc_time_ms",
}

// Float returns the value of the numeric column col, and whether col
// names a numeric column.
func (r *Record) Float(col string) (float64, bool) {
	switch col {
	case "report_num":
		return float64(r.ReportNum), true
	case "timestamp":
		return r.Timestamp, true
	case "throughput":
		return r.Throughput, true
	case "latency_avg_s":
		return r.LatencyAvg, true
	case "latency_max_s":
		return r.LatencyMax, true
	case "avg_block_exec_time_ms":
		return r.AvgBlockExecTime, true
	case "avg_message_proc_time_ms":
		return r.AvgMessageProcTime, true
	}
	return 0, false
}

func (r *Record) String() string {
	return fmt.Sprintf("%s/%s#%d@%gs", r.Protocol, r.File, r.ReportNum, r.Timestamp)
}

// A Value is the result of extracting one field from a section. It is
// either present, with a value, or absent.
type Value struct {
	V       float64
	Present bool
}

// Present returns a present Value holding v.
func Present(v float64) Value {
	return Value{v, true}
}

// Absent is the Value of a field whose pattern did not match.
var Absent = Value{}

// Or returns v's value if it is present, or def otherwise.
func (v Value) Or(def float64) float64 {
	if v.Present {
		return v.V
	}
	return def
}

func (v Value) String() string {
	if !v.Present {
		return "absent"
	}
	return fmt.Sprint(v.V)
}

// ClientMetrics are the fields extracted from a client section.
// LatencyAvg and LatencyMax come from a single pattern, so they are
// always both present or both absent.
type ClientMetrics struct {
	Throughput Value
	LatencyAvg Value
	LatencyMax Value
}

// NodeMetrics are the fields extracted from one node section.
type NodeMetrics struct {
	ID             string
	BlockExecAvg   Value
	BlockExecMax   Value
	MessageProcAvg Value
}

// A Report is a parsed report block with all of its per-section
// detail, before aggregation.
type Report struct {
	Block *Block

	// ClientFound reports whether the block had a client section.
	// If it is false, Client is all absent.
	ClientFound bool
	Client      ClientMetrics

	// Nodes holds one entry per node section, in block order.
	Nodes []NodeMetrics

	// Record is the aggregated record for this report.
	Record Record
}

// A File is the result of parsing one report file.
type File struct {
	// Name is the base name of the file.
	Name string
	// Protocol is the label derived from Name by ProtocolOf.
	Protocol string

	Records []Record
	// Events is the trace of parsing decisions, in the order they
	// were made.
	Events []Event
}
