// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

// Aggregate assembles the record for block b of a file.
//
// Absent client fields become 0. Each node field is averaged over the
// nodes where it is present; nodes where it is absent count toward
// neither the sum nor the count. A node field that no node provides
// is 0, the same as for a block with no node sections at all.
func Aggregate(protocol, file string, b *Block, client ClientMetrics, nodes []NodeMetrics) Record {
	blockExec := make([]Value, len(nodes))
	messageProc := make([]Value, len(nodes))
	for i, n := range nodes {
		blockExec[i] = n.BlockExecAvg
		messageProc[i] = n.MessageProcAvg
	}
	return Record{
		Protocol:           protocol,
		File:               file,
		ReportNum:          b.Num,
		Timestamp:          b.Timestamp,
		Throughput:         client.Throughput.Or(0),
		LatencyAvg:         client.LatencyAvg.Or(0),
		LatencyMax:         client.LatencyMax.Or(0),
		AvgBlockExecTime:   mean(blockExec),
		AvgMessageProcTime: mean(messageProc),
	}
}

// mean returns the arithmetic mean of the present values in vs, or 0
// if none is present.
func mean(vs []Value) float64 {
	var sum float64
	var n int
	for _, v := range vs {
		if v.Present {
			sum += v.V
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
