// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"regexp"
	"strconv"
)

// A fieldPattern extracts one or more numbers from the first match
// of a pattern in a section. Each capture group is one value.
type fieldPattern struct {
	name string
	re   *regexp.Regexp
}

// Field patterns. Unit suffixes are optional and never captured.
var (
	throughputField  = fieldPattern{"throughput", regexp.MustCompile(`throughput\s+([\d.]+)req/s`)}
	requestExecField = fieldPattern{"request-execute", regexp.MustCompile(`request-execute\s+avg:\s+([\d.]+)(?:s)?,\s+max:\s+([\d.]+)(?:s)?`)}
	blockExecField   = fieldPattern{"block-execute", regexp.MustCompile(`block-execute\s+avg:\s+([\d.]+)(?:ms)?,\s+max:\s+([\d.]+)(?:ms)?`)}
	messageProcField = fieldPattern{"message-process", regexp.MustCompile(`message-process\s+avg:\s+(-?[\d.]+)(?:ms)?`)}
)

// match returns one Value per capture group of p. If p does not match
// text, all values are Absent. Either every group parses or match
// returns a *FieldError.
func (p fieldPattern) match(text string) ([]Value, error) {
	vals := make([]Value, p.re.NumSubexp())
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return vals, nil
	}
	for i := range vals {
		lo, hi := loc[2+2*i], loc[3+2*i]
		v, err := strconv.ParseFloat(text[lo:hi], 64)
		if err != nil {
			return nil, &FieldError{p.name, text[lo:hi], lo, numError(err)}
		}
		vals[i] = Present(v)
	}
	return vals, nil
}

// ExtractClient extracts the client fields from a client section
// body.
func ExtractClient(text string) (ClientMetrics, error) {
	var c ClientMetrics
	tp, err := throughputField.match(text)
	if err != nil {
		return c, err
	}
	lat, err := requestExecField.match(text)
	if err != nil {
		return c, err
	}
	c.Throughput = tp[0]
	c.LatencyAvg, c.LatencyMax = lat[0], lat[1]
	return c, nil
}

// ExtractNode extracts the node fields from the body of node id.
func ExtractNode(id, text string) (NodeMetrics, error) {
	n := NodeMetrics{ID: id}
	be, err := blockExecField.match(text)
	if err != nil {
		return n, err
	}
	mp, err := messageProcField.match(text)
	if err != nil {
		return n, err
	}
	n.BlockExecAvg, n.BlockExecMax = be[0], be[1]
	n.MessageProcAvg = mp[0]
	return n, nil
}
