// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportstat computes per-protocol summary statistics over
// report records.
package reportstat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Stat is one summary statistic of a sample.
type Stat int

const (
	Count Stat = iota
	Mean
	Median
	StdDev
	Min
	Max
	P95
	P99
)

var statNames = []string{
	Count:  "count",
	Mean:   "mean",
	Median: "median",
	StdDev: "std",
	Min:    "min",
	Max:    "max",
	P95:    "p95",
	P99:    "p99",
}

func (s Stat) String() string {
	if s >= 0 && int(s) < len(statNames) {
		return statNames[s]
	}
	return fmt.Sprintf("Stat(%d)", int(s))
}

// ParseStat returns the Stat named name.
func ParseStat(name string) (Stat, error) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown statistic %q", name)
}

// compute returns statistic s of sample.
//
// StdDev is the sample standard deviation and is NaN for fewer than
// two values. The median and percentiles interpolate linearly between
// order statistics.
func (s Stat) compute(sample *stats.Sample) float64 {
	switch s {
	case Count:
		return float64(len(sample.Xs))
	case Mean:
		return sample.Mean()
	case Median:
		return linearQuantile(sample, 0.5)
	case StdDev:
		if len(sample.Xs) < 2 {
			return math.NaN()
		}
		return sample.StdDev()
	case Min:
		lo, _ := sample.Bounds()
		return lo
	case Max:
		_, hi := sample.Bounds()
		return hi
	case P95:
		return linearQuantile(sample, 0.95)
	case P99:
		return linearQuantile(sample, 0.99)
	}
	panic(fmt.Sprintf("unknown statistic %v", s))
}

// linearQuantile returns the q'th quantile of a sorted sample,
// interpolating linearly between the two nearest order statistics at
// rank q*(n-1) (Hyndman and Fan type 7). stats.Sample.Quantile uses
// type 8, which reaches the maximum for high quantiles of small
// samples.
func linearQuantile(sample *stats.Sample, q float64) float64 {
	xs := sample.Xs
	switch {
	case len(xs) == 0:
		return math.NaN()
	case len(xs) == 1:
		return xs[0]
	}
	h := q * float64(len(xs)-1)
	lo := int(math.Floor(h))
	if lo >= len(xs)-1 {
		return xs[len(xs)-1]
	}
	return xs[lo] + (h-float64(lo))*(xs[lo+1]-xs[lo])
}
