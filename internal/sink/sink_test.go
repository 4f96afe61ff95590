// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Location
		err  bool
	}{
		{"out.csv", Location{Path: "out.csv"}, false},
		{"-", Location{Path: Stdio}, false},
		{"gs://bucket/dir/out.csv", Location{Bucket: "bucket", Object: "dir/out.csv"}, false},
		{"gs://bucket", Location{}, true},
		{"gs:///obj", Location{}, true},
		{"", Location{}, true},
	} {
		got, err := Parse(test.in)
		if (err != nil) != test.err {
			t.Errorf("Parse(%q): got error %v, want error %v", test.in, err, test.err)
			continue
		}
		if got != test.want {
			t.Errorf("Parse(%q) = %+v, want %+v", test.in, got, test.want)
		}
		if !test.err && got.String() != test.in {
			t.Errorf("Parse(%q).String() = %q", test.in, got.String())
		}
	}
}

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a", "b", "data.csv")
	w, err := Create(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "protocol\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "protocol\n" {
		t.Errorf("read back %q", data)
	}

	if _, err := Open(ctx, filepath.Join(t.TempDir(), "missing.csv")); !os.IsNotExist(err) {
		t.Errorf("Open(missing): got %v, want not-exist error", err)
	}
}

func TestContentType(t *testing.T) {
	for name, want := range map[string]string{
		"data.csv":   "text/csv",
		"sum.html":   "text/html",
		"chart.png":  "image/png",
		"report.txt": "text/plain",
	} {
		if got := contentType(name); got != want {
			t.Errorf("contentType(%q) = %q, want %q", name, got, want)
		}
	}
}
