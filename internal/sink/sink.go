// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sink opens the input and output locations named on the
// command line: local paths, "-" for the standard streams, or Google
// Cloud Storage objects named gs://bucket/object.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Environment variables configuring the Cloud Storage client.
const (
	// EnvAnonymous, if non-empty, disables authentication, for
	// public buckets and emulators.
	EnvAnonymous = "BENCHREPORT_GCS_ANON"
	// EnvEndpoint overrides the Cloud Storage endpoint.
	EnvEndpoint = "BENCHREPORT_GCS_ENDPOINT"
)

// Stdio is the location naming standard input or output.
const Stdio = "-"

// A Location is a parsed input or output location.
type Location struct {
	// Bucket and Object name a Cloud Storage object. Bucket is ""
	// for local locations.
	Bucket, Object string
	// Path is the local file path, or Stdio.
	Path string
}

// IsGCS reports whether l names a Cloud Storage object.
func (l Location) IsGCS() bool { return l.Bucket != "" }

func (l Location) String() string {
	if l.IsGCS() {
		return "gs://" + l.Bucket + "/" + l.Object
	}
	return l.Path
}

// Parse parses a location string.
func Parse(s string) (Location, error) {
	if s == "" {
		return Location{}, fmt.Errorf("empty location")
	}
	rest, ok := strings.CutPrefix(s, "gs://")
	if !ok {
		return Location{Path: s}, nil
	}
	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return Location{}, fmt.Errorf("%s: want gs://bucket/object", s)
	}
	return Location{Bucket: bucket, Object: object}, nil
}

// Create opens dest for writing. Local parent directories are
// created as needed. The caller must Close the result; for Cloud
// Storage, the object is only written when Close succeeds.
func Create(ctx context.Context, dest string) (io.WriteCloser, error) {
	loc, err := Parse(dest)
	if err != nil {
		return nil, err
	}
	switch {
	case loc.IsGCS():
		client, err := newClient(ctx)
		if err != nil {
			return nil, err
		}
		w := client.Bucket(loc.Bucket).Object(loc.Object).NewWriter(ctx)
		w.ContentType = contentType(loc.Object)
		return &gcsWriter{w, client}, nil
	case loc.Path == Stdio:
		return nopWriteCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(loc.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, err
		}
	}
	return os.Create(loc.Path)
}

// Open opens src for reading.
func Open(ctx context.Context, src string) (io.ReadCloser, error) {
	loc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	switch {
	case loc.IsGCS():
		client, err := newClient(ctx)
		if err != nil {
			return nil, err
		}
		r, err := client.Bucket(loc.Bucket).Object(loc.Object).NewReader(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		return &gcsReader{r, client}, nil
	case loc.Path == Stdio:
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(loc.Path)
}

func newClient(ctx context.Context) (*storage.Client, error) {
	var opts []option.ClientOption
	if os.Getenv(EnvAnonymous) != "" {
		opts = append(opts, option.WithoutAuthentication())
	}
	if ep := os.Getenv(EnvEndpoint); ep != "" {
		opts = append(opts, option.WithEndpoint(ep))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cloud storage: %w", err)
	}
	return client, nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".csv":
		return "text/csv"
	case ".html":
		return "text/html"
	case ".png":
		return "image/png"
	}
	return "text/plain"
}

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (w *gcsWriter) Close() error {
	err := w.Writer.Close()
	if cerr := w.client.Close(); err == nil {
		err = cerr
	}
	return err
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
