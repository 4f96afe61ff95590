// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// protocolRE extracts the protocol label from a file name of the form
// <numeric-prefix>-<protocol>.txt.
var protocolRE = regexp.MustCompile(`\d+-(.+)\.txt`)

// UnknownProtocol is the label of files whose name does not follow
// the <numeric-prefix>-<protocol>.txt convention.
const UnknownProtocol = "unknown"

// ProtocolOf returns the protocol label of the named file.
func ProtocolOf(fileName string) string {
	m := protocolRE.FindStringSubmatch(filepath.Base(fileName))
	if m == nil {
		return UnknownProtocol
	}
	return m[1]
}

// ListDir returns the paths of the report files (the regular *.txt
// files) in dir, in name order. It is an error for dir not to exist;
// an empty directory yields no paths and no error.
func ListDir(dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, ent := range ents {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, ent.Name()))
	}
	return paths, nil
}

// ParseFile reads and parses the report file at path.
func ParseFile(path string, opts *Options) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), path, opts)
}

// ParseFiles parses the report files at paths, up to opts.Parallel at
// a time.
//
// Before parsing anything, ParseFiles checks that every path exists.
// If one does not, it returns that error and no files.
//
// Otherwise, each file is parsed independently. Files that fail to
// read or parse are left out of the result, and their errors are
// returned joined together as *FileErrors; the other files are
// returned, in the order of paths. If ctx is cancelled, ParseFiles
// stops starting new files and returns ctx's error and no files.
func ParseFiles(ctx context.Context, paths []string, opts *Options) ([]*File, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}

	limit := 1
	if opts != nil && opts.Parallel > 1 {
		limit = opts.Parallel
	}

	files := make([]*File, len(paths))
	errs := make([]error, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := ParseFile(path, opts)
			if err != nil {
				errs[i] = &FileError{Path: path, Err: err}
				return nil
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := files[:0]
	for _, f := range files {
		if f != nil {
			out = append(out, f)
		}
	}
	return out, errors.Join(errs...)
}

// Records returns the records of files, in order.
func Records(files []*File) []Record {
	var recs []Record
	for _, f := range files {
		recs = append(recs, f.Records...)
	}
	return recs
}
