// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"regexp"
	"strings"
)

// sectionPrefix begins every top-level line of a block.
const sectionPrefix = "-- "

// A Section is the body of one client or node section.
type Section struct {
	// ID is the identifier from the section header.
	ID string
	// Text is the section body. It starts on the line after the
	// header and stops before the next line beginning with "-- ",
	// or at the end of the block. It never includes a header line.
	Text string
	// Offset is the byte offset of Text in the block.
	Offset int
}

// A sectionMatcher locates sections by their header line.
type sectionMatcher struct {
	re *regexp.Regexp
}

var (
	clientSections = sectionMatcher{regexp.MustCompile(`(?m)^-- Client (\d+)[ \t\r]*$`)}
	nodeSections   = sectionMatcher{regexp.MustCompile(`(?m)^-- Node (\d+)[ \t\r]*$`)}
)

// section returns the section whose header match is loc.
func (m sectionMatcher) section(block string, loc []int) Section {
	start := loc[1]
	if start < len(block) && block[start] == '\n' {
		start++
	}
	end := sectionEnd(block, start)
	return Section{
		ID:     block[loc[2]:loc[3]],
		Text:   block[start:end],
		Offset: start,
	}
}

// first returns the first section in block.
func (m sectionMatcher) first(block string) (Section, bool) {
	loc := m.re.FindStringSubmatchIndex(block)
	if loc == nil {
		return Section{}, false
	}
	return m.section(block, loc), true
}

// all returns every section in block, in order.
func (m sectionMatcher) all(block string) []Section {
	locs := m.re.FindAllStringSubmatchIndex(block, -1)
	if len(locs) == 0 {
		return nil
	}
	secs := make([]Section, len(locs))
	for i, loc := range locs {
		secs[i] = m.section(block, loc)
	}
	return secs
}

// sectionEnd returns the end of the section body that starts at
// start: the beginning of the next line starting with "-- ", less its
// preceding newline, or len(block).
func sectionEnd(block string, start int) int {
	rest := block[start:]
	if strings.HasPrefix(rest, sectionPrefix) {
		// Empty body, immediately followed by another header.
		return start
	}
	if i := strings.Index(rest, "\n"+sectionPrefix); i >= 0 {
		return start + i
	}
	return len(block)
}

// FindClient returns the client section of a block. Only the first
// client section is considered.
func FindClient(block string) (Section, bool) {
	return clientSections.first(block)
}

// FindNodes returns the node sections of a block, in order.
func FindNodes(block string) []Section {
	return nodeSections.all(block)
}
