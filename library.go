// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package scaddoc extracts structured documentation comments
// from OpenSCAD-style library source files.
//
// Documentation markup lives on lines carrying a configurable prefix
// (the empty string, or a comment leader such as "// ").
// A file-level LibFile: header is followed by Section: groupings,
// each collecting documented entities:
// constants, functions, modules, and function-and-modules,
// with usage synopses, argument tables, figures, and examples.
// Parsing builds a [Library] document model
// that the markdown subpackage renders to text.
package scaddoc

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// A ParseError describes a fatal flaw in the documentation markup.
// Parsing stops at the first error
// rather than producing a partially correct document.
type ParseError struct {
	// Line is the 1-based number of the offending line.
	Line int
	// Text is the offending line or block line.
	Text string
	// Entity is the name of the entity being parsed, if known.
	Entity string
	// Msg describes the flaw.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("line %d: in %s: %s: %q", e.Line, e.Entity, e.Msg, e.Text)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// constPat matches a bare top-level constant declaration
// with a trailing same-line comment.
// Any other constant declaration style is intentionally ignored.
var constPat = regexp.MustCompile(`^([A-Z_0-9]+) *=.*  // (.*)$`)

// Parse reads library source from r
// and builds its documentation model.
// Lines beginning with prefix carry documentation markup;
// all other lines are ignored,
// except that bare top-level constant declarations
// are recorded as constant leaf nodes.
func Parse(r io.Reader, prefix string) (*Library, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}
	return parseLibrary(NewLines(lines), prefix)
}

// ParseBytes is like [Parse] but reads from a byte slice.
func ParseBytes(source []byte, prefix string) (*Library, error) {
	return Parse(strings.NewReader(string(source)), prefix)
}

// parseLibrary drives the whole file:
// a priority-ordered dispatch loop
// over raw lines, the file-level headers,
// section headers, and leaf headers,
// repeated until the cursor is exhausted.
func parseLibrary(l Lines, prefix string) (*Library, error) {
	lib := new(Library)
	trimmedPrefix := strings.TrimSpace(prefix)
	var current *Section
	openSection := func() *Section {
		if current == nil {
			current = new(Section)
			lib.Sections = append(lib.Sections, current)
		}
		return current
	}
	for !l.Empty() {
		consumed := false

		// Consume lines that do not carry the markup prefix,
		// scanning them for bare constant declarations.
		for !l.Empty() && prefix != "" && !strings.HasPrefix(l.Peek(), trimmedPrefix) {
			var raw string
			l, raw = l.Pop()
			consumed = true
			if m := constPat.FindStringSubmatch(raw); m != nil {
				sect := openSection()
				sect.Leaves = append(sect.Leaves, &LeafNode{
					Name:        strings.TrimSpace(m[1]),
					Type:        Constant,
					Description: []string{strings.TrimSpace(m[2])},
				})
			}
		}

		if strings.HasPrefix(l.Peek(), prefix+"LibFile: ") {
			var header string
			l, header = l.Pop()
			_, name, _ := strings.Cut(strings.TrimRight(header, " \t"), ": ")
			lib.Name = strings.TrimSpace(name)
			var block []string
			l, block = ReadBlock(l, prefix, 2)
			lib.Description = append(lib.Description, block...)
			consumed = true
		}

		if strings.HasPrefix(l.Peek(), prefix+"Includes:") {
			l, _ = l.Pop()
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			lib.Includes = append(lib.Includes, block...)
			consumed = true
		}

		if strings.HasPrefix(l.Peek(), prefix+"CommonCode:") {
			l, _ = l.Pop()
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			lib.CommonCode = append(lib.CommonCode, block...)
			consumed = true
		}

		if matchSection(l.Peek(), prefix) {
			var sect *Section
			l, sect = parseSection(l, prefix)
			lib.Sections = append(lib.Sections, sect)
			current = sect
			consumed = true
		}

		if matchLeaf(l.Peek(), prefix) {
			var node *LeafNode
			var err error
			l, node, err = parseLeaf(l, prefix)
			if err != nil {
				return nil, err
			}
			if node.Deprecated() {
				if lib.Deprecations == nil {
					lib.Deprecations = &Section{Name: "Deprecations"}
				}
				lib.Deprecations.Leaves = append(lib.Deprecations.Leaves, node)
			} else {
				sect := openSection()
				sect.Leaves = append(sect.Leaves, node)
			}
			consumed = true
		}

		// Guarantee forward progress on unrecognized content.
		if !consumed && !l.Empty() {
			l, _ = l.Pop()
		}
	}
	return lib, nil
}
