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

package scaddoc

import "strings"

// Lines is a cursor over the raw lines of an input file.
// Parse functions consume lines from the front
// and return the advanced cursor along with their result,
// so ownership of the remaining input is explicit at every call site.
type Lines struct {
	lines []string
	next  int // index of the first unconsumed line
}

// NewLines returns a cursor positioned at the first of the given lines.
func NewLines(lines []string) Lines {
	return Lines{lines: lines}
}

// Len returns the number of unconsumed lines.
func (l Lines) Len() int {
	return len(l.lines) - l.next
}

// Empty reports whether any lines remain.
func (l Lines) Empty() bool {
	return l.next >= len(l.lines)
}

// Peek returns the next line without consuming it.
// It returns the empty string if the cursor is exhausted.
func (l Lines) Peek() string {
	if l.Empty() {
		return ""
	}
	return l.lines[l.next]
}

// Pop consumes the next line, returning the advanced cursor and the line.
func (l Lines) Pop() (Lines, string) {
	if l.Empty() {
		return l, ""
	}
	line := l.lines[l.next]
	l.next++
	return l, line
}

// LineNumber returns the 1-based number of the next line.
func (l Lines) LineNumber() int {
	return l.next + 1
}

// ReadBlock consumes a contiguous run of prefixed lines forming one block:
// a paragraph, a list, or a code excerpt.
// A line continues the block if it starts with prefix followed by a space,
// or if it is blank under the prefix
// (equal to the prefix after trailing whitespace is removed).
//
// The prefix is stripped from every line.
// The leading space count of the block's first content line
// sets an indent width that is stripped from all subsequent lines;
// lines shorter than the indent become empty.
// A line consisting of a single "." after indent stripping
// becomes an empty entry without counting as blank,
// allowing intentional empty lines inside the block.
//
// Consuming blankRun consecutive blank lines terminates the block;
// the final blank of the run is consumed but not included.
// A line that fails the prefix check also terminates the block
// and is left unconsumed.
// All returned lines have trailing whitespace removed.
func ReadBlock(l Lines, prefix string, blankRun int) (Lines, []string) {
	var block []string
	blanks := 0
	indent := -1
	trimmedPrefix := strings.TrimRight(prefix, " \t")
	for !l.Empty() {
		raw := l.Peek()
		var line string
		switch {
		case strings.HasPrefix(raw, prefix+" "):
			line = raw[len(prefix):]
		case strings.TrimRight(raw, " \t") == trimmedPrefix:
			line = ""
		default:
			return l, block
		}
		l, _ = l.Pop()
		if indent < 0 {
			if trimmed := strings.TrimLeft(line, " "); trimmed != "" {
				indent = len(line) - len(trimmed)
				line = trimmed
			}
		} else if indent > 0 {
			if len(line) > indent {
				line = line[indent:]
			} else {
				line = ""
			}
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks >= blankRun {
				return l, block
			}
		} else {
			blanks = 0
		}
		if line == "." {
			line = ""
		}
		block = append(block, line)
	}
	return l, block
}
