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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadBlock(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		prefix   string
		blankRun int
		want     []string
		wantRest []string
	}{
		{
			name:     "IndentFromFirstLine",
			lines:    []string{"P hello", "P  world", "P", "P done"},
			prefix:   "P",
			blankRun: 1,
			want:     []string{"hello", " world"},
			wantRest: []string{"P done"},
		},
		{
			name:     "DotBecomesBlankEntry",
			lines:    []string{"// a", "// .", "// b"},
			prefix:   "//",
			blankRun: 1,
			want:     []string{"a", "", "b"},
			wantRest: nil,
		},
		{
			name:     "SingleBlankInsideDoubleBlankRun",
			lines:    []string{"// a", "//", "// b", "//", "//", "// c"},
			prefix:   "//",
			blankRun: 2,
			want:     []string{"a", "", "b", ""},
			wantRest: []string{"// c"},
		},
		{
			name:     "PrefixMismatchLeftUnconsumed",
			lines:    []string{"// a", "no prefix"},
			prefix:   "//",
			blankRun: 1,
			want:     []string{"a"},
			wantRest: []string{"no prefix"},
		},
		{
			name:     "ShortLinesTruncateToEmpty",
			lines:    []string{"//   abc", "//  x", "//    under"},
			prefix:   "//",
			blankRun: 2,
			want:     []string{"abc", "", " under"},
			wantRest: nil,
		},
		{
			name:     "IndentPreservedPastFirstLine",
			lines:    []string{"// abc", "//  indented"},
			prefix:   "//",
			blankRun: 1,
			want:     []string{"abc", " indented"},
			wantRest: nil,
		},
		{
			name:     "EmptyInput",
			lines:    nil,
			prefix:   "//",
			blankRun: 1,
			want:     nil,
			wantRest: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, got := ReadBlock(NewLines(test.lines), test.prefix, test.blankRun)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("block (-want +got):\n%s", diff)
			}
			var gotRest []string
			for !rest.Empty() {
				var line string
				rest, line = rest.Pop()
				gotRest = append(gotRest, line)
			}
			if diff := cmp.Diff(test.wantRest, gotRest); diff != "" {
				t.Errorf("remaining lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinesCursor(t *testing.T) {
	l := NewLines([]string{"one", "two"})
	if got, want := l.LineNumber(), 1; got != want {
		t.Errorf("LineNumber() = %d; want %d", got, want)
	}
	l, line := l.Pop()
	if line != "one" {
		t.Errorf("first Pop() = %q; want %q", line, "one")
	}
	if got, want := l.LineNumber(), 2; got != want {
		t.Errorf("LineNumber() after Pop = %d; want %d", got, want)
	}
	if got := l.Peek(); got != "two" {
		t.Errorf("Peek() = %q; want %q", got, "two")
	}
	if got, want := l.Len(), 1; got != want {
		t.Errorf("Len() = %d; want %d", got, want)
	}
	l, _ = l.Pop()
	if !l.Empty() {
		t.Error("cursor should be empty after consuming both lines")
	}
	l, line = l.Pop()
	if line != "" || !l.Empty() {
		t.Errorf("Pop() on empty cursor = %q; want empty string", line)
	}
}
