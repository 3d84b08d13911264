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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLeaf(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  *LeafNode
	}{
		{
			name: "FunctionWithUsage",
			lines: []string{
				"// Function: foo()",
				"// Usage:",
				"//   foo(x);",
				"//",
				"//",
			},
			want: &LeafNode{
				Name: "foo()",
				Type: Function,
				Usages: []Usage{
					{Title: "", Patterns: []string{"foo(x);"}},
				},
			},
		},
		{
			name: "TitledUsageStatusTopics",
			lines: []string{
				"// Module: bar()",
				"// Status: DEPRECATED, use foo() instead.",
				"// Topics: Shapes, Basics",
				"// Usage: As a module",
				"//   bar(n);",
				"//   bar(n, spin);",
			},
			want: &LeafNode{
				Name:   "bar()",
				Type:   Module,
				Status: "DEPRECATED, use foo() instead.",
				Topics: []string{"Shapes", "Basics"},
				Usages: []Usage{
					{Title: "As a module", Patterns: []string{"bar(n);", "bar(n, spin);"}},
				},
			},
		},
		{
			name: "ArgumentsSplitAtSeparator",
			lines: []string{
				"// Function: baz()",
				"// Arguments:",
				"//   x = The x coordinate.",
				"//   ---",
				"//   n = Number of copies.",
			},
			want: &LeafNode{
				Name: "baz()",
				Type: Function,
				Arguments: []Argument{
					{Name: "x", Description: "The x coordinate."},
				},
				NamedArguments: []Argument{
					{Name: "n", Description: "Number of copies."},
				},
			},
		},
		{
			name: "ModuleExampleDefaultsTo3D",
			lines: []string{
				"// Module: m()",
				"// Example:",
				"//   m();",
			},
			want: &LeafNode{
				Name: "m()",
				Type: Module,
				Examples: []Example{
					{Title: "", Code: []string{"m();"}, Type: "3D"},
				},
			},
		},
		{
			name: "ConstantExampleDefaultsToNoRender",
			lines: []string{
				"// Constant: TAU",
				"// Example:",
				"//   echo(TAU);",
			},
			want: &LeafNode{
				Name: "TAU",
				Type: Constant,
				Examples: []Example{
					{Title: "", Code: []string{"echo(TAU);"}, Type: "NORENDER"},
				},
			},
		},
		{
			name: "PluralExamplesSplitPerLine",
			lines: []string{
				"// Function: f()",
				"// Examples:",
				"//   f(1);",
				"//   f(2);",
			},
			want: &LeafNode{
				Name: "f()",
				Type: Function,
				Examples: []Example{
					{Code: []string{"f(1);"}, Type: "NORENDER"},
					{Code: []string{"f(2);"}, Type: "NORENDER"},
				},
			},
		},
		{
			name: "FigureWithExplicitType",
			lines: []string{
				"// Module: m()",
				"// Figure(2D): Flat view",
				"//   square(1);",
			},
			want: &LeafNode{
				Name: "m()",
				Type: Module,
				Figures: []Example{
					{Title: "Flat view", Code: []string{"square(1);"}, Type: "2D"},
				},
			},
		},
		{
			name: "InlineDescriptionAndReturns",
			lines: []string{
				"// Function: g()",
				"// Description: Computes a thing.",
				"//   In detail.",
				"// Returns: The thing.",
			},
			want: &LeafNode{
				Name:        "g()",
				Type:        Function,
				Description: []string{"Computes a thing.", "In detail."},
				Returns:     []string{"The thing."},
			},
		},
		{
			name: "SideEffectsAnchorsCustom",
			lines: []string{
				"// Module: att()",
				"// Side Effects:",
				"//   Sets `$thing`.",
				"// Anchors:",
				"//   top = The top face.",
				"// Custom: Notes",
				"//   A note line.",
			},
			want: &LeafNode{
				Name:        "att()",
				Type:        Module,
				SideEffects: []string{"Sets `$thing`."},
				Anchors: []Argument{
					{Name: "top", Description: "The top face."},
				},
				Customs: []Custom{
					{Title: "Notes", Lines: []string{"A note line."}},
				},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rest, got, err := parseLeaf(NewLines(test.lines), "// ")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("leaf node (-want +got):\n%s", diff)
			}
			if !rest.Empty() {
				t.Errorf("%d lines left unconsumed, starting at %q", rest.Len(), rest.Peek())
			}
		})
	}
}

func TestParseLeafStopsAtDoubleBlank(t *testing.T) {
	lines := []string{
		"// Function: f()",
		"//",
		"//",
		"// Function: g()",
	}
	rest, got, err := parseLeaf(NewLines(lines), "// ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "f()" {
		t.Errorf("node name = %q; want %q", got.Name, "f()")
	}
	if rest.Peek() != "// Function: g()" {
		t.Errorf("next line = %q; want the following leaf header", rest.Peek())
	}
}

func TestParseLeafErrors(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		wantEntity string
		wantInMsg  string
	}{
		{
			name: "EmptyUsage",
			lines: []string{
				"// Function: f()",
				"// Usage:",
				"// Description:",
				"//   Words.",
			},
			wantEntity: "f()",
			wantInMsg:  "usage",
		},
		{
			name: "ArgumentMissingEquals",
			lines: []string{
				"// Function: f()",
				"// Arguments:",
				"//   just words with no separator",
			},
			wantEntity: "f()",
			wantInMsg:  "'='",
		},
		{
			name: "AnchorMissingEquals",
			lines: []string{
				"// Module: m()",
				"// Anchors:",
				"//   top the top",
			},
			wantEntity: "m()",
			wantInMsg:  "'='",
		},
		{
			name: "HeaderMissingColon",
			lines: []string{
				"// Function: f()",
				"// Description",
			},
			wantEntity: "f()",
			wantInMsg:  "missing colon",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := parseLeaf(NewLines(test.lines), "// ")
			if err == nil {
				t.Fatal("parseLeaf did not return an error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v (type %T) is not a *ParseError", err, err)
			}
			if pe.Entity != test.wantEntity {
				t.Errorf("error entity = %q; want %q", pe.Entity, test.wantEntity)
			}
			if !strings.Contains(err.Error(), test.wantInMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), test.wantInMsg)
			}
		})
	}
}

func TestMatchLeaf(t *testing.T) {
	tests := []struct {
		line   string
		prefix string
		want   bool
	}{
		{"// Function: f()", "// ", true},
		{"// Module: m()", "// ", true},
		{"// Function&Module: fm()", "// ", true},
		{"// Constant: K", "// ", true},
		{"// Section: Shapes", "// ", false},
		{"Function: f()", "", true},
		{"Function: f()", "// ", false},
	}
	for _, test := range tests {
		if got := matchLeaf(test.line, test.prefix); got != test.want {
			t.Errorf("matchLeaf(%q, %q) = %t; want %t", test.line, test.prefix, got, test.want)
		}
	}
}

func TestDeprecated(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"", false},
		{"DEPRECATED, use foo() instead.", true},
		{"DEPRECATED", true},
		{"deprecated", false},
	}
	for _, test := range tests {
		n := &LeafNode{Status: test.status}
		if got := n.Deprecated(); got != test.want {
			t.Errorf("Deprecated() with status %q = %t; want %t", test.status, got, test.want)
		}
	}
}
