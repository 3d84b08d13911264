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

// LeafType identifies the kind of documented entity a [LeafNode] describes.
type LeafType string

// The recognized leaf types.
// Each corresponds to a header keyword that opens a documentation comment block.
const (
	Constant       LeafType = "Constant"
	Function       LeafType = "Function"
	Module         LeafType = "Module"
	FunctionModule LeafType = "Function&Module"
)

// A Library is the document model for one library source file.
// It is fully built by a single parse pass
// and must not be modified afterwards.
type Library struct {
	// Name is the value of the LibFile: header, if any.
	Name string
	// Description holds the free-text lines following the LibFile: header.
	// It may embed literal code blocks delimited by ``` fences.
	Description []string
	// Includes holds literal include statements
	// prepended to the code of every rendered figure and example.
	Includes []string
	// CommonCode holds literal code shared by every rendered figure and example.
	CommonCode []string
	// Sections holds the library's sections in document order.
	Sections []*Section
	// Deprecations collects leaf nodes whose status begins with DEPRECATED.
	// It is nil unless at least one such leaf exists,
	// and is always named "Deprecations".
	Deprecations *Section
}

// A Section groups leaf nodes under a common heading.
// A section with an empty Name is implicit:
// it collects leaf nodes encountered before any Section: header.
type Section struct {
	Name        string
	Description []string
	Figures     []Example
	Leaves      []*LeafNode
}

// A LeafNode is the documentation record for one constant, function,
// module, or function-and-module entity.
type LeafNode struct {
	Name   string
	Type   LeafType
	Status string
	// Topics holds the comma-separated tags of the Topics: header, in order.
	Topics []string
	Usages []Usage
	// Description holds the text of the Description: header,
	// including any inline text on the header line itself.
	Description []string
	Figures     []Example
	Returns     []string
	// Customs holds arbitrary named blocks from Custom: headers,
	// preserved for passthrough rendering.
	Customs []Custom
	// Arguments holds positional arguments;
	// NamedArguments holds keyword-only arguments,
	// split by a literal --- line in the Arguments: block.
	Arguments      []Argument
	NamedArguments []Argument
	Anchors        []Argument
	SideEffects    []string
	Examples       []Example
}

// Deprecated reports whether the leaf's status routes it
// into the library's Deprecations section.
func (n *LeafNode) Deprecated() bool {
	return strings.HasPrefix(n.Status, "DEPRECATED")
}

// A Usage is one usage synopsis: an optional title
// and one or more usage pattern lines.
type Usage struct {
	Title    string
	Patterns []string
}

// A Custom is a named free-text block preserved verbatim.
type Custom struct {
	Title string
	Lines []string
}

// An Argument is one name/description pair
// from an Arguments: or Anchors: block.
// The name may contain alternatives separated by / or |.
type Argument struct {
	Name        string
	Description string
}

// An Example is one figure or example:
// a title, the literal code lines, and the render type tag
// whose substrings encode image size, animation, projection,
// and display options.
type Example struct {
	Title string
	Code  []string
	Type  string
}
