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

package scaddoc_test

import (
	"fmt"
	"os"
	"strings"

	"zombiezen.com/go/scaddoc"
	"zombiezen.com/go/scaddoc/markdown"
)

func Example() {
	const source = `// LibFile: demo.scad
//   A demo library.

// Section: Basics

// Function: double()
// Description:
//   Doubles its argument.
`
	// Parse the documentation comments out of the library source.
	lib, err := scaddoc.Parse(strings.NewReader(source), "// ")
	if err != nil {
		fmt.Println(err)
		return
	}
	// Render the document model as Markdown.
	r := &markdown.Renderer{FileRoot: "demo"}
	r.Render(os.Stdout, lib)
	// Output:
	// # Library File demo.scad
	//
	// A demo library.
	//
	// ---
	//
	// # Table of Contents
	//
	// 1. [Basics](#1-basics)
	//     - [`double()`](#double)
	//
	// ---
	//
	// # 1. Basics
	//
	// ### double()
	// **Type:** Function
	//
	// **Description:**
	// Doubles its argument.
	//
	// ---
}
