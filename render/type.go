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

package render

import "strings"

// A Type describes how one figure or example is rendered,
// decoded from the tag string attached to its documentation comment.
type Type struct {
	// Tag is the original tag string.
	Tag string
	// Width and Height give the target image size in pixels.
	Width  int
	Height int
	// ShowEdges enables the edges view.
	ShowEdges bool
	// ForceRender requests a full render instead of a preview.
	ForceRender bool
	// Spin renders a 36-frame turntable animation.
	Spin bool
	// Flat keeps the turntable camera level while spinning.
	Flat bool
	// TwoD looks straight down the Z axis.
	TwoD bool
	// NoRender skips the image entirely.
	NoRender bool
	// Hidden renders the image without displaying the example code.
	Hidden bool
}

// ParseType decodes a render type tag.
// The assembled script is consulted as well:
// scripts calling distribute or show_anchors
// get at least a medium canvas regardless of the tag.
func ParseType(tag string, code []string) Type {
	t := Type{
		Tag:         tag,
		ShowEdges:   strings.Contains(tag, "Edges"),
		ForceRender: strings.Contains(tag, "FR"),
		Spin:        strings.Contains(tag, "Spin"),
		Flat:        strings.Contains(tag, "Flat"),
		TwoD:        strings.Contains(tag, "2D"),
		NoRender:    strings.Contains(tag, "NORENDER"),
		Hidden:      strings.Contains(tag, "Hide"),
	}
	switch {
	case strings.Contains(tag, "Huge"):
		t.Width, t.Height = 800, 600
	case strings.Contains(tag, "Big"):
		t.Width, t.Height = 640, 480
	case strings.Contains(tag, "Med"), scriptContains(code, "distribute"), scriptContains(code, "show_anchors"):
		t.Width, t.Height = 480, 360
	default:
		t.Width, t.Height = 320, 240
	}
	return t
}

func scriptContains(code []string, substr string) bool {
	for _, line := range code {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
