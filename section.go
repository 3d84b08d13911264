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

// matchSection reports whether the line opens a section comment block.
func matchSection(line, prefix string) bool {
	return strings.HasPrefix(line, prefix+"Section: ")
}

// parseSection parses a Section: header,
// its free-text description
// (where single blank lines are allowed inside),
// and any section-level figure blocks.
// The section's leaf nodes are not collected here;
// the library parser attaches them
// as it encounters subsequent leaf headers.
func parseSection(l Lines, prefix string) (Lines, *Section) {
	sect := new(Section)
	var header string
	l, header = l.Pop()
	_, name, _ := strings.Cut(strings.TrimRight(header, " \t"), ": ")
	sect.Name = strings.TrimSpace(name)
	l, sect.Description = ReadBlock(l, prefix, 2)

	blanks := 0
	trimmedPrefix := strings.TrimSpace(prefix)
	for !l.Empty() {
		if prefix != "" && !strings.HasPrefix(l.Peek(), trimmedPrefix) {
			break
		}
		raw := strings.TrimRight(l.Peek(), " \t")
		if strings.TrimSpace(strings.TrimLeft(raw, "/")) == "" {
			l, _ = l.Pop()
			blanks++
			if blanks >= 2 {
				break
			}
			continue
		}
		blanks = 0
		line := raw
		if len(prefix) < len(line) {
			line = line[len(prefix):]
		}
		m := figurePat.FindStringSubmatch(line)
		if m == nil {
			// Not a figure header. Leave it for the library parser.
			break
		}
		l, _ = l.Pop()
		var block []string
		l, block = ReadBlock(l, prefix, 1)
		figType := m[3]
		if figType == "" {
			figType = "3D"
		}
		sect.Figures = appendCodeBlocks(sect.Figures, m[1] == "Figures", m[4], block, figType)
	}
	return l, sect
}
