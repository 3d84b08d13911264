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
	"regexp"
	"strings"
)

var (
	figurePat  = regexp.MustCompile(`^(Figures?)(\(([^)]*)\))?: *(.*)$`)
	examplePat = regexp.MustCompile(`^(Examples?)(\(([^)]*)\))?: *(.*)$`)
)

var leafHeaders = [...]string{
	"Constant: ",
	"Function: ",
	"Function&Module: ",
	"Module: ",
}

// matchLeaf reports whether the line opens a leaf node comment block.
func matchLeaf(line, prefix string) bool {
	for _, kw := range leafHeaders {
		if strings.HasPrefix(line, prefix+kw) {
			return true
		}
	}
	return false
}

// parseLeaf parses one documented entity from the cursor:
// the header line naming the entity,
// followed by any number of recognized blocks.
// Two consecutive blank lines
// (blank after stripping any comment leader slashes)
// or a line failing the prefix check terminate the node.
// An unrecognized header, an empty Usage block,
// or a malformed argument or anchor line
// stops the parse with a [*ParseError].
func parseLeaf(l Lines, prefix string) (Lines, *LeafNode, error) {
	node := new(LeafNode)
	blanks := 0
	trimmedPrefix := strings.TrimSpace(prefix)
	for !l.Empty() {
		if prefix != "" && !strings.HasPrefix(l.Peek(), trimmedPrefix) {
			break
		}
		lineno := l.LineNumber()
		var raw string
		l, raw = l.Pop()
		raw = strings.TrimRight(raw, " \t")
		if strings.TrimSpace(strings.TrimLeft(raw, "/")) == "" {
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
		switch {
		case strings.HasPrefix(line, "Constant:"),
			strings.HasPrefix(line, "Function:"),
			strings.HasPrefix(line, "Function&Module:"),
			strings.HasPrefix(line, "Module:"):
			kw, title, _ := strings.Cut(line, ":")
			node.Name = strings.TrimSpace(title)
			node.Type = LeafType(strings.TrimSpace(kw))
		case strings.HasPrefix(line, "Status:"):
			_, status, _ := strings.Cut(line, ":")
			node.Status = strings.TrimSpace(status)
		case strings.HasPrefix(line, "Topics:"):
			_, topics, _ := strings.Cut(line, ":")
			for _, topic := range strings.Split(topics, ",") {
				node.Topics = append(node.Topics, strings.TrimSpace(topic))
			}
		case strings.HasPrefix(line, "Usage:"):
			_, title, _ := strings.Cut(line, ":")
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			if len(block) == 0 {
				return l, nil, &ParseError{
					Line:   lineno,
					Text:   raw,
					Entity: node.Name,
					Msg:    "usage header without any usage patterns",
				}
			}
			node.Usages = append(node.Usages, Usage{
				Title:    strings.TrimSpace(title),
				Patterns: block,
			})
		case strings.HasPrefix(line, "Description:"):
			_, desc, _ := strings.Cut(line, ":")
			if desc = strings.TrimSpace(desc); desc != "" {
				node.Description = append(node.Description, desc)
			}
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			node.Description = append(node.Description, block...)
		case strings.HasPrefix(line, "Returns:"):
			_, ret, _ := strings.Cut(line, ":")
			if ret = strings.TrimSpace(ret); ret != "" {
				node.Returns = append(node.Returns, ret)
			}
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			node.Returns = append(node.Returns, block...)
		case strings.HasPrefix(line, "Custom:"):
			_, title, _ := strings.Cut(line, ":")
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			node.Customs = append(node.Customs, Custom{
				Title: strings.TrimSpace(title),
				Lines: block,
			})
		case figurePat.MatchString(line):
			m := figurePat.FindStringSubmatch(line)
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			figType := m[3]
			if figType == "" {
				figType = "3D"
			}
			node.Figures = appendCodeBlocks(node.Figures, m[1] == "Figures", m[4], block, figType)
		case strings.HasPrefix(line, "Arguments:"):
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			named := false
			for _, argLine := range block {
				if strings.TrimSpace(argLine) == "---" {
					named = true
					continue
				}
				name, desc, ok := strings.Cut(argLine, "=")
				if !ok {
					return l, nil, &ParseError{
						Line:   lineno,
						Text:   argLine,
						Entity: node.Name,
						Msg:    "argument line missing '='",
					}
				}
				arg := Argument{
					Name:        strings.TrimSpace(name),
					Description: strings.TrimSpace(desc),
				}
				if named {
					node.NamedArguments = append(node.NamedArguments, arg)
				} else {
					node.Arguments = append(node.Arguments, arg)
				}
			}
		case strings.HasPrefix(line, "Anchors:"), strings.HasPrefix(line, "Extra Anchors:"):
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			for _, anchorLine := range block {
				name, desc, ok := strings.Cut(anchorLine, "=")
				if !ok {
					return l, nil, &ParseError{
						Line:   lineno,
						Text:   anchorLine,
						Entity: node.Name,
						Msg:    "anchor line missing '='",
					}
				}
				node.Anchors = append(node.Anchors, Argument{
					Name:        strings.TrimSpace(name),
					Description: strings.TrimSpace(desc),
				})
			}
		case strings.HasPrefix(line, "Side Effects:"):
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			node.SideEffects = append(node.SideEffects, block...)
		case examplePat.MatchString(line):
			m := examplePat.FindStringSubmatch(line)
			var block []string
			l, block = ReadBlock(l, prefix, 1)
			exType := m[3]
			if exType == "" {
				// Constants and pure functions have no visual rendering.
				if node.Type == Module || node.Type == FunctionModule {
					exType = "3D"
				} else {
					exType = "NORENDER"
				}
			}
			node.Examples = appendCodeBlocks(node.Examples, m[1] == "Examples", m[4], block, exType)
		default:
			msg := "unrecognized block header"
			if !strings.Contains(line, ":") {
				msg = "unrecognized block header, missing colon?"
			}
			return l, nil, &ParseError{
				Line:   lineno,
				Text:   raw,
				Entity: node.Name,
				Msg:    msg,
			}
		}
	}
	return l, node, nil
}

// appendCodeBlocks appends the parsed figure or example block to dst.
// A plural header turns each block line into its own untitled
// single-line entry.
func appendCodeBlocks(dst []Example, plural bool, title string, block []string, typ string) []Example {
	if !plural {
		return append(dst, Example{Title: title, Code: block, Type: typ})
	}
	for _, line := range block {
		dst = append(dst, Example{Code: []string{line}, Type: typ})
	}
	return dst
}
