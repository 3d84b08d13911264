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

// Package markdown renders a parsed documentation model as Markdown.
package markdown

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"zombiezen.com/go/scaddoc"
)

// A Request asks the image pipeline to render one figure or example.
type Request struct {
	// LibFile identifies the library source file, e.g. "shapes.scad".
	LibFile string
	// ImgFile is the target image filename.
	ImgFile string
	// Code is the fully assembled script:
	// the library's includes, its common code,
	// then the figure or example body
	// with setup-marker lines folded in.
	Code []string
	// Type is the render type tag.
	Type string
}

// A Queue receives the image requests emitted while rendering.
type Queue interface {
	Add(Request)
}

// A Renderer converts a [scaddoc.Library] into Markdown text.
// The zero value renders with no image root and no request queue.
type Renderer struct {
	// FileRoot is the base name of the library source file
	// without its extension.
	FileRoot string
	// ImgRoot prefixes every image reference.
	// If non-empty it should end in a slash.
	ImgRoot string
	// Images receives a request for every renderable figure and example.
	// If Images is nil the requests are dropped;
	// the markdown image references are still emitted.
	Images Queue
}

// Render writes the library as Markdown to w.
// It returns the first write error encountered, if any.
func (r *Renderer) Render(w io.Writer, lib *scaddoc.Library) error {
	state := &renderState{
		Renderer: r,
		w:        &errWriter{w: w},
		lib:      lib,
	}
	state.library()
	return state.w.err
}

// renderState carries one Render call's mutable state:
// the sticky-error writer and the document-wide section figure counter.
type renderState struct {
	*Renderer
	w      *errWriter
	lib    *scaddoc.Library
	fignum int // section figures are numbered across the whole document
}

func (rs *renderState) line(s string) {
	rs.w.WriteString(s)
	rs.w.WriteString("\n")
}

func (rs *renderState) library() {
	lib := rs.lib
	if lib.Name != "" {
		rs.line("# Library File " + Escape(lib.Name))
		rs.line("")
	}
	if len(lib.Description) > 0 {
		rs.prose(lib.Description)
		rs.line("")
	}
	if len(lib.Includes) > 0 {
		rs.line("To use, add the following lines to the beginning of your file:")
		rs.line("```openscad")
		for _, inc := range lib.Includes {
			rs.line("    " + inc)
		}
		rs.line("```")
		rs.line("")
	}
	if lib.Name != "" || len(lib.Description) > 0 {
		rs.line("---")
		rs.line("")
	}

	if len(lib.Sections) > 0 || lib.Deprecations != nil {
		rs.line("# Table of Contents")
		rs.line("")
		count := 0
		for _, sect := range lib.Sections {
			count++
			rs.sectionTOC(sect, count)
		}
		if lib.Deprecations != nil {
			count++
			rs.sectionTOC(lib.Deprecations, count)
		}
		rs.line("---")
		rs.line("")
	}

	count := 0
	for _, sect := range lib.Sections {
		count++
		rs.section(sect, count)
	}
	if lib.Deprecations != nil {
		count++
		rs.section(lib.Deprecations, count)
	}
}

// prose emits free description text,
// passing lines inside ``` fences
// or indented as literal code blocks
// through without escaping.
func (rs *renderState) prose(lines []string) {
	inBlock := false
	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inBlock = !inBlock
		}
		if inBlock || strings.HasPrefix(line, "    ") {
			rs.line(line)
		} else {
			rs.line(Escape(line))
		}
	}
}

func (rs *renderState) sectionTOC(sect *scaddoc.Section, count int) {
	indent := ""
	if sect.Name != "" {
		rs.line(tocEntry(sect.Name, indent, count))
		indent += "    "
	}
	for _, node := range sect.Leaves {
		rs.line(tocEntry(node.Name, indent, 0))
	}
	rs.line("")
}

func (rs *renderState) section(sect *scaddoc.Section, count int) {
	if sect.Name != "" {
		rs.line(fmt.Sprintf("# %d. %s", count, Escape(sect.Name)))
		rs.line("")
	}
	if len(sect.Description) > 0 {
		rs.prose(sect.Description)
		rs.line("")
	}
	for _, fig := range sect.Figures {
		if strings.Contains(fig.Type, "NORENDER") {
			continue
		}
		rs.fignum++
		title := fmt.Sprintf("**Figure %d:**", rs.fignum)
		if fig.Title != "" {
			title += " " + Escape(fig.Title)
		}
		rs.line(title)
		rs.line("")
		imgFile := fmt.Sprintf("figure%d.%s", rs.fignum, imageExt(fig.Type))
		rs.line(fmt.Sprintf("![%s Figure %d](%s%s)", Escape(sect.Name), rs.fignum, rs.ImgRoot, imgFile))
		rs.line("")
		rs.request(imgFile, fig)
	}
	for _, node := range sect.Leaves {
		rs.leaf(node)
	}
}

var sanitizePat = regexp.MustCompile(`[^A-Za-z0-9_]`)

func (rs *renderState) leaf(n *scaddoc.LeafNode) {
	if n.Name != "" {
		rs.line("### " + Escape(n.Name))
		rs.line("**Type:** " + Escape(strings.ReplaceAll(string(n.Type), "&", "/")))
		rs.line("")
	}
	if n.Status != "" {
		rs.line(fmt.Sprintf("**%s**", Escape(n.Status)))
		rs.line("")
	}
	for _, u := range n.Usages {
		rs.line("**Usage:** " + Escape(u.Title))
		for _, pattern := range u.Patterns {
			rs.line("- " + Escape(pattern))
		}
		rs.line("")
	}
	if len(n.Description) > 0 {
		rs.line("**Description:**")
		for _, d := range n.Description {
			rs.line(Escape(d))
		}
		rs.line("")
	}

	sanName := sanitizePat.ReplaceAllString(n.Name, "")
	fignum := 0
	for _, fig := range n.Figures {
		if strings.Contains(fig.Type, "NORENDER") {
			continue
		}
		fignum++
		title := fmt.Sprintf("**Figure %d:**", fignum)
		if fig.Title != "" {
			title += " " + Escape(fig.Title)
		}
		imgFile := fmt.Sprintf("%s_fig%d.%s", sanName, fignum, imageExt(fig.Type))
		rs.request(imgFile, fig)
		rs.line(title)
		rs.line("")
		rs.line(fmt.Sprintf("![%s Figure %d](%s%s)", Escape(n.Name), fignum, rs.ImgRoot, imgFile))
		rs.line("")
	}

	if len(n.Returns) > 0 {
		rs.line("**Returns:**")
		for _, ret := range n.Returns {
			rs.line(Escape(ret))
		}
		rs.line("")
	}
	for _, c := range n.Customs {
		rs.line(fmt.Sprintf("**%s:**", c.Title))
		for _, ln := range c.Lines {
			rs.line(Escape(ln))
		}
		rs.line("")
	}

	if len(n.Arguments) > 0 || len(n.NamedArguments) > 0 {
		rs.line("**Arguments:**")
	}
	if len(n.Arguments) > 0 {
		rs.line(`<abbr title="These args can be used by position or by name.">By&nbsp;Position</abbr> | What it does`)
		rs.line("---------------- | ------------------------------")
		for _, a := range n.Arguments {
			rs.argRow(a)
		}
		rs.line("")
	}
	if len(n.NamedArguments) > 0 {
		rs.line(`<abbr title="These args must be used by name, ie: name=value">By&nbsp;Name</abbr>   | What it does`)
		rs.line("-------------- | ------------------------------")
		for _, a := range n.NamedArguments {
			rs.argRow(a)
		}
		rs.line("")
	}

	if len(n.SideEffects) > 0 {
		rs.line("**Side Effects:**")
		for _, sfx := range n.SideEffects {
			rs.line("- " + Escape(sfx))
		}
		rs.line("")
	}

	if len(n.Anchors) > 0 {
		rs.line("Anchor Name     | Description")
		rs.line("--------------- | ------------------------------")
		for _, a := range n.Anchors {
			rs.argRow(a)
		}
		rs.line("")
	}

	if len(n.Topics) > 0 {
		links := make([]string, len(n.Topics))
		for i, topic := range n.Topics {
			escaped := Escape(topic)
			links[i] = fmt.Sprintf("[%s](Topics#%s)", escaped, escaped)
		}
		rs.line("**Related Topics:** " + strings.Join(links, ", "))
		rs.line("")
	}

	for exnum, ex := range n.Examples {
		exnum++
		title := "**Example:**"
		if len(n.Examples) > 1 {
			title = fmt.Sprintf("**Example %d:**", exnum)
		}
		if ex.Title != "" {
			title += " " + Escape(ex.Title)
		}
		suffix := ""
		if exnum > 1 {
			suffix = fmt.Sprintf("_%d", exnum)
		}
		imgFile := fmt.Sprintf("%s%s.%s", sanName, suffix, imageExt(ex.Type))
		noRender := strings.Contains(ex.Type, "NORENDER")
		if !noRender {
			rs.request(imgFile, ex)
		}
		if strings.Contains(ex.Type, "Hide") {
			continue
		}
		rs.line(title)
		rs.line("")
		for _, inc := range rs.lib.Includes {
			rs.line("    " + inc)
		}
		for _, codeLine := range ex.Code {
			if strings.HasPrefix(strings.TrimSpace(codeLine), "--") {
				continue
			}
			rs.line("    " + codeLine)
		}
		rs.line("")
		if !noRender {
			label := ""
			if len(n.Examples) > 1 {
				label = fmt.Sprintf(" %d", exnum)
			}
			rs.line(fmt.Sprintf("![%s Example%s](%s%s)", Escape(n.Name), label, rs.ImgRoot, imgFile))
			rs.line("")
		}
	}

	rs.line("---")
	rs.line("")
}

func (rs *renderState) argRow(a scaddoc.Argument) {
	rs.line(fmt.Sprintf("%-15s | %s", Escape(codeSpans(a.Name)), Escape(a.Description)))
}

// request assembles the full script for a figure or example
// and queues it for the image pipeline.
// Body lines beginning with the -- setup marker
// join the script with the marker stripped;
// they are never displayed.
func (rs *renderState) request(imgFile string, ex scaddoc.Example) {
	if rs.Images == nil {
		return
	}
	code := make([]string, 0, len(rs.lib.Includes)+len(rs.lib.CommonCode)+len(ex.Code))
	code = append(code, rs.lib.Includes...)
	code = append(code, rs.lib.CommonCode...)
	for _, line := range ex.Code {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "--") {
			code = append(code, strings.TrimPrefix(trimmed, "--"))
		} else {
			code = append(code, line)
		}
	}
	rs.Images.Add(Request{
		LibFile: rs.FileRoot + ".scad",
		ImgFile: imgFile,
		Code:    code,
		Type:    ex.Type,
	})
}

// codeSpans wraps each alternative of an argument or anchor name
// in its own literal code span, with alternatives separated by slashes.
func codeSpans(name string) string {
	parts := strings.Split(strings.ReplaceAll(name, "|", "/"), "/")
	for i, part := range parts {
		parts[i] = "`" + strings.TrimSpace(part) + "`"
	}
	return strings.Join(parts, " / ")
}

func imageExt(renderType string) string {
	if strings.Contains(renderType, "Spin") {
		return "gif"
	}
	return "png"
}

var slugStripPat = regexp.MustCompile(`[^a-z0-9_ -]`)

// slugify converts a heading to its markdown anchor reference.
func slugify(name string) string {
	stripped := slugStripPat.ReplaceAllString(strings.ToLower(name), "")
	return strings.ReplaceAll(stripped, " ", "-")
}

// tocEntry formats one table of contents line.
// A positive count numbers the entry;
// zero renders a plain bullet.
// Names that end in a closing bracket are presented as literal code
// with backslashes removed.
func tocEntry(name, indent string, count int) string {
	lname := name
	bullet := "-"
	if count > 0 {
		lname = fmt.Sprintf("%d. %s", count, name)
		bullet = fmt.Sprintf("%d.", count)
	}
	ref := slugify(lname)
	if strings.HasSuffix(name, ")") || strings.HasSuffix(name, "}") || strings.HasSuffix(name, "]") {
		name = "`" + strings.ReplaceAll(name, `\`, "") + "`"
	}
	return fmt.Sprintf("%s%s [%s](#%s)", indent, bullet, name, ref)
}

// errWriter wraps an io.Writer, remembering the first error
// and discarding all writes after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
