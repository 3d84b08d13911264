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

package markdown

import (
	"strings"

	"go4.org/bytereplacer"
)

var mdEscaper = bytereplacer.New(
	"_", `\_`,
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape escapes Markdown-special characters in txt.
// Content inside a literal code span,
// delimited by a matching pair of single backticks,
// passes through unchanged.
// An unmatched backtick is not treated as opening a span.
func Escape(txt string) string {
	if !strings.ContainsAny(txt, "_&<>`") {
		return txt
	}
	var sb strings.Builder
	for {
		open := strings.IndexByte(txt, '`')
		if open < 0 {
			break
		}
		width := strings.IndexByte(txt[open+1:], '`')
		if width < 0 {
			break
		}
		sb.Write(mdEscaper.Replace([]byte(txt[:open])))
		sb.WriteString(txt[open : open+width+2])
		txt = txt[open+width+2:]
	}
	sb.Write(mdEscaper.Replace([]byte(txt)))
	return sb.String()
}
