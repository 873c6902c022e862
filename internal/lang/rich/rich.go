// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rich implements the rich-text mini-language: plain text
// interspersed with `.tag(content)` blocks, with `\.`, `\(`, `\)`, `\\`
// escapes.
package rich

import (
	"strings"

	"github.com/Pistonite/celer-sub000/internal/util"
)

// Block is one unit of parsed rich text: either untagged text or a
// `.tag(...)` block. Link is never set by Parse; it's populated later by
// plugins (e.g. the link plugin) that attach a hyperlink target to a block.
type Block struct {
	Tag  *string
	Text string
	Link *string
}

// Parse lexes s into a sequence of Blocks. Adjacent untagged text is
// coalesced into a single Block. A tag name is only recognized when the
// `.name` is immediately followed by `(` with no intervening characters;
// otherwise the `.` and following text are plain text.
func Parse(s string) []Block {
	runes := []rune(s)
	n := len(runes)
	var out []Block

	appendText := func(text string) {
		if text == "" && len(out) > 0 && out[len(out)-1].Tag == nil {
			return
		}
		if len(out) > 0 && out[len(out)-1].Tag == nil {
			out[len(out)-1].Text += text
			return
		}
		out = append(out, Block{Text: text})
	}

	i := 0
	for i < n {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < n && isEscapable(runes[i+1]):
			appendText(string(runes[i+1]))
			i += 2
		case c == '\\':
			appendText("\\")
			i++
		case c == '.':
			tagName, argStart, ok := tryLexTagName(runes, i+1)
			if !ok {
				appendText(".")
				i++
				continue
			}
			content, next := lexTagArg(runes, argStart)
			out = append(out, Block{Tag: util.Ref(tagName), Text: content})
			i = next
		default:
			appendText(string(c))
			i++
		}
	}
	return out
}

func isEscapable(r rune) bool {
	return r == '.' || r == '(' || r == ')' || r == '\\'
}

// tryLexTagName attempts to lex a tag name starting at idx (just after the
// '.'). A tag name is a run of letters, digits, '-', '_' immediately
// followed by '('. Returns the name, the index of the first rune after '(',
// and whether a tag was recognized.
func tryLexTagName(runes []rune, idx int) (string, int, bool) {
	start := idx
	i := idx
	for i < len(runes) && isTagNameRune(runes[i]) {
		i++
	}
	if i == start || i >= len(runes) || runes[i] != '(' {
		return "", 0, false
	}
	return string(runes[start:i]), i + 1, true
}

func isTagNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}

// lexTagArg lexes the content of a tag block starting right after its `(`,
// honoring `\)`/`\\` escapes, and returns the content plus the index right
// after the matching unescaped `)`. If no matching `)` is found, the rest
// of the string is consumed as content.
func lexTagArg(runes []rune, idx int) (string, int) {
	var b strings.Builder
	i := idx
	n := len(runes)
	for i < n {
		c := runes[i]
		if c == '\\' && i+1 < n && isEscapable(runes[i+1]) {
			b.WriteRune(runes[i+1])
			i += 2
			continue
		}
		if c == '\\' {
			b.WriteRune('\\')
			i++
			continue
		}
		if c == ')' {
			return b.String(), i + 1
		}
		b.WriteRune(c)
		i++
	}
	return b.String(), i
}
