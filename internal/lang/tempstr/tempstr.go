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

// Package tempstr implements the `$(N)`-parameterized template string
// mini-language: a literal string interspersed with numbered variable
// references, where `$` not immediately followed by a well-formed `(N)`
// token is treated as a literal dollar sign.
package tempstr

import (
	"strconv"
	"strings"
)

// Part is one piece of a parsed TempStr: either a literal run of text or a
// reference to argument index Var.
type Part struct {
	Literal string
	IsVar   bool
	Var     int
}

// TempStr is a parsed template string: an ordered sequence of literal and
// variable parts.
type TempStr struct {
	Parts []Part
}

// Parse lexes s into a TempStr. The grammar is:
//
//	text    := (literal | variable | escape)*
//	variable := "$(" digit+ ")"
//	escape   := "$$"
//
// A `$$` pair always hydrates to one literal `$`, checked before any
// variable attempt. A lone `$` that isn't immediately followed by a valid
// `(digit+)` construct is emitted as a literal `$` and parsing resumes at
// the next rune - it never backtracks into text already consumed as a
// variable attempt.
func Parse(s string) TempStr {
	var parts []Part
	var literal []rune
	runes := []rune(s)
	i := 0
	flushLiteral := func() {
		if len(literal) > 0 {
			parts = append(parts, Part{Literal: string(literal)})
			literal = nil
		}
	}
	for i < len(runes) {
		c := runes[i]
		if c != '$' {
			literal = append(literal, c)
			i++
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '$' {
			literal = append(literal, '$')
			i += 2
			continue
		}
		// attempt to parse $(N)
		j := i + 1
		if j < len(runes) && runes[j] == '(' {
			k := j + 1
			digitsStart := k
			for k < len(runes) && runes[k] >= '0' && runes[k] <= '9' {
				k++
			}
			if k > digitsStart && k < len(runes) && runes[k] == ')' {
				n, err := strconv.Atoi(string(runes[digitsStart:k]))
				if err == nil {
					flushLiteral()
					parts = append(parts, Part{IsVar: true, Var: n})
					i = k + 1
					continue
				}
			}
		}
		// not a valid variable reference - the '$' itself is literal
		literal = append(literal, '$')
		i++
	}
	flushLiteral()
	return TempStr{Parts: parts}
}

// Hydrate substitutes each variable part with args[Var] (or "" if the index
// is out of range) and concatenates the result.
func (t TempStr) Hydrate(args []string) string {
	var out []rune
	for _, p := range t.Parts {
		if !p.IsVar {
			out = append(out, []rune(p.Literal)...)
			continue
		}
		if p.Var >= 0 && p.Var < len(args) {
			out = append(out, []rune(args[p.Var])...)
		}
	}
	return string(out)
}

// MaxVar returns the highest variable index referenced, or -1 if none.
func (t TempStr) MaxVar() int {
	max := -1
	for _, p := range t.Parts {
		if p.IsVar && p.Var > max {
			max = p.Var
		}
	}
	return max
}

// String returns source text that parses back to the same TempStr. Every
// literal `$` is written as the `$$` escape, so the text is not always
// byte-identical to the string originally parsed.
func (t TempStr) String() string {
	var out []rune
	for _, p := range t.Parts {
		if p.IsVar {
			out = append(out, []rune("$("+strconv.Itoa(p.Var)+")")...)
		} else {
			out = append(out, []rune(strings.ReplaceAll(p.Literal, "$", "$$"))...)
		}
	}
	return string(out)
}
