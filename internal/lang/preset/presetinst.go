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

package preset

import (
	"fmt"
	"strings"
)

// Inst is a parsed preset-instance reference: `ns::sub::name<arg,arg>`.
// Namespace holds the first segment and Subs the remaining `::`-separated
// segments, so the fully-qualified preset name is Namespace + "::" +
// strings.Join(Subs, "::") when len(Subs) > 0, or just Namespace otherwise.
type Inst struct {
	Namespace string
	Subs      []string
	Args      []string
}

// QualifiedName returns the namespace-joined preset name, without args.
func (p Inst) QualifiedName() string {
	if len(p.Subs) == 0 {
		return p.Namespace
	}
	return p.Namespace + "::" + strings.Join(p.Subs, "::")
}

// ParseInst parses a preset-instance reference string of the form
// `name<arg,arg>` or `ns::sub::name<arg>`. Names are runs of characters
// excluding `:`, `<`, `>`, `,`, and `\`. Inside `<...>` argument lists,
// `,` and `>` terminate, `\,`, `\>`, `\\` are escapes, and all other
// characters (including literal `:`) pass through unescaped.
func ParseInst(s string) (*Inst, error) {
	runes := []rune(s)
	i := 0

	name, next, err := readName(runes, i)
	if err != nil {
		return nil, err
	}
	i = next

	var subs []string
	for i < len(runes) && runes[i] == ':' {
		if i+1 >= len(runes) || runes[i+1] != ':' {
			return nil, fmt.Errorf("preset instance: expected '::' at position %d", i)
		}
		i += 2
		sub, next, err := readName(runes, i)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
		i = next
	}

	var args []string
	if i < len(runes) && runes[i] == '<' {
		i++
		for {
			arg, next, term, err := readArg(runes, i)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			i = next
			if term == '>' {
				break
			}
			if i > len(runes) {
				return nil, fmt.Errorf("preset instance: unterminated argument list")
			}
		}
	}
	if i != len(runes) {
		return nil, fmt.Errorf("preset instance: unexpected trailing characters at position %d", i)
	}
	return &Inst{Namespace: name, Subs: subs, Args: args}, nil
}

func readName(runes []rune, i int) (string, int, error) {
	start := i
	for i < len(runes) && runes[i] != ':' && runes[i] != '<' && runes[i] != '>' && runes[i] != ',' && runes[i] != '\\' {
		i++
	}
	if i == start {
		return "", 0, fmt.Errorf("preset instance: expected a name at position %d", start)
	}
	return string(runes[start:i]), i, nil
}

// readArg reads one `<...>`-list argument starting at i (just after the
// opening `<` or a previous `,`). It returns the decoded argument text,
// the index after the terminator, and the terminator rune (',' or '>').
func readArg(runes []rune, i int) (string, int, rune, error) {
	var b strings.Builder
	for i < len(runes) {
		c := runes[i]
		switch c {
		case '\\':
			if i+1 < len(runes) && isArgEscapable(runes[i+1]) {
				b.WriteRune(runes[i+1])
				i += 2
				continue
			}
			b.WriteRune('\\')
			i++
		case ',', '>':
			return b.String(), i + 1, c, nil
		default:
			b.WriteRune(c)
			i++
		}
	}
	return "", 0, 0, fmt.Errorf("preset instance: unterminated argument")
}

func isArgEscapable(r rune) bool {
	return r == ',' || r == '>' || r == '\\'
}
