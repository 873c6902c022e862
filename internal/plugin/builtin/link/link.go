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

// Package link implements the built-in `link` plugin: rewrites `.link(url)`
// rich-text blocks into plain blocks carrying the url as a hyperlink target
// instead of a visible tag.
package link

import (
	"context"

	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
	"github.com/Pistonite/celer-sub000/internal/util"
)

const tagLink = "link"

// Plugin is the `builtin:link` definition. It carries no per-instance
// state; every OnAfterCompile pass transforms the document the same way.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Uri() string         { return "builtin:link" }
func (p *Plugin) Description() string { return "turns .link(url) tags into hyperlinked text" }

// OnAfterCompile rewrites every `.link(url)` block across the preface and
// route lines into an untagged block whose Link points at url.
func (p *Plugin) OnAfterCompile(ctx context.Context, props map[string]interface{}, doc *comp.CompDoc) []comp.Diagnostic {
	for i := range doc.Preface {
		transformBlocks(doc.Preface[i])
	}
	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			line := &doc.Route[si].Lines[li]
			transformBlocks(line.Text)
			transformBlocks(line.Comment)
			transformBlocks(line.SplitName)
			for ni := range line.Notes {
				transformBlocks(line.Notes[ni].Content)
			}
		}
	}
	return nil
}

func transformBlocks(blocks []rich.Block) {
	for i := range blocks {
		b := &blocks[i]
		if b.Tag == nil || *b.Tag != tagLink {
			continue
		}
		b.Tag = nil
		b.Link = util.Ref(b.Text)
	}
}
