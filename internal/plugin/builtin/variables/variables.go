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

// Package variables implements the built-in `variables` plugin: a set of
// named numeric values that line properties can mutate (`add`/`sub`/
// `mul`/`div`/`var`) and rich-text tags can render (`var`, `var-hex`,
// `var-roman`, ...), with a named counter auto-incrementing on each line
// that sets one.
package variables

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
	"github.com/Pistonite/celer-sub000/internal/util"
)

const (
	tagAdd           = "add"
	tagSub           = "sub"
	tagMul           = "mul"
	tagDiv           = "div"
	tagVar           = "var"
	tagVal           = "val"
	tagVarHex        = "var-hex"
	tagVarHexUpper   = "var-hex-upper"
	tagVarRoman      = "var-roman"
	tagVarRomanUpper = "var-roman-upper"
)

// Plugin is the `builtin:variables` definition instance state. A fresh
// Plugin is created per compile run (OnBeforeCompile seeds its state and
// OnAfterCompile updates it), current/temporary hold the live values, temporary keys (those
// starting with `_`) are cleared after every line.
type Plugin struct {
	current   map[string]float64
	temporary map[string]float64
	expose    bool
}

// New constructs an empty variables plugin definition.
func New() *Plugin {
	return &Plugin{current: map[string]float64{}, temporary: map[string]float64{}}
}

func (p *Plugin) Uri() string         { return "builtin:variables" }
func (p *Plugin) Description() string { return "tracks and renders named numeric variables" }

func (p *Plugin) mapFor(k string) map[string]float64 {
	if strings.HasPrefix(k, "_") {
		return p.temporary
	}
	return p.current
}

func (p *Plugin) get(k string) float64 {
	return p.mapFor(k)[k]
}

func (p *Plugin) set(k string, v float64) {
	p.mapFor(k)[k] = v
}

func (p *Plugin) increment(k string) {
	p.set(k, p.get(k)+1)
}

func (p *Plugin) clearTemporary() {
	p.temporary = map[string]float64{}
}

// OnBeforeCompile reads an `init` map of starting values and an `expose`
// flag from the instance's configured props.
func (p *Plugin) OnBeforeCompile(ctx context.Context, props map[string]interface{}) []comp.Diagnostic {
	if expose, ok := props["expose"]; ok {
		if b, ok := util.CoerceBool(expose); ok {
			p.expose = b
		}
	}
	if init, ok := props["init"].(map[string]interface{}); ok {
		for k, v := range init {
			if f, ok := util.CoerceFloat64(v); ok {
				p.set(k, f)
			}
		}
	}
	return nil
}

// OnAfterCompile transforms every var/var-hex/var-roman/... tagged rich
// text block in the document, applies `vars:` line properties, and
// increments+renders each line's counter variable.
func (p *Plugin) OnAfterCompile(ctx context.Context, props map[string]interface{}, doc *comp.CompDoc) []comp.Diagnostic {
	var diags []comp.Diagnostic
	doc.KnownProperties["vars"] = true
	doc.KnownProperties["vals"] = true

	for i := range doc.Preface {
		p.transformBlocks(doc.Preface[i])
	}

	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			line := &doc.Route[si].Lines[li]
			if vars, ok := line.Properties["vars"]; ok {
				if err := p.applyVars(vars); err != nil {
					line.Diagnostics = append(line.Diagnostics, comp.Diagnostic{Type: "error", Message: err.Error()})
				}
			}
			if line.Counter != nil {
				name := line.Counter.Text
				p.increment(name)
				if line.Counter.Tag == nil {
					line.Counter.Tag = util.Ref(tagVar)
				}
				p.transformBlock(line.Counter, name)
			}
			p.transformBlocks(line.Text)
			p.transformBlocks(line.Comment)
			p.transformBlocks(line.SplitName)
			for ni := range line.Notes {
				p.transformBlocks(line.Notes[ni].Content)
			}
			if p.expose {
				line.Properties["vals"] = p.snapshot()
			}
			p.clearTemporary()
		}
	}
	return diags
}

func (p *Plugin) snapshot() map[string]float64 {
	out := make(map[string]float64, len(p.current))
	for k, v := range p.current {
		out[k] = v
	}
	return out
}

func (p *Plugin) transformBlocks(blocks []rich.Block) {
	for i := range blocks {
		p.transformBlock(&blocks[i], tagVal)
	}
}

// transformBlock rewrites a var/var-hex/.../-tagged block's text into the
// rendered numeric value, and retags it to newTag.
func (p *Plugin) transformBlock(b *rich.Block, newTag string) {
	if b.Tag == nil {
		return
	}
	var render func(float64) string
	switch *b.Tag {
	case tagVar:
		render = floatToString
	case tagVarHex:
		render = toHex
	case tagVarHexUpper:
		render = toHexUpper
	case tagVarRoman:
		render = toRoman
	case tagVarRomanUpper:
		render = toRomanUpper
	default:
		return
	}
	b.Text = render(p.get(b.Text))
	b.Tag = &newTag
}

// applyVars applies a `vars:` line property: a map (or array of maps)
// from variable name to an operation string like "5", ".add(3)",
// ".var(other)".
func (p *Plugin) applyVars(raw interface{}) error {
	switch v := raw.(type) {
	case map[string]interface{}:
		return p.applyVarsMap(v)
	case []interface{}:
		for _, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				return fmt.Errorf("vars array must contain objects")
			}
			if err := p.applyVarsMap(m); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("vars must be an object or an array of objects")
	}
}

func (p *Plugin) applyVarsMap(m map[string]interface{}) error {
	updates := make(map[string]float64, len(m))
	for k, raw := range m {
		text := util.CoerceString(raw)
		blocks := rich.Parse(text)
		if len(blocks) == 0 {
			return fmt.Errorf("invalid empty operation: `%s`", text)
		}
		if len(blocks) > 1 {
			return fmt.Errorf("invalid operation: `%s`", text)
		}
		newVal, err := p.evalOp(blocks[0], p.get(k))
		if err != nil {
			return err
		}
		updates[k] = newVal
	}
	for k, v := range updates {
		p.set(k, v)
	}
	return nil
}

// evalOp computes the new value for a variable whose current value is
// base, given one rich-text block describing the operation: an untagged
// numeric literal is a plain assignment, `.var(x)` assigns from another
// variable, and `.add/.sub/.mul/.div(x)` apply against base with x as
// either a numeric literal or a variable reference.
func (p *Plugin) evalOp(op rich.Block, base float64) (float64, error) {
	if op.Tag == nil {
		n, err := decimal.NewFromString(op.Text)
		if err != nil {
			return 0, fmt.Errorf("`%s` is not a valid number. If you meant to assign the variable, use `.var(%s)`", op.Text, op.Text)
		}
		f, _ := n.Float64()
		return f, nil
	}
	operand := func() float64 {
		if f, err := decimal.NewFromString(op.Text); err == nil {
			v, _ := f.Float64()
			return v
		}
		return p.get(op.Text)
	}
	switch *op.Tag {
	case tagVar:
		return p.get(op.Text), nil
	case tagAdd:
		return base + operand(), nil
	case tagSub:
		return base - operand(), nil
	case tagMul:
		return base * operand(), nil
	case tagDiv:
		return base / operand(), nil
	default:
		return 0, fmt.Errorf("`%s` is not a valid operator tag", *op.Tag)
	}
}
