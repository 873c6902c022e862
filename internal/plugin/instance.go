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

// Package plugin implements the plugin layer: lifecycle hooks a plugin
// instance may implement to participate in compile and export, dispatched
// in declaration order.
package plugin

import (
	"context"

	"github.com/Pistonite/celer-sub000/internal/comp"
)

// Definition is a plugin implementation - either a built-in tag or a
// script resource. Scripts are never executed; a script definition only
// carries its source string.
type Definition interface {
	// Uri is the definition's URI identity, e.g. "builtin:variables".
	Uri() string
	Description() string
}

// BeforeCompileHook and the other *Hook interfaces below are implemented by
// any Definition that wants to participate in a given lifecycle stage. A Definition implements only the hooks it needs;
// the dispatcher type-asserts for each one.
type BeforeCompileHook interface {
	OnBeforeCompile(ctx context.Context, props map[string]interface{}) []comp.Diagnostic
}

type AfterCompileHook interface {
	OnAfterCompile(ctx context.Context, props map[string]interface{}, doc *comp.CompDoc) []comp.Diagnostic
}

// ExportMetadata describes one export format a plugin offers.
type ExportMetadata struct {
	ID   string
	Name string
}

type PrepareExportHook interface {
	OnPrepareExport(ctx context.Context, props map[string]interface{}) ([]ExportMetadata, error)
}

type ExportHook interface {
	OnExportCompDoc(ctx context.Context, props map[string]interface{}, id string, payload map[string]interface{}, doc *comp.CompDoc) (*ExpoDoc, error)
}

// ExpoDoc is one plugin-produced export artifact.
type ExpoDoc struct {
	Filename string
	Content  []byte
}

// Instance is one configured plugin: a definition plus the properties and
// duplicate-allowance from the project's `plugins:` list entry. ID
// distinguishes this instance from any other loaded instance of the same
// Definition, matching the "get_id" capability alongside "get_source"
// (Definition.Uri).
type Instance struct {
	ID             string
	Definition     Definition
	Props          map[string]interface{}
	AllowDuplicate bool
}

// Source returns the diagnostic source to attribute this instance's
// diagnostics to.
func (i *Instance) Source() string {
	return i.Definition.Uri()
}

// RunBeforeCompile dispatches OnBeforeCompile to every instance that
// implements it, in declaration order, collecting diagnostics attributed
// to each instance's source.
func RunBeforeCompile(ctx context.Context, instances []*Instance) []comp.Diagnostic {
	var diags []comp.Diagnostic
	for _, inst := range instances {
		hook, ok := inst.Definition.(BeforeCompileHook)
		if !ok {
			continue
		}
		for _, d := range hook.OnBeforeCompile(ctx, inst.Props) {
			d.Source = inst.Source()
			diags = append(diags, d)
		}
	}
	return diags
}

// RunAfterCompile dispatches OnAfterCompile to every instance that
// implements it, in declaration order, mutating doc in place.
func RunAfterCompile(ctx context.Context, instances []*Instance, doc *comp.CompDoc) []comp.Diagnostic {
	var diags []comp.Diagnostic
	for _, inst := range instances {
		hook, ok := inst.Definition.(AfterCompileHook)
		if !ok {
			continue
		}
		for _, d := range hook.OnAfterCompile(ctx, inst.Props, doc) {
			d.Source = inst.Source()
			diags = append(diags, d)
		}
	}
	return diags
}

// ValidateDuplicates enforces that non-duplicatable instances of the same
// definition URI appear at most once.
func ValidateDuplicates(instances []*Instance) []comp.Diagnostic {
	seen := map[string]bool{}
	var diags []comp.Diagnostic
	for _, inst := range instances {
		uri := inst.Definition.Uri()
		if seen[uri] && !inst.AllowDuplicate {
			diags = append(diags, comp.Diagnostic{
				Type:    "error",
				Source:  "plugin",
				Message: "duplicate plugin instance of '" + uri + "' (set allow-duplicate to permit)",
			})
			continue
		}
		seen[uri] = true
	}
	return diags
}
