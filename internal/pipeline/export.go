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

package pipeline

import (
	"context"
	"fmt"

	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/plugin"
)

// Export compiles entryPoint and dispatches the first loaded plugin
// instance that advertises exportID via on_prepare_export to on_export_comp_doc,
// the way spec.md §4.9's export hooks are meant to be driven by a caller
// outside the compile phase itself (an exporter tool, here the `export`
// command).
func Export(ctx context.Context, opts Options, entryPoint string, exportID string, payload map[string]interface{}) (*plugin.ExpoDoc, error) {
	proj, err := config.LoadProject(opts.ProjectFile)
	if err != nil {
		return nil, err
	}
	entryPath, err := config.ResolveEntryPoint(proj.EntryPoints, entryPoint)
	if err != nil {
		return nil, err
	}
	ld := opts.resolveLoader()

	cfg, err := loadConfig(ctx, ld, proj)
	if err != nil {
		return nil, err
	}

	compDoc, instances, err := compileToCompDoc(ctx, ld, cfg, entryPath)
	if err != nil {
		return nil, err
	}

	for _, inst := range instances {
		hook, ok := inst.Definition.(plugin.PrepareExportHook)
		if !ok {
			continue
		}
		metas, err := hook.OnPrepareExport(ctx, inst.Props)
		if err != nil {
			return nil, fmt.Errorf("plugin '%s' failed to prepare export: %w", inst.Source(), err)
		}
		for _, meta := range metas {
			if meta.ID != exportID {
				continue
			}
			exportHook, ok := inst.Definition.(plugin.ExportHook)
			if !ok {
				return nil, fmt.Errorf("plugin '%s' advertises export '%s' but does not implement on_export_comp_doc", inst.Source(), exportID)
			}
			return exportHook.OnExportCompDoc(ctx, inst.Props, exportID, payload, compDoc)
		}
	}
	return nil, fmt.Errorf("no loaded plugin advertises export id '%s'", exportID)
}
