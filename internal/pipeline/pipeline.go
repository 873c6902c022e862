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

// Package pipeline orchestrates the four compiler phases - prepare, pack,
// compile, execute - over a project's entry points, turning a project file
// plus a tree of route documents into one or more ExecDocs.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/exec"
	"github.com/Pistonite/celer-sub000/internal/plugin"
	"github.com/Pistonite/celer-sub000/internal/plugin/loader"
	"github.com/Pistonite/celer-sub000/internal/res"
	"github.com/Pistonite/celer-sub000/internal/routeblob"
)

// DefaultBudgetInterval bounds how many pack/compile suspension points pass
// between cancellation checks.
const DefaultBudgetInterval = 64

// Options configures a pipeline run against one project directory.
type Options struct {
	// ProjectFile is the filesystem path to the project's entry-point
	// manifest (commonly "project.yaml").
	ProjectFile string
	// Loader loads route/config resources by resolved res.Path. If nil, a
	// FileLoader rooted at ProjectFile's directory is used, wrapped for
	// remote `owner/repo/path` uses by an HTTPLoader, and memoized by a
	// CachingLoader for the run's duration.
	Loader res.Loader
}

func (o *Options) resolveLoader() res.Loader {
	if o.Loader != nil {
		return o.Loader
	}
	root := filepath.Dir(o.ProjectFile)
	return res.NewCachingLoader(&splitLoader{
		local:  &res.FileLoader{Root: root},
		remote: &res.HTTPLoader{},
	})
}

// splitLoader dispatches to local or remote based on the resolved Path,
// the way a single Loader capability is expected to model both backends.
type splitLoader struct {
	local  res.Loader
	remote res.Loader
}

func (s *splitLoader) Load(ctx context.Context, p res.Path) ([]byte, error) {
	if p.IsLocal() {
		return s.local.Load(ctx, p)
	}
	return s.remote.Load(ctx, p)
}

// Result is one entry point's compiled output.
type Result struct {
	EntryPoint string
	Doc        exec.ExecDoc
}

// Run compiles a single named entry point.
func Run(ctx context.Context, opts Options, entryPoint string) (*Result, error) {
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

	doc, err := compileEntry(ctx, ld, cfg, entryPath)
	if err != nil {
		return nil, err
	}
	return &Result{EntryPoint: entryPoint, Doc: *doc}, nil
}

// RunAll compiles every entry point declared in the project file,
// concurrently bounded by errgroup's default (unlimited) parallelism
// tempered only by each loader's own caching.
func RunAll(ctx context.Context, opts Options) ([]Result, error) {
	proj, err := config.LoadProject(opts.ProjectFile)
	if err != nil {
		return nil, err
	}
	ld := opts.resolveLoader()
	cfg, err := loadConfig(ctx, ld, proj)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(proj.EntryPoints))
	for name := range proj.EntryPoints {
		names = append(names, name)
	}

	results := make([]Result, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			entryPath, err := config.ResolveEntryPoint(proj.EntryPoints, name)
			if err != nil {
				return fmt.Errorf("entry point '%s': %w", name, err)
			}
			doc, err := compileEntry(gctx, ld, cfg, entryPath)
			if err != nil {
				return fmt.Errorf("entry point '%s': %w", name, err)
			}
			results[i] = Result{EntryPoint: name, Doc: *doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func loadConfig(ctx context.Context, ld res.Loader, proj *config.Project) (*config.Config, error) {
	projectPath := res.Path{}
	fragments, err := config.ResolveConfigFragments(ctx, ld, projectPath, proj.Config)
	if err != nil {
		return nil, err
	}
	cfg, err := config.MergeConfigs(fragments)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// compileEntry runs pack, compile, and execute for one resolved document
// path against an already-merged Config.
func compileEntry(ctx context.Context, ld res.Loader, cfg *config.Config, entryPath string) (*exec.ExecDoc, error) {
	compDoc, _, err := compileToCompDoc(ctx, ld, cfg, entryPath)
	if err != nil {
		return nil, err
	}
	execDoc := exec.Execute(strings.TrimPrefix(entryPath, "/"), *compDoc, cfg.Map.InitialColor, cfg.Tags)
	return &execDoc, nil
}

// compileToCompDoc runs pack and compile (but not execute) for one
// resolved document path, returning the loaded plugin instances alongside
// the CompDoc so a caller can also dispatch export hooks against them.
func compileToCompDoc(ctx context.Context, ld res.Loader, cfg *config.Config, entryPath string) (*comp.CompDoc, []*plugin.Instance, error) {
	docPath := res.Path{Path: strings.TrimPrefix(entryPath, "/")}
	raw, err := ld.Load(ctx, docPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entry document '%s': %w", entryPath, err)
	}
	var decoded interface{}
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, nil, fmt.Errorf("failed to parse entry document '%s': %w", entryPath, err)
	}

	packed := routeblob.PackRoute(ctx, ld, docPath, decoded)
	sanitized, packDiags := sanitize(packed)
	safe := routeblob.NewSafe(&sanitized)

	coordMaps, err := config.CompileCoordMaps(cfg.Map.CoordMap)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid coord-map config: %w", err)
	}

	instances, err := loader.LoadPlugins(cfg.Plugins)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load plugins: %w", err)
	}
	dupDiags := plugin.ValidateDuplicates(instances)

	budget := newBudget(ctx)
	cctx := comp.NewCtx(cfg, budget)

	beforeDiags := plugin.RunBeforeCompile(ctx, instances)

	compDoc := comp.Compile(cctx, coordMaps, safe)
	compDoc.Diagnostics = append(append(append(append([]comp.Diagnostic{}, packDiags...), dupDiags...), beforeDiags...), compDoc.Diagnostics...)

	afterDiags := plugin.RunAfterCompile(ctx, instances, &compDoc)
	compDoc.Diagnostics = append(compDoc.Diagnostics, afterDiags...)

	return &compDoc, instances, nil
}
