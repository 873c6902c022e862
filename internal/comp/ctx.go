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

package comp

import (
	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/lang/preset"
	"github.com/Pistonite/celer-sub000/internal/util"
)

// DefaultMaxPresetRefDepth bounds how many `presets: [...]` hops a single
// line's preset reference chain may expand through.
const DefaultMaxPresetRefDepth = 8

// DefaultMaxPresetNamespaceDepth bounds namespace nesting when resolving a
// qualified preset name (ns::sub::name) against the config's preset table.
const DefaultMaxPresetNamespaceDepth = 16

// Ctx is the compile context threaded through one document's compilation:
// the running color set by `color` properties, the preset table,
// and the depth bounds that guard recursive expansion.
type Ctx struct {
	Presets map[string]*preset.Preset

	MaxPresetRefDepth       int
	MaxPresetNamespaceDepth int

	CurrentColor string

	Budget *util.Budget
}

// NewCtx builds a Ctx from a merged Config, with default depth bounds.
func NewCtx(cfg *config.Config, budget *util.Budget) *Ctx {
	return &Ctx{
		Presets:                 cfg.Presets,
		MaxPresetRefDepth:       DefaultMaxPresetRefDepth,
		MaxPresetNamespaceDepth: DefaultMaxPresetNamespaceDepth,
		Budget:                  budget,
	}
}
