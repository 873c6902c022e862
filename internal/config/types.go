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

// Package config holds the project/config document model: the merged
// configuration that governs how a project's route documents compile -
// icons, tags, presets, plugins, splits, and the map/coord-map setup.
package config

import "github.com/Pistonite/celer-sub000/internal/lang/preset"

// Project is the top-level project file: an entry-point map plus a list of
// config fragments (each either inline or a `use` reference) that get
// merged together before prep begins.
type Project struct {
	EntryPoints map[string]string        `yaml:"entry-points"`
	Config      []map[string]interface{} `yaml:"config"`
}

// Config is the fully merged, decoded configuration governing a compile.
type Config struct {
	Icons               map[string]string   `yaml:"icons"`
	Tags                map[string]Tag      `yaml:"tags"`
	Presets             map[string]*preset.Preset
	Plugins             []PluginConfig      `yaml:"plugins"`
	Splits              map[string][]string `yaml:"splits"`
	DefaultIconPriority int                 `yaml:"default-icon-priority"`
	Map                 MapConfig           `yaml:"map"`
}

// Tag describes a user-registered rich-text tag's rendering hint.
type Tag struct {
	Color  string `yaml:"color,omitempty"`
	Bold   bool   `yaml:"bold,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`
}

// PluginConfig is one entry in the project's `plugins:` list: either a
// built-in tag reference or a script resource, with arbitrary properties
// passed through to the plugin instance.
type PluginConfig struct {
	Use            string                 `yaml:"use"`
	Props          map[string]interface{} `yaml:"props,omitempty"`
	AllowDuplicate bool                   `yaml:"allow-duplicate,omitempty"`
}

// MapConfig describes the initial map view and the coordinate-mapping
// rules used to project 2D/3D route coordinates onto a 2D map layer.
type MapConfig struct {
	InitialCoord [3]float64     `yaml:"initial-coord"`
	InitialZoom  int            `yaml:"initial-zoom"`
	InitialColor string         `yaml:"initial-color"`
	Layers       []MapLayer     `yaml:"layers"`
	CoordMap     CoordMapConfig `yaml:"coord-map"`
}

// MapLayer is one selectable layer of the map (e.g. a floor), as a tiled
// image with the affine transform needed to place in-game coordinates on
// its pixel grid.
type MapLayer struct {
	Name          string         `yaml:"name"`
	TemplateURL   string         `yaml:"template-url"`
	Size          [2]int         `yaml:"size"`
	ZoomBounds    [2]int         `yaml:"zoom-bounds"`
	MaxNativeZoom int            `yaml:"max-native-zoom"`
	Transform     MapTransform   `yaml:"transform"`
	StartZ        float64        `yaml:"start-z"`
	Attribution   MapAttribution `yaml:"attribution"`
}

// MapTransform is the affine transform from in-game (x, z) to this
// layer's pixel space.
type MapTransform struct {
	Scale     [2]float64 `yaml:"scale"`
	Translate [2]float64 `yaml:"translate"`
}

// MapAttribution credits the source of a map layer's imagery.
type MapAttribution struct {
	Link      string `yaml:"link"`
	Copyright string `yaml:"copyright,omitempty"`
}

// CoordMapConfig declares, separately, the axis layout a 2-element and a
// 3-element movement coordinate are interpreted against - e.g. 2d: [x, z]
// (floor-selector y dropped), 3d: [x, y, z].
type CoordMapConfig struct {
	TwoD   []string `yaml:"2d"`
	ThreeD []string `yaml:"3d"`
}
