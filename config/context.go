/*
Copyright 2026 The Strata Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config carries the build-wide settings that would otherwise be
// global mutable state, threaded explicitly through every exported API
// rather than held in a package-level singleton.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/pixelencode"
)

// BuildContext is the data/tags workspace plus every per-usage default a
// bitmap build consults unless overridden on the command line.
type BuildContext struct {
	DataRoot string `yaml:"data_root"`
	TagsRoot string `yaml:"tags_root"`
	Engine   string `yaml:"engine"`
	Verbose  bool   `yaml:"verbose"`

	Defaults UsageDefaults `yaml:"defaults"`
}

// UsageDefaults holds the per-usage tunables a build falls back to when
// a CLI flag isn't given.
type UsageDefaults struct {
	MipmapScale       string  `yaml:"mipmap_scale"`
	MipmapCount       int     `yaml:"mipmap_count"`
	MipmapFade        float64 `yaml:"mipmap_fade"`
	Sharpen           float64 `yaml:"sharpen"`
	Blur              float64 `yaml:"blur"`
	AlphaBias         float64 `yaml:"alpha_bias"`
	BumpHeight        float64 `yaml:"bump_height"`
	BumpPalettize     bool    `yaml:"bump_palettize"`
	SpriteBudget      int     `yaml:"sprite_budget"`
	SpriteBudgetCount int     `yaml:"sprite_budget_count"`
	SpriteSpacing     int     `yaml:"sprite_spacing"`
	ForceSquareSheets bool    `yaml:"force_square_sheets"`
	Dithering         string  `yaml:"dithering"`
}

// Default returns the toolchain's baked-in defaults, used when no
// strata.yml is present.
func Default() *BuildContext {
	return &BuildContext{
		DataRoot: "data",
		TagsRoot: "tags",
		Engine:   "pc",
		Defaults: UsageDefaults{
			MipmapScale:       "linear",
			MipmapCount:       -1,
			SpriteBudget:      128,
			SpriteBudgetCount: 0,
			SpriteSpacing:     1,
			Dithering:         "none",
		},
	}
}

// Load reads a BuildContext from a YAML file.
func Load(path string) (*BuildContext, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	ctx := Default()
	if err := yaml.Unmarshal(raw, ctx); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	return ctx, nil
}

// Save writes ctx to path as YAML.
func (c *BuildContext) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "config: marshaling build context")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, "config: writing %s", path)
	}
	return nil
}

// MipmapScaleValue resolves the configured scale name to a bitmapproc.Scale.
func (d UsageDefaults) MipmapScaleValue() bitmapproc.Scale {
	switch d.MipmapScale {
	case "nearest":
		return bitmapproc.ScaleNearest
	case "nearest_alpha":
		return bitmapproc.ScaleNearestAlpha
	default:
		return bitmapproc.ScaleLinear
	}
}

// DitherValue resolves the configured dithering name to a
// pixelencode.Dither.
func (d UsageDefaults) DitherValue() pixelencode.Dither {
	switch d.Dithering {
	case "a":
		return pixelencode.DitherAlpha
	case "rgb":
		return pixelencode.DitherRGB
	case "argb":
		return pixelencode.DitherARGB
	default:
		return pixelencode.DitherNone
	}
}
