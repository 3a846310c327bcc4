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

// Command bitmaptag builds a bitmap tag from a source color-plate image,
// or regenerates one from its own archived plate.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/config"
	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/bitmaptag"
	"github.com/ashforge/strata/internal/image"
	"github.com/ashforge/strata/internal/tagfile"
	"github.com/ashforge/strata/internal/tagschema"
	"github.com/ashforge/strata/internal/workspace"
	"github.com/ashforge/strata/log"
)

var (
	dataRoot, tagsRoot, configPath string

	formatFlag, typeFlag, usageFlag      string
	mipmapScaleFlag                      string
	mipmapCount                          int
	detailFade, bumpHeight, alphaBias    float64
	budget, budgetCount                  int
	squareSheets                         bool
	bumpPalettizeFlag, regPointHackFlag  string
	ditheringFlag                        string

	fsPath, ignoreTag, regenerate bool
	verbose                       bool
)

func init() {
	flag.StringVar(&dataRoot, "data", "", "data tree root (overrides config)")
	flag.StringVar(&tagsRoot, "tags", "", "tags tree root (overrides config)")
	flag.StringVar(&configPath, "config", "", "path to a strata.yml build context")

	flag.StringVar(&formatFlag, "format", "auto", "32-bit|16-bit|monochrome|dxt5|dxt3|dxt1|auto")
	flag.StringVar(&typeFlag, "type", "2d_textures", "2d_textures|3d_textures|cube_maps|interface_bitmaps|sprites")
	flag.StringVar(&usageFlag, "usage", "default", "default|height_map|detail_map")
	flag.IntVar(&mipmapCount, "mipmap-count", -1, "mip levels beyond the base; -1 means down to 1x1")
	flag.StringVar(&mipmapScaleFlag, "mipmap-scale", "linear", "linear|nearest_alpha|nearest")
	flag.Float64Var(&detailFade, "detail-fade", 0, "per-level fade amount for detail maps")
	flag.IntVar(&budget, "budget", 128, "sprite sheet pixel budget per side: 32|64|128|256|512|1024")
	flag.IntVar(&budgetCount, "budget-count", 0, "cap on total sheet pixel budget across all sheets; 0 means unlimited")
	flag.BoolVar(&squareSheets, "square-sheets", false, "never trim a sprite sheet to a non-square rectangle")
	flag.StringVar(&bumpPalettizeFlag, "bump-palettize", "off", "on|off")
	flag.Float64Var(&bumpHeight, "bump-height", 1, "height-map to normal-map gradient scale")
	flag.Float64Var(&alphaBias, "alpha-bias", 0, "alpha channel bias in [-1,1]")
	flag.StringVar(&ditheringFlag, "dithering", "none", "a|rgb|argb|none")
	flag.StringVar(&regPointHackFlag, "reg-point-hack", "off", "on|off: legacy bounding-box-center sprite registration points")
	flag.BoolVar(&fsPath, "fs-path", false, "treat the positional argument as a filesystem path, not a logical tag path")
	flag.BoolVar(&ignoreTag, "ignore-tag", false, "overwrite an existing tag of a different engine version without error")
	flag.BoolVar(&regenerate, "regenerate", false, "rebuild the pixel blob from the tag's own archived color plate")
	flag.BoolVar(&verbose, "verbose", false, "")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bitmaptag [flags] <tag-path>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	tagArg := flag.Arg(0)

	if verbose {
		log.SetDefaultLoggers()
	}

	ctx := loadContext()
	if dataRoot != "" {
		ctx.DataRoot = dataRoot
	}
	if tagsRoot != "" {
		ctx.TagsRoot = tagsRoot
	}

	if err := run(ctx, tagArg); err != nil {
		fmt.Fprintf(os.Stderr, "bitmaptag: %v\n", err)
		os.Exit(1)
	}
}

func loadContext() *config.BuildContext {
	if configPath == "" {
		return config.Default()
	}
	ctx, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bitmaptag: %v, falling back to defaults\n", err)
		return config.Default()
	}
	return ctx
}

func run(ctx *config.BuildContext, tagArg string) error {
	logicalPath := tagArg
	if fsPath {
		rel, ok := workspace.HostToLogical(tagArg, []string{ctx.DataRoot, ctx.TagsRoot})
		if !ok {
			return &builderrors.ConfigError{Asset: tagArg, Reason: "--fs-path argument is not under --data or --tags"}
		}
		logicalPath = rel
	}

	outPath := filepath.Join(ctx.TagsRoot, workspace.ToHostPath(logicalPath)+"."+bitmaptag.TagClass)

	if regenerate {
		return runRegenerate(ctx, logicalPath, outPath)
	}
	return runBuild(ctx, logicalPath, outPath)
}

func runBuild(ctx *config.BuildContext, logicalPath, outPath string) error {
	bitmapType, err := parseBitmapType(typeFlag)
	if err != nil {
		return err
	}
	usage, err := parseUsage(usageFlag)
	if err != nil {
		return err
	}
	format, allowLossy, err := parseFormat(formatFlag)
	if err != nil {
		return err
	}
	scale, err := parseScale(mipmapScaleFlag)
	if err != nil {
		return err
	}
	dither, err := parseDither(ditheringFlag)
	if err != nil {
		return err
	}
	bumpPalettize, err := parseOnOff("--bump-palettize", bumpPalettizeFlag)
	if err != nil {
		return err
	}
	regPointHack, err := parseOnOff("--reg-point-hack", regPointHackFlag)
	if err != nil {
		return err
	}
	if alphaBias < -1 || alphaBias > 1 {
		return &builderrors.ConfigError{Asset: "--alpha-bias", Reason: "must lie in [-1,1]"}
	}

	sourcePath, err := locateSourceImage(ctx.DataRoot, logicalPath)
	if err != nil {
		return err
	}
	plateImage, err := image.Load(sourcePath)
	if err != nil {
		return err
	}

	if !ignoreTag {
		if _, err := os.Stat(outPath); err == nil {
			if existing, readErr := os.ReadFile(outPath); readErr == nil {
				if _, headerErr := tagfile.ReadHeader(existing, outPath); headerErr != nil {
					return errors.Wrap(headerErr, "refusing to overwrite an unrecognized existing tag (pass --ignore-tag to force)")
				}
			}
		}
	}

	params := bitmaptag.BuildParams{
		Type:         bitmapType,
		Usage:        usage,
		Format:       format,
		Dither:       dither,
		AllowLossy:   allowLossy,
		RegPointHack: regPointHack,
		Proc: bitmapproc.Params{
			Scale:             scale,
			MipmapCount:       mipmapCount,
			MipmapFade:        detailFade,
			AlphaBias:         alphaBias,
			BumpHeight:        bumpHeight,
			BumpPalettize:     bumpPalettize,
			SpriteBudget:      budget,
			SpriteBudgetCount: budgetCount,
			SpriteSpacing:     ctx.Defaults.SpriteSpacing,
			ForceSquareSheets: squareSheets,
		},
	}

	inst, err := bitmaptag.Build(plateImage, params)
	if err != nil {
		return err
	}
	return writeTag(outPath, inst)
}

func runRegenerate(ctx *config.BuildContext, logicalPath, outPath string) error {
	raw, err := os.ReadFile(outPath)
	if err != nil {
		return &builderrors.IoError{Asset: outPath, Err: err}
	}
	existing, err := tagfile.Read(raw, bitmaptag.Schema, outPath, bitmaptag.TagClass, 0)
	if err != nil {
		return err
	}

	format, allowLossy, err := parseFormat(formatFlag)
	if err != nil {
		return err
	}
	dither, err := parseDither(ditheringFlag)
	if err != nil {
		return err
	}
	scale, err := parseScale(mipmapScaleFlag)
	if err != nil {
		return err
	}
	bumpPalettize, err := parseOnOff("--bump-palettize", bumpPalettizeFlag)
	if err != nil {
		return err
	}

	params := bitmaptag.BuildParams{
		Format:     format,
		Dither:     dither,
		AllowLossy: allowLossy,
		Proc: bitmapproc.Params{
			Scale:             scale,
			MipmapCount:       mipmapCount,
			MipmapFade:        detailFade,
			AlphaBias:         alphaBias,
			BumpHeight:        bumpHeight,
			BumpPalettize:     bumpPalettize,
			SpriteBudget:      budget,
			SpriteBudgetCount: budgetCount,
			SpriteSpacing:     ctx.Defaults.SpriteSpacing,
			ForceSquareSheets: squareSheets,
		},
	}

	inst, err := bitmaptag.Regenerate(existing.Root, params)
	if err != nil {
		return err
	}
	return writeTag(outPath, inst)
}

func writeTag(outPath string, inst *tagschema.Instance) error {
	header := tagfile.Header{TagClass: bitmaptag.TagClass, Version: 1, HeaderVersion: 1}
	out := tagfile.Write(header, inst)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &builderrors.IoError{Asset: outPath, Err: err}
	}
	tmp := outPath + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return &builderrors.IoError{Asset: tmp, Err: err}
	}
	if err := os.Rename(tmp, outPath); err != nil {
		return &builderrors.IoError{Asset: outPath, Err: err}
	}
	return nil
}
