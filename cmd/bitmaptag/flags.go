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

package main

import (
	"os"
	"path/filepath"

	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/colorplate"
	"github.com/ashforge/strata/internal/pixelencode"
	"github.com/ashforge/strata/internal/workspace"
)

func parseBitmapType(s string) (colorplate.BitmapType, error) {
	switch s {
	case "2d_textures":
		return colorplate.Bitmap2D, nil
	case "3d_textures":
		return colorplate.Bitmap3D, nil
	case "cube_maps":
		return colorplate.BitmapCubemap, nil
	case "interface_bitmaps":
		return colorplate.BitmapInterface, nil
	case "sprites":
		return colorplate.BitmapSprites, nil
	default:
		return 0, &builderrors.ConfigError{Asset: "--type", Reason: "unrecognized value " + s}
	}
}

func parseUsage(s string) (colorplate.Usage, error) {
	switch s {
	case "default":
		return colorplate.UsageDefault, nil
	case "height_map":
		return colorplate.UsageHeightMap, nil
	case "detail_map":
		return colorplate.UsageDetailMap, nil
	default:
		return 0, &builderrors.ConfigError{Asset: "--usage", Reason: "unrecognized value " + s}
	}
}

// parseFormat resolves the CLI format name to a pixel format and whether
// lossy (DXT) encodings may be auto-selected. "16-bit" resolves exactly
// like "auto": AutoPick gives 565 or 1555 for opaque or binary-alpha
// images, but monochrome for gray images and 32-bit for graduated alpha;
// 16-bit-4444 is never selected. "auto" picks the best lossless format for the
// bitmap's alpha shape; DXT is only reachable via an explicit
// --format dxt1/dxt3/dxt5.
func parseFormat(s string) (pixelencode.Format, bool, error) {
	switch s {
	case "32-bit":
		return pixelencode.Format32Bit, false, nil
	case "16-bit":
		return pixelencode.FormatAuto, false, nil
	case "monochrome":
		return pixelencode.FormatMonochrome, false, nil
	case "dxt1":
		return pixelencode.FormatDXT1, true, nil
	case "dxt3":
		return pixelencode.FormatDXT3, true, nil
	case "dxt5":
		return pixelencode.FormatDXT5, true, nil
	case "auto":
		return pixelencode.FormatAuto, false, nil
	default:
		return 0, false, &builderrors.ConfigError{Asset: "--format", Reason: "unrecognized value " + s}
	}
}

func parseScale(s string) (bitmapproc.Scale, error) {
	switch s {
	case "linear":
		return bitmapproc.ScaleLinear, nil
	case "nearest_alpha":
		return bitmapproc.ScaleNearestAlpha, nil
	case "nearest":
		return bitmapproc.ScaleNearest, nil
	default:
		return 0, &builderrors.ConfigError{Asset: "--mipmap-scale", Reason: "unrecognized value " + s}
	}
}

func parseDither(s string) (pixelencode.Dither, error) {
	switch s {
	case "a":
		return pixelencode.DitherAlpha, nil
	case "rgb":
		return pixelencode.DitherRGB, nil
	case "argb":
		return pixelencode.DitherARGB, nil
	case "none":
		return pixelencode.DitherNone, nil
	default:
		return 0, &builderrors.ConfigError{Asset: "--dithering", Reason: "unrecognized value " + s}
	}
}

func parseOnOff(flagName, s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, &builderrors.ConfigError{Asset: flagName, Reason: "must be \"on\" or \"off\", got " + s}
	}
}

// sourceExtensions is the order locateSourceImage tries; PNG first as the
// most common authoring format.
var sourceExtensions = []string{".png", ".tga", ".bmp", ".tif", ".tiff"}

func locateSourceImage(dataRoot, logicalPath string) (string, error) {
	base := filepath.Join(dataRoot, workspace.ToHostPath(logicalPath))
	for _, ext := range sourceExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &builderrors.IoError{Asset: base, Err: os.ErrNotExist}
}
