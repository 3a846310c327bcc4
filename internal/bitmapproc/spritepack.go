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

package bitmapproc

import (
	"sort"

	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/image"
)

// SpriteSource is one sprite's cropped source pixels, ready to be packed
// into a sheet.
type SpriteSource struct {
	Width, Height int
	Pixels        []image.Pixel
}

// Placement records where a SpriteSource landed after packing.
type Placement struct {
	Sheet       int
	X, Y        int
	SheetWidth  int
	SheetHeight int
}

// PackSprites packs sprites into square sheets no larger than
// budget x budget pixels per side, with budgetCount capping the total
// pixel count across all sheets, using spriteSpacing-pixel gutters. The
// packer is first-fit-decreasing by area. forceSquare
// disables non-square trim of the final sheet.
func PackSprites(sprites []SpriteSource, budget, budgetCount, spriteSpacing int, forceSquare bool) ([]*image.Buffer, []Placement, error) {
	if len(sprites) == 0 {
		return nil, nil, nil
	}

	order := make([]int, len(sprites))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		areaA := sprites[order[a]].Width * sprites[order[a]].Height
		areaB := sprites[order[b]].Width * sprites[order[b]].Height
		return areaA > areaB
	})

	placements := make([]Placement, len(sprites))
	var sheets []*shelfSheet

	for _, idx := range order {
		s := sprites[idx]
		w, h := s.Width+spriteSpacing, s.Height+spriteSpacing
		if w > budget || h > budget {
			return nil, nil, &builderrors.EncodeError{Asset: "sprite sheet", Reason: "sprite exceeds sheet budget"}
		}

		placed := false
		for si, sheet := range sheets {
			if x, y, ok := sheet.tryPlace(w, h, budget); ok {
				sheet.blit(x, y, s, spriteSpacing)
				placements[idx] = Placement{Sheet: si, X: x, Y: y}
				placed = true
				break
			}
		}
		if !placed {
			if budgetCount > 0 && totalPixels(sheets)+budget*budget > budgetCount {
				return nil, nil, &builderrors.EncodeError{Asset: "sprite sheet", Reason: "sprite sheet budget count exceeded"}
			}
			sheet := newShelfSheet(budget)
			x, y, ok := sheet.tryPlace(w, h, budget)
			if !ok {
				return nil, nil, &builderrors.EncodeError{Asset: "sprite sheet", Reason: "sprite does not fit in an empty sheet"}
			}
			sheet.blit(x, y, s, spriteSpacing)
			sheets = append(sheets, sheet)
			placements[idx] = Placement{Sheet: len(sheets) - 1, X: x, Y: y}
		}
	}

	out := make([]*image.Buffer, len(sheets))
	for i, sheet := range sheets {
		w, h := sheet.trimmedSize(forceSquare)
		out[i] = sheet.crop(w, h)
		for j := range placements {
			if placements[j].Sheet == i {
				placements[j].SheetWidth = w
				placements[j].SheetHeight = h
			}
		}
	}
	return out, placements, nil
}

func totalPixels(sheets []*shelfSheet) int {
	n := 0
	for _, s := range sheets {
		n += s.budget * s.budget
	}
	return n
}

// shelfSheet packs rectangles via a simple shelf (row) allocator: rows
// stack top to bottom, each row as tall as its tallest item so far.
type shelfSheet struct {
	budget    int
	buf       *image.Buffer
	shelfY    int
	shelfH    int
	cursorX   int
	maxHeight int
}

func newShelfSheet(budget int) *shelfSheet {
	return &shelfSheet{budget: budget, buf: image.NewBuffer(budget, budget)}
}

// tryPlace reports where a w x h rect would land, without committing it.
// It fits on the current shelf if there's room, otherwise opens a new
// shelf below the current one.
func (s *shelfSheet) tryPlace(w, h, budget int) (x, y int, ok bool) {
	if s.cursorX+w <= budget && s.shelfY+maxInt(s.shelfH, h) <= budget {
		return s.cursorX, s.shelfY, true
	}
	newShelfY := s.shelfY + s.shelfH
	if w <= budget && newShelfY+h <= budget {
		return 0, newShelfY, true
	}
	return 0, 0, false
}

// blit commits a placement returned by tryPlace, advancing the shelf
// cursor and opening a new shelf when y moved past the current one.
func (s *shelfSheet) blit(x, y int, src SpriteSource, spacing int) {
	for sy := 0; sy < src.Height; sy++ {
		for sx := 0; sx < src.Width; sx++ {
			s.buf.Set(x+sx, y+sy, src.Pixels[sy*src.Width+sx])
		}
	}
	if y > s.shelfY {
		s.shelfY = y
		s.shelfH = 0
		s.cursorX = 0
	}
	s.cursorX = x + src.Width + spacing
	s.shelfH = maxInt(s.shelfH, src.Height+spacing)
	if y+src.Height > s.maxHeight {
		s.maxHeight = y + src.Height
	}
}

func (s *shelfSheet) trimmedSize(forceSquare bool) (int, int) {
	if forceSquare {
		return s.budget, s.budget
	}
	h := s.maxHeight
	if h < 1 {
		h = 1
	}
	return s.budget, h
}

func (s *shelfSheet) crop(w, h int) *image.Buffer {
	out := image.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, s.buf.At(x, y))
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
