// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package pyramid implements the Pyramid Indexer: grouping decoded
// directory entries into their pyramid Level (keyed by pyramid kind and
// X/Y sub-sampling), detecting duplicate tile identifiers within a level,
// and maintaining each level's per-axis start/extent aggregates
// incrementally as tiles arrive, per spec section 4.E.
package pyramid

import (
	"fmt"

	"github.com/saferwall/zisraw/internal/decode"
	"github.com/saferwall/zisraw/model"
)

// Insert places one decoded DirectoryEntry into its Container, creating the
// entry's Level on first sight of its (pyramid, ssX, ssY) triple. src is
// the Source the entry's own FilePart field resolves to, and segmentOffset
// is the byte offset of its SubBlock segment within src; the caller
// resolves the Source, because directory entries are decoded independently
// of the Source set they are indexed against.
func Insert(c *model.Container, e decode.DirectoryEntry, src *model.Source, segmentOffset int64) (*model.Tile, error) {
	xDim, ok := e.Dims[model.AxisX]
	if !ok {
		return nil, model.WrapStage("index tile", model.ErrCorruptEntry)
	}
	yDim, ok := e.Dims[model.AxisY]
	if !ok {
		return nil, model.WrapStage("index tile", model.ErrCorruptEntry)
	}

	ssX := xDim.SubSampling()
	ssY := yDim.SubSampling()

	level := c.LevelByTriple(e.Pyramid, ssX, ssY)
	if level == nil {
		level = c.AddLevel(e.Pyramid, ssX, ssY)
		level.PixelType = e.PixelType
		level.Compression = e.Compression
	}

	id := model.NewTileID(xDim.Start, yDim.Start)
	if _, dup := level.Tiles[id]; dup {
		return nil, model.WrapStagef(model.ErrDuplicateTile,
			"tile at (x=%d, y=%d) already present in level (pyramid=%s, ssx=%d, ssy=%d)",
			xDim.Start, yDim.Start, e.Pyramid, ssX, ssY)
	}

	tile := &model.Tile{
		Level:         level,
		Source:        src,
		FilePart:      e.FilePart,
		SegmentOffset: segmentOffset,
		ID:            id,
		PixelType:     e.PixelType,
		Compression:   e.Compression,
		Pyramid:       e.Pyramid,
		Dims:          e.Dims,
	}

	level.Tiles[id] = tile
	updateAggregates(level, e.Dims)
	c.ObserveTile(tile)

	return tile, nil
}

// updateAggregates folds one tile's dimensions into its level's per-axis
// StartMin and TotalSize. StartMin only ever decreases, but an axis whose
// minimum start drops invalidates every previously recorded TotalSize for
// that axis (they were computed against the old, larger minimum), so on
// such an axis TotalSize is recomputed from every tile currently in the
// level; on every other axis the new tile's end is folded in incrementally.
func updateAggregates(level *model.Level, dims map[model.DimensionAxis]model.Dimension) {
	touched := make(map[model.DimensionAxis]bool, len(dims))
	for axis, d := range dims {
		start, seen := level.StartMin[axis]
		if !seen || d.Start < start {
			level.StartMin[axis] = d.Start
			touched[axis] = true
		}
	}

	for axis, d := range dims {
		if !touched[axis] {
			if total := d.End() - level.StartMin[axis]; total > level.TotalSize[axis] {
				level.TotalSize[axis] = total
			}
			continue
		}
		// The caller has already added the new tile to level.Tiles, so
		// this scan sees it too.
		var maxEnd int32
		first := true
		for _, t := range level.Tiles {
			d, ok := t.Dims[axis]
			if !ok {
				continue
			}
			if first || d.End() > maxEnd {
				maxEnd = d.End()
				first = false
			}
		}
		level.TotalSize[axis] = maxEnd - level.StartMin[axis]
	}
}

// Axes returns the level's known axes in the stable order model.KnownAxes
// defines, for diagnostics and deterministic iteration.
func Axes(level *model.Level) []model.DimensionAxis {
	axes := make([]model.DimensionAxis, 0, len(level.StartMin))
	for _, axis := range model.KnownAxes {
		if _, ok := level.StartMin[axis]; ok {
			axes = append(axes, axis)
		}
	}
	return axes
}

// Describe renders a level's identifying triple as a short diagnostic
// string, e.g. "pyramid=multi ssx=2 ssy=2".
func Describe(level *model.Level) string {
	return fmt.Sprintf("pyramid=%s ssx=%d ssy=%d", level.Pyramid, level.SsX, level.SsY)
}
