// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pyramid

import (
	"testing"

	"github.com/saferwall/zisraw/internal/decode"
	"github.com/saferwall/zisraw/model"
)

func dim(axis byte, start, size, stored int32) model.Dimension {
	d := model.Dimension{Start: start, Size: size, StoredSize: stored}
	d.Identifier[0] = axis
	return d
}

func xyEntry(xStart, xSize, yStart, ySize int32) decode.DirectoryEntry {
	return decode.DirectoryEntry{
		Dims: map[model.DimensionAxis]model.Dimension{
			model.AxisX: dim('X', xStart, xSize, xSize),
			model.AxisY: dim('Y', yStart, ySize, ySize),
		},
	}
}

func TestInsertCreatesLevelOnFirstTile(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}

	tile, err := Insert(c, xyEntry(0, 256, 0, 256), src, 1000)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if tile.Level == nil {
		t.Fatal("tile.Level is nil")
	}
	if len(c.Levels) != 1 {
		t.Fatalf("len(c.Levels) = %d, want 1", len(c.Levels))
	}
	if c.Levels[0].StartMin[model.AxisX] != 0 || c.Levels[0].TotalSize[model.AxisX] != 256 {
		t.Fatalf("unexpected aggregates: StartMin=%v TotalSize=%v", c.Levels[0].StartMin, c.Levels[0].TotalSize)
	}
}

func TestInsertGroupsBySubSamplingTriple(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}

	full := xyEntry(0, 256, 0, 256)
	full.Pyramid = model.PyramidNone

	downsampled := decode.DirectoryEntry{
		Pyramid: model.PyramidSingle,
		Dims: map[model.DimensionAxis]model.Dimension{
			model.AxisX: dim('X', 0, 256, 128),
			model.AxisY: dim('Y', 0, 256, 128),
		},
	}

	if _, err := Insert(c, full, src, 0); err != nil {
		t.Fatalf("Insert(full) failed: %v", err)
	}
	if _, err := Insert(c, downsampled, src, 100); err != nil {
		t.Fatalf("Insert(downsampled) failed: %v", err)
	}

	if len(c.Levels) != 2 {
		t.Fatalf("len(c.Levels) = %d, want 2 (distinct sub-sampling triples)", len(c.Levels))
	}
}

func TestInsertRejectsDuplicateTile(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}

	entry := xyEntry(0, 256, 0, 256)
	if _, err := Insert(c, entry, src, 0); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if _, err := Insert(c, entry, src, 500); err == nil {
		t.Fatal("expected duplicate tile error on second Insert with same (X,Y)")
	}
}

func TestInsertRejectsMissingAxes(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}

	onlyX := decode.DirectoryEntry{
		Dims: map[model.DimensionAxis]model.Dimension{
			model.AxisX: dim('X', 0, 256, 256),
		},
	}
	if _, err := Insert(c, onlyX, src, 0); err == nil {
		t.Fatal("expected error for directory entry missing Y axis")
	}
}

func TestUpdateAggregatesShrinkingMinimumRecomputesTotalSize(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}

	// First tile starts at X=100, extent [100,356).
	if _, err := Insert(c, xyEntry(100, 256, 0, 256), src, 0); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	level := c.Levels[0]
	if level.TotalSize[model.AxisX] != 256 {
		t.Fatalf("TotalSize[X] = %d, want 256", level.TotalSize[model.AxisX])
	}

	// Second tile starts earlier at X=0 but has a smaller extent than the
	// true maximum end, exercising the StartMin-drop recompute path:
	// naive incremental folding would under-count TotalSize here.
	if _, err := Insert(c, xyEntry(0, 50, 300, 256), src, 32); err != nil {
		t.Fatalf("second Insert failed: %v", err)
	}

	if level.StartMin[model.AxisX] != 0 {
		t.Fatalf("StartMin[X] = %d, want 0", level.StartMin[model.AxisX])
	}
	// max end across tiles is still 356 (from the first tile), against
	// the new minimum of 0: total extent must be 356, not 50.
	if want := int32(356); level.TotalSize[model.AxisX] != want {
		t.Fatalf("TotalSize[X] = %d, want %d", level.TotalSize[model.AxisX], want)
	}
}

func TestInsertPinsFullResolutionLevelToIndexZero(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}

	downsampled := decode.DirectoryEntry{
		Pyramid: model.PyramidSingle,
		Dims: map[model.DimensionAxis]model.Dimension{
			model.AxisX: dim('X', 0, 256, 128),
			model.AxisY: dim('Y', 0, 256, 128),
		},
	}
	full := xyEntry(0, 256, 0, 256)
	full.Pyramid = model.PyramidNone

	// Sub-sampled entry discovered before the full-resolution one: a
	// producer is free to list directory entries in any order.
	if _, err := Insert(c, downsampled, src, 0); err != nil {
		t.Fatalf("Insert(downsampled) failed: %v", err)
	}
	if _, err := Insert(c, full, src, 100); err != nil {
		t.Fatalf("Insert(full) failed: %v", err)
	}

	if len(c.Levels) != 2 {
		t.Fatalf("len(c.Levels) = %d, want 2", len(c.Levels))
	}
	if c.Levels[0].Pyramid != model.PyramidNone || c.Levels[0].SsX != 1 || c.Levels[0].SsY != 1 {
		t.Fatalf("Levels[0] = (pyramid=%v, ssx=%d, ssy=%d), want the full-resolution level",
			c.Levels[0].Pyramid, c.Levels[0].SsX, c.Levels[0].SsY)
	}
}

func TestAxesReturnsKnownOrder(t *testing.T) {
	c := model.New(nil)
	src := &model.Source{}
	if _, err := Insert(c, xyEntry(0, 256, 0, 256), src, 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	axes := Axes(c.Levels[0])
	if len(axes) != 2 {
		t.Fatalf("len(axes) = %d, want 2", len(axes))
	}
	if axes[0] != model.AxisX || axes[1] != model.AxisY {
		t.Fatalf("axes = %v, want [X Y] in model.KnownAxes order", axes)
	}
}
