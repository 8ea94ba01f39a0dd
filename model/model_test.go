// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"testing"
)

func TestWrapStageChainsMessages(t *testing.T) {
	base := &ShortReadError{Requested: 4, Delivered: 3}
	err := WrapStage("read dimension 2", base)
	err = WrapStagef(err, "decode source %d", 0)

	want := "decode source 0: read dimension 2: short_read(3/4)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrShortRead) {
		t.Fatal("expected errors.Is(err, ErrShortRead) to hold through the chain")
	}
}

func TestWrapStageNilIsNil(t *testing.T) {
	if WrapStage("stage", nil) != nil {
		t.Fatal("WrapStage(_, nil) must return nil")
	}
	if WrapStagef(nil, "stage %d", 1) != nil {
		t.Fatal("WrapStagef(nil, _) must return nil")
	}
}

func TestDimensionSubSamplingAndEnd(t *testing.T) {
	d := Dimension{Start: 10, Size: 256, StoredSize: 128}
	if got := d.SubSampling(); got != 2 {
		t.Fatalf("SubSampling() = %d, want 2", got)
	}
	if got := d.End(); got != 266 {
		t.Fatalf("End() = %d, want 266", got)
	}
}

func TestDimensionAxis(t *testing.T) {
	d := Dimension{}
	d.Identifier[0] = 'C'
	if got := d.Axis(); got != AxisChannel {
		t.Fatalf("Axis() = %v, want AxisChannel", got)
	}
}

func TestTileIDRoundTrip(t *testing.T) {
	id := NewTileID(-5, 1000000)
	if got := id.XStart(); got != -5 {
		t.Fatalf("XStart() = %d, want -5", got)
	}
	if got := id.YStart(); got != 1000000 {
		t.Fatalf("YStart() = %d, want 1000000", got)
	}
}

func TestTileIDDistinctForDistinctCoordinates(t *testing.T) {
	a := NewTileID(0, 0)
	b := NewTileID(0, 1)
	if a == b {
		t.Fatal("expected distinct TileIDs for distinct Y-start values")
	}
}

func TestPixelTypeStringAndDecode(t *testing.T) {
	if got := PixelGray8.String(); got == "" {
		t.Fatal("PixelGray8.String() returned empty string")
	}
	if got := DecodePixelType(0); got != PixelGray8 {
		t.Fatalf("DecodePixelType(0) = %v, want PixelGray8", got)
	}
	if got := DecodePixelType(999); got != PixelUnknown {
		t.Fatalf("DecodePixelType(999) = %v, want PixelUnknown", got)
	}
}

func TestCompressionStringAndDecode(t *testing.T) {
	if got := DecodeCompression(1); got != CompressionJPEG {
		t.Fatalf("DecodeCompression(1) = %v, want CompressionJPEG", got)
	}
	if got := DecodeCompression(-42); got != CompressionUnknown {
		t.Fatalf("DecodeCompression(-42) = %v, want CompressionUnknown", got)
	}
}

func TestContainerLevelByTripleAndAddLevel(t *testing.T) {
	c := New(nil)
	if c.LevelByTriple(PyramidNone, 1, 1) != nil {
		t.Fatal("expected no level before any AddLevel call")
	}
	l := c.AddLevel(PyramidNone, 1, 1)
	if found := c.LevelByTriple(PyramidNone, 1, 1); found != l {
		t.Fatal("LevelByTriple did not return the just-added level")
	}
}

func TestContainerObserveTileSetsCapabilityFlags(t *testing.T) {
	c := New(nil)
	l := c.AddLevel(PyramidNone, 1, 1)
	tile := &Tile{
		Level:       l,
		Compression: CompressionJPEGXR,
		Dims: map[DimensionAxis]Dimension{
			AxisChannel: {Size: 3},
		},
	}
	c.ObserveTile(tile)
	if !c.MultiChannel {
		t.Fatal("expected MultiChannel to be set for a channel dimension with size > 1")
	}
	if !c.HasDataJPEGXR {
		t.Fatal("expected HasDataJPEGXR to be set")
	}
}
