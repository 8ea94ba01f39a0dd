// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

// Level is a derived grouping of tiles sharing the same (pyramid kind, ssX,
// ssY) triple. It is never stored on disk; the pyramid indexer builds it
// incrementally as directory entries are streamed.
type Level struct {
	// Container is a non-owning back-reference to the owning Container.
	Container *Container

	Pyramid PyramidKind
	SsX     int32
	SsY     int32

	// PixelType and Compression are inherited from the first tile
	// inserted into this level.
	PixelType   PixelType
	Compression Compression

	// StartMin maps an axis to the minimum Dimension.Start observed
	// across every tile in this level.
	StartMin map[DimensionAxis]int32

	// TotalSize maps an axis to max(tile.Start+tile.Size) - StartMin[axis],
	// observed across every tile in this level.
	TotalSize map[DimensionAxis]int32

	// Tiles maps a tile's composite ID to the Tile itself. The Level owns
	// every Tile in this map.
	Tiles map[TileID]*Tile
}

// newLevel allocates an empty Level for the given identifying triple.
func newLevel(c *Container, pyramid PyramidKind, ssX, ssY int32) *Level {
	return &Level{
		Container: c,
		Pyramid:   pyramid,
		SsX:       ssX,
		SsY:       ssY,
		StartMin:  make(map[DimensionAxis]int32),
		TotalSize: make(map[DimensionAxis]int32),
		Tiles:     make(map[TileID]*Tile),
	}
}

// TileList returns the Level's tiles as a slice, in map iteration order.
// Callers needing a stable order should sort the result themselves.
func (l *Level) TileList() []*Tile {
	tiles := make([]*Tile, 0, len(l.Tiles))
	for _, t := range l.Tiles {
		tiles = append(tiles, t)
	}
	return tiles
}
