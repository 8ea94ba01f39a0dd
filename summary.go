// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package zisraw

// Summary is a read-only capability snapshot derived from an already
// indexed Container, analogous to pe.FileInfo's role as a quick "what kind
// of file is this" report.
type Summary struct {
	SourceCount int
	LevelCount  int
	TileCount   int

	PixelTypes    []PixelType
	Compressions  []Compression

	MultiScene   bool
	MultiTime    bool
	MultiZSlice  bool
	MultiChannel bool

	AnomalyCount int
}

// Summary builds a Summary from the Container's already-indexed state; it
// performs no I/O.
func (c *Container) Summary() Summary {
	s := Summary{
		SourceCount:  len(c.Sources),
		LevelCount:   len(c.Levels),
		MultiScene:   c.MultiScene,
		MultiTime:    c.MultiTime,
		MultiZSlice:  c.MultiZSlice,
		MultiChannel: c.MultiChannel,
		AnomalyCount: len(c.Anomalies),
	}

	seenPixel := make(map[PixelType]bool)
	seenComp := make(map[Compression]bool)
	for _, l := range c.Levels {
		s.TileCount += len(l.Tiles)
		if !seenPixel[l.PixelType] {
			seenPixel[l.PixelType] = true
			s.PixelTypes = append(s.PixelTypes, l.PixelType)
		}
		if !seenComp[l.Compression] {
			seenComp[l.Compression] = true
			s.Compressions = append(s.Compressions, l.Compression)
		}
	}

	return s
}
