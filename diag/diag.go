// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package diag renders human-readable dump tables from an already-opened
// zisraw.Container, for cmd/zisrawdump. Nothing here is load-bearing for
// parsing; it is advisory presentation only, mirroring the split between
// saferwall/pe's parse logic and its cmd/dump.go presentation layer.
package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/saferwall/zisraw"
)

// Options controls DumpTiles: MaxEntries bounds how many tile rows it
// prints; 0 means unbounded. The other Dump functions take no Options and
// print every row.
type Options struct {
	MaxEntries int
}

// DumpSummary writes a one-line-per-field capability snapshot.
func DumpSummary(w io.Writer, c *zisraw.Container) {
	s := c.Summary()
	fmt.Fprintf(w, "sources:       %d\n", s.SourceCount)
	fmt.Fprintf(w, "levels:        %d\n", s.LevelCount)
	fmt.Fprintf(w, "tiles:         %d\n", s.TileCount)
	fmt.Fprintf(w, "pixel types:   %v\n", s.PixelTypes)
	fmt.Fprintf(w, "compressions:  %v\n", s.Compressions)
	fmt.Fprintf(w, "multi-scene:   %v\n", s.MultiScene)
	fmt.Fprintf(w, "multi-time:    %v\n", s.MultiTime)
	fmt.Fprintf(w, "multi-z:       %v\n", s.MultiZSlice)
	fmt.Fprintf(w, "multi-channel: %v\n", s.MultiChannel)
	fmt.Fprintf(w, "anomalies:     %d\n", s.AnomalyCount)
}

// DumpLevels writes one table row per pyramid level: its identifying
// triple, pixel type, compression, and tile count.
func DumpLevels(w io.Writer, c *zisraw.Container) {
	fmt.Fprintln(w, "pyramid\tssx\tssy\tpixel_type\tcompression\ttiles")
	for i := 0; i < c.LevelCount(); i++ {
		tiles, err := c.LevelTiles(i)
		if err != nil {
			continue
		}
		if len(tiles) == 0 {
			continue
		}
		l := tiles[0].Level
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%d\n",
			l.Pyramid, l.SsX, l.SsY, l.PixelType, l.Compression, len(tiles))
	}
}

// DumpTiles writes one table row per tile in level index, sorted by
// (X-start, Y-start) for deterministic output. opts.MaxEntries bounds the
// number of rows printed; any remaining rows are summarized by count.
func DumpTiles(w io.Writer, c *zisraw.Container, index int, opts Options) error {
	tiles, err := c.LevelTiles(index)
	if err != nil {
		return err
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].ID.XStart() != tiles[j].ID.XStart() {
			return tiles[i].ID.XStart() < tiles[j].ID.XStart()
		}
		return tiles[i].ID.YStart() < tiles[j].ID.YStart()
	})

	fmt.Fprintln(w, "x_start\ty_start\tfile_part\tsegment_offset")
	limit := len(tiles)
	if opts.MaxEntries > 0 && opts.MaxEntries < limit {
		limit = opts.MaxEntries
	}
	for i := 0; i < limit; i++ {
		t := tiles[i]
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", t.ID.XStart(), t.ID.YStart(), t.FilePart, t.SegmentOffset)
	}
	if limit < len(tiles) {
		fmt.Fprintf(w, "... %d more tiles omitted\n", len(tiles)-limit)
	}
	return nil
}

// DumpAttachments writes one table row per attachment record.
func DumpAttachments(w io.Writer, c *zisraw.Container) error {
	records, err := c.Attachments()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "name\tcontent_type\tdata_size")
	for _, a := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\n", a.Name, contentTypeString(a.ContentType), a.DataSize)
	}
	return nil
}

// DumpAnomalies writes one line per recorded anomaly.
func DumpAnomalies(w io.Writer, c *zisraw.Container) {
	for _, a := range c.Anomalies {
		fmt.Fprintln(w, a)
	}
}

func contentTypeString(tag [8]byte) string {
	n := 0
	for n < len(tag) && tag[n] != 0 {
		n++
	}
	return string(tag[:n])
}
