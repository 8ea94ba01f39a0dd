// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

import "encoding/binary"

// TileID is the 8-byte identifier derived from a tile's X-start and
// Y-start, little-endian concatenated. Unique per tile within a Level,
// because within one Level those two values are unique per tile.
type TileID [8]byte

// NewTileID builds the composite identifier from a tile's X and Y start
// coordinates.
func NewTileID(xStart, yStart int32) TileID {
	var id TileID
	binary.LittleEndian.PutUint32(id[0:4], uint32(xStart))
	binary.LittleEndian.PutUint32(id[4:8], uint32(yStart))
	return id
}

// XStart extracts the X-start coordinate encoded in the identifier.
func (id TileID) XStart() int32 {
	return int32(binary.LittleEndian.Uint32(id[0:4]))
}

// YStart extracts the Y-start coordinate encoded in the identifier.
func (id TileID) YStart() int32 {
	return int32(binary.LittleEndian.Uint32(id[4:8]))
}

// Tile is one sub-block's worth of pixel data, addressable by its
// (X-start, Y-start) within its Level.
type Tile struct {
	// Level is a non-owning back-reference to the owning Level.
	Level *Level

	// Source is a non-owning back-reference to the Source this tile's
	// SubBlock segment lives in.
	Source *Source

	// FilePart is the file-part index the owning segment was read from.
	FilePart int32

	// SegmentOffset is the byte offset of the enclosing SubBlock segment
	// (the start of its 32-byte header), within Source.
	SegmentOffset int64

	// ID is the (X-start, Y-start) composite identifier.
	ID TileID

	PixelType   PixelType
	Compression Compression
	Pyramid     PyramidKind

	// Dims maps a dimension's axis byte to its Dimension.
	Dims map[DimensionAxis]Dimension

	// DirectorySize, MetadataSize, DataSize and AttachmentSize are the
	// byte lengths of the four sub-regions following the SubBlock
	// segment header, in that order.
	DirectorySize  int32
	MetadataSize   int32
	DataSize       int32
	AttachmentSize int32

	// metadataBlob, dataBlob and attachmentBlob are materialized only on
	// explicit LoadTile / metadata-load calls.
	metadataBlob   []byte
	dataBlob       []byte
	attachmentBlob []byte
}

// Dim returns the Dimension for the given axis and whether it was present.
func (t *Tile) Dim(axis DimensionAxis) (Dimension, bool) {
	d, ok := t.Dims[axis]
	return d, ok
}

// DataBlob returns the materialized compressed pixel payload, if loaded.
func (t *Tile) DataBlob() []byte { return t.dataBlob }

// SetDataBlob stores the materialized compressed pixel payload.
func (t *Tile) SetDataBlob(b []byte) { t.dataBlob = b }

// ReleaseDataBlob drops the cached payload, allowing it to be
// garbage-collected.
func (t *Tile) ReleaseDataBlob() { t.dataBlob = nil }

// AttachmentBlob returns the materialized attachment payload for this
// tile's SubBlock, if loaded.
func (t *Tile) AttachmentBlob() []byte { return t.attachmentBlob }

// SetAttachmentBlob stores the materialized attachment payload.
func (t *Tile) SetAttachmentBlob(b []byte) { t.attachmentBlob = b }

// MetadataBlob returns the materialized per-subblock local metadata XML,
// if loaded. This is distinct from the Container-level MetadataRecord.
func (t *Tile) MetadataBlob() []byte { return t.metadataBlob }

// SetMetadataBlob stores the materialized per-subblock local metadata XML.
func (t *Tile) SetMetadataBlob(b []byte) { t.metadataBlob = b }

// PayloadOffset returns the byte offset, within Source, at which the raw
// compressed pixel payload begins: past the 32-byte segment header, the
// DirectoryEntry region and the per-tile metadata region.
func (t *Tile) PayloadOffset() int64 {
	return t.SegmentOffset + 32 + int64(t.DirectorySize) + int64(t.MetadataSize)
}
