// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package zisraw

import "github.com/saferwall/zisraw/model"

// Container is the public handle returned by Open: a fully indexed ZISRAW
// source set, ready for querying. It embeds *model.Container, promoting
// the owned object graph and capability flags (MultiScene, HasDataJPEG,
// ...) directly; the methods in this file and query.go add the querying
// behavior that needs byte-level access the model package cannot hold
// without an import cycle.
type Container struct {
	*model.Container
}

// Re-exported sentinel errors and enumerations, so callers need only
// import this package, mirroring how saferwall/pe exposes its whole
// surface from one package.
var (
	ErrIO             = model.ErrIO
	ErrShortRead      = model.ErrShortRead
	ErrNotZisraw      = model.ErrNotZisraw
	ErrCorruptSegment = model.ErrCorruptSegment
	ErrCorruptEntry   = model.ErrCorruptEntry
	ErrDuplicateTile  = model.ErrDuplicateTile
	ErrUnsupported    = model.ErrUnsupported
	ErrOutOfRange     = model.ErrOutOfRange
	ErrNotFound       = model.ErrNotFound
)

type (
	// Tile is a sub-block's worth of pixel data, addressable within its Level.
	Tile = model.Tile
	// Level groups tiles sharing a pyramid kind and X/Y sub-sampling.
	Level = model.Level
	// Dimension describes a tile's extent along one named axis.
	Dimension = model.Dimension
	// MetadataRecord describes one source's Metadata segment.
	MetadataRecord = model.MetadataRecord
	// AttachmentRecord describes one entry of an AttachmentDirectory.
	AttachmentRecord = model.AttachmentRecord
	// PixelType identifies a tile's raw sample layout.
	PixelType = model.PixelType
	// Compression identifies a tile's payload codec.
	Compression = model.Compression
	// PyramidKind identifies which pyramid a Level belongs to.
	PyramidKind = model.PyramidKind
	// DimensionAxis is a named dimension's one-character identifier.
	DimensionAxis = model.DimensionAxis
	// AttachmentKind names a well-known attachment content-type tag.
	AttachmentKind = model.AttachmentKind
)
