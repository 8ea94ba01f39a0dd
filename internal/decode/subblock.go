// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

// SubBlockHeader is the decoded header of a SubBlock segment's body: the
// sizes of its local metadata, pixel data and attachment regions, plus a
// per-tile mirror of its central DirectoryEntry (decoded, but not compared
// against the central SubBlockDirectory; tile identity and placement
// always come from the central directory, never from here).
type SubBlockHeader struct {
	MetadataSize   int32
	AttachmentSize int32
	DataSize       int64
	Entry          DirectoryEntry
}

// SubBlock reads a SubBlock segment's inline header: metadata_size (4B),
// attachment_size (4B), data_size (8B), then one DirectoryEntry record
// mirroring the tile's central directory entry. The caller has already
// consumed the segment's 32-byte outer header and positions the cursor at
// its body start; the reader's position immediately after this call is
// the start of the local metadata region, and Tile.DirectorySize is the
// number of bytes this call consumed.
func SubBlock(r *bytesrc.Reader, opts Options, addAnomaly func(string)) (SubBlockHeader, error) {
	var h SubBlockHeader

	var err error
	if h.MetadataSize, err = r.ReadInt32(); err != nil {
		return h, model.WrapStage("read subblock metadata_size", err)
	}
	if h.AttachmentSize, err = r.ReadInt32(); err != nil {
		return h, model.WrapStage("read subblock attachment_size", err)
	}
	if h.DataSize, err = r.ReadInt64(); err != nil {
		return h, model.WrapStage("read subblock data_size", err)
	}
	if h.MetadataSize < 0 || h.AttachmentSize < 0 || h.DataSize < 0 {
		return h, model.WrapStagef(model.ErrCorruptSegment,
			"subblock has negative region size (metadata=%d attachment=%d data=%d)",
			h.MetadataSize, h.AttachmentSize, h.DataSize)
	}

	entry, err := oneDirectoryEntry(r, opts, addAnomaly)
	if err != nil {
		return h, model.WrapStage("read subblock directory entry", err)
	}
	h.Entry = entry

	return h, nil
}
