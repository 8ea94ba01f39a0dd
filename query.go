// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package zisraw

import (
	"io"

	"github.com/saferwall/zisraw/internal/decode"
	"github.com/saferwall/zisraw/internal/segment"
	"github.com/saferwall/zisraw/model"
)

// LevelCount returns the number of pyramid levels indexed across the whole
// source set.
func (c *Container) LevelCount() int {
	return len(c.Levels)
}

// LevelTiles returns the tiles belonging to the level at index, in map
// iteration order. Fails with ErrOutOfRange if index is not a valid level
// index.
func (c *Container) LevelTiles(index int) ([]*Tile, error) {
	if index < 0 || index >= len(c.Levels) {
		return nil, model.WrapStagef(model.ErrOutOfRange, "level index %d out of range [0,%d)", index, len(c.Levels))
	}
	return c.Levels[index].TileList(), nil
}

// LoadTile materializes a tile's local metadata, pixel-data and attachment
// blobs by reading its SubBlock segment, populating Tile.DirectorySize,
// MetadataSize, DataSize and AttachmentSize as a side effect (they are not
// known until the SubBlock segment itself is read; the central directory
// entry that located the tile carries no size fields of its own). Safe to
// call again; it re-reads and overwrites the cached blobs each time.
func (c *Container) LoadTile(t *Tile) error {
	cur, err := segment.NewAt(t.Source, t.SegmentOffset)
	if err != nil {
		return model.WrapStage("load tile", err)
	}

	h, err := cur.Next()
	if err != nil {
		return model.WrapStage("load tile: read segment header", err)
	}
	if h.ID != segment.IDSubBlock {
		return model.WrapStagef(model.ErrCorruptSegment,
			"tile segment at offset %d is %q, not ZISRAWSUBBLOCK", t.SegmentOffset, h.ID.String())
	}

	sb, err := decode.SubBlock(cur.Reader(), decode.Options{}, c.AddAnomaly)
	if err != nil {
		return model.WrapStage("load tile: decode subblock header", err)
	}

	t.DirectorySize = int32(cur.Reader().Position() - h.BodyOffset())
	t.MetadataSize = sb.MetadataSize
	t.DataSize = int32(sb.DataSize)
	t.AttachmentSize = sb.AttachmentSize

	if sb.MetadataSize > 0 {
		blob, err := cur.Reader().ReadBytes(int(sb.MetadataSize))
		if err != nil {
			return model.WrapStage("load tile: read local metadata", err)
		}
		t.SetMetadataBlob(blob)
	}

	data, err := cur.Reader().ReadBytes(int(sb.DataSize))
	if err != nil {
		return model.WrapStage("load tile: read data", err)
	}
	t.SetDataBlob(data)

	if sb.AttachmentSize > 0 {
		att, err := cur.Reader().ReadBytes(int(sb.AttachmentSize))
		if err != nil {
			return model.WrapStage("load tile: read attachment", err)
		}
		t.SetAttachmentBlob(att)
	}

	return nil
}

// ReleaseTile drops a tile's materialized blobs, allowing them to be
// garbage-collected without affecting the tile's indexed position.
func (c *Container) ReleaseTile(t *Tile) {
	t.ReleaseDataBlob()
	t.SetMetadataBlob(nil)
	t.SetAttachmentBlob(nil)
}

// MetadataCount returns the number of Metadata segments found across the
// whole source set (typically one per source, but the format does not
// forbid more).
func (c *Container) MetadataCount() int {
	return len(c.MetadataRecords)
}

// LoadMetadata materializes the XML body of the metadata record at index.
// Fails with ErrOutOfRange if index is invalid.
func (c *Container) LoadMetadata(index int) ([]byte, error) {
	if index < 0 || index >= len(c.MetadataRecords) {
		return nil, model.WrapStagef(model.ErrOutOfRange, "metadata index %d out of range [0,%d)", index, len(c.MetadataRecords))
	}
	rec := c.MetadataRecords[index]
	if rec.XML() != nil {
		return rec.XML(), nil
	}

	cur, err := segment.NewAt(rec.Source, rec.XMLOffset)
	if err != nil {
		return nil, model.WrapStage("load metadata", err)
	}
	xml, err := cur.Reader().ReadBytes(int(rec.XMLSize))
	if err != nil {
		return nil, model.WrapStage("load metadata: read xml", err)
	}
	rec.SetXML(xml)
	return xml, nil
}

// ReleaseMetadata drops the materialized XML body of the metadata record
// at index.
func (c *Container) ReleaseMetadata(index int) error {
	if index < 0 || index >= len(c.MetadataRecords) {
		return model.WrapStagef(model.ErrOutOfRange, "metadata index %d out of range [0,%d)", index, len(c.MetadataRecords))
	}
	c.MetadataRecords[index].ReleaseXML()
	return nil
}

// Attachments returns every AttachmentRecord found across the source set,
// parsing each source's AttachmentDirectory segment on first call and
// caching the result afterward (this module's resolution of the source
// spec's open question about whether attachment-directory parsing is
// required up front: it is not).
func (c *Container) Attachments() ([]*AttachmentRecord, error) {
	if !c.AttachmentDirDecoded {
		if err := c.ensureAttachments(); err != nil {
			return nil, err
		}
	}
	records := make([]*AttachmentRecord, 0, len(c.Container.Attachments))
	for _, a := range c.Container.Attachments {
		records = append(records, a)
	}
	return records, nil
}

// DecodeAssociated opens the first attachment whose ContentType tag or Name
// equals kind (e.g. AttachmentSlidePreview, AttachmentLabel) as its own embedded
// Container: a label, pre-scan or slide-preview attachment is itself a
// complete ZISRAW stream carved out of the enclosing file. Returns
// (nil, nil), not an error, if no attachment of that kind exists. The
// caller owns the returned Container and must Close it.
func (c *Container) DecodeAssociated(kind AttachmentKind) (*Container, error) {
	records, err := c.Attachments()
	if err != nil {
		return nil, err
	}
	for _, a := range records {
		if contentTypeMatches(a.ContentType, kind) || a.Name == string(kind) {
			return c.openAttachmentContainer(a)
		}
	}
	return nil, nil
}

func contentTypeMatches(tag [8]byte, kind AttachmentKind) bool {
	n := 0
	for n < len(tag) && tag[n] != 0 {
		n++
	}
	return string(tag[:n]) == string(kind)
}

// ensureAttachments decodes every source's AttachmentDirectory segment
// (located via its FileHeader's AttachmentDirectoryPosition) and populates
// Container.Attachments, keyed by content GUID.
func (c *Container) ensureAttachments() error {
	filePartSources := make(map[int32]*model.Source, len(c.FileHeaders))
	for i, fh := range c.FileHeaders {
		filePartSources[fh.FilePart] = c.Sources[i]
	}

	for _, fh := range c.FileHeaders {
		if fh.AttachmentDirectoryPosition <= 0 {
			continue
		}
		cur, err := segment.NewAt(fh.Source, fh.AttachmentDirectoryPosition)
		if err != nil {
			return model.WrapStage("locate attachment directory", err)
		}
		h, err := cur.Next()
		if err != nil {
			return model.WrapStage("read attachment directory segment", err)
		}
		if h.ID != segment.IDAttachmentDirectory {
			return model.WrapStagef(model.ErrCorruptSegment,
				"attachment directory position points at %q, not ZISRAWATTDIR", h.ID.String())
		}

		entries, err := decode.AttachmentDirectory(cur.Reader())
		if err != nil {
			return model.WrapStage("decode attachment directory", err)
		}

		for _, e := range entries {
			src, ok := filePartSources[e.FilePart]
			if !ok {
				c.AddAnomaly("attachment entry references unknown file part")
				continue
			}
			ar := &model.AttachmentRecord{
				Source:        src,
				FilePart:      e.FilePart,
				ContentGUID:   e.ContentGUID,
				ContentType:   e.ContentType,
				Name:          e.Name,
				SegmentOffset: e.FilePosition,
			}
			if _, dup := c.Container.Attachments[e.ContentGUID]; dup {
				c.AddAnomaly("duplicate attachment content guid")
			}
			c.Container.Attachments[e.ContentGUID] = ar
		}
	}

	c.AttachmentDirDecoded = true
	return nil
}

// openAttachmentContainer locates a's payload window within its owning
// Source's mapped buffer (deriving the length from the Attachment
// segment's declared used_size minus the bytes its inline header
// consumed) and opens that window as its own embedded Container, per
// spec.md's decode_associated contract.
func (c *Container) openAttachmentContainer(a *AttachmentRecord) (*Container, error) {
	cur, err := segment.NewAt(a.Source, a.SegmentOffset)
	if err != nil {
		return nil, model.WrapStage("load attachment", err)
	}
	h, err := cur.Next()
	if err != nil {
		return nil, model.WrapStage("load attachment: read segment header", err)
	}
	if h.ID != segment.IDAttachment {
		return nil, model.WrapStagef(model.ErrCorruptSegment,
			"attachment segment at offset %d is %q, not ZISRAWATTACH", a.SegmentOffset, h.ID.String())
	}

	if _, err := decode.Attachment(cur.Reader()); err != nil {
		return nil, model.WrapStage("load attachment: decode inline header", err)
	}

	consumed := cur.Reader().Position() - h.BodyOffset()
	dataSize := h.UsedSize - consumed
	if dataSize < 0 {
		return nil, model.WrapStagef(model.ErrCorruptSegment,
			"attachment segment used_size %d shorter than its inline header (%d bytes)", h.UsedSize, consumed)
	}
	a.DataSize = int32(dataSize)

	embedded := model.NewEmbeddedSource(a.Source.Bytes(), a.Source.Begin+cur.Reader().Position(), dataSize)
	nested, err := openEmbedded(embedded, nil)
	if err != nil {
		return nil, model.WrapStage("open attachment as embedded container", err)
	}
	return nested, nil
}

var _ io.Closer = (*Container)(nil)
