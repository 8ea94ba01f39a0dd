// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package segment implements the Segment Cursor: locating the next
// 32-byte-aligned segment header, identifying its kind, and skipping it by
// its allocated length, per spec section 4.B.
package segment

import (
	"bytes"
	"io"

	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

// ID is a recognized, NUL-padded 16-byte segment identifier.
type ID [16]byte

// Recognized identifiers, exact byte strings NUL-padded to 16.
var (
	IDFileHeader        = mustID("ZISRAWFILE")
	IDDirectory         = mustID("ZISRAWDIRECTORY")
	IDSubBlock          = mustID("ZISRAWSUBBLOCK")
	IDMetadata          = mustID("ZISRAWMETADATA")
	IDAttachment        = mustID("ZISRAWATTACH")
	IDAttachmentDirectory = mustID("ZISRAWATTDIR")
	IDDeleted           = mustID("DELETED")
)

func mustID(s string) ID {
	var id ID
	copy(id[:], s)
	return id
}

func (id ID) String() string {
	n := bytes.IndexByte(id[:], 0)
	if n < 0 {
		n = len(id)
	}
	return string(id[:n])
}

// recognized reports whether id matches one of the identifiers above.
func recognized(id ID) bool {
	switch id {
	case IDFileHeader, IDDirectory, IDSubBlock, IDMetadata, IDAttachment, IDAttachmentDirectory, IDDeleted:
		return true
	default:
		return false
	}
}

// Header is a decoded 32-byte segment header.
type Header struct {
	ID            ID
	AllocatedSize int64
	UsedSize      int64

	// bodyOffset is the reader position at which the segment's body
	// begins, i.e. immediately after this 32-byte header.
	bodyOffset int64
}

// BodyOffset returns the byte offset of this segment's body, relative to
// the cursor's Source.
func (h Header) BodyOffset() int64 { return h.bodyOffset }

const headerSize = 32
const alignment = 32

// Cursor walks the segments of one Source in file order.
type Cursor struct {
	r *bytesrc.Reader
}

// New returns a Cursor over src, starting at byte 0.
func New(src *model.Source) *Cursor {
	return &Cursor{r: bytesrc.New(src)}
}

// NewAt returns a Cursor over src, starting at offset. Used to jump
// directly to a segment whose position is already known from another
// segment's pointer field (a FileHeader's directory/metadata/attachment
// positions), rather than walking every segment from the start.
func NewAt(src *model.Source, offset int64) (*Cursor, error) {
	c := New(src)
	if err := c.r.SeekTo(offset, io.SeekStart); err != nil {
		return nil, model.WrapStage("seek to segment", err)
	}
	return c, nil
}

// Reader exposes the underlying positioned reader, for callers (the entry
// decoders) that need to read a segment's body immediately after the
// cursor locates it.
func (c *Cursor) Reader() *bytesrc.Reader { return c.r }

// Next locates and decodes the next segment header, restoring 32-byte
// alignment first. Returns (Header{}, io.EOF) when no more segments
// remain. Fails with model.ErrCorruptSegment if an unrecognized
// identifier is seen before EOF, or if the cursor makes zero progress at
// the same position twice.
func (c *Cursor) Next() (Header, error) {
	pad := c.r.Position() % alignment
	if pad != 0 {
		if err := c.r.Skip(alignment - pad); err != nil {
			return Header{}, model.WrapStage("align", err)
		}
	}

	startPos := c.r.Position()

	var idBytes [16]byte
	err := c.r.ReadExact(idBytes[:])
	if err != nil {
		if c.r.EOF() || isShortRead(err) {
			return Header{}, io.EOF
		}
		return Header{}, model.WrapStage("read segment identifier", err)
	}

	var id ID = idBytes
	if !recognized(id) {
		if c.r.EOF() {
			return Header{}, io.EOF
		}
		return Header{}, model.WrapStagef(model.ErrCorruptSegment,
			"unrecognized segment identifier %q at offset %d", id.String(), startPos)
	}

	allocated, err := c.r.ReadInt64()
	if err != nil {
		return Header{}, model.WrapStage("read allocated_size", err)
	}
	used, err := c.r.ReadInt64()
	if err != nil {
		return Header{}, model.WrapStage("read used_size", err)
	}

	if allocated <= 0 {
		return Header{}, model.WrapStagef(model.ErrCorruptSegment,
			"segment %q has non-positive allocated_size %d", id.String(), allocated)
	}

	h := Header{ID: id, AllocatedSize: allocated, UsedSize: used, bodyOffset: c.r.Position()}

	// Detect zero-progress: a segment whose body would not advance the
	// stream at all is corrupt.
	if h.bodyOffset == startPos {
		return Header{}, model.WrapStage("segment header", model.ErrCorruptSegment)
	}

	return h, nil
}

// NextWithID repeatedly calls Next and Skip until a header matching id is
// found, or no segments remain (io.EOF).
func (c *Cursor) NextWithID(id ID) (Header, error) {
	for {
		h, err := c.Next()
		if err != nil {
			return Header{}, err
		}
		if h.ID == id {
			return h, nil
		}
		if err := c.Skip(h); err != nil {
			return Header{}, err
		}
	}
}

// Skip moves the cursor to h.AllocatedSize bytes past the start of h's
// body, wherever within the body the reader currently sits. Fails with
// model.ErrCorruptSegment if this would seek past the Source's bound.
func (c *Cursor) Skip(h Header) error {
	if err := c.r.SeekTo(h.bodyOffset, io.SeekStart); err != nil {
		return model.WrapStage("skip", err)
	}
	if err := c.r.Skip(h.AllocatedSize); err != nil {
		return model.WrapStagef(model.ErrCorruptSegment,
			"allocated_size %d for segment %q runs past source bound: %v",
			h.AllocatedSize, h.ID.String(), err)
	}
	return nil
}

func isShortRead(err error) bool {
	_, ok := err.(*model.ShortReadError)
	return ok
}
