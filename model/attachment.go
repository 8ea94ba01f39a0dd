// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

// AttachmentRecord describes one entry of an AttachmentDirectory segment:
// a content GUID, an 8-character content-type tag, a short display name,
// and the size/location of its payload.
type AttachmentRecord struct {
	// Source is a non-owning back-reference to the owning Source.
	Source *Source

	FilePart int32

	// ContentGUID uniquely identifies this attachment's content.
	ContentGUID [16]byte

	// ContentType is the 8-character, NUL-padded content-type tag (e.g.
	// "ZISRAW" for an embedded sub-container, "JPG" for a thumbnail).
	ContentType [8]byte

	// Name is the attachment's display name, at most 80 characters.
	Name string

	// SegmentOffset is the byte offset of the enclosing Attachment
	// segment.
	SegmentOffset int64

	// DataSize is the length in bytes of the attachment's payload. It is
	// filled in when DecodeAssociated opens the attachment's segment and is
	// 0 before that.
	DataSize int32
}
