// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

// FileHeader is the decoded body of one source's ZISRAWFILE segment.
type FileHeader struct {
	// Source is a non-owning back-reference to the Source this header was
	// read from.
	Source *Source

	Major int32
	Minor int32

	// PrimaryFileGUID identifies the master file of a multi-part set; it
	// is the same across every part file belonging to one logical
	// container.
	PrimaryFileGUID [16]byte

	// FileGUID uniquely identifies this individual part file.
	FileGUID [16]byte

	// FilePart is 0 for the master file, 1.. for part files.
	FilePart int32

	// DirectoryPosition is the byte offset of this source's
	// SubBlockDirectory segment.
	DirectoryPosition int64

	// MetadataPosition is the byte offset of this source's Metadata
	// segment.
	MetadataPosition int64

	// UpdatePending is set when the file was left in a partially-written
	// state by its producer.
	UpdatePending bool

	// AttachmentDirectoryPosition is the byte offset of this source's
	// AttachmentDirectory segment.
	AttachmentDirectoryPosition int64
}
