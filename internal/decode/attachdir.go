// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

const (
	attachmentEntryNameSize    = 80
	attachmentEntryReserved    = 14
	attachmentDirectoryReserved = 252
)

// AttachmentEntry is one decoded record from an AttachmentDirectory
// segment, or the inline header of an Attachment segment itself: where the
// attachment's own segment lives, its content GUID/type, and its name.
type AttachmentEntry struct {
	FilePosition int64
	FilePart     int32
	ContentGUID  [16]byte
	ContentType  [8]byte
	Name         string
}

// AttachmentDirectory reads entry_count (4B), 252B reserved, then
// entry_count AttachmentEntry records.
func AttachmentDirectory(r *bytesrc.Reader) ([]AttachmentEntry, error) {
	count, err := r.ReadInt32()
	if err != nil {
		return nil, model.WrapStage("read attachment directory entry_count", err)
	}
	if count < 0 {
		return nil, model.WrapStagef(model.ErrCorruptEntry, "negative attachment entry_count %d", count)
	}
	if err := r.Skip(attachmentDirectoryReserved); err != nil {
		return nil, model.WrapStage("skip attachment directory reserved", err)
	}

	entries := make([]AttachmentEntry, 0, count)
	for i := int32(0); i < count; i++ {
		e, err := oneAttachmentEntry(r)
		if err != nil {
			return nil, model.WrapStagef(err, "read attachment entry %d", i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Attachment reads the inline AttachmentEntry header found at the start of
// an Attachment segment's body. The caller, knowing the enclosing segment's
// UsedSize, derives the data length as UsedSize minus the bytes this
// function consumed.
func Attachment(r *bytesrc.Reader) (AttachmentEntry, error) {
	return oneAttachmentEntry(r)
}

func oneAttachmentEntry(r *bytesrc.Reader) (AttachmentEntry, error) {
	var e AttachmentEntry

	var err error
	if e.FilePosition, err = r.ReadInt64(); err != nil {
		return e, model.WrapStage("read attachment file position", err)
	}
	if e.FilePart, err = r.ReadInt32(); err != nil {
		return e, model.WrapStage("read attachment file part", err)
	}
	if err = r.ReadExact(e.ContentGUID[:]); err != nil {
		return e, model.WrapStage("read attachment content guid", err)
	}
	if err = r.ReadExact(e.ContentType[:]); err != nil {
		return e, model.WrapStage("read attachment content type", err)
	}
	nameBuf := make([]byte, attachmentEntryNameSize)
	if err = r.ReadExact(nameBuf); err != nil {
		return e, model.WrapStage("read attachment name", err)
	}
	e.Name = nulTerminated(nameBuf)
	if err = r.Skip(attachmentEntryReserved); err != nil {
		return e, model.WrapStage("skip attachment entry reserved", err)
	}

	return e, nil
}

func nulTerminated(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
