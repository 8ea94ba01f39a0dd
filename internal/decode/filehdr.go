// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package decode implements the Entry Decoders: FileHeader, DirectoryEntry
// (with its nested DimensionEntry list), the Metadata segment envelope,
// and the AttachmentDirectory/Attachment segments, per spec section 4.C
// and the bit-exact layouts of section 6.
package decode

import (
	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

// FileHeader reads a ZISRAWFILE segment body: major, minor, 8 bytes
// reserved, primary-file GUID, file GUID, file-part, directory position,
// metadata position, update-pending flag, attachment-directory position.
func FileHeader(r *bytesrc.Reader, src *model.Source) (*model.FileHeader, error) {
	fh := &model.FileHeader{Source: src}

	var err error
	if fh.Major, err = r.ReadInt32(); err != nil {
		return nil, model.WrapStage("read major", err)
	}
	if fh.Minor, err = r.ReadInt32(); err != nil {
		return nil, model.WrapStage("read minor", err)
	}
	if err = r.Skip(8); err != nil {
		return nil, model.WrapStage("skip file header reserved", err)
	}
	if err = r.ReadExact(fh.PrimaryFileGUID[:]); err != nil {
		return nil, model.WrapStage("read primary file guid", err)
	}
	if err = r.ReadExact(fh.FileGUID[:]); err != nil {
		return nil, model.WrapStage("read file guid", err)
	}
	if fh.FilePart, err = r.ReadInt32(); err != nil {
		return nil, model.WrapStage("read file part", err)
	}
	if fh.DirectoryPosition, err = r.ReadInt64(); err != nil {
		return nil, model.WrapStage("read directory position", err)
	}
	if fh.MetadataPosition, err = r.ReadInt64(); err != nil {
		return nil, model.WrapStage("read metadata position", err)
	}
	var updatePending int32
	if updatePending, err = r.ReadInt32(); err != nil {
		return nil, model.WrapStage("read update pending flag", err)
	}
	fh.UpdatePending = updatePending != 0
	if fh.AttachmentDirectoryPosition, err = r.ReadInt64(); err != nil {
		return nil, model.WrapStage("read attachment directory position", err)
	}

	return fh, nil
}
