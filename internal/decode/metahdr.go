// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

const metadataReserved = 248

// MetadataEnvelope is the decoded header of a ZISRAWMETADATA segment body:
// an XML blob size, an attachment blob size, followed by reserved space,
// then the XML bytes themselves at a fixed offset from the segment start.
type MetadataEnvelope struct {
	XMLSize        int32
	AttachmentSize int32
}

// Metadata reads a Metadata segment's envelope: xml_size (4B), attachment_size
// (4B), then 248B reserved. The caller positions the cursor at the segment
// body start and reads the XML bytes itself immediately afterward, since
// their count is now known.
func Metadata(r *bytesrc.Reader) (MetadataEnvelope, error) {
	var m MetadataEnvelope

	var err error
	if m.XMLSize, err = r.ReadInt32(); err != nil {
		return m, model.WrapStage("read metadata xml_size", err)
	}
	if m.AttachmentSize, err = r.ReadInt32(); err != nil {
		return m, model.WrapStage("read metadata attachment_size", err)
	}
	if err = r.Skip(metadataReserved); err != nil {
		return m, model.WrapStage("skip metadata reserved", err)
	}
	if m.XMLSize < 0 {
		return m, model.WrapStagef(model.ErrCorruptSegment, "negative metadata xml_size %d", m.XMLSize)
	}

	return m, nil
}
