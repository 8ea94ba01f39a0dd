// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"encoding/binary"
	"io"

	"github.com/saferwall/zisraw/model"
)

// The Encode* functions are the mirror image of this package's decoders.
// They exist to support a round-trip property: encoding a decoded record
// and decoding it again must reproduce the original values. They do not
// make this package a CZI writer; nothing here assembles a complete,
// valid segment stream.

func writeInt32(w io.Writer, v int32) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeInt64(w io.Writer, v int64) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeUint16(w io.Writer, v uint16) error { return binary.Write(w, binary.LittleEndian, v) }
func writeUint8(w io.Writer, v uint8) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeFloat32(w io.Writer, v float32) error {
	return binary.Write(w, binary.LittleEndian, v)
}
func writePad(w io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := w.Write(make([]byte, n))
	return err
}

// EncodeFileHeader writes fh in the layout FileHeader decodes.
func EncodeFileHeader(w io.Writer, fh *model.FileHeader) error {
	if err := writeInt32(w, fh.Major); err != nil {
		return model.WrapStage("write major", err)
	}
	if err := writeInt32(w, fh.Minor); err != nil {
		return model.WrapStage("write minor", err)
	}
	if err := writePad(w, 8); err != nil {
		return model.WrapStage("write file header reserved", err)
	}
	if _, err := w.Write(fh.PrimaryFileGUID[:]); err != nil {
		return model.WrapStage("write primary file guid", err)
	}
	if _, err := w.Write(fh.FileGUID[:]); err != nil {
		return model.WrapStage("write file guid", err)
	}
	if err := writeInt32(w, fh.FilePart); err != nil {
		return model.WrapStage("write file part", err)
	}
	if err := writeInt64(w, fh.DirectoryPosition); err != nil {
		return model.WrapStage("write directory position", err)
	}
	if err := writeInt64(w, fh.MetadataPosition); err != nil {
		return model.WrapStage("write metadata position", err)
	}
	updatePending := int32(0)
	if fh.UpdatePending {
		updatePending = 1
	}
	if err := writeInt32(w, updatePending); err != nil {
		return model.WrapStage("write update pending flag", err)
	}
	if err := writeInt64(w, fh.AttachmentDirectoryPosition); err != nil {
		return model.WrapStage("write attachment directory position", err)
	}
	return nil
}

// EncodeDimensionEntry writes d in the layout DimensionEntry decodes.
func EncodeDimensionEntry(w io.Writer, d model.Dimension) error {
	if _, err := w.Write(d.Identifier[:]); err != nil {
		return model.WrapStage("write dimension identifier", err)
	}
	if err := writeInt32(w, d.Start); err != nil {
		return model.WrapStage("write dimension start", err)
	}
	if err := writeInt32(w, d.Size); err != nil {
		return model.WrapStage("write dimension size", err)
	}
	if err := writeFloat32(w, d.StartCoordinate); err != nil {
		return model.WrapStage("write dimension start coordinate", err)
	}
	if err := writeInt32(w, d.StoredSize); err != nil {
		return model.WrapStage("write dimension stored size", err)
	}
	return nil
}

// EncodeDirectoryEntry writes e in the layout oneDirectoryEntry decodes.
// Dims is written in an unspecified but deterministic order (sorted by
// axis byte), since the map type discards the original on-disk order.
func EncodeDirectoryEntry(w io.Writer, e DirectoryEntry) error {
	if err := writeUint16(w, e.Schema); err != nil {
		return model.WrapStage("write schema", err)
	}
	if err := writeInt32(w, int32(e.PixelType)); err != nil {
		return model.WrapStage("write pixel type", err)
	}
	if err := writeInt64(w, e.FilePosition); err != nil {
		return model.WrapStage("write file position", err)
	}
	if err := writeInt32(w, e.FilePart); err != nil {
		return model.WrapStage("write file part", err)
	}
	if err := writeInt32(w, int32(e.Compression)); err != nil {
		return model.WrapStage("write compression", err)
	}
	if err := writeUint8(w, uint8(int8(e.Pyramid))); err != nil {
		return model.WrapStage("write pyramid type", err)
	}
	if err := writePad(w, directoryEntryReserved); err != nil {
		return model.WrapStage("write directory entry reserved", err)
	}
	if err := writeInt32(w, int32(len(e.Dims))); err != nil {
		return model.WrapStage("write dimension_count", err)
	}
	for _, axis := range sortedAxes(e.Dims) {
		if err := EncodeDimensionEntry(w, e.Dims[axis]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeSubBlockDirectory writes entries in the layout SubBlockDirectory
// decodes.
func EncodeSubBlockDirectory(w io.Writer, entries []DirectoryEntry) error {
	if err := writeInt32(w, int32(len(entries))); err != nil {
		return model.WrapStage("write directory entry_count", err)
	}
	if err := writePad(w, subBlockDirectoryReserved); err != nil {
		return model.WrapStage("write directory reserved", err)
	}
	for i, e := range entries {
		if err := EncodeDirectoryEntry(w, e); err != nil {
			return model.WrapStagef(err, "write directory entry %d", i)
		}
	}
	return nil
}

// EncodeMetadataEnvelope writes m in the layout Metadata decodes.
func EncodeMetadataEnvelope(w io.Writer, m MetadataEnvelope) error {
	if err := writeInt32(w, m.XMLSize); err != nil {
		return model.WrapStage("write metadata xml_size", err)
	}
	if err := writeInt32(w, m.AttachmentSize); err != nil {
		return model.WrapStage("write metadata attachment_size", err)
	}
	return writePad(w, metadataReserved)
}

// EncodeAttachmentEntry writes e in the layout oneAttachmentEntry decodes.
func EncodeAttachmentEntry(w io.Writer, e AttachmentEntry) error {
	if err := writeInt64(w, e.FilePosition); err != nil {
		return model.WrapStage("write attachment file position", err)
	}
	if err := writeInt32(w, e.FilePart); err != nil {
		return model.WrapStage("write attachment file part", err)
	}
	if _, err := w.Write(e.ContentGUID[:]); err != nil {
		return model.WrapStage("write attachment content guid", err)
	}
	if _, err := w.Write(e.ContentType[:]); err != nil {
		return model.WrapStage("write attachment content type", err)
	}
	nameBuf := make([]byte, attachmentEntryNameSize)
	copy(nameBuf, e.Name)
	if _, err := w.Write(nameBuf); err != nil {
		return model.WrapStage("write attachment name", err)
	}
	return writePad(w, attachmentEntryReserved)
}

// EncodeAttachmentDirectory writes entries in the layout AttachmentDirectory
// decodes.
func EncodeAttachmentDirectory(w io.Writer, entries []AttachmentEntry) error {
	if err := writeInt32(w, int32(len(entries))); err != nil {
		return model.WrapStage("write attachment directory entry_count", err)
	}
	if err := writePad(w, attachmentDirectoryReserved); err != nil {
		return model.WrapStage("write attachment directory reserved", err)
	}
	for i, e := range entries {
		if err := EncodeAttachmentEntry(w, e); err != nil {
			return model.WrapStagef(err, "write attachment entry %d", i)
		}
	}
	return nil
}

// EncodeSubBlockHeader writes h in the layout SubBlock decodes.
func EncodeSubBlockHeader(w io.Writer, h SubBlockHeader) error {
	if err := writeInt32(w, h.MetadataSize); err != nil {
		return model.WrapStage("write subblock metadata_size", err)
	}
	if err := writeInt32(w, h.AttachmentSize); err != nil {
		return model.WrapStage("write subblock attachment_size", err)
	}
	if err := binary.Write(w, binary.LittleEndian, h.DataSize); err != nil {
		return model.WrapStage("write subblock data_size", err)
	}
	return EncodeDirectoryEntry(w, h.Entry)
}

func sortedAxes(dims map[model.DimensionAxis]model.Dimension) []model.DimensionAxis {
	axes := make([]model.DimensionAxis, 0, len(dims))
	for axis := range dims {
		axes = append(axes, axis)
	}
	for i := 1; i < len(axes); i++ {
		for j := i; j > 0 && axes[j-1] > axes[j]; j-- {
			axes[j-1], axes[j] = axes[j], axes[j-1]
		}
	}
	return axes
}
