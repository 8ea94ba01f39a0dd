// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"fmt"

	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

const (
	subBlockDirectoryReserved = 124
	directoryEntryReserved    = 5
)

// DirectoryEntry is the decoded central SubBlockDirectory record for one
// tile: where its SubBlock segment lives, and the dimension extents that
// place it within its pyramid level. It carries none of a Tile's
// ownership back-references; the caller (the pyramid indexer, via Open)
// attaches those.
type DirectoryEntry struct {
	Schema       uint16
	PixelType    model.PixelType
	FilePosition int64
	FilePart     int32
	Compression  model.Compression
	Pyramid      model.PyramidKind
	Dims         map[model.DimensionAxis]model.Dimension
}

// SubBlockDirectory reads entry_count (4B), skips 124B reserved, then
// reads entry_count DirectoryEntry records.
func SubBlockDirectory(r *bytesrc.Reader, opts Options, addAnomaly func(string)) ([]DirectoryEntry, error) {
	count, err := r.ReadInt32()
	if err != nil {
		return nil, model.WrapStage("read directory entry_count", err)
	}
	if count < 0 {
		return nil, model.WrapStagef(model.ErrCorruptEntry, "negative directory entry_count %d", count)
	}
	if err := r.Skip(subBlockDirectoryReserved); err != nil {
		return nil, model.WrapStage("skip directory reserved", err)
	}

	entries := make([]DirectoryEntry, 0, count)
	for i := int32(0); i < count; i++ {
		e, err := oneDirectoryEntry(r, opts, addAnomaly)
		if err != nil {
			return nil, model.WrapStagef(err, "read directory entry %d", i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func oneDirectoryEntry(r *bytesrc.Reader, opts Options, addAnomaly func(string)) (DirectoryEntry, error) {
	var e DirectoryEntry

	schema, err := r.ReadUint16()
	if err != nil {
		return e, model.WrapStage("read schema", err)
	}
	e.Schema = schema

	pixelCode, err := r.ReadInt32()
	if err != nil {
		return e, model.WrapStage("read pixel type", err)
	}
	e.PixelType = model.DecodePixelType(pixelCode)

	if e.FilePosition, err = r.ReadInt64(); err != nil {
		return e, model.WrapStage("read file position", err)
	}
	if e.FilePart, err = r.ReadInt32(); err != nil {
		return e, model.WrapStage("read file part", err)
	}

	compCode, err := r.ReadInt32()
	if err != nil {
		return e, model.WrapStage("read compression", err)
	}
	e.Compression = model.DecodeCompression(compCode)

	pyramidCode, err := r.ReadUint8()
	if err != nil {
		return e, model.WrapStage("read pyramid type", err)
	}
	e.Pyramid = model.DecodePyramidKind(int8(pyramidCode))

	if err := r.Skip(directoryEntryReserved); err != nil {
		return e, model.WrapStage("skip directory entry reserved", err)
	}

	dimCount, err := r.ReadInt32()
	if err != nil {
		return e, model.WrapStage("read dimension_count", err)
	}
	if dimCount < 0 {
		return e, model.WrapStagef(model.ErrCorruptEntry, "negative dimension_count %d", dimCount)
	}

	e.Dims = make(map[model.DimensionAxis]model.Dimension, dimCount)
	for i := int32(0); i < dimCount; i++ {
		d, err := DimensionEntry(r)
		if err != nil {
			return e, model.WrapStagef(err, "read dimension %d", i)
		}
		if d.StoredSize == 0 {
			return e, model.WrapStagef(model.ErrCorruptEntry, "dimension %d: stored_size is zero", i)
		}
		if d.Size <= 0 || d.Size%d.StoredSize != 0 {
			return e, model.WrapStagef(model.ErrCorruptEntry,
				"dimension %d: size %d is not a positive multiple of stored_size %d", i, d.Size, d.StoredSize)
		}
		axis := d.Axis()
		if !model.IsKnownAxis(byte(axis)) {
			if opts.Lenient {
				if addAnomaly != nil {
					addAnomaly(fmt.Sprintf("dropped dimension with unrecognized identifier %q", string(d.Identifier[:])))
				}
				continue
			}
			return e, model.WrapStagef(model.ErrCorruptEntry, "unrecognized dimension identifier %q", string(d.Identifier[:]))
		}
		e.Dims[axis] = d
	}

	if _, ok := e.Dims[model.AxisX]; !ok {
		return e, model.WrapStage("validate entry", model.ErrCorruptEntry)
	}
	if _, ok := e.Dims[model.AxisY]; !ok {
		return e, model.WrapStage("validate entry", model.ErrCorruptEntry)
	}

	return e, nil
}
