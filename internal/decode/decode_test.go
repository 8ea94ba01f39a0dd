// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"bytes"
	"testing"

	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

func readerFrom(buf []byte) *bytesrc.Reader {
	src := model.NewEmbeddedSource(buf, 0, int64(len(buf)))
	return bytesrc.New(src)
}

func TestFileHeaderRoundTrip(t *testing.T) {
	want := &model.FileHeader{
		Major:                       1,
		Minor:                       0,
		FilePart:                    2,
		DirectoryPosition:           1000,
		MetadataPosition:            2000,
		UpdatePending:               true,
		AttachmentDirectoryPosition: 3000,
	}
	copy(want.PrimaryFileGUID[:], "0123456789abcdef")
	copy(want.FileGUID[:], "fedcba9876543210")

	var buf bytes.Buffer
	if err := EncodeFileHeader(&buf, want); err != nil {
		t.Fatalf("EncodeFileHeader failed: %v", err)
	}

	got, err := FileHeader(readerFrom(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("FileHeader failed: %v", err)
	}
	if got.Major != want.Major || got.Minor != want.Minor || got.FilePart != want.FilePart ||
		got.DirectoryPosition != want.DirectoryPosition || got.MetadataPosition != want.MetadataPosition ||
		got.UpdatePending != want.UpdatePending || got.AttachmentDirectoryPosition != want.AttachmentDirectoryPosition ||
		got.PrimaryFileGUID != want.PrimaryFileGUID || got.FileGUID != want.FileGUID {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestDimensionEntryRoundTrip(t *testing.T) {
	want := model.Dimension{
		Start:           10,
		Size:            20,
		StartCoordinate: 1.5,
		StoredSize:      20,
	}
	copy(want.Identifier[:], "X")

	var buf bytes.Buffer
	if err := EncodeDimensionEntry(&buf, want); err != nil {
		t.Fatalf("EncodeDimensionEntry failed: %v", err)
	}

	got, err := DimensionEntry(readerFrom(buf.Bytes()))
	if err != nil {
		t.Fatalf("DimensionEntry failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func makeXYDims() map[model.DimensionAxis]model.Dimension {
	x := model.Dimension{Start: 0, Size: 256, StoredSize: 256}
	copy(x.Identifier[:], "X")
	y := model.Dimension{Start: 0, Size: 256, StoredSize: 256}
	copy(y.Identifier[:], "Y")
	return map[model.DimensionAxis]model.Dimension{
		model.AxisX: x,
		model.AxisY: y,
	}
}

func TestDirectoryEntryRoundTrip(t *testing.T) {
	want := DirectoryEntry{
		Schema:       0x4456, // "DV"
		PixelType:    model.PixelGray8,
		FilePosition: 4096,
		FilePart:     0,
		Compression:  model.CompressionUncompressed,
		Pyramid:      model.PyramidNone,
		Dims:         makeXYDims(),
	}

	var buf bytes.Buffer
	if err := EncodeDirectoryEntry(&buf, want); err != nil {
		t.Fatalf("EncodeDirectoryEntry failed: %v", err)
	}

	got, err := oneDirectoryEntry(readerFrom(buf.Bytes()), Options{}, nil)
	if err != nil {
		t.Fatalf("oneDirectoryEntry failed: %v", err)
	}
	if got.Schema != want.Schema || got.PixelType != want.PixelType || got.FilePosition != want.FilePosition ||
		got.FilePart != want.FilePart || got.Compression != want.Compression || got.Pyramid != want.Pyramid {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	if len(got.Dims) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(got.Dims))
	}
}

func TestDirectoryEntryRejectsMissingXY(t *testing.T) {
	onlyX := map[model.DimensionAxis]model.Dimension{model.AxisX: makeXYDims()[model.AxisX]}
	want := DirectoryEntry{Dims: onlyX}

	var buf bytes.Buffer
	if err := EncodeDirectoryEntry(&buf, want); err != nil {
		t.Fatalf("EncodeDirectoryEntry failed: %v", err)
	}

	_, err := oneDirectoryEntry(readerFrom(buf.Bytes()), Options{}, nil)
	if err == nil {
		t.Fatal("expected error for directory entry missing Y dimension")
	}
}

func TestDirectoryEntryUnknownAxisStrictVsLenient(t *testing.T) {
	dims := makeXYDims()
	unknown := model.Dimension{Start: 0, Size: 1, StoredSize: 1}
	copy(unknown.Identifier[:], "Q")
	dims['Q'] = unknown
	want := DirectoryEntry{Dims: dims}

	var buf bytes.Buffer
	if err := EncodeDirectoryEntry(&buf, want); err != nil {
		t.Fatalf("EncodeDirectoryEntry failed: %v", err)
	}

	if _, err := oneDirectoryEntry(readerFrom(buf.Bytes()), Options{Lenient: false}, nil); err == nil {
		t.Fatal("expected strict mode to reject unknown dimension identifier")
	}

	var anomalies []string
	got, err := oneDirectoryEntry(readerFrom(buf.Bytes()), Options{Lenient: true}, func(msg string) {
		anomalies = append(anomalies, msg)
	})
	if err != nil {
		t.Fatalf("lenient mode unexpectedly failed: %v", err)
	}
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly recorded, got %d", len(anomalies))
	}
	if _, ok := got.Dims['Q']; ok {
		t.Fatal("lenient mode should have dropped the unknown dimension")
	}
}

func TestSubBlockDirectoryRoundTrip(t *testing.T) {
	entries := []DirectoryEntry{
		{PixelType: model.PixelGray8, Compression: model.CompressionUncompressed, Pyramid: model.PyramidNone, Dims: makeXYDims()},
		{PixelType: model.PixelBGR24, Compression: model.CompressionJPEG, Pyramid: model.PyramidMulti, Dims: makeXYDims()},
	}

	var buf bytes.Buffer
	if err := EncodeSubBlockDirectory(&buf, entries); err != nil {
		t.Fatalf("EncodeSubBlockDirectory failed: %v", err)
	}

	got, err := SubBlockDirectory(readerFrom(buf.Bytes()), Options{}, nil)
	if err != nil {
		t.Fatalf("SubBlockDirectory failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].PixelType != model.PixelGray8 || got[1].PixelType != model.PixelBGR24 {
		t.Fatalf("unexpected pixel types: %+v", got)
	}
}

func TestMetadataEnvelopeRoundTrip(t *testing.T) {
	want := MetadataEnvelope{XMLSize: 1234, AttachmentSize: 56}

	var buf bytes.Buffer
	if err := EncodeMetadataEnvelope(&buf, want); err != nil {
		t.Fatalf("EncodeMetadataEnvelope failed: %v", err)
	}

	got, err := Metadata(readerFrom(buf.Bytes()))
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestAttachmentEntryRoundTrip(t *testing.T) {
	want := AttachmentEntry{
		FilePosition: 9999,
		FilePart:     1,
		Name:         "Thumbnail",
	}
	copy(want.ContentGUID[:], "guidguidguidguid")
	copy(want.ContentType[:], "JPG")

	var buf bytes.Buffer
	if err := EncodeAttachmentEntry(&buf, want); err != nil {
		t.Fatalf("EncodeAttachmentEntry failed: %v", err)
	}

	got, err := Attachment(readerFrom(buf.Bytes()))
	if err != nil {
		t.Fatalf("Attachment failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestAttachmentDirectoryRoundTrip(t *testing.T) {
	entries := []AttachmentEntry{
		{Name: "Label", FilePosition: 100},
		{Name: "SlidePreview", FilePosition: 200},
	}
	for i := range entries {
		copy(entries[i].ContentType[:], "JPG")
	}

	var buf bytes.Buffer
	if err := EncodeAttachmentDirectory(&buf, entries); err != nil {
		t.Fatalf("EncodeAttachmentDirectory failed: %v", err)
	}

	got, err := AttachmentDirectory(readerFrom(buf.Bytes()))
	if err != nil {
		t.Fatalf("AttachmentDirectory failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Label" || got[1].Name != "SlidePreview" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestSubBlockHeaderRoundTrip(t *testing.T) {
	want := SubBlockHeader{
		MetadataSize:   10,
		AttachmentSize: 0,
		DataSize:       4096,
		Entry: DirectoryEntry{
			PixelType:   model.PixelGray16,
			Compression: model.CompressionJPEGXR,
			Pyramid:     model.PyramidSingle,
			Dims:        makeXYDims(),
		},
	}

	var buf bytes.Buffer
	if err := EncodeSubBlockHeader(&buf, want); err != nil {
		t.Fatalf("EncodeSubBlockHeader failed: %v", err)
	}

	got, err := SubBlock(readerFrom(buf.Bytes()), Options{}, nil)
	if err != nil {
		t.Fatalf("SubBlock failed: %v", err)
	}
	if got.MetadataSize != want.MetadataSize || got.AttachmentSize != want.AttachmentSize || got.DataSize != want.DataSize {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if got.Entry.PixelType != want.Entry.PixelType || got.Entry.Compression != want.Entry.Compression {
		t.Fatalf("embedded entry mismatch: got %+v, want %+v", got.Entry, want.Entry)
	}
}
