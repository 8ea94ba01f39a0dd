// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package model holds the in-memory container graph reconstructed from a
// ZISRAW/CZI file set: Container, Source, FileHeader, Level, Tile,
// Dimension, MetadataRecord and AttachmentRecord, along with the
// enumerations their fields are drawn from. It owns no parsing logic; the
// internal/segment, internal/decode and internal/pyramid packages populate
// it, and the root zisraw package serves queries against it.
package model

// PixelType identifies the sample layout of a tile's raw pixel payload.
// The core never interprets the bytes themselves; the enumeration exists
// so that an external pixel decoder can be selected by the caller.
type PixelType int32

// Pixel-type codes as laid out in a DirectoryEntry.
const (
	PixelGray8              PixelType = 0
	PixelGray16             PixelType = 1
	PixelGray32Float        PixelType = 2
	PixelBGR24              PixelType = 3
	PixelBGR48              PixelType = 4
	PixelBGR96Float         PixelType = 8
	PixelBGRA32             PixelType = 9
	PixelGray64ComplexFloat PixelType = 10
	PixelBGR192ComplexFloat PixelType = 11
	PixelGray32             PixelType = 12
	PixelGray64             PixelType = 13
	PixelUnknown            PixelType = -1
)

// String returns the canonical name for a PixelType, "unknown" for any
// code outside the enumeration.
func (p PixelType) String() string {
	switch p {
	case PixelGray8:
		return "gray-8"
	case PixelGray16:
		return "gray-16"
	case PixelGray32Float:
		return "gray-32-float"
	case PixelBGR24:
		return "bgr-24"
	case PixelBGR48:
		return "bgr-48"
	case PixelBGR96Float:
		return "bgr-96-float"
	case PixelBGRA32:
		return "bgra-32"
	case PixelGray64ComplexFloat:
		return "gray-64-complex-float"
	case PixelBGR192ComplexFloat:
		return "bgr-192-complex-float"
	case PixelGray32:
		return "gray-32"
	case PixelGray64:
		return "gray-64"
	default:
		return "unknown"
	}
}

// DecodePixelType maps a raw 32-bit pixel-type code to the enumeration,
// falling back to PixelUnknown for anything unrecognized.
func DecodePixelType(code int32) PixelType {
	switch code {
	case 0, 1, 2, 3, 4, 8, 9, 10, 11, 12, 13:
		return PixelType(code)
	default:
		return PixelUnknown
	}
}

// Compression identifies the codec a tile's raw payload was compressed
// with. Decoding the payload itself is an external collaborator's job.
type Compression int32

// Compression codes as laid out in a DirectoryEntry.
const (
	CompressionUncompressed Compression = 0
	CompressionJPEG         Compression = 1
	CompressionLZW          Compression = 2
	CompressionJPEGXR       Compression = 4
	CompressionCameraSpec   Compression = 100
	CompressionSystemSpec   Compression = 1000
	CompressionUnknown      Compression = -1
)

func (c Compression) String() string {
	switch c {
	case CompressionUncompressed:
		return "uncompressed"
	case CompressionJPEG:
		return "jpeg"
	case CompressionLZW:
		return "lzw"
	case CompressionJPEGXR:
		return "jpeg-xr"
	case CompressionCameraSpec:
		return "camera-spec"
	case CompressionSystemSpec:
		return "system-spec"
	default:
		return "unknown"
	}
}

// DecodeCompression maps a raw 32-bit compression code to the enumeration,
// falling back to CompressionUnknown for anything unrecognized.
func DecodeCompression(code int32) Compression {
	switch code {
	case 0, 1, 2, 4, 100, 1000:
		return Compression(code)
	default:
		return CompressionUnknown
	}
}

// PyramidKind identifies which pyramid a tile's level belongs to.
type PyramidKind int8

// Pyramid codes as laid out in a DirectoryEntry.
const (
	PyramidNone    PyramidKind = 0
	PyramidSingle  PyramidKind = 1
	PyramidMulti   PyramidKind = 2
	PyramidUnknown PyramidKind = -1
)

func (p PyramidKind) String() string {
	switch p {
	case PyramidNone:
		return "none"
	case PyramidSingle:
		return "single"
	case PyramidMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// DecodePyramidKind maps a raw 8-bit pyramid-type code to the enumeration,
// falling back to PyramidUnknown for anything unrecognized.
func DecodePyramidKind(code int8) PyramidKind {
	switch code {
	case 0, 1, 2:
		return PyramidKind(code)
	default:
		return PyramidUnknown
	}
}

// DimensionAxis is the one-character identifier of a named dimension.
type DimensionAxis byte

// The twelve axes a DimensionEntry may carry.
const (
	AxisX            DimensionAxis = 'X'
	AxisY            DimensionAxis = 'Y'
	AxisChannel      DimensionAxis = 'C'
	AxisZSlice       DimensionAxis = 'Z'
	AxisTime         DimensionAxis = 'T'
	AxisRotation     DimensionAxis = 'R'
	AxisScene        DimensionAxis = 'S'
	AxisIllumination DimensionAxis = 'I'
	AxisBlock        DimensionAxis = 'B'
	AxisMosaicTile   DimensionAxis = 'M'
	AxisPhase        DimensionAxis = 'H'
	AxisView         DimensionAxis = 'V'
)

// KnownAxes lists the twelve recognized dimension identifiers in a stable
// order, used by the diagnostics dump and by capability-flag derivation.
var KnownAxes = [12]DimensionAxis{
	AxisX, AxisY, AxisChannel, AxisZSlice, AxisTime, AxisRotation,
	AxisScene, AxisIllumination, AxisBlock, AxisMosaicTile, AxisPhase, AxisView,
}

// IsKnownAxis reports whether b is one of the twelve recognized dimension
// identifiers.
func IsKnownAxis(b byte) bool {
	switch DimensionAxis(b) {
	case AxisX, AxisY, AxisChannel, AxisZSlice, AxisTime, AxisRotation,
		AxisScene, AxisIllumination, AxisBlock, AxisMosaicTile, AxisPhase, AxisView:
		return true
	default:
		return false
	}
}

// AttachmentKind names a well-known kind of attachment. CZI producers are
// not required to use these exact strings, but ZEN-written files
// consistently do; DecodeAssociated matches a kind against an attachment's
// 8-byte content-type tag or its name, so kinds longer than 8 bytes can
// only match a name.
type AttachmentKind string

// Well-known attachment content-type tags.
const (
	AttachmentThumbnail    AttachmentKind = "Thumbnail"
	AttachmentLabel        AttachmentKind = "Label"
	AttachmentSlidePreview AttachmentKind = "SlidePreview"
	AttachmentPreScan      AttachmentKind = "PreScan"
	AttachmentTimeStamps   AttachmentKind = "TimeStamps"
	AttachmentEventList    AttachmentKind = "EventList"
	AttachmentFocus        AttachmentKind = "Focus"
	AttachmentFile         AttachmentKind = "File"
)
