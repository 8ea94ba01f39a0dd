// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

// Dimension describes a tile's extent along one named axis. Only the first
// byte of Identifier is semantically significant; the remainder is
// NUL/space padding preserved for diagnostics.
type Dimension struct {
	// Identifier is the 4-byte, NUL-padded axis tag as stored on disk; its
	// first byte is the DimensionAxis.
	Identifier [4]byte

	// Start is the logical starting coordinate along this axis.
	Start int32

	// Size is the logical extent along this axis; always a positive
	// multiple of StoredSize.
	Size int32

	// StartCoordinate is the physical starting coordinate, in the unit
	// the producer chose (commonly meters for X/Y).
	StartCoordinate float32

	// StoredSize is the pixel count actually stored after sub-sampling.
	StoredSize int32
}

// Axis returns the DimensionAxis carried by this Dimension's first
// identifier byte.
func (d Dimension) Axis() DimensionAxis {
	return DimensionAxis(d.Identifier[0])
}

// SubSampling returns Size / StoredSize, the sub-sampling factor along
// this axis. Callers must ensure StoredSize != 0 before calling; decoders
// reject StoredSize == 0 as ErrCorruptEntry before a Dimension is ever
// constructed from file bytes.
func (d Dimension) SubSampling() int32 {
	return d.Size / d.StoredSize
}

// End returns the exclusive end coordinate Start + Size along this axis.
func (d Dimension) End() int32 {
	return d.Start + d.Size
}
