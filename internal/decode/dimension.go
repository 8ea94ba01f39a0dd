// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package decode

import (
	"github.com/saferwall/zisraw/internal/bytesrc"
	"github.com/saferwall/zisraw/model"
)

// Options controls decoder leniency, mirroring spec.md's Open Question
// (a): whether an unrecognized dimension identifier is fatal.
type Options struct {
	// Lenient, when true, drops an unrecognized dimension identifier
	// (recording an anomaly) instead of failing the entry with
	// ErrCorruptEntry.
	Lenient bool
}

// DimensionEntry reads one DimensionEntry: a 4-byte NUL-padded identifier,
// start, size, float start-coordinate, and stored-size.
func DimensionEntry(r *bytesrc.Reader) (model.Dimension, error) {
	var d model.Dimension

	if err := r.ReadExact(d.Identifier[:]); err != nil {
		return d, model.WrapStage("read dimension identifier", err)
	}
	var err error
	if d.Start, err = r.ReadInt32(); err != nil {
		return d, model.WrapStage("read dimension start", err)
	}
	if d.Size, err = r.ReadInt32(); err != nil {
		return d, model.WrapStage("read dimension size", err)
	}
	if d.StartCoordinate, err = r.ReadFloat32(); err != nil {
		return d, model.WrapStage("read dimension start coordinate", err)
	}
	if d.StoredSize, err = r.ReadInt32(); err != nil {
		return d, model.WrapStage("read dimension stored size", err)
	}

	return d, nil
}
