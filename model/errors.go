// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
)

// Error kinds, matching the semantic (not syntactic) taxonomy of the
// container format: every failure surfaced by this module can be matched
// against one of these with errors.Is.
var (
	// ErrIO wraps an underlying read/seek/open failure.
	ErrIO = errors.New("io_error")

	// ErrShortRead is returned when fewer items were delivered than requested.
	ErrShortRead = errors.New("short_read")

	// ErrNotZisraw is returned when a stream does not begin with a
	// ZISRAWFILE segment identifier.
	ErrNotZisraw = errors.New("not_zisraw")

	// ErrCorruptSegment covers an unknown segment identifier seen before EOF,
	// an inconsistent allocated_size, or a zero-progress cursor loop.
	ErrCorruptSegment = errors.New("corrupt_segment")

	// ErrCorruptEntry is returned when a directory or dimension entry fails
	// one of its invariants.
	ErrCorruptEntry = errors.New("corrupt_entry")

	// ErrDuplicateTile is returned when two tiles in one level share the
	// same (X-start, Y-start) composite.
	ErrDuplicateTile = errors.New("duplicate_tile")

	// ErrUnsupported marks a recognized but currently unimplemented
	// sub-format.
	ErrUnsupported = errors.New("unsupported")

	// ErrOutOfRange is returned when a query index falls outside the
	// number of available items.
	ErrOutOfRange = errors.New("out_of_range")

	// ErrNotFound is returned when a query key has no referent.
	ErrNotFound = errors.New("not_found")
)

// ShortReadError carries the requested and delivered item counts of a
// failed read.
type ShortReadError struct {
	Requested int
	Delivered int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("short_read(%d/%d)", e.Delivered, e.Requested)
}

func (e *ShortReadError) Unwrap() error { return ErrShortRead }

// StageError chains a textual parse-stage description onto a wrapped
// error, building a message such as "decode source 0: read directory
// entry 37: read dimension 2: short_read(3/4)", each stage joined to the
// next by ": ".
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// WrapStage prefixes err with a stage description, chaining onto any stage
// prefixes already present. Returns nil if err is nil.
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// WrapStagef is WrapStage with a formatted stage description.
func WrapStagef(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return WrapStage(fmt.Sprintf(format, args...), err)
}
