// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Source is either a filesystem path with an open, memory-mapped byte
// stream, or an embedded sub-stream carved out of another Source's mapped
// buffer at a byte offset (Begin) with a bounded length (Size, 0 meaning
// "until EOF"). It owns its mapping and closes it on Close.
type Source struct {
	// Path is the filesystem path this Source was opened from; empty for
	// an embedded sub-stream.
	Path string

	// Begin is the byte offset, within the underlying mapped buffer, at
	// which this Source's bytes start.
	Begin int64

	// Size bounds the Source's length; 0 means "until EOF of the mapped
	// buffer".
	Size int64

	// FilePart is the file-part index this Source contributes, as read
	// from its own FileHeader (0 for the master source).
	FilePart int32

	data mmap.MMap
	f    *os.File
}

// OpenFileSource memory-maps the file at path and returns an owning Source.
func OpenFileSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Source{
		Path: path,
		Size: int64(len(data)),
		data: data,
		f:    f,
	}, nil
}

// NewEmbeddedSource carves out a bounded, non-owning view of an already
// mapped buffer. It does not own a file handle; Close is a no-op.
func NewEmbeddedSource(data []byte, begin, size int64) *Source {
	return &Source{
		Begin: begin,
		Size:  size,
		data:  mmap.MMap(data),
	}
}

// Bytes returns the Source's full mapped buffer, from which a ByteReader
// slices positioned reads.
func (s *Source) Bytes() []byte {
	return s.data
}

// Len returns the usable length of the Source: Size if bounded and
// positive, otherwise the length of the underlying mapped buffer.
func (s *Source) Len() int64 {
	if s.Size > 0 {
		return s.Size
	}
	return int64(len(s.data))
}

// Close releases the Source's mapping and, if it owns one, its file
// handle. Safe to call on an embedded Source.
func (s *Source) Close() error {
	if s.data != nil && s.f != nil {
		_ = s.data.Unmap()
	}
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}
