// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package bytesrc implements the positioned Byte Reader over one
// model.Source: buffered-equivalent (the Source is already memory-mapped)
// positioned reads, endian normalization, and bounded seeks, matching
// spec section 4.A. It never interprets content.
package bytesrc

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/saferwall/zisraw/model"
)

// nativeBigEndian reports whether this host is big-endian, decided once.
// Items on disk are always little-endian; read_exact byte-swaps in place
// on a big-endian host.
var nativeBigEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x00}) != 1

// Reader positions reads within one Source's mapped buffer.
type Reader struct {
	src *model.Source
	pos int64
}

// New returns a Reader positioned at the start of src.
func New(src *model.Source) *Reader {
	return &Reader{src: src}
}

// Position returns the reader's current byte offset, relative to the
// Source's Begin.
func (r *Reader) Position() int64 { return r.pos }

// EOF reports whether the reader has consumed the whole bounded Source.
func (r *Reader) EOF() bool {
	return r.pos >= r.src.Len()
}

// SeekTo moves the reader to offset, interpreted per whence (io.SeekStart,
// io.SeekCurrent, io.SeekEnd), bounded by the Source's Len.
func (r *Reader) SeekTo(offset int64, whence int) error {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		target = r.src.Len() + offset
	default:
		return model.WrapStage("seek", model.ErrIO)
	}
	if target < 0 || target > r.src.Len() {
		return model.WrapStagef(model.ErrIO, "seek to %d out of bounds [0,%d]", target, r.src.Len())
	}
	r.pos = target
	return nil
}

// absolute returns the reader's current position translated into the
// underlying mapped buffer's coordinate space.
func (r *Reader) absolute() int64 {
	return r.src.Begin + r.pos
}

// ReadExact reads exactly len(dst) bytes at the current position, advancing
// it. Fails with a *model.ShortReadError (wrapping model.ErrShortRead) if
// fewer bytes are available.
func (r *Reader) ReadExact(dst []byte) error {
	buf := r.src.Bytes()
	start := r.absolute()
	if start < 0 || start > int64(len(buf)) {
		return model.WrapStage("read", model.ErrIO)
	}
	end := start + int64(len(dst))
	boundEnd := r.src.Begin + r.src.Len()
	if r.src.Size > 0 && end > boundEnd {
		end = boundEnd
	}
	if end > int64(len(buf)) {
		end = int64(len(buf))
	}
	avail := end - start
	if avail < 0 {
		avail = 0
	}
	n := copy(dst, buf[start:start+avail])
	r.pos += int64(n)
	if n != len(dst) {
		return &model.ShortReadError{Requested: len(dst), Delivered: n}
	}
	return nil
}

// ReadItems reads count items of itemSize bytes each into dst, byte-
// swapping each item in place if the host is big-endian (file contents
// are always little-endian). len(dst) must equal count*itemSize.
func (r *Reader) ReadItems(dst []byte, count, itemSize int) error {
	if err := r.ReadExact(dst); err != nil {
		return err
	}
	if nativeBigEndian {
		for i := 0; i < count; i++ {
			item := dst[i*itemSize : (i+1)*itemSize]
			for a, b := 0, len(item)-1; a < b; a, b = a+1, b-1 {
				item[a], item[b] = item[b], item[a]
			}
		}
	}
	return nil
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	var b [1]byte
	if err := r.ReadExact(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads one little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	var b [2]byte
	if err := r.ReadExact(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadUint32 reads one little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	var b [4]byte
	if err := r.ReadExact(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadUint64 reads one little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	var b [8]byte
	if err := r.ReadExact(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadInt32 reads one little-endian signed int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads one little-endian signed int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads one little-endian IEEE-754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// Skip advances the reader by n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	return r.SeekTo(n, io.SeekCurrent)
}

// ReadBytes reads and returns a freshly allocated copy of n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.ReadExact(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PeekBytesAt returns a read-only view of n bytes at offset (relative to
// the Source's logical start) without advancing the reader. The returned
// slice aliases the Source's mapped buffer and must not be mutated.
func (r *Reader) PeekBytesAt(offset int64, n int) ([]byte, error) {
	buf := r.src.Bytes()
	start := r.src.Begin + offset
	end := start + int64(n)
	if start < 0 || end > int64(len(buf)) {
		return nil, model.WrapStage("read", model.ErrIO)
	}
	if r.src.Size > 0 && offset+int64(n) > r.src.Len() {
		return nil, model.WrapStage("read", model.ErrIO)
	}
	return buf[start:end], nil
}
