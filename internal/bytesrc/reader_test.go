// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytesrc

import (
	"io"
	"testing"

	"github.com/saferwall/zisraw/model"
)

func newTestSource(data []byte) *model.Source {
	return model.NewEmbeddedSource(data, 0, int64(len(data)))
}

func TestReadExactAndPosition(t *testing.T) {
	src := newTestSource([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	r := New(src)

	buf := make([]byte, 2)
	if err := r.ReadExact(buf); err != nil {
		t.Fatalf("ReadExact failed: %v", err)
	}
	if buf[0] != 0x01 || buf[1] != 0x02 {
		t.Fatalf("unexpected bytes read: %v", buf)
	}
	if r.Position() != 2 {
		t.Fatalf("Position() = %d, want 2", r.Position())
	}
}

func TestReadExactShortRead(t *testing.T) {
	src := newTestSource([]byte{0x01, 0x02})
	r := New(src)

	buf := make([]byte, 4)
	err := r.ReadExact(buf)
	if err == nil {
		t.Fatal("expected short read error, got nil")
	}
	sre, ok := err.(*model.ShortReadError)
	if !ok {
		t.Fatalf("expected *model.ShortReadError, got %T", err)
	}
	if sre.Requested != 4 || sre.Delivered != 2 {
		t.Fatalf("unexpected short read counts: %+v", sre)
	}
}

func TestReadUint32LittleEndian(t *testing.T) {
	src := newTestSource([]byte{0x78, 0x56, 0x34, 0x12})
	r := New(src)

	got, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if want := uint32(0x12345678); got != want {
		t.Fatalf("ReadUint32() = %#x, want %#x", got, want)
	}
}

func TestReadInt64Negative(t *testing.T) {
	src := newTestSource([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	r := New(src)

	got, err := r.ReadInt64()
	if err != nil {
		t.Fatalf("ReadInt64 failed: %v", err)
	}
	if got != -1 {
		t.Fatalf("ReadInt64() = %d, want -1", got)
	}
}

func TestSeekToAndEOF(t *testing.T) {
	src := newTestSource([]byte{1, 2, 3, 4})
	r := New(src)

	if err := r.SeekTo(4, io.SeekStart); err != nil {
		t.Fatalf("SeekTo failed: %v", err)
	}
	if !r.EOF() {
		t.Fatal("expected EOF at end of source")
	}

	if err := r.SeekTo(-1, io.SeekStart); err == nil {
		t.Fatal("expected error seeking before start")
	}
	if err := r.SeekTo(1, io.SeekStart); err != nil {
		t.Fatalf("SeekTo failed: %v", err)
	}
	if err := r.SeekTo(10, io.SeekCurrent); err == nil {
		t.Fatal("expected error seeking past end")
	}
}

func TestSkip(t *testing.T) {
	src := newTestSource([]byte{1, 2, 3, 4, 5})
	r := New(src)

	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	b, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if b != 4 {
		t.Fatalf("ReadUint8() = %d, want 4", b)
	}
}

func TestPeekBytesAtDoesNotAdvance(t *testing.T) {
	src := newTestSource([]byte{10, 20, 30, 40})
	r := New(src)

	peeked, err := r.PeekBytesAt(1, 2)
	if err != nil {
		t.Fatalf("PeekBytesAt failed: %v", err)
	}
	if peeked[0] != 20 || peeked[1] != 30 {
		t.Fatalf("unexpected peeked bytes: %v", peeked)
	}
	if r.Position() != 0 {
		t.Fatalf("Position() = %d, want 0 (peek must not advance)", r.Position())
	}
}

func TestReadItemsByteSwap(t *testing.T) {
	src := newTestSource([]byte{0x01, 0x02, 0x03, 0x04})
	r := New(src)

	buf := make([]byte, 4)
	if err := r.ReadItems(buf, 2, 2); err != nil {
		t.Fatalf("ReadItems failed: %v", err)
	}
	if !nativeBigEndian {
		if buf[0] != 0x01 || buf[1] != 0x02 || buf[2] != 0x03 || buf[3] != 0x04 {
			t.Fatalf("unexpected bytes on little-endian host: %v", buf)
		}
	}
}
