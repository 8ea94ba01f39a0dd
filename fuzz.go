// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package zisraw

import (
	"github.com/saferwall/zisraw/internal/decode"
	"github.com/saferwall/zisraw/internal/segment"
	"github.com/saferwall/zisraw/model"
)

// Fuzz walks data as a segment stream and runs every entry decoder it
// recognizes along the way, for go-fuzz-build. Almost every input is
// expected to fail decoding; only a panic is interesting here, so a
// returned error is not itself a failure.
func Fuzz(data []byte) int {
	src := model.NewEmbeddedSource(data, 0, int64(len(data)))
	cur := segment.New(src)

	decoded := 0
	for {
		h, err := cur.Next()
		if err != nil {
			break
		}

		switch h.ID {
		case segment.IDFileHeader:
			if _, err := decode.FileHeader(cur.Reader(), nil); err == nil {
				decoded++
			}
		case segment.IDDirectory:
			if _, err := decode.SubBlockDirectory(cur.Reader(), decode.Options{Lenient: true}, nil); err == nil {
				decoded++
			}
		case segment.IDSubBlock:
			if _, err := decode.SubBlock(cur.Reader(), decode.Options{Lenient: true}, nil); err == nil {
				decoded++
			}
		case segment.IDMetadata:
			if _, err := decode.Metadata(cur.Reader()); err == nil {
				decoded++
			}
		case segment.IDAttachmentDirectory:
			if _, err := decode.AttachmentDirectory(cur.Reader()); err == nil {
				decoded++
			}
		case segment.IDAttachment:
			if _, err := decode.Attachment(cur.Reader()); err == nil {
				decoded++
			}
		}

		if err := cur.Skip(h); err != nil {
			break
		}
	}

	if decoded > 0 {
		return 1
	}
	return 0
}
