// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package zisraw

import (
	"github.com/saferwall/zisraw/internal/decode"
	"github.com/saferwall/zisraw/internal/pyramid"
	"github.com/saferwall/zisraw/model"
)

// indexEntries resolves each decoded directory entry's FilePart to its
// owning Source and inserts it into the Container's pyramid index.
func indexEntries(c *model.Container, entries []decode.DirectoryEntry, filePartSources map[int32]*model.Source) error {
	for i, e := range entries {
		src, ok := filePartSources[e.FilePart]
		if !ok {
			return model.WrapStagef(model.ErrCorruptEntry,
				"directory entry %d references unknown file part %d", i, e.FilePart)
		}
		if _, err := pyramid.Insert(c, e, src, e.FilePosition); err != nil {
			return model.WrapStagef(err, "index directory entry %d", i)
		}
	}
	return nil
}
