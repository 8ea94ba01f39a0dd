// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package source implements the Source Set: discovering the sibling part
// files of a multi-part ZISRAW container, per spec section 4.D. A CZI
// producer that splits one logical document across several files names the
// master "<base>.czi" and each additional part "<base> (i).czi", i starting
// at 1, sitting in the same directory as the master.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saferwall/zisraw/model"
)

// Discover opens masterPath and every sibling part file the naming
// convention predicts, in file-part order (master first, at index 0). It
// stops at the first missing index; gaps in the numbering are not an
// error; part files beyond the first gap are simply not part of the set.
func Discover(masterPath string) ([]*model.Source, error) {
	master, err := model.OpenFileSource(masterPath)
	if err != nil {
		return nil, model.WrapStagef(err, "open master source %q", masterPath)
	}
	sources := []*model.Source{master}

	dir := filepath.Dir(masterPath)
	base := strings.TrimSuffix(filepath.Base(masterPath), filepath.Ext(masterPath))
	ext := filepath.Ext(masterPath)

	for i := 1; ; i++ {
		partPath := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		info, statErr := os.Stat(partPath)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				break
			}
			closeAll(sources)
			return nil, model.WrapStagef(model.ErrIO, "stat part file %q: %v", partPath, statErr)
		}
		if info.IsDir() {
			break
		}

		part, err := model.OpenFileSource(partPath)
		if err != nil {
			closeAll(sources)
			return nil, model.WrapStagef(err, "open part source %d (%q)", i, partPath)
		}
		sources = append(sources, part)
	}

	return sources, nil
}

func closeAll(sources []*model.Source) {
	for _, s := range sources {
		_ = s.Close()
	}
}
