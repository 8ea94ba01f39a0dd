// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package zisraw reads ZISRAW/CZI whole-slide microscopy container files:
// locating and indexing their tiles, levels, metadata and attachments
// without decoding pixel payloads or interpreting metadata XML. Open a
// Container with Open, query it, then Close it.
package zisraw

import (
	"io"
	"os"

	"github.com/saferwall/zisraw/internal/decode"
	"github.com/saferwall/zisraw/internal/log"
	"github.com/saferwall/zisraw/internal/segment"
	"github.com/saferwall/zisraw/internal/source"
	"github.com/saferwall/zisraw/model"
)

// Options controls Open's behavior, mirroring pe.Options's shape: a small
// struct of feature toggles plus an injectable logger.
type Options struct {
	// Lenient, when true, drops an unrecognized dimension identifier
	// (recording an anomaly) instead of failing its directory entry with
	// ErrCorruptEntry.
	Lenient bool

	// MaxEntries is a row bound carried for diagnostics callers; 0 means
	// unbounded. Open does not read it, and package diag takes its own
	// bound through diag.Options.
	MaxEntries int

	// Logger overrides the default stdout logger filtered at error level.
	Logger log.Logger
}

func (o *Options) orDefaults() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

// IsZisraw reports whether the file at path begins with a ZISRAWFILE
// segment identifier, without otherwise parsing it.
func IsZisraw(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, model.WrapStage("open", err)
	}
	defer f.Close()

	var idBytes [16]byte
	if _, err := io.ReadFull(f, idBytes[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return false, nil
		}
		return false, model.WrapStage("read segment identifier", err)
	}

	return segment.ID(idBytes) == segment.IDFileHeader, nil
}

// Open discovers the Source Set rooted at masterPath, decodes every
// source's FileHeader and SubBlockDirectory, and indexes every tile into
// its pyramid Level. AttachmentDirectory segments are located but not
// decoded; decoding happens lazily on first access, per Options.Lenient's
// sibling Open Question resolution (see DESIGN.md).
func Open(masterPath string, opts *Options) (*Container, error) {
	sources, err := source.Discover(masterPath)
	if err != nil {
		return nil, model.WrapStage("discover source set", err)
	}
	return openSources(sources, opts)
}

// openEmbedded indexes a single, already-carved-out Source as its own
// Container, for an attachment whose ContentType identifies it as an
// embedded ZISRAW stream (DecodeAssociated's "returns an embedded
// Container" contract).
func openEmbedded(src *model.Source, opts *Options) (*Container, error) {
	return openSources([]*model.Source{src}, opts)
}

// openSources indexes an already-discovered Source Set: every source's
// FileHeader, then every source's SubBlockDirectory and Metadata segments.
func openSources(sources []*model.Source, opts *Options) (*Container, error) {
	opts = opts.orDefaults()

	var logger *log.Helper
	if opts.Logger != nil {
		logger = log.NewHelper(opts.Logger)
	} else {
		logger = log.NewDefaultHelper()
	}

	c := model.New(logger)
	c.Sources = sources

	decOpts := decode.Options{Lenient: opts.Lenient}

	if err := parseFileHeaders(c, sources); err != nil {
		_ = c.Close()
		return nil, err
	}

	filePartSources := make(map[int32]*model.Source, len(sources))
	for i, fh := range c.FileHeaders {
		filePartSources[fh.FilePart] = sources[i]
	}

	for i, src := range sources {
		if err := parseSourceBody(c, src, decOpts, filePartSources); err != nil {
			_ = c.Close()
			return nil, model.WrapStagef(err, "decode source %d", i)
		}
	}

	return &Container{Container: c}, nil
}

// parseFileHeaders reads just the leading ZISRAWFILE segment of every
// source, so every source's declared FilePart is known before any
// SubBlockDirectory entry (which may point at a sibling part's tile data)
// is resolved.
func parseFileHeaders(c *model.Container, sources []*model.Source) error {
	for i, src := range sources {
		cur := segment.New(src)
		h, err := cur.Next()
		if err != nil {
			if err == io.EOF {
				return model.WrapStagef(model.ErrNotZisraw, "source %d has no segments", i)
			}
			return model.WrapStagef(err, "read first segment of source %d", i)
		}
		if h.ID != segment.IDFileHeader {
			if i == 0 {
				return model.WrapStagef(model.ErrNotZisraw, "source 0 begins with %q, not ZISRAWFILE", h.ID.String())
			}
			return model.WrapStagef(model.ErrCorruptSegment, "source %d begins with %q, not ZISRAWFILE", i, h.ID.String())
		}

		fh, err := decode.FileHeader(cur.Reader(), src)
		if err != nil {
			return model.WrapStagef(err, "decode file header of source %d", i)
		}
		src.FilePart = fh.FilePart
		c.FileHeaders = append(c.FileHeaders, fh)
	}
	return nil
}

// parseSourceBody walks every segment of src once, indexing SubBlockDirectory
// entries and Metadata envelopes. Attachment and AttachmentDirectory
// segments are skipped here; their locations were already captured on each
// source's FileHeader and are resolved lazily by ensureAttachments.
func parseSourceBody(c *model.Container, src *model.Source, decOpts decode.Options, filePartSources map[int32]*model.Source) error {
	cur := segment.New(src)

	for {
		h, err := cur.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return model.WrapStage("read segment", err)
		}

		switch h.ID {
		case segment.IDFileHeader:
			// Already decoded by parseFileHeaders; skip its body.
		case segment.IDDirectory:
			entries, err := decode.SubBlockDirectory(cur.Reader(), decOpts, c.AddAnomaly)
			if err != nil {
				return model.WrapStage("decode subblock directory", err)
			}
			if err := indexEntries(c, entries, filePartSources); err != nil {
				return err
			}
		case segment.IDMetadata:
			env, err := decode.Metadata(cur.Reader())
			if err != nil {
				return model.WrapStage("decode metadata envelope", err)
			}
			rec := &model.MetadataRecord{
				Source:           src,
				XMLOffset:        cur.Reader().Position(),
				XMLSize:          env.XMLSize,
				AttachmentOffset: cur.Reader().Position() + int64(env.XMLSize),
				AttachmentSize:   env.AttachmentSize,
			}
			c.MetadataRecords = append(c.MetadataRecords, rec)
		case segment.IDAttachmentDirectory, segment.IDAttachment, segment.IDSubBlock, segment.IDDeleted:
			// Handled lazily (attachments) or addressed directly by a
			// directory entry's file position (subblocks); nothing to do
			// on a plain sequential walk.
		}

		if err := cur.Skip(h); err != nil {
			return model.WrapStage("skip segment", err)
		}
	}
}
