// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

import (
	"github.com/saferwall/zisraw/internal/log"
)

// Container is the root handle reconstructed from one or more ZISRAW part
// files. It is created empty, populated during parsing, and then behaves
// as read-only. Ownership is strict: Close releases every owned Source,
// FileHeader, Level (with its tile map), MetadataRecord and
// AttachmentRecord. Back-references (Tile->Level, Level->Container,
// FileHeader->Source, Tile->Source) are non-owning and must never be
// followed after Close.
type Container struct {
	Sources         []*Source
	FileHeaders     []*FileHeader
	Levels          []*Level
	MetadataRecords []*MetadataRecord

	// Attachments maps a content GUID to its AttachmentRecord. Populated
	// lazily, on first access, per the design's resolution of the source
	// spec's open question about whether attachment-directory parsing is
	// required for basic querying.
	Attachments map[[16]byte]*AttachmentRecord

	// Anomalies accumulates non-fatal oddities observed during parsing;
	// it never causes Open to fail.
	Anomalies []string

	// Capability flags, derived once per spec as every tile is indexed.
	MultiView         bool
	MultiPhase        bool
	MultiBlock        bool
	MultiIllumination bool
	MultiScene        bool
	MultiRotation     bool
	MultiTime         bool
	MultiZSlice       bool
	MultiChannel      bool

	HasDataUncompressed bool
	HasDataJPEG         bool
	HasDataJPEGXR       bool
	HasDataLZW          bool
	HasCameraSpec       bool
	HasSystemSpec       bool

	// AttachmentDirDecoded tracks whether the lazy attachment-directory
	// parse has already run.
	AttachmentDirDecoded bool

	Logger *log.Helper
}

// New returns an empty Container ready for parsing, with a default logger
// unless logger is supplied.
func New(logger *log.Helper) *Container {
	if logger == nil {
		logger = log.NewDefaultHelper()
	}
	return &Container{
		Attachments: make(map[[16]byte]*AttachmentRecord),
		Logger:      logger,
	}
}

// LevelByTriple finds the Level identified by (pyramid, ssX, ssY), or nil.
func (c *Container) LevelByTriple(pyramid PyramidKind, ssX, ssY int32) *Level {
	for _, l := range c.Levels {
		if l.Pyramid == pyramid && l.SsX == ssX && l.SsY == ssY {
			return l
		}
	}
	return nil
}

// AddLevel creates a new, owned Level and returns it. The level identified
// by (PyramidNone, 1, 1) — full resolution, no sub-sampling — is pinned to
// index 0 whenever it exists, regardless of the order in which a source's
// directory entries happened to introduce each level; every other level is
// simply appended in discovery order.
func (c *Container) AddLevel(pyramid PyramidKind, ssX, ssY int32) *Level {
	l := newLevel(c, pyramid, ssX, ssY)
	if pyramid == PyramidNone && ssX == 1 && ssY == 1 {
		c.Levels = append([]*Level{l}, c.Levels...)
		return l
	}
	c.Levels = append(c.Levels, l)
	return l
}

// updateCapabilities folds one tile's dimensions and compression into the
// Container's capability flags. A capability is set the first time any
// tile is observed with a dimension whose size > 1 for the mapped axis, or
// whose compression matches the corresponding kind.
func (c *Container) updateCapabilities(t *Tile) {
	for axis, dim := range t.Dims {
		if dim.Size <= 1 {
			continue
		}
		switch axis {
		case AxisView:
			c.MultiView = true
		case AxisPhase:
			c.MultiPhase = true
		case AxisBlock:
			c.MultiBlock = true
		case AxisIllumination:
			c.MultiIllumination = true
		case AxisScene:
			c.MultiScene = true
		case AxisRotation:
			c.MultiRotation = true
		case AxisTime:
			c.MultiTime = true
		case AxisZSlice:
			c.MultiZSlice = true
		case AxisChannel:
			c.MultiChannel = true
		}
	}
	switch t.Compression {
	case CompressionUncompressed:
		c.HasDataUncompressed = true
	case CompressionJPEG:
		c.HasDataJPEG = true
	case CompressionJPEGXR:
		c.HasDataJPEGXR = true
	case CompressionLZW:
		c.HasDataLZW = true
	case CompressionCameraSpec:
		c.HasCameraSpec = true
	case CompressionSystemSpec:
		c.HasSystemSpec = true
	}
}

// ObserveTile updates capability flags for a tile that has just been
// inserted into its level by the pyramid indexer.
func (c *Container) ObserveTile(t *Tile) {
	c.updateCapabilities(t)
}

// AddAnomaly records a non-fatal oddity, mirroring pe.FileInfo.Anomalies.
func (c *Container) AddAnomaly(msg string) {
	c.Anomalies = append(c.Anomalies, msg)
}

// Close releases every owned Source, freeing their mappings and file
// handles. It is idempotent.
func (c *Container) Close() error {
	var firstErr error
	for _, s := range c.Sources {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.Sources = nil
	c.FileHeaders = nil
	c.Levels = nil
	c.MetadataRecords = nil
	c.Attachments = nil
	return firstErr
}
