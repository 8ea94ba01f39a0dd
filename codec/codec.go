// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package codec defines the boundary between this module and an external
// pixel decoder: a TileDecoder turns a tile's raw compressed payload into
// decoded samples, keyed by its compression kind. No concrete decoder
// lives here; decoding JPEG, JPEG-XR or LZW payloads is explicitly out of
// scope (see SPEC_FULL.md's Non-goals), but a caller that wants it can
// register one without reaching into this module's internals.
package codec

import "github.com/saferwall/zisraw/model"

// DecodedTile is the result of decoding one tile's raw payload: its pixel
// dimensions, sample layout, and the decoded sample bytes in row-major
// order. What "decoded" means (packing, byte order, color model) is a
// contract between a TileDecoder implementation and its caller; this
// package does not constrain it further.
type DecodedTile struct {
	Width     int
	Height    int
	PixelType model.PixelType
	Pixels    []byte
}

// TileDecoder decodes one tile's raw compressed payload (as materialized
// by Container.LoadTile) into samples.
type TileDecoder interface {
	Decode(raw []byte, pixelType model.PixelType, width, height int) (DecodedTile, error)
}

// Registry maps a Compression kind to the TileDecoder that handles it.
// Zero value is ready to use; it starts empty.
type Registry struct {
	decoders map[model.Compression]TileDecoder
}

// Register associates a TileDecoder with a compression kind, replacing any
// previously registered decoder for that kind.
func (r *Registry) Register(kind model.Compression, dec TileDecoder) {
	if r.decoders == nil {
		r.decoders = make(map[model.Compression]TileDecoder)
	}
	r.decoders[kind] = dec
}

// Lookup returns the TileDecoder registered for kind, and whether one was
// found.
func (r *Registry) Lookup(kind model.Compression) (TileDecoder, bool) {
	dec, ok := r.decoders[kind]
	return dec, ok
}
