// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package model

// MetadataRecord describes one source's Metadata segment: the size of its
// XML body and any attachment body, plus the file offset at which the XML
// body starts. The XML bytes themselves are materialized lazily.
type MetadataRecord struct {
	// Source is a non-owning back-reference to the owning Source.
	Source *Source

	// XMLOffset is the byte offset, within Source, at which the XML body
	// begins.
	XMLOffset int64

	// XMLSize is the length in bytes of the XML body.
	XMLSize int32

	// AttachmentOffset is the byte offset, within Source, at which the
	// attachment body begins.
	AttachmentOffset int64

	// AttachmentSize is the length in bytes of the attachment body.
	AttachmentSize int32

	xml []byte
}

// XML returns the materialized XML buffer, if loaded.
func (m *MetadataRecord) XML() []byte { return m.xml }

// SetXML stores the materialized XML buffer.
func (m *MetadataRecord) SetXML(b []byte) { m.xml = b }

// ReleaseXML drops the cached XML buffer.
func (m *MetadataRecord) ReleaseXML() { m.xml = nil }
