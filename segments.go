// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"bytes"
	"fmt"
)

// exifBlock describes the TIFF structure inside the APP1 segment.
type exifBlock struct {
	order ByteOrder
	// Absolute position of the TIFF header.
	// All offsets inside the block are relative to this.
	origin int64
	// Absolute position of the end of the APP1 segment.
	end int64
}

// walkSegments consumes the JPEG segments up to and including the TIFF header.
func (d *decoder) walkSegments() (exifBlock, error) {
	var block exifBlock

	// JPEG markers and segment lengths are always big endian.
	if soi := d.read2(BigEndian); soi != markerSOI {
		return block, fmt.Errorf("%w: got %#04x", ErrContainerFormat, soi)
	}

	marker := d.read2(BigEndian)

	if marker == markerApp0 {
		length, err := d.segmentLength(marker)
		if err != nil {
			return block, err
		}
		d.skip(length)
		marker = d.read2(BigEndian)
	}

	if marker != markerApp1 {
		return block, fmt.Errorf("%w: got marker %#04x at offset %d", ErrMissingExifBlock, marker, d.pos-2)
	}

	length, err := d.segmentLength(marker)
	if err != nil {
		return block, err
	}
	block.end = d.pos + length

	if b := d.readBytesVolatile(len(exifHeader)); !bytes.Equal(b, exifHeader) {
		d.opts.Warnf("gpsexif: unexpected APP1 header %q at offset %d", b, d.pos-int64(len(exifHeader)))
	}

	block.origin = d.pos

	b := d.readBytesVolatile(4)
	order, ok := byteOrderFromMarker(b)
	if !ok {
		return block, fmt.Errorf("%w: %q at offset %d", ErrUnknownByteOrder, b, block.origin)
	}
	block.order = order

	return block, nil
}

// segmentLength reads the 16-bit length of a segment. The value includes the 2 bytes for the
// length itself, so we subtract 2 to get the number of remaining bytes.
func (d *decoder) segmentLength(marker uint16) (int64, error) {
	length := d.read2(BigEndian)
	if length < 2 {
		return 0, fmt.Errorf("%w: segment %#04x has invalid length %d", ErrContainerFormat, marker, length)
	}
	return int64(length - 2), nil
}
