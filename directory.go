// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

// rawEntry is a directory entry as stored in the stream.
type rawEntry struct {
	tagID uint16
	typ   Datatype
	count uint32
	// The value itself if it fits, otherwise an offset relative to the TIFF header.
	value [4]byte
}

// deferredEntry is a value stored outside the directory,
// to be read when the stream reaches offset.
type deferredEntry struct {
	offset int64
	field  Field
	count  uint32
	typ    Datatype
}

// scanDirectory finds the GPS IFD and decodes its inline values.
// Values that do not fit in an entry are returned for later resolution.
func (d *decoder) scanDirectory(block exifBlock) ([]deferredEntry, error) {
	if !d.findGPSPointer(block) {
		// No GPS data.
		return nil, nil
	}

	// Skip the data type and count, the pointer is always a single LONG.
	d.skip(6)

	offset := d.read4(block.order)
	if err := d.seekTo(block.origin + int64(offset)); err != nil {
		return nil, err
	}

	numEntries := d.read2(block.order)

	var deferred []deferredEntry
	for i := 0; i < int(numEntries); i++ {
		entry := d.readEntry(block.order)
		if de, ok := d.handleEntry(block, entry); ok {
			deferred = append(deferred, de)
		}
	}

	return deferred, nil
}

// findGPSPointer reads 2 byte windows until the GPS IFD pointer tag
// is found or the end of the EXIF block is reached.
func (d *decoder) findGPSPointer(block exifBlock) bool {
	for d.pos+2 <= block.end {
		if d.read2(block.order) == gpsPointer {
			return true
		}
	}
	return false
}

// An entry is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for a pointer to another location where the data may be found
func (d *decoder) readEntry(order ByteOrder) rawEntry {
	b := d.readBytesVolatile(entrySize)
	e := rawEntry{
		tagID: order.Uint16(b[0:2]),
		typ:   Datatype(order.Uint16(b[2:4])),
		count: order.Uint32(b[4:8]),
	}
	copy(e.value[:], b[8:12])
	return e
}

// handleEntry stores the value of e if it is inline.
// It returns true if the value must be read later.
func (d *decoder) handleEntry(block exifBlock, e rawEntry) (deferredEntry, bool) {
	field, ok := fieldByTag(e.tagID)
	if !ok || !d.opts.ShouldHandleField(field) {
		return deferredEntry{}, false
	}

	unit, ok := e.typ.unitSize()
	if !ok {
		d.opts.Warnf("gpsexif: skipping %s: unsupported type %s", field, e.typ)
		return deferredEntry{}, false
	}

	if e.count == 0 {
		d.opts.Warnf("gpsexif: skipping %s: no values", field)
		return deferredEntry{}, false
	}

	valLen := uint64(unit) * uint64(e.count)
	if valLen > uint64(d.opts.LimitTagSize) {
		d.opts.Warnf("gpsexif: skipping %s: size %d exceeds limit %d", field, valLen, d.opts.LimitTagSize)
		return deferredEntry{}, false
	}

	if valLen <= 4 {
		d.builder.set(field, decodeValue(block.order, e.typ, e.count, e.value[:valLen]))
		return deferredEntry{}, false
	}

	return deferredEntry{
		offset: block.origin + int64(block.order.Uint32(e.value[:])),
		field:  field,
		count:  e.count,
		typ:    e.typ,
	}, true
}
