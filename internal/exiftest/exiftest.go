// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package exiftest builds JPEG byte streams with an EXIF GPS block for tests.
package exiftest

import (
	"encoding/binary"
)

// EXIF data types.
const (
	TypeByte     uint16 = 1
	TypeASCII    uint16 = 2
	TypeShort    uint16 = 3
	TypeLong     uint16 = 4
	TypeRational uint16 = 5
)

// GPS IFD tags.
const (
	TagLatitudeRef  uint16 = 0x1
	TagLatitude     uint16 = 0x2
	TagLongitudeRef uint16 = 0x3
	TagLongitude    uint16 = 0x4
	TagAltitudeRef  uint16 = 0x5
	TagAltitude     uint16 = 0x6
	TagTimestamp    uint16 = 0x7
	TagSatellites   uint16 = 0x8
	TagDirectionRef uint16 = 0x10
	TagDirection    uint16 = 0x11

	tagOrientation uint16 = 0x112
	tagGPSPointer  uint16 = 0x8825
)

type endianness interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Entry is a directory entry. Data holds the encoded value,
// which is written inline if it is 4 bytes or less.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// Rat is a rational number as stored in EXIF.
type Rat struct {
	Num, Den uint32
}

// ASCII returns an ASCII entry with a terminating null byte.
func ASCII(tag uint16, s string) Entry {
	b := append([]byte(s), 0)
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(b)), Data: b}
}

// Bytes returns a BYTE entry.
func Bytes(tag uint16, values ...byte) Entry {
	return Entry{Tag: tag, Type: TypeByte, Count: uint32(len(values)), Data: append([]byte(nil), values...)}
}

// Builder builds a JPEG stream with APP1 EXIF data
// containing IFD0 with a GPS IFD pointer and the GPS IFD.
type Builder struct {
	order endianness

	app0           bool
	noGPS          bool
	reversedData   bool
	dataBeforeIFD  bool
	byteOrderBytes []byte
	soi            []byte

	ifd0 []Entry
	gps  []Entry
}

// NewBuilder creates a new Builder writing multi-byte values in the given byte order.
func NewBuilder(order binary.ByteOrder) *Builder {
	o, ok := order.(endianness)
	if !ok {
		panic("byte order must implement binary.AppendByteOrder")
	}
	return &Builder{order: o}
}

// WithAPP0 adds a JFIF APP0 segment before the APP1 segment.
func (b *Builder) WithAPP0() *Builder {
	b.app0 = true
	return b
}

// WithoutGPS leaves out the GPS IFD and its pointer.
func (b *Builder) WithoutGPS() *Builder {
	b.noGPS = true
	return b
}

// WithReversedData writes the values that do not fit in their entries
// in reverse entry order.
func (b *Builder) WithReversedData() *Builder {
	b.reversedData = true
	return b
}

// WithDataBeforeIFD writes the values that do not fit in their entries
// before the GPS IFD.
func (b *Builder) WithDataBeforeIFD() *Builder {
	b.dataBeforeIFD = true
	return b
}

// WithByteOrderMarker overrides the 4 byte TIFF header.
func (b *Builder) WithByteOrderMarker(marker []byte) *Builder {
	b.byteOrderBytes = marker
	return b
}

// WithSOI overrides the start-of-image marker.
func (b *Builder) WithSOI(soi []byte) *Builder {
	b.soi = soi
	return b
}

// WithIFD0Entry adds an entry to IFD0, before the GPS pointer.
func (b *Builder) WithIFD0Entry(e Entry) *Builder {
	b.ifd0 = append(b.ifd0, e)
	return b
}

// WithEntry adds an entry to the GPS IFD.
func (b *Builder) WithEntry(e Entry) *Builder {
	b.gps = append(b.gps, e)
	return b
}

// WithRationals adds a RATIONAL entry to the GPS IFD.
func (b *Builder) WithRationals(tag uint16, rats ...Rat) *Builder {
	var data []byte
	for _, r := range rats {
		data = b.order.AppendUint32(data, r.Num)
		data = b.order.AppendUint32(data, r.Den)
	}
	return b.WithEntry(Entry{Tag: tag, Type: TypeRational, Count: uint32(len(rats)), Data: data})
}

// Short returns a SHORT entry encoded in the Builder's byte order.
func (b *Builder) Short(tag uint16, v uint16) Entry {
	return Entry{Tag: tag, Type: TypeShort, Count: 1, Data: b.order.AppendUint16(nil, v)}
}

// Bytes returns the complete JPEG stream.
func (b *Builder) Bytes() []byte {
	tiff := b.tiff()

	var out []byte
	if b.soi != nil {
		out = append(out, b.soi...)
	} else {
		out = append(out, 0xff, 0xd8)
	}

	if b.app0 {
		jfif := []byte{'J', 'F', 'I', 'F', 0, 1, 1, 0, 0, 1, 0, 1, 0, 0}
		out = append(out, 0xff, 0xe0)
		out = binary.BigEndian.AppendUint16(out, uint16(len(jfif)+2))
		out = append(out, jfif...)
	}

	out = append(out, 0xff, 0xe1)
	out = binary.BigEndian.AppendUint16(out, uint16(2+6+len(tiff)))
	out = append(out, "Exif\x00\x00"...)
	out = append(out, tiff...)

	// A quantization table segment and EOI, so the stream does not end with the EXIF block.
	out = append(out, 0xff, 0xdb, 0x00, 0x04, 0x00, 0x00)
	out = append(out, 0xff, 0xd9)

	return out
}

func (b *Builder) tiff() []byte {
	const headerSize = 8

	ifd0 := append([]Entry(nil), b.ifd0...)
	if !b.noGPS {
		ifd0 = append(ifd0, Entry{Tag: tagGPSPointer, Type: TypeLong, Count: 1})
	}

	ifd0Size := dirSize(len(ifd0))
	gpsStart := uint32(headerSize + ifd0Size)

	// Values that do not fit in their entries, in entry order.
	var external []int
	var dataSize uint32
	for i, e := range b.gps {
		if len(e.Data) > 4 {
			external = append(external, i)
			dataSize += uint32(len(e.Data))
		}
	}
	if b.reversedData {
		for i, j := 0, len(external)-1; i < j; i, j = i+1, j-1 {
			external[i], external[j] = external[j], external[i]
		}
	}

	gpsIFDOffset := gpsStart
	dataStart := gpsStart + uint32(dirSize(len(b.gps)))
	if b.dataBeforeIFD {
		dataStart = gpsStart
		gpsIFDOffset = gpsStart + dataSize
	}

	offsets := make(map[int]uint32)
	next := dataStart
	for _, i := range external {
		offsets[i] = next
		next += uint32(len(b.gps[i].Data))
	}

	var out []byte
	if b.byteOrderBytes != nil {
		out = append(out, b.byteOrderBytes...)
	} else if b.order.String() == binary.BigEndian.String() {
		out = append(out, 'M', 'M', 0, '*')
	} else {
		out = append(out, 'I', 'I', '*', 0)
	}
	out = b.order.AppendUint32(out, headerSize)

	for i := range ifd0 {
		if ifd0[i].Tag == tagGPSPointer {
			ifd0[i].Data = b.order.AppendUint32(nil, gpsIFDOffset)
		}
	}
	out = b.appendDir(out, ifd0, nil)

	gpsDir := b.appendDir(nil, b.gps, offsets)
	var data []byte
	for _, i := range external {
		data = append(data, b.gps[i].Data...)
	}

	if b.noGPS {
		return out
	}
	if b.dataBeforeIFD {
		out = append(out, data...)
		out = append(out, gpsDir...)
	} else {
		out = append(out, gpsDir...)
		out = append(out, data...)
	}

	return out
}

func dirSize(n int) int {
	return 2 + n*12 + 4
}

func (b *Builder) appendDir(out []byte, entries []Entry, offsets map[int]uint32) []byte {
	out = b.order.AppendUint16(out, uint16(len(entries)))
	for i, e := range entries {
		out = b.order.AppendUint16(out, e.Tag)
		out = b.order.AppendUint16(out, e.Type)
		out = b.order.AppendUint32(out, e.Count)
		if len(e.Data) > 4 {
			out = b.order.AppendUint32(out, offsets[i])
			continue
		}
		var v [4]byte
		copy(v[:], e.Data)
		out = append(out, v[:]...)
	}
	// No next IFD.
	out = b.order.AppendUint32(out, 0)
	return out
}

// GPSFixture returns a JPEG with a complete GPS IFD:
// 37°25'19.6716" N, 122°5'2.0796" W, 10.465 m above sea level,
// image direction 60.588° true north, time 13:00:20.
func GPSFixture(order binary.ByteOrder) *Builder {
	return NewBuilder(order).
		WithEntry(ASCII(TagLatitudeRef, "N")).
		WithRationals(TagLatitude, Rat{37, 1}, Rat{25, 1}, Rat{196716, 10000}).
		WithEntry(ASCII(TagLongitudeRef, "W")).
		WithRationals(TagLongitude, Rat{122, 1}, Rat{5, 1}, Rat{20796, 10000}).
		WithEntry(Bytes(TagAltitudeRef, 0)).
		WithRationals(TagAltitude, Rat{10465, 1000}).
		WithRationals(TagTimestamp, Rat{13, 1}, Rat{0, 1}, Rat{20, 1}).
		WithEntry(ASCII(TagDirectionRef, "T")).
		WithRationals(TagDirection, Rat{60588, 1000})
}
