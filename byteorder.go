// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import "bytes"

var (
	byteOrderMarkerLittleEndian = []byte("II*\x00")
	byteOrderMarkerBigEndian    = []byte("MM\x00*")
)

// ByteOrder is the byte order of the TIFF block inside an EXIF segment.
// It is determined once per stream and passed along to every decode call.
type ByteOrder uint8

const (
	// LittleEndian is the Intel byte order, marked with "II".
	LittleEndian ByteOrder = iota + 1
	// BigEndian is the Motorola byte order, marked with "MM".
	BigEndian
)

// byteOrderFromMarker maps the 4-byte TIFF header to a byte order.
func byteOrderFromMarker(b []byte) (ByteOrder, bool) {
	switch {
	case bytes.Equal(b, byteOrderMarkerLittleEndian):
		return LittleEndian, true
	case bytes.Equal(b, byteOrderMarkerBigEndian):
		return BigEndian, true
	default:
		return 0, false
	}
}

// Uint decodes b as an unsigned integer.
// b may be anything from 1 to 8 bytes long.
func (o ByteOrder) Uint(b []byte) uint64 {
	var v uint64
	if o == BigEndian {
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	for i, c := range b {
		v |= uint64(c) << (8 * i)
	}
	return v
}

// Uint16 decodes the first 2 bytes of b.
func (o ByteOrder) Uint16(b []byte) uint16 {
	return uint16(o.Uint(b[:2]))
}

// Uint32 decodes the first 4 bytes of b.
func (o ByteOrder) Uint32(b []byte) uint32 {
	return uint32(o.Uint(b[:4]))
}

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "ByteOrder(invalid)"
	}
}
