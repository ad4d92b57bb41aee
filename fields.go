// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import "fmt"

const (
	markerSOI  = 0xffd8
	markerApp0 = 0xffe0
	markerApp1 = 0xffe1

	// The GPSInfo IFD pointer in IFD0.
	gpsPointer = 0x8825

	// Size of an IFD entry, in bytes.
	entrySize = 12
)

var exifHeader = []byte("Exif\x00\x00")

// Field is one of the GPS fields this package decodes.
// The value is the tag ID in the GPS IFD.
type Field uint16

const (
	FieldLatitudeRef  Field = 0x1
	FieldLatitude     Field = 0x2
	FieldLongitudeRef Field = 0x3
	FieldLongitude    Field = 0x4
	FieldAltitudeRef  Field = 0x5
	FieldAltitude     Field = 0x6
	FieldTimestamp    Field = 0x7
	FieldDirectionRef Field = 0x10
	FieldDirection    Field = 0x11
)

// Fields holds all the supported fields in tag order.
var Fields = []Field{
	FieldLatitudeRef,
	FieldLatitude,
	FieldLongitudeRef,
	FieldLongitude,
	FieldAltitudeRef,
	FieldAltitude,
	FieldTimestamp,
	FieldDirectionRef,
	FieldDirection,
}

type fieldNames struct {
	name     string
	exifName string
}

var fieldsGPS = map[Field]fieldNames{
	FieldLatitudeRef:  {"latitude_ref", "GPSLatitudeRef"},
	FieldLatitude:     {"latitude", "GPSLatitude"},
	FieldLongitudeRef: {"longitude_ref", "GPSLongitudeRef"},
	FieldLongitude:    {"longitude", "GPSLongitude"},
	FieldAltitudeRef:  {"altitude_ref", "GPSAltitudeRef"},
	FieldAltitude:     {"altitude", "GPSAltitude"},
	FieldTimestamp:    {"timestamp", "GPSTimeStamp"},
	FieldDirectionRef: {"direction_ref", "GPSImgDirectionRef"},
	FieldDirection:    {"direction", "GPSImgDirection"},
}

// fieldByTag returns the field for the given GPS IFD tag ID.
func fieldByTag(tagID uint16) (Field, bool) {
	f := Field(tagID)
	_, ok := fieldsGPS[f]
	return f, ok
}

// FieldByName returns the field with the given Name, e.g. "latitude_ref".
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if fieldsGPS[f].name == name {
			return f, true
		}
	}
	return 0, false
}

// Name returns the snake case name of the field, e.g. "latitude_ref".
func (f Field) Name() string {
	if n, ok := fieldsGPS[f]; ok {
		return n.name
	}
	return fmt.Sprintf("field_0x%x", uint16(f))
}

// ExifName returns the EXIF tag name of the field, e.g. "GPSLatitudeRef".
func (f Field) ExifName() string {
	if n, ok := fieldsGPS[f]; ok {
		return n.exifName
	}
	return fmt.Sprintf("UnknownTag_0x%x", uint16(f))
}

func (f Field) String() string {
	return f.Name()
}

// Datatype is the EXIF data type of a directory entry.
//
//go:generate stringer -type=Datatype
type Datatype uint16

const (
	DatatypeByte     Datatype = 1
	DatatypeASCII    Datatype = 2
	DatatypeRational Datatype = 5
)

// Size in bytes of each supported type.
var datatypeSize = map[Datatype]uint32{
	DatatypeByte:     1,
	DatatypeASCII:    1,
	DatatypeRational: 8,
}

// unitSize returns the size of one value of type t.
// The second return value is false for types not supported by this package.
func (t Datatype) unitSize() (uint32, bool) {
	n, ok := datatypeSize[t]
	return n, ok
}
