// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/bep/gpsexif/internal/exiftest"

	qt "github.com/frankban/quicktest"
)

func TestScanDirectory(t *testing.T) {
	c := qt.New(t)

	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		c.Run(order.String(), func(c *qt.C) {
			d := newTestDecoder(exiftest.GPSFixture(order).Bytes())
			block, err := d.walkSegments()
			c.Assert(err, qt.IsNil)

			deferred, err := d.scanDirectory(block)
			c.Assert(err, qt.IsNil)

			// Latitude, longitude, altitude, timestamp and direction do not fit in 4 bytes.
			c.Assert(deferred, qt.HasLen, 5)
			var fields []Field
			for _, de := range deferred {
				fields = append(fields, de.field)
				c.Assert(de.typ, qt.Equals, DatatypeRational)
				c.Assert(de.offset > d.pos, qt.IsTrue)
			}
			c.Assert(fields, qt.DeepEquals, []Field{FieldLatitude, FieldLongitude, FieldAltitude, FieldTimestamp, FieldDirection})
			c.Assert(deferred[0].count, qt.Equals, uint32(3))
			c.Assert(deferred[2].count, qt.Equals, uint32(1))

			// The inline values.
			r := d.builder.build()
			c.Assert(r.Fields(), qt.DeepEquals, []Field{FieldLatitudeRef, FieldLongitudeRef, FieldAltitudeRef, FieldDirectionRef})
			v, _ := r.Get(FieldLongitudeRef)
			c.Assert(v.Any(), qt.Equals, "W")
			v, _ = r.Get(FieldAltitudeRef)
			c.Assert(v.Any(), qt.Equals, int64(0))
		})
	}
}

func TestScanDirectoryNoGPS(t *testing.T) {
	c := qt.New(t)

	b := exiftest.NewBuilder(binary.BigEndian).WithoutGPS().Bytes()
	d := newTestDecoder(b)
	block, err := d.walkSegments()
	c.Assert(err, qt.IsNil)
	deferred, err := d.scanDirectory(block)
	c.Assert(err, qt.IsNil)
	c.Assert(deferred, qt.HasLen, 0)
	// Stopped at the end of the APP1 segment.
	c.Assert(d.pos, qt.Equals, block.end)
}

func TestScanDirectoryPointerAfterIFD0Entries(t *testing.T) {
	c := qt.New(t)

	builder := exiftest.GPSFixture(binary.LittleEndian)
	builder.WithIFD0Entry(builder.Short(0x112, 1)).WithIFD0Entry(builder.Short(0x128, 2))

	r, err := Decode(Options{R: bytes.NewReader(builder.Bytes())})
	c.Assert(err, qt.IsNil)
	c.Assert(r.Len(), qt.Equals, 9)
}

func TestHandleEntrySkips(t *testing.T) {
	c := qt.New(t)

	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	builder := exiftest.NewBuilder(binary.BigEndian).
		// Not one of ours.
		WithEntry(exiftest.ASCII(exiftest.TagSatellites, "05")).
		// Unsupported type.
		WithEntry(shortEntry(exiftest.TagAltitudeRef)).
		// No values.
		WithEntry(exiftest.Entry{Tag: exiftest.TagLatitudeRef, Type: exiftest.TypeASCII, Count: 0}).
		WithEntry(exiftest.ASCII(exiftest.TagDirectionRef, "M")).
		WithRationals(exiftest.TagDirection, exiftest.Rat{Num: 10, Den: 1})

	r, err := Decode(Options{R: bytes.NewReader(builder.Bytes()), Warnf: warnf})
	c.Assert(err, qt.IsNil)
	c.Assert(r.Fields(), qt.DeepEquals, []Field{FieldDirectionRef, FieldDirection})
	c.Assert(warnings, qt.DeepEquals, []string{
		"gpsexif: skipping altitude_ref: unsupported type Datatype(3)",
		"gpsexif: skipping latitude_ref: no values",
	})

	c.Run("Limit", func(c *qt.C) {
		warnings = nil
		r, err := Decode(Options{R: bytes.NewReader(exiftest.GPSFixture(binary.BigEndian).Bytes()), Warnf: warnf, LimitTagSize: 8})
		c.Assert(err, qt.IsNil)
		c.Assert(r.Has(FieldAltitude), qt.IsTrue)
		c.Assert(r.Has(FieldDirection), qt.IsTrue)
		c.Assert(r.Has(FieldLatitude), qt.IsFalse)
		c.Assert(r.Has(FieldTimestamp), qt.IsFalse)
		c.Assert(warnings, qt.HasLen, 3)
		c.Assert(warnings[0], qt.Equals, "gpsexif: skipping latitude: size 24 exceeds limit 8")
	})

	c.Run("ShouldHandleField", func(c *qt.C) {
		r, err := Decode(Options{
			R: bytes.NewReader(exiftest.GPSFixture(binary.BigEndian).Bytes()),
			ShouldHandleField: func(f Field) bool {
				return f == FieldAltitude || f == FieldAltitudeRef
			},
		})
		c.Assert(err, qt.IsNil)
		c.Assert(r.Fields(), qt.DeepEquals, []Field{FieldAltitudeRef, FieldAltitude})
	})
}

func TestResolveDeferred(t *testing.T) {
	c := qt.New(t)

	want, err := Decode(Options{R: bytes.NewReader(exiftest.GPSFixture(binary.BigEndian).Bytes())})
	c.Assert(err, qt.IsNil)

	c.Run("Reversed data", func(c *qt.C) {
		b := exiftest.GPSFixture(binary.BigEndian).WithReversedData().Bytes()
		r := exiftest.NewForwardOnlyReader(b)
		got, err := Decode(Options{R: r})
		c.Assert(err, qt.IsNil)
		c.Assert(got.Map(), qt.DeepEquals, want.Map())
		assertNonDecreasing(c, r.Positions())
	})

	c.Run("Data before IFD", func(c *qt.C) {
		b := exiftest.GPSFixture(binary.BigEndian).WithDataBeforeIFD().Bytes()
		got, err := Decode(Options{R: bytes.NewReader(b)})
		c.Assert(err, qt.ErrorIs, ErrInvalidOffsetOrdering)
		c.Assert(err, qt.ErrorMatches, "latitude: .*")
		c.Assert(got.Len(), qt.Equals, 0)
	})

	c.Run("Duplicate offsets", func(c *qt.C) {
		d := newTestDecoder(make([]byte, 64))
		err := d.resolveDeferred(BigEndian, []deferredEntry{
			{offset: 16, field: FieldDirection, count: 1, typ: DatatypeRational},
			{offset: 16, field: FieldAltitude, count: 1, typ: DatatypeRational},
		})
		c.Assert(err, qt.ErrorIs, ErrInvalidOffsetOrdering)
	})

	c.Run("Sorted", func(c *qt.C) {
		b := make([]byte, 32)
		putRational(b[8:], 3, 2)
		putRational(b[16:], 5, 1)
		d := newTestDecoder(b)
		err := d.resolveDeferred(BigEndian, []deferredEntry{
			{offset: 16, field: FieldDirection, count: 1, typ: DatatypeRational},
			{offset: 8, field: FieldAltitude, count: 1, typ: DatatypeRational},
		})
		c.Assert(err, qt.IsNil)
		r := d.builder.build()
		v, _ := r.Get(FieldAltitude)
		c.Assert(v.Any(), qt.Equals, 1.5)
		v, _ = r.Get(FieldDirection)
		c.Assert(v.Any(), qt.Equals, 5.0)
	})
}

func assertNonDecreasing(c *qt.C, positions []int64) {
	c.Helper()
	c.Assert(len(positions) > 0, qt.IsTrue)
	for i := 1; i < len(positions); i++ {
		c.Assert(positions[i] >= positions[i-1], qt.IsTrue, qt.Commentf("positions: %v", positions))
	}
}

// shortEntry returns a SHORT entry, a type not supported for GPS fields.
func shortEntry(tag uint16) exiftest.Entry {
	return exiftest.Entry{Tag: tag, Type: exiftest.TypeShort, Count: 1, Data: []byte{0, 1}}
}

// putRational writes a rational at the start of b.
func putRational(b []byte, num, den uint32) {
	binary.BigEndian.PutUint32(b[0:4], num)
	binary.BigEndian.PutUint32(b[4:8], den)
}
