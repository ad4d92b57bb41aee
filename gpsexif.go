// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package gpsexif reads the GPS position, altitude, direction and time
// from the EXIF metadata of a JPEG image.
//
// The stream is read once, forward only: values stored outside the GPS
// directory are collected and read in offset order afterwards, so the
// reader never needs to move backwards. A plain io.Reader works; if it
// also implements io.Seeker, forward skips use Seek.
package gpsexif

import (
	"fmt"
	"io"
)

const defaultLimitTagSize = 10000

// Options contains the options for the Decode function.
type Options struct {
	// The Reader (typically a *os.File) to read the JPEG from.
	// It must be positioned at the start of the image.
	R io.Reader

	// If set, the decoder skips the fields for which this function returns false.
	ShouldHandleField func(f Field) bool

	// Warnf will be called for each warning, e.g. a skipped entry.
	Warnf func(string, ...any)

	// LimitTagSize is the maximum size in bytes of a field value to read.
	// Values larger than this will be skipped with a warning.
	// Default value is 10000.
	LimitTagSize uint32
}

// Decode reads the GPS fields from the JPEG in opts.R.
// A JPEG without GPS data gives an empty Record and no error.
// On error, the Record is always empty.
func Decode(opts Options) (rec Record, err error) {
	if opts.R == nil {
		return rec, fmt.Errorf("no reader provided")
	}
	if opts.ShouldHandleField == nil {
		opts.ShouldHandleField = func(Field) bool { return true }
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.LimitTagSize == 0 {
		opts.LimitTagSize = defaultLimitTagSize
	}

	d := &decoder{
		streamReader: newStreamReader(opts.R),
		opts:         opts,
		builder:      newRecordBuilder(),
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rec = Record{}
		if r == errStop {
			err = d.readErr
			return
		}
		if errp, ok := r.(error); ok {
			err = errp
		} else {
			err = fmt.Errorf("unknown panic: %v", r)
		}
	}()

	return d.decode()
}

type decoder struct {
	*streamReader
	opts    Options
	builder *recordBuilder
}

func (d *decoder) decode() (Record, error) {
	block, err := d.walkSegments()
	if err != nil {
		return Record{}, err
	}

	deferred, err := d.scanDirectory(block)
	if err != nil {
		return Record{}, err
	}

	if err := d.resolveDeferred(block.order, deferred); err != nil {
		return Record{}, err
	}

	return d.builder.build(), nil
}
