// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerFormat is returned when the stream does not start with a JPEG start-of-image marker.
	ErrContainerFormat = errors.New("gpsexif: missing JPEG start-of-image marker")

	// ErrMissingExifBlock is returned when there is no APP1 segment where one is expected.
	ErrMissingExifBlock = errors.New("gpsexif: missing APP1 segment")

	// ErrUnknownByteOrder is returned when the TIFF header does not start with "II*\x00" or "MM\x00*".
	ErrUnknownByteOrder = errors.New("gpsexif: unknown byte order")

	// ErrInvalidOffsetOrdering is returned when the EXIF block points to data that the
	// forward-only reader has already passed.
	ErrInvalidOffsetOrdering = errors.New("gpsexif: invalid offset ordering")

	// Internal error to signal that we should stop any further processing.
	errStop = errors.New("stop")
)

// StreamError wraps a failure from the underlying reader,
// e.g. io.ErrUnexpectedEOF on a truncated file.
type StreamError struct {
	// Pos is the absolute stream position of the failed read or seek.
	Pos int64
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("gpsexif: stream error at offset %d: %v", e.Pos, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// IsInvalidFormat reports whether err is caused by malformed image data,
// as opposed to a failing reader.
func IsInvalidFormat(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrContainerFormat) ||
		errors.Is(err, ErrMissingExifBlock) ||
		errors.Is(err, ErrUnknownByteOrder) ||
		errors.Is(err, ErrInvalidOffsetOrdering)
}

// IsStreamError reports whether err was returned by the underlying reader.
func IsStreamError(err error) bool {
	var se *StreamError
	return errors.As(err, &se)
}
