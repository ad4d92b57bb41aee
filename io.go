// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"fmt"
	"io"
)

// streamReader is a forward-only wrapper around a Reader that provides methods to read binary data.
// It keeps track of the absolute position itself, so the underlying Reader
// does not need to support seeking at all.
// Note that this is not thread safe.
type streamReader struct {
	r io.Reader
	// Set if r can seek; used to skip forward without reading.
	seeker io.Seeker

	buf []byte

	pos     int64
	readErr error
}

func newStreamReader(r io.Reader) *streamReader {
	s := &streamReader{r: r}
	if seeker, ok := r.(io.Seeker); ok {
		// Pipes and sockets wrapped in an *os.File implement Seek but fail with ESPIPE.
		if _, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			s.seeker = seeker
		}
	}
	return s
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

func (e *streamReader) read2(order ByteOrder) uint16 {
	const n = 2
	return order.Uint16(e.readBytesVolatile(n))
}

func (e *streamReader) read4(order ByteOrder) uint32 {
	const n = 4
	return order.Uint32(e.readBytesVolatile(n))
}

// readBytesVolatile reads a slice of bytes from the stream
// which is not guaranteed to be valid after the next read.
func (e *streamReader) readBytesVolatile(n int) []byte {
	e.allocateBuf(n)
	start := e.pos
	n2, err := io.ReadFull(e.r, e.buf[:n])
	e.pos += int64(n2)
	if err != nil {
		e.stop(start, err)
	}
	return e.buf[:n]
}

// skip moves the stream n bytes forward.
func (e *streamReader) skip(n int64) {
	if n <= 0 {
		return
	}
	start := e.pos
	if e.seeker != nil {
		if _, err := e.seeker.Seek(n, io.SeekCurrent); err != nil {
			e.stop(start, err)
		}
		e.pos += n
		return
	}
	n2, err := io.CopyN(io.Discard, e.r, n)
	e.pos += n2
	if err != nil {
		e.stop(start, err)
	}
}

// seekTo moves the stream forward to the absolute position pos.
// Moving backwards is not possible.
func (e *streamReader) seekTo(pos int64) error {
	if pos < e.pos {
		return fmt.Errorf("%w: offset %d is behind stream position %d", ErrInvalidOffsetOrdering, pos, e.pos)
	}
	e.skip(pos - e.pos)
	return nil
}

// stop records err and aborts the decoding.
// The panic is recovered in Decode.
func (e *streamReader) stop(pos int64, err error) {
	e.readErr = &StreamError{Pos: pos, Err: err}
	panic(errStop)
}
