// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exiftest

import (
	"errors"
	"fmt"
	"io"
)

// ForwardOnlyReader is an io.ReadSeeker over a byte slice that refuses
// to move backwards and records the position of every read and seek.
type ForwardOnlyReader struct {
	buffer    []byte
	offset    int64
	positions []int64
}

// NewForwardOnlyReader creates a new ForwardOnlyReader reading b.
func NewForwardOnlyReader(b []byte) *ForwardOnlyReader {
	return &ForwardOnlyReader{buffer: b}
}

func (r *ForwardOnlyReader) Read(p []byte) (int, error) {
	if p == nil {
		return 0, errors.New("destination cannot be nil")
	}
	r.positions = append(r.positions, r.offset)
	if r.offset >= int64(len(r.buffer)) {
		return 0, io.EOF
	}
	n := copy(p, r.buffer[r.offset:])
	r.offset += int64(n)
	return n, nil
}

func (r *ForwardOnlyReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.offset + offset
	default:
		return 0, errors.New("can only seek from start or current position")
	}

	if abs < r.offset {
		return 0, fmt.Errorf("backward seek from %d to %d", r.offset, abs)
	}

	r.offset = abs
	r.positions = append(r.positions, abs)

	return abs, nil
}

// Positions returns the positions requested so far, in order.
func (r *ForwardOnlyReader) Positions() []int64 {
	return append([]int64(nil), r.positions...)
}

// ReaderOnly hides any io.Seeker implementation of r.
func ReaderOnly(r io.Reader) io.Reader {
	return struct{ io.Reader }{r}
}
