// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"cmp"
	"fmt"
	"slices"
)

// resolveDeferred reads the values stored outside the GPS IFD.
// The entries are visited in offset order so the stream never moves backwards.
func (d *decoder) resolveDeferred(order ByteOrder, entries []deferredEntry) error {
	slices.SortFunc(entries, func(a, b deferredEntry) int {
		return cmp.Compare(a.offset, b.offset)
	})

	for _, e := range entries {
		if err := d.seekTo(e.offset); err != nil {
			return fmt.Errorf("%s: %w", e.field, err)
		}
		unit, _ := e.typ.unitSize()
		b := d.readBytesVolatile(int(unit * e.count))
		d.builder.set(e.field, decodeValue(order, e.typ, e.count, b))
	}

	return nil
}
