// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"golang.org/x/text/encoding/charmap"
)

// decodeValue converts the raw bytes of a directory entry to a Value.
// b must hold exactly count units of typ.
func decodeValue(order ByteOrder, typ Datatype, count uint32, b []byte) Value {
	switch typ {
	case DatatypeASCII:
		return TextValue(decodeText(b))
	case DatatypeRational:
		if count == 1 {
			return ScalarValue(decodeRational(order, b))
		}
		values := make([]float64, count)
		for i := range values {
			values[i] = decodeRational(order, b[i*8:(i+1)*8])
		}
		return Value{kind: KindSequence, seq: values}
	default:
		if count == 1 {
			return IntegerValue(int64(order.Uint(b[:1])))
		}
		values := make([]float64, count)
		for i := range values {
			values[i] = float64(b[i])
		}
		return Value{kind: KindSequence, seq: values}
	}
}

// decodeRational decodes an 8 byte rational, numerator first.
// A zero denominator gives ±Inf or NaN.
func decodeRational(order ByteOrder, b []byte) float64 {
	num, den := order.Uint32(b[0:4]), order.Uint32(b[4:8])
	return float64(num) / float64(den)
}

// decodeText decodes an EXIF ASCII value.
// The count includes the terminating null byte, which is dropped.
// Bytes outside the 7-bit range are read as ISO-8859-1, so the result
// has count-1 runes but may be longer in bytes.
func decodeText(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	b = b[:len(b)-1]
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
