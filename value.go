// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the shape of a decoded Value.
type Kind uint8

const (
	// KindScalar is a single rational, as a float64.
	KindScalar Kind = iota + 1
	// KindSequence is more than one rational or byte, as float64s.
	KindSequence
	// KindText is an ASCII string.
	KindText
	// KindInteger is a single byte.
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindSequence:
		return "Sequence"
	case KindText:
		return "Text"
	case KindInteger:
		return "Integer"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a decoded field value. Use Kind to find out which accessor applies.
// The zero Value has no kind and all accessors report false.
type Value struct {
	kind    Kind
	scalar  float64
	seq     []float64
	text    string
	integer int64
}

// ScalarValue creates a new Value of KindScalar.
func ScalarValue(f float64) Value {
	return Value{kind: KindScalar, scalar: f}
}

// SequenceValue creates a new Value of KindSequence.
// The slice is copied.
func SequenceValue(fs ...float64) Value {
	return Value{kind: KindSequence, seq: append([]float64(nil), fs...)}
}

// TextValue creates a new Value of KindText.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// IntegerValue creates a new Value of KindInteger.
func IntegerValue(i int64) Value {
	return Value{kind: KindInteger, integer: i}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Scalar returns the value if v is a KindScalar.
func (v Value) Scalar() (float64, bool) {
	return v.scalar, v.kind == KindScalar
}

// Sequence returns a copy of the values if v is a KindSequence.
func (v Value) Sequence() ([]float64, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return append([]float64(nil), v.seq...), true
}

// Text returns the string if v is a KindText.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Integer returns the integer if v is a KindInteger.
func (v Value) Integer() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// Any returns the value as a float64, []float64, string or int64,
// or nil for the zero Value.
func (v Value) Any() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		return append([]float64(nil), v.seq...)
	case KindText:
		return v.text
	case KindInteger:
		return v.integer
	default:
		return nil
	}
}

// Float64s returns v as a slice of float64s for the numeric kinds,
// so callers can treat a count of 1 and a count of n the same way.
func (v Value) Float64s() ([]float64, bool) {
	switch v.kind {
	case KindScalar:
		return []float64{v.scalar}, true
	case KindSequence:
		return append([]float64(nil), v.seq...), true
	case KindInteger:
		return []float64{float64(v.integer)}, true
	default:
		return nil, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return strconv.FormatFloat(v.scalar, 'f', -1, 64)
	case KindSequence:
		var sb strings.Builder
		for i, f := range v.seq {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
		}
		return sb.String()
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
// Non-finite numbers, e.g. from a 0/0 rational, are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var x any
	switch v.kind {
	case 0:
		return []byte("null"), nil
	case KindScalar:
		x = jsonFloat(v.scalar)
	case KindSequence:
		fs := make([]any, len(v.seq))
		for i, f := range v.seq {
			fs[i] = jsonFloat(f)
		}
		x = fs
	default:
		x = v.Any()
	}
	b, err := json.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("marshal %s value: %w", v.kind, err)
	}
	return b, nil
}

func jsonFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
