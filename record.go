// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package gpsexif

import (
	"encoding/json"
	"math"
	"slices"
	"time"
)

// Record holds the GPS fields found in an image.
// Fields not present in the image are not present in the Record.
// A Record is not modified after Decode returns.
type Record struct {
	values map[Field]Value
}

// Get returns the value of f.
func (r Record) Get(f Field) (Value, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Has reports whether f was found.
func (r Record) Has(f Field) bool {
	_, ok := r.values[f]
	return ok
}

// Len returns the number of fields found.
func (r Record) Len() int {
	return len(r.values)
}

// Fields returns the fields found, in tag order.
func (r Record) Fields() []Field {
	fields := make([]Field, 0, len(r.values))
	for f := range r.values {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Map returns the values keyed by field name, e.g. "latitude_ref".
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for f, v := range r.values {
		m[f.Name()] = v.Any()
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]Value, len(r.values))
	for f, v := range r.values {
		m[f.Name()] = v
	}
	return json.Marshal(m)
}

// LatLong returns the latitude and longitude in decimal degrees.
// Southern latitudes and western longitudes are negative.
// ok is false if either of latitude and longitude is missing.
func (r Record) LatLong() (lat float64, long float64, ok bool) {
	lat, ok = r.degrees(FieldLatitude)
	if !ok {
		return 0, 0, false
	}
	long, ok = r.degrees(FieldLongitude)
	if !ok {
		return 0, 0, false
	}

	if r.text(FieldLatitudeRef) == "S" {
		lat = -lat
	}
	if r.text(FieldLongitudeRef) == "W" {
		long = -long
	}

	if math.IsNaN(lat) {
		lat = 0
	}
	if math.IsNaN(long) {
		long = 0
	}

	return lat, long, true
}

// Altitude returns the altitude in meters.
// It is negative if the altitude reference says below sea level.
func (r Record) Altitude() (float64, bool) {
	v, ok := r.values[FieldAltitude]
	if !ok {
		return 0, false
	}
	alt, ok := v.Scalar()
	if !ok {
		return 0, false
	}
	if ref, ok := r.values[FieldAltitudeRef]; ok {
		if i, _ := ref.Integer(); i == 1 {
			alt = -alt
		}
	}
	return alt, true
}

// TimeOfDay returns the GPS timestamp (UTC) as the duration since midnight.
func (r Record) TimeOfDay() (time.Duration, bool) {
	v, ok := r.values[FieldTimestamp]
	if !ok {
		return 0, false
	}
	hms, ok := v.Sequence()
	if !ok || len(hms) != 3 {
		return 0, false
	}
	secs := hms[0]*3600 + hms[1]*60 + hms[2]
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

func (r Record) degrees(f Field) (float64, bool) {
	v, ok := r.values[f]
	if !ok {
		return 0, false
	}
	dms, ok := v.Float64s()
	if !ok || len(dms) == 0 || len(dms) > 3 {
		return 0, false
	}
	var d float64
	for i, x := range dms {
		d += x / math.Pow(60, float64(i))
	}
	return d, true
}

func (r Record) text(f Field) string {
	s, _ := r.values[f].Text()
	return s
}

// recordBuilder collects the values while decoding.
type recordBuilder struct {
	values map[Field]Value
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{values: make(map[Field]Value)}
}

func (b *recordBuilder) set(f Field, v Value) {
	b.values[f] = v
}

// build returns the Record. The builder must not be used after this.
func (b *recordBuilder) build() Record {
	r := Record{values: b.values}
	b.values = nil
	return r
}
