// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"strings"
	gotime "time"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

// DateTimeMode fixes how a DateTime column treats the kind of its values.
type DateTimeMode uint8

const (
	DateTimeModeLocal DateTimeMode = iota + 1
	DateTimeModeUnspecified
	DateTimeModeUnspecifiedLocal
	DateTimeModeUtc
)

func (m DateTimeMode) String() string {
	switch m {
	case DateTimeModeLocal:
		return "Local"
	case DateTimeModeUnspecified:
		return "Unspecified"
	case DateTimeModeUnspecifiedLocal:
		return "UnspecifiedLocal"
	case DateTimeModeUtc:
		return "Utc"
	}
	return "Invalid"
}

func (m DateTimeMode) Valid() bool {
	return m >= DateTimeModeLocal && m <= DateTimeModeUtc
}

func ParseDateTimeMode(s string) (DateTimeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return DateTimeModeLocal, nil
	case "unspecified":
		return DateTimeModeUnspecified, nil
	case "unspecifiedlocal", "":
		return DateTimeModeUnspecifiedLocal, nil
	case "utc":
		return DateTimeModeUtc, nil
	}
	return 0, moerr.NewInvalidDateTimeModeNoCtx(s)
}

// DateTimeKind tells whether a time value is UTC, local or carries no zone.
type DateTimeKind uint8

const (
	KindUnspecified DateTimeKind = iota
	KindUtc
	KindLocal
)

func (k DateTimeKind) String() string {
	switch k {
	case KindUtc:
		return "Utc"
	case KindLocal:
		return "Local"
	}
	return "Unspecified"
}

// Local is the zone used for local times. Tests replace it.
var Local = gotime.Local

// Unspecified marks a wall-clock time that has no zone. Its offset is zero
// so arithmetic on such values behaves like UTC.
var Unspecified = gotime.FixedZone("Unspecified", 0)

// KindOf classifies t by its location. Any zone other than UTC and
// Unspecified counts as local.
func KindOf(t gotime.Time) DateTimeKind {
	switch t.Location() {
	case gotime.UTC:
		return KindUtc
	case Unspecified:
		return KindUnspecified
	}
	return KindLocal
}

// SpecifyKind keeps the wall clock of t and relabels its kind.
func SpecifyKind(t gotime.Time, kind DateTimeKind) gotime.Time {
	loc := Unspecified
	switch kind {
	case KindUtc:
		loc = gotime.UTC
	case KindLocal:
		loc = Local
	}
	if t.Location() == loc {
		return t
	}
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return gotime.Date(y, mo, d, h, mi, s, t.Nanosecond(), loc)
}

// ToLocal converts t to local time. An unspecified value is taken as UTC.
func ToLocal(t gotime.Time) gotime.Time {
	switch KindOf(t) {
	case KindUnspecified:
		return SpecifyKind(t, KindUtc).In(Local)
	case KindLocal:
		if t.Location() == Local {
			return t
		}
	}
	return t.In(Local)
}

// ToUniversal converts t to UTC. An unspecified value is taken as local.
func ToUniversal(t gotime.Time) gotime.Time {
	switch KindOf(t) {
	case KindUtc:
		return t
	case KindUnspecified:
		return SpecifyKind(t, KindLocal).UTC()
	}
	return t.UTC()
}

// DateTimeOffset is an instant together with the offset it was observed at.
type DateTimeOffset struct {
	gotime.Time
}

func NewDateTimeOffset(t gotime.Time) DateTimeOffset {
	return DateTimeOffset{Time: t}
}

// CompareTo orders offsets by instant.
func (o DateTimeOffset) CompareTo(other any) (int, error) {
	var ot gotime.Time
	switch v := other.(type) {
	case DateTimeOffset:
		ot = v.Time
	case gotime.Time:
		ot = v
	default:
		return 0, moerr.NewSetInvalidDataTypeNoCtx(TypeName(typeOf(other)), "DateTimeOffset")
	}
	switch {
	case o.Before(ot):
		return -1, nil
	case o.After(ot):
		return 1, nil
	}
	return 0, nil
}

func (o DateTimeOffset) String() string {
	return o.Format(gotime.RFC3339Nano)
}
