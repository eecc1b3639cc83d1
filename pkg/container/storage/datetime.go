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

package storage

import (
	"cmp"
	gotime "time"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

// DateTimeModal is implemented by storages whose values follow a
// DateTimeMode.
type DateTimeModal interface {
	DateTimeMode() types.DateTimeMode
	SetDateTimeMode(mode types.DateTimeMode) error
}

// dateTimeStorage stores time.Time values. The kind of every stored value is
// dictated by the storage mode.
type dateTimeStorage struct {
	*valueStorage[gotime.Time]
	mode types.DateTimeMode
}

func newDateTimeStorage(code types.StorageType, opts Options) *dateTimeStorage {
	mode := opts.dateTimeMode()
	return &dateTimeStorage{
		valueStorage: newValueStorage(code, newDateTimeOps(mode), opts),
		mode:         mode,
	}
}

func (s *dateTimeStorage) DateTimeMode() types.DateTimeMode {
	return s.mode
}

// SetDateTimeMode switches the mode used for values set from now on.
// Stored values are left untouched.
func (s *dateTimeStorage) SetDateTimeMode(mode types.DateTimeMode) error {
	if !mode.Valid() {
		return moerr.NewInvalidDateTimeModeNoCtx(mode.String())
	}
	s.mode = mode
	s.ops = newDateTimeOps(mode)
	return nil
}

func normalizeDateTime(mode types.DateTimeMode) func(gotime.Time) gotime.Time {
	switch mode {
	case types.DateTimeModeUtc:
		return func(t gotime.Time) gotime.Time {
			if types.KindOf(t) == types.KindLocal {
				return t.UTC()
			}
			return types.SpecifyKind(t, types.KindUtc)
		}
	case types.DateTimeModeLocal:
		return func(t gotime.Time) gotime.Time {
			if types.KindOf(t) == types.KindUnspecified {
				return types.SpecifyKind(t, types.KindLocal)
			}
			return types.ToLocal(t)
		}
	}
	return func(t gotime.Time) gotime.Time {
		return types.SpecifyKind(t, types.KindUnspecified)
	}
}

func reloadDateTime(mode types.DateTimeMode) func(gotime.Time) gotime.Time {
	switch mode {
	case types.DateTimeModeUnspecifiedLocal:
		return func(t gotime.Time) gotime.Time {
			return types.SpecifyKind(types.ToLocal(t), types.KindUnspecified)
		}
	case types.DateTimeModeLocal:
		return types.ToLocal
	}
	return nil
}

func newDateTimeOps(mode types.DateTimeMode) valueOps[gotime.Time] {
	ops := valueOps[gotime.Time]{
		isDefault: func(v gotime.Time) bool {
			return v.IsZero()
		},
		compare: func(a, b gotime.Time) int {
			return a.Compare(b)
		},
		convert:    types.ToDateTime,
		toXml:      types.FormatRoundtrip,
		fromXml:    types.ParseRoundtrip,
		normalize:  normalizeDateTime(mode),
		reload:     reloadDateTime(mode),
		aggregates: orderedAggs,
	}
	if mode == types.DateTimeModeUnspecifiedLocal {
		ops.toXml = types.FormatLocal
		ops.fromXml = types.ParseUnspecified
	}
	return ops
}

func newTimeSpanOps() valueOps[gotime.Duration] {
	return valueOps[gotime.Duration]{
		isDefault: isZero[gotime.Duration],
		compare:   cmp.Compare[gotime.Duration],
		convert: func(v any, _ *types.Locale) (gotime.Duration, error) {
			return types.ToDuration(v)
		},
		toXml:      types.FormatXmlDuration,
		fromXml:    types.ParseXmlDuration,
		aggregates: timespanAggs,
		arith:      timespanArith,
	}
}
