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
	"math/big"
	"net/url"
	"reflect"
	"strings"
	gotime "time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/nulls"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
)

// objectStorage keeps boxed values of reference and user defined types.
// A null record holds nil.
type objectStorage struct {
	base
	opts     Options
	caps     types.Capabilities
	values   []any
	collator *collate.Collator
	scalars  map[types.StorageType]Storage
	// strict is set for null-aware custom types, which must order through
	// types.Comparable.
	strict bool
}

func newObjectStorage(t reflect.Type, code types.StorageType, opts Options) *objectStorage {
	if t == nil {
		t = types.AnyType
	}
	return &objectStorage{
		base:     newBase(t, code, types.DBNull),
		opts:     opts,
		caps:     types.ImplementsCapabilities(t),
		collator: collate.New(opts.locale().Tag),
	}
}

// newCustomStorage builds the storage of a null-aware user type. Its null
// value is the zero value of the type, and Compare panics with
// ErrNotComparable when the values do not implement types.Comparable.
func newCustomStorage(t reflect.Type, opts Options) *objectStorage {
	s := newObjectStorage(t, types.T_empty, opts)
	s.nullValue = reflect.Zero(t).Interface()
	s.strict = true
	return s
}

func (s *objectStorage) Get(record int) any {
	if v := s.values[record]; v != nil {
		return v
	}
	return s.nullValue
}

func (s *objectStorage) Set(record int, value any) error {
	if types.IsObjectNull(value) {
		s.values[record] = nil
		s.setNullBit(record, true)
		return nil
	}
	v, err := s.convert(value)
	if err != nil {
		return err
	}
	s.values[record] = v
	s.setNullBit(record, false)
	return nil
}

// convert checks value against the declared type, parsing text for the
// built-in reference types.
func (s *objectStorage) convert(value any) (any, error) {
	t := s.dataType
	vt := reflect.TypeOf(value)
	if t == types.AnyType || vt.AssignableTo(t) {
		return value, nil
	}
	switch s.storageType {
	case types.T_chars, types.T_sqlchars:
		if str, ok := value.(string); ok {
			return types.StringToChars(str), nil
		}
	case types.T_uri:
		if str, ok := value.(string); ok {
			u, err := url.Parse(strings.TrimSpace(str))
			if err != nil {
				return nil, moerr.NewConvertFailedNoCtx(str, s.storageType.String())
			}
			return u, nil
		}
	case types.T_biginteger:
		b, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		return b, nil
	case types.T_datetimeoffset:
		switch x := value.(type) {
		case gotime.Time:
			return types.NewDateTimeOffset(x), nil
		case string:
			tm, err := gotime.Parse(gotime.RFC3339Nano, strings.TrimSpace(x))
			if err != nil {
				return nil, moerr.NewConvertFailedNoCtx(x, s.storageType.String())
			}
			return types.NewDateTimeOffset(tm), nil
		}
	case types.T_type:
		if str, ok := value.(string); ok {
			rt, err := types.ResolveType(str)
			if err != nil {
				return nil, err
			}
			return rt, nil
		}
	}
	return nil, moerr.NewSetInvalidDataTypeNoCtx(types.TypeName(vt), types.TypeName(t))
}

func toBigInt(value any) (*big.Int, error) {
	switch x := value.(type) {
	case *big.Int:
		return x, nil
	case string:
		if b, ok := new(big.Int).SetString(strings.TrimSpace(x), 10); ok {
			return b, nil
		}
		return nil, moerr.NewConvertFailedNoCtx(x, types.T_biginteger.String())
	case decimal.Decimal:
		b, _ := new(big.Int).SetString(x.Truncate(0).String(), 10)
		return b, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, moerr.NewSetInvalidDataTypeNoCtx(types.TypeName(rv.Type()), types.T_biginteger.String())
}

func (s *objectStorage) Compare(r1, r2 int) int {
	c, err := s.compareValues(s.values[r1], s.values[r2])
	if err != nil {
		panic(err)
	}
	return c
}

func (s *objectStorage) CompareValueTo(record int, value any) (int, error) {
	if types.IsObjectNull(value) {
		value = nil
	}
	return s.compareValues(s.values[record], value)
}

func (s *objectStorage) compareValues(a, b any) (int, error) {
	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return -1, nil
	case b == nil:
		return 1, nil
	}
	if c, ok := a.(types.Comparable); ok {
		r, err := c.CompareTo(b)
		if err == nil {
			return cmp.Compare(r, 0), nil
		}
		if s.strict {
			return 0, err
		}
		logutil.Debug("natural comparison failed, comparing by type family",
			zap.String("left", types.TypeName(reflect.TypeOf(a))),
			zap.String("right", types.TypeName(reflect.TypeOf(b))),
			zap.Error(err))
	} else if s.strict {
		return 0, moerr.NewNotComparableNoCtx(types.TypeName(s.dataType))
	}
	return s.compareFamilies(a, b)
}

type family uint8

const (
	familyDateTime family = iota
	familyNumber
	familyString
	familyBoolean
	familyArray
)

func familyOf(v any) family {
	switch v.(type) {
	case bool:
		return familyBoolean
	case gotime.Time, types.DateTimeOffset, gotime.Duration:
		return familyDateTime
	case decimal.Decimal, types.Money, *big.Int:
		return familyNumber
	case string, types.Char, uuid.UUID:
		return familyString
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return familyBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return familyNumber
	case reflect.Slice, reflect.Array:
		return familyArray
	}
	return familyString
}

func (s *objectStorage) compareFamilies(a, b any) (int, error) {
	f1, f2 := familyOf(a), familyOf(b)
	if f1 != f2 {
		return cmp.Compare(f1, f2), nil
	}
	switch f1 {
	case familyBoolean:
		x, y := reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool()
		return newBoolOps().compare(x, y), nil
	case familyDateTime:
		return compareTimes(a, b), nil
	case familyNumber:
		x, err := types.ToFloat64(a, types.InvariantLocale, 64, types.T_float64.String())
		if err != nil {
			return 0, err
		}
		y, err := types.ToFloat64(b, types.InvariantLocale, 64, types.T_float64.String())
		if err != nil {
			return 0, err
		}
		return cmp.Compare(x, y), nil
	case familyArray:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if c := cmp.Compare(va.Len(), vb.Len()); c != 0 {
			return c, nil
		}
		for i := 0; i < va.Len(); i++ {
			c, err := s.compareValues(va.Index(i).Interface(), vb.Index(i).Interface())
			if err != nil || c != 0 {
				return c, err
			}
		}
		return 0, nil
	}
	loc := s.opts.locale()
	return s.collator.CompareString(types.ToString(a, loc), types.ToString(b, loc)), nil
}

// compareTimes orders instants after durations.
func compareTimes(a, b any) int {
	da, aIsSpan := a.(gotime.Duration)
	db, bIsSpan := b.(gotime.Duration)
	switch {
	case aIsSpan && bIsSpan:
		return cmp.Compare(da, db)
	case aIsSpan:
		return -1
	case bIsSpan:
		return 1
	}
	ta, _ := types.ToDateTime(a, nil)
	tb, _ := types.ToDateTime(b, nil)
	return ta.Compare(tb)
}

func (s *objectStorage) Copy(src, dst int) {
	s.copyBits(src, dst)
	s.values[dst] = s.values[src]
}

func (s *objectStorage) SetCapacity(capacity int) {
	if capacity > len(s.values) {
		values := make([]any, capacity)
		copy(values, s.values)
		s.values = values
	}
	s.growNulls(capacity)
}

func (s *objectStorage) Capacity() int {
	return len(s.values)
}

func (s *objectStorage) ConvertValue(value any) (any, error) {
	if types.IsObjectNull(value) {
		return s.nullValue, nil
	}
	return s.convert(value)
}

func (s *objectStorage) Aggregate(records []int, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggCount:
		return s.countNonNull(records), nil
	case types.AggFirst:
		if len(records) == 0 {
			return s.nullValue, nil
		}
		return s.Get(records[0]), nil
	}
	return nil, unsupportedAggregate(kind, s.storageType)
}

func (s *objectStorage) GetEmptyStorage(recordCount int) any {
	return make([]any, recordCount)
}

func (s *objectStorage) CopyValue(record int, store any, nsp *nulls.Nulls, storeIndex int) {
	store.([]any)[storeIndex] = s.values[record]
	nsp.SetTo(uint64(storeIndex), !s.hasValue(record))
}

func (s *objectStorage) SetStorage(store any, nsp *nulls.Nulls) {
	values, ok := store.([]any)
	if !ok {
		panic(moerr.NewInternalErrorNoCtx("storage of %s cannot take %T", s.storageType, store))
	}
	s.values = values
	s.swapNulls(nsp)
	s.growNulls(len(values))
}
