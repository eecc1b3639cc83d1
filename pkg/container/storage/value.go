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
	"reflect"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/nulls"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

// valueOps is the per-type strategy plugged into valueStorage.
type valueOps[T any] struct {
	isDefault func(v T) bool
	compare   func(a, b T) int
	convert   func(v any, loc *types.Locale) (T, error)
	toXml     func(v T) string
	fromXml   func(s string) (T, error)

	// optional hooks
	normalize func(v T) T
	validate  func(v T) error
	reload    func(v T) T
	length    func(v T) int

	aggregates aggSet
	arith      arithFunc[T]
}

// valueStorage keeps one value of T per record. A slot of a null record
// always holds the zero value of T.
type valueStorage[T any] struct {
	base
	ops    valueOps[T]
	loc    *types.Locale
	values []T
}

func newValueStorage[T any](code types.StorageType, ops valueOps[T], opts Options) *valueStorage[T] {
	return &valueStorage[T]{
		base: newBase(reflect.TypeOf((*T)(nil)).Elem(), code, types.DBNull),
		ops:  ops,
		loc:  opts.locale(),
	}
}

func (s *valueStorage[T]) Get(record int) any {
	v := s.values[record]
	if !s.ops.isDefault(v) || s.hasValue(record) {
		return v
	}
	return s.nullValue
}

func (s *valueStorage[T]) Set(record int, value any) error {
	if types.IsObjectNull(value) {
		var zero T
		s.values[record] = zero
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

func (s *valueStorage[T]) convert(value any) (T, error) {
	v, ok := value.(T)
	if !ok {
		var err error
		if v, err = s.ops.convert(value, s.loc); err != nil {
			return v, err
		}
	}
	if s.ops.normalize != nil {
		v = s.ops.normalize(v)
	}
	if s.ops.validate != nil {
		if err := s.ops.validate(v); err != nil {
			return v, err
		}
	}
	return v, nil
}

func (s *valueStorage[T]) Compare(r1, r2 int) int {
	v1, v2 := s.values[r1], s.values[r2]
	if s.ops.isDefault(v1) || s.ops.isDefault(v2) {
		if c := s.compareBits(r1, r2); c != 0 {
			return c
		}
	}
	return s.ops.compare(v1, v2)
}

func (s *valueStorage[T]) CompareValueTo(record int, value any) (int, error) {
	if types.IsObjectNull(value) {
		if s.hasValue(record) {
			return 1, nil
		}
		return 0, nil
	}
	v1 := s.values[record]
	if s.ops.isDefault(v1) && !s.hasValue(record) {
		return -1, nil
	}
	v2, err := s.convert(value)
	if err != nil {
		return 0, err
	}
	return s.ops.compare(v1, v2), nil
}

func (s *valueStorage[T]) Copy(src, dst int) {
	s.copyBits(src, dst)
	s.values[dst] = s.values[src]
}

func (s *valueStorage[T]) SetCapacity(capacity int) {
	if capacity > len(s.values) {
		values := make([]T, capacity)
		copy(values, s.values)
		s.values = values
	}
	s.growNulls(capacity)
}

func (s *valueStorage[T]) Capacity() int {
	return len(s.values)
}

func (s *valueStorage[T]) ConvertValue(value any) (any, error) {
	if types.IsObjectNull(value) {
		return s.nullValue, nil
	}
	v, err := s.convert(value)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *valueStorage[T]) ConvertXmlToObject(text string) (any, error) {
	v, err := s.ops.fromXml(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *valueStorage[T]) ConvertObjectToXml(value any) (string, error) {
	v, err := s.convert(value)
	if err != nil {
		return "", err
	}
	return s.ops.toXml(v), nil
}

func (s *valueStorage[T]) GetStringLength(record int) int {
	if s.ops.length == nil {
		return s.base.GetStringLength(record)
	}
	return s.ops.length(s.values[record])
}

func (s *valueStorage[T]) Aggregate(records []int, kind types.AggregateType) (any, error) {
	if !s.ops.aggregates.has(kind) {
		return nil, unsupportedAggregate(kind, s.storageType)
	}
	switch kind {
	case types.AggCount:
		return s.countNonNull(records), nil
	case types.AggFirst:
		if len(records) == 0 {
			return s.nullValue, nil
		}
		return s.Get(records[0]), nil
	case types.AggMin, types.AggMax:
		found := -1
		for _, r := range records {
			if !s.hasValue(r) {
				continue
			}
			if found < 0 {
				found = r
				continue
			}
			c := s.ops.compare(s.values[r], s.values[found])
			if (kind == types.AggMin && c < 0) || (kind == types.AggMax && c > 0) {
				found = r
			}
		}
		if found < 0 {
			return s.nullValue, nil
		}
		return s.values[found], nil
	}

	values := make([]T, 0, len(records))
	for _, r := range records {
		if s.hasValue(r) {
			values = append(values, s.values[r])
		}
	}
	if len(values) == 0 || s.ops.arith == nil {
		return s.nullValue, nil
	}
	res, err := s.ops.arith(values, kind)
	if err != nil {
		return nil, aggregateError(err, kind, s.storageType)
	}
	if res == nil {
		return s.nullValue, nil
	}
	return res, nil
}

func (s *valueStorage[T]) GetEmptyStorage(recordCount int) any {
	return make([]T, recordCount)
}

func (s *valueStorage[T]) CopyValue(record int, store any, nsp *nulls.Nulls, storeIndex int) {
	store.([]T)[storeIndex] = s.values[record]
	nsp.SetTo(uint64(storeIndex), !s.hasValue(record))
}

func (s *valueStorage[T]) SetStorage(store any, nsp *nulls.Nulls) {
	values, ok := store.([]T)
	if !ok {
		panic(moerr.NewInternalErrorNoCtx("storage of %s cannot take %T", s.storageType, store))
	}
	s.values = values
	s.swapNulls(nsp)
	s.growNulls(len(values))
	if s.ops.reload == nil {
		return
	}
	for i := range s.values {
		if s.hasValue(i) {
			s.values[i] = s.ops.reload(s.values[i])
		}
	}
}
