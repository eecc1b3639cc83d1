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
	"math"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/nulls"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

// sqlBoxed is implemented by every types.SqlValue instantiation.
type sqlBoxed interface {
	IsNull() bool
	Interface() any
}

// sqlStorage stores SqlValue[E] on top of the storage of E. Get boxes the
// stored value and reports nulls as the null SqlValue[E].
type sqlStorage[E any] struct {
	inner    Storage
	dataType reflect.Type
	code     types.StorageType
}

func newSqlStorage[E any](code types.StorageType, inner Storage) *sqlStorage[E] {
	return &sqlStorage[E]{
		inner:    inner,
		dataType: reflect.TypeOf(types.SqlValue[E]{}),
		code:     code,
	}
}

func unwrapSql(value any) any {
	if b, ok := value.(sqlBoxed); ok {
		return b.Interface()
	}
	return value
}

func (s *sqlStorage[E]) box(v any) any {
	if e, ok := v.(E); ok {
		return types.NewSql(e)
	}
	return types.SqlValue[E]{}
}

func (s *sqlStorage[E]) DataType() reflect.Type {
	return s.dataType
}

func (s *sqlStorage[E]) StorageType() types.StorageType {
	return s.code
}

func (s *sqlStorage[E]) NullValue() any {
	return types.SqlValue[E]{}
}

func (s *sqlStorage[E]) IsValueType() bool {
	return true
}

func (s *sqlStorage[E]) IsStringType() bool {
	return s.code == types.T_sqlstring || s.code == types.T_sqlchars
}

func (s *sqlStorage[E]) IsCustomDefinedType() bool {
	return false
}

func (s *sqlStorage[E]) Get(record int) any {
	if s.inner.IsNull(record) {
		return types.SqlValue[E]{}
	}
	return s.box(s.inner.Get(record))
}

func (s *sqlStorage[E]) Set(record int, value any) error {
	return s.inner.Set(record, unwrapSql(value))
}

func (s *sqlStorage[E]) IsNull(record int) bool {
	return s.inner.IsNull(record)
}

func (s *sqlStorage[E]) Compare(r1, r2 int) int {
	return s.inner.Compare(r1, r2)
}

func (s *sqlStorage[E]) CompareValueTo(record int, value any) (int, error) {
	return s.inner.CompareValueTo(record, unwrapSql(value))
}

func (s *sqlStorage[E]) Copy(src, dst int) {
	s.inner.Copy(src, dst)
}

func (s *sqlStorage[E]) SetCapacity(capacity int) {
	s.inner.SetCapacity(capacity)
}

func (s *sqlStorage[E]) Capacity() int {
	return s.inner.Capacity()
}

func (s *sqlStorage[E]) ConvertValue(value any) (any, error) {
	value = unwrapSql(value)
	if types.IsObjectNull(value) {
		return types.SqlValue[E]{}, nil
	}
	v, err := s.inner.ConvertValue(value)
	if err != nil {
		return nil, err
	}
	return s.box(v), nil
}

func (s *sqlStorage[E]) ConvertXmlToObject(text string) (any, error) {
	v, err := s.inner.ConvertXmlToObject(text)
	if err != nil {
		return nil, err
	}
	return s.box(v), nil
}

func (s *sqlStorage[E]) ConvertObjectToXml(value any) (string, error) {
	value = unwrapSql(value)
	if types.IsObjectNull(value) {
		return "", nil
	}
	return s.inner.ConvertObjectToXml(value)
}

// Aggregate runs the aggregate on the underlying storage and wraps the
// result: integer sums become SqlInt64, variances SqlDouble. Count stays int.
func (s *sqlStorage[E]) Aggregate(records []int, kind types.AggregateType) (any, error) {
	res, err := s.inner.Aggregate(records, kind)
	if err != nil {
		return nil, err
	}
	switch r := res.(type) {
	case int:
		return r, nil
	case types.DBNullValue:
		return types.SqlValue[E]{}, nil
	case E:
		return types.NewSql(r), nil
	case int64:
		return types.NewSql(r), nil
	case uint64:
		if r > math.MaxInt64 {
			return nil, moerr.NewAggregateOverflowNoCtx(s.code.String())
		}
		return types.NewSql(int64(r)), nil
	case float64:
		return types.NewSql(r), nil
	case float32:
		return types.NewSql(r), nil
	case decimal.Decimal:
		return types.NewSql(r), nil
	}
	return res, nil
}

func (s *sqlStorage[E]) GetStringLength(record int) int {
	return s.inner.GetStringLength(record)
}

func (s *sqlStorage[E]) GetEmptyStorage(recordCount int) any {
	return s.inner.GetEmptyStorage(recordCount)
}

func (s *sqlStorage[E]) CopyValue(record int, store any, nsp *nulls.Nulls, storeIndex int) {
	s.inner.CopyValue(record, store, nsp, storeIndex)
}

func (s *sqlStorage[E]) SetStorage(store any, nsp *nulls.Nulls) {
	s.inner.SetStorage(store, nsp)
}

func newMoneyOps() valueOps[types.Money] {
	dec := newDecimalOps()
	name := types.T_sqlmoney.String()
	return valueOps[types.Money]{
		isDefault: func(v types.Money) bool {
			return v.IsZero()
		},
		compare: func(a, b types.Money) int {
			return a.Cmp(b.Decimal)
		},
		convert: func(v any, loc *types.Locale) (types.Money, error) {
			d, err := types.ToDecimal(v, loc, name)
			return types.NewMoney(d), err
		},
		toXml: func(v types.Money) string {
			return v.Decimal.String()
		},
		fromXml: func(s string) (types.Money, error) {
			d, err := dec.fromXml(s)
			return types.NewMoney(d), err
		},
		normalize: func(v types.Money) types.Money {
			return types.NewMoney(v.Decimal)
		},
		validate: func(v types.Money) error {
			return dec.validate(v.Decimal)
		},
		aggregates: numericAggs,
		arith: func(values []types.Money, kind types.AggregateType) (any, error) {
			ds := make([]decimal.Decimal, len(values))
			for i, v := range values {
				ds[i] = v.Decimal
			}
			res, err := decimalArith(ds, kind)
			if d, ok := res.(decimal.Decimal); ok {
				return types.NewMoney(d), err
			}
			return res, err
		},
	}
}
