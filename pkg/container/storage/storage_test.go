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
	"testing"
	gotime "time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/nulls"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

func newTestStorage(t *testing.T, typ reflect.Type, capacity int) Storage {
	s, err := New(typ, Options{})
	require.NoError(t, err)
	s.SetCapacity(capacity)
	return s
}

func fill(t *testing.T, s Storage, values ...any) []int {
	records := make([]int, len(values))
	if s.Capacity() < len(values) {
		s.SetCapacity(len(values))
	}
	for i, v := range values {
		require.NoError(t, s.Set(i, v))
		records[i] = i
	}
	return records
}

func TestInt32Scenario(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(int32(0)), 5)
	require.Equal(t, types.T_int32, s.StorageType())

	require.NoError(t, s.Set(0, 10))
	require.NoError(t, s.Set(1, s.NullValue()))
	require.NoError(t, s.Set(2, 20))
	require.NoError(t, s.Set(3, int32(5)))
	require.NoError(t, s.Set(4, nil))
	records := []int{0, 1, 2, 3, 4}

	sum, err := s.Aggregate(records, types.AggSum)
	require.NoError(t, err)
	require.Equal(t, int64(35), sum)

	count, err := s.Aggregate(records, types.AggCount)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	min, err := s.Aggregate(records, types.AggMin)
	require.NoError(t, err)
	require.Equal(t, int32(5), min)

	max, err := s.Aggregate(records, types.AggMax)
	require.NoError(t, err)
	require.Equal(t, int32(20), max)

	require.Equal(t, 1, s.Compare(0, 3))
	require.Equal(t, -1, s.Compare(3, 0))
}

func TestNullDefaultDuality(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		zero any
	}{
		{reflect.TypeOf(false), false},
		{reflect.TypeOf(types.Char(0)), types.Char(0)},
		{reflect.TypeOf(int8(0)), int8(0)},
		{reflect.TypeOf(uint8(0)), uint8(0)},
		{reflect.TypeOf(int16(0)), int16(0)},
		{reflect.TypeOf(uint16(0)), uint16(0)},
		{reflect.TypeOf(int32(0)), int32(0)},
		{reflect.TypeOf(uint32(0)), uint32(0)},
		{reflect.TypeOf(int64(0)), int64(0)},
		{reflect.TypeOf(uint64(0)), uint64(0)},
		{reflect.TypeOf(float32(0)), float32(0)},
		{reflect.TypeOf(float64(0)), float64(0)},
		{types.DecimalType, decimal.Zero},
		{reflect.TypeOf(gotime.Duration(0)), gotime.Duration(0)},
		{types.StringType, ""},
		{types.GuidType, uuid.Nil},
		{types.BytesType, []byte{}},
	}
	for _, c := range cases {
		t.Run(c.typ.String(), func(t *testing.T) {
			s := newTestStorage(t, c.typ, 2)
			require.NoError(t, s.Set(0, s.NullValue()))
			require.NoError(t, s.Set(1, c.zero))

			require.True(t, s.IsNull(0))
			require.Equal(t, types.DBNull, s.Get(0))
			require.False(t, s.IsNull(1))
			require.Equal(t, c.zero, s.Get(1))

			require.Equal(t, -1, s.Compare(0, 1))
			require.Equal(t, 1, s.Compare(1, 0))
			require.Equal(t, 0, s.Compare(0, 0))
		})
	}
}

func TestCapacityGrowth(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(int64(0)), 3)
	require.Equal(t, 3, s.Capacity())
	fill(t, s, int64(7), nil, int64(0))

	s.SetCapacity(10)
	require.Equal(t, 10, s.Capacity())
	require.Equal(t, int64(7), s.Get(0))
	require.True(t, s.IsNull(1))
	require.False(t, s.IsNull(2))
	require.Equal(t, int64(0), s.Get(2))

	s.SetCapacity(2)
	require.Equal(t, 10, s.Capacity())
	require.Equal(t, int64(7), s.Get(0))
}

func TestNullsSortFirst(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(int32(0)), 3)
	fill(t, s, nil, int32(-5), int32(0))

	require.Equal(t, -1, s.Compare(0, 1))
	require.Equal(t, -1, s.Compare(0, 2))
	require.Equal(t, 1, s.Compare(2, 1))
	require.Equal(t, -1, s.Compare(1, 2))

	c, err := s.CompareValueTo(0, types.DBNull)
	require.NoError(t, err)
	require.Equal(t, 0, c)

	c, err = s.CompareValueTo(2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, c)

	c, err = s.CompareValueTo(0, 5)
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = s.CompareValueTo(1, "3")
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = s.CompareValueTo(2, int32(0))
	require.NoError(t, err)
	require.Equal(t, 0, c)

	_, err = s.CompareValueTo(1, "abc")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestSetConversionErrors(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(int32(0)), 1)
	require.NoError(t, s.Set(0, int32(3)))

	err := s.Set(0, "abc")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
	err = s.Set(0, int64(1<<40))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))
	require.Equal(t, int32(3), s.Get(0))

	v, err := s.ConvertValue("12")
	require.NoError(t, err)
	require.Equal(t, int32(12), v)
	v, err = s.ConvertValue(nil)
	require.NoError(t, err)
	require.Equal(t, types.DBNull, v)
	_, err = s.ConvertValue(gotime.Second)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestAggregatePermutationInvariance(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(float64(0)), 6)
	fill(t, s, 3.5, nil, -1.25, 8.0, 0.0, 2.0)

	orders := [][]int{
		{0, 1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1, 0},
		{2, 0, 5, 1, 3, 4},
	}
	for _, kind := range []types.AggregateType{types.AggSum, types.AggMin, types.AggMax, types.AggCount} {
		want, err := s.Aggregate(orders[0], kind)
		require.NoError(t, err)
		for _, order := range orders[1:] {
			got, err := s.Aggregate(order, kind)
			require.NoError(t, err)
			require.Equal(t, want, got, kind.String())
		}
	}
}

func TestCopy(t *testing.T) {
	s := newTestStorage(t, types.StringType, 3)
	fill(t, s, "a", nil, "c")

	s.Copy(1, 0)
	require.True(t, s.IsNull(0))
	require.Equal(t, types.DBNull, s.Get(0))

	s.Copy(2, 1)
	require.False(t, s.IsNull(1))
	require.Equal(t, "c", s.Get(1))
}

func TestBulkStorageMove(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(uint16(0)), 3)
	fill(t, s, uint16(4), nil, uint16(9))

	store := s.GetEmptyStorage(3)
	require.IsType(t, []uint16{}, store)
	var nsp nulls.Nulls
	for i := 0; i < 3; i++ {
		s.CopyValue(i, store, &nsp, 2-i)
	}
	require.Equal(t, []uint16{9, 0, 4}, store)
	require.Equal(t, []uint64{1}, nsp.ToArray())

	other := newTestStorage(t, reflect.TypeOf(uint16(0)), 0)
	other.SetStorage(store, &nsp)
	require.Equal(t, 3, other.Capacity())
	require.Equal(t, uint16(9), other.Get(0))
	require.True(t, other.IsNull(1))
	require.Equal(t, uint16(4), other.Get(2))

	other.SetStorage([]uint16{1, 2}, nil)
	require.False(t, other.IsNull(1))
	require.Equal(t, uint16(2), other.Get(1))

	require.Panics(t, func() {
		other.SetStorage([]int32{1}, nil)
	})
}

func TestStorageDescriptors(t *testing.T) {
	s := newTestStorage(t, types.StringType, 1)
	require.True(t, s.IsStringType())
	require.True(t, s.IsValueType())
	require.False(t, s.IsCustomDefinedType())
	require.Equal(t, types.StringType, s.DataType())

	b := newTestStorage(t, types.BytesType, 1)
	require.False(t, b.IsStringType())
	require.False(t, b.IsValueType())
	require.False(t, b.IsCustomDefinedType())
	require.Equal(t, math.MaxInt32, b.GetStringLength(0))

	o := newTestStorage(t, types.AnyType, 1)
	require.True(t, o.IsCustomDefinedType())
	require.Equal(t, types.T_object, o.StorageType())
}
