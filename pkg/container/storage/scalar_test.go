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
	"github.com/matrixorigin/colstore/pkg/container/types"
)

func TestXmlRoundTrip(t *testing.T) {
	guid := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	cases := []struct {
		value any
		text  string
	}{
		{true, "true"},
		{types.Char('x'), "x"},
		{int8(-5), "-5"},
		{uint8(200), "200"},
		{int16(math.MinInt16), "-32768"},
		{uint16(math.MaxUint16), "65535"},
		{int32(math.MinInt32), "-2147483648"},
		{uint32(math.MaxUint32), "4294967295"},
		{int64(math.MinInt64), "-9223372036854775808"},
		{uint64(math.MaxUint64), "18446744073709551615"},
		{float32(1.5), "1.5"},
		{1e21, "1E+21"},
		{math.Inf(-1), "-INF"},
		{types.DecimalMax, "79228162514264337593543950335"},
		{decimal.RequireFromString("-0.125"), "-0.125"},
		{26 * gotime.Hour, "P1DT2H"},
		{365*24*gotime.Hour + 1, "P365DT0.000000001S"},
		{gotime.Duration(math.MaxInt64), "P106751DT23H47M16.854775807S"},
		{gotime.Duration(math.MinInt64), "-P106751DT23H47M16.854775808S"},
		{"a<b & c", "a<b & c"},
		{guid, "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
	}
	for _, c := range cases {
		typ := reflect.TypeOf(c.value)
		s := newTestStorage(t, typ, 1)
		text, err := s.ConvertObjectToXml(c.value)
		require.NoError(t, err, typ.String())
		require.Equal(t, c.text, text)

		back, err := s.ConvertXmlToObject(text)
		require.NoError(t, err, typ.String())
		if d, ok := c.value.(decimal.Decimal); ok {
			require.True(t, d.Equal(back.(decimal.Decimal)))
			continue
		}
		require.Equal(t, c.value, back)
	}
}

func TestXmlParseErrors(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		text string
		code uint16
	}{
		{reflect.TypeOf(int8(0)), "128", moerr.ErrOutOfRange},
		{reflect.TypeOf(int8(0)), "x", moerr.ErrConvertFailed},
		{reflect.TypeOf(uint8(0)), "-1", moerr.ErrConvertFailed},
		{reflect.TypeOf(float32(0)), "1e39", moerr.ErrOutOfRange},
		{types.DecimalType, "1e30", moerr.ErrOutOfRange},
		{reflect.TypeOf(false), "yes", moerr.ErrConvertFailed},
		{reflect.TypeOf(gotime.Duration(0)), "1 hour", moerr.ErrConvertFailed},
		{types.GuidType, "not-a-guid", moerr.ErrConvertFailed},
	}
	for _, c := range cases {
		s := newTestStorage(t, c.typ, 1)
		_, err := s.ConvertXmlToObject(c.text)
		require.True(t, moerr.IsMoErrCode(err, c.code), "%s %q: %v", c.typ, c.text, err)
	}

	s := newTestStorage(t, reflect.TypeOf(int32(0)), 1)
	text, err := s.ConvertObjectToXml("12")
	require.NoError(t, err)
	require.Equal(t, "12", text)
	_, err = s.ConvertObjectToXml("twelve")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestCharStorage(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(types.Char(0)), 2)

	require.NoError(t, s.Set(0, "a"))
	require.Equal(t, types.Char('a'), s.Get(0))
	require.NoError(t, s.Set(1, 98))
	require.Equal(t, -1, s.Compare(0, 1))

	for _, bad := range []any{types.Char('\t'), "\n", types.Char(0xD800), 13} {
		err := s.Set(0, bad)
		require.True(t, moerr.IsMoErrCode(err, moerr.ErrProblematicChars), "%v", bad)
	}
	require.Equal(t, types.Char('a'), s.Get(0))

	err := s.Set(0, "ab")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))

	min, err := s.Aggregate([]int{0, 1}, types.AggMin)
	require.NoError(t, err)
	require.Equal(t, types.Char('a'), min)
}

func TestStringStorage(t *testing.T) {
	s := newTestStorage(t, types.StringType, 4)
	fill(t, s, "apple", "Apple", "banana", "héllo")

	require.Equal(t, 0, s.Compare(0, 1))
	require.Equal(t, -1, s.Compare(1, 2))
	require.Equal(t, 1, s.Compare(2, 0))
	require.Equal(t, 5, s.GetStringLength(3))
	require.Equal(t, 5, s.GetStringLength(0))

	c, err := s.CompareValueTo(2, "BANANA")
	require.NoError(t, err)
	require.Equal(t, 0, c)

	require.NoError(t, s.Set(0, 12))
	require.Equal(t, "12", s.Get(0))
	require.NoError(t, s.Set(0, true))
	require.Equal(t, "True", s.Get(0))

	max, err := s.Aggregate([]int{1, 2, 3}, types.AggMax)
	require.NoError(t, err)
	require.Equal(t, "héllo", max)

	cs, err := New(types.StringType, Options{CaseSensitive: true})
	require.NoError(t, err)
	fill(t, cs, "apple", "Apple")
	require.NotEqual(t, 0, cs.Compare(0, 1))

	de, err := types.LocaleFor("de-DE")
	require.NoError(t, err)
	ds, err := New(types.StringType, Options{Locale: de})
	require.NoError(t, err)
	fill(t, ds, "Äpfel", "Zebra")
	require.Equal(t, -1, ds.Compare(0, 1))
}

func TestBoolStorage(t *testing.T) {
	s := newTestStorage(t, reflect.TypeOf(false), 3)
	fill(t, s, "TRUE", false, 0)

	require.Equal(t, true, s.Get(0))
	require.Equal(t, false, s.Get(2))
	require.Equal(t, 1, s.Compare(0, 1))
	require.Equal(t, 0, s.Compare(1, 2))

	max, err := s.Aggregate([]int{0, 1, 2}, types.AggMax)
	require.NoError(t, err)
	require.Equal(t, true, max)

	err = s.Set(0, "perhaps")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestGuidStorage(t *testing.T) {
	lo := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hi := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
	s := newTestStorage(t, types.GuidType, 3)
	fill(t, s, hi.String(), lo[:], types.NewSql(lo))

	require.Equal(t, hi, s.Get(0))
	require.Equal(t, lo, s.Get(1))
	require.Equal(t, 1, s.Compare(0, 1))
	require.Equal(t, 0, s.Compare(1, 2))

	first, err := s.Aggregate([]int{1, 0}, types.AggFirst)
	require.NoError(t, err)
	require.Equal(t, lo, first)

	require.NoError(t, s.Set(0, types.SqlGuid{}))
	require.True(t, s.IsNull(0))
	err = s.Set(0, 42)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}
