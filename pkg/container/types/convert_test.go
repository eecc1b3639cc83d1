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
	"math"
	"math/big"
	"testing"
	gotime "time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

func TestToInt64(t *testing.T) {
	cases := []struct {
		name string
		in   any
		bits int
		want int64
		code uint16
	}{
		{name: "string", in: " 42 ", bits: 32, want: 42},
		{name: "bad string", in: "abc", bits: 32, code: moerr.ErrConvertFailed},
		{name: "string overflow", in: "99999999999", bits: 32, code: moerr.ErrOutOfRange},
		{name: "int64 overflow", in: int64(1 << 40), bits: 32, code: moerr.ErrOutOfRange},
		{name: "uint64 overflow", in: uint64(math.MaxUint64), bits: 64, code: moerr.ErrOutOfRange},
		{name: "float half to even", in: 2.5, bits: 32, want: 2},
		{name: "float half to even up", in: 3.5, bits: 32, want: 4},
		{name: "float overflow", in: 1e20, bits: 64, code: moerr.ErrOutOfRange},
		{name: "nan", in: math.NaN(), bits: 64, code: moerr.ErrOutOfRange},
		{name: "decimal", in: decimal.RequireFromString("-7.5"), bits: 16, want: -8},
		{name: "big int", in: big.NewInt(-300), bits: 8, code: moerr.ErrOutOfRange},
		{name: "bool", in: true, bits: 8, want: 1},
		{name: "char", in: Char('A'), bits: 16, want: 65},
		{name: "named", in: shade(-3), bits: 16, want: -3},
		{name: "duration", in: gotime.Second, bits: 64, code: moerr.ErrConvertFailed},
		{name: "struct", in: opaque{}, bits: 64, code: moerr.ErrConvertFailed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ToInt64(c.in, InvariantLocale, c.bits, "Int")
			if c.code != 0 {
				require.True(t, moerr.IsMoErrCode(err, c.code), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestToUint64(t *testing.T) {
	u, err := ToUint64("-0", nil, 8, "Byte")
	require.NoError(t, err)
	require.Equal(t, uint64(0), u)

	_, err = ToUint64("-1", nil, 8, "Byte")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToUint64(256, nil, 8, "Byte")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToUint64(-1, nil, 64, "UInt64")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	u, err = ToUint64(decimal.RequireFromString("18446744073709551615"), nil, 64, "UInt64")
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), u)

	u, err = ToUint64(254.5, nil, 8, "Byte")
	require.NoError(t, err)
	require.Equal(t, uint64(254), u)
}

func TestToFloat64(t *testing.T) {
	de, err := LocaleFor("de-DE")
	require.NoError(t, err)
	f, err := ToFloat64("1.234,5", de, 64, "Double")
	require.NoError(t, err)
	require.Equal(t, 1234.5, f)

	fr, err := LocaleFor("fr-FR")
	require.NoError(t, err)
	f, err = ToFloat64("1 234,5", fr, 64, "Double")
	require.NoError(t, err)
	require.Equal(t, 1234.5, f)

	f, err = ToFloat64("-INF", nil, 64, "Double")
	require.NoError(t, err)
	require.True(t, math.IsInf(f, -1))

	_, err = ToFloat64("1e400", nil, 64, "Double")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToFloat64(Char('x'), nil, 64, "Double")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestToDecimal(t *testing.T) {
	d, err := ToDecimal("12.50", nil, "Decimal")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("12.5")))

	d, err = ToDecimal(uint64(math.MaxUint64), nil, "Decimal")
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", d.String())

	_, err = ToDecimal("1e30", nil, "Decimal")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToDecimal(math.Inf(1), nil, "Decimal")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToDecimal("twelve", nil, "Decimal")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestToBoolAndChar(t *testing.T) {
	b, err := ToBool("TRUE", nil)
	require.NoError(t, err)
	require.True(t, b)
	b, err = ToBool(0, nil)
	require.NoError(t, err)
	require.False(t, b)
	_, err = ToBool("maybe", nil)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))

	c, err := ToChar(65)
	require.NoError(t, err)
	require.Equal(t, Char('A'), c)
	_, err = ToChar("ab")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
	_, err = ToChar(-1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))
}

func TestToString(t *testing.T) {
	de, err := LocaleFor("de-DE")
	require.NoError(t, err)
	require.Equal(t, "True", ToString(true, nil))
	require.Equal(t, "2.5", ToString(2.5, nil))
	require.Equal(t, "2,5", ToString(2.5, de))
	require.Equal(t, "1,5", ToString(decimal.RequireFromString("1.5"), de))
	require.Equal(t, "x", ToString(Char('x'), nil))
	require.Equal(t, "-12", ToString(shade(-12), nil))
}

func TestToDateTime(t *testing.T) {
	got, err := ToDateTime("2022-03-04", nil)
	require.NoError(t, err)
	require.Equal(t, KindUnspecified, KindOf(got))
	require.Equal(t, 2022, got.Year())

	de, err := LocaleFor("de-DE")
	require.NoError(t, err)
	got, err = ToDateTime("04.03.2022", de)
	require.NoError(t, err)
	require.Equal(t, gotime.March, got.Month())
	require.Equal(t, 4, got.Day())

	_, err = ToDateTime("not a date", nil)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}

func TestToDuration(t *testing.T) {
	d, err := ToDuration("1.02:03:04")
	require.NoError(t, err)
	require.Equal(t, 26*gotime.Hour+3*gotime.Minute+4*gotime.Second, d)

	d, err = ToDuration("90m")
	require.NoError(t, err)
	require.Equal(t, 90*gotime.Minute, d)

	d, err = ToDuration(int64(5))
	require.NoError(t, err)
	require.Equal(t, gotime.Duration(5), d)

	d, err = ToDuration(uint(7))
	require.NoError(t, err)
	require.Equal(t, gotime.Duration(7), d)

	_, err = ToDuration(uint(math.MaxUint64))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToDuration(uint64(math.MaxUint64))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	_, err = ToDuration(1.5)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrConvertFailed))
}
