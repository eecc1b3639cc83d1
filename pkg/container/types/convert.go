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
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	gotime "time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

// DecimalMax is the largest magnitude a Decimal column holds.
var DecimalMax = decimal.RequireFromString("79228162514264337593543950335")

var (
	decimalMaxInt64  = decimal.NewFromInt(math.MaxInt64)
	decimalMinInt64  = decimal.NewFromInt(math.MinInt64)
	decimalMaxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
)

func overflowError(v any, target string) error {
	return moerr.NewOutOfRangeNoCtx(target, "value '%v'", v)
}

func convertError(v any, target string) error {
	return moerr.NewConvertFailedNoCtx(v, target)
}

// ToInt64 converts a boxed value to a signed integer that fits in bits.
// Fractions round half to even.
func ToInt64(v any, loc *Locale, bits int, target string) (int64, error) {
	lo := int64(-1) << (bits - 1)
	hi := -(lo + 1)
	inRange := func(i int64) (int64, error) {
		if i < lo || i > hi {
			return 0, overflowError(v, target)
		}
		return i, nil
	}

	switch x := v.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, bits)
		if err != nil {
			return 0, parseError(err, v, target)
		}
		return i, nil
	case Char:
		return inRange(int64(x))
	case decimal.Decimal:
		return decimalToInt64(x.RoundBank(0), v, lo, hi, target)
	case Money:
		return decimalToInt64(x.Decimal.RoundBank(0), v, lo, hi, target)
	case *big.Int:
		if x == nil || !x.IsInt64() {
			return 0, overflowError(v, target)
		}
		return inRange(x.Int64())
	case gotime.Duration:
		return 0, convertError(v, target)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return inRange(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > uint64(hi) {
			return 0, overflowError(v, target)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := math.RoundToEven(rv.Float())
		if math.IsNaN(f) || f < float64(lo) || f >= -float64(lo) {
			return 0, overflowError(v, target)
		}
		return int64(f), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return ToInt64(rv.String(), loc, bits, target)
	}
	return 0, convertError(v, target)
}

// ToUint64 converts a boxed value to an unsigned integer that fits in bits.
func ToUint64(v any, loc *Locale, bits int, target string) (uint64, error) {
	hi := uint64(math.MaxUint64) >> (64 - bits)
	inRange := func(u uint64) (uint64, error) {
		if u > hi {
			return 0, overflowError(v, target)
		}
		return u, nil
	}

	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if strings.HasPrefix(s, "-") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil && i == 0 {
				return 0, nil
			}
			return 0, overflowError(v, target)
		}
		u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, bits)
		if err != nil {
			return 0, parseError(err, v, target)
		}
		return u, nil
	case Char:
		if x < 0 {
			return 0, overflowError(v, target)
		}
		return inRange(uint64(x))
	case decimal.Decimal:
		return decimalToUint64(x.RoundBank(0), v, hi, target)
	case Money:
		return decimalToUint64(x.Decimal.RoundBank(0), v, hi, target)
	case *big.Int:
		if x == nil || !x.IsUint64() {
			return 0, overflowError(v, target)
		}
		return inRange(x.Uint64())
	case gotime.Duration:
		return 0, convertError(v, target)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, overflowError(v, target)
		}
		return inRange(uint64(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return inRange(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := math.RoundToEven(rv.Float())
		if math.IsNaN(f) || f < 0 || f >= float64(hi)+1 {
			return 0, overflowError(v, target)
		}
		return uint64(f), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return ToUint64(rv.String(), loc, bits, target)
	}
	return 0, convertError(v, target)
}

// ToFloat64 converts a boxed value to a float. bits selects the precision
// used when parsing text.
func ToFloat64(v any, loc *Locale, bits int, target string) (float64, error) {
	switch x := v.(type) {
	case string:
		s := loc.normalizeNumber(x)
		switch strings.ToUpper(s) {
		case "INF", "+INF", "INFINITY":
			return math.Inf(1), nil
		case "-INF", "-INFINITY":
			return math.Inf(-1), nil
		case "NAN":
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, parseError(err, v, target)
		}
		return f, nil
	case decimal.Decimal:
		f, _ := x.Float64()
		return f, nil
	case Money:
		f, _ := x.Decimal.Float64()
		return f, nil
	case *big.Int:
		if x == nil {
			return 0, convertError(v, target)
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case Char, gotime.Duration:
		return 0, convertError(v, target)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return ToFloat64(rv.String(), loc, bits, target)
	}
	return 0, convertError(v, target)
}

// ToDecimal converts a boxed value to a decimal within DecimalMax.
func ToDecimal(v any, loc *Locale, target string) (decimal.Decimal, error) {
	d, err := toDecimal(v, loc, target)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Abs().GreaterThan(DecimalMax) {
		return decimal.Zero, overflowError(v, target)
	}
	return d, nil
}

func toDecimal(v any, loc *Locale, target string) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case Money:
		return x.Decimal, nil
	case string:
		d, err := decimal.NewFromString(loc.normalizeNumber(x))
		if err != nil {
			return decimal.Zero, convertError(v, target)
		}
		return d, nil
	case *big.Int:
		if x == nil {
			return decimal.Zero, convertError(v, target)
		}
		return decimal.NewFromBigInt(x, 0), nil
	case Char, gotime.Duration:
		return decimal.Zero, convertError(v, target)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, overflowError(v, target)
		}
		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), nil
		}
		return decimal.NewFromFloat(f), nil
	case reflect.Bool:
		if rv.Bool() {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	case reflect.String:
		return toDecimal(rv.String(), loc, target)
	}
	return decimal.Zero, convertError(v, target)
}

// ToBool converts a boxed value to a boolean. Numbers are true when not zero.
func ToBool(v any, loc *Locale) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return ParseBool(strings.TrimSpace(x))
	case decimal.Decimal:
		return !x.IsZero(), nil
	case Char, gotime.Duration:
		return false, convertError(v, "Boolean")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	case reflect.String:
		return ToBool(rv.String(), loc)
	}
	return false, convertError(v, "Boolean")
}

// ToChar converts a boxed value to a character. Text must hold exactly one.
func ToChar(v any) (Char, error) {
	switch x := v.(type) {
	case Char:
		return x, nil
	case string:
		if utf8.RuneCountInString(x) != 1 {
			return 0, convertError(v, "Char")
		}
		r, _ := utf8.DecodeRuneInString(x)
		return Char(r), nil
	case bool, decimal.Decimal, gotime.Duration:
		return 0, convertError(v, "Char")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 || i > utf8.MaxRune {
			return 0, overflowError(v, "Char")
		}
		return Char(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > utf8.MaxRune {
			return 0, overflowError(v, "Char")
		}
		return Char(u), nil
	case reflect.String:
		return ToChar(rv.String())
	}
	return 0, convertError(v, "Char")
}

// ToString renders a boxed value as text, formatting numbers for loc.
func ToString(v any, loc *Locale) string {
	switch x := v.(type) {
	case string:
		return x
	case Char:
		return x.String()
	case []Char:
		return CharsToString(x)
	case decimal.Decimal:
		return loc.formatNumber(x.String())
	case gotime.Time:
		return x.Format(loc.dateLayouts()[0])
	case interface{ String() string }:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return loc.formatNumber(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		return loc.formatNumber(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Bool:
		if rv.Bool() {
			return "True"
		}
		return "False"
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// ToDateTime converts a boxed value to a time. Text without a zone parses
// as an unspecified time. Text with a zone is converted to local time.
func ToDateTime(v any, loc *Locale) (gotime.Time, error) {
	switch x := v.(type) {
	case gotime.Time:
		return x, nil
	case DateTimeOffset:
		return x.Time, nil
	case string:
		s := strings.TrimSpace(x)
		if t, err := gotime.Parse(gotime.RFC3339Nano, s); err == nil {
			return ToLocal(t), nil
		}
		for _, layout := range defaultDateLayouts {
			if t, err := gotime.ParseInLocation(layout, s, Unspecified); err == nil {
				return t, nil
			}
		}
		for _, layout := range loc.dateLayouts() {
			if t, err := gotime.ParseInLocation(layout, s, Unspecified); err == nil {
				return t, nil
			}
		}
	}
	return gotime.Time{}, convertError(v, "DateTime")
}

var defaultDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToDuration converts a boxed value to a time span. Integers count
// nanoseconds.
func ToDuration(v any) (gotime.Duration, error) {
	switch x := v.(type) {
	case gotime.Duration:
		return x, nil
	case string:
		d, err := ParseTimeSpan(x)
		if err != nil {
			return 0, err
		}
		return d, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return gotime.Duration(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return gotime.Duration(rv.Uint()), nil
	case reflect.Uint64, reflect.Uint:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, overflowError(v, "TimeSpan")
		}
		return gotime.Duration(u), nil
	}
	return 0, convertError(v, "TimeSpan")
}

func parseError(err error, v any, target string) error {
	if errors.Is(err, strconv.ErrRange) {
		return overflowError(v, target)
	}
	return convertError(v, target)
}

func decimalToInt64(d decimal.Decimal, v any, lo, hi int64, target string) (int64, error) {
	if d.GreaterThan(decimalMaxInt64) || d.LessThan(decimalMinInt64) {
		return 0, overflowError(v, target)
	}
	i := d.IntPart()
	if i < lo || i > hi {
		return 0, overflowError(v, target)
	}
	return i, nil
}

func decimalToUint64(d decimal.Decimal, v any, hi uint64, target string) (uint64, error) {
	if d.Sign() < 0 || d.GreaterThan(decimalMaxUint64) {
		return 0, overflowError(v, target)
	}
	u, err := strconv.ParseUint(d.Truncate(0).String(), 10, 64)
	if err != nil || u > hi {
		return 0, overflowError(v, target)
	}
	return u, nil
}
