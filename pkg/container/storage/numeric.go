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
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

func isZero[T comparable](v T) bool {
	var zero T
	return v == zero
}

func xmlValueError(s string, code types.StorageType, err error) error {
	if moerr.IsMoErrCode(err, moerr.ErrOutOfRange) {
		return err
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return moerr.NewOutOfRangeNoCtx(code.String(), "value '%s'", s)
	}
	return moerr.NewConvertFailedNoCtx(s, code.String())
}

func newSignedOps[T constraints.Signed](code types.StorageType, bits int) valueOps[T] {
	name := code.String()
	return valueOps[T]{
		isDefault: isZero[T],
		compare:   cmp.Compare[T],
		convert: func(v any, loc *types.Locale) (T, error) {
			i, err := types.ToInt64(v, loc, bits, name)
			return T(i), err
		},
		toXml: func(v T) string {
			return strconv.FormatInt(int64(v), 10)
		},
		fromXml: func(s string) (T, error) {
			i, err := strconv.ParseInt(strings.TrimSpace(s), 10, bits)
			if err != nil {
				return 0, xmlValueError(s, code, err)
			}
			return T(i), nil
		},
		aggregates: numericAggs,
		arith:      signedArith[T],
	}
}

func newUnsignedOps[T constraints.Unsigned](code types.StorageType, bits int) valueOps[T] {
	name := code.String()
	return valueOps[T]{
		isDefault: isZero[T],
		compare:   cmp.Compare[T],
		convert: func(v any, loc *types.Locale) (T, error) {
			u, err := types.ToUint64(v, loc, bits, name)
			return T(u), err
		},
		toXml: func(v T) string {
			return strconv.FormatUint(uint64(v), 10)
		},
		fromXml: func(s string) (T, error) {
			u, err := strconv.ParseUint(strings.TrimSpace(s), 10, bits)
			if err != nil {
				return 0, xmlValueError(s, code, err)
			}
			return T(u), nil
		},
		aggregates: numericAggs,
		arith:      unsignedArith[T],
	}
}

func newFloat32Ops() valueOps[float32] {
	name := types.T_float32.String()
	return valueOps[float32]{
		isDefault: isZero[float32],
		compare:   cmp.Compare[float32],
		convert: func(v any, loc *types.Locale) (float32, error) {
			f, err := types.ToFloat64(v, loc, 32, name)
			if err != nil {
				return 0, err
			}
			if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
				return 0, moerr.NewOutOfRangeNoCtx(name, "value '%v'", v)
			}
			return float32(f), nil
		},
		toXml: func(v float32) string {
			return types.FormatXmlFloat(float64(v), 32)
		},
		fromXml: func(s string) (float32, error) {
			f, err := types.ParseXmlFloat(s, 32)
			if err != nil {
				return 0, xmlValueError(s, types.T_float32, err)
			}
			return float32(f), nil
		},
		aggregates: numericAggs,
		arith:      float32Arith,
	}
}

func newFloat64Ops() valueOps[float64] {
	name := types.T_float64.String()
	return valueOps[float64]{
		isDefault: isZero[float64],
		compare:   cmp.Compare[float64],
		convert: func(v any, loc *types.Locale) (float64, error) {
			return types.ToFloat64(v, loc, 64, name)
		},
		toXml: func(v float64) string {
			return types.FormatXmlFloat(v, 64)
		},
		fromXml: func(s string) (float64, error) {
			f, err := types.ParseXmlFloat(s, 64)
			if err != nil {
				return 0, xmlValueError(s, types.T_float64, err)
			}
			return f, nil
		},
		aggregates: numericAggs,
		arith:      float64Arith,
	}
}

func newDecimalOps() valueOps[decimal.Decimal] {
	name := types.T_decimal.String()
	return valueOps[decimal.Decimal]{
		isDefault: func(v decimal.Decimal) bool {
			return v.IsZero()
		},
		compare: func(a, b decimal.Decimal) int {
			return a.Cmp(b)
		},
		convert: func(v any, loc *types.Locale) (decimal.Decimal, error) {
			return types.ToDecimal(v, loc, name)
		},
		toXml: func(v decimal.Decimal) string {
			return v.String()
		},
		fromXml: func(s string) (decimal.Decimal, error) {
			return types.ToDecimal(strings.TrimSpace(s), types.InvariantLocale, name)
		},
		validate: func(v decimal.Decimal) error {
			if v.Abs().GreaterThan(types.DecimalMax) {
				return moerr.NewOutOfRangeNoCtx(name, "value '%s'", v.String())
			}
			return nil
		},
		aggregates: numericAggs,
		arith:      decimalArith,
	}
}
