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
	"errors"
	"math"
	"math/big"
	"strconv"
	gotime "time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
	v2 "github.com/matrixorigin/colstore/pkg/util/metric/v2"
)

// errOverflow is raised inside the arithmetic helpers and turned into a
// typed overflow error by the storage that ran the aggregate.
var errOverflow = errors.New("aggregate overflow")

// varianceEpsilon is the relative magnitude below which a variance is
// treated as floating point cancellation and clamped to zero.
const varianceEpsilon = 1e-15

type aggSet uint16

func aggs(kinds ...types.AggregateType) aggSet {
	var a aggSet
	for _, k := range kinds {
		a |= 1 << k
	}
	return a
}

func (a aggSet) has(kind types.AggregateType) bool {
	return kind != types.AggNone && a&(1<<kind) != 0
}

var (
	numericAggs = aggs(types.AggSum, types.AggMean, types.AggMin, types.AggMax,
		types.AggFirst, types.AggCount, types.AggVar, types.AggStDev)
	timespanAggs = aggs(types.AggSum, types.AggMean, types.AggMin, types.AggMax,
		types.AggFirst, types.AggCount, types.AggStDev)
	orderedAggs = aggs(types.AggMin, types.AggMax, types.AggFirst, types.AggCount)
	opaqueAggs  = aggs(types.AggFirst, types.AggCount)
)

// arithFunc computes Sum, Mean, Var or StDev over non-null values. The
// slice is never empty.
type arithFunc[T any] func(values []T, kind types.AggregateType) (any, error)

func unsupportedAggregate(kind types.AggregateType, code types.StorageType) error {
	v2.AggregateErrorCounter(kind.String(), "unsupported").Inc()
	return moerr.NewAggregateNotSupportedNoCtx(kind.String(), code.String())
}

// aggregateError maps the internal overflow signal to the typed error.
func aggregateError(err error, kind types.AggregateType, code types.StorageType) error {
	if !errors.Is(err, errOverflow) {
		return err
	}
	v2.AggregateErrorCounter(kind.String(), "overflow").Inc()
	logutil.Debug("aggregate overflow",
		zap.String("kind", kind.String()),
		zap.String("type", code.String()))
	return moerr.NewAggregateOverflowNoCtx(code.String())
}

func addInt64(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, errOverflow
	}
	return a + b, nil
}

func addUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errOverflow
	}
	return a + b, nil
}

// variance is the single pass n*Σx² - (Σx)² estimator with the
// cancellation guard applied.
func variance(n int, sum, sqrsum float64, kind types.AggregateType) float64 {
	count := float64(n)
	v := count*sqrsum - sum*sum
	prec := v / (sum * sum)
	if prec < varianceEpsilon || v < 0 {
		v = 0
	} else {
		v = v / (count * (count - 1))
	}
	if kind == types.AggStDev {
		return math.Sqrt(v)
	}
	return v
}

func floatVariance[T constraints.Integer | constraints.Float](values []T, kind types.AggregateType) any {
	var sum, sqrsum float64
	for _, v := range values {
		f := float64(v)
		sum += f
		sqrsum += f * f
	}
	return variance(len(values), sum, sqrsum, kind)
}

func signedArith[T constraints.Signed](values []T, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggSum:
		var sum int64
		var err error
		for _, v := range values {
			if sum, err = addInt64(sum, int64(v)); err != nil {
				return nil, err
			}
		}
		return sum, nil
	case types.AggMean:
		sum := decimal.Zero
		for _, v := range values {
			sum = sum.Add(decimal.NewFromInt(int64(v)))
		}
		q, _ := sum.QuoRem(decimal.NewFromInt(int64(len(values))), 0)
		if q.GreaterThan(decimalMaxInt64) || q.LessThan(decimalMinInt64) {
			return nil, errOverflow
		}
		i := q.IntPart()
		if int64(T(i)) != i {
			return nil, errOverflow
		}
		return T(i), nil
	case types.AggVar, types.AggStDev:
		if len(values) < 2 {
			return nil, nil
		}
		return floatVariance(values, kind), nil
	}
	return nil, nil
}

func unsignedArith[T constraints.Unsigned](values []T, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggSum:
		var sum uint64
		var err error
		for _, v := range values {
			if sum, err = addUint64(sum, uint64(v)); err != nil {
				return nil, err
			}
		}
		return sum, nil
	case types.AggMean:
		sum := decimal.Zero
		for _, v := range values {
			sum = sum.Add(decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0))
		}
		q, _ := sum.QuoRem(decimal.NewFromInt(int64(len(values))), 0)
		u, err := strconv.ParseUint(q.String(), 10, 64)
		if err != nil || uint64(T(u)) != u {
			return nil, errOverflow
		}
		return T(u), nil
	case types.AggVar, types.AggStDev:
		if len(values) < 2 {
			return nil, nil
		}
		return floatVariance(values, kind), nil
	}
	return nil, nil
}

func float32Arith(values []float32, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggSum, types.AggMean:
		var sum float64
		finite := true
		for _, v := range values {
			sum += float64(v)
			finite = finite && !math.IsInf(float64(v), 0)
		}
		if kind == types.AggMean {
			sum /= float64(len(values))
		}
		if finite && !math.IsNaN(sum) && math.Abs(sum) > math.MaxFloat32 {
			return nil, errOverflow
		}
		return float32(sum), nil
	case types.AggVar, types.AggStDev:
		if len(values) < 2 {
			return nil, nil
		}
		return floatVariance(values, kind), nil
	}
	return nil, nil
}

func float64Arith(values []float64, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggSum, types.AggMean:
		var sum float64
		finite := true
		for _, v := range values {
			sum += v
			finite = finite && !math.IsInf(v, 0)
		}
		if finite && math.IsInf(sum, 0) {
			return nil, errOverflow
		}
		if kind == types.AggMean {
			return sum / float64(len(values)), nil
		}
		return sum, nil
	case types.AggVar, types.AggStDev:
		if len(values) < 2 {
			return nil, nil
		}
		return floatVariance(values, kind), nil
	}
	return nil, nil
}

// decimalSignificantDigits is the precision of a decimal mean.
const decimalSignificantDigits = 28

func decimalMean(sum decimal.Decimal, n int) decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	whole, _ := sum.QuoRem(count, 0)
	whole = whole.Abs()
	places := int32(decimalSignificantDigits)
	if !whole.IsZero() {
		places -= int32(len(whole.String()))
	}
	if places < 0 {
		places = 0
	}
	return sum.DivRound(count, places)
}

func decimalArith(values []decimal.Decimal, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggSum, types.AggMean:
		sum := decimal.Zero
		for _, v := range values {
			sum = sum.Add(v)
			if sum.Abs().GreaterThan(types.DecimalMax) {
				return nil, errOverflow
			}
		}
		if kind == types.AggMean {
			return decimalMean(sum, len(values)), nil
		}
		return sum, nil
	case types.AggVar, types.AggStDev:
		if len(values) < 2 {
			return nil, nil
		}
		var sum, sqrsum float64
		for _, v := range values {
			f, _ := v.Float64()
			sum += f
			sqrsum += f * f
		}
		return variance(len(values), sum, sqrsum, kind), nil
	}
	return nil, nil
}

func timespanArith(values []gotime.Duration, kind types.AggregateType) (any, error) {
	switch kind {
	case types.AggSum:
		var sum int64
		var err error
		for _, v := range values {
			if sum, err = addInt64(sum, int64(v)); err != nil {
				return nil, err
			}
		}
		return gotime.Duration(sum), nil
	case types.AggMean:
		mean := durationSum(values).Div(decimal.NewFromInt(int64(len(values)))).RoundBank(0)
		return gotime.Duration(mean.IntPart()), nil
	case types.AggStDev:
		if len(values) < 2 {
			return nil, nil
		}
		mean := durationSum(values).Div(decimal.NewFromInt(int64(len(values))))
		var varSum float64
		for _, v := range values {
			diff, _ := decimal.NewFromInt(int64(v)).Sub(mean).Float64()
			varSum += diff * diff
		}
		stdev := math.RoundToEven(math.Sqrt(varSum / float64(len(values)-1)))
		if stdev >= math.MaxInt64 {
			return gotime.Duration(math.MaxInt64), nil
		}
		return gotime.Duration(stdev), nil
	}
	return nil, nil
}

func durationSum(values []gotime.Duration) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromInt(int64(v)))
	}
	return sum
}

var (
	decimalMaxInt64 = decimal.NewFromInt(math.MaxInt64)
	decimalMinInt64 = decimal.NewFromInt(math.MinInt64)
)
