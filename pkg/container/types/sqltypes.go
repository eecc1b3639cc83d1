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
	"fmt"
	gotime "time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SqlValue is a value that may be null in the SQL sense. The zero value is
// null.
type SqlValue[T any] struct {
	Value T
	Valid bool
}

func NewSql[T any](v T) SqlValue[T] {
	return SqlValue[T]{Value: v, Valid: true}
}

func (v SqlValue[T]) IsNull() bool {
	return !v.Valid
}

// Interface returns the wrapped value, or nil when v is null.
func (v SqlValue[T]) Interface() any {
	if !v.Valid {
		return nil
	}
	return v.Value
}

func (v SqlValue[T]) String() string {
	if !v.Valid {
		return "Null"
	}
	return fmt.Sprint(v.Value)
}

type (
	SqlBinary   = SqlValue[[]byte]
	SqlBoolean  = SqlValue[bool]
	SqlByte     = SqlValue[uint8]
	SqlChars    = SqlValue[[]Char]
	SqlDateTime = SqlValue[gotime.Time]
	SqlDecimal  = SqlValue[decimal.Decimal]
	SqlDouble   = SqlValue[float64]
	SqlGuid     = SqlValue[uuid.UUID]
	SqlInt16    = SqlValue[int16]
	SqlInt32    = SqlValue[int32]
	SqlInt64    = SqlValue[int64]
	SqlMoney    = SqlValue[Money]
	SqlSingle   = SqlValue[float32]
	SqlString   = SqlValue[string]
)

// MoneyScale is the number of fractional digits money keeps.
const MoneyScale = 4

// Money is a decimal amount rounded to four fractional digits.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(MoneyScale)}
}

func (m Money) String() string {
	return m.StringFixed(MoneyScale)
}
