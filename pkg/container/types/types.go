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
	"reflect"
)

// StorageType identifies the storage implementation backing a column.
type StorageType uint8

const (
	T_empty StorageType = iota
	T_object
	T_dbnull
	T_bool
	T_char
	T_int8
	T_uint8
	T_int16
	T_uint16
	T_int32
	T_uint32
	T_int64
	T_uint64
	T_float32
	T_float64
	T_decimal
	T_datetime
	T_timespan
	T_string
	T_guid

	T_bytes
	T_chars
	T_type
	T_datetimeoffset
	T_biginteger
	T_uri

	T_sqlbinary
	T_sqlboolean
	T_sqlbyte
	T_sqlchars
	T_sqldatetime
	T_sqldecimal
	T_sqldouble
	T_sqlguid
	T_sqlint16
	T_sqlint32
	T_sqlint64
	T_sqlmoney
	T_sqlsingle
	T_sqlstring
)

var storageTypeNames = [...]string{
	T_empty:          "Empty",
	T_object:         "Object",
	T_dbnull:         "DBNull",
	T_bool:           "Boolean",
	T_char:           "Char",
	T_int8:           "SByte",
	T_uint8:          "Byte",
	T_int16:          "Int16",
	T_uint16:         "UInt16",
	T_int32:          "Int32",
	T_uint32:         "UInt32",
	T_int64:          "Int64",
	T_uint64:         "UInt64",
	T_float32:        "Single",
	T_float64:        "Double",
	T_decimal:        "Decimal",
	T_datetime:       "DateTime",
	T_timespan:       "TimeSpan",
	T_string:         "String",
	T_guid:           "Guid",
	T_bytes:          "ByteArray",
	T_chars:          "CharArray",
	T_type:           "Type",
	T_datetimeoffset: "DateTimeOffset",
	T_biginteger:     "BigInteger",
	T_uri:            "Uri",
	T_sqlbinary:      "SqlBinary",
	T_sqlboolean:     "SqlBoolean",
	T_sqlbyte:        "SqlByte",
	T_sqlchars:       "SqlChars",
	T_sqldatetime:    "SqlDateTime",
	T_sqldecimal:     "SqlDecimal",
	T_sqldouble:      "SqlDouble",
	T_sqlguid:        "SqlGuid",
	T_sqlint16:       "SqlInt16",
	T_sqlint32:       "SqlInt32",
	T_sqlint64:       "SqlInt64",
	T_sqlmoney:       "SqlMoney",
	T_sqlsingle:      "SqlSingle",
	T_sqlstring:      "SqlString",
}

func (t StorageType) String() string {
	if int(t) < len(storageTypeNames) {
		return storageTypeNames[t]
	}
	return fmt.Sprintf("StorageType(%d)", uint8(t))
}

// IsSqlType reports whether t is one of the Sql* nullable types.
func (t StorageType) IsSqlType() bool {
	return t >= T_sqlbinary && t <= T_sqlstring
}

// IsCustomType reports whether values of t go through object storage rules.
func (t StorageType) IsCustomType() bool {
	return t == T_object || t == T_empty || t == T_chars
}

// IsNumeric reports whether t supports arithmetic aggregates.
func (t StorageType) IsNumeric() bool {
	return t >= T_int8 && t <= T_decimal
}

// AggregateType is the aggregate function requested from a storage.
type AggregateType uint8

const (
	AggNone AggregateType = iota
	AggSum
	AggMean
	AggMin
	AggMax
	AggFirst
	AggCount
	AggVar
	AggStDev
)

var aggregateNames = [...]string{
	AggNone:  "None",
	AggSum:   "Sum",
	AggMean:  "Mean",
	AggMin:   "Min",
	AggMax:   "Max",
	AggFirst: "First",
	AggCount: "Count",
	AggVar:   "Var",
	AggStDev: "StDev",
}

func (a AggregateType) String() string {
	if int(a) < len(aggregateNames) {
		return aggregateNames[a]
	}
	return fmt.Sprintf("AggregateType(%d)", uint8(a))
}

// DBNullValue is the type of DBNull.
type DBNullValue struct{}

// DBNull is the sentinel returned for null records of non-Sql storages.
var DBNull = DBNullValue{}

func (DBNullValue) String() string { return "" }

func (DBNullValue) IsNull() bool { return true }

// IsObjectNull reports whether v stands for a missing value: nil, a nil
// pointer, DBNull or a NullAware value that says so.
func IsObjectNull(v any) bool {
	if v == nil {
		return true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return true
	}
	if n, ok := v.(NullAware); ok {
		return n.IsNull()
	}
	return false
}

// Char is a single UTF-16 style character. It is a distinct type from int32
// so that columns of characters and columns of integers classify apart.
type Char rune

func (c Char) String() string {
	return string(rune(c))
}

// CharsToString joins a character array.
func CharsToString(cs []Char) string {
	rs := make([]rune, len(cs))
	for i, c := range cs {
		rs[i] = rune(c)
	}
	return string(rs)
}

// StringToChars splits s into characters.
func StringToChars(s string) []Char {
	cs := make([]Char, 0, len(s))
	for _, r := range s {
		cs = append(cs, Char(r))
	}
	return cs
}
