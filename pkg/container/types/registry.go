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
	"math/big"
	"net/url"
	"reflect"
	gotime "time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matrixorigin/colstore/pkg/common/cowmap"
	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

var (
	AnyType      = reflect.TypeOf((*any)(nil)).Elem()
	TypeType     = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	BytesType    = reflect.TypeOf([]byte(nil))
	StringType   = reflect.TypeOf("")
	DateTimeType = reflect.TypeOf(gotime.Time{})
	DecimalType  = reflect.TypeOf(decimal.Decimal{})
	GuidType     = reflect.TypeOf(uuid.UUID{})
)

var storageTypes = map[reflect.Type]StorageType{
	AnyType:                            T_object,
	reflect.TypeOf(DBNull):             T_dbnull,
	reflect.TypeOf(false):              T_bool,
	reflect.TypeOf(Char(0)):            T_char,
	reflect.TypeOf(int8(0)):            T_int8,
	reflect.TypeOf(uint8(0)):           T_uint8,
	reflect.TypeOf(int16(0)):           T_int16,
	reflect.TypeOf(uint16(0)):          T_uint16,
	reflect.TypeOf(int32(0)):           T_int32,
	reflect.TypeOf(uint32(0)):          T_uint32,
	reflect.TypeOf(int64(0)):           T_int64,
	reflect.TypeOf(uint64(0)):          T_uint64,
	reflect.TypeOf(float32(0)):         T_float32,
	reflect.TypeOf(float64(0)):         T_float64,
	DecimalType:                        T_decimal,
	DateTimeType:                       T_datetime,
	reflect.TypeOf(gotime.Duration(0)): T_timespan,
	StringType:                         T_string,
	GuidType:                           T_guid,
	BytesType:                          T_bytes,
	reflect.TypeOf([]Char(nil)):        T_chars,
	TypeType:                           T_type,
	reflect.TypeOf(DateTimeOffset{}):   T_datetimeoffset,
	reflect.TypeOf((*big.Int)(nil)):    T_biginteger,
	reflect.TypeOf((*url.URL)(nil)):    T_uri,

	reflect.TypeOf(SqlBinary{}):   T_sqlbinary,
	reflect.TypeOf(SqlBoolean{}):  T_sqlboolean,
	reflect.TypeOf(SqlByte{}):     T_sqlbyte,
	reflect.TypeOf(SqlChars{}):    T_sqlchars,
	reflect.TypeOf(SqlDateTime{}): T_sqldatetime,
	reflect.TypeOf(SqlDecimal{}):  T_sqldecimal,
	reflect.TypeOf(SqlDouble{}):   T_sqldouble,
	reflect.TypeOf(SqlGuid{}):     T_sqlguid,
	reflect.TypeOf(SqlInt16{}):    T_sqlint16,
	reflect.TypeOf(SqlInt32{}):    T_sqlint32,
	reflect.TypeOf(SqlInt64{}):    T_sqlint64,
	reflect.TypeOf(SqlMoney{}):    T_sqlmoney,
	reflect.TypeOf(SqlSingle{}):   T_sqlsingle,
	reflect.TypeOf(SqlString{}):   T_sqlstring,
}

// ClassifyType maps a Go type to its storage type code. Known types are
// looked up directly. Other types with a primitive underlying kind, such as
// enums, take the code of that kind. Everything else is Empty.
func ClassifyType(t reflect.Type) StorageType {
	if t == nil {
		return T_empty
	}
	if code, ok := storageTypes[t]; ok {
		return code
	}
	switch t.Kind() {
	case reflect.Bool:
		return T_bool
	case reflect.Int8:
		return T_int8
	case reflect.Uint8:
		return T_uint8
	case reflect.Int16:
		return T_int16
	case reflect.Uint16:
		return T_uint16
	case reflect.Int32:
		return T_int32
	case reflect.Uint32:
		return T_uint32
	case reflect.Int, reflect.Int64:
		return T_int64
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return T_uint64
	case reflect.Float32:
		return T_float32
	case reflect.Float64:
		return T_float64
	case reflect.String:
		return T_string
	}
	return T_empty
}

// ElemType is the Go type a storage type code stores. Empty and Object have
// no fixed element type and return AnyType.
func ElemType(code StorageType) reflect.Type {
	for t, c := range storageTypes {
		if c == code && c != T_object {
			return t
		}
	}
	return AnyType
}

var (
	typesByName cowmap.Map[string, reflect.Type]
	namesByType cowmap.Map[reflect.Type, string]
)

func init() {
	for t := range storageTypes {
		name := t.String()
		if t == AnyType {
			name = "object"
		}
		_ = RegisterType(name, t)
	}
}

// RegisterType binds name to t for Type columns and instance type lookups.
// A name already bound to another type is rejected.
func RegisterType(name string, t reflect.Type) error {
	bound, _, err := typesByName.LoadOrStore(name, func() (reflect.Type, error) {
		return t, nil
	})
	if err != nil {
		return err
	}
	if bound != t {
		return moerr.NewInvalidInputNoCtx("type name %s already bound to %s", name, bound.String())
	}
	_, _, err = namesByType.LoadOrStore(t, func() (string, error) {
		return name, nil
	})
	return err
}

// TypeName returns the registered name of t, or its Go spelling.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if name, ok := namesByType.Load(t); ok {
		return name
	}
	return t.String()
}

// ResolveType looks a registered name up. Dynamic types that do not handle
// their own XML are refused since nothing could persist them.
func ResolveType(name string) (reflect.Type, error) {
	t, ok := typesByName.Load(name)
	if !ok {
		return nil, moerr.NewTypeNotFoundNoCtx(name)
	}
	if caps := ImplementsCapabilities(t); caps.Dynamic && !caps.XmlSerializable {
		return nil, moerr.NewInvalidDynamicTypeNoCtx()
	}
	return t, nil
}

func typeOf(v any) reflect.Type {
	if v == nil {
		return nil
	}
	return reflect.TypeOf(v)
}
