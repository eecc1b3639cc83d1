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
	"reflect"
	gotime "time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
	v2 "github.com/matrixorigin/colstore/pkg/util/metric/v2"
)

// New classifies t and creates its storage.
func New(t reflect.Type, opts Options) (Storage, error) {
	return CreateStorage(t, types.ClassifyType(t), opts)
}

// CreateStorage builds the storage for a column of type t stored as code.
// Types without a dedicated code get a custom storage when they are
// null-aware and an object storage otherwise.
func CreateStorage(t reflect.Type, code types.StorageType, opts Options) (Storage, error) {
	st, err := createStorage(t, code, opts)
	if err != nil {
		return nil, err
	}
	v2.StorageCreatedCounter(st.StorageType().String()).Inc()
	logutil.Debug("create column storage",
		zap.String("type", types.TypeName(st.DataType())),
		zap.String("storage", st.StorageType().String()))
	return st, nil
}

func createStorage(t reflect.Type, code types.StorageType, opts Options) (Storage, error) {
	switch code {
	case types.T_empty:
		if t == nil {
			return nil, moerr.NewInvalidStorageTypeNoCtx(code.String())
		}
		if caps := types.ImplementsCapabilities(t); caps.NullAware {
			return newCustomStorage(t, opts), nil
		}
		return newObjectStorage(t, code, opts), nil
	case types.T_dbnull:
		return nil, moerr.NewInvalidStorageTypeNoCtx(code.String())
	case types.T_object, types.T_bytes, types.T_chars, types.T_type,
		types.T_datetimeoffset, types.T_biginteger, types.T_uri:
		if t == nil {
			t = types.ElemType(code)
		}
		return newObjectStorage(t, code, opts), nil
	}
	if code.IsSqlType() {
		return newSqlTypeStorage(code, opts)
	}
	if st := newScalarStorage(code, opts); st != nil {
		return st, nil
	}
	return nil, moerr.NewInvalidStorageTypeNoCtx(code.String())
}

// newScalarStorage returns the value storage of a scalar code, or nil when
// code is not scalar.
func newScalarStorage(code types.StorageType, opts Options) Storage {
	switch code {
	case types.T_bool:
		return newValueStorage(code, newBoolOps(), opts)
	case types.T_char:
		return newValueStorage(code, newCharOps(), opts)
	case types.T_int8:
		return newValueStorage(code, newSignedOps[int8](code, 8), opts)
	case types.T_uint8:
		return newValueStorage(code, newUnsignedOps[uint8](code, 8), opts)
	case types.T_int16:
		return newValueStorage(code, newSignedOps[int16](code, 16), opts)
	case types.T_uint16:
		return newValueStorage(code, newUnsignedOps[uint16](code, 16), opts)
	case types.T_int32:
		return newValueStorage(code, newSignedOps[int32](code, 32), opts)
	case types.T_uint32:
		return newValueStorage(code, newUnsignedOps[uint32](code, 32), opts)
	case types.T_int64:
		return newValueStorage(code, newSignedOps[int64](code, 64), opts)
	case types.T_uint64:
		return newValueStorage(code, newUnsignedOps[uint64](code, 64), opts)
	case types.T_float32:
		return newValueStorage(code, newFloat32Ops(), opts)
	case types.T_float64:
		return newValueStorage(code, newFloat64Ops(), opts)
	case types.T_decimal:
		return newValueStorage(code, newDecimalOps(), opts)
	case types.T_datetime:
		return newDateTimeStorage(code, opts)
	case types.T_timespan:
		return newValueStorage(code, newTimeSpanOps(), opts)
	case types.T_string:
		return newValueStorage(code, newStringOps(opts), opts)
	case types.T_guid:
		return newValueStorage(code, newGuidOps(), opts)
	}
	return nil
}

func newSqlTypeStorage(code types.StorageType, opts Options) (Storage, error) {
	switch code {
	case types.T_sqlbinary:
		return newSqlStorage[[]byte](code, newObjectStorage(types.BytesType, code, opts)), nil
	case types.T_sqlboolean:
		return newSqlStorage[bool](code, newValueStorage(code, newBoolOps(), opts)), nil
	case types.T_sqlbyte:
		return newSqlStorage[uint8](code, newValueStorage(code, newUnsignedOps[uint8](code, 8), opts)), nil
	case types.T_sqlchars:
		return newSqlStorage[[]types.Char](code,
			newObjectStorage(reflect.TypeOf([]types.Char(nil)), code, opts)), nil
	case types.T_sqldatetime:
		opts.DateTimeMode = types.DateTimeModeUnspecified
		return newSqlStorage[gotime.Time](code, newDateTimeStorage(code, opts)), nil
	case types.T_sqldecimal:
		return newSqlStorage[decimal.Decimal](code, newValueStorage(code, newDecimalOps(), opts)), nil
	case types.T_sqldouble:
		return newSqlStorage[float64](code, newValueStorage(code, newFloat64Ops(), opts)), nil
	case types.T_sqlguid:
		return newSqlStorage[uuid.UUID](code, newValueStorage(code, newGuidOps(), opts)), nil
	case types.T_sqlint16:
		return newSqlStorage[int16](code, newValueStorage(code, newSignedOps[int16](code, 16), opts)), nil
	case types.T_sqlint32:
		return newSqlStorage[int32](code, newValueStorage(code, newSignedOps[int32](code, 32), opts)), nil
	case types.T_sqlint64:
		return newSqlStorage[int64](code, newValueStorage(code, newSignedOps[int64](code, 64), opts)), nil
	case types.T_sqlmoney:
		return newSqlStorage[types.Money](code, newValueStorage(code, newMoneyOps(), opts)), nil
	case types.T_sqlsingle:
		return newSqlStorage[float32](code, newValueStorage(code, newFloat32Ops(), opts)), nil
	case types.T_sqlstring:
		return newSqlStorage[string](code, newValueStorage(code, newStringOps(opts), opts)), nil
	}
	return nil, moerr.NewInvalidStorageTypeNoCtx(code.String())
}
