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

package moerr

import "context"

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(context.Background(), msg, args...)
}

func NewNYINoCtx(msg string, args ...any) *Error {
	return NewNYI(context.Background(), msg, args...)
}

func NewNotSupportedNoCtx(msg string, args ...any) *Error {
	return NewNotSupported(context.Background(), msg, args...)
}

func NewOutOfRangeNoCtx(typ string, msg string, args ...any) *Error {
	return NewOutOfRange(context.Background(), typ, msg, args...)
}

func NewConvertFailedNoCtx(val any, typ string) *Error {
	return NewConvertFailed(context.Background(), val, typ)
}

func NewAggregateNotSupportedNoCtx(kind string, typ string) *Error {
	return NewAggregateNotSupported(context.Background(), kind, typ)
}

func NewAggregateOverflowNoCtx(typ string) *Error {
	return NewAggregateOverflow(context.Background(), typ)
}

func NewBadConfigNoCtx(msg string, args ...any) *Error {
	return NewBadConfig(context.Background(), msg, args...)
}

func NewInvalidInputNoCtx(msg string, args ...any) *Error {
	return NewInvalidInput(context.Background(), msg, args...)
}

func NewTypeNotFoundNoCtx(name string) *Error {
	return NewTypeNotFound(context.Background(), name)
}

func NewNullNotAllowedNoCtx(column string) *Error {
	return NewNullNotAllowed(context.Background(), column)
}

func NewInvalidStorageTypeNoCtx(code string) *Error {
	return NewInvalidStorageType(context.Background(), code)
}

func NewSetInvalidDataTypeNoCtx(valueType string, columnType string) *Error {
	return NewSetInvalidDataType(context.Background(), valueType, columnType)
}

func NewProblematicCharsNoCtx(ch rune) *Error {
	return NewProblematicChars(context.Background(), ch)
}

func NewNotComparableNoCtx(typ string) *Error {
	return NewNotComparable(context.Background(), typ)
}

func NewInvalidDynamicTypeNoCtx() *Error {
	return NewInvalidDynamicType(context.Background())
}

func NewInvalidDateTimeModeNoCtx(mode string) *Error {
	return NewInvalidDateTimeMode(context.Background(), mode)
}

func NewCannotSetDateTimeModeNoCtx() *Error {
	return NewCannotSetDateTimeMode(context.Background())
}

func NewCantChangeDateTimeModeNoCtx(from, to string) *Error {
	return NewCantChangeDateTimeMode(context.Background(), from, to)
}

func NewSetFailedNoCtx(val any, column string, typ string, cause error) *Error {
	return NewSetFailed(context.Background(), val, column, typ, cause)
}

func NewDuplicateColumnNoCtx(column string) *Error {
	return NewDuplicateColumn(context.Background(), column)
}

func NewColumnNotFoundNoCtx(column string, table string) *Error {
	return NewColumnNotFound(context.Background(), column, table)
}

func NewCannotDeserializeObjectNoCtx(typ string) *Error {
	return NewCannotDeserializeObject(context.Background(), typ)
}
