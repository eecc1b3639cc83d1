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

import (
	"context"
	"errors"
	"fmt"
)

const (
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart        uint16 = 20100
	ErrInternal     uint16 = 20101
	ErrNYI          uint16 = 20102
	ErrNotSupported uint16 = 20105

	// Group 2: numeric and conversion
	ErrOutOfRange            uint16 = 20201
	ErrConvertFailed         uint16 = 20202
	ErrAggregateNotSupported uint16 = 20203
	ErrAggregateOverflow     uint16 = 20204

	// Group 3: invalid input
	ErrBadConfig      uint16 = 20300
	ErrInvalidInput   uint16 = 20301
	ErrTypeNotFound   uint16 = 20302
	ErrNullNotAllowed uint16 = 20303

	// Group 4: storage and column definition
	ErrInvalidStorageType      uint16 = 20400
	ErrSetInvalidDataType      uint16 = 20401
	ErrProblematicChars        uint16 = 20402
	ErrNotComparable           uint16 = 20403
	ErrInvalidDynamicType      uint16 = 20404
	ErrInvalidDateTimeMode     uint16 = 20405
	ErrCannotSetDateTimeMode   uint16 = 20406
	ErrCantChangeDateTimeMode  uint16 = 20407
	ErrSetFailed               uint16 = 20408
	ErrDuplicateColumn         uint16 = 20409
	ErrColumnNotFound          uint16 = 20410
	ErrCannotDeserializeObject uint16 = 20411

	// Group End: max value of MOErrorCode
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	Ok: {"ok"},

	// Group 1: internal errors
	ErrStart:        {"internal error: error code start"},
	ErrInternal:     {"internal error: %s"},
	ErrNYI:          {"%s is not yet implemented"},
	ErrNotSupported: {"not supported: %s"},

	// Group 2: numeric and conversion
	ErrOutOfRange:            {"Value was either too large or too small for %s: %s"},
	ErrConvertFailed:         {"Type of value has a mismatch with column type: cannot convert '%s' to %s"},
	ErrAggregateNotSupported: {"Invalid usage of aggregate function %s() and Type: %s."},
	ErrAggregateOverflow:     {"Value is either too large or too small for Type '%s'."},

	// Group 3: invalid input
	ErrBadConfig:      {"invalid configuration: %s"},
	ErrInvalidInput:   {"invalid input: %s"},
	ErrTypeNotFound:   {"Type '%s' is not registered."},
	ErrNullNotAllowed: {"Column '%s' does not allow nulls."},

	// Group 4: storage and column definition
	ErrInvalidStorageType:      {"Invalid storage type: %s."},
	ErrSetInvalidDataType:      {"Type of value has a mismatch with column type: %s is not assignable to %s"},
	ErrProblematicChars:        {"The DataSet Xml persistency does not support the value '%s' as Char value, please use Byte storage instead."},
	ErrNotComparable:           {" Type '%s' does not implement IComparable interface. Comparison cannot be done."},
	ErrInvalidDynamicType:      {"DataSet will not serialize types that implement IDynamicMetaObjectProvider but do not also implement IXmlSerializable."},
	ErrInvalidDateTimeMode:     {"The DateTimeMode value '%s' is invalid."},
	ErrCannotSetDateTimeMode:   {"The DateTimeMode can be set only on DataColumns of type DateTime."},
	ErrCantChangeDateTimeMode:  {"Cannot change DateTimeMode from '%s' to '%s' once the table has data."},
	ErrSetFailed:               {"Couldn't store <%v> in %s Column.  Expected type is %s."},
	ErrDuplicateColumn:         {"A column named '%s' already belongs to this DataTable."},
	ErrColumnNotFound:          {"Column '%s' does not belong to table %s."},
	ErrCannotDeserializeObject: {"Cannot deserialize a value whose instance type is '%s'."},

	// Group End: max value of MOErrorCode
	ErrEnd: {"internal error: end of errcode code"},
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError(ctx, "not exist MOErrorCode: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:    code,
			message: item.errorMsgOrFormat,
		}
	} else {
		err = &Error{
			code:    code,
			message: fmt.Sprintf(item.errorMsgOrFormat, args...),
		}
	}
	return err
}

type Error struct {
	code    uint16
	message string
	detail  string
	cause   error
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// Unwrap returns the error this one was raised for, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// withCause attaches the underlying error and records its message as detail.
func (e *Error) withCause(cause error) *Error {
	e.cause = cause
	if cause != nil {
		e.detail = cause.Error()
	}
	return e
}

// IsMoErrCode reports whether e, or any error it wraps, carries code rc.
func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}
	for e != nil {
		if me, ok := e.(*Error); ok && me.code == rc {
			return true
		}
		e = errors.Unwrap(e)
	}
	return false
}

func DowncastError(e error) *Error {
	var err *Error
	if errors.As(e, &err) {
		return err
	}
	return newError(context.Background(), ErrInternal, fmt.Sprintf("downcast error failed: %v", e))
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	if err == nil {
		return err
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return newError(ctx, ErrInternal, fmt.Sprintf("convert go error to mo error %v", err)).withCause(err)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNYI, xmsg)
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNotSupported, xmsg)
}

func NewOutOfRange(ctx context.Context, typ string, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrOutOfRange, typ, xmsg)
}

func NewConvertFailed(ctx context.Context, val any, typ string) *Error {
	return newError(ctx, ErrConvertFailed, fmt.Sprintf("%v", val), typ)
}

func NewAggregateNotSupported(ctx context.Context, kind string, typ string) *Error {
	return newError(ctx, ErrAggregateNotSupported, kind, typ)
}

func NewAggregateOverflow(ctx context.Context, typ string) *Error {
	return newError(ctx, ErrAggregateOverflow, typ)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewTypeNotFound(ctx context.Context, name string) *Error {
	return newError(ctx, ErrTypeNotFound, name)
}

func NewNullNotAllowed(ctx context.Context, column string) *Error {
	return newError(ctx, ErrNullNotAllowed, column)
}

func NewInvalidStorageType(ctx context.Context, code string) *Error {
	return newError(ctx, ErrInvalidStorageType, code)
}

func NewSetInvalidDataType(ctx context.Context, valueType string, columnType string) *Error {
	return newError(ctx, ErrSetInvalidDataType, valueType, columnType)
}

func NewProblematicChars(ctx context.Context, ch rune) *Error {
	return newError(ctx, ErrProblematicChars, fmt.Sprintf("0x%X", ch))
}

func NewNotComparable(ctx context.Context, typ string) *Error {
	return newError(ctx, ErrNotComparable, typ)
}

func NewInvalidDynamicType(ctx context.Context) *Error {
	return newError(ctx, ErrInvalidDynamicType)
}

func NewInvalidDateTimeMode(ctx context.Context, mode string) *Error {
	return newError(ctx, ErrInvalidDateTimeMode, mode)
}

func NewCannotSetDateTimeMode(ctx context.Context) *Error {
	return newError(ctx, ErrCannotSetDateTimeMode)
}

func NewCantChangeDateTimeMode(ctx context.Context, from, to string) *Error {
	return newError(ctx, ErrCantChangeDateTimeMode, from, to)
}

// NewSetFailed reports a value that a column refused, keeping the storage
// error reachable through errors.Unwrap.
func NewSetFailed(ctx context.Context, val any, column string, typ string, cause error) *Error {
	return newError(ctx, ErrSetFailed, val, column, typ).withCause(cause)
}

func NewDuplicateColumn(ctx context.Context, column string) *Error {
	return newError(ctx, ErrDuplicateColumn, column)
}

func NewColumnNotFound(ctx context.Context, column string, table string) *Error {
	return newError(ctx, ErrColumnNotFound, column, table)
}

func NewCannotDeserializeObject(ctx context.Context, typ string) *Error {
	return newError(ctx, ErrCannotDeserializeObject, typ)
}
