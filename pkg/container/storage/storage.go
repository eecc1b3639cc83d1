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

// Package storage implements the typed column storages. A storage holds the
// values of one column in a dense slice addressed by record number, plus a
// null bitmap that is authoritative for null-ness.
package storage

import (
	"math"
	"reflect"

	"github.com/matrixorigin/colstore/pkg/container/nulls"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

// Storage is the per-column value store. Record numbers are 0-based and
// managed by the caller; every record must be below Capacity().
type Storage interface {
	DataType() reflect.Type
	StorageType() types.StorageType
	// NullValue is what Get returns for a null record.
	NullValue() any
	IsValueType() bool
	IsStringType() bool
	IsCustomDefinedType() bool

	Get(record int) any
	Set(record int, value any) error
	IsNull(record int) bool
	// Compare orders two records. Nulls sort before every value.
	Compare(r1, r2 int) int
	CompareValueTo(record int, value any) (int, error)
	Copy(src, dst int)
	SetCapacity(capacity int)
	Capacity() int

	ConvertValue(value any) (any, error)
	ConvertXmlToObject(s string) (any, error)
	ConvertObjectToXml(value any) (string, error)

	Aggregate(records []int, kind types.AggregateType) (any, error)
	GetStringLength(record int) int

	// GetEmptyStorage, CopyValue and SetStorage move a whole column out of
	// and back into a storage.
	GetEmptyStorage(recordCount int) any
	CopyValue(record int, store any, nsp *nulls.Nulls, storeIndex int)
	SetStorage(store any, nsp *nulls.Nulls)
}

// Options carries the column settings a storage depends on.
type Options struct {
	Locale        *types.Locale
	DateTimeMode  types.DateTimeMode
	CaseSensitive bool
}

func (o Options) locale() *types.Locale {
	if o.Locale == nil {
		return types.InvariantLocale
	}
	return o.Locale
}

func (o Options) dateTimeMode() types.DateTimeMode {
	if !o.DateTimeMode.Valid() {
		return types.DateTimeModeUnspecifiedLocal
	}
	return o.DateTimeMode
}

// base owns the null bitmap. Concrete storages never touch nsp directly.
type base struct {
	dataType    reflect.Type
	storageType types.StorageType
	nullValue   any
	nsp         nulls.Nulls
}

func newBase(t reflect.Type, code types.StorageType, nullValue any) base {
	return base{
		dataType:    t,
		storageType: code,
		nullValue:   nullValue,
	}
}

func (b *base) DataType() reflect.Type {
	return b.dataType
}

func (b *base) StorageType() types.StorageType {
	return b.storageType
}

func (b *base) NullValue() any {
	return b.nullValue
}

func (b *base) IsValueType() bool {
	return types.IsValueType(b.dataType)
}

func (b *base) IsStringType() bool {
	switch b.storageType {
	case types.T_string, types.T_sqlstring, types.T_sqlchars:
		return true
	}
	return false
}

func (b *base) IsCustomDefinedType() bool {
	return b.storageType.IsCustomType()
}

func (b *base) IsNull(record int) bool {
	return !b.hasValue(record)
}

func (b *base) GetStringLength(record int) int {
	return math.MaxInt32
}

func (b *base) setNullBit(record int, null bool) {
	b.nsp.SetTo(uint64(record), null)
}

func (b *base) hasValue(record int) bool {
	return !b.nsp.Contains(uint64(record))
}

// compareBits orders two records by null-ness alone.
func (b *base) compareBits(r1, r2 int) int {
	h1, h2 := b.hasValue(r1), b.hasValue(r2)
	switch {
	case h1 == h2:
		return 0
	case h1:
		return 1
	}
	return -1
}

func (b *base) copyBits(src, dst int) {
	b.setNullBit(dst, !b.hasValue(src))
}

func (b *base) growNulls(capacity int) {
	nulls.TryExpand(&b.nsp, capacity)
}

// swapNulls takes over nsp as the storage bitmap.
func (b *base) swapNulls(nsp *nulls.Nulls) {
	if nsp == nil {
		nulls.Reset(&b.nsp)
		return
	}
	b.nsp = *nsp
}

func (b *base) countNonNull(records []int) int {
	n := 0
	for _, r := range records {
		if b.hasValue(r) {
			n++
		}
	}
	return n
}
