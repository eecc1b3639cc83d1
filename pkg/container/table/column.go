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

package table

import (
	"encoding/xml"
	"reflect"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/storage"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

// Column is a named, typed column. Its storage exists once the column
// belongs to a table.
type Column struct {
	name     string
	dataType reflect.Type
	table    *Table
	storage  storage.Storage

	defaultValue any
	hasDefault   bool
	allowDBNull  bool
	// dateTimeMode is zero until set, and then the table default applies.
	dateTimeMode types.DateTimeMode
}

// NewColumn returns a detached column that allows nulls.
func NewColumn(name string, t reflect.Type) *Column {
	return &Column{
		name:        name,
		dataType:    t,
		allowDBNull: true,
	}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) DataType() reflect.Type {
	return c.dataType
}

func (c *Column) Table() *Table {
	return c.table
}

func (c *Column) Storage() storage.Storage {
	return c.storage
}

func (c *Column) typeName() string {
	return types.TypeName(c.dataType)
}

func (c *Column) options() storage.Options {
	opts := storage.Options{DateTimeMode: c.DateTimeMode()}
	if c.table != nil {
		opts.Locale = c.table.opts.Locale
		opts.CaseSensitive = c.table.opts.CaseSensitive
	}
	return opts
}

func (c *Column) hasData() bool {
	return c.table != nil && c.table.RecordCount() > 0
}

// DefaultValue is the value new records start with. Without an explicit
// default it is the null value of the column storage.
func (c *Column) DefaultValue() any {
	if c.hasDefault {
		return c.defaultValue
	}
	if c.storage != nil {
		return c.storage.NullValue()
	}
	return types.DBNull
}

// SetDefaultValue converts v to the column type and keeps it as default.
func (c *Column) SetDefaultValue(v any) error {
	st := c.storage
	if st == nil {
		var err error
		if st, err = storage.New(c.dataType, c.options()); err != nil {
			return err
		}
	}
	converted, err := st.ConvertValue(v)
	if err != nil {
		return moerr.NewSetFailedNoCtx(v, c.name, c.typeName(), err)
	}
	c.defaultValue = converted
	c.hasDefault = !types.IsObjectNull(converted)
	return nil
}

func (c *Column) AllowDBNull() bool {
	return c.allowDBNull
}

// SetAllowDBNull fails with ErrNullNotAllowed when nulls are disallowed
// while a live record of the table is null in this column.
func (c *Column) SetAllowDBNull(allow bool) error {
	if !allow && c.allowDBNull && c.storage != nil {
		for _, r := range c.table.Records() {
			if c.storage.IsNull(r) {
				return moerr.NewNullNotAllowedNoCtx(c.name)
			}
		}
	}
	c.allowDBNull = allow
	return nil
}

// DateTimeMode is the mode of a DateTime column: the one set on the
// column, else the table default, else UnspecifiedLocal.
func (c *Column) DateTimeMode() types.DateTimeMode {
	if c.dateTimeMode.Valid() {
		return c.dateTimeMode
	}
	if c.table != nil && c.table.opts.DateTimeMode.Valid() {
		return c.table.opts.DateTimeMode
	}
	return types.DateTimeModeUnspecifiedLocal
}

// SetDateTimeMode is only allowed on DateTime columns. Once the table has
// records the mode may only switch between Unspecified and
// UnspecifiedLocal, which store the same values.
func (c *Column) SetDateTimeMode(mode types.DateTimeMode) error {
	if c.dataType != types.DateTimeType {
		return moerr.NewCannotSetDateTimeModeNoCtx()
	}
	if !mode.Valid() {
		return moerr.NewInvalidDateTimeModeNoCtx(mode.String())
	}
	from := c.DateTimeMode()
	if from == mode {
		c.dateTimeMode = mode
		return nil
	}
	if c.hasData() && !unspecifiedPair(from, mode) {
		return moerr.NewCantChangeDateTimeModeNoCtx(from.String(), mode.String())
	}
	if dm, ok := c.storage.(storage.DateTimeModal); ok {
		if err := dm.SetDateTimeMode(mode); err != nil {
			return err
		}
	}
	c.dateTimeMode = mode
	return nil
}

func unspecifiedPair(a, b types.DateTimeMode) bool {
	isUnspecified := func(m types.DateTimeMode) bool {
		return m == types.DateTimeModeUnspecified || m == types.DateTimeModeUnspecifiedLocal
	}
	return isUnspecified(a) && isUnspecified(b)
}

// attach creates the storage of c for t and sizes it for capacity records.
func (c *Column) attach(t *Table, capacity int) error {
	c.table = t
	st, err := storage.New(c.dataType, c.options())
	if err != nil {
		c.table = nil
		return err
	}
	st.SetCapacity(capacity)
	c.storage = st
	return nil
}

func (c *Column) detach() {
	c.table = nil
	c.storage = nil
}

func (c *Column) Get(record int) any {
	if c.storage == nil {
		return types.DBNull
	}
	return c.storage.Get(record)
}

// Set stores v in record. Storage failures come back as ErrSetFailed with
// the storage error as cause.
func (c *Column) Set(record int, v any) error {
	if c.storage == nil {
		return moerr.NewInvalidInputNoCtx("column '%s' does not belong to a table", c.name)
	}
	if !c.allowDBNull && types.IsObjectNull(v) {
		return moerr.NewNullNotAllowedNoCtx(c.name)
	}
	if err := c.storage.Set(record, v); err != nil {
		return moerr.NewSetFailedNoCtx(v, c.name, c.typeName(), err)
	}
	return nil
}

func (c *Column) IsNull(record int) bool {
	return c.storage == nil || c.storage.IsNull(record)
}

func (c *Column) Compare(r1, r2 int) int {
	return c.storage.Compare(r1, r2)
}

func (c *Column) CompareValueTo(record int, v any) (int, error) {
	if c.storage == nil {
		return 0, moerr.NewInvalidInputNoCtx("column '%s' does not belong to a table", c.name)
	}
	return c.storage.CompareValueTo(record, v)
}

// ConvertValue converts v to the value the column would store for it.
func (c *Column) ConvertValue(v any) (any, error) {
	if c.storage == nil {
		return nil, moerr.NewInvalidInputNoCtx("column '%s' does not belong to a table", c.name)
	}
	return c.storage.ConvertValue(v)
}

// GetAggregateValue aggregates the column over records. A column without
// storage counts zero and aggregates to DBNull.
func (c *Column) GetAggregateValue(records []int, kind types.AggregateType) (any, error) {
	if c.storage == nil {
		if kind == types.AggCount {
			return 0, nil
		}
		return types.DBNull, nil
	}
	return c.storage.Aggregate(records, kind)
}

func (c *Column) initRecord(record int) {
	if err := c.storage.Set(record, c.DefaultValue()); err != nil {
		_ = c.storage.Set(record, c.storage.NullValue())
	}
}

func (c *Column) freeRecord(record int) {
	_ = c.storage.Set(record, c.storage.NullValue())
}

func (c *Column) writeXml(enc *xml.Encoder, record int) error {
	start := xml.StartElement{Name: xml.Name{Local: c.name}}
	v := c.storage.Get(record)
	if es, ok := c.storage.(storage.XmlElementStorage); ok {
		return es.WriteXmlElement(enc, start, v, nil)
	}
	text, err := c.storage.ConvertObjectToXml(v)
	if err != nil {
		return err
	}
	return enc.EncodeElement(text, start)
}

func (c *Column) readXml(dec *xml.Decoder, start xml.StartElement) (any, error) {
	if es, ok := c.storage.(storage.XmlElementStorage); ok {
		return es.ReadXmlElement(dec, start, nil)
	}
	var text string
	if err := dec.DecodeElement(&text, &start); err != nil {
		return nil, moerr.NewInvalidInputNoCtx("malformed xml in column '%s': %v", c.name, err)
	}
	return c.storage.ConvertXmlToObject(text)
}
