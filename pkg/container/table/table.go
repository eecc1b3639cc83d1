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

// Package table puts column storages together: a Table owns named columns
// and a record manager that hands out the record numbers rows live in.
package table

import (
	"reflect"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
)

// Options are the table wide settings handed to every column storage.
type Options struct {
	Locale        *types.Locale
	CaseSensitive bool
	// DateTimeMode applies to DateTime columns that set no mode themselves.
	DateTimeMode    types.DateTimeMode
	MinimumCapacity int
}

type Table struct {
	name    string
	opts    Options
	columns []*Column
	// byName is keyed by case folded column name.
	byName map[string]*Column
	rm     *recordManager
}

func New(name string, opts Options) *Table {
	t := &Table{
		name:   name,
		opts:   opts,
		byName: make(map[string]*Column),
	}
	t.rm = newRecordManager(t, opts.MinimumCapacity)
	return t
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Options() Options {
	return t.opts
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

// AddColumn attaches c to t. Column names are unique ignoring case.
// Existing records get the column default.
func (t *Table) AddColumn(c *Column) error {
	if c.table != nil {
		return moerr.NewInvalidInputNoCtx("column '%s' already belongs to table %s", c.name, c.table.name)
	}
	key := foldName(c.name)
	if _, ok := t.byName[key]; ok {
		return moerr.NewDuplicateColumnNoCtx(c.name)
	}
	if err := c.attach(t, t.rm.recordCapacity); err != nil {
		return err
	}
	t.columns = append(t.columns, c)
	t.byName[key] = c
	for _, r := range t.rm.records() {
		c.initRecord(r)
	}
	return nil
}

// NewColumn creates a column of type typ and adds it to t.
func (t *Table) NewColumn(name string, typ reflect.Type) (*Column, error) {
	c := NewColumn(name, typ)
	if err := t.AddColumn(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (t *Table) RemoveColumn(name string) error {
	c, err := t.Column(name)
	if err != nil {
		return err
	}
	delete(t.byName, foldName(c.name))
	for i, col := range t.columns {
		if col == c {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			break
		}
	}
	c.detach()
	return nil
}

// Column looks name up ignoring case.
func (t *Table) Column(name string) (*Column, error) {
	if c, ok := t.byName[foldName(name)]; ok {
		return c, nil
	}
	return nil, moerr.NewColumnNotFoundNoCtx(name, t.name)
}

func (t *Table) Columns() []*Column {
	return t.columns
}

func (t *Table) MinimumCapacity() int {
	return t.rm.minimumCapacity
}

// SetMinimumCapacity grows every storage to at least capacity records.
func (t *Table) SetMinimumCapacity(capacity int) error {
	if capacity < 0 {
		return moerr.NewInvalidInputNoCtx("negative minimum capacity %d", capacity)
	}
	t.rm.setMinimumCapacity(capacity)
	return nil
}

func (t *Table) RecordCapacity() int {
	return t.rm.recordCapacity
}

// NewRecord allocates a record holding every column default.
func (t *Table) NewRecord() int {
	record := t.rm.newRecordBase()
	for _, c := range t.columns {
		c.initRecord(record)
	}
	return record
}

// AddRecord allocates a record and sets values on columns by position.
// Columns past len(values) keep their default. On error the record is
// released.
func (t *Table) AddRecord(values ...any) (int, error) {
	if len(values) > len(t.columns) {
		return -1, moerr.NewInvalidInputNoCtx("%d values for %d columns", len(values), len(t.columns))
	}
	record := t.NewRecord()
	for i, v := range values {
		if err := t.columns[i].Set(record, v); err != nil {
			t.FreeRecord(record)
			return -1, err
		}
	}
	return record, nil
}

// FreeRecord nulls every column of record and returns it to the manager.
func (t *Table) FreeRecord(record int) {
	if !t.rm.isLive(record) {
		return
	}
	for _, c := range t.columns {
		c.freeRecord(record)
	}
	t.rm.freeRecord(record)
}

// Clear frees every record. Capacity is kept.
func (t *Table) Clear() {
	for _, r := range t.rm.records() {
		for _, c := range t.columns {
			c.freeRecord(r)
		}
	}
	t.rm.clear()
}

// CopyRecord copies srcRecord of src into dstRecord of t, allocating a new
// record when dstRecord is -1. Columns are matched by name; columns of t
// missing in src get their default.
func (t *Table) CopyRecord(src *Table, srcRecord int, dstRecord int) (int, error) {
	if !src.rm.isLive(srcRecord) {
		return -1, moerr.NewInvalidInputNoCtx("record %d is not in table %s", srcRecord, src.name)
	}
	allocated := false
	if dstRecord == -1 {
		dstRecord = t.rm.newRecordBase()
		allocated = true
	} else if !t.rm.isLive(dstRecord) {
		return -1, moerr.NewInvalidInputNoCtx("record %d is not in table %s", dstRecord, t.name)
	}
	for _, c := range t.columns {
		if src == t {
			c.storage.Copy(srcRecord, dstRecord)
			continue
		}
		sc, err := src.Column(c.name)
		if err != nil {
			c.initRecord(dstRecord)
			continue
		}
		if err := c.Set(dstRecord, sc.Get(srcRecord)); err != nil {
			if allocated {
				t.FreeRecord(dstRecord)
			}
			return -1, err
		}
	}
	return dstRecord, nil
}

// Records lists the live records in ascending order.
func (t *Table) Records() []int {
	return t.rm.records()
}

func (t *Table) RecordCount() int {
	return t.rm.count()
}

func (t *Table) checkRecord(record int) error {
	if !t.rm.isLive(record) {
		return moerr.NewInvalidInputNoCtx("record %d is not in table %s", record, t.name)
	}
	return nil
}

func (t *Table) SetValue(record int, column string, v any) error {
	c, err := t.Column(column)
	if err != nil {
		return err
	}
	if err := t.checkRecord(record); err != nil {
		return err
	}
	return c.Set(record, v)
}

func (t *Table) GetValue(record int, column string) (any, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if err := t.checkRecord(record); err != nil {
		return nil, err
	}
	return c.Get(record), nil
}

func (t *Table) IsNull(record int, column string) (bool, error) {
	c, err := t.Column(column)
	if err != nil {
		return false, err
	}
	if err := t.checkRecord(record); err != nil {
		return false, err
	}
	return c.IsNull(record), nil
}

// Compute aggregates column over records, or over every live record when
// records is nil.
func (t *Table) Compute(column string, kind types.AggregateType, records []int) (any, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = t.rm.records()
	}
	res, err := c.GetAggregateValue(records, kind)
	if err != nil {
		logutil.Warn("compute aggregate failed",
			zap.String("table", t.name),
			zap.String("column", c.name),
			zap.String("aggregate", kind.String()),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}
