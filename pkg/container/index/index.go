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

// Package index keeps the records of a table sorted by one or more columns.
package index

import (
	"cmp"

	"github.com/google/btree"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/table"
)

const degree = 32

// Field is one sort key of an index.
type Field struct {
	Column     *table.Column
	Descending bool
}

// Index orders records by its fields, then by record number. It does not
// follow the table: callers Delete a record before changing its key
// values and Insert it again afterwards.
type Index struct {
	fields []Field
	tree   *btree.BTree
}

// New returns an empty index. Every field column must belong to the same
// table.
func New(fields ...Field) (*Index, error) {
	if len(fields) == 0 {
		return nil, moerr.NewInvalidInputNoCtx("index without fields")
	}
	tbl := fields[0].Column.Table()
	for _, f := range fields {
		if f.Column.Table() == nil || f.Column.Table() != tbl {
			return nil, moerr.NewInvalidInputNoCtx("index column '%s' is not in the indexed table", f.Column.Name())
		}
	}
	return &Index{
		fields: fields,
		tree:   btree.New(degree),
	}, nil
}

// Build creates an ascending index over the named columns of t holding
// every live record.
func Build(t *table.Table, columns ...string) (*Index, error) {
	fields := make([]Field, 0, len(columns))
	for _, name := range columns {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Column: c})
	}
	idx, err := New(fields...)
	if err != nil {
		return nil, err
	}
	for _, r := range t.Records() {
		idx.Insert(r)
	}
	return idx, nil
}

type recordItem struct {
	idx    *Index
	record int
}

// keyItem is a search pivot. It sorts before every record with an equal
// key, so AscendGreaterOrEqual starts at the first match.
type keyItem struct {
	idx    *Index
	values []any
}

func (r recordItem) Less(than btree.Item) bool {
	switch o := than.(type) {
	case recordItem:
		return r.idx.compareRecords(r.record, o.record) < 0
	case keyItem:
		return r.idx.compareKey(r.record, o.values) < 0
	}
	return false
}

func (k keyItem) Less(than btree.Item) bool {
	switch o := than.(type) {
	case recordItem:
		return k.idx.compareKey(o.record, k.values) >= 0
	case keyItem:
		return false
	}
	return false
}

func (idx *Index) compareRecords(r1, r2 int) int {
	for _, f := range idx.fields {
		c := f.Column.Compare(r1, r2)
		if f.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(r1, r2)
}

// compareKey compares record to the converted key values, field by field.
func (idx *Index) compareKey(record int, values []any) int {
	for i, v := range values {
		f := idx.fields[i]
		c, err := f.Column.CompareValueTo(record, v)
		if err != nil {
			return 0
		}
		if f.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Insert adds record and reports whether it was not indexed yet.
func (idx *Index) Insert(record int) bool {
	return idx.tree.ReplaceOrInsert(recordItem{idx: idx, record: record}) == nil
}

// Delete removes record. Its key values must be the ones it was inserted
// with.
func (idx *Index) Delete(record int) bool {
	return idx.tree.Delete(recordItem{idx: idx, record: record}) != nil
}

func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Records returns the indexed records in index order.
func (idx *Index) Records() []int {
	rs := make([]int, 0, idx.tree.Len())
	idx.tree.Ascend(func(i btree.Item) bool {
		rs = append(rs, i.(recordItem).record)
		return true
	})
	return rs
}

func (idx *Index) key(values []any) (keyItem, error) {
	if len(values) == 0 || len(values) > len(idx.fields) {
		return keyItem{}, moerr.NewInvalidInputNoCtx("%d key values for an index of %d fields", len(values), len(idx.fields))
	}
	converted := make([]any, len(values))
	for i, v := range values {
		cv, err := idx.fields[i].Column.ConvertValue(v)
		if err != nil {
			return keyItem{}, err
		}
		converted[i] = cv
	}
	return keyItem{idx: idx, values: converted}, nil
}

// Find returns the first record, in index order, whose leading fields
// equal values, or -1.
func (idx *Index) Find(values ...any) (int, error) {
	k, err := idx.key(values)
	if err != nil {
		return -1, err
	}
	found := -1
	idx.tree.AscendGreaterOrEqual(k, func(i btree.Item) bool {
		r := i.(recordItem).record
		if idx.compareKey(r, k.values) == 0 {
			found = r
		}
		return false
	})
	return found, nil
}

// FindRecords returns every record whose leading fields equal values.
func (idx *Index) FindRecords(values ...any) ([]int, error) {
	k, err := idx.key(values)
	if err != nil {
		return nil, err
	}
	var rs []int
	idx.tree.AscendGreaterOrEqual(k, func(i btree.Item) bool {
		r := i.(recordItem).record
		if idx.compareKey(r, k.values) != 0 {
			return false
		}
		rs = append(rs, r)
		return true
	})
	return rs, nil
}
