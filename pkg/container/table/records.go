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
	"github.com/RoaringBitmap/roaring"
)

// recordManager hands out record numbers. Freed records are reused before
// the high-water mark lastFreeRecord moves up.
type recordManager struct {
	table           *Table
	lastFreeRecord  int
	freeRecords     []int
	recordCapacity  int
	minimumCapacity int
	live            *roaring.Bitmap
}

func newRecordManager(t *Table, minimumCapacity int) *recordManager {
	rm := &recordManager{
		table: t,
		live:  roaring.New(),
	}
	if minimumCapacity > 0 {
		rm.setMinimumCapacity(minimumCapacity)
	}
	return rm
}

func newCapacity(capacity int) int {
	if capacity < 128 {
		return 128
	}
	return capacity * 2
}

// normalizedMinimumCapacity rounds a requested minimum up to the sizes the
// manager grows in.
func normalizedMinimumCapacity(capacity int) int {
	if capacity < 1024-10 {
		if capacity < 256-10 {
			if capacity < 54 {
				return 64
			}
			return 256
		}
		return 1024
	}
	return (((capacity + 10) >> 10) + 1) << 10
}

func (rm *recordManager) setRecordCapacity(capacity int) {
	if rm.recordCapacity == capacity {
		return
	}
	for _, c := range rm.table.columns {
		c.storage.SetCapacity(capacity)
	}
	rm.recordCapacity = capacity
}

func (rm *recordManager) setMinimumCapacity(capacity int) {
	if capacity == rm.minimumCapacity {
		return
	}
	if capacity > rm.recordCapacity {
		rm.setRecordCapacity(capacity)
	}
	rm.minimumCapacity = capacity
}

func (rm *recordManager) grow() {
	capacity := newCapacity(rm.recordCapacity)
	if floor := normalizedMinimumCapacity(rm.minimumCapacity); capacity < floor {
		capacity = floor
	}
	rm.setRecordCapacity(capacity)
}

// newRecordBase returns a record number without touching column values.
func (rm *recordManager) newRecordBase() int {
	var record int
	if n := len(rm.freeRecords); n != 0 {
		record = rm.freeRecords[n-1]
		rm.freeRecords = rm.freeRecords[:n-1]
	} else {
		if rm.lastFreeRecord >= rm.recordCapacity {
			rm.grow()
		}
		record = rm.lastFreeRecord
		rm.lastFreeRecord++
	}
	rm.live.Add(uint32(record))
	return record
}

func (rm *recordManager) freeRecord(record int) bool {
	if record < 0 || !rm.live.Contains(uint32(record)) {
		return false
	}
	rm.live.Remove(uint32(record))
	if rm.lastFreeRecord == record+1 {
		rm.lastFreeRecord--
	} else if record < rm.lastFreeRecord {
		rm.freeRecords = append(rm.freeRecords, record)
	}
	return true
}

func (rm *recordManager) isLive(record int) bool {
	return record >= 0 && rm.live.Contains(uint32(record))
}

func (rm *recordManager) count() int {
	return int(rm.live.GetCardinality())
}

func (rm *recordManager) records() []int {
	rs := make([]int, 0, rm.count())
	it := rm.live.Iterator()
	for it.HasNext() {
		rs = append(rs, int(it.Next()))
	}
	return rs
}

func (rm *recordManager) clear() {
	rm.live.Clear()
	rm.freeRecords = rm.freeRecords[:0]
	rm.lastFreeRecord = 0
}
