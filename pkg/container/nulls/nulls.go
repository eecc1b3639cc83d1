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

// Package nulls wrap up functions for the manipulation of bitmap library roaring.
// Every column storage keeps its NULL marks in a Nulls: a set bit means the
// record holds no value.
package nulls

import (
	"fmt"

	roaring "github.com/RoaringBitmap/roaring/roaring64"
)

type Nulls struct {
	Np *roaring.Bitmap
	// length is the number of rows covered. It only grows.
	length int
}

func NewWithSize(size int) *Nulls {
	return &Nulls{
		Np:     roaring.NewBitmap(),
		length: size,
	}
}

// Any returns true if any bit in the Nulls is set, otherwise it will return false.
func Any(nsp *Nulls) bool {
	if nsp == nil || nsp.Np == nil {
		return false
	}
	return !nsp.Np.IsEmpty()
}

// Length returns the number of integers contained in the Nulls
func Length(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

func String(nsp *Nulls) string {
	if nsp == nil || nsp.Np == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", nsp.Np.ToArray())
}

// TryExpand grows the covered length to size. It never shrinks.
func TryExpand(nsp *Nulls, size int) {
	if nsp.Np == nil {
		nsp.Np = roaring.NewBitmap()
	}
	if size > nsp.length {
		nsp.length = size
	}
}

// Contains returns true if the integer is contained in the Nulls
func Contains(nsp *Nulls, row uint64) bool {
	return nsp.Contains(row)
}

func Add(nsp *Nulls, rows ...uint64) {
	if len(rows) == 0 {
		return
	}
	TryExpand(nsp, int(rows[len(rows)-1])+1)
	for _, row := range rows {
		if int(row) >= nsp.length {
			nsp.length = int(row) + 1
		}
		nsp.Np.Add(row)
	}
}

func Del(nsp *Nulls, rows ...uint64) {
	if nsp.Np == nil {
		return
	}
	for _, row := range rows {
		nsp.Np.Remove(row)
	}
}

// Reset clears every bit and keeps the covered length.
func Reset(nsp *Nulls) {
	if nsp.Np != nil {
		nsp.Np.Clear()
	}
}

func (nsp *Nulls) Clone() *Nulls {
	if nsp == nil {
		return nil
	}
	if nsp.Np == nil {
		return &Nulls{length: nsp.length}
	}
	return &Nulls{
		Np:     nsp.Np.Clone(),
		length: nsp.length,
	}
}

func (nsp *Nulls) Any() bool {
	return Any(nsp)
}

// Len is the number of rows covered, set or not.
func (nsp *Nulls) Len() int {
	if nsp == nil {
		return 0
	}
	return nsp.length
}

func (nsp *Nulls) Set(row uint64) {
	Add(nsp, row)
}

func (nsp *Nulls) Unset(row uint64) {
	Del(nsp, row)
}

// SetTo sets or clears row.
func (nsp *Nulls) SetTo(row uint64, null bool) {
	if null {
		nsp.Set(row)
		return
	}
	nsp.Unset(row)
}

func (nsp *Nulls) Contains(row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

func (nsp *Nulls) Count() int {
	return Length(nsp)
}

func (nsp *Nulls) Show() ([]byte, error) {
	if nsp == nil || nsp.Np == nil {
		return nil, nil
	}
	return nsp.Np.MarshalBinary()
}

func (nsp *Nulls) Read(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	np := roaring.NewBitmap()
	if err := np.UnmarshalBinary(data); err != nil {
		return err
	}
	nsp.Np = np
	if !np.IsEmpty() && int(np.Maximum())+1 > nsp.length {
		nsp.length = int(np.Maximum()) + 1
	}
	return nil
}

func (nsp *Nulls) ToArray() []uint64 {
	if nsp == nil || nsp.Np == nil {
		return []uint64{}
	}
	return nsp.Np.ToArray()
}
