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

// Package cowmap provides a read-mostly map. Readers never block: they load
// the current snapshot through an atomic pointer. Writers serialize on a
// mutex, copy the snapshot, add their entry and publish the copy.
package cowmap

import (
	"sync"
	"sync/atomic"
)

type Map[K comparable, V any] struct {
	sync.Mutex
	snapshot atomic.Pointer[map[K]V]
}

func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	ptr := m.snapshot.Load()
	if ptr == nil {
		return
	}
	value, ok = (*ptr)[key]
	return
}

// LoadOrStore returns the value cached for key, building it with build when
// absent. build runs outside the lock, so two racing callers may both build;
// the first one published wins and both get that value.
func (m *Map[K, V]) LoadOrStore(key K, build func() (V, error)) (V, bool, error) {
	if value, ok := m.Load(key); ok {
		return value, true, nil
	}
	value, err := build()
	if err != nil {
		return value, false, err
	}
	value, loaded := m.store(key, value)
	return value, loaded, nil
}

func (m *Map[K, V]) store(key K, value V) (V, bool) {
	m.Lock()
	defer m.Unlock()
	old := m.snapshot.Load()
	size := 1
	if old != nil {
		if existing, ok := (*old)[key]; ok {
			return existing, true
		}
		size += len(*old)
	}
	next := make(map[K]V, size)
	if old != nil {
		for k, v := range *old {
			next[k] = v
		}
	}
	next[key] = value
	m.snapshot.Store(&next)
	return value, false
}

func (m *Map[K, V]) Len() int {
	ptr := m.snapshot.Load()
	if ptr == nil {
		return 0
	}
	return len(*ptr)
}
