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

package cowmap

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/require"
)

func TestLoadOrStore(t *testing.T) {
	var m Map[string, int]
	_, ok := m.Load("a")
	require.False(t, ok)
	require.Equal(t, 0, m.Len())

	v, loaded, err := m.LoadOrStore("a", func() (int, error) { return 1, nil })
	require.NoError(t, err)
	require.False(t, loaded)
	require.Equal(t, 1, v)

	v, loaded, err = m.LoadOrStore("a", func() (int, error) { return 2, nil })
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, 1, v)
	require.Equal(t, 1, m.Len())
}

func TestLoadOrStoreBuildError(t *testing.T) {
	var m Map[string, int]
	boom := errors.New("boom")
	_, _, err := m.LoadOrStore("a", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	_, ok := m.Load("a")
	require.False(t, ok)
}

func TestConcurrentLoadOrStore(t *testing.T) {
	defer leaktest.AfterTest(t)()
	var m Map[int, int]
	var builds atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 64; k++ {
				key := k
				v, _, err := m.LoadOrStore(key, func() (int, error) {
					builds.Add(1)
					return key * 10, nil
				})
				require.NoError(t, err)
				require.Equal(t, key*10, v)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 64, m.Len())
	require.GreaterOrEqual(t, int(builds.Load()), 64)
}
