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

package v2

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStorageMetricsRegistered(t *testing.T) {
	before := testutil.ToFloat64(StorageCreatedCounter("Int32"))
	StorageCreatedCounter("Int32").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(StorageCreatedCounter("Int32")))

	AggregateErrorCounter("Sum", "overflow").Inc()
	require.Equal(t, float64(1), testutil.ToFloat64(AggregateErrorCounter("Sum", "overflow")))

	n, err := testutil.GatherAndCount(GetPrometheusGatherer(),
		"colstore_storage_created_total",
		"colstore_aggregate_error_total",
		"colstore_cache_build_total")
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 1)
}
