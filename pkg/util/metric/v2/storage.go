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

import "github.com/prometheus/client_golang/prometheus"

var (
	storageCreatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colstore",
			Subsystem: "storage",
			Name:      "created_total",
			Help:      "Total number of column storages created, by storage type.",
		}, []string{"type"})

	aggregateErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colstore",
			Subsystem: "aggregate",
			Name:      "error_total",
			Help:      "Total number of failed aggregates.",
		}, []string{"kind", "reason"})

	cacheBuildCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "colstore",
			Subsystem: "cache",
			Name:      "build_total",
			Help:      "Total number of entries built for the shared type caches.",
		}, []string{"cache"})

	CacheBuildCapabilityCounter = cacheBuildCounter.WithLabelValues("capability")
	CacheBuildSerializerCounter = cacheBuildCounter.WithLabelValues("xml_serializer")
)

// StorageCreatedCounter returns the creation counter for one storage type.
func StorageCreatedCounter(typ string) prometheus.Counter {
	return storageCreatedCounter.WithLabelValues(typ)
}

// AggregateErrorCounter returns the failure counter for one aggregate kind
// and failure reason.
func AggregateErrorCounter(kind, reason string) prometheus.Counter {
	return aggregateErrorCounter.WithLabelValues(kind, reason)
}

func initStorageMetrics() {
	registry.MustRegister(storageCreatedCounter)
	registry.MustRegister(aggregateErrorCounter)
	registry.MustRegister(cacheBuildCounter)
}
