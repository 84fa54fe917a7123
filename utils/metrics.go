//  Copyright (c) 2017-2018 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"github.com/uber-go/tally"
)

// MetricName is the type of the metric.
type MetricName int

// List of supported metric names.
const (
	ExprCacheHits MetricName = iota
	ExprCacheMisses
	ExprCacheEvictions
	ExprCacheSize
	ExprTranslated
	ExprTranslationFailed
	ExprRewriteLatency
	ExprRewritten
	// Enum sentinel.
	NumMetricNames
)

// MetricType is the supported metric type.
type MetricType int

// MetricTypes which are supported.
const (
	Counter MetricType = iota
	Gauge
	Timer
)

// metricDefinition contains the definition of a metric.
type metricDefinition struct {
	// scope name for this definition
	name string
	// additional tags
	tags map[string]string
	// metric type
	metricType MetricType

	// cached tally counter
	counter tally.Counter

	// cached tally gauge
	gauge tally.Gauge

	// cached tally timer
	timer tally.Timer
}

// Scope names.
const (
	scopeNameExprCacheHits         = "expr_cache_hits"
	scopeNameExprCacheMisses       = "expr_cache_misses"
	scopeNameExprCacheEvictions    = "expr_cache_evictions"
	scopeNameExprCacheSize         = "expr_cache_size"
	scopeNameExprTranslated        = "expr_translated"
	scopeNameExprTranslationFailed = "expr_translation_failed"
	scopeNameExprRewriteLatency    = "expr_rewrite_latency"
	scopeNameExprRewritten         = "expr_rewritten"
)

// Metric tag names
const (
	metricsTagComponent = "component"
	metricsTagOperation = "operation"
)

// Metric component tag values
const (
	metricsComponentCache     = "cache"
	metricsComponentTranslate = "translate"
)

// Metric operation tag values
const (
	metricsOperationIntern      = "intern"
	metricsOperationBuild       = "build"
	metricsOperationTypeMapping = "type_mapping"
)

var metricsDefs = map[MetricName]metricDefinition{
	ExprCacheHits: {
		name:       scopeNameExprCacheHits,
		metricType: Counter,
		tags: map[string]string{
			metricsTagComponent: metricsComponentCache,
			metricsTagOperation: metricsOperationIntern,
		},
	},
	ExprCacheMisses: {
		name:       scopeNameExprCacheMisses,
		metricType: Counter,
		tags: map[string]string{
			metricsTagComponent: metricsComponentCache,
			metricsTagOperation: metricsOperationIntern,
		},
	},
	ExprCacheEvictions: {
		name:       scopeNameExprCacheEvictions,
		metricType: Counter,
		tags: map[string]string{
			metricsTagComponent: metricsComponentCache,
		},
	},
	ExprCacheSize: {
		name:       scopeNameExprCacheSize,
		metricType: Gauge,
		tags: map[string]string{
			metricsTagComponent: metricsComponentCache,
		},
	},
	ExprTranslated: {
		name:       scopeNameExprTranslated,
		metricType: Counter,
		tags: map[string]string{
			metricsTagComponent: metricsComponentTranslate,
			metricsTagOperation: metricsOperationBuild,
		},
	},
	ExprTranslationFailed: {
		name:       scopeNameExprTranslationFailed,
		metricType: Counter,
		tags: map[string]string{
			metricsTagComponent: metricsComponentTranslate,
			metricsTagOperation: metricsOperationBuild,
		},
	},
	ExprRewriteLatency: {
		name:       scopeNameExprRewriteLatency,
		metricType: Timer,
		tags: map[string]string{
			metricsTagComponent: metricsComponentTranslate,
			metricsTagOperation: metricsOperationTypeMapping,
		},
	},
	ExprRewritten: {
		name:       scopeNameExprRewritten,
		metricType: Counter,
		tags: map[string]string{
			metricsTagComponent: metricsComponentTranslate,
			metricsTagOperation: metricsOperationTypeMapping,
		},
	},
}

func (def *metricDefinition) init(rootScope tally.Scope) {
	switch def.metricType {
	case Counter:
		def.counter = rootScope.Tagged(def.tags).Counter(def.name)
	case Gauge:
		def.gauge = rootScope.Tagged(def.tags).Gauge(def.name)
	case Timer:
		def.timer = rootScope.Tagged(def.tags).Timer(def.name)
	}
}

// Reporter is the the interface used to report stats.
type Reporter struct {
	rootScope         tally.Scope
	cachedDefinitions []metricDefinition
}

// NewReporter returns a new reporter with supplied root scope.
func NewReporter(rootScope tally.Scope) *Reporter {
	defs := make([]metricDefinition, NumMetricNames)
	for key, metricDefinition := range metricsDefs {
		metricDefinition.init(rootScope)
		defs[key] = metricDefinition
	}
	return &Reporter{rootScope: rootScope, cachedDefinitions: defs}
}

// GetCounter returns the tally counter with corresponding tags.
func (r *Reporter) GetCounter(n MetricName) tally.Counter {
	def := r.cachedDefinitions[n]
	if def.metricType == Counter {
		return def.counter
	}
	GetLogger().Fatalf("Cannot get counter given %d", n)
	return nil
}

// GetGauge returns the tally gauge with corresponding tags.
func (r *Reporter) GetGauge(n MetricName) tally.Gauge {
	def := r.cachedDefinitions[n]
	if def.metricType == Gauge {
		return def.gauge
	}
	GetLogger().Fatalf("Cannot get gauge given %d", n)
	return nil
}

// GetTimer returns the tally timer with corresponding tags.
func (r *Reporter) GetTimer(n MetricName) tally.Timer {
	def := r.cachedDefinitions[n]
	if def.metricType == Timer {
		return def.timer
	}
	GetLogger().Fatalf("Cannot get timer given %d", n)
	return nil
}

// GetRootScope returns the root scope wrapped by this reporter.
func (r *Reporter) GetRootScope() tally.Scope {
	return r.rootScope
}
