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
	"time"

	"github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/uber-go/tally"
)

var _ = ginkgo.Describe("metrics", func() {
	ginkgo.It("all cached metrics definitions should be properly initialized", func() {
		reporter := GetRootReporter()
		Ω(reporter.cachedDefinitions).Should(HaveLen(int(NumMetricNames)))
		for _, def := range reporter.cachedDefinitions {
			switch def.metricType {
			case Counter:
				Ω(def.counter).ShouldNot(BeNil())
			case Gauge:
				Ω(def.gauge).ShouldNot(BeNil())
			case Timer:
				Ω(def.timer).ShouldNot(BeNil())
			}
		}
	})

	ginkgo.It("NewReporter should work", func() {
		scope := tally.NewTestScope("test", nil)
		r := NewReporter(scope)
		Ω(r.GetRootScope()).Should(Equal(scope))
	})

	ginkgo.It("counters should be tagged with component and operation", func() {
		scope := tally.NewTestScope("test", nil)
		r := NewReporter(scope)
		r.GetCounter(ExprCacheHits).Inc(2)
		r.GetCounter(ExprTranslationFailed).Inc(1)
		counters := scope.Snapshot().Counters()
		Ω(counters).Should(HaveKey("test.expr_cache_hits+component=cache,operation=intern"))
		Ω(counters["test.expr_cache_hits+component=cache,operation=intern"].Value()).Should(BeEquivalentTo(2))
		Ω(counters).Should(HaveKey("test.expr_translation_failed+component=translate,operation=build"))
	})

	ginkgo.It("gauges and timers should be reported", func() {
		scope := tally.NewTestScope("test", nil)
		r := NewReporter(scope)
		r.GetGauge(ExprCacheSize).Update(3)
		r.GetTimer(ExprRewriteLatency).Record(time.Millisecond)
		Ω(scope.Snapshot().Gauges()).Should(HaveKey("test.expr_cache_size+component=cache"))
		Ω(scope.Snapshot().Timers()).Should(HaveKey("test.expr_rewrite_latency+component=translate,operation=type_mapping"))
	})
})
