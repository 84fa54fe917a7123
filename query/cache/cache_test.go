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

package cache

import (
	"fmt"
	"sync"

	"github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/uber-go/tally"

	"github.com/uber/sqlexpr/common"
	"github.com/uber/sqlexpr/query/expr"
	"github.com/uber/sqlexpr/utils"
)

const (
	hitsKey      = "test.expr_cache_hits+component=cache,operation=intern"
	missesKey    = "test.expr_cache_misses+component=cache,operation=intern"
	evictionsKey = "test.expr_cache_evictions+component=cache"
	sizeKey      = "test.expr_cache_size+component=cache"
)

func lower(column string) *expr.FunctionCall {
	f, err := expr.NewBuiltIn("LOWER", []expr.Expr{&expr.VarRef{Val: column, ExprType: expr.String}}, []bool{true},
		expr.ResultInfo{Type: expr.String, Nullable: true})
	Ω(err).Should(BeNil())
	return f
}

var _ = ginkgo.Describe("expression cache", func() {
	var (
		scope tally.TestScope
		cache *Cache
	)

	ginkgo.BeforeEach(func() {
		scope = tally.NewTestScope("test", nil)
		cache = New(2, &common.NoopLogger{}, utils.NewReporter(scope))
	})

	ginkgo.It("interns structurally equal expressions", func() {
		first := lower("name")
		second := lower("name")
		Ω(second).ShouldNot(BeIdenticalTo(first))

		Ω(cache.Intern(first)).Should(BeIdenticalTo(first))
		Ω(cache.Intern(second)).Should(BeIdenticalTo(first))
		Ω(cache.Len()).Should(Equal(1))

		counters := scope.Snapshot().Counters()
		Ω(counters[hitsKey].Value()).Should(BeEquivalentTo(1))
		Ω(counters[missesKey].Value()).Should(BeEquivalentTo(1))
		Ω(scope.Snapshot().Gauges()[sizeKey].Value()).Should(BeEquivalentTo(1))
	})

	ginkgo.It("ignores nullability hints in keys", func() {
		f, _ := expr.NewNiladicInstance(&expr.VarRef{Val: "c"}, "ToUpper", true, expr.ResultInfo{Type: expr.String})
		g, _ := expr.NewNiladicInstance(&expr.VarRef{Val: "c"}, "ToUpper", false, expr.ResultInfo{Type: expr.String, Nullable: true})
		cache.Put(f, "plan")
		value, ok := cache.Get(g)
		Ω(ok).Should(BeTrue())
		Ω(value).Should(Equal("plan"))
	})

	ginkgo.It("gets and replaces values", func() {
		_, ok := cache.Get(lower("a"))
		Ω(ok).Should(BeFalse())

		cache.Put(lower("a"), 1)
		cache.Put(lower("a"), 2)
		value, ok := cache.Get(lower("a"))
		Ω(ok).Should(BeTrue())
		Ω(value).Should(Equal(2))
		Ω(cache.Len()).Should(Equal(1))

		_, ok = cache.Get(nil)
		Ω(ok).Should(BeFalse())
		Ω(cache.Intern(nil)).Should(BeNil())
	})

	ginkgo.It("separates niladic and empty calls", func() {
		niladic, _ := expr.NewNiladicBuiltIn("PI", expr.ResultInfo{Type: expr.Float})
		empty, _ := expr.NewBuiltIn("PI", nil, nil, expr.ResultInfo{Type: expr.Float})
		Ω(cache.Intern(niladic)).Should(BeIdenticalTo(niladic))
		Ω(cache.Intern(empty)).Should(BeIdenticalTo(empty))
		Ω(cache.Len()).Should(Equal(2))
	})

	ginkgo.It("evicts the oldest expressions", func() {
		a, b, c := lower("a"), lower("b"), lower("c")
		cache.Intern(a)
		cache.Intern(b)
		Ω(cache.Intern(lower("a"))).Should(BeIdenticalTo(a))
		cache.Intern(c)

		Ω(cache.Len()).Should(Equal(2))
		_, ok := cache.Get(a)
		Ω(ok).Should(BeFalse())
		_, ok = cache.Get(b)
		Ω(ok).Should(BeTrue())
		_, ok = cache.Get(c)
		Ω(ok).Should(BeTrue())
		Ω(scope.Snapshot().Counters()[evictionsKey].Value()).Should(BeEquivalentTo(1))
	})

	ginkgo.It("clears", func() {
		cache.Put(lower("a"), 1)
		cache.Clear()
		Ω(cache.Len()).Should(Equal(0))
		_, ok := cache.Get(lower("a"))
		Ω(ok).Should(BeFalse())
		Ω(scope.Snapshot().Gauges()[sizeKey].Value()).Should(BeEquivalentTo(0))
	})

	ginkgo.It("falls back to the default capacity", func() {
		c := New(0, &common.NoopLogger{}, utils.NewReporter(scope))
		Ω(c.capacity).Should(Equal(common.DefaultCacheCapacity))
	})

	ginkgo.It("is safe for concurrent use", func() {
		c := New(100, &common.NoopLogger{}, utils.NewReporter(scope))
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer ginkgo.GinkgoRecover()
				defer wg.Done()
				for j := 0; j < 50; j++ {
					c.Intern(lower(fmt.Sprintf("c%d", j)))
				}
			}()
		}
		wg.Wait()
		Ω(c.Len()).Should(Equal(50))
	})

	ginkgo.It("serves reads while values are replaced", func() {
		c := New(100, &common.NoopLogger{}, utils.NewReporter(scope))
		e := &expr.VarRef{Val: "a", ExprType: expr.String}
		c.Put(e, -1)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer ginkgo.GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.Put(&expr.VarRef{Val: "a", ExprType: expr.String}, i)
			}
		}()
		go func() {
			defer ginkgo.GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				v, ok := c.Get(e)
				Ω(ok).Should(BeTrue())
				Ω(v).Should(BeNumerically(">=", -1))
			}
		}()
		wg.Wait()

		v, ok := c.Get(e)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal(999))
		Ω(c.Len()).Should(Equal(1))
	})
})
