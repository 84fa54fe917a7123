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

// Package cache keys values by expression structure, so that two
// structurally equal expressions built independently share one entry.
package cache

import (
	"sync"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/uber/sqlexpr/common"
	"github.com/uber/sqlexpr/query/expr"
	"github.com/uber/sqlexpr/utils"
)

// entry is one cached expression. seq orders entries by first insertion.
type entry struct {
	expr  expr.Expr
	value interface{}
	hash  uint64
	seq   int64
}

// seqComparator orders entries oldest first.
func seqComparator(a, b interface{}) int {
	aSeq := a.(int64)
	bSeq := b.(int64)
	switch {
	case aSeq < bSeq:
		return -1
	case aSeq > bSeq:
		return 1
	default:
		return 0
	}
}

// Cache maps expressions to values using Hash to find a bucket and Equal
// to find the entry within it. Once more than capacity expressions are
// cached the oldest ones are evicted. It is safe for concurrent use.
type Cache struct {
	sync.RWMutex
	capacity int
	buckets  map[uint64][]*entry

	// order holds the entries by insertion sequence, oldest first.
	order   *rbt.Tree
	nextSeq int64

	logger   common.Logger
	reporter *utils.Reporter
}

// New creates a cache holding at most capacity expressions. A non positive
// capacity falls back to common.DefaultCacheCapacity.
func New(capacity int, logger common.Logger, reporter *utils.Reporter) *Cache {
	if capacity <= 0 {
		capacity = common.DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		buckets:  make(map[uint64][]*entry),
		order:    rbt.NewWith(seqComparator),
		logger:   logger,
		reporter: reporter,
	}
}

// Get returns the value cached for an expression structurally equal to e.
func (c *Cache) Get(e expr.Expr) (interface{}, bool) {
	if e == nil {
		return nil, false
	}
	c.RLock()
	var value interface{}
	found := c.lookup(e.Hash(), e)
	if found != nil {
		value = found.value
	}
	c.RUnlock()

	if found == nil {
		c.reporter.GetCounter(utils.ExprCacheMisses).Inc(1)
		return nil, false
	}
	c.reporter.GetCounter(utils.ExprCacheHits).Inc(1)
	return value, true
}

// Put caches value for e, replacing the value of a structurally equal
// expression if one is cached already.
func (c *Cache) Put(e expr.Expr, value interface{}) {
	if e == nil {
		return
	}
	c.Lock()
	defer c.Unlock()

	hash := e.Hash()
	if found := c.lookup(hash, e); found != nil {
		found.value = value
		return
	}
	c.insert(hash, e, value)
}

// Intern returns the first cached expression structurally equal to e, or
// caches and returns e itself.
func (c *Cache) Intern(e expr.Expr) expr.Expr {
	if e == nil {
		return nil
	}
	c.Lock()
	defer c.Unlock()

	hash := e.Hash()
	if found := c.lookup(hash, e); found != nil {
		c.reporter.GetCounter(utils.ExprCacheHits).Inc(1)
		return found.expr
	}
	c.reporter.GetCounter(utils.ExprCacheMisses).Inc(1)
	c.insert(hash, e, nil)
	return e
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return c.order.Size()
}

// Clear drops every cached expression.
func (c *Cache) Clear() {
	c.Lock()
	defer c.Unlock()
	c.buckets = make(map[uint64][]*entry)
	c.order.Clear()
	c.reportSize()
}

func (c *Cache) lookup(hash uint64, e expr.Expr) *entry {
	for _, candidate := range c.buckets[hash] {
		if expr.Equal(candidate.expr, e) {
			return candidate
		}
	}
	return nil
}

// insert requires the write lock.
func (c *Cache) insert(hash uint64, e expr.Expr, value interface{}) {
	added := &entry{expr: e, value: value, hash: hash, seq: c.nextSeq}
	c.nextSeq++
	c.buckets[hash] = append(c.buckets[hash], added)
	c.order.Put(added.seq, added)

	for c.order.Size() > c.capacity {
		c.evictOldest()
	}
	c.reportSize()
}

func (c *Cache) evictOldest() {
	oldest := c.order.Left()
	evicted := oldest.Value.(*entry)
	c.order.Remove(oldest.Key)

	hash := evicted.hash
	bucket := c.buckets[hash]
	for i, candidate := range bucket {
		if candidate == evicted {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, hash)
	} else {
		c.buckets[hash] = bucket
	}

	c.reporter.GetCounter(utils.ExprCacheEvictions).Inc(1)
	c.logger.With("hash", hash, "capacity", c.capacity).Debugf("evicted %s", evicted.expr)
}

func (c *Cache) reportSize() {
	c.reporter.GetGauge(utils.ExprCacheSize).Update(float64(c.order.Size()))
}
