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

package common

import (
	"io"
	"io/ioutil"

	"github.com/uber-go/tally"
)

// Metrics is the interface for creating the root metrics scope.
type Metrics interface {
	NewRootScope() (tally.Scope, io.Closer, error)
}

// NewNoopMetrics returns a Metrics whose scope drops everything.
func NewNoopMetrics() Metrics {
	return dummyMetrics{}
}

type dummyMetrics struct{}

func (dummyMetrics) NewRootScope() (tally.Scope, io.Closer, error) {
	return tally.NoopScope, ioutil.NopCloser(nil), nil
}

// NewLocalMetrics returns a Metrics reporting into an in-process test scope
// with the given prefix. The cli snapshots it to print a summary at exit.
func NewLocalMetrics(prefix string) Metrics {
	return localMetrics{prefix: prefix}
}

type localMetrics struct {
	prefix string
}

func (m localMetrics) NewRootScope() (tally.Scope, io.Closer, error) {
	return tally.NewTestScope(m.prefix, nil), ioutil.NopCloser(nil), nil
}
