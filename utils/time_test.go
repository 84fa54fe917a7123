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
)

var _ = ginkgo.Describe("Time", func() {
	ginkgo.It("Should use the mocked time", func() {
		now := time.Unix(1498608694, 0)
		SetClockImplementation(func() time.Time {
			return now
		})
		Ω(Now()).Should(Equal(now))

		now = time.Unix(1498608604, 0)
		SetCurrentTime(now)
		Ω(Now()).Should(Equal(now))
	})

	ginkgo.It("Since should follow the mocked clock", func() {
		inc := &TimeIncrementer{IncBySecond: 2}
		SetClockImplementation(inc.Now)
		defer ResetClockImplementation()

		start := Now()
		Ω(Since(start)).Should(Equal(2 * time.Second))
		Ω(Now().Sub(start)).Should(Equal(4 * time.Second))
	})
})
