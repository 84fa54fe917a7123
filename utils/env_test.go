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
	"os"

	"github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Env test", func() {
	var oldEnv string
	ginkgo.BeforeEach(func() {
		oldEnv = os.Getenv("SQLEXPR_ENV")
	})

	ginkgo.AfterEach(func() {
		os.Setenv("SQLEXPR_ENV", oldEnv)
	})

	ginkgo.It("GetEnv should follow the SQLEXPR_ENV env variable", func() {
		os.Setenv("SQLEXPR_ENV", string(EnvTest))
		Ω(IsTest()).Should(BeTrue())
		Ω(DefaultLogLevel()).Should(Equal("debug"))

		os.Setenv("SQLEXPR_ENV", string(EnvProd))
		Ω(IsProd()).Should(BeTrue())
		Ω(DefaultLogLevel()).Should(Equal("info"))

		os.Setenv("SQLEXPR_ENV", "staging")
		Ω(IsDev()).Should(BeTrue())
	})
})
