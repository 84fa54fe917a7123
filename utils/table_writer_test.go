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
	"github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type testRow struct {
	name  string
	count int
	value float64
}

type testDataSource []testRow

func (ds testDataSource) NumRows() int {
	return len(ds)
}

func (ds testDataSource) GetValue(row, col int) interface{} {
	rowValue := ds[row]
	if col == 0 {
		return rowValue.name
	} else if col == 1 {
		return rowValue.count
	}
	return rowValue.value
}

func (ds testDataSource) ColumnHeaders() []string {
	return []string{"name", "count", "value"}
}

type noColumns struct{}

func (noColumns) NumRows() int                      { return 1 }
func (noColumns) GetValue(row, col int) interface{} { return nil }
func (noColumns) ColumnHeaders() []string           { return nil }

var _ = ginkgo.Describe("table writer", func() {
	ginkgo.It("formatCell should work", func() {
		cell, numeric := formatCell("ss")
		Ω(cell).Should(Equal("ss"))
		Ω(numeric).Should(BeFalse())

		cell, numeric = formatCell(1.5)
		Ω(cell).Should(Equal("1.50"))
		Ω(numeric).Should(BeTrue())

		cell, numeric = formatCell(uint64(42))
		Ω(cell).Should(Equal("42"))
		Ω(numeric).Should(BeTrue())

		cell, numeric = formatCell(struct{}{})
		Ω(cell).Should(Equal("{}"))
		Ω(numeric).Should(BeFalse())
	})

	ginkgo.It("WriteTable should work", func() {
		Ω(WriteTable(noColumns{})).Should(Equal(""))

		Ω(WriteTable(testDataSource{})).Should(Equal(
			"|name|count|value|\n" +
				"|----|-----|-----|\n",
		))

		ds := testDataSource{
			testRow{
				name:  "jason",
				count: 7,
				value: 123.456,
			},
			testRow{
				name:  "thomas",
				value: 3456.789,
			},
		}
		Ω(WriteTable(ds)).Should(Equal(
			"|name  |count|  value|\n" +
				"|------|-----|-------|\n" +
				"|jason |    7| 123.46|\n" +
				"|thomas|    0|3456.79|\n",
		))
	})
})
