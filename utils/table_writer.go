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
	"bytes"
	"fmt"
	"strings"
)

// TableDataSource is what WriteTable renders. The number of columns is
// the number of headers; GetValue must not panic for any row in
// [0, NumRows()) and col in [0, len(ColumnHeaders())).
type TableDataSource interface {
	NumRows() int
	GetValue(row, col int) interface{}
	ColumnHeaders() []string
}

// formatCell renders a value and tells whether it is numeric.
func formatCell(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, false
	case float32, float64:
		return fmt.Sprintf("%.2f", v), true
	case int8, int16, int32, int64, int, uint8, uint16, uint32, uint64, uint:
		return fmt.Sprintf("%d", v), true
	default:
		return fmt.Sprintf("%v", v), false
	}
}

// WriteTable renders a tabular representation of dataSource with a rule
// under the header. Numbers are right justified, everything else is left
// justified. It returns an empty string if there are no columns.
func WriteTable(dataSource TableDataSource) string {
	headers := dataSource.ColumnHeaders()
	numCols := len(headers)
	if numCols == 0 {
		return ""
	}

	numRows := dataSource.NumRows()
	cells := make([][]string, numRows)
	numeric := make([]bool, numCols)
	widths := make([]int, numCols)
	for c, header := range headers {
		widths[c] = len(header)
	}
	for r := 0; r < numRows; r++ {
		cells[r] = make([]string, numCols)
		for c := 0; c < numCols; c++ {
			cell, isNumber := formatCell(dataSource.GetValue(r, c))
			if r == 0 {
				numeric[c] = isNumber
			}
			cells[r][c] = cell
			if len(cell) > widths[c] {
				widths[c] = len(cell)
			}
		}
	}

	var buffer bytes.Buffer
	writeRow := func(row []string, rightAligned []bool) {
		buffer.WriteString("|")
		for c, cell := range row {
			padding := strings.Repeat(" ", widths[c]-len(cell))
			if rightAligned[c] {
				buffer.WriteString(padding + cell)
			} else {
				buffer.WriteString(cell + padding)
			}
			buffer.WriteString("|")
		}
		buffer.WriteString("\n")
	}

	writeRow(headers, numeric)
	rule := make([]string, numCols)
	for c, width := range widths {
		rule[c] = strings.Repeat("-", width)
	}
	writeRow(rule, numeric)
	for _, row := range cells {
		writeRow(row, numeric)
	}
	return buffer.String()
}
