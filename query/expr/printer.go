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

package expr

import "strings"

// DefaultSeparator separates the elements of a collection.
const DefaultSeparator = ", "

// Printer is the sink expressions render themselves into.
type Printer interface {
	// Append writes s and returns the printer for chaining.
	Append(s string) Printer
	// Visit renders a nested expression.
	Visit(e Expr)
	// VisitCollection renders exprs separated by the printer's separator.
	VisitCollection(exprs []Expr)
}

// ExpressionPrinter renders expressions into a string buffer.
type ExpressionPrinter struct {
	Separator string
	buf       strings.Builder
}

// NewExpressionPrinter returns a printer using separator between collection
// elements, DefaultSeparator when empty.
func NewExpressionPrinter(separator string) *ExpressionPrinter {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &ExpressionPrinter{Separator: separator}
}

// Append writes s to the buffer.
func (p *ExpressionPrinter) Append(s string) Printer {
	p.buf.WriteString(s)
	return p
}

// Visit renders e, or <nil> when e is nil.
func (p *ExpressionPrinter) Visit(e Expr) {
	if e == nil {
		p.buf.WriteString("<nil>")
		return
	}
	e.Print(p)
}

// VisitCollection renders exprs separated by p.Separator.
func (p *ExpressionPrinter) VisitCollection(exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			p.buf.WriteString(p.Separator)
		}
		p.Visit(e)
	}
}

// String returns everything printed so far.
func (p *ExpressionPrinter) String() string { return p.buf.String() }

// Reset clears the buffer.
func (p *ExpressionPrinter) Reset() { p.buf.Reset() }

// Print renders e with the default separator.
func Print(e Expr) string {
	p := NewExpressionPrinter(DefaultSeparator)
	p.Visit(e)
	return p.String()
}
