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

// Package nullability decides which expressions may evaluate to NULL, using
// the nullability metadata carried by function calls.
package nullability

import (
	"strings"

	"github.com/uber/sqlexpr/query/expr"
)

const coalesce = "COALESCE"

// Analyzer answers nullability questions for a fixed set of columns known
// to be declared NOT NULL.
type Analyzer struct {
	nonNull map[string]struct{}
}

// NewAnalyzer creates an analyzer treating nonNullColumns as NOT NULL.
// Every other column is assumed nullable.
func NewAnalyzer(nonNullColumns []string) *Analyzer {
	a := &Analyzer{nonNull: make(map[string]struct{}, len(nonNullColumns))}
	for _, column := range nonNullColumns {
		a.nonNull[column] = struct{}{}
	}
	return a
}

// Nullable returns whether e may evaluate to NULL.
func (a *Analyzer) Nullable(e expr.Expr) bool {
	switch e := e.(type) {
	case *expr.VarRef:
		_, ok := a.nonNull[e.Val]
		return !ok
	case *expr.NullLiteral:
		return true
	case *expr.StringLiteral, *expr.NumberLiteral, *expr.BooleanLiteral:
		return false
	case *expr.FunctionCall:
		return a.callNullable(e)
	default:
		return true
	}
}

func (a *Analyzer) callNullable(call *expr.FunctionCall) bool {
	if !call.IsNullable() {
		return false
	}

	if isCoalesce(call) {
		for _, arg := range call.Arguments() {
			if !a.Nullable(arg) {
				return false
			}
		}
		return true
	}

	sources := NullSources(call)
	if len(sources) == 0 {
		return true
	}
	for _, source := range sources {
		if a.Nullable(source) {
			return true
		}
	}
	return false
}

// NullSources returns the children of call whose NULL value makes the call
// NULL: the receiver first, then the arguments in order.
func NullSources(call *expr.FunctionCall) []expr.Expr {
	var sources []expr.Expr
	if propagates, _ := call.ReceiverPropagatesNullability(); propagates {
		sources = append(sources, call.Receiver())
	}
	for i := 0; i < call.NumArguments(); i++ {
		if propagates, _ := call.ArgumentPropagatesNullability(i); propagates {
			sources = append(sources, call.Argument(i))
		}
	}
	return sources
}

// ExpandIsNull rewrites `call IS NULL` as a disjunction of `source IS NULL`
// over the returned children. An empty result means the call is never NULL.
// ok is false when the call may be NULL for reasons its children do not
// explain, in which case the predicate has to stay on the call.
func (a *Analyzer) ExpandIsNull(call *expr.FunctionCall) (sources []expr.Expr, ok bool) {
	if !a.callNullable(call) {
		return nil, true
	}
	if isCoalesce(call) {
		return nil, false
	}

	all := NullSources(call)
	if len(all) == 0 {
		return nil, false
	}
	for _, source := range all {
		if a.Nullable(source) {
			sources = append(sources, source)
		}
	}
	return sources, true
}

func isCoalesce(call *expr.FunctionCall) bool {
	return call.IsBuiltIn() && call.Shape() == expr.GlobalCall && strings.EqualFold(call.Name(), coalesce)
}
