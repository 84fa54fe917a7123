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

package translate

import (
	"strings"

	"github.com/uber/sqlexpr/common"
	"github.com/uber/sqlexpr/query/expr"
	"github.com/uber/sqlexpr/utils"
)

// MappingPass assigns configured dialect type mappings to function calls.
// Mappings are looked up by "schema.name" first, then by name, ignoring case.
type MappingPass struct {
	mappings  map[string]*expr.TypeMapping
	rewritten int
}

// TypeMappingPass creates a pass applying mappings. Every call matching the
// same key receives the same *expr.TypeMapping, so running the pass twice
// leaves the tree untouched the second time.
func TypeMappingPass(mappings map[string]expr.TypeMapping) *MappingPass {
	p := &MappingPass{mappings: make(map[string]*expr.TypeMapping, len(mappings))}
	for name, mapping := range mappings {
		m := mapping
		p.mappings[strings.ToLower(name)] = &m
	}
	return p
}

// MappingsFromConfig converts configured mappings into the keys
// TypeMappingPass expects.
func MappingsFromConfig(configs []common.TypeMappingConfig) map[string]expr.TypeMapping {
	mappings := make(map[string]expr.TypeMapping, len(configs))
	for _, c := range configs {
		name := c.Function
		if c.Schema != "" {
			name = c.Schema + "." + c.Function
		}
		mappings[name] = expr.TypeMapping{StoreType: c.StoreType, Size: c.Size, Unicode: c.Unicode}
	}
	return mappings
}

// Rewrite implements expr.Rewriter.
func (p *MappingPass) Rewrite(e expr.Expr) expr.Expr {
	call, ok := e.(*expr.FunctionCall)
	if !ok {
		return e
	}
	mapping := p.lookup(call)
	if mapping == nil || mapping.Equal(call.TypeMapping()) {
		return e
	}
	p.rewritten++
	return call.ApplyTypeMapping(mapping)
}

// Rewritten returns the number of calls the pass changed so far.
func (p *MappingPass) Rewritten() int {
	return p.rewritten
}

func (p *MappingPass) lookup(call *expr.FunctionCall) *expr.TypeMapping {
	name := strings.ToLower(call.Name())
	if call.Schema() != "" {
		if m, ok := p.mappings[strings.ToLower(call.Schema())+"."+name]; ok {
			return m
		}
	}
	return p.mappings[name]
}

// ApplyTypeMappings runs pass over e and reports how long it took and how
// many calls changed.
func (t *Translator) ApplyTypeMappings(e expr.Expr, pass *MappingPass) expr.Expr {
	start := utils.Now()
	before := pass.Rewritten()
	result := expr.Rewrite(pass, e)

	t.reporter.GetTimer(utils.ExprRewriteLatency).Record(utils.Since(start))
	if changed := pass.Rewritten() - before; changed > 0 {
		t.reporter.GetCounter(utils.ExprRewritten).Inc(int64(changed))
	}
	return result
}
