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
	"gopkg.in/yaml.v2"

	"github.com/uber/sqlexpr/utils"
)

// Kinds of expression documents.
const (
	KindColumn   = "column"
	KindString   = "string"
	KindNumber   = "number"
	KindBool     = "bool"
	KindNull     = "null"
	KindFunction = "function"
)

// Node is the document form of an expression as produced by the query front
// end. Leaves carry their literal text in Value; functions use the
// remaining fields.
type Node struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value,omitempty"`

	// Type is the semantic result type name, e.g. String or Integer.
	Type      string `yaml:"type,omitempty"`
	StoreType string `yaml:"store_type,omitempty"`
	Size      int    `yaml:"size,omitempty"`
	Unicode   bool   `yaml:"unicode,omitempty"`

	Schema   string `yaml:"schema,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Receiver *Node  `yaml:"receiver,omitempty"`
	Args     []Node `yaml:"args,omitempty"`
	Niladic  bool   `yaml:"niladic,omitempty"`
	// BuiltIn defaults to true unless the function is schema qualified.
	BuiltIn  *bool `yaml:"built_in,omitempty"`
	Nullable bool  `yaml:"nullable,omitempty"`

	ReceiverPropagatesNullability *bool  `yaml:"receiver_propagates_nullability,omitempty"`
	ArgsPropagateNullability      []bool `yaml:"args_propagate_nullability,omitempty"`
}

// ParseDocument reads a yaml list of expression documents.
func ParseDocument(data []byte) ([]Node, error) {
	var nodes []Node
	if err := yaml.UnmarshalStrict(data, &nodes); err != nil {
		return nil, utils.StackError(err, "failed to parse expression document")
	}
	return nodes, nil
}
