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

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Type is the semantic result type of an expression, independent of the
// dialect it is eventually stored as. Notice that widths are not specified
// here; they belong to the TypeMapping.
type Type int

const (
	UnknownType Type = iota
	Boolean
	Integer
	Float
	Decimal
	String
	DateTime
	Binary
)

var typeNames = map[Type]string{
	UnknownType: "Unknown",
	Boolean:     "Boolean",
	Integer:     "Integer",
	Float:       "Float",
	Decimal:     "Decimal",
	String:      "String",
	DateTime:    "DateTime",
	Binary:      "Binary",
}

// String returns the type name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// MarshalJSON writes the type name.
func (t Type) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(t.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// ParseType returns the type with the given name, case insensitive.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return UnknownType, errors.Errorf("unknown type %q", name)
}

// TypeMapping is the dialect specific storage type attached to an
// expression. It takes part in equality but never in the shape of a node.
type TypeMapping struct {
	// StoreType is the dialect type name, e.g. nvarchar or datetime2.
	StoreType string

	// Size is the declared length or precision, 0 when unspecified.
	Size    int
	Unicode bool
}

// Equal compares two mappings by value. Two nil mappings are equal.
func (m *TypeMapping) Equal(other *TypeMapping) bool {
	if m == nil || other == nil {
		return m == other
	}
	return *m == *other
}

// String renders the mapping as a column type, e.g. nvarchar(20).
func (m *TypeMapping) String() string {
	if m == nil {
		return "<none>"
	}
	if m.Size > 0 {
		return fmt.Sprintf("%s(%d)", m.StoreType, m.Size)
	}
	return m.StoreType
}
