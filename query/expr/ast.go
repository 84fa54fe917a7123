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
	"strconv"
	"strings"
)

// Expr is a node of the intermediate expression tree.
//
// Implementations must be pointer types: rewriting detects unchanged
// children by comparing the interface values returned by a Visitor with
// the originals, which is an identity comparison for pointers.
type Expr interface {
	expr()

	// Type returns the semantic result type.
	Type() Type
	// TypeMapping returns the dialect mapping, nil when not inferred yet.
	TypeMapping() *TypeMapping

	// Print renders the expression into p.
	Print(p Printer)
	// String renders the expression with the default printer.
	String() string

	// Equal reports structural equality, see Equal.
	Equal(other Expr) bool
	// Hash returns a hash that agrees with Equal.
	Hash() uint64
}

func (*VarRef) expr()         {}
func (*StringLiteral) expr()  {}
func (*NumberLiteral) expr()  {}
func (*BooleanLiteral) expr() {}
func (*NullLiteral) expr()    {}
func (*FunctionCall) expr()   {}

// Equal returns whether a and b are structurally equal. Either may be nil.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	return a.Equal(b)
}

// baseEqual is the equality contribution every node shares: result type and
// type mapping.
func baseEqual(a, b Expr) bool {
	return a.Type() == b.Type() && a.TypeMapping().Equal(b.TypeMapping())
}

// hash kinds for the leaves; function calls hash their own fields only.
const (
	kindVarRef byte = iota + 1
	kindString
	kindNumber
	kindBoolean
	kindNull
)

// VarRef represents a reference to a column or variable.
type VarRef struct {
	Val      string
	ExprType Type
	Mapping  *TypeMapping
}

// Type returns the type.
func (r *VarRef) Type() Type { return r.ExprType }

// TypeMapping returns the type mapping.
func (r *VarRef) TypeMapping() *TypeMapping { return r.Mapping }

// Print writes the variable name.
func (r *VarRef) Print(p Printer) { p.Append(r.Val) }

// String returns a string representation of the variable reference.
func (r *VarRef) String() string { return r.Val }

// Equal compares the column name, type and type mapping.
func (r *VarRef) Equal(other Expr) bool {
	o, ok := other.(*VarRef)
	return ok && o != nil && r.Val == o.Val && baseEqual(r, o)
}

// Hash combines the column name with the base fields.
func (r *VarRef) Hash() uint64 {
	h := NewHasher()
	h.WriteKind(kindVarRef)
	h.WriteBase(r)
	h.WriteString(r.Val)
	return h.Sum64()
}

// StringLiteral represents a string literal.
type StringLiteral struct {
	Val     string
	Mapping *TypeMapping
}

// Type returns String.
func (l *StringLiteral) Type() Type { return String }

// TypeMapping returns the type mapping.
func (l *StringLiteral) TypeMapping() *TypeMapping { return l.Mapping }

// Print writes the quoted literal.
func (l *StringLiteral) Print(p Printer) { p.Append(l.String()) }

// String returns a string representation of the literal.
func (l *StringLiteral) String() string { return QuoteString(l.Val) }

// Equal compares the value, type and type mapping.
func (l *StringLiteral) Equal(other Expr) bool {
	o, ok := other.(*StringLiteral)
	return ok && o != nil && l.Val == o.Val && baseEqual(l, o)
}

// Hash combines the value with the base fields.
func (l *StringLiteral) Hash() uint64 {
	h := NewHasher()
	h.WriteKind(kindString)
	h.WriteBase(l)
	h.WriteString(l.Val)
	return h.Sum64()
}

// NumberLiteral represents a numeric literal.
type NumberLiteral struct {
	Val float64
	// Text is the literal as written, preferred when rendering.
	Text     string
	ExprType Type
	Mapping  *TypeMapping
}

// Type returns the type.
func (l *NumberLiteral) Type() Type { return l.ExprType }

// TypeMapping returns the type mapping.
func (l *NumberLiteral) TypeMapping() *TypeMapping { return l.Mapping }

// Print writes the literal.
func (l *NumberLiteral) Print(p Printer) { p.Append(l.String()) }

// String returns a string representation of the literal.
func (l *NumberLiteral) String() string {
	if l.Text != "" {
		return l.Text
	}
	if l.ExprType == Integer {
		return strconv.FormatInt(int64(l.Val), 10)
	}
	return strconv.FormatFloat(l.Val, 'f', -1, 64)
}

// Equal compares the numeric value, type and type mapping. Text is
// ignored, so 1.0 and 1.00 are equal.
func (l *NumberLiteral) Equal(other Expr) bool {
	o, ok := other.(*NumberLiteral)
	return ok && o != nil && l.Val == o.Val && baseEqual(l, o)
}

// Hash combines the numeric value with the base fields.
func (l *NumberLiteral) Hash() uint64 {
	h := NewHasher()
	h.WriteKind(kindNumber)
	h.WriteBase(l)
	h.WriteFloat64(l.Val)
	return h.Sum64()
}

// BooleanLiteral represents a boolean literal.
type BooleanLiteral struct {
	Val     bool
	Mapping *TypeMapping
}

// Type returns Boolean.
func (l *BooleanLiteral) Type() Type { return Boolean }

// TypeMapping returns the type mapping.
func (l *BooleanLiteral) TypeMapping() *TypeMapping { return l.Mapping }

// Print writes TRUE or FALSE.
func (l *BooleanLiteral) Print(p Printer) { p.Append(l.String()) }

// String returns a string representation of the literal.
func (l *BooleanLiteral) String() string {
	if l.Val {
		return "TRUE"
	}
	return "FALSE"
}

// Equal compares the value and type mapping.
func (l *BooleanLiteral) Equal(other Expr) bool {
	o, ok := other.(*BooleanLiteral)
	return ok && o != nil && l.Val == o.Val && baseEqual(l, o)
}

// Hash combines the value with the base fields.
func (l *BooleanLiteral) Hash() uint64 {
	h := NewHasher()
	h.WriteKind(kindBoolean)
	h.WriteBase(l)
	h.WriteBool(l.Val)
	return h.Sum64()
}

// NullLiteral represents a NULL literal of a given type.
type NullLiteral struct {
	ExprType Type
	Mapping  *TypeMapping
}

// Type returns the type.
func (l *NullLiteral) Type() Type { return l.ExprType }

// TypeMapping returns the type mapping.
func (l *NullLiteral) TypeMapping() *TypeMapping { return l.Mapping }

// Print writes NULL.
func (l *NullLiteral) Print(p Printer) { p.Append("NULL") }

// String returns "NULL".
func (l *NullLiteral) String() string { return "NULL" }

// Equal compares the type and type mapping.
func (l *NullLiteral) Equal(other Expr) bool {
	o, ok := other.(*NullLiteral)
	return ok && o != nil && baseEqual(l, o)
}

// Hash combines the base fields.
func (l *NullLiteral) Hash() uint64 {
	h := NewHasher()
	h.WriteKind(kindNull)
	h.WriteBase(l)
	return h.Sum64()
}

// QuoteString returns a quoted string.
func QuoteString(s string) string {
	return `'` + strings.NewReplacer("\n", `\n`, `\`, `\\`, `'`, `\'`).Replace(s) + `'`
}
