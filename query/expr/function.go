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
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// CallShape tells how a function call is addressed.
type CallShape int

const (
	// GlobalCall is an unqualified call such as LOWER(x).
	GlobalCall CallShape = iota
	// SchemaCall is a schema qualified call such as dbo.Split(x).
	SchemaCall
	// InstanceCall is a call on a receiver such as x.ToUpper.
	InstanceCall
)

// String returns the shape name.
func (s CallShape) String() string {
	switch s {
	case GlobalCall:
		return "global"
	case SchemaCall:
		return "schema"
	case InstanceCall:
		return "instance"
	default:
		return "unknown"
	}
}

// ResultInfo describes what a call evaluates to.
type ResultInfo struct {
	Type        Type
	TypeMapping *TypeMapping
	// Nullable is whether the call's result may be null.
	Nullable bool
}

// Call lists every field of a function call. It is the input of New,
// which checks all invariants; the shape specific constructors below fill
// it in for the common cases.
type Call struct {
	Receiver Expr
	Schema   string
	Name     string
	Niladic  bool
	BuiltIn  bool

	// Args is ignored when nil for a non niladic call, which then has
	// zero arguments.
	Args []Expr

	Nullable                      bool
	ReceiverPropagatesNullability *bool
	ArgsPropagateNullability      []bool

	Type        Type
	TypeMapping *TypeMapping
}

// FunctionCall is an immutable function invocation node.
//
// The receiver and the schema are mutually exclusive, a niladic call has
// no argument list, and the argument nullability flags, when present, have
// one entry per argument. Use New or one of the shape specific
// constructors; the zero value is not a valid node.
type FunctionCall struct {
	receiver Expr
	schema   string
	name     string
	niladic  bool
	builtIn  bool
	args     []Expr

	nullable                      bool
	receiverPropagatesNullability *bool
	argsPropagateNullability      []bool

	resultType  Type
	typeMapping *TypeMapping
}

// NewNiladicBuiltIn creates a built-in call without argument list, e.g. CURRENT_TIMESTAMP.
func NewNiladicBuiltIn(name string, result ResultInfo) (*FunctionCall, error) {
	return New(Call{
		Name:        name,
		Niladic:     true,
		BuiltIn:     true,
		Nullable:    result.Nullable,
		Type:        result.Type,
		TypeMapping: result.TypeMapping,
	})
}

// NewBuiltIn creates a built-in call with an argument list, e.g. LOWER(x).
// argsPropagateNullability may be nil when unknown.
func NewBuiltIn(name string, args []Expr, argsPropagateNullability []bool, result ResultInfo) (*FunctionCall, error) {
	return New(Call{
		Name:                     name,
		BuiltIn:                  true,
		Args:                     args,
		Nullable:                 result.Nullable,
		ArgsPropagateNullability: argsPropagateNullability,
		Type:                     result.Type,
		TypeMapping:              result.TypeMapping,
	})
}

// NewNiladicSchema creates a schema qualified call without argument list.
func NewNiladicSchema(schema, name string, result ResultInfo) (*FunctionCall, error) {
	if schema == "" {
		return nil, errors.Wrapf(ErrConflictingAddressing, "schema qualified call %s requires a schema", name)
	}
	return New(Call{
		Schema:      schema,
		Name:        name,
		Niladic:     true,
		Nullable:    result.Nullable,
		Type:        result.Type,
		TypeMapping: result.TypeMapping,
	})
}

// NewSchema creates a schema qualified call with an argument list, e.g. dbo.Split(x, ',').
func NewSchema(schema, name string, args []Expr, argsPropagateNullability []bool, result ResultInfo) (*FunctionCall, error) {
	if schema == "" {
		return nil, errors.Wrapf(ErrConflictingAddressing, "schema qualified call %s requires a schema", name)
	}
	return New(Call{
		Schema:                   schema,
		Name:                     name,
		Args:                     args,
		Nullable:                 result.Nullable,
		ArgsPropagateNullability: argsPropagateNullability,
		Type:                     result.Type,
		TypeMapping:              result.TypeMapping,
	})
}

// NewNiladicInstance creates a call on receiver without argument list, e.g. x.ToUpper.
func NewNiladicInstance(receiver Expr, name string, receiverPropagatesNullability bool, result ResultInfo) (*FunctionCall, error) {
	if receiver == nil {
		return nil, errors.Wrapf(ErrConflictingAddressing, "instance call %s requires a receiver", name)
	}
	return New(Call{
		Receiver:                      receiver,
		Name:                          name,
		Niladic:                       true,
		BuiltIn:                       true,
		Nullable:                      result.Nullable,
		ReceiverPropagatesNullability: &receiverPropagatesNullability,
		Type:                          result.Type,
		TypeMapping:                   result.TypeMapping,
	})
}

// NewInstance creates a call on receiver with an argument list, e.g. x.Substring(1, 2).
func NewInstance(receiver Expr, name string, args []Expr, receiverPropagatesNullability bool,
	argsPropagateNullability []bool, result ResultInfo) (*FunctionCall, error) {
	if receiver == nil {
		return nil, errors.Wrapf(ErrConflictingAddressing, "instance call %s requires a receiver", name)
	}
	return New(Call{
		Receiver:                      receiver,
		Name:                          name,
		BuiltIn:                       true,
		Args:                          args,
		Nullable:                      result.Nullable,
		ReceiverPropagatesNullability: &receiverPropagatesNullability,
		ArgsPropagateNullability:      argsPropagateNullability,
		Type:                          result.Type,
		TypeMapping:                   result.TypeMapping,
	})
}

// New validates c and creates the node. No node is returned on error.
func New(c Call) (*FunctionCall, error) {
	if c.Name == "" {
		return nil, ErrInvalidName
	}
	if c.Receiver != nil && c.Schema != "" {
		return nil, errors.Wrapf(ErrConflictingAddressing, "%s has both schema %s and a receiver", c.Name, c.Schema)
	}
	if c.Receiver == nil && c.ReceiverPropagatesNullability != nil {
		return nil, errors.Wrapf(ErrConflictingAddressing, "%s propagates nullability of a missing receiver", c.Name)
	}
	if c.Niladic {
		if c.Args != nil || c.ArgsPropagateNullability != nil {
			return nil, errors.Wrapf(ErrNiladicArgument, "%s got %d arguments", c.Name, len(c.Args))
		}
	} else if c.ArgsPropagateNullability != nil && len(c.ArgsPropagateNullability) != len(c.Args) {
		return nil, errors.Wrapf(ErrArityMismatch, "%s has %d arguments and %d propagation flags",
			c.Name, len(c.Args), len(c.ArgsPropagateNullability))
	}

	f := &FunctionCall{
		receiver:    c.Receiver,
		schema:      c.Schema,
		name:        c.Name,
		niladic:     c.Niladic,
		builtIn:     c.BuiltIn,
		nullable:    c.Nullable,
		resultType:  c.Type,
		typeMapping: c.TypeMapping,
	}
	if c.ReceiverPropagatesNullability != nil {
		propagates := *c.ReceiverPropagatesNullability
		f.receiverPropagatesNullability = &propagates
	}
	if !c.Niladic {
		f.args = make([]Expr, len(c.Args))
		copy(f.args, c.Args)
		if c.ArgsPropagateNullability != nil {
			f.argsPropagateNullability = slices.Clone(c.ArgsPropagateNullability)
		}
	}
	return f, nil
}

// Name returns the function name.
func (f *FunctionCall) Name() string { return f.name }

// Schema returns the schema, empty unless the call is schema qualified.
func (f *FunctionCall) Schema() string { return f.schema }

// Receiver returns the receiver, nil unless the call is an instance call.
func (f *FunctionCall) Receiver() Expr { return f.receiver }

// Shape returns how the call is addressed.
func (f *FunctionCall) Shape() CallShape {
	switch {
	case f.schema != "":
		return SchemaCall
	case f.receiver != nil:
		return InstanceCall
	default:
		return GlobalCall
	}
}

// IsNiladic returns whether the call has no argument list at all.
func (f *FunctionCall) IsNiladic() bool { return f.niladic }

// IsBuiltIn returns whether the function is a vendor built-in.
func (f *FunctionCall) IsBuiltIn() bool { return f.builtIn }

// IsNullable returns whether the call's result may be null.
func (f *FunctionCall) IsNullable() bool { return f.nullable }

// NumArguments returns the number of arguments, 0 for niladic calls.
func (f *FunctionCall) NumArguments() int { return len(f.args) }

// Argument returns the i-th argument.
func (f *FunctionCall) Argument(i int) Expr { return f.args[i] }

// Arguments returns a copy of the arguments. It is nil for niladic calls and
// non nil, possibly empty, otherwise.
func (f *FunctionCall) Arguments() []Expr {
	if f.niladic {
		return nil
	}
	args := make([]Expr, len(f.args))
	copy(args, f.args)
	return args
}

// ReceiverPropagatesNullability returns whether a null receiver makes the
// result null. ok is false when the flag is not set.
func (f *FunctionCall) ReceiverPropagatesNullability() (propagates, ok bool) {
	if f.receiverPropagatesNullability == nil {
		return false, false
	}
	return *f.receiverPropagatesNullability, true
}

// ArgumentsPropagateNullability returns a copy of the per argument flags,
// nil when not set.
func (f *FunctionCall) ArgumentsPropagateNullability() []bool {
	return slices.Clone(f.argsPropagateNullability)
}

// ArgumentPropagatesNullability returns the flag of the i-th argument.
// ok is false when the flags are not set.
func (f *FunctionCall) ArgumentPropagatesNullability(i int) (propagates, ok bool) {
	if f.argsPropagateNullability == nil {
		return false, false
	}
	return f.argsPropagateNullability[i], true
}

// Type returns the result type.
func (f *FunctionCall) Type() Type { return f.resultType }

// TypeMapping returns the dialect type mapping.
func (f *FunctionCall) TypeMapping() *TypeMapping { return f.typeMapping }

// VisitChildren passes the receiver and then every argument to v. It
// returns f itself when v hands every child back unchanged, otherwise a new
// call with the visited children and all other fields of f. Unchanged
// children are shared with f.
func (f *FunctionCall) VisitChildren(v Visitor) Expr {
	receiver := f.receiver
	if receiver != nil {
		receiver = v.Visit(receiver)
	}

	// args stays nil until the first argument changes.
	var args []Expr
	for i, arg := range f.args {
		visited := v.Visit(arg)
		if args == nil && visited != arg {
			args = make([]Expr, len(f.args))
			copy(args, f.args[:i])
		}
		if args != nil {
			args[i] = visited
		}
	}

	if receiver == f.receiver && args == nil {
		return f
	}
	if args == nil {
		args = f.args
	}
	return f.with(receiver, args, f.typeMapping)
}

// ApplyTypeMapping returns the call with typeMapping, or f itself when
// typeMapping is nil or already the mapping of f.
func (f *FunctionCall) ApplyTypeMapping(typeMapping *TypeMapping) *FunctionCall {
	if typeMapping == nil || typeMapping == f.typeMapping {
		return f
	}
	return f.with(f.receiver, f.args, typeMapping)
}

// Update returns the call with receiver and args. It returns f itself when
// receiver is the current receiver and args equal the current arguments.
// Nil args keep the current argument list. The replacement is validated
// like a newly constructed call.
func (f *FunctionCall) Update(receiver Expr, args []Expr) (*FunctionCall, error) {
	if args == nil && !f.niladic {
		args = f.args
	}
	if receiver == f.receiver && f.sameArguments(args) {
		return f, nil
	}
	return New(Call{
		Receiver:                      receiver,
		Schema:                        f.schema,
		Name:                          f.name,
		Niladic:                       f.niladic,
		BuiltIn:                       f.builtIn,
		Args:                          args,
		Nullable:                      f.nullable,
		ReceiverPropagatesNullability: f.receiverPropagatesNullability,
		ArgsPropagateNullability:      f.argsPropagateNullability,
		Type:                          f.resultType,
		TypeMapping:                   f.typeMapping,
	})
}

func (f *FunctionCall) sameArguments(args []Expr) bool {
	if f.niladic {
		return args == nil
	}
	return slices.EqualFunc(args, f.args, Equal)
}

// with copies f. args is owned by the result and must not be modified.
// The receiver flag is dropped together with the receiver.
func (f *FunctionCall) with(receiver Expr, args []Expr, typeMapping *TypeMapping) *FunctionCall {
	g := &FunctionCall{
		receiver:                      receiver,
		schema:                        f.schema,
		name:                          f.name,
		niladic:                       f.niladic,
		builtIn:                       f.builtIn,
		args:                          args,
		nullable:                      f.nullable,
		receiverPropagatesNullability: f.receiverPropagatesNullability,
		argsPropagateNullability:      f.argsPropagateNullability,
		resultType:                    f.resultType,
		typeMapping:                   typeMapping,
	}
	if receiver == nil {
		g.receiverPropagatesNullability = nil
	}
	return g
}

// Print renders schema.name, receiver.name or name, followed by the
// argument list unless the call is niladic.
func (f *FunctionCall) Print(p Printer) {
	if f.schema != "" {
		p.Append(f.schema).Append(".").Append(f.name)
	} else {
		if f.receiver != nil {
			p.Visit(f.receiver)
			p.Append(".")
		}
		p.Append(f.name)
	}

	if !f.niladic {
		p.Append("(")
		p.VisitCollection(f.args)
		p.Append(")")
	}
}

// String returns a string representation of the call.
func (f *FunctionCall) String() string {
	return Print(f)
}

// Equal compares the result type, type mapping, schema, name, niladic flag,
// receiver and arguments. Nullability metadata and the built-in flag are
// hints and do not take part.
func (f *FunctionCall) Equal(other Expr) bool {
	o, ok := other.(*FunctionCall)
	if !ok || o == nil {
		return false
	}
	if f == o {
		return true
	}
	return baseEqual(f, o) &&
		f.name == o.name &&
		f.schema == o.schema &&
		f.niladic == o.niladic &&
		Equal(f.receiver, o.receiver) &&
		slices.EqualFunc(f.args, o.args, Equal)
}

// Hash combines, in order, the base protocol fields, name, niladic flag,
// schema, receiver and every argument.
func (f *FunctionCall) Hash() uint64 {
	h := NewHasher()
	h.WriteBase(f)
	h.WriteString(f.name)
	h.WriteBool(f.niladic)
	h.WriteString(f.schema)
	h.WriteExpr(f.receiver)
	for _, arg := range f.args {
		h.WriteExpr(arg)
	}
	return h.Sum64()
}
