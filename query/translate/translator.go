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

// Package translate builds expression trees from front end documents and
// runs the dialect passes over them.
package translate

import (
	"strconv"
	"strings"

	"github.com/uber/sqlexpr/common"
	"github.com/uber/sqlexpr/query/expr"
	"github.com/uber/sqlexpr/utils"
)

// Translator turns expression documents into expression trees.
type Translator struct {
	logger   common.Logger
	reporter *utils.Reporter
}

// NewTranslator creates a translator.
func NewTranslator(logger common.Logger, reporter *utils.Reporter) *Translator {
	return &Translator{logger: logger, reporter: reporter}
}

// Translate builds the expression described by n.
func (t *Translator) Translate(n Node) (expr.Expr, error) {
	e, err := t.translate(n)
	if err != nil {
		t.reporter.GetCounter(utils.ExprTranslationFailed).Inc(1)
		t.logger.With("kind", n.Kind, "name", n.Name).Warnf("failed to translate expression: %s", err.Message())
		return nil, err
	}
	t.reporter.GetCounter(utils.ExprTranslated).Inc(1)
	t.logger.Debugf("translated %s", e)
	return e, nil
}

func (t *Translator) translate(n Node) (expr.Expr, *utils.StackedError) {
	resultType, err := parseType(n.Type)
	if err != nil {
		return nil, utils.StackError(err, "invalid %s expression", n.Kind)
	}
	mapping := typeMapping(n)

	switch n.Kind {
	case KindColumn:
		if n.Value == "" {
			return nil, utils.StackError(nil, "column without name")
		}
		return &expr.VarRef{Val: n.Value, ExprType: resultType, Mapping: mapping}, nil
	case KindString:
		return &expr.StringLiteral{Val: n.Value, Mapping: mapping}, nil
	case KindNumber:
		return numberLiteral(n.Value, resultType, mapping)
	case KindBool:
		val, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, utils.StackError(err, "invalid bool literal %q", n.Value)
		}
		return &expr.BooleanLiteral{Val: val, Mapping: mapping}, nil
	case KindNull:
		return &expr.NullLiteral{ExprType: resultType, Mapping: mapping}, nil
	case KindFunction:
		return t.translateCall(n, resultType, mapping)
	default:
		return nil, utils.StackError(nil, "unknown expression kind %q", n.Kind)
	}
}

func (t *Translator) translateCall(n Node, resultType expr.Type, mapping *expr.TypeMapping) (expr.Expr, *utils.StackedError) {
	var receiver expr.Expr
	if n.Receiver != nil {
		var err *utils.StackedError
		if receiver, err = t.translate(*n.Receiver); err != nil {
			return nil, utils.StackError(err, "receiver of %s", n.Name)
		}
	}

	var args []expr.Expr
	if !n.Niladic {
		args = make([]expr.Expr, 0, len(n.Args))
	}
	for i, arg := range n.Args {
		e, err := t.translate(arg)
		if err != nil {
			return nil, utils.StackError(err, "argument %d of %s", i, n.Name)
		}
		args = append(args, e)
	}

	builtIn := n.Schema == ""
	if n.BuiltIn != nil {
		builtIn = *n.BuiltIn
	}

	call, err := expr.New(expr.Call{
		Receiver:                      receiver,
		Schema:                        n.Schema,
		Name:                          n.Name,
		Niladic:                       n.Niladic,
		BuiltIn:                       builtIn,
		Args:                          args,
		Nullable:                      n.Nullable,
		ReceiverPropagatesNullability: n.ReceiverPropagatesNullability,
		ArgsPropagateNullability:      n.ArgsPropagateNullability,
		Type:                          resultType,
		TypeMapping:                   mapping,
	})
	if err != nil {
		return nil, utils.StackError(err, "building call %s", n.Name)
	}
	return call, nil
}

func parseType(name string) (expr.Type, error) {
	if name == "" {
		return expr.UnknownType, nil
	}
	return expr.ParseType(name)
}

func typeMapping(n Node) *expr.TypeMapping {
	if n.StoreType == "" {
		return nil
	}
	return &expr.TypeMapping{StoreType: n.StoreType, Size: n.Size, Unicode: n.Unicode}
}

// numberLiteral keeps the literal text. Without an explicit type, literals
// with a fraction or exponent are Float and the others Integer.
func numberLiteral(text string, resultType expr.Type, mapping *expr.TypeMapping) (expr.Expr, *utils.StackedError) {
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, utils.StackError(err, "invalid number literal %q", text)
	}
	if resultType == expr.UnknownType {
		resultType = expr.Integer
		if strings.ContainsAny(text, ".eE") {
			resultType = expr.Float
		}
	}
	return &expr.NumberLiteral{Val: val, Text: text, ExprType: resultType, Mapping: mapping}, nil
}
