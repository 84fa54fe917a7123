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

// Visitor transforms a single expression. Returning the argument unchanged
// tells the parent that the child did not change.
type Visitor interface {
	Visit(e Expr) Expr
}

// VisitorFunc adapts a function to a Visitor.
type VisitorFunc func(Expr) Expr

// Visit calls fn(e).
func (fn VisitorFunc) Visit(e Expr) Expr { return fn(e) }

// Parent is implemented by nodes with children.
type Parent interface {
	Expr
	VisitChildren(v Visitor) Expr
}

// VisitChildren applies v to the direct children of e. Leaves are returned
// as is.
func VisitChildren(v Visitor, e Expr) Expr {
	if p, ok := e.(Parent); ok {
		return p.VisitChildren(v)
	}
	return e
}

// Rewriter can be called by Rewrite to replace nodes in the tree.
type Rewriter interface {
	Rewrite(e Expr) Expr
}

// rewriterFunc adapts a function to a Rewriter.
type rewriterFunc func(Expr) Expr

func (fn rewriterFunc) Rewrite(e Expr) Expr { return fn(e) }

type rewriteVisitor struct {
	r Rewriter
}

func (v rewriteVisitor) Visit(e Expr) Expr {
	return v.r.Rewrite(VisitChildren(v, e))
}

// Rewrite recursively invokes the rewriter to replace each node.
// Nodes are traversed depth-first and rewritten from leaf to root; a subtree
// in which the rewriter changed nothing is returned by identity.
func Rewrite(r Rewriter, e Expr) Expr {
	if e == nil {
		return nil
	}
	return rewriteVisitor{r: r}.Visit(e)
}

// RewriteFunc rewrites e with fn.
func RewriteFunc(e Expr, fn func(Expr) Expr) Expr {
	return Rewrite(rewriterFunc(fn), e)
}

// Walk calls fn on e and its descendants, parents first. Children of a node
// are skipped when fn returns false for it.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	VisitChildren(VisitorFunc(func(child Expr) Expr {
		Walk(child, fn)
		return child
	}), e)
}
