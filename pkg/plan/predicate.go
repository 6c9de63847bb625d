// Copyright 2024-2026 Arclight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

import "github.com/arclight-db/planner/pkg/ast"

// AnnotatedExpression pairs an atomic predicate with every table alias its
// column-value descendants reference (spec.md §3, §4.1).
type AnnotatedExpression struct {
	Expr    *ast.Expr
	Aliases map[string]struct{}
}

// SplitConjunction flattens a predicate's AND-tree into its atoms, per
// spec.md §4.1. A nil input yields the empty list; disjunctions and every
// other non-AND shape become a single atom regardless of internal structure.
func SplitConjunction(expr *ast.Expr) []*ast.Expr {
	if expr == nil {
		return nil
	}
	if expr.Kind != ast.ExprAnd {
		return []*ast.Expr{expr}
	}
	var atoms []*ast.Expr
	atoms = append(atoms, SplitConjunction(expr.Children[0])...)
	atoms = append(atoms, SplitConjunction(expr.Children[1])...)
	return atoms
}

// CollectAliases walks atom's subtree and returns the set of table aliases
// referenced by column-value descendants. Non-column-value interior nodes
// contribute only through their children (spec.md §4.1).
func CollectAliases(atom *ast.Expr) map[string]struct{} {
	aliases := make(map[string]struct{})
	var walk func(e *ast.Expr)
	walk = func(e *ast.Expr) {
		if e == nil {
			return
		}
		if e.Kind == ast.ExprColumn && e.Table != "" {
			aliases[e.Table] = struct{}{}
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(atom)
	return aliases
}

// IsSupportedConjunctivePredicate reports whether atom is one of the shapes
// spec.md §4.1 allows to stay in conjunctive form: no subquery at all, or
// one of the well-defined subquery shapes (IN / NOT IN, EXISTS / NOT EXISTS,
// and a scalar comparison against a row-subquery).
func IsSupportedConjunctivePredicate(atom *ast.Expr) bool {
	if atom == nil || !atom.HasSubquery {
		return true
	}
	switch atom.Kind {
	case ast.ExprIn, ast.ExprNotIn:
		left, right := atom.Children[0], atom.Children[1]
		return left.Kind != ast.ExprRowSubquery && right.Kind == ast.ExprRowSubquery
	case ast.ExprExists, ast.ExprNotExists:
		return len(atom.Children) == 1 && atom.Children[0].Kind == ast.ExprRowSubquery
	case ast.ExprCompare:
		left, right := atom.Children[0], atom.Children[1]
		leftSub := left.Kind == ast.ExprRowSubquery
		rightSub := right.Kind == ast.ExprRowSubquery
		if leftSub == rightSub {
			// both or neither: comparing two row-subqueries, or a subquery
			// buried deeper than an immediate operand — not the supported shape.
			return false
		}
		if leftSub {
			return !right.HasSubquery
		}
		return !left.HasSubquery
	default:
		return false
	}
}

// ExtractPredicates splits expr and annotates every resulting atom with the
// set of table aliases it references (spec.md §4.1).
func ExtractPredicates(expr *ast.Expr) []*AnnotatedExpression {
	atoms := SplitConjunction(expr)
	out := make([]*AnnotatedExpression, 0, len(atoms))
	for _, atom := range atoms {
		out = append(out, &AnnotatedExpression{Expr: atom, Aliases: CollectAliases(atom)})
	}
	return out
}
