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

// hasCorrCol reports whether expr has a column-value descendant whose Depth
// marks it as bound in an outer scope. Grounded on the teacher's hasCorrCol
// (pkg/plan/builder.go): a column is correlated iff its Depth is less than
// scopeDepth, the ScopeDepth of the subselect being examined.
func hasCorrCol(expr *ast.Expr, scopeDepth int) bool {
	if expr == nil {
		return false
	}
	if expr.Kind == ast.ExprColumn {
		return expr.Depth < scopeDepth
	}
	for _, c := range expr.Children {
		if hasCorrCol(c, scopeDepth) {
			return true
		}
	}
	return false
}

// isDecorrelatableEquality reports whether atom is an equality with exactly
// one side a bare correlated column and the other side rooted entirely in
// the inner scope — the "outer.col = inner-expr" shape spec.md §4.2 allows
// to decorrelate.
func isDecorrelatableEquality(atom *ast.Expr, scopeDepth int) bool {
	if atom.Kind != ast.ExprCompare || atom.CmpOp != ast.CmpEq {
		return false
	}
	left, right := atom.Children[0], atom.Children[1]
	leftCorr, rightCorr := hasCorrCol(left, scopeDepth), hasCorrCol(right, scopeDepth)
	if leftCorr == rightCorr {
		return false
	}
	if leftCorr {
		return left.Kind == ast.ExprColumn
	}
	return right.Kind == ast.ExprColumn
}

// checkSupportedInnerSelect implements spec.md §4.2's "Supported inner
// SELECT" rule: a subselect with aggregation is only supported when every
// correlated atom in its WHERE is a decorrelatable equality.
func checkSupportedInnerSelect(inner *ast.SelectStmt) error {
	if !RequireAggregation(inner) {
		return nil
	}
	for _, atom := range SplitConjunction(inner.Where) {
		if hasCorrCol(atom, inner.ScopeDepth) && !isDecorrelatableEquality(atom, inner.ScopeDepth) {
			return newNotImplementedError("correlated subquery with aggregation requires an equality correlation")
		}
	}
	return nil
}

// rewriteSubquery implements spec.md §4.2's rewriter contract: it operates
// on parent's child at slot and, if that child is a row-subquery, unnests it
// into a join against root. It returns whether a rewrite happened and the
// new root to use in place of the one passed in. If the child at slot is not
// a row-subquery, it returns false without effect.
//
// singleJoin selects SingleJoin (scalar subquery comparisons) over MarkJoin
// (IN / EXISTS) construction.
//
// The inner SELECT is lowered unchanged, correlated WHERE atoms and all —
// mirroring the reference's GenerateSubqueryTree, which calls
// sub_select->Accept(this, parse_result) on the whole subquery and pushes
// the result as the join's right child with no condition extracted.
// MarkJoin/SingleJoin never carry an ON condition (spec.md §3 lists both
// with empty parens, unlike OuterJoin(cond) et al.); any correlation lives
// inside the pushed-down subtree's own Filter.
func (t *Transformer) rewriteSubquery(parent *ast.Expr, slot int, singleJoin bool, root *LogicalOperator) (bool, *LogicalOperator, error) {
	child := parent.Children[slot]
	if child == nil || child.Kind != ast.ExprRowSubquery {
		return false, root, nil
	}
	inner := child.Subquery

	if err := checkSupportedInnerSelect(inner); err != nil {
		return false, root, err
	}
	if len(inner.Projection) != 1 {
		return false, root, newNotImplementedError("subquery must project exactly one column")
	}

	subtree, err := t.lowerSelect(inner)
	if err != nil {
		return false, root, err
	}

	joinKind := OpMarkJoin
	if singleJoin {
		joinKind = OpSingleJoin
	}

	newRoot := NewJoin(joinKind, nil, root, subtree)

	// Retarget the row-subquery child to the subquery's single projected
	// column, per spec.md §4.2's documented in-place mutation.
	parent.Children[slot] = inner.Projection[0].Expr

	return true, newRoot, nil
}

// rewriteAtom resolves every row-subquery occurrence in a single predicate
// atom (already validated by IsSupportedConjunctivePredicate), applying the
// caller-side reclassifications spec.md §4.2 documents: IN -> "=" and
// EXISTS -> IS NOT NULL once the rewriter has unnested the subquery.
func (t *Transformer) rewriteAtom(atom *ast.Expr, root *LogicalOperator) (*ast.Expr, *LogicalOperator, error) {
	if !atom.HasSubquery {
		return atom, root, nil
	}
	switch atom.Kind {
	case ast.ExprIn:
		ok, newRoot, err := t.rewriteSubquery(atom, 1, false, root)
		if err != nil {
			return nil, root, err
		}
		if !ok {
			return atom, root, nil
		}
		return &ast.Expr{Kind: ast.ExprCompare, CmpOp: ast.CmpEq, Type: atom.Type, Children: atom.Children}, newRoot, nil
	case ast.ExprExists:
		ok, newRoot, err := t.rewriteSubquery(atom, 0, false, root)
		if err != nil {
			return nil, root, err
		}
		if !ok {
			return atom, root, nil
		}
		return &ast.Expr{Kind: ast.ExprIsNotNull, Type: atom.Type, Children: atom.Children}, newRoot, nil
	case ast.ExprNotIn:
		ok, newRoot, err := t.rewriteSubquery(atom, 1, false, root)
		if err != nil {
			return nil, root, err
		}
		if !ok {
			return atom, root, nil
		}
		cmp := &ast.Expr{Kind: ast.ExprCompare, CmpOp: ast.CmpEq, Type: atom.Type, Children: atom.Children}
		return &ast.Expr{Kind: ast.ExprNot, Type: atom.Type, Children: []*ast.Expr{cmp}}, newRoot, nil
	case ast.ExprNotExists:
		ok, newRoot, err := t.rewriteSubquery(atom, 0, false, root)
		if err != nil {
			return nil, root, err
		}
		if !ok {
			return atom, root, nil
		}
		return &ast.Expr{Kind: ast.ExprIsNull, Type: atom.Type, Children: atom.Children}, newRoot, nil
	case ast.ExprCompare:
		left, right := atom.Children[0], atom.Children[1]
		if left.Kind == ast.ExprRowSubquery && right.Kind == ast.ExprRowSubquery {
			return nil, root, newNotImplementedError("cannot compare two row-subqueries")
		}
		ok, newRoot, err := t.rewriteSubquery(atom, 0, true, root)
		if err != nil {
			return nil, root, err
		}
		if ok {
			return atom, newRoot, nil
		}
		ok, newRoot, err = t.rewriteSubquery(atom, 1, true, root)
		if err != nil {
			return nil, root, err
		}
		if ok {
			root = newRoot
		}
		return atom, root, nil
	default:
		return nil, root, newNotImplementedError("unsupported predicate shape with subquery")
	}
}

// collectAndResolvePredicates splits expr into atoms, rejects any atom whose
// subquery shape IsSupportedConjunctivePredicate does not recognize, and
// unnests the ones it does. It returns the final predicate list (already
// rewritten) and the updated root to use as the Filter's child.
func (t *Transformer) collectAndResolvePredicates(expr *ast.Expr, root *LogicalOperator) ([]*ast.Expr, *LogicalOperator, error) {
	atoms := SplitConjunction(expr)
	out := make([]*ast.Expr, 0, len(atoms))
	for _, atom := range atoms {
		if atom.HasSubquery && !IsSupportedConjunctivePredicate(atom) {
			return nil, root, newNotImplementedError("unsupported predicate shape with subquery: %s", atom)
		}
		rewritten, newRoot, err := t.rewriteAtom(atom, root)
		if err != nil {
			return nil, root, err
		}
		root = newRoot
		out = append(out, rewritten)
	}
	return out, root, nil
}
