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

// lowerSelect builds the logical plan for sel, in the order spec.md §4.5
// fixes: From, Where (absorbing any INNER-join ON conditions the table-ref
// lowering deposited), AggregateAndGroupBy + Having, Distinct, Limit. It
// saves and restores the shared predicate accumulator around the whole
// body so a derived table or subquery lowered inside sel can never leak
// join predicates into the caller's SELECT (spec.md §5).
func (t *Transformer) lowerSelect(sel *ast.SelectStmt) (*LogicalOperator, error) {
	saved := t.predicates
	t.predicates = nil
	defer func() { t.predicates = saved }()

	var root *LogicalOperator
	var err error
	if sel.From != nil {
		root, err = t.lowerTableRef(sel.From)
		if err != nil {
			return nil, err
		}
	} else {
		// SELECT with no FROM clause: a trivial, table-less Get (spec.md
		// §4.5 step 1; mirrors the reference's LogicalGet::Make() with an
		// empty child list for this same case).
		root = NewGet("", 0, "", 0, nil, "", nil, false)
	}

	var wherePreds []*ast.Expr
	if len(t.predicates) > 0 {
		wherePreds = append(wherePreds, t.predicates...)
		t.predicates = nil
	}
	if sel.Where != nil {
		resolved, newRoot, err := t.collectAndResolvePredicates(sel.Where, root)
		if err != nil {
			return nil, err
		}
		root = newRoot
		wherePreds = append(wherePreds, resolved...)
	}
	if len(wherePreds) > 0 {
		root = NewFilter(wherePreds, root)
	}

	if sel.Having != nil && len(sel.GroupBy) == 0 {
		return nil, newNotImplementedError("HAVING without GROUP BY is not supported")
	}
	if RequireAggregation(sel) {
		if err := enforceMixingRule(sel); err != nil {
			return nil, err
		}
		var aggs []*ast.Expr
		for _, item := range sel.Projection {
			if containsAggregate(item.Expr) {
				aggs = append(aggs, item.Expr)
			}
		}
		root = NewAggregateGroupBy(sel.GroupBy, aggs, root)

		if sel.Having != nil {
			resolved, newRoot, err := t.collectAndResolvePredicates(sel.Having, root)
			if err != nil {
				return nil, err
			}
			root = newRoot
			if len(resolved) > 0 {
				root = NewFilter(resolved, root)
			}
		}
	}

	if sel.Distinct {
		root = NewDistinct(root)
	}

	if sel.Limit != nil && *sel.Limit != -1 {
		var sortExprs []*ast.Expr
		var sortDesc []bool
		for _, ob := range sel.OrderBy {
			sortExprs = append(sortExprs, ob.Expr)
			sortDesc = append(sortDesc, ob.Desc)
		}
		var offset int64
		if sel.Offset != nil {
			offset = *sel.Offset
		}
		root = NewLimit(offset, *sel.Limit, sortExprs, sortDesc, root)
	}

	outputs := make([]*ast.Expr, 0, len(sel.Projection))
	for _, item := range sel.Projection {
		outputs = append(outputs, item.Expr)
	}
	root.Outputs = outputs

	return root, nil
}
