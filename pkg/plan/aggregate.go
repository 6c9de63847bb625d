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

// containsAggregate reports whether expr has an aggregate-function
// descendant (or is one itself).
func containsAggregate(expr *ast.Expr) bool {
	if expr == nil {
		return false
	}
	if expr.Kind == ast.ExprAggregate {
		return true
	}
	for _, c := range expr.Children {
		if containsAggregate(c) {
			return true
		}
	}
	return false
}

// RequireAggregation reports whether sel needs an AggregateAndGroupBy
// operator: it has a GROUP BY, or any projection expression contains an
// aggregate-function descendant (spec.md §4.3, §8 law).
func RequireAggregation(sel *ast.SelectStmt) bool {
	if len(sel.GroupBy) > 0 {
		return true
	}
	for _, item := range sel.Projection {
		if containsAggregate(item.Expr) {
			return true
		}
	}
	return false
}

// enforceMixingRule implements the "GROUP BY or aggregate-only" rule: with
// no GROUP BY, a projection may not mix aggregate and non-aggregate
// top-level expressions (spec.md §4.3). This is a belt-and-braces check —
// the binder may also enforce it — so it only fires in the no-GROUP-BY case.
func enforceMixingRule(sel *ast.SelectStmt) error {
	if len(sel.GroupBy) > 0 {
		return nil
	}
	hasAgg, hasPlain := false, false
	for _, item := range sel.Projection {
		if containsAggregate(item.Expr) {
			hasAgg = true
		} else {
			hasPlain = true
		}
	}
	if hasAgg && hasPlain {
		return newSemanticError("non-aggregation expression must appear in the GROUP BY clause")
	}
	return nil
}
