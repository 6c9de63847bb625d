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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/types"
)

func agg(name string, arg *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprAggregate, FuncName: name, Type: types.BigIntType(), Children: []*ast.Expr{arg}}
}

func TestRequireAggregationTrueWithGroupBy(t *testing.T) {
	sel := &ast.SelectStmt{GroupBy: []*ast.Expr{col("t", "a")}}
	assert.True(t, RequireAggregation(sel))
}

func TestRequireAggregationTrueWithAggregateInProjection(t *testing.T) {
	sel := &ast.SelectStmt{Projection: []*ast.ProjectionItem{{Expr: agg("count", nil)}}}
	assert.True(t, RequireAggregation(sel))
}

func TestRequireAggregationFalsePlainSelect(t *testing.T) {
	sel := &ast.SelectStmt{Projection: []*ast.ProjectionItem{{Expr: col("t", "a")}}}
	assert.False(t, RequireAggregation(sel))
}

func TestRequireAggregationTrueWhenAggregateNested(t *testing.T) {
	nested := ast.NewCompare(ast.CmpEq, agg("sum", col("t", "a")), lit(0))
	sel := &ast.SelectStmt{Projection: []*ast.ProjectionItem{{Expr: nested}}}
	assert.True(t, RequireAggregation(sel))
}

func TestEnforceMixingRuleOkWithGroupBy(t *testing.T) {
	sel := &ast.SelectStmt{
		GroupBy:    []*ast.Expr{col("t", "a")},
		Projection: []*ast.ProjectionItem{{Expr: col("t", "a")}, {Expr: agg("count", nil)}},
	}
	assert.NoError(t, enforceMixingRule(sel))
}

func TestEnforceMixingRuleRejectsMixWithoutGroupBy(t *testing.T) {
	sel := &ast.SelectStmt{
		Projection: []*ast.ProjectionItem{{Expr: col("t", "a")}, {Expr: agg("count", nil)}},
	}
	err := enforceMixingRule(sel)
	assert.Error(t, err)
	assert.False(t, IsNotImplemented(err))
}

func TestEnforceMixingRuleOkAggregateOnly(t *testing.T) {
	sel := &ast.SelectStmt{Projection: []*ast.ProjectionItem{{Expr: agg("count", nil)}, {Expr: agg("sum", col("t", "a"))}}}
	assert.NoError(t, enforceMixingRule(sel))
}
