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

func col(table, column string) *ast.Expr {
	return ast.NewColumn(table, column, types.IntegerType(), 0)
}

func lit(v int64) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, Type: types.IntegerType(), Ivalue: v}
}

func TestSplitConjunctionNil(t *testing.T) {
	assert.Nil(t, SplitConjunction(nil))
}

func TestSplitConjunctionSingleAtom(t *testing.T) {
	atom := ast.NewCompare(ast.CmpEq, col("t", "a"), lit(1))
	atoms := SplitConjunction(atom)
	assert.Len(t, atoms, 1)
	assert.Same(t, atom, atoms[0])
}

func TestSplitConjunctionThreeAtoms(t *testing.T) {
	a := ast.NewCompare(ast.CmpEq, col("t", "a"), lit(1))
	b := ast.NewCompare(ast.CmpEq, col("t", "b"), lit(2))
	c := ast.NewCompare(ast.CmpEq, col("t", "c"), lit(3))

	and := ast.NewAnd(a, b, c)
	atoms := SplitConjunction(and)

	assert.Len(t, atoms, 3)
	assert.Same(t, a, atoms[0])
	assert.Same(t, b, atoms[1])
	assert.Same(t, c, atoms[2])
}

func TestSplitConjunctionIsIdempotentOnAtoms(t *testing.T) {
	or := &ast.Expr{Kind: ast.ExprOr, Children: []*ast.Expr{
		ast.NewCompare(ast.CmpEq, col("t", "a"), lit(1)),
		ast.NewCompare(ast.CmpEq, col("t", "b"), lit(2)),
	}}
	atoms := SplitConjunction(or)
	assert.Len(t, atoms, 1)
	// re-splitting an already-split atom yields the same single atom back
	assert.Equal(t, atoms, SplitConjunction(atoms[0]))
}

func TestCollectAliasesMultipleTables(t *testing.T) {
	atom := ast.NewCompare(ast.CmpEq, col("o", "id"), col("c", "order_id"))
	aliases := CollectAliases(atom)
	assert.Len(t, aliases, 2)
	_, hasO := aliases["o"]
	_, hasC := aliases["c"]
	assert.True(t, hasO)
	assert.True(t, hasC)
}

func TestCollectAliasesIgnoresLiterals(t *testing.T) {
	atom := ast.NewCompare(ast.CmpEq, col("o", "id"), lit(5))
	aliases := CollectAliases(atom)
	assert.Len(t, aliases, 1)
}

func TestIsSupportedConjunctivePredicateNoSubquery(t *testing.T) {
	atom := ast.NewCompare(ast.CmpEq, col("t", "a"), lit(1))
	assert.True(t, IsSupportedConjunctivePredicate(atom))
}

func TestIsSupportedConjunctivePredicateInShape(t *testing.T) {
	sub := &ast.Expr{Kind: ast.ExprRowSubquery, HasSubquery: true}
	atom := &ast.Expr{Kind: ast.ExprIn, HasSubquery: true, Children: []*ast.Expr{col("t", "a"), sub}}
	assert.True(t, IsSupportedConjunctivePredicate(atom))
}

func TestIsSupportedConjunctivePredicateRejectsSubqueryOnLeftOfIn(t *testing.T) {
	sub := &ast.Expr{Kind: ast.ExprRowSubquery, HasSubquery: true}
	atom := &ast.Expr{Kind: ast.ExprIn, HasSubquery: true, Children: []*ast.Expr{sub, col("t", "a")}}
	assert.False(t, IsSupportedConjunctivePredicate(atom))
}

func TestIsSupportedConjunctivePredicateExistsShape(t *testing.T) {
	sub := &ast.Expr{Kind: ast.ExprRowSubquery, HasSubquery: true}
	atom := &ast.Expr{Kind: ast.ExprExists, HasSubquery: true, Children: []*ast.Expr{sub}}
	assert.True(t, IsSupportedConjunctivePredicate(atom))
}

func TestIsSupportedConjunctivePredicateScalarComparisonShape(t *testing.T) {
	sub := &ast.Expr{Kind: ast.ExprRowSubquery, HasSubquery: true}
	atom := &ast.Expr{Kind: ast.ExprCompare, CmpOp: ast.CmpEq, HasSubquery: true, Children: []*ast.Expr{col("t", "a"), sub}}
	assert.True(t, IsSupportedConjunctivePredicate(atom))
}

func TestIsSupportedConjunctivePredicateRejectsTwoSubqueries(t *testing.T) {
	sub1 := &ast.Expr{Kind: ast.ExprRowSubquery, HasSubquery: true}
	sub2 := &ast.Expr{Kind: ast.ExprRowSubquery, HasSubquery: true}
	atom := &ast.Expr{Kind: ast.ExprCompare, CmpOp: ast.CmpEq, HasSubquery: true, Children: []*ast.Expr{sub1, sub2}}
	assert.False(t, IsSupportedConjunctivePredicate(atom))
}

func TestExtractPredicatesAnnotatesEachAtom(t *testing.T) {
	a := ast.NewCompare(ast.CmpEq, col("o", "id"), lit(1))
	b := ast.NewCompare(ast.CmpEq, col("c", "id"), lit(2))
	annotated := ExtractPredicates(ast.NewAnd(a, b))

	assert.Len(t, annotated, 2)
	_, hasO := annotated[0].Aliases["o"]
	assert.True(t, hasO)
	_, hasC := annotated[1].Aliases["c"]
	assert.True(t, hasC)
}
