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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-db/planner/pkg/types"
)

func intLit(v int64) *Expr {
	return &Expr{Kind: ExprLiteral, Type: types.IntegerType(), Ivalue: v}
}

func TestNewAndLeftAssociates(t *testing.T) {
	a := intLit(1)
	b := intLit(2)
	c := intLit(3)

	and := NewAnd(a, b, c)

	require.Equal(t, ExprAnd, and.Kind)
	// (a AND b) AND c
	require.Equal(t, ExprAnd, and.Children[0].Kind)
	assert.Same(t, a, and.Children[0].Children[0])
	assert.Same(t, b, and.Children[0].Children[1])
	assert.Same(t, c, and.Children[1])
}

func TestNewAndEmptyReturnsNil(t *testing.T) {
	assert.Nil(t, NewAnd())
}

func TestNewAndSingleReturnsOperand(t *testing.T) {
	a := intLit(1)
	assert.Same(t, a, NewAnd(a))
}

func TestHasSubqueryPropagatesThroughAnd(t *testing.T) {
	sub := &Expr{Kind: ExprRowSubquery, HasSubquery: true}
	plain := intLit(5)

	and := NewAnd(plain, sub)

	assert.True(t, and.HasSubquery)
}

func TestHasSubqueryFalseWhenNoDescendantHasOne(t *testing.T) {
	and := NewAnd(intLit(1), intLit(2))
	assert.False(t, and.HasSubquery)
}

func TestNewCompareSummarizesChildSubqueryFlag(t *testing.T) {
	sub := &Expr{Kind: ExprRowSubquery, HasSubquery: true}
	cmp := NewCompare(CmpEq, intLit(1), sub)
	assert.True(t, cmp.HasSubquery)

	cmp2 := NewCompare(CmpEq, intLit(1), intLit(2))
	assert.False(t, cmp2.HasSubquery)
}

func TestCompareOpFlip(t *testing.T) {
	cases := []struct{ in, want CompareOp }{
		{CmpLt, CmpGt},
		{CmpLe, CmpGe},
		{CmpGt, CmpLt},
		{CmpGe, CmpLe},
		{CmpEq, CmpEq},
		{CmpNe, CmpNe},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.Flip())
	}
}

func TestExprCopyIsDeep(t *testing.T) {
	orig := NewCompare(CmpEq, NewColumn("t", "a", types.IntegerType(), 0), intLit(7))

	cp := orig.Copy()

	assert.NotSame(t, orig, cp)
	assert.NotSame(t, orig.Children[0], cp.Children[0])
	assert.Equal(t, orig.Children[0].Column, cp.Children[0].Column)

	cp.Children[0].Column = "mutated"
	assert.Equal(t, "a", orig.Children[0].Column)
}

func TestExprCopyNil(t *testing.T) {
	var e *Expr
	assert.Nil(t, e.Copy())
}

func TestRecomputeHasSubqueryAfterManualEdit(t *testing.T) {
	sub := &Expr{Kind: ExprRowSubquery, HasSubquery: true}
	e := &Expr{Kind: ExprIsNotNull, Children: []*Expr{sub}}
	// Built by hand (as the frontend binder does) instead of via a
	// constructor, so HasSubquery starts false until recomputed.
	assert.False(t, e.HasSubquery)

	assert.True(t, e.RecomputeHasSubquery())
	assert.True(t, e.HasSubquery)
}

func TestExprStringColumnWithAndWithoutTable(t *testing.T) {
	qualified := NewColumn("orders", "id", types.IntegerType(), 0)
	assert.Equal(t, "orders.id", qualified.String())

	bare := NewColumn("", "id", types.IntegerType(), 0)
	assert.Equal(t, "id", bare.String())
}

func TestExprStringLiteralNull(t *testing.T) {
	e := &Expr{Kind: ExprLiteral, IsNullLiteral: true}
	assert.Equal(t, "NULL", e.String())
}
