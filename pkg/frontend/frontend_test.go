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

package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/catalog"
	"github.com/arclight-db/planner/pkg/types"
)

func newTestCatalog() *catalog.MemoryCatalog {
	cat := catalog.NewMemoryCatalog()
	cat.CreateTable("public", "orders", []*catalog.ColumnDefinition{
		{Name: "id", Type: types.IntegerType()},
		{Name: "customer_id", Type: types.IntegerType()},
		{Name: "amount", Type: types.DoubleType()},
	})
	return cat
}

func TestParseSimpleSelect(t *testing.T) {
	cat := newTestCatalog()
	stmt, err := Parse(cat, "SELECT id, amount FROM orders WHERE amount > 100")
	require.NoError(t, err)

	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	require.NotNil(t, sel.From)
	assert.Equal(t, ast.RefSingleTable, sel.From.Kind)
	assert.Equal(t, "orders", sel.From.Table.Table)
	require.Len(t, sel.Projection, 2)
	require.NotNil(t, sel.Where)
	assert.Equal(t, ast.ExprCompare, sel.Where.Kind)
	assert.Equal(t, ast.CmpGt, sel.Where.CmpOp)
}

func TestParseInnerJoin(t *testing.T) {
	cat := newTestCatalog()
	cat.CreateTable("public", "customers", []*catalog.ColumnDefinition{
		{Name: "id", Type: types.IntegerType()},
	})
	stmt, err := Parse(cat, "SELECT o.id FROM orders o JOIN customers c ON o.customer_id = c.id")
	require.NoError(t, err)

	sel := stmt.(*ast.SelectStmt)
	require.Equal(t, ast.RefExplicitJoin, sel.From.Kind)
	assert.Equal(t, ast.JoinInner, sel.From.Join.Kind)
	require.NotNil(t, sel.From.Join.On)
}

func TestParseInClauseBuildsRowSubquery(t *testing.T) {
	cat := newTestCatalog()
	stmt, err := Parse(cat, "SELECT id FROM orders WHERE customer_id IN (SELECT id FROM orders)")
	require.NoError(t, err)

	sel := stmt.(*ast.SelectStmt)
	require.Equal(t, ast.ExprIn, sel.Where.Kind)
	require.True(t, sel.Where.HasSubquery)
	assert.Equal(t, ast.ExprRowSubquery, sel.Where.Children[1].Kind)
}

func TestParseInsertWithExplicitColumns(t *testing.T) {
	cat := newTestCatalog()
	stmt, err := Parse(cat, "INSERT INTO orders (id, customer_id) VALUES (1, 2)")
	require.NoError(t, err)

	ins := stmt.(*ast.InsertStmt)
	assert.Equal(t, []string{"id", "customer_id"}, ins.Columns)
	require.Len(t, ins.Rows, 1)
	require.Len(t, ins.Rows[0], 2)
}

func TestParseCountStar(t *testing.T) {
	cat := newTestCatalog()
	stmt, err := Parse(cat, "SELECT count(*) FROM orders")
	require.NoError(t, err)

	sel := stmt.(*ast.SelectStmt)
	require.Len(t, sel.Projection, 1)
	assert.Equal(t, ast.ExprAggregate, sel.Projection[0].Expr.Kind)
	assert.Empty(t, sel.Projection[0].Expr.Children)
}

func TestParseUnsupportedStatementErrors(t *testing.T) {
	cat := newTestCatalog()
	_, err := Parse(cat, "CREATE TABLE foo (id int)")
	assert.Error(t, err)
}
