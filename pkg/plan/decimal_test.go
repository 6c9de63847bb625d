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
	"github.com/stretchr/testify/require"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/catalog"
	"github.com/arclight-db/planner/pkg/types"
)

func newInvoiceCatalog(t *testing.T) *catalog.MemoryCatalog {
	t.Helper()
	cat := catalog.NewMemoryCatalog()
	cat.CreateTable("public", "invoices", []*catalog.ColumnDefinition{
		{Name: "id", Type: types.IntegerType()},
		{Name: "total", Type: types.DecimalType(10, 2)},
	})
	return cat
}

func decimalLit(text string) *ast.Expr {
	lt, err := types.DecimalLiteralType(text)
	if err != nil {
		panic(err)
	}
	return &ast.Expr{Kind: ast.ExprLiteral, Type: lt, Dvalue: text}
}

func TestTransformInsertDecimalLiteralFitsColumnScale(t *testing.T) {
	cat := newInvoiceCatalog(t)
	ins := &ast.InsertStmt{
		Table: "invoices",
		Rows:  [][]*ast.Expr{{lit(1), decimalLit("19.99")}},
	}

	root, err := Transform(cat, ins)
	require.NoError(t, err)
	assert.Equal(t, OpInsert, root.Kind)
}

func TestTransformInsertDecimalLiteralExceedingScaleFails(t *testing.T) {
	cat := newInvoiceCatalog(t)
	ins := &ast.InsertStmt{
		Table: "invoices",
		Rows:  [][]*ast.Expr{{lit(1), decimalLit("19.999")}},
	}

	_, err := Transform(cat, ins)
	require.Error(t, err)
	assert.False(t, IsNotImplemented(err))
}
