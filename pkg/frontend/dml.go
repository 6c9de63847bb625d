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
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/arclight-db/planner/pkg/ast"
)

func (b *Binder) bindInsert(stmt *pg_query.InsertStmt) (*ast.InsertStmt, error) {
	out := &ast.InsertStmt{
		Database: stmt.GetRelation().GetSchemaname(),
		Table:    stmt.GetRelation().GetRelname(),
	}
	for _, col := range stmt.GetCols() {
		out.Columns = append(out.Columns, col.GetResTarget().GetName())
	}

	sel := stmt.GetSelectStmt().GetSelectStmt()
	if sel == nil {
		return out, nil
	}
	if len(sel.GetValuesLists()) > 0 {
		for _, row := range sel.GetValuesLists() {
			list := row.GetList()
			values := make([]*ast.Expr, 0, len(list.GetItems()))
			for _, item := range list.GetItems() {
				e, err := b.bindExpr(item, 0)
				if err != nil {
					return nil, err
				}
				values = append(values, e)
			}
			out.Rows = append(out.Rows, values)
		}
		return out, nil
	}

	selStmt, err := b.bindSelect(sel, 0)
	if err != nil {
		return nil, err
	}
	out.Select = selStmt
	return out, nil
}

func (b *Binder) bindUpdate(stmt *pg_query.UpdateStmt) (*ast.UpdateStmt, error) {
	alias := stmt.GetRelation().GetRelname()
	if stmt.GetRelation().GetAlias() != nil {
		alias = stmt.GetRelation().GetAlias().GetAliasname()
	}
	out := &ast.UpdateStmt{
		Database: stmt.GetRelation().GetSchemaname(),
		Table:    stmt.GetRelation().GetRelname(),
		Alias:    alias,
	}
	for _, node := range stmt.GetTargetList() {
		rt := node.GetResTarget()
		e, err := b.bindExpr(rt.GetVal(), 0)
		if err != nil {
			return nil, err
		}
		out.SetClauses = append(out.SetClauses, &ast.SetClause{Column: rt.GetName(), Value: e})
	}
	if stmt.GetWhereClause() != nil {
		e, err := b.bindExpr(stmt.GetWhereClause(), 0)
		if err != nil {
			return nil, err
		}
		out.Where = e
	}
	return out, nil
}

func (b *Binder) bindDelete(stmt *pg_query.DeleteStmt) (*ast.DeleteStmt, error) {
	alias := stmt.GetRelation().GetRelname()
	if stmt.GetRelation().GetAlias() != nil {
		alias = stmt.GetRelation().GetAlias().GetAliasname()
	}
	out := &ast.DeleteStmt{
		Database: stmt.GetRelation().GetSchemaname(),
		Table:    stmt.GetRelation().GetRelname(),
		Alias:    alias,
	}
	if stmt.GetWhereClause() != nil {
		e, err := b.bindExpr(stmt.GetWhereClause(), 0)
		if err != nil {
			return nil, err
		}
		out.Where = e
	}
	return out, nil
}

func (b *Binder) bindCopy(stmt *pg_query.CopyStmt) (*ast.CopyStmt, error) {
	out := &ast.CopyStmt{
		Path: stmt.GetFilename(),
	}
	if stmt.GetRelation() != nil {
		out.Database = stmt.GetRelation().GetSchemaname()
		out.Table = stmt.GetRelation().GetRelname()
	}
	if stmt.GetIsFrom() {
		out.Direction = ast.CopyFrom
	} else {
		out.Direction = ast.CopyTo
		if q := stmt.GetQuery().GetSelectStmt(); q != nil {
			sel, err := b.bindSelect(q, 0)
			if err != nil {
				return nil, err
			}
			out.Select = sel
		}
	}
	for _, node := range stmt.GetOptions() {
		def := node.GetDefElem()
		val := def.GetArg().GetString_().GetSval()
		switch def.GetDefname() {
		case "format":
			out.Format = val
		case "delimiter":
			out.Delimiter = val
		case "quote":
			out.Quote = val
		case "escape":
			out.Escape = val
		}
	}
	if out.Format == "" {
		out.Format = "csv"
	}
	return out, nil
}
