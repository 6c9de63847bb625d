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

// Package frontend turns SQL text into the bound pkg/ast the transformer
// consumes. It exists to give cmd/planner and cmd/planserver a real caller
// and a home for github.com/pganalyze/pg_query_go: a parser plus a binder
// small enough to cover the statements pkg/plan lowers, modeled on the
// teacher's pkg/plan/binder.go and builder.go dispatch shape. It is not
// held to the transformer's correctness bar — parsing and binding are a
// separate concern spec.md scopes out.
package frontend

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/catalog"
)

// Binder parses and binds SQL text against cat.
type Binder struct {
	catalog catalog.Accessor
	depth   int
}

func NewBinder(cat catalog.Accessor) *Binder {
	return &Binder{catalog: cat}
}

// Parse parses and binds a single SQL statement.
func Parse(cat catalog.Accessor, sql string) (ast.Statement, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return nil, err
	}
	if len(result.Stmts) == 0 {
		return nil, fmt.Errorf("frontend: empty statement")
	}
	b := NewBinder(cat)
	return b.bindRawStmt(result.Stmts[0])
}

func (b *Binder) bindRawStmt(raw *pg_query.RawStmt) (ast.Statement, error) {
	switch impl := raw.GetStmt().GetNode().(type) {
	case *pg_query.Node_SelectStmt:
		return b.bindSelect(impl.SelectStmt, 0)
	case *pg_query.Node_InsertStmt:
		return b.bindInsert(impl.InsertStmt)
	case *pg_query.Node_UpdateStmt:
		return b.bindUpdate(impl.UpdateStmt)
	case *pg_query.Node_DeleteStmt:
		return b.bindDelete(impl.DeleteStmt)
	case *pg_query.Node_CopyStmt:
		return b.bindCopy(impl.CopyStmt)
	default:
		return nil, fmt.Errorf("frontend: unsupported statement type %T", impl)
	}
}
