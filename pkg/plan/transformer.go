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
	"fmt"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/catalog"
)

// Transformer carries the traversal-local state spec.md §5 describes: a
// catalog handle, and a shared predicate accumulator that INNER-join ON
// conditions are deposited into and the enclosing SELECT drains. A SELECT
// lowering saves and restores the accumulator around its own body so a
// nested SELECT's joins never leak predicates into the parent (spec.md §5).
type Transformer struct {
	catalog    catalog.Accessor
	predicates []*ast.Expr
}

// NewTransformer builds a Transformer bound to cat for the lifetime of a
// single Transform call; it is not safe for concurrent reuse across calls
// (spec.md §5 — each statement gets its own traversal state).
func NewTransformer(cat catalog.Accessor) *Transformer {
	return &Transformer{catalog: cat}
}

// Transform lowers a bound statement to its logical operator tree (spec.md §2).
func Transform(cat catalog.Accessor, stmt ast.Statement) (*LogicalOperator, error) {
	t := NewTransformer(cat)
	return t.transform(stmt)
}

func (t *Transformer) transform(stmt ast.Statement) (*LogicalOperator, error) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return t.lowerSelect(s)
	case *ast.InsertStmt:
		return t.lowerInsert(s)
	case *ast.UpdateStmt:
		return t.lowerUpdate(s)
	case *ast.DeleteStmt:
		return t.lowerDelete(s)
	case *ast.CopyStmt:
		return t.lowerCopy(s)
	default:
		panic(fmt.Sprintf("unsupported statement type %T", stmt))
	}
}

func (t *Transformer) resolveDatabase(db string) (string, error) {
	if db == "" {
		db = "public"
	}
	if _, err := t.catalog.DatabaseOid(db); err != nil {
		return "", err
	}
	return db, nil
}
