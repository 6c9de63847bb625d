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
	"strings"

	"github.com/arclight-db/planner/pkg/ast"
)

// lowerTableRef dispatches over the four FROM-clause shapes spec.md §4.7
// names.
func (t *Transformer) lowerTableRef(ref *ast.TableRef) (*LogicalOperator, error) {
	if ref == nil {
		return nil, newSemanticError("missing table reference")
	}
	switch ref.Kind {
	case ast.RefSingleTable:
		return t.lowerSingleTable(ref.Table, false)
	case ast.RefExplicitJoin:
		return t.lowerExplicitJoin(ref.Join)
	case ast.RefDerived:
		return t.lowerDerivedTable(ref.Derived)
	case ast.RefImplicitList:
		return t.lowerImplicitList(ref.List)
	default:
		panic(fmt.Sprintf("unsupported table reference kind %d", ref.Kind))
	}
}

// lowerSingleTable resolves tbl against the catalog and builds a base Get.
func (t *Transformer) lowerSingleTable(tbl *ast.SingleTableRef, forUpdate bool) (*LogicalOperator, error) {
	db, err := t.resolveDatabase(tbl.Database)
	if err != nil {
		return nil, err
	}
	ns := t.catalog.DefaultNamespace()
	tableOid, err := t.catalog.TableOid(db, tbl.Table)
	if err != nil {
		return nil, err
	}
	schema, err := t.catalog.Schema(tableOid)
	if err != nil {
		return nil, err
	}
	alias := tbl.Alias
	if alias == "" {
		alias = tbl.Table
	}
	return NewGet(db, ns, tbl.Table, tableOid, schema, alias, nil, forUpdate), nil
}

// lowerExplicitJoin lowers an explicit JOIN. INNER joins deposit their ON
// condition into the shared predicate accumulator to be absorbed by the
// enclosing SELECT's Filter (spec.md §4.7); every other join kind keeps its
// condition on the join node itself.
func (t *Transformer) lowerExplicitJoin(j *ast.JoinRef) (*LogicalOperator, error) {
	left, err := t.lowerTableRef(j.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.lowerTableRef(j.Right)
	if err != nil {
		return nil, err
	}
	switch j.Kind {
	case ast.JoinInner:
		if j.On != nil {
			t.predicates = append(t.predicates, SplitConjunction(j.On)...)
		}
		return NewJoin(OpInnerJoin, nil, left, right), nil
	case ast.JoinOuter:
		return NewJoin(OpOuterJoin, j.On, left, right), nil
	case ast.JoinLeft:
		return NewJoin(OpLeftJoin, j.On, left, right), nil
	case ast.JoinRight:
		return NewJoin(OpRightJoin, j.On, left, right), nil
	case ast.JoinSemi:
		return NewJoin(OpSemiJoin, j.On, left, right), nil
	default:
		panic(fmt.Sprintf("unknown join type %d", j.Kind))
	}
}

// lowerDerivedTable lowers a derived table (subquery in FROM) into a
// QueryDerivedGet over its lowered body, carrying the alias map (spec.md
// §4.4, §4.7).
func (t *Transformer) lowerDerivedTable(d *ast.DerivedRef) (*LogicalOperator, error) {
	aliasMap, order := buildAliasMap(d.Select.Projection)
	child, err := t.lowerSelect(d.Select)
	if err != nil {
		return nil, err
	}
	return NewQueryDerivedGet(strings.ToLower(d.Alias), aliasMap, order, child), nil
}

// lowerImplicitList lowers a comma-joined FROM list as a left-deep fold of
// InnerJoin nodes starting from list[1], each paired against the
// accumulated result of everything before it.
//
// spec.md §9 flags the reference implementation as possibly lowering
// list[0] twice (a self-join) rather than folding from index 1; per the
// spec's own guidance to prefer the corrected behavior absent a test suite
// that depends on the bug, this builds the straightforward left-deep fold
// with no self-join (see DESIGN.md).
func (t *Transformer) lowerImplicitList(list []*ast.TableRef) (*LogicalOperator, error) {
	if len(list) == 0 {
		return nil, newSemanticError("no tables in FROM list")
	}
	acc, err := t.lowerTableRef(list[0])
	if err != nil {
		return nil, err
	}
	for _, ref := range list[1:] {
		right, err := t.lowerTableRef(ref)
		if err != nil {
			return nil, err
		}
		acc = NewJoin(OpInnerJoin, nil, acc, right)
	}
	return acc, nil
}
