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

// Package plan is the Query-to-Logical-Plan Transformer: it walks a bound
// pkg/ast.Statement and produces a tree of LogicalOperator nodes (spec.md
// §2-§4). The operator-node shapes below are the ones spec.md §3 names;
// there is deliberately no "Project" operator — the spec's SELECT-lowering
// order (§4.5) never introduces one, so final select-list projection is
// carried as an Outputs annotation on the relevant operator (see DESIGN.md).
package plan

import (
	"fmt"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/catalog"
)

type OpKind int

const (
	OpGet OpKind = iota
	OpQueryDerivedGet
	OpExternalFileGet
	OpExportExternalFile
	OpFilter
	OpInnerJoin
	OpOuterJoin
	OpLeftJoin
	OpRightJoin
	OpSemiJoin
	OpSingleJoin
	OpMarkJoin
	OpAggregateGroupBy
	OpDistinct
	OpLimit
	OpInsert
	OpInsertSelect
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpGet:
		return "Get"
	case OpQueryDerivedGet:
		return "QueryDerivedGet"
	case OpExternalFileGet:
		return "ExternalFileGet"
	case OpExportExternalFile:
		return "ExportExternalFile"
	case OpFilter:
		return "Filter"
	case OpInnerJoin:
		return "InnerJoin"
	case OpOuterJoin:
		return "OuterJoin"
	case OpLeftJoin:
		return "LeftJoin"
	case OpRightJoin:
		return "RightJoin"
	case OpSemiJoin:
		return "SemiJoin"
	case OpSingleJoin:
		return "SingleJoin"
	case OpMarkJoin:
		return "MarkJoin"
	case OpAggregateGroupBy:
		return "AggregateAndGroupBy"
	case OpDistinct:
		return "Distinct"
	case OpLimit:
		return "Limit"
	case OpInsert:
		return "Insert"
	case OpInsertSelect:
		return "InsertSelect"
	case OpUpdate:
		return "Update"
	case OpDelete:
		return "Delete"
	default:
		panic(fmt.Sprintf("unsupported operator kind %d", k))
	}
}

func (k OpKind) isJoin() bool {
	switch k {
	case OpInnerJoin, OpOuterJoin, OpLeftJoin, OpRightJoin, OpSemiJoin, OpSingleJoin, OpMarkJoin:
		return true
	default:
		return false
	}
}

// LogicalOperator is an immutable-by-convention node of the produced tree;
// every node is owned by exactly one parent (spec.md §3 invariant). Only the
// fields relevant to Kind are meaningful — this mirrors the teacher's single
// tagged LogicalOperator struct (pkg/plan/logical_operator.go) rather than
// per-kind Go types, since downstream consumers (physical planner, tests)
// match on Kind the same way the teacher's Print does.
type LogicalOperator struct {
	Kind     OpKind
	Children []*LogicalOperator

	// Outputs is the list of expressions this subtree's parent should read
	// as its output columns. The SELECT lowerer sets it on the root of each
	// SELECT's subtree to that SELECT's select list; no constructor sets it.
	Outputs []*ast.Expr

	// Get
	Database    string
	Namespace   int
	Table       string
	Alias       string
	Predicates  []*ast.Expr
	IsForUpdate bool
	TableOid    int
	Schema      *catalog.Schema

	// QueryDerivedGet: AliasMap keys are lower-cased per spec.md §3
	// invariant; AliasMapOrder preserves insertion order for deterministic
	// printing (maps are iterated in non-deterministic order in Go).
	AliasMap      map[string]*ast.Expr
	AliasMapOrder []string

	// ExternalFileGet / ExportExternalFile
	Format string
	Path   string
	Delim  string
	Quote  string
	Escape string

	// Joins. OnCond is set for OuterJoin/LeftJoin/RightJoin/SemiJoin always.
	// MarkJoin/SingleJoin never carry a condition: subquery unnesting lowers
	// the inner SELECT unchanged as the right child (spec.md §4.2), so any
	// correlation lives inside that subtree's own Filter. InnerJoin never
	// carries a condition here either — its ON clause is absorbed into the
	// enclosing Filter (spec.md §4.7).
	OnCond *ast.Expr

	// AggregateAndGroupBy
	GroupBys []*ast.Expr // empty/nil => plain aggregation (no GROUP BY)
	Aggs     []*ast.Expr // aggregate-function expressions found in the projection

	// Limit
	Offset    int64
	LimitVal  int64
	SortExprs []*ast.Expr
	SortDesc  []bool // len(SortDesc) == len(SortExprs), spec.md §3 invariant

	// Insert / InsertSelect / Update / Delete
	ColOids    []int
	Values     [][]*ast.Expr
	SetClauses []*ast.SetClause
}

// NewGet builds a base-table scan. predicates may be empty (spec.md §3).
func NewGet(db string, ns int, table string, tableOid int, schema *catalog.Schema, alias string, predicates []*ast.Expr, forUpdate bool) *LogicalOperator {
	return &LogicalOperator{
		Kind:        OpGet,
		Database:    db,
		Namespace:   ns,
		Table:       table,
		TableOid:    tableOid,
		Schema:      schema,
		Alias:       alias,
		Predicates:  predicates,
		IsForUpdate: forUpdate,
	}
}

// NewQueryDerivedGet projects a nested SELECT's logical plan as a named
// table; alias and the alias map's keys are normalized to lower case
// (spec.md §3 invariant).
func NewQueryDerivedGet(alias string, aliasMap map[string]*ast.Expr, order []string, child *LogicalOperator) *LogicalOperator {
	return &LogicalOperator{
		Kind:          OpQueryDerivedGet,
		Alias:         alias,
		AliasMap:      aliasMap,
		AliasMapOrder: order,
		Children:      []*LogicalOperator{child},
	}
}

// NewFilter wraps child in a Filter; callers must not call this with an
// empty predicate list (spec.md §3 invariant — enforced by the lowerers,
// which check len(predicates) > 0 before calling this).
func NewFilter(predicates []*ast.Expr, child *LogicalOperator) *LogicalOperator {
	return &LogicalOperator{
		Kind:       OpFilter,
		Predicates: predicates,
		Children:   []*LogicalOperator{child},
	}
}

// NewJoin builds a two-child join node of the requested kind.
func NewJoin(kind OpKind, onCond *ast.Expr, left, right *LogicalOperator) *LogicalOperator {
	if !kind.isJoin() {
		panic(fmt.Sprintf("NewJoin: %v is not a join operator", kind))
	}
	return &LogicalOperator{
		Kind:     kind,
		OnCond:   onCond,
		Children: []*LogicalOperator{left, right},
	}
}

func NewAggregateGroupBy(groupBys, aggs []*ast.Expr, child *LogicalOperator) *LogicalOperator {
	return &LogicalOperator{
		Kind:     OpAggregateGroupBy,
		GroupBys: groupBys,
		Aggs:     aggs,
		Children: []*LogicalOperator{child},
	}
}

func NewDistinct(child *LogicalOperator) *LogicalOperator {
	return &LogicalOperator{Kind: OpDistinct, Children: []*LogicalOperator{child}}
}

func NewLimit(offset, limit int64, sortExprs []*ast.Expr, sortDesc []bool, child *LogicalOperator) *LogicalOperator {
	if len(sortExprs) != len(sortDesc) {
		panic("NewLimit: sort_exprs and sort_directions must have equal length")
	}
	return &LogicalOperator{
		Kind:      OpLimit,
		Offset:    offset,
		LimitVal:  limit,
		SortExprs: sortExprs,
		SortDesc:  sortDesc,
		Children:  []*LogicalOperator{child},
	}
}
