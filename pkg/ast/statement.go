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

// Statement is the sum type of bound statements the transformer accepts.
// Per the design notes in spec.md §9, statement kinds are modeled as
// distinct Go types behind a marker interface rather than one more tag on
// a single struct; pkg/plan's lowerers switch on the concrete type.
type Statement interface {
	stmtNode()
}

// ProjectionItem is one entry of a SELECT's output column list.
type ProjectionItem struct {
	Expr  *Expr
	Alias string // explicit "AS alias"; empty when none was written
}

type OrderByItem struct {
	Expr *Expr
	Desc bool
}

type SelectStmt struct {
	Distinct   bool
	Projection []*ProjectionItem
	From       *TableRef // nil when there is no FROM clause
	Where      *Expr
	GroupBy    []*Expr
	Having     *Expr
	OrderBy    []*OrderByItem
	Limit      *int64 // nil when absent; -1 means "no limit" per spec.md §4.5
	Offset     *int64

	// ScopeDepth is this SELECT's own scope depth as assigned by the
	// binder; a correlated atom in Where/Having has Expr.Depth < ScopeDepth.
	ScopeDepth int
}

func (*SelectStmt) stmtNode() {}

// TableRefKind discriminates the four FROM-clause shapes spec.md §4.7
// dispatches on.
type TableRefKind int

const (
	RefSingleTable TableRefKind = iota
	RefExplicitJoin
	RefDerived
	RefImplicitList
)

type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinOuter
	JoinSemi
)

func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	case JoinSemi:
		return "semi"
	default:
		return "?"
	}
}

type JoinRef struct {
	Kind  JoinKind
	Left  *TableRef
	Right *TableRef
	On    *Expr
}

type DerivedRef struct {
	Alias  string
	Select *SelectStmt
}

type SingleTableRef struct {
	Database string
	Table    string
	Alias    string // defaults to Table when no AS clause was written
}

// TableRef is a tagged union over the four shapes table-reference lowering
// recognizes (spec.md §4.7). Exactly one of Table/Join/Derived/List is set,
// selected by Kind.
type TableRef struct {
	Kind    TableRefKind
	Table   *SingleTableRef
	Join    *JoinRef
	Derived *DerivedRef
	List    []*TableRef // RefImplicitList: two or more comma-joined items
}

type InsertStmt struct {
	Database string
	Table    string
	// Columns is the explicit column list; nil/empty means "no explicit
	// columns", per spec.md §4.6.
	Columns []string
	// Exactly one of Rows or Select is set.
	Rows   [][]*Expr
	Select *SelectStmt
}

func (*InsertStmt) stmtNode() {}

type SetClause struct {
	Column string
	Value  *Expr
}

type UpdateStmt struct {
	Database   string
	Table      string
	Alias      string
	SetClauses []*SetClause
	Where      *Expr
}

func (*UpdateStmt) stmtNode() {}

type DeleteStmt struct {
	Database string
	Table    string
	Alias    string
	Where    *Expr
}

func (*DeleteStmt) stmtNode() {}

type CopyDirection int

const (
	CopyFrom CopyDirection = iota
	CopyTo
)

type CopyStmt struct {
	Direction CopyDirection
	Database  string
	Table     string
	// Select is set for `COPY (SELECT ...) TO ...`; nil otherwise, in which
	// case Database/Table name the source/sink relation directly.
	Select *SelectStmt

	Format    string // "csv", "parquet", ...
	Path      string
	Delimiter string
	Quote     string
	Escape    string
}

func (*CopyStmt) stmtNode() {}
