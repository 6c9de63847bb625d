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

// Package ast is the bound-AST input the transformer consumes. It is owned
// by the caller (parser + binder, both out of scope here): every field a
// binder would have filled in is already present by the time a Statement
// reaches pkg/plan.Transform. The transformer mutates it only in the two
// documented, narrow ways (subquery retarget, IN/EXISTS reclassification).
package ast

import (
	"fmt"

	clone "github.com/huandu/go-clone"

	"github.com/arclight-db/planner/pkg/types"
)

// ExprKind is the expression-kind tag the binder assigns to every node.
type ExprKind int

const (
	ExprInvalid ExprKind = iota
	ExprColumn           // column-value: Table, Column
	ExprLiteral          // literal: one of I/F/S/B/Null value fields set
	ExprStar             // unqualified or qualified "*" in a projection
	ExprAnd              // conjunction-and
	ExprOr               // disjunction-or
	ExprNot
	ExprCompare  // CompareOp names which comparison
	ExprArith    // arithmetic operator, Op holds "+","-","*","/"
	ExprIn       // Children[0] IN (Children[1:]) or Children[0] IN (rowSubquery)
	ExprNotIn
	ExprExists
	ExprNotExists
	ExprIsNull
	ExprIsNotNull
	ExprBetween
	ExprCase
	ExprScalarFunc // Name, Children are args
	ExprAggregate  // Name (agg function), Children[0] is the argument (or nil for count(*))
	ExprRowSubquery
)

func (k ExprKind) String() string {
	switch k {
	case ExprColumn:
		return "column"
	case ExprLiteral:
		return "literal"
	case ExprStar:
		return "star"
	case ExprAnd:
		return "and"
	case ExprOr:
		return "or"
	case ExprNot:
		return "not"
	case ExprCompare:
		return "compare"
	case ExprArith:
		return "arith"
	case ExprIn:
		return "in"
	case ExprNotIn:
		return "not-in"
	case ExprExists:
		return "exists"
	case ExprNotExists:
		return "not-exists"
	case ExprIsNull:
		return "is-null"
	case ExprIsNotNull:
		return "is-not-null"
	case ExprBetween:
		return "between"
	case ExprCase:
		return "case"
	case ExprScalarFunc:
		return "scalar-func"
	case ExprAggregate:
		return "aggregate"
	case ExprRowSubquery:
		return "row-subquery"
	default:
		return "invalid"
	}
}

// CompareOp names the comparison operator of an ExprCompare node.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op CompareOp) String() string {
	switch op {
	case CmpEq:
		return "="
	case CmpNe:
		return "<>"
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// Flip returns the operator for swapped operands, e.g. Flip(a < b) == a > b.
func (op CompareOp) Flip() CompareOp {
	switch op {
	case CmpLt:
		return CmpGt
	case CmpLe:
		return CmpGe
	case CmpGt:
		return CmpLt
	case CmpGe:
		return CmpLe
	default:
		return op
	}
}

// Expr is one node of the bound expression tree. It carries every payload
// spec.md §3 describes; only the fields relevant to Kind are meaningful,
// matching the teacher's single-struct-with-tag Expr (pkg/plan/logical_operator.go).
type Expr struct {
	Kind ExprKind
	Type types.LType

	// Depth is the scope depth assigned by the binder; 0 is the top-level
	// statement's scope and each nested subselect is one deeper, so a column
	// whose Depth is below its SELECT's ScopeDepth is a correlated reference.
	Depth int

	Children []*Expr

	// ExprColumn payload.
	Table  string
	Column string

	// ExprCompare / ExprArith payload.
	CmpOp CompareOp
	Op    string

	// ExprScalarFunc / ExprAggregate payload.
	FuncName string
	Distinct bool

	// ExprLiteral payload.
	IsNullLiteral bool
	Bvalue        bool
	Ivalue        int64
	Fvalue        float64
	Svalue        string

	// Dvalue holds a DECIMAL literal's exact text (Type.Id == Decimal);
	// set instead of Fvalue so the value survives without the precision
	// loss a float64 round-trip would introduce.
	Dvalue string

	// Output alias, meaningful on select-list projection expressions.
	Alias string

	// ExprRowSubquery payload: the inner SELECT. Set only when Kind ==
	// ExprRowSubquery. HasSubquery summarizes the whole subtree (including
	// this node) per spec.md §3.
	Subquery    *SelectStmt
	HasSubquery bool
}

// NewColumn builds a bound column reference.
func NewColumn(table, column string, typ types.LType, depth int) *Expr {
	return &Expr{Kind: ExprColumn, Table: table, Column: column, Type: typ, Depth: depth}
}

// NewCompare builds a two-child comparison node.
func NewCompare(op CompareOp, left, right *Expr) *Expr {
	e := &Expr{Kind: ExprCompare, CmpOp: op, Type: types.BooleanType(), Children: []*Expr{left, right}}
	e.HasSubquery = left.hasSub() || right.hasSub()
	return e
}

// NewAnd builds a conjunction over two or more operands, left-associating
// extras onto the tail the way a parser naturally nests `a AND b AND c`.
func NewAnd(exprs ...*Expr) *Expr {
	if len(exprs) == 0 {
		return nil
	}
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = &Expr{Kind: ExprAnd, Type: types.BooleanType(), Children: []*Expr{acc, e}}
	}
	acc.propagateHasSubquery()
	return acc
}

func (e *Expr) hasSub() bool {
	if e == nil {
		return false
	}
	return e.HasSubquery
}

// propagateHasSubquery recomputes HasSubquery bottom-up; used after building
// a tree programmatically (e.g. in tests) rather than through a binder.
func (e *Expr) propagateHasSubquery() bool {
	if e == nil {
		return false
	}
	has := e.Kind == ExprRowSubquery
	for _, c := range e.Children {
		if c.propagateHasSubquery() {
			has = true
		}
	}
	e.HasSubquery = has
	return has
}

// RecomputeHasSubquery is the exported form of propagateHasSubquery, for
// callers outside this package building expression nodes directly (e.g.
// pkg/frontend's binder).
func (e *Expr) RecomputeHasSubquery() bool { return e.propagateHasSubquery() }

// Copy deep-copies an expression subtree, matching the teacher's own
// clone.Clone(e).(*Expr) (pkg/plan/logical_operator.go). Callers use this
// whenever a predicate or literal is redistributed to more than one place
// in the output tree, so mutating one copy (e.g. a later binder pass fixing
// up Depth) never touches the other.
func (e *Expr) Copy() *Expr {
	if e == nil {
		return nil
	}
	return clone.Clone(e).(*Expr)
}

func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprColumn:
		if e.Table != "" {
			return fmt.Sprintf("%s.%s", e.Table, e.Column)
		}
		return e.Column
	case ExprLiteral:
		if e.IsNullLiteral {
			return "NULL"
		}
		switch e.Type.Id {
		case types.Varchar:
			return fmt.Sprintf("'%s'", e.Svalue)
		case types.Decimal:
			return e.Dvalue
		case types.Double:
			return fmt.Sprintf("%v", e.Fvalue)
		case types.Boolean:
			return fmt.Sprintf("%v", e.Bvalue)
		default:
			return fmt.Sprintf("%d", e.Ivalue)
		}
	case ExprAnd:
		return fmt.Sprintf("(%s AND %s)", e.Children[0], e.Children[1])
	case ExprOr:
		return fmt.Sprintf("(%s OR %s)", e.Children[0], e.Children[1])
	case ExprCompare:
		return fmt.Sprintf("(%s %s %s)", e.Children[0], e.CmpOp, e.Children[1])
	case ExprIn:
		return fmt.Sprintf("(%s IN %s)", e.Children[0], e.Children[1])
	case ExprNotIn:
		return fmt.Sprintf("(%s NOT IN %s)", e.Children[0], e.Children[1])
	case ExprExists:
		return "EXISTS(subquery)"
	case ExprNotExists:
		return "NOT EXISTS(subquery)"
	case ExprIsNull:
		return fmt.Sprintf("(%s IS NULL)", e.Children[0])
	case ExprIsNotNull:
		return fmt.Sprintf("(%s IS NOT NULL)", e.Children[0])
	case ExprScalarFunc:
		return fmt.Sprintf("%s(...)", e.FuncName)
	case ExprAggregate:
		return fmt.Sprintf("%s(...)", e.FuncName)
	case ExprRowSubquery:
		return "(subquery)"
	default:
		return e.Kind.String()
	}
}
