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
	"fmt"
	"strconv"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/types"
)

// aggregateNames is the fixed set of function names bound as ExprAggregate
// rather than ExprScalarFunc, matching the teacher's special-cased "count"
// handling (pkg/plan/binder.go bindFuncCall) generalized to the common set.
var aggregateNames = map[string]bool{
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
}

func getTableColumn(ref *pg_query.ColumnRef) (table, column string, err error) {
	fields := ref.GetFields()
	switch len(fields) {
	case 1:
		return "", fields[0].GetString_().GetSval(), nil
	case 2:
		return fields[0].GetString_().GetSval(), fields[1].GetString_().GetSval(), nil
	default:
		return "", "", fmt.Errorf("frontend: unexpected column reference %v", ref)
	}
}

func (b *Binder) bindExpr(node *pg_query.Node, depth int) (*ast.Expr, error) {
	switch n := node.GetNode().(type) {
	case *pg_query.Node_ResTarget:
		return b.bindExpr(n.ResTarget.GetVal(), depth)
	case *pg_query.Node_ColumnRef:
		table, column, err := getTableColumn(n.ColumnRef)
		if err != nil {
			return nil, err
		}
		if column == "*" {
			return &ast.Expr{Kind: ast.ExprStar, Table: table}, nil
		}
		return ast.NewColumn(table, column, types.LType{}, depth), nil
	case *pg_query.Node_AConst:
		return bindAConst(n.AConst)
	case *pg_query.Node_AExpr:
		return b.bindAExpr(n.AExpr, depth)
	case *pg_query.Node_BoolExpr:
		return b.bindBoolExpr(n.BoolExpr, depth)
	case *pg_query.Node_FuncCall:
		return b.bindFuncCall(n.FuncCall, depth)
	case *pg_query.Node_SubLink:
		return b.bindSubLink(n.SubLink, depth)
	case *pg_query.Node_TypeCast:
		return b.bindExpr(n.TypeCast.GetArg(), depth)
	case *pg_query.Node_NullTest:
		return b.bindNullTest(n.NullTest, depth)
	case *pg_query.Node_List:
		return b.bindRowList(n.List, depth)
	default:
		return nil, fmt.Errorf("frontend: unsupported expression node %T", n)
	}
}

func bindAConst(c *pg_query.A_Const) (*ast.Expr, error) {
	if c.GetIsnull() {
		return &ast.Expr{Kind: ast.ExprLiteral, IsNullLiteral: true, Type: types.NullType()}, nil
	}
	switch v := c.GetVal().(type) {
	case *pg_query.A_Const_Sval:
		return &ast.Expr{Kind: ast.ExprLiteral, Type: types.VarcharType(), Svalue: v.Sval.GetSval()}, nil
	case *pg_query.A_Const_Ival:
		return &ast.Expr{Kind: ast.ExprLiteral, Type: types.IntegerType(), Ivalue: int64(v.Ival.GetIval())}, nil
	case *pg_query.A_Const_Fval:
		text := v.Fval.GetFval()
		if lt, derr := types.DecimalLiteralType(text); derr == nil {
			return &ast.Expr{Kind: ast.ExprLiteral, Type: lt, Dvalue: text}, nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return &ast.Expr{Kind: ast.ExprLiteral, Type: types.DoubleType(), Fvalue: f}, nil
	case *pg_query.A_Const_Boolval:
		return &ast.Expr{Kind: ast.ExprLiteral, Type: types.BooleanType(), Bvalue: v.Boolval.GetBoolval()}, nil
	default:
		return nil, fmt.Errorf("frontend: unsupported constant %T", v)
	}
}

func (b *Binder) bindRowList(list *pg_query.List, depth int) (*ast.Expr, error) {
	children := make([]*ast.Expr, 0, len(list.GetItems()))
	for _, item := range list.GetItems() {
		e, err := b.bindExpr(item, depth)
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	return &ast.Expr{Kind: ast.ExprScalarFunc, FuncName: "row", Children: children}, nil
}

func (b *Binder) bindNullTest(n *pg_query.NullTest, depth int) (*ast.Expr, error) {
	arg, err := b.bindExpr(n.GetArg(), depth)
	if err != nil {
		return nil, err
	}
	kind := ast.ExprIsNull
	if n.GetNulltesttype() == pg_query.NullTestType_IS_NOT_NULL {
		kind = ast.ExprIsNotNull
	}
	return &ast.Expr{Kind: kind, Type: types.BooleanType(), Children: []*ast.Expr{arg}}, nil
}

func (b *Binder) bindBoolExpr(be *pg_query.BoolExpr, depth int) (*ast.Expr, error) {
	args := be.GetArgs()
	bound := make([]*ast.Expr, 0, len(args))
	for _, a := range args {
		e, err := b.bindExpr(a, depth)
		if err != nil {
			return nil, err
		}
		bound = append(bound, e)
	}
	switch be.GetBoolop() {
	case pg_query.BoolExprType_NOT_EXPR:
		child := bound[0]
		switch child.Kind {
		case ast.ExprIn:
			child.Kind = ast.ExprNotIn
			return child, nil
		case ast.ExprExists:
			child.Kind = ast.ExprNotExists
			return child, nil
		default:
			return &ast.Expr{Kind: ast.ExprNot, Type: types.BooleanType(), Children: []*ast.Expr{child}}, nil
		}
	case pg_query.BoolExprType_AND_EXPR:
		return ast.NewAnd(bound...), nil
	case pg_query.BoolExprType_OR_EXPR:
		acc := bound[0]
		for _, e := range bound[1:] {
			acc = &ast.Expr{Kind: ast.ExprOr, Type: types.BooleanType(), Children: []*ast.Expr{acc, e}}
		}
		acc.RecomputeHasSubquery()
		return acc, nil
	default:
		return nil, fmt.Errorf("frontend: unsupported bool expr %v", be.GetBoolop())
	}
}

func (b *Binder) bindAExpr(a *pg_query.A_Expr, depth int) (*ast.Expr, error) {
	switch a.GetKind() {
	case pg_query.A_Expr_Kind_AEXPR_IN:
		return b.bindInExpr(a, depth)
	case pg_query.A_Expr_Kind_AEXPR_BETWEEN:
		return b.bindBetween(a, depth)
	default:
	}

	left, err := b.bindExpr(a.GetLexpr(), depth)
	if err != nil {
		return nil, err
	}
	right, err := b.bindExpr(a.GetRexpr(), depth)
	if err != nil {
		return nil, err
	}
	opName := ""
	if len(a.GetName()) > 0 {
		opName = a.GetName()[0].GetString_().GetSval()
	}
	switch opName {
	case "=", "<>", "<", "<=", ">", ">=":
		return ast.NewCompare(compareOpOf(opName), left, right), nil
	case "+", "-", "*", "/":
		e := &ast.Expr{Kind: ast.ExprArith, Op: opName, Type: arithResultType(left.Type, right.Type), Children: []*ast.Expr{left, right}}
		e.RecomputeHasSubquery()
		return e, nil
	default:
		return nil, fmt.Errorf("frontend: unsupported operator %q", opName)
	}
}

func compareOpOf(op string) ast.CompareOp {
	switch op {
	case "=":
		return ast.CmpEq
	case "<>":
		return ast.CmpNe
	case "<":
		return ast.CmpLt
	case "<=":
		return ast.CmpLe
	case ">":
		return ast.CmpGt
	default:
		return ast.CmpGe
	}
}

func arithResultType(l, r types.LType) types.LType {
	if l.Id == types.Double || r.Id == types.Double {
		return types.DoubleType()
	}
	if l.Id == types.BigInt || r.Id == types.BigInt {
		return types.BigIntType()
	}
	return types.IntegerType()
}

func (b *Binder) bindBetween(a *pg_query.A_Expr, depth int) (*ast.Expr, error) {
	val, err := b.bindExpr(a.GetLexpr(), depth)
	if err != nil {
		return nil, err
	}
	list := a.GetRexpr().GetList()
	if list == nil || len(list.GetItems()) != 2 {
		return nil, fmt.Errorf("frontend: BETWEEN needs exactly two bounds")
	}
	lo, err := b.bindExpr(list.GetItems()[0], depth)
	if err != nil {
		return nil, err
	}
	hi, err := b.bindExpr(list.GetItems()[1], depth)
	if err != nil {
		return nil, err
	}
	return ast.NewAnd(ast.NewCompare(ast.CmpGe, val, lo), ast.NewCompare(ast.CmpLe, val.Copy(), hi)), nil
}

func (b *Binder) bindInExpr(a *pg_query.A_Expr, depth int) (*ast.Expr, error) {
	left, err := b.bindExpr(a.GetLexpr(), depth)
	if err != nil {
		return nil, err
	}
	right, err := b.bindExpr(a.GetRexpr(), depth)
	if err != nil {
		return nil, err
	}
	e := &ast.Expr{Kind: ast.ExprIn, Type: types.BooleanType(), Children: []*ast.Expr{left, right}}
	e.RecomputeHasSubquery()
	return e, nil
}

func getFuncName(fc *pg_query.FuncCall) string {
	for _, n := range fc.GetFuncname() {
		s := n.GetString_().GetSval()
		if s == "pg_catalog" {
			continue
		}
		return s
	}
	return ""
}

func (b *Binder) bindFuncCall(fc *pg_query.FuncCall, depth int) (*ast.Expr, error) {
	name := getFuncName(fc)
	if name == "count" && fc.GetAggStar() {
		return &ast.Expr{Kind: ast.ExprAggregate, FuncName: "count", Type: types.BigIntType(), Distinct: fc.GetAggDistinct()}, nil
	}
	args := make([]*ast.Expr, 0, len(fc.GetArgs()))
	for _, a := range fc.GetArgs() {
		e, err := b.bindExpr(a, depth)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	if aggregateNames[name] {
		var arg *ast.Expr
		if len(args) > 0 {
			arg = args[0]
		}
		children := []*ast.Expr{}
		if arg != nil {
			children = append(children, arg)
		}
		e := &ast.Expr{Kind: ast.ExprAggregate, FuncName: name, Type: aggregateResultType(name, arg), Children: children, Distinct: fc.GetAggDistinct()}
		e.RecomputeHasSubquery()
		return e, nil
	}
	e := &ast.Expr{Kind: ast.ExprScalarFunc, FuncName: name, Children: args}
	e.RecomputeHasSubquery()
	return e, nil
}

func aggregateResultType(name string, arg *ast.Expr) types.LType {
	switch name {
	case "count":
		return types.BigIntType()
	case "avg":
		return types.DoubleType()
	default:
		if arg != nil {
			return arg.Type
		}
		return types.DoubleType()
	}
}

func (b *Binder) bindSubLink(sl *pg_query.SubLink, depth int) (*ast.Expr, error) {
	sub, err := b.bindSelect(sl.GetSubselect().GetSelectStmt(), depth+1)
	if err != nil {
		return nil, err
	}
	rowExpr := &ast.Expr{Kind: ast.ExprRowSubquery, Subquery: sub, HasSubquery: true}
	switch sl.GetSubLinkType() {
	case pg_query.SubLinkType_ANY_SUBLINK:
		test, err := b.bindExpr(sl.GetTestexpr(), depth)
		if err != nil {
			return nil, err
		}
		e := &ast.Expr{Kind: ast.ExprIn, Type: types.BooleanType(), Children: []*ast.Expr{test, rowExpr}}
		e.RecomputeHasSubquery()
		return e, nil
	case pg_query.SubLinkType_EXPR_SUBLINK:
		return rowExpr, nil
	case pg_query.SubLinkType_EXISTS_SUBLINK:
		e := &ast.Expr{Kind: ast.ExprExists, Type: types.BooleanType(), Children: []*ast.Expr{rowExpr}}
		e.RecomputeHasSubquery()
		return e, nil
	default:
		return nil, fmt.Errorf("frontend: unsupported sublink type %v", sl.GetSubLinkType())
	}
}
