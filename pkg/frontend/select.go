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

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/arclight-db/planner/pkg/ast"
)

func (b *Binder) bindSelect(sel *pg_query.SelectStmt, depth int) (*ast.SelectStmt, error) {
	if sel == nil {
		return nil, fmt.Errorf("frontend: empty select")
	}

	out := &ast.SelectStmt{ScopeDepth: depth}

	if len(sel.GetFromClause()) != 0 {
		ref, err := b.bindFromClause(sel.GetFromClause(), depth)
		if err != nil {
			return nil, err
		}
		out.From = ref
	}

	targetList := sel.GetTargetList()
	for _, node := range targetList {
		rt := node.GetResTarget()
		e, err := b.bindExpr(rt.GetVal(), depth)
		if err != nil {
			return nil, err
		}
		out.Projection = append(out.Projection, &ast.ProjectionItem{Expr: e, Alias: rt.GetName()})
	}

	if sel.GetWhereClause() != nil {
		e, err := b.bindExpr(sel.GetWhereClause(), depth)
		if err != nil {
			return nil, err
		}
		out.Where = e
	}

	for _, node := range sel.GetGroupClause() {
		e, err := b.bindExpr(node, depth)
		if err != nil {
			return nil, err
		}
		out.GroupBy = append(out.GroupBy, e)
	}

	if sel.GetHavingClause() != nil {
		e, err := b.bindExpr(sel.GetHavingClause(), depth)
		if err != nil {
			return nil, err
		}
		out.Having = e
	}

	for _, node := range sel.GetSortClause() {
		sb := node.GetSortBy()
		e, err := b.bindExpr(sb.GetNode(), depth)
		if err != nil {
			return nil, err
		}
		desc := sb.GetSortbyDir() == pg_query.SortByDir_SORTBY_DESC
		out.OrderBy = append(out.OrderBy, &ast.OrderByItem{Expr: e, Desc: desc})
	}

	if sel.GetLimitCount() != nil {
		e, err := b.bindExpr(sel.GetLimitCount(), depth)
		if err != nil {
			return nil, err
		}
		if e.Kind == ast.ExprLiteral {
			out.Limit = &e.Ivalue
		}
	}
	if sel.GetLimitOffset() != nil {
		e, err := b.bindExpr(sel.GetLimitOffset(), depth)
		if err != nil {
			return nil, err
		}
		if e.Kind == ast.ExprLiteral {
			out.Offset = &e.Ivalue
		}
	}

	out.Distinct = len(sel.GetDistinctClause()) > 0

	return out, nil
}

func (b *Binder) bindFromClause(nodes []*pg_query.Node, depth int) (*ast.TableRef, error) {
	if len(nodes) == 1 {
		return b.bindTableRef(nodes[0], depth)
	}
	refs := make([]*ast.TableRef, 0, len(nodes))
	for _, n := range nodes {
		ref, err := b.bindTableRef(n, depth)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return &ast.TableRef{Kind: ast.RefImplicitList, List: refs}, nil
}

func (b *Binder) bindTableRef(node *pg_query.Node, depth int) (*ast.TableRef, error) {
	switch n := node.GetNode().(type) {
	case *pg_query.Node_RangeVar:
		rv := n.RangeVar
		alias := rv.GetRelname()
		if rv.GetAlias() != nil {
			alias = rv.GetAlias().GetAliasname()
		}
		return &ast.TableRef{
			Kind: ast.RefSingleTable,
			Table: &ast.SingleTableRef{
				Database: rv.GetSchemaname(),
				Table:    rv.GetRelname(),
				Alias:    alias,
			},
		}, nil
	case *pg_query.Node_JoinExpr:
		je := n.JoinExpr
		left, err := b.bindTableRef(je.GetLarg(), depth)
		if err != nil {
			return nil, err
		}
		right, err := b.bindTableRef(je.GetRarg(), depth)
		if err != nil {
			return nil, err
		}
		var on *ast.Expr
		if je.GetQuals() != nil {
			on, err = b.bindExpr(je.GetQuals(), depth)
			if err != nil {
				return nil, err
			}
		}
		kind, err := joinKindOf(je.GetJointype(), je.GetIsNatural())
		if err != nil {
			return nil, err
		}
		return &ast.TableRef{Kind: ast.RefExplicitJoin, Join: &ast.JoinRef{Kind: kind, Left: left, Right: right, On: on}}, nil
	case *pg_query.Node_RangeSubselect:
		rs := n.RangeSubselect
		if rs.GetAlias() == nil || rs.GetAlias().GetAliasname() == "" {
			return nil, fmt.Errorf("frontend: derived table requires an alias")
		}
		sub, err := b.bindSelect(rs.GetSubquery().GetSelectStmt(), depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.TableRef{Kind: ast.RefDerived, Derived: &ast.DerivedRef{Alias: rs.GetAlias().GetAliasname(), Select: sub}}, nil
	default:
		return nil, fmt.Errorf("frontend: unsupported table reference %T", n)
	}
}

func joinKindOf(jt pg_query.JoinType, natural bool) (ast.JoinKind, error) {
	switch jt {
	case pg_query.JoinType_JOIN_INNER:
		return ast.JoinInner, nil
	case pg_query.JoinType_JOIN_LEFT:
		return ast.JoinLeft, nil
	case pg_query.JoinType_JOIN_RIGHT:
		return ast.JoinRight, nil
	case pg_query.JoinType_JOIN_FULL:
		return ast.JoinOuter, nil
	case pg_query.JoinType_JOIN_SEMI:
		return ast.JoinSemi, nil
	default:
		return 0, fmt.Errorf("frontend: unsupported join type %v", jt)
	}
}
