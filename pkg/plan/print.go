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

	"github.com/xlab/treeprint"
)

// Print renders the operator tree, matching the teacher's
// LogicalOperator.Print(tree treeprint.Tree) shape (pkg/plan/logical_operator.go).
func (lo *LogicalOperator) Print(tree treeprint.Tree) {
	if lo == nil {
		return
	}
	label := lo.Kind.String()
	switch lo.Kind {
	case OpGet:
		tree = tree.AddBranch(fmt.Sprintf("Get: %s.%s as %s (for_update=%v)", lo.Database, lo.Table, lo.Alias, lo.IsForUpdate))
		if len(lo.Predicates) > 0 {
			node := tree.AddMetaBranch("predicates", "")
			for _, p := range lo.Predicates {
				node.AddNode(p.String())
			}
		}
	case OpQueryDerivedGet:
		tree = tree.AddBranch(fmt.Sprintf("QueryDerivedGet: %s", lo.Alias))
		node := tree.AddMetaBranch("columns", "")
		for _, k := range lo.AliasMapOrder {
			node.AddNode(fmt.Sprintf("%s = %s", k, lo.AliasMap[k]))
		}
	case OpExternalFileGet, OpExportExternalFile:
		tree = tree.AddBranch(fmt.Sprintf("%s: format=%s path=%s", label, lo.Format, lo.Path))
	case OpFilter:
		tree = tree.AddBranch("Filter:")
		node := tree.AddMetaBranch("predicates", "")
		for _, p := range lo.Predicates {
			node.AddNode(p.String())
		}
	case OpInnerJoin, OpOuterJoin, OpLeftJoin, OpRightJoin, OpSemiJoin, OpSingleJoin, OpMarkJoin:
		tree = tree.AddBranch(fmt.Sprintf("%s:", label))
		if lo.OnCond != nil {
			tree.AddMetaNode("on", lo.OnCond.String())
		}
	case OpAggregateGroupBy:
		tree = tree.AddBranch("AggregateAndGroupBy:")
		if len(lo.GroupBys) > 0 {
			node := tree.AddMetaBranch("group", "")
			for _, g := range lo.GroupBys {
				node.AddNode(g.String())
			}
		}
		if len(lo.Aggs) > 0 {
			node := tree.AddMetaBranch("aggs", "")
			for _, a := range lo.Aggs {
				node.AddNode(a.String())
			}
		}
	case OpDistinct:
		tree = tree.AddBranch("Distinct:")
	case OpLimit:
		tree = tree.AddBranch(fmt.Sprintf("Limit: offset=%d limit=%d", lo.Offset, lo.LimitVal))
		if len(lo.SortExprs) > 0 {
			node := tree.AddMetaBranch("order", "")
			for i, e := range lo.SortExprs {
				dir := "asc"
				if lo.SortDesc[i] {
					dir = "desc"
				}
				node.AddNode(fmt.Sprintf("%s %s", e, dir))
			}
		}
	case OpInsert:
		tree = tree.AddBranch(fmt.Sprintf("Insert: %s.%s cols=%v rows=%d", lo.Database, lo.Table, lo.ColOids, len(lo.Values)))
	case OpInsertSelect:
		tree = tree.AddBranch(fmt.Sprintf("InsertSelect: %s.%s", lo.Database, lo.Table))
	case OpUpdate:
		tree = tree.AddBranch(fmt.Sprintf("Update: %s.%s as %s", lo.Database, lo.Table, lo.Alias))
	case OpDelete:
		tree = tree.AddBranch(fmt.Sprintf("Delete: %s.%s", lo.Database, lo.Table))
	default:
		panic(fmt.Sprintf("unsupported operator kind %d", lo.Kind))
	}

	for _, child := range lo.Children {
		child.Print(tree)
	}
}

func (lo *LogicalOperator) String() string {
	tree := treeprint.NewWithRoot("LogicalPlan:")
	lo.Print(tree)
	return tree.String()
}
