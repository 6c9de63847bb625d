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
	"strings"

	"github.com/arclight-db/planner/pkg/ast"
)

// buildAliasMap builds the case-insensitive output-column-alias -> defining-
// expression mapping spec.md §4.4 describes, used for derived-table
// projection resolution. order preserves first-insertion order so callers
// that need deterministic iteration (e.g. Print) don't depend on Go's
// randomized map order; on a duplicate key the later entry overwrites the
// earlier one in the map, while the key keeps its first position in order
// (spec.md §4.4 "later entries overwrite earlier").
func buildAliasMap(projection []*ast.ProjectionItem) (map[string]*ast.Expr, []string) {
	m := make(map[string]*ast.Expr)
	var order []string
	for _, item := range projection {
		var key string
		switch {
		case item.Alias != "":
			key = item.Alias
		case item.Expr.Kind == ast.ExprColumn:
			key = item.Expr.Column
		default:
			continue
		}
		key = strings.ToLower(key)
		if _, exists := m[key]; !exists {
			order = append(order, key)
		}
		m[key] = item.Expr
	}
	return m, order
}
