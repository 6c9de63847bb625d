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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-db/planner/pkg/ast"
)

func TestBuildAliasMapUsesExplicitAlias(t *testing.T) {
	e := col("t", "a")
	m, order := buildAliasMap([]*ast.ProjectionItem{{Expr: e, Alias: "X"}})
	require.Len(t, order, 1)
	assert.Equal(t, "x", order[0])
	assert.Same(t, e, m["x"])
}

func TestBuildAliasMapFallsBackToBareColumnName(t *testing.T) {
	e := col("t", "Amount")
	m, order := buildAliasMap([]*ast.ProjectionItem{{Expr: e}})
	require.Len(t, order, 1)
	assert.Equal(t, "amount", order[0])
	assert.Same(t, e, m["amount"])
}

func TestBuildAliasMapSkipsUnaliasedNonColumnExpr(t *testing.T) {
	e := lit(1)
	m, order := buildAliasMap([]*ast.ProjectionItem{{Expr: e}})
	assert.Empty(t, order)
	assert.Empty(t, m)
}

func TestBuildAliasMapLastWriteWinsButKeepsFirstPosition(t *testing.T) {
	first := col("t", "a")
	second := col("u", "b")
	m, order := buildAliasMap([]*ast.ProjectionItem{
		{Expr: first, Alias: "dup"},
		{Expr: second, Alias: "DUP"},
	})
	require.Len(t, order, 1)
	assert.Equal(t, "dup", order[0])
	assert.Same(t, second, m["dup"])
}
