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

func TestTransformCopyFromCSVBuildsExternalFileGetUnderInsertSelect(t *testing.T) {
	cat := newTestCatalog(t)
	c := &ast.CopyStmt{
		Direction: ast.CopyFrom,
		Table:     "orders",
		Format:    "csv",
		Path:      "/tmp/orders.csv",
		Delimiter: ",",
	}

	root, err := Transform(cat, c)
	require.NoError(t, err)
	require.Equal(t, OpInsertSelect, root.Kind)
	require.Equal(t, OpExternalFileGet, root.Children[0].Kind)
	assert.Equal(t, "/tmp/orders.csv", root.Children[0].Path)
}

func TestTransformCopyToTableBuildsExportExternalFile(t *testing.T) {
	cat := newTestCatalog(t)
	c := &ast.CopyStmt{
		Direction: ast.CopyTo,
		Table:     "orders",
		Format:    "csv",
		Path:      "/tmp/out.csv",
	}

	root, err := Transform(cat, c)
	require.NoError(t, err)
	require.Equal(t, OpExportExternalFile, root.Kind)
	require.Equal(t, OpGet, root.Children[0].Kind)
}

func TestTransformCopyToSelectBuildsExportExternalFile(t *testing.T) {
	cat := newTestCatalog(t)
	c := &ast.CopyStmt{
		Direction: ast.CopyTo,
		Format:    "csv",
		Path:      "/tmp/out.csv",
		Select: &ast.SelectStmt{
			From:       singleTable("orders", "o"),
			Projection: []*ast.ProjectionItem{{Expr: col("o", "id")}},
		},
	}

	root, err := Transform(cat, c)
	require.NoError(t, err)
	require.Equal(t, OpExportExternalFile, root.Kind)
	require.Equal(t, OpGet, root.Children[0].Kind)
}

func TestTransformCopyUnknownDirectionPanics(t *testing.T) {
	cat := newTestCatalog(t)
	c := &ast.CopyStmt{Direction: ast.CopyDirection(99), Table: "orders"}
	assert.Panics(t, func() {
		_, _ = Transform(cat, c)
	})
}
