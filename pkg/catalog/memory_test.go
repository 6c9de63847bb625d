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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclight-db/planner/pkg/types"
)

func TestMemoryCatalogCreateAndResolveTable(t *testing.T) {
	cat := NewMemoryCatalog()
	oid := cat.CreateTable("public", "orders", []*ColumnDefinition{
		{Name: "id", Type: types.IntegerType()},
		{Name: "amount", Type: types.DoubleType()},
	})

	gotOid, err := cat.TableOid("public", "orders")
	require.NoError(t, err)
	assert.Equal(t, oid, gotOid)

	schema, err := cat.Schema(oid)
	require.NoError(t, err)
	assert.Equal(t, oid, schema.TableOid)
	require.Len(t, schema.Columns, 2)
	assert.NotEqual(t, schema.Columns[0].Oid, schema.Columns[1].Oid)
}

func TestMemoryCatalogUnknownTable(t *testing.T) {
	cat := NewMemoryCatalog()
	_, err := cat.TableOid("public", "missing")
	assert.Error(t, err)
}

func TestMemoryCatalogDefaultsToPublicDatabase(t *testing.T) {
	cat := NewMemoryCatalog()
	cat.CreateTable("", "orders", []*ColumnDefinition{{Name: "id", Type: types.IntegerType()}})

	oid, err := cat.TableOid("", "orders")
	require.NoError(t, err)
	assert.Greater(t, oid, 0)
}

func TestMemoryCatalogTablesDeterministicOrder(t *testing.T) {
	cat := NewMemoryCatalog()
	cat.CreateTable("public", "zebra", []*ColumnDefinition{{Name: "id", Type: types.IntegerType()}})
	cat.CreateTable("public", "apple", []*ColumnDefinition{{Name: "id", Type: types.IntegerType()}})

	names := cat.Tables()
	require.Len(t, names, 2)
	assert.Equal(t, "public.apple", names[0])
	assert.Equal(t, "public.zebra", names[1])
}

func TestSchemaGetColumnCaseSensitive(t *testing.T) {
	schema := &Schema{Columns: []*ColumnDefinition{{Name: "Id", Type: types.IntegerType()}}}

	_, err := schema.GetColumn("id")
	assert.Error(t, err)

	col, err := schema.GetColumn("Id")
	require.NoError(t, err)
	assert.Equal(t, "Id", col.Name)
}

func TestSchemaColumnNames(t *testing.T) {
	schema := &Schema{Columns: []*ColumnDefinition{{Name: "a"}, {Name: "b"}}}
	assert.Equal(t, []string{"a", "b"}, schema.ColumnNames())
}
