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

// Package catalog is the consumed collaborator of spec.md §6: it maps names
// to OIDs and returns schemas. The transformer never mutates a catalog; it
// only reads through the Accessor interface.
package catalog

import (
	"fmt"

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/types"
)

// ColumnDefinition is one column of a table's Schema, per spec.md §6.
type ColumnDefinition struct {
	Oid      int
	Name     string
	Type     types.LType
	Nullable bool
	// Default is the stored default expression, nil when the column has
	// none. A column is "nullable-or-defaulted" when Nullable || Default != nil.
	Default *ast.Expr
}

// Schema is the ordered column list of a table, in declaration order; order
// matters for positional VALUES lists (spec.md §4.6).
type Schema struct {
	TableOid int
	Columns  []*ColumnDefinition
}

// GetColumn looks a column up by exact (case-sensitive) name, per spec.md §6.
func (s *Schema) GetColumn(name string) (*ColumnDefinition, error) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("column %q not found", name)
}

func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Accessor is the catalog surface pkg/plan consumes (spec.md §6).
type Accessor interface {
	DatabaseOid(name string) (int, error)
	DefaultNamespace() int
	TableOid(database, name string) (int, error)
	Schema(tableOid int) (*Schema, error)
}
