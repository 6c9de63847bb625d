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

	"github.com/arclight-db/planner/pkg/ast"
	"github.com/arclight-db/planner/pkg/catalog"
	"github.com/arclight-db/planner/pkg/types"
)

// checkDecimalConformance validates every DECIMAL-literal value in row
// against its target column's scale, positionally aligned against cols.
// A value with more fractional digits than the column allows (e.g. 19.999
// into DECIMAL(10,2)) is rejected at plan time rather than silently
// truncated at execution time.
func checkDecimalConformance(row []*ast.Expr, cols []*catalog.ColumnDefinition) error {
	n := len(row)
	if len(cols) < n {
		n = len(cols)
	}
	for i := 0; i < n; i++ {
		val := row[i]
		if val == nil || val.Kind != ast.ExprLiteral || val.IsNullLiteral || val.Type.Id != types.Decimal {
			continue
		}
		col := cols[i]
		if col.Type.Id != types.Decimal {
			continue
		}
		if err := types.FitsDecimalColumn(col.Type, val.Dvalue); err != nil {
			return newSemanticError("value %q does not fit column %q of scale %d: %v", val.Dvalue, col.Name, col.Type.Scale, err)
		}
	}
	return nil
}

// lowerInsert implements spec.md §4.6's INSERT / INSERT...SELECT lowering,
// including the explicit-vs-implicit column resolution and its not-null
// constraint checks.
func (t *Transformer) lowerInsert(ins *ast.InsertStmt) (*LogicalOperator, error) {
	db, err := t.resolveDatabase(ins.Database)
	if err != nil {
		return nil, err
	}
	ns := t.catalog.DefaultNamespace()
	tableOid, err := t.catalog.TableOid(db, ins.Table)
	if err != nil {
		return nil, err
	}
	schema, err := t.catalog.Schema(tableOid)
	if err != nil {
		return nil, err
	}

	if ins.Select != nil {
		child, err := t.lowerSelect(ins.Select)
		if err != nil {
			return nil, err
		}
		return &LogicalOperator{
			Kind: OpInsertSelect, Database: db, Namespace: ns, Table: ins.Table,
			TableOid: tableOid, Schema: schema, Children: []*LogicalOperator{child},
		}, nil
	}

	if len(ins.Columns) == 0 {
		return t.lowerInsertImplicitColumns(db, ns, ins, tableOid, schema)
	}
	return t.lowerInsertExplicitColumns(db, ns, ins, tableOid, schema)
}

func (t *Transformer) lowerInsertImplicitColumns(db string, ns int, ins *ast.InsertStmt, tableOid int, schema *catalog.Schema) (*LogicalOperator, error) {
	colOids := make([]int, len(schema.Columns))
	for i, c := range schema.Columns {
		colOids[i] = c.Oid
	}
	for _, row := range ins.Rows {
		if len(row) > len(schema.Columns) {
			return nil, newSemanticError("table %q has %d columns but %d values were supplied", ins.Table, len(schema.Columns), len(row))
		}
		for i := len(row); i < len(schema.Columns); i++ {
			col := schema.Columns[i]
			if !col.Nullable && col.Default == nil {
				return nil, newSemanticError("null value in column %q violates not-null constraint", col.Name)
			}
		}
		if err := checkDecimalConformance(row, schema.Columns); err != nil {
			return nil, err
		}
	}
	return &LogicalOperator{
		Kind: OpInsert, Database: db, Namespace: ns, Table: ins.Table,
		TableOid: tableOid, Schema: schema, ColOids: colOids, Values: ins.Rows,
	}, nil
}

func (t *Transformer) lowerInsertExplicitColumns(db string, ns int, ins *ast.InsertStmt, tableOid int, schema *catalog.Schema) (*LogicalOperator, error) {
	colIdxByName := make(map[string]int, len(schema.Columns))
	for i, c := range schema.Columns {
		colIdxByName[c.Name] = i
	}
	for _, row := range ins.Rows {
		if len(row) > len(ins.Columns) {
			return nil, newSemanticError("INSERT has more expressions than target columns")
		}
		if len(row) < len(ins.Columns) {
			return nil, newSemanticError("INSERT has more target columns than expressions")
		}
	}

	seen := make(map[string]bool, len(ins.Columns))
	specified := make(map[int]bool, len(ins.Columns))
	// The column-OID list is carried as an unordered set (spec.md §4.6 note):
	// downstream consumers must align it with Values positionally by name,
	// not assume it mirrors the explicit column list's order.
	oidSet := make(map[int]bool, len(ins.Columns))
	for _, name := range ins.Columns {
		if seen[name] {
			return nil, newSemanticError("column %q specified more than once", name)
		}
		idx, ok := colIdxByName[name]
		if !ok {
			return nil, newSemanticError("column %q of relation %q does not exist", name, ins.Table)
		}
		seen[name] = true
		specified[idx] = true
		oidSet[schema.Columns[idx].Oid] = true
	}
	for i, col := range schema.Columns {
		if !specified[i] && !col.Nullable && col.Default == nil {
			return nil, newSemanticError("null value in column %q violates not-null constraint", col.Name)
		}
	}
	orderedCols := make([]*catalog.ColumnDefinition, len(ins.Columns))
	for i, name := range ins.Columns {
		orderedCols[i] = schema.Columns[colIdxByName[name]]
	}
	for _, row := range ins.Rows {
		if err := checkDecimalConformance(row, orderedCols); err != nil {
			return nil, err
		}
	}

	colOids := make([]int, 0, len(oidSet))
	for oid := range oidSet {
		colOids = append(colOids, oid)
	}
	return &LogicalOperator{
		Kind: OpInsert, Database: db, Namespace: ns, Table: ins.Table,
		TableOid: tableOid, Schema: schema, ColOids: colOids, Values: ins.Rows,
	}, nil
}

// lowerUpdate implements spec.md §4.6's UPDATE lowering: an Update wrapping
// a for-update Get, predicates obtained by splitting+annotating the WHERE
// clause.
func (t *Transformer) lowerUpdate(u *ast.UpdateStmt) (*LogicalOperator, error) {
	db, err := t.resolveDatabase(u.Database)
	if err != nil {
		return nil, err
	}
	ns := t.catalog.DefaultNamespace()
	tableOid, err := t.catalog.TableOid(db, u.Table)
	if err != nil {
		return nil, err
	}
	schema, err := t.catalog.Schema(tableOid)
	if err != nil {
		return nil, err
	}
	alias := u.Alias
	if alias == "" {
		alias = u.Table
	}
	scan := NewGet(db, ns, u.Table, tableOid, schema, alias, SplitConjunction(u.Where), true)
	return &LogicalOperator{
		Kind: OpUpdate, Database: db, Namespace: ns, Table: u.Table, Alias: alias,
		TableOid: tableOid, Schema: schema, SetClauses: u.SetClauses, Children: []*LogicalOperator{scan},
	}, nil
}

// lowerDelete implements spec.md §4.6's DELETE lowering: a Delete wrapping a
// for-update Get, predicates obtained the same way as UPDATE.
func (t *Transformer) lowerDelete(d *ast.DeleteStmt) (*LogicalOperator, error) {
	db, err := t.resolveDatabase(d.Database)
	if err != nil {
		return nil, err
	}
	ns := t.catalog.DefaultNamespace()
	tableOid, err := t.catalog.TableOid(db, d.Table)
	if err != nil {
		return nil, err
	}
	schema, err := t.catalog.Schema(tableOid)
	if err != nil {
		return nil, err
	}
	alias := d.Alias
	if alias == "" {
		alias = d.Table
	}
	scan := NewGet(db, ns, d.Table, tableOid, schema, alias, SplitConjunction(d.Where), true)
	return &LogicalOperator{
		Kind: OpDelete, Database: db, Namespace: ns, Table: d.Table,
		TableOid: tableOid, Schema: schema, Children: []*LogicalOperator{scan},
	}, nil
}

// lowerCopy implements spec.md §4.6's COPY FROM / COPY TO lowering.
func (t *Transformer) lowerCopy(c *ast.CopyStmt) (*LogicalOperator, error) {
	switch c.Direction {
	case ast.CopyFrom:
		return t.lowerCopyFrom(c)
	case ast.CopyTo:
		return t.lowerCopyTo(c)
	default:
		panic(fmt.Sprintf("unknown copy direction %d", c.Direction))
	}
}

func (t *Transformer) lowerCopyFrom(c *ast.CopyStmt) (*LogicalOperator, error) {
	db, err := t.resolveDatabase(c.Database)
	if err != nil {
		return nil, err
	}
	ns := t.catalog.DefaultNamespace()
	tableOid, err := t.catalog.TableOid(db, c.Table)
	if err != nil {
		return nil, err
	}
	schema, err := t.catalog.Schema(tableOid)
	if err != nil {
		return nil, err
	}

	if c.Format == "parquet" {
		if err := checkParquetSchema(c.Path, schema); err != nil {
			return nil, newSemanticError("COPY FROM %s: %v", c.Path, err)
		}
	}

	scan := &LogicalOperator{
		Kind: OpExternalFileGet, Format: c.Format, Path: c.Path,
		Delim: c.Delimiter, Quote: c.Quote, Escape: c.Escape, Schema: schema,
	}
	return &LogicalOperator{
		Kind: OpInsertSelect, Database: db, Namespace: ns, Table: c.Table,
		TableOid: tableOid, Schema: schema, Children: []*LogicalOperator{scan},
	}, nil
}

func (t *Transformer) lowerCopyTo(c *ast.CopyStmt) (*LogicalOperator, error) {
	var child *LogicalOperator
	var err error
	if c.Select != nil {
		child, err = t.lowerSelect(c.Select)
	} else {
		child, err = t.lowerSingleTable(&ast.SingleTableRef{Database: c.Database, Table: c.Table}, false)
	}
	if err != nil {
		return nil, err
	}
	return &LogicalOperator{
		Kind: OpExportExternalFile, Format: c.Format, Path: c.Path,
		Delim: c.Delimiter, Quote: c.Quote, Escape: c.Escape, Children: []*LogicalOperator{child},
	}, nil
}
