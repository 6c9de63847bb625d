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
	"database/sql"
	"fmt"
	"hash/fnv"
	"sync"

	_ "github.com/lib/pq"

	"github.com/arclight-db/planner/pkg/types"
)

// PostgresCatalog is an Accessor backed by a live Postgres instance's
// information_schema, for wiring the transformer against a real catalog
// instead of MemoryCatalog. OIDs for databases/tables are derived
// deterministically from their names (Postgres's own OIDs are connection-
// specific and not worth exposing through this narrow interface).
type PostgresCatalog struct {
	db *sql.DB

	mu     sync.Mutex
	schema map[int]*Schema
	tables map[string]int // "db.table" -> oid
}

func NewPostgresCatalog(dsn string) (*PostgresCatalog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresCatalog{
		db:     db,
		schema: make(map[int]*Schema),
		tables: make(map[string]int),
	}, nil
}

func (c *PostgresCatalog) Close() error { return c.db.Close() }

func nameOid(s string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int(h.Sum32() & 0x7fffffff)
}

func (c *PostgresCatalog) DatabaseOid(name string) (int, error) {
	if name == "" {
		name = "public"
	}
	return nameOid("db:" + name), nil
}

func (c *PostgresCatalog) DefaultNamespace() int { return nameOid("db:public") }

func (c *PostgresCatalog) TableOid(database, name string) (int, error) {
	if database == "" {
		database = "public"
	}
	key := database + "." + name
	c.mu.Lock()
	if oid, ok := c.tables[key]; ok {
		c.mu.Unlock()
		return oid, nil
	}
	c.mu.Unlock()

	var exists bool
	err := c.db.QueryRow(
		`select exists(select 1 from information_schema.tables where table_schema = $1 and table_name = $2)`,
		database, name,
	).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("no table %s in schema %s", name, database)
	}
	oid := nameOid("tbl:" + key)
	c.mu.Lock()
	c.tables[key] = oid
	c.mu.Unlock()
	return oid, c.loadSchema(oid, database, name)
}

func (c *PostgresCatalog) loadSchema(oid int, database, name string) error {
	rows, err := c.db.Query(
		`select column_name, is_nullable, data_type, column_default
		 from information_schema.columns
		 where table_schema = $1 and table_name = $2
		 order by ordinal_position`,
		database, name,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	schema := &Schema{TableOid: oid}
	idx := 0
	for rows.Next() {
		var colName, isNullable, dataType string
		var def sql.NullString
		if err := rows.Scan(&colName, &isNullable, &dataType, &def); err != nil {
			return err
		}
		col := &ColumnDefinition{
			Oid:      oid*1000 + idx,
			Name:     colName,
			Type:     pgDataTypeToLType(dataType),
			Nullable: isNullable == "YES",
		}
		if def.Valid {
			col.Default = nil // the actual default expression requires parsing def.String, out of scope here
		}
		schema.Columns = append(schema.Columns, col)
		idx++
	}
	c.mu.Lock()
	c.schema[oid] = schema
	c.mu.Unlock()
	return rows.Err()
}

func (c *PostgresCatalog) Schema(tableOid int) (*Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.schema[tableOid]
	if !ok {
		return nil, fmt.Errorf("no table with oid %d", tableOid)
	}
	return s, nil
}

func pgDataTypeToLType(dataType string) types.LType {
	switch dataType {
	case "boolean":
		return types.BooleanType()
	case "integer":
		return types.IntegerType()
	case "bigint":
		return types.BigIntType()
	case "double precision", "real":
		return types.DoubleType()
	case "numeric":
		return types.DecimalType(38, 9)
	case "date":
		return types.DateType()
	case "timestamp without time zone", "timestamp with time zone":
		return types.TimestampType()
	default:
		return types.VarcharType()
	}
}
