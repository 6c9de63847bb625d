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
	"fmt"
	"sync"

	"github.com/tidwall/btree"
)

type tableEntry struct {
	db     string
	name   string
	oid    int
	schema *Schema
}

func tableLess(a, b *tableEntry) bool {
	if a.db != b.db {
		return a.db < b.db
	}
	return a.name < b.name
}

// MemoryCatalog is an in-memory Accessor for tests and for the CLI/demo
// server when no live Postgres instance is configured. Tables are kept in a
// tidwall/btree.BTreeG so Tables() iterates in deterministic (db, name)
// order instead of relying on Go's randomized map iteration.
type MemoryCatalog struct {
	mu           sync.RWMutex
	databases    map[string]int
	nextDBOid    int
	tables       *btree.BTreeG[*tableEntry]
	byOid        map[int]*tableEntry
	nextTableOid int
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		databases:    map[string]int{"public": 1},
		nextDBOid:    2,
		tables:       btree.NewBTreeG[*tableEntry](tableLess),
		byOid:        make(map[int]*tableEntry),
		nextTableOid: 100,
	}
}

func (c *MemoryCatalog) DatabaseOid(name string) (int, error) {
	if name == "" {
		name = "public"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if oid, ok := c.databases[name]; ok {
		return oid, nil
	}
	oid := c.nextDBOid
	c.nextDBOid++
	c.databases[name] = oid
	return oid, nil
}

func (c *MemoryCatalog) DefaultNamespace() int { return 1 }

func (c *MemoryCatalog) TableOid(database, name string) (int, error) {
	if database == "" {
		database = "public"
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.tables.Get(&tableEntry{db: database, name: name})
	if !ok {
		return 0, fmt.Errorf("no table %s in schema %s", name, database)
	}
	return item.oid, nil
}

func (c *MemoryCatalog) Schema(tableOid int) (*Schema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byOid[tableOid]
	if !ok {
		return nil, fmt.Errorf("no table with oid %d", tableOid)
	}
	return e.schema, nil
}

// CreateTable registers a table for the in-memory catalog; cols are
// assigned sequential OIDs in declaration order. Returns the table OID.
func (c *MemoryCatalog) CreateTable(database, name string, cols []*ColumnDefinition) int {
	if database == "" {
		database = "public"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	oid := c.nextTableOid
	c.nextTableOid++
	for i, col := range cols {
		col.Oid = oid*1000 + i
	}
	entry := &tableEntry{
		db:     database,
		name:   name,
		oid:    oid,
		schema: &Schema{TableOid: oid, Columns: cols},
	}
	c.tables.Set(entry)
	c.byOid[oid] = entry
	return oid
}

// Tables lists every registered table in deterministic (database, name) order.
func (c *MemoryCatalog) Tables() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var names []string
	c.tables.Scan(func(e *tableEntry) bool {
		names = append(names, e.db+"."+e.name)
		return true
	})
	return names
}
