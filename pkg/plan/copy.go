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

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"

	"github.com/arclight-db/planner/pkg/catalog"
)

// checkParquetSchema peeks at path's column count at COPY-plan time, the
// way the teacher's ScanTypeCopyFrom setup opens the file with
// pqReader.NewParquetColumnReader before reading any rows (pkg/plan/run.go).
// A column-count mismatch against the target table is reported at plan
// time rather than discovered mid-scan.
func checkParquetSchema(path string, schema *catalog.Schema) error {
	fr, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return err
	}
	defer fr.Close()

	pr, err := pqReader.NewParquetColumnReader(fr, 1)
	if err != nil {
		return err
	}
	defer pr.ReadStop()

	numCols := len(pr.SchemaHandler.ValueColumns)
	if numCols != len(schema.Columns) {
		return fmt.Errorf("parquet file has %d columns, table has %d", numCols, len(schema.Columns))
	}
	return nil
}
