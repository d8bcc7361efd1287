/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"database/sql"
	"strings"
)

// DataTable is an untyped result set: ordered rows of named columns.
type DataTable struct {
	Columns []string
	Rows    []DataRow
}

// DataRow holds one row's values in column order.
type DataRow []interface{}

// NewDataTable creates an empty table with the given columns.
func NewDataTable(columns ...string) *DataTable {
	return &DataTable{Columns: columns, Rows: make([]DataRow, 0)}
}

// Len returns the number of rows.
func (t *DataTable) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, matched
// case-insensitively, or -1.
func (t *DataTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Value returns the value at row i of the named column.
func (t *DataTable) Value(i int, column string) (interface{}, bool) {
	if i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(t.Rows[i]) {
		return nil, false
	}
	return t.Rows[i][idx], true
}

// Records returns every row as a column name to value map.
func (t *DataTable) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			if i < len(row) {
				rec[c] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

// Load appends every remaining row of rows to the table. The column list is
// taken from rows when the table has none. rows is closed on return.
func (t *DataTable) Load(rows *sql.Rows) error {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		t.Columns = columns
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	return rows.Err()
}
