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
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDataTableLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"PersonId", "LastName"}).
		AddRow(1, []byte("Smith")).
		AddRow(2, nil)
	mock.ExpectQuery("SELECT (.+) FROM Person").WillReturnRows(rows)

	r, err := db.Query("SELECT PersonId, LastName FROM Person")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	table := NewDataTable()
	if err := table.Load(r); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if v, ok := table.Value(0, "lastname"); !ok || v != "Smith" {
		t.Errorf("expected byte values converted to string, got %v (%v)", v, ok)
	}
	if v, ok := table.Value(1, "LastName"); !ok || v != nil {
		t.Errorf("expected nil for NULL column, got %v (%v)", v, ok)
	}
	if _, ok := table.Value(5, "LastName"); ok {
		t.Error("expected out of range row to report false")
	}
	if _, ok := table.Value(0, "Missing"); ok {
		t.Error("expected unknown column to report false")
	}

	recs := table.Records()
	if len(recs) != 2 || recs[0]["LastName"] != "Smith" {
		t.Errorf("unexpected records: %v", recs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDataTableLoadRowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow(1).
		RowError(0, errors.New("stream broken"))
	mock.ExpectQuery("SELECT id").WillReturnRows(rows)

	r, err := db.Query("SELECT id")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if err := NewDataTable().Load(r); err == nil {
		t.Fatal("expected row error to surface")
	}
}

func TestEmptyDataTable(t *testing.T) {
	table := NewDataTable("a", "b")
	if table.Len() != 0 {
		t.Errorf("expected empty table")
	}
	if table.ColumnIndex("B") != 1 {
		t.Errorf("expected case-insensitive column lookup")
	}
	if recs := table.Records(); recs == nil || len(recs) != 0 {
		t.Errorf("expected empty non-nil records, got %v", recs)
	}
}
