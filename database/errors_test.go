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


package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	mssql "github.com/microsoft/go-mssqldb"
)

func TestIsSqlError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   bool
		want SQLError
	}{
		{"nil", nil, false, UnknownErr},
		{"no rows", fmt.Errorf("lookup: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true, DuplicateKeyErr},
		{"mysql check", &mysql.MySQLError{Number: 3819, Message: "Check constraint 'ck_age' is violated."}, true, CheckConstraintViolationErr},
		{"mssql unique", mssql.Error{Number: 2627, Message: "Violation of UNIQUE KEY constraint 'U_Email'."}, true, DuplicateKeyErr},
		{"mssql check", mssql.Error{Number: 547, Message: `The INSERT statement conflicted with the CHECK constraint "CK_Age".`}, true, CheckConstraintViolationErr},
		{"mssql foreign key", mssql.Error{Number: 547, Message: `The DELETE statement conflicted with the REFERENCE constraint "F_Order_User".`}, true, ForeignKeyViolationErr},
		{"mssql missing procedure", mssql.Error{Number: 2812, Message: "Could not find stored procedure 'usp_Nope'."}, true, NoProcedureErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: users.name"), true, NotNullViolationErr},
		{"postgres fk", errors.New(`ERROR: insert violates foreign key constraint "f_user" (SQLSTATE 23503)`), true, ForeignKeyViolationErr},
		{"text missing table", errors.New("no such table: users"), true, NoTableErr},
		{"unrelated", errors.New("connection reset by peer"), false, UnknownErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is, got := IsSqlError(tt.err)
			if is != tt.is || got != tt.want {
				t.Fatalf("IsSqlError() = %v, %s; want %v, %s", is, got, tt.is, tt.want)
			}
		})
	}
}

func TestSQLErrorIsConstraintViolation(t *testing.T) {
	for _, e := range []SQLError{DuplicateKeyErr, NotNullViolationErr, ForeignKeyViolationErr, CheckConstraintViolationErr} {
		if !e.IsConstraintViolation() {
			t.Errorf("%s should be a constraint violation", e)
		}
	}
	for _, e := range []SQLError{UnknownErr, NoRowsErr, NoTableErr, DataTruncatedErr} {
		if e.IsConstraintViolation() {
			t.Errorf("%s should not be a constraint violation", e)
		}
	}
}
